package service

import (
	"context"
	"testing"
	"time"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStorage records presign calls without touching a real bucket.
type fakeStorage struct {
	uploadKeys []string
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	f.uploadKeys = append(f.uploadKeys, objectKey)
	return "https://storage.example.com/upload/" + objectKey, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.example.com/download/" + objectKey, nil
}

func (f *fakeStorage) DeleteObject(context.Context, string) error { return nil }

func validTemplateInput() TemplateInput {
	return TemplateInput{
		Name:                   "Goblet Squats",
		Description:            "Hold a dumbbell at chest height, squat down, drive back up.",
		MuscleGroups:           []string{"quads/hamstrings"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "3 sets of 10-12 reps",
	}
}

func TestCreateTemplate(t *testing.T) {
	templateRepo := memory.NewTemplateRepository()
	svc := NewTemplateService(templateRepo, &fakeStorage{})
	trainerID := primitive.NewObjectID()

	template, err := svc.CreateTemplate(context.Background(), trainerID, validTemplateInput())
	require.NoError(t, err)
	require.NotNil(t, template.TrainerID)
	assert.Equal(t, trainerID, *template.TrainerID)

	_, err = svc.CreateTemplate(context.Background(), trainerID, validTemplateInput())
	assert.ErrorIs(t, err, ErrTemplateAlreadyExists)
}

func TestCreateTemplateValidation(t *testing.T) {
	svc := NewTemplateService(memory.NewTemplateRepository(), &fakeStorage{})
	trainerID := primitive.NewObjectID()

	noName := validTemplateInput()
	noName.Name = ""
	_, err := svc.CreateTemplate(context.Background(), trainerID, noName)
	assert.ErrorIs(t, err, ErrValidationFailed)

	badType := validTemplateInput()
	badType.ExerciseType = "distance"
	_, err = svc.CreateTemplate(context.Background(), trainerID, badType)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestMediaUploadFlow(t *testing.T) {
	templateRepo := memory.NewTemplateRepository()
	storage := &fakeStorage{}
	svc := NewTemplateService(templateRepo, storage)
	trainerID := primitive.NewObjectID()

	template, err := svc.CreateTemplate(context.Background(), trainerID, validTemplateInput())
	require.NoError(t, err)

	upload, err := svc.RequestMediaUpload(context.Background(), trainerID, template.ID, "video/mp4")
	require.NoError(t, err)
	assert.Contains(t, upload.UploadURL, upload.ObjectKey)
	require.Len(t, storage.uploadKeys, 1)

	// Reads now carry a presigned download URL.
	view, err := svc.GetTemplateByID(context.Background(), template.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/download/"+upload.ObjectKey, view.MediaURL)
}

func TestMediaUploadOwnershipAndValidation(t *testing.T) {
	templateRepo := memory.NewTemplateRepository()
	svc := NewTemplateService(templateRepo, &fakeStorage{})
	trainerID := primitive.NewObjectID()

	template, err := svc.CreateTemplate(context.Background(), trainerID, validTemplateInput())
	require.NoError(t, err)

	_, err = svc.RequestMediaUpload(context.Background(), primitive.NewObjectID(), template.ID, "video/mp4")
	assert.ErrorIs(t, err, ErrTemplateNotFound, "other trainers cannot attach media")

	_, err = svc.RequestMediaUpload(context.Background(), trainerID, template.ID, "")
	assert.ErrorIs(t, err, ErrValidationFailed)

	// Seeded templates have no owner and accept no media.
	seeded := domain.ExerciseTemplate{Name: "Push-ups", ExerciseType: domain.ExerciseTypeReps}
	_, err = templateRepo.Create(context.Background(), &seeded)
	require.NoError(t, err)
	_, err = svc.RequestMediaUpload(context.Background(), trainerID, seeded.ID, "video/mp4")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestListTemplates(t *testing.T) {
	templateRepo := memory.NewTemplateRepository()
	svc := NewTemplateService(templateRepo, &fakeStorage{})
	trainerID := primitive.NewObjectID()

	_, err := svc.CreateTemplate(context.Background(), trainerID, validTemplateInput())
	require.NoError(t, err)
	seeded := domain.ExerciseTemplate{Name: "Push-ups", ExerciseType: domain.ExerciseTypeReps}
	_, err = templateRepo.Create(context.Background(), &seeded)
	require.NoError(t, err)

	views, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	assert.Len(t, views, 2)
}
