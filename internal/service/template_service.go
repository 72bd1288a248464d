package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/repository"
	"fitiva/workout-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTemplateNotFound      = errors.New("exercise template not found")
	ErrTemplateAlreadyExists = errors.New("an exercise template with this name already exists")
)

// Expiry for presigned media URLs handed to clients.
const mediaURLExpiry = 15 * time.Minute

// TemplateInput carries the authoring payload for an exercise template.
type TemplateInput struct {
	Name                   string
	Description            string
	MuscleGroups           []string
	ExerciseType           domain.ExerciseType
	DefaultRecommendations string
}

// TemplateView is a template together with a presigned media download URL
// when demo media has been uploaded.
type TemplateView struct {
	domain.ExerciseTemplate
	MediaURL string `json:"media_url,omitempty"`
}

// MediaUpload is a presigned upload slot for template demo media.
type MediaUpload struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
}

// TemplateService manages the reusable exercise template catalog and its
// demo media in object storage.
type TemplateService interface {
	CreateTemplate(ctx context.Context, trainerID primitive.ObjectID, input TemplateInput) (*domain.ExerciseTemplate, error)
	GetTemplateByID(ctx context.Context, id primitive.ObjectID) (*TemplateView, error)
	ListTemplates(ctx context.Context) ([]TemplateView, error)
	// RequestMediaUpload reserves an object key and returns a presigned PUT
	// URL. Only the owning trainer may attach media.
	RequestMediaUpload(ctx context.Context, trainerID, templateID primitive.ObjectID, contentType string) (*MediaUpload, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
	fileStorage  storage.FileStorage
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(templateRepo repository.TemplateRepository, fileStorage storage.FileStorage) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		fileStorage:  fileStorage,
	}
}

func (s *templateService) CreateTemplate(ctx context.Context, trainerID primitive.ObjectID, input TemplateInput) (*domain.ExerciseTemplate, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	switch input.ExerciseType {
	case domain.ExerciseTypeReps, domain.ExerciseTypeTime:
	default:
		return nil, fmt.Errorf("%w: exercise_type: invalid value %q", ErrValidationFailed, input.ExerciseType)
	}

	template := &domain.ExerciseTemplate{
		TrainerID:              &trainerID,
		Name:                   input.Name,
		Description:            input.Description,
		MuscleGroups:           input.MuscleGroups,
		ExerciseType:           input.ExerciseType,
		DefaultRecommendations: input.DefaultRecommendations,
	}
	if _, err := s.templateRepo.Create(ctx, template); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTemplateAlreadyExists
		}
		return nil, err
	}
	return template, nil
}

func (s *templateService) GetTemplateByID(ctx context.Context, id primitive.ObjectID) (*TemplateView, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return s.toView(ctx, template), nil
}

func (s *templateService) ListTemplates(ctx context.Context) ([]TemplateView, error) {
	templates, err := s.templateRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]TemplateView, 0, len(templates))
	for i := range templates {
		views = append(views, *s.toView(ctx, &templates[i]))
	}
	return views, nil
}

// toView attaches a presigned download URL for templates with media. URL
// generation failures degrade to a view without a URL rather than failing
// the read.
func (s *templateService) toView(ctx context.Context, template *domain.ExerciseTemplate) *TemplateView {
	view := &TemplateView{ExerciseTemplate: *template}
	if template.MediaObjectKey != "" && s.fileStorage != nil {
		if url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, template.MediaObjectKey, mediaURLExpiry); err == nil {
			view.MediaURL = url
		}
	}
	return view
}

func (s *templateService) RequestMediaUpload(ctx context.Context, trainerID, templateID primitive.ObjectID, contentType string) (*MediaUpload, error) {
	if contentType == "" {
		return nil, fmt.Errorf("%w: content_type is required", ErrValidationFailed)
	}

	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.TrainerID == nil || *template.TrainerID != trainerID {
		return nil, ErrTemplateNotFound
	}

	objectKey := fmt.Sprintf("templates/%s/%s", templateID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, mediaURLExpiry)
	if err != nil {
		return nil, err
	}

	template.MediaObjectKey = objectKey
	template.MediaContentType = contentType
	if err := s.templateRepo.Update(ctx, template); err != nil {
		return nil, err
	}

	return &MediaUpload{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}
