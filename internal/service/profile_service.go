package service

import (
	"context"
	"errors"
	"fmt"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists, use the update endpoint instead")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotATrainer          = errors.New("only trainers can update trainer profiles")
)

// ProfileInput carries the mutable fields of a fitness profile.
type ProfileInput struct {
	Age              *int
	ExperienceLevel  domain.ExperienceLevel
	TrainingLocation domain.TrainingLocation
	Focuses          []domain.FocusTag
}

// PublicProfile is the profile view any authenticated user may request for
// another user. Email is only populated for the owner.
type PublicProfile struct {
	ID             primitive.ObjectID     `json:"id"`
	Username       string                 `json:"username"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	Email          string                 `json:"email,omitempty"`
	IsTrainer      bool                   `json:"is_trainer"`
	IsOwner        bool                   `json:"is_owner"`
	FitnessProfile *domain.FitnessProfile `json:"user_profile,omitempty"`
	TrainerProfile *domain.TrainerProfile `json:"trainer_profile,omitempty"`
}

// ProfileService manages fitness and trainer profiles.
type ProfileService interface {
	CreateProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.FitnessProfile, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessProfile, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.FitnessProfile, error)
	GetPublicProfile(ctx context.Context, viewerID, userID primitive.ObjectID) (*PublicProfile, error)
	UpdateTrainerProfile(ctx context.Context, userID primitive.ObjectID, profile domain.TrainerProfile) (*domain.TrainerProfile, error)
}

type profileService struct {
	userRepo           repository.UserRepository
	profileRepo        repository.ProfileRepository
	trainerProfileRepo repository.TrainerProfileRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	trainerProfileRepo repository.TrainerProfileRepository,
) ProfileService {
	return &profileService{
		userRepo:           userRepo,
		profileRepo:        profileRepo,
		trainerProfileRepo: trainerProfileRepo,
	}
}

// validateProfileInput checks the closed enumerations and the age bounds.
func validateProfileInput(input ProfileInput) error {
	if input.Age != nil {
		if *input.Age < 13 {
			return fmt.Errorf("%w: age: you must be at least 13 years old", ErrValidationFailed)
		}
		if *input.Age > 120 {
			return fmt.Errorf("%w: age: please enter a valid age", ErrValidationFailed)
		}
	}
	switch input.ExperienceLevel {
	case domain.ExperienceBeginner, domain.ExperienceIntermediate, domain.ExperienceAdvanced:
	default:
		return fmt.Errorf("%w: experience_level: invalid value %q", ErrValidationFailed, input.ExperienceLevel)
	}
	switch input.TrainingLocation {
	case domain.LocationHome, domain.LocationGym:
	default:
		return fmt.Errorf("%w: training_location: invalid value %q", ErrValidationFailed, input.TrainingLocation)
	}
	for _, f := range input.Focuses {
		if !domain.IsValidFocusTag(f) {
			return fmt.Errorf("%w: fitness_focus: invalid value %q", ErrValidationFailed, f)
		}
	}
	return nil
}

// CreateProfile creates the user's fitness profile. A user has at most one.
func (s *profileService) CreateProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.FitnessProfile, error) {
	if err := validateProfileInput(input); err != nil {
		return nil, err
	}

	profile := &domain.FitnessProfile{
		UserID:           userID,
		Age:              input.Age,
		ExperienceLevel:  input.ExperienceLevel,
		TrainingLocation: input.TrainingLocation,
		Focuses:          input.Focuses,
	}
	if _, err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProfileAlreadyExists
		}
		return nil, err
	}
	return profile, nil
}

// GetProfile returns the user's own fitness profile.
func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile replaces the mutable fields of the user's fitness profile.
func (s *profileService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.FitnessProfile, error) {
	if err := validateProfileInput(input); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	profile.Age = input.Age
	profile.ExperienceLevel = input.ExperienceLevel
	profile.TrainingLocation = input.TrainingLocation
	profile.Focuses = input.Focuses

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetPublicProfile assembles the public view of any user: basic account
// fields, the fitness profile if present, and the trainer profile for
// trainers. Email is included only when the viewer is the owner.
func (s *profileService) GetPublicProfile(ctx context.Context, viewerID, userID primitive.ObjectID) (*PublicProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	result := &PublicProfile{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsTrainer: user.IsTrainer(),
		IsOwner:   viewerID == userID,
	}
	if result.IsOwner {
		result.Email = user.Email
	}

	if profile, err := s.profileRepo.GetByUserID(ctx, userID); err == nil {
		result.FitnessProfile = profile
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if user.IsTrainer() {
		if tp, err := s.trainerProfileRepo.GetByUserID(ctx, userID); err == nil {
			result.TrainerProfile = tp
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	return result, nil
}

// UpdateTrainerProfile updates the trainer's extended profile. Only trainers
// hold one.
func (s *profileService) UpdateTrainerProfile(ctx context.Context, userID primitive.ObjectID, input domain.TrainerProfile) (*domain.TrainerProfile, error) {
	if input.YearsOfExperience < 0 || input.YearsOfExperience > 50 {
		return nil, fmt.Errorf("%w: years_of_experience: must be between 0 and 50", ErrValidationFailed)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsTrainer() {
		return nil, ErrNotATrainer
	}

	existing, err := s.trainerProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	existing.Bio = input.Bio
	existing.YearsOfExperience = input.YearsOfExperience
	existing.SpecialtyStrength = input.SpecialtyStrength
	existing.SpecialtyCardio = input.SpecialtyCardio
	existing.SpecialtyFlexibility = input.SpecialtyFlexibility
	existing.SpecialtySports = input.SpecialtySports
	existing.SpecialtyRehabilitation = input.SpecialtyRehabilitation
	existing.Certifications = input.Certifications

	if err := s.trainerProfileRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
