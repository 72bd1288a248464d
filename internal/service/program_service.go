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
	ErrValidationFailed    = errors.New("validation failed")
	ErrProgramAccessDenied = errors.New("access denied to modify or delete this program")
	ErrTrainersOnly        = errors.New("only trainers can author programs")
)

// ProgramInput carries the authoring payload for a program, including nested
// sections, exercises and sets.
type ProgramInput struct {
	Name          string
	Description   string
	Focuses       []domain.FocusTag
	Difficulty    domain.Difficulty
	SessionLength int
	Sections      []domain.Section
	IsDraft       bool
}

// TrainerPrograms is a trainer's program listing with a total count,
// optionally including soft-deleted programs for stats.
type TrainerPrograms struct {
	Programs   []domain.Program `json:"programs"`
	TotalCount int              `json:"total_count"`
}

// ProgramService manages workout program authoring and browsing.
type ProgramService interface {
	CreateProgram(ctx context.Context, trainerID primitive.ObjectID, input ProgramInput) (*domain.Program, error)
	GetProgramByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	ListPublished(ctx context.Context) ([]domain.Program, error)
	GetTrainerPrograms(ctx context.Context, trainerID primitive.ObjectID, includeDeleted bool) (*TrainerPrograms, error)
	DeleteProgram(ctx context.Context, trainerID, programID primitive.ObjectID) error
}

type programService struct {
	userRepo    repository.UserRepository
	programRepo repository.ProgramRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(userRepo repository.UserRepository, programRepo repository.ProgramRepository) ProgramService {
	return &programService{
		userRepo:    userRepo,
		programRepo: programRepo,
	}
}

// validateProgramInput checks the authoring payload. A rest-day section with
// exercises is rejected outright: the rest-day invariant is hard, not a
// warning.
func validateProgramInput(input ProgramInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if len(input.Focuses) == 0 {
		return fmt.Errorf("%w: at least one focus is required", ErrValidationFailed)
	}
	for _, f := range input.Focuses {
		if !domain.IsValidFocusTag(f) {
			return fmt.Errorf("%w: focus: invalid value %q", ErrValidationFailed, f)
		}
	}
	switch input.Difficulty {
	case domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced:
	default:
		return fmt.Errorf("%w: difficulty: invalid value %q", ErrValidationFailed, input.Difficulty)
	}
	if input.SessionLength <= 0 {
		return fmt.Errorf("%w: session_length must be positive", ErrValidationFailed)
	}
	for _, section := range input.Sections {
		if !domain.IsValidWeekday(section.Format) {
			return fmt.Errorf("%w: sections: format must be a weekday name, got %q", ErrValidationFailed, section.Format)
		}
		if section.IsRestDay && len(section.Exercises) > 0 {
			return fmt.Errorf("%w: sections: a rest day cannot contain exercises", ErrValidationFailed)
		}
	}
	return nil
}

// CreateProgram creates a new workout program authored by a trainer.
func (s *programService) CreateProgram(ctx context.Context, trainerID primitive.ObjectID, input ProgramInput) (*domain.Program, error) {
	user, err := s.userRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsTrainer() {
		return nil, ErrTrainersOnly
	}

	if err := validateProgramInput(input); err != nil {
		return nil, err
	}

	program := &domain.Program{
		TrainerID:     trainerID,
		Name:          input.Name,
		Description:   input.Description,
		Focuses:       input.Focuses,
		Difficulty:    input.Difficulty,
		SessionLength: input.SessionLength,
		Sections:      input.Sections,
		IsDraft:       input.IsDraft,
	}
	if _, err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// GetProgramByID returns a single program. Deleted programs are reported as
// not found to browsers.
func (s *programService) GetProgramByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.IsDeleted {
		return nil, ErrProgramNotFound
	}
	return program, nil
}

// ListPublished returns all browsable programs: non-deleted, non-draft, in
// creation order, regardless of author.
func (s *programService) ListPublished(ctx context.Context) ([]domain.Program, error) {
	return s.programRepo.GetPublished(ctx)
}

// GetTrainerPrograms returns a trainer's programs with a total count.
// Deleted programs are included only when includeDeleted is set.
func (s *programService) GetTrainerPrograms(ctx context.Context, trainerID primitive.ObjectID, includeDeleted bool) (*TrainerPrograms, error) {
	user, err := s.userRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsTrainer() {
		return nil, ErrUserNotFound
	}

	programs, err := s.programRepo.GetByTrainerID(ctx, trainerID, includeDeleted)
	if err != nil {
		return nil, err
	}
	return &TrainerPrograms{Programs: programs, TotalCount: len(programs)}, nil
}

// DeleteProgram soft-deletes a program. Only the authoring trainer may delete
// it; the repository filter enforces ownership, and a mismatch surfaces as an
// access error when the program itself exists.
func (s *programService) DeleteProgram(ctx context.Context, trainerID, programID primitive.ObjectID) error {
	err := s.programRepo.MarkDeleted(ctx, programID, trainerID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	// Distinguish "no such program" from "not yours".
	if _, getErr := s.programRepo.GetByID(ctx, programID); getErr == nil {
		return ErrProgramAccessDenied
	}
	return ErrProgramNotFound
}
