package service

import (
	"context"
	"errors"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/observability"
	"fitiva/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IncompleteProfileMessage is returned when the user has no fitness profile
// or recorded no focuses. This is a normal result variant, not an error.
const IncompleteProfileMessage = "Complete your fitness profile to get workout recommendations tailored to your goals."

// RecommendationResult carries the outcome of a recommendation request.
type RecommendationResult struct {
	UserFocuses          []domain.FocusTag `json:"user_focuses"`
	TotalRecommendations int               `json:"total_recommendations"`
	Programs             []domain.Program  `json:"programs"`
	// Message is set only when the profile is missing or has no focuses.
	Message string `json:"message,omitempty"`
}

// RecommendationService matches published programs against a user's fitness
// focuses.
type RecommendationService interface {
	Recommend(ctx context.Context, userID primitive.ObjectID) (*RecommendationResult, error)
}

type recommendationService struct {
	profileRepo repository.ProfileRepository
	programRepo repository.ProgramRepository
}

// NewRecommendationService creates a new instance of recommendationService.
func NewRecommendationService(profileRepo repository.ProfileRepository, programRepo repository.ProgramRepository) RecommendationService {
	return &recommendationService{
		profileRepo: profileRepo,
		programRepo: programRepo,
	}
}

// Recommend returns every published program whose focus tags intersect the
// user's profile focuses. Programs keep the store's creation order; no
// ranking by intersection size is applied. A missing profile and a profile
// with an empty focus set both yield a zero-total result with a guidance
// message rather than an error.
func (s *recommendationService) Recommend(ctx context.Context, userID primitive.ObjectID) (*RecommendationResult, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if !profile.HasFocuses() {
		observability.RecommendationsServed.WithLabelValues("incomplete_profile").Inc()
		return &RecommendationResult{
			UserFocuses: []domain.FocusTag{},
			Programs:    []domain.Program{},
			Message:     IncompleteProfileMessage,
		}, nil
	}

	programs, err := s.programRepo.GetPublished(ctx)
	if err != nil {
		return nil, err
	}

	matched := []domain.Program{}
	for _, p := range programs {
		if len(domain.IntersectFocuses(p.Focuses, profile.Focuses)) > 0 {
			matched = append(matched, p)
		}
	}

	outcome := "matched"
	if len(matched) == 0 {
		outcome = "no_matches"
	}
	observability.RecommendationsServed.WithLabelValues(outcome).Inc()

	return &RecommendationResult{
		UserFocuses:          profile.Focuses,
		TotalRecommendations: len(matched),
		Programs:             matched,
	}, nil
}
