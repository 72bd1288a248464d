// Package memory provides in-memory implementations of the repository
// interfaces. They back the service and handler tests, which exercise the
// real service logic without a running MongoDB.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) || u.Username == user.Username {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *UserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}

// ProfileRepository is an in-memory repository.ProfileRepository.
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[primitive.ObjectID]domain.FitnessProfile // keyed by user ID
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[primitive.ObjectID]domain.FitnessProfile)}
}

func (r *ProfileRepository) Create(_ context.Context, profile *domain.FitnessProfile) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[profile.UserID]; exists {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	profile.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.profiles[profile.UserID] = *profile
	return profile.ID, nil
}

func (r *ProfileRepository) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.FitnessProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.profiles[userID]; ok {
		copied := p
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *ProfileRepository) Update(_ context.Context, profile *domain.FitnessProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.profiles[profile.UserID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Age = profile.Age
	existing.ExperienceLevel = profile.ExperienceLevel
	existing.TrainingLocation = profile.TrainingLocation
	existing.Focuses = profile.Focuses
	existing.UpdatedAt = time.Now().UTC()
	r.profiles[profile.UserID] = existing
	return nil
}

// TrainerProfileRepository is an in-memory repository.TrainerProfileRepository.
type TrainerProfileRepository struct {
	mu       sync.RWMutex
	profiles map[primitive.ObjectID]domain.TrainerProfile // keyed by user ID
}

func NewTrainerProfileRepository() *TrainerProfileRepository {
	return &TrainerProfileRepository{profiles: make(map[primitive.ObjectID]domain.TrainerProfile)}
}

func (r *TrainerProfileRepository) Create(_ context.Context, profile *domain.TrainerProfile) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[profile.UserID]; exists {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	profile.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.profiles[profile.UserID] = *profile
	return profile.ID, nil
}

func (r *TrainerProfileRepository) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.TrainerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.profiles[userID]; ok {
		copied := p
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *TrainerProfileRepository) Update(_ context.Context, profile *domain.TrainerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.UserID]; !ok {
		return repository.ErrNotFound
	}
	profile.UpdatedAt = time.Now().UTC()
	r.profiles[profile.UserID] = *profile
	return nil
}

// ProgramRepository is an in-memory repository.ProgramRepository. Programs
// are returned in creation order, matching the Mongo implementation.
type ProgramRepository struct {
	mu       sync.RWMutex
	programs map[primitive.ObjectID]domain.Program
	order    []primitive.ObjectID
}

func NewProgramRepository() *ProgramRepository {
	return &ProgramRepository{programs: make(map[primitive.ObjectID]domain.Program)}
}

func (r *ProgramRepository) Create(_ context.Context, program *domain.Program) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	program.ID = primitive.NewObjectID()
	for i := range program.Sections {
		program.Sections[i].ID = primitive.NewObjectID()
		for j := range program.Sections[i].Exercises {
			program.Sections[i].Exercises[j].ID = primitive.NewObjectID()
		}
	}
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now
	r.programs[program.ID] = *program
	r.order = append(r.order, program.ID)
	return program.ID, nil
}

func (r *ProgramRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.programs[id]; ok {
		copied := p
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *ProgramRepository) GetPublished(_ context.Context) ([]domain.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []domain.Program{}
	for _, id := range r.order {
		p := r.programs[id]
		if !p.IsDeleted && !p.IsDraft {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *ProgramRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	result := []domain.Program{}
	for _, id := range r.order {
		p := r.programs[id]
		if wanted[id] && !p.IsDeleted {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *ProgramRepository) GetByTrainerID(_ context.Context, trainerID primitive.ObjectID, includeDeleted bool) ([]domain.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []domain.Program{}
	for _, id := range r.order {
		p := r.programs[id]
		if p.TrainerID != trainerID {
			continue
		}
		if p.IsDeleted && !includeDeleted {
			continue
		}
		result = append(result, p)
	}
	// Newest first, matching the Mongo sort.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *ProgramRepository) Update(_ context.Context, program *domain.Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.programs[program.ID]; !ok {
		return repository.ErrNotFound
	}
	program.UpdatedAt = time.Now().UTC()
	r.programs[program.ID] = *program
	return nil
}

func (r *ProgramRepository) MarkDeleted(_ context.Context, id, trainerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[id]
	if !ok || p.TrainerID != trainerID {
		return repository.ErrNotFound
	}
	p.IsDeleted = true
	p.UpdatedAt = time.Now().UTC()
	r.programs[id] = p
	return nil
}

// ScheduleRepository is an in-memory repository.ScheduleRepository.
type ScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[primitive.ObjectID]domain.Schedule
}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{schedules: make(map[primitive.ObjectID]domain.Schedule)}
}

func (r *ScheduleRepository) Create(_ context.Context, schedule *domain.Schedule) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if schedule.IsActive {
		for _, s := range r.schedules {
			if s.UserID == schedule.UserID && s.IsActive {
				return primitive.NilObjectID, repository.ErrDuplicate
			}
		}
	}
	schedule.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now
	r.schedules[schedule.ID] = *schedule
	return schedule.ID, nil
}

func (r *ScheduleRepository) GetActiveByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.schedules {
		if s.UserID == userID && s.IsActive {
			copied := s
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ScheduleRepository) Update(_ context.Context, schedule *domain.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.schedules[schedule.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.ProgramIDs = schedule.ProgramIDs
	existing.RestDays = schedule.RestDays
	existing.IsActive = schedule.IsActive
	existing.UpdatedAt = time.Now().UTC()
	r.schedules[schedule.ID] = existing
	return nil
}

func (r *ScheduleRepository) Deactivate(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.schedules {
		if s.UserID == userID && s.IsActive {
			s.IsActive = false
			s.UpdatedAt = time.Now().UTC()
			r.schedules[id] = s
		}
	}
	return nil
}

// TemplateRepository is an in-memory repository.TemplateRepository.
type TemplateRepository struct {
	mu        sync.RWMutex
	templates map[primitive.ObjectID]domain.ExerciseTemplate
}

func NewTemplateRepository() *TemplateRepository {
	return &TemplateRepository{templates: make(map[primitive.ObjectID]domain.ExerciseTemplate)}
}

func (r *TemplateRepository) Create(_ context.Context, template *domain.ExerciseTemplate) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.templates {
		if t.Name == template.Name {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	template.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now
	r.templates[template.ID] = *template
	return template.ID, nil
}

func (r *TemplateRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ExerciseTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.templates[id]; ok {
		copied := t
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *TemplateRepository) GetByName(_ context.Context, name string) (*domain.ExerciseTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.templates {
		if t.Name == name {
			copied := t
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *TemplateRepository) GetAll(_ context.Context) ([]domain.ExerciseTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.ExerciseTemplate, 0, len(r.templates))
	for _, t := range r.templates {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *TemplateRepository) Update(_ context.Context, template *domain.ExerciseTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[template.ID]; !ok {
		return repository.ErrNotFound
	}
	template.UpdatedAt = time.Now().UTC()
	r.templates[template.ID] = *template
	return nil
}

// SessionRepository is an in-memory repository.SessionRepository.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[primitive.ObjectID]domain.WorkoutSession
	feedback map[primitive.ObjectID]domain.SessionFeedback // keyed by session ID
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[primitive.ObjectID]domain.WorkoutSession),
		feedback: make(map[primitive.ObjectID]domain.SessionFeedback),
	}
}

func dayKey(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r *SessionRepository) Create(_ context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session.Date = dayKey(session.Date)
	for _, s := range r.sessions {
		if s.UserID == session.UserID && s.Date.Equal(session.Date) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	session.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	r.sessions[session.ID] = *session
	return session.ID, nil
}

func (r *SessionRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[id]; ok {
		copied := s
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *SessionRepository) GetByUserAndDate(_ context.Context, userID primitive.ObjectID, date time.Time) (*domain.WorkoutSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := dayKey(date)
	for _, s := range r.sessions {
		if s.UserID == userID && s.Date.Equal(key) {
			copied := s
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *SessionRepository) Update(_ context.Context, session *domain.WorkoutSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.sessions[session.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Status = session.Status
	existing.DurationMinutes = session.DurationMinutes
	existing.Notes = session.Notes
	existing.ProgramID = session.ProgramID
	existing.UpdatedAt = time.Now().UTC()
	r.sessions[session.ID] = existing
	return nil
}

func (r *SessionRepository) CreateFeedback(_ context.Context, feedback *domain.SessionFeedback) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.feedback[feedback.SessionID]; exists {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	feedback.ID = primitive.NewObjectID()
	feedback.CreatedAt = time.Now().UTC()
	r.feedback[feedback.SessionID] = *feedback
	return feedback.ID, nil
}

func (r *SessionRepository) GetFeedbackBySessionID(_ context.Context, sessionID primitive.ObjectID) (*domain.SessionFeedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.feedback[sessionID]; ok {
		copied := f
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}
