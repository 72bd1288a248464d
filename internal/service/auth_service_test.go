package service

import (
	"context"
	"testing"
	"time"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/repository/memory"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newAuthFixture() (AuthService, *memory.UserRepository, *memory.TrainerProfileRepository) {
	userRepo := memory.NewUserRepository()
	trainerProfileRepo := memory.NewTrainerProfileRepository()
	svc := NewAuthService(userRepo, trainerProfileRepo, testJWTSecret, time.Hour)
	return svc, userRepo, trainerProfileRepo
}

func registerUser(t *testing.T, svc AuthService, username, email string, role domain.Role) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), username, email, "Str0ng!pass", "Test", "User", role)
	require.NoError(t, err)
	return user
}

func TestRegisterTrainee(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()

	user := registerUser(t, svc, "alice", "Alice@Example.com", domain.RoleTrainee)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email, "email normalized to lowercase")
	assert.Empty(t, user.PasswordHash, "hash never leaves the service")

	stored, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "Str0ng!pass", stored.PasswordHash)
}

func TestRegisterTrainerCreatesTrainerProfile(t *testing.T) {
	svc, _, trainerProfileRepo := newAuthFixture()

	user := registerUser(t, svc, "coach", "coach@example.com", domain.RoleTrainer)

	profile, err := trainerProfileRepo.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
}

func TestRegisterDuplicateEmailAndUsername(t *testing.T) {
	svc, _, _ := newAuthFixture()
	registerUser(t, svc, "alice", "alice@example.com", domain.RoleTrainee)

	_, err := svc.Register(context.Background(), "bob", "alice@example.com", "Str0ng!pass", "", "", domain.RoleTrainee)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = svc.Register(context.Background(), "alice", "other@example.com", "Str0ng!pass", "", "", domain.RoleTrainee)
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestRegisterPasswordPolicy(t *testing.T) {
	svc, _, _ := newAuthFixture()

	weak := []string{
		"short1!",     // too short
		"alllower1!",  // no uppercase
		"NoDigits!!",  // no digit
		"NoSpecial11", // no special character
	}
	for _, password := range weak {
		_, err := svc.Register(context.Background(), "user", "user@example.com", password, "", "", domain.RoleTrainee)
		assert.ErrorIs(t, err, ErrWeakPassword, "password %q should be rejected", password)
	}
}

func TestRegisterUsernameLength(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), "", "user@example.com", "Str0ng!pass", "", "", domain.RoleTrainee)
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = svc.Register(context.Background(), "seventeen-letters", "user@example.com", "Str0ng!pass", "", "", domain.RoleTrainee)
	assert.ErrorIs(t, err, ErrInvalidUsername)
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	registered := registerUser(t, svc, "alice", "alice@example.com", domain.RoleTrainee)

	token, user, err := svc.Login(context.Background(), "alice", "Str0ng!pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)

	_, user, err = svc.Login(context.Background(), "Alice@Example.com", "Str0ng!pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()
	registerUser(t, svc, "alice", "alice@example.com", domain.RoleTrainee)

	_, _, err := svc.Login(context.Background(), "alice", "WrongPass1!")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(context.Background(), "nobody", "Str0ng!pass")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLoginTokenCarriesClaims(t *testing.T) {
	svc, _, _ := newAuthFixture()
	registered := registerUser(t, svc, "coach", "coach@example.com", domain.RoleTrainer)

	token, _, err := svc.Login(context.Background(), "coach", "Str0ng!pass")
	require.NoError(t, err)

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, registered.ID.Hex(), claims.UserID)
	assert.Equal(t, domain.RoleTrainer, claims.Role)
	assert.Equal(t, "fitiva", claims.Issuer)
}
