package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists     = errors.New("user with this email already exists")
	ErrUsernameAlreadyExists = errors.New("username already taken")
	ErrAuthenticationFailed  = errors.New("authentication failed: invalid credentials")
	ErrWeakPassword          = errors.New("password must be at least 8 characters with an uppercase letter, a number and a special character")
	ErrInvalidUsername       = errors.New("username must be 1-16 characters")
	ErrHashingFailed         = errors.New("failed to hash password")
	ErrTokenGeneration       = errors.New("failed to generate authentication token")
)

var (
	passwordUppercase = regexp.MustCompile(`[A-Z]`)
	passwordDigit     = regexp.MustCompile(`[0-9]`)
	passwordSpecial   = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// AuthService handles registration, login and token issuance.
type AuthService interface {
	Register(ctx context.Context, username, email, password, firstName, lastName string, role domain.Role) (*domain.User, error)
	// Login accepts a username or an email address.
	Login(ctx context.Context, login, password string) (token string, user *domain.User, err error)
	GetJWTSecret() string
}

type authService struct {
	userRepo           repository.UserRepository
	trainerProfileRepo repository.TrainerProfileRepository
	jwtSecret          string
	jwtExpiration      time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	userRepo repository.UserRepository,
	trainerProfileRepo repository.TrainerProfileRepository,
	jwtSecret string,
	jwtExpiration time.Duration,
) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		userRepo:           userRepo,
		trainerProfileRepo: trainerProfileRepo,
		jwtSecret:          jwtSecret,
		jwtExpiration:      jwtExpiration,
	}
}

// validatePassword enforces the signup password policy: minimum 8 characters
// with at least one uppercase letter, one digit and one special character.
func validatePassword(password string) error {
	if len(password) < 8 ||
		!passwordUppercase.MatchString(password) ||
		!passwordDigit.MatchString(password) ||
		!passwordSpecial.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}

// Register handles new user registration. Trainers get an empty trainer
// profile created alongside the account.
func (s *authService) Register(ctx context.Context, username, email, password, firstName, lastName string, role domain.Role) (*domain.User, error) {
	if username == "" || len(username) > 16 {
		return nil, ErrInvalidUsername
	}
	if email == "" || password == "" || role == "" {
		return nil, errors.New("email, password, and role cannot be empty")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique index closes the race between the existence check and
		// the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID

	if user.IsTrainer() {
		if _, err := s.trainerProfileRepo.Create(ctx, &domain.TrainerProfile{UserID: userID}); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
	}

	user.PasswordHash = ""
	return user, nil
}

// Login authenticates by username or email and returns a signed JWT.
func (s *authService) Login(ctx context.Context, login, password string) (token string, user *domain.User, err error) {
	if login == "" || password == "" {
		err = errors.New("login and password cannot be empty")
		return
	}

	if strings.Contains(login, "@") {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(login)))
	} else {
		user, err = s.userRepo.GetByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed
			user = nil
			return
		}
		return
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		err = ErrAuthenticationFailed
		user = nil
		return
	}

	token, err = s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fitiva",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
