package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quizhub/internal/models"
	"quizhub/internal/repository"
	"quizhub/pkg/auth"

	"go.mongodb.org/mongo-driver/mongo"
)

const minPasswordLength = 6

type AuthService struct {
	Users     *repository.UserRepository
	jwtSecret string
}

func NewAuthService(users *repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{Users: users, jwtSecret: jwtSecret}
}

// Register creates a user and returns a signed token for it. Duplicate
// emails surface as ErrEmailTaken via the unique index.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, *models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return "", nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	user := &models.User{
		Name:      name,
		Email:     email,
		Role:      "user",
		CreatedAt: time.Now(),
	}
	if err := user.SetPassword(password); err != nil {
		return "", nil, err
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}

	token, err := auth.GenerateToken(user, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.CheckPassword(password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
