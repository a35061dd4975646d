package service

import (
	"context"
	"errors"
	"time"

	"github.com/blog-publishing-api/internal/config"
	"github.com/blog-publishing-api/internal/models"
	"github.com/blog-publishing-api/internal/repository"
	"github.com/blog-publishing-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// credentialService is the concrete implementation of CredentialService
type credentialService struct {
	users     repository.UserRepository
	validator *validation.Validator
	cost      int
	// dummyHash is compared against when the user does not exist, so that
	// unknown usernames take as long to reject as wrong passwords.
	dummyHash []byte
	log       zerolog.Logger
}

// newCredentialService creates a new CredentialService
func newCredentialService(users repository.UserRepository, cfg config.AuthConfig, log zerolog.Logger) (*credentialService, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cfg.BcryptCost)
	if err != nil {
		return nil, serverError(CodeHash, "generate dummy hash", err)
	}
	return &credentialService{
		users:     users,
		validator: validation.NewValidator(),
		cost:      cfg.BcryptCost,
		dummyHash: dummy,
		log:       log.With().Str("service", "credentials").Logger(),
	}, nil
}

// Register stores a new user with a bcrypt hash of password
func (s *credentialService) Register(ctx context.Context, username, password string) (string, error) {
	if errs := s.validator.ValidateCredentials(username, password); len(errs) > 0 {
		return "", validationFailed(errs)
	}

	exists, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return "", serverError(CodeStorage, "check username", err)
	}
	if exists {
		return "", ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", serverError(CodeHash, "hash password", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrDuplicateUsername
		}
		return "", serverError(CodeStorage, "create user", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("username", username).Msg("User registered")
	return user.ID, nil
}

// Verify checks password against the stored hash and returns the user ID
func (s *credentialService) Verify(ctx context.Context, username, password string) (string, error) {
	// Register never stores such a name
	if !validation.WellFormed(username) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return "", ErrUserNotFound
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", serverError(CodeStorage, "get user", err)
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return "", ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrWrongPassword
		}
		return "", serverError(CodeHash, "compare password", err)
	}

	return user.ID, nil
}
