// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"devconnect_backend/internal/common"
	"devconnect_backend/internal/config"
	"devconnect_backend/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for user-related business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// ServiceImplementation implements the user Service interface.
type ServiceImplementation struct {
	repo         Repository
	tokenService shared.TokenService
	cfg          *config.Config
	logger       *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(
	repo Repository,
	tokenService shared.TokenService,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:         repo,
		tokenService: tokenService,
		cfg:          cfg,
		logger:       logger,
	}
}

// Register creates a new user and returns a signed token for immediate auth.
func (s *ServiceImplementation) Register(ctx context.Context, req RegisterRequest) (string, error) {
	// Check if user already exists by email.
	_, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		// User found, so this email is already registered. No write is performed.
		return "", common.NewAPIError(http.StatusBadRequest, "USER_EXISTS", "User already exists!")
	}
	if !errNotFoundStatus(err) {
		return "", fmt.Errorf("failed to check existing user by email: %w", err)
	}
	// At this point the email is available.

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	dbUser := &User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		AvatarURL:    GravatarURL(req.Email),
	}

	if err := s.repo.Create(ctx, dbUser); err != nil {
		s.logger.Error("Failed to create user in repository", zap.Error(err), zap.String("email", req.Email))
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.StatusCode == http.StatusConflict {
			// A concurrent registration won the race on the unique index.
			return "", common.NewAPIError(http.StatusBadRequest, "USER_EXISTS", "User already exists!")
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token, _, err := s.tokenService.GenerateToken(dbUser.ID)
	if err != nil {
		s.logger.Error("Failed to generate token after registration", zap.Error(err), zap.String("userID", dbUser.ID.String()))
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User registered successfully", zap.String("userID", dbUser.ID.String()))
	return token, nil
}

// Login verifies credentials and returns a signed token. The same message is
// returned for unknown email and wrong password so neither field leaks.
func (s *ServiceImplementation) Login(ctx context.Context, email, password string) (string, error) {
	invalidCredentials := common.NewAPIError(http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid Credentials!")

	dbUser, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.StatusCode == http.StatusNotFound {
			s.logger.Info("User not found during login", zap.String("email", email))
			return "", invalidCredentials
		}
		s.logger.Error("Error finding user by email during login", zap.Error(err), zap.String("email", email))
		return "", common.ErrInternalServer.WithDetails("Login failed due to an internal error.")
	}

	if !CheckPasswordHash(password, dbUser.PasswordHash) {
		s.logger.Warn("Invalid password attempt", zap.String("userID", dbUser.ID.String()))
		return "", invalidCredentials
	}

	token, _, err := s.tokenService.GenerateToken(dbUser.ID)
	if err != nil {
		s.logger.Error("Failed to generate token on login", zap.Error(err), zap.String("userID", dbUser.ID.String()))
		return "", common.ErrInternalServer.WithDetails("Could not generate token.")
	}

	return token, nil
}

// GetByID retrieves a user by ID.
func (s *ServiceImplementation) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dbUser, nil
}

// errNotFoundStatus reports whether err carries a not-found API status.
func errNotFoundStatus(err error) bool {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}
