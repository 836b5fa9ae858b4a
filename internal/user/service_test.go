// File: internal/user/service_test.go
package user

import (
	"context"
	"net/http"
	"testing"
	"time"

	"devconnect_backend/internal/common"
	"devconnect_backend/internal/config"
	"devconnect_backend/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a hand-rolled mock for the user Repository interface.
type MockUserRepository struct {
	CreateFn      func(ctx context.Context, user *User) error
	FindByEmailFn func(ctx context.Context, email string) (*User, error)
	FindByIDFn    func(ctx context.Context, id uuid.UUID) (*User, error)
	DeleteFn      func(ctx context.Context, id uuid.UUID) error

	CreateCalls int
}

func (m *MockUserRepository) Create(ctx context.Context, user *User) error {
	m.CreateCalls++
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}
	return nil, common.ErrNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, common.ErrNotFound
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// stubTokenService returns a fixed token for any user.
type stubTokenService struct {
	token string
	err   error
}

func (s *stubTokenService) GenerateToken(userID uuid.UUID) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return s.token, time.Now().Add(time.Hour), nil
}

func (s *stubTokenService) ValidateToken(token string) (*shared.Claims, error) {
	return nil, common.ErrUnauthorized
}

var _ Repository = (*MockUserRepository)(nil)
var _ shared.TokenService = (*stubTokenService)(nil)

func newTestService(repo Repository, tokens shared.TokenService) *ServiceImplementation {
	logger, _ := zap.NewDevelopment()
	cfg := &config.Config{JWTSecretKey: "test-secret", JWTExpiry: time.Hour}
	return NewService(repo, tokens, cfg, logger)
}

func TestRegister_Success(t *testing.T) {
	var created *User
	mockRepo := &MockUserRepository{
		FindByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return nil, common.ErrNotFound.WithDetails("User not found with this email.")
		},
		CreateFn: func(ctx context.Context, user *User) error {
			user.ID = uuid.New()
			created = user
			return nil
		},
	}
	svc := newTestService(mockRepo, &stubTokenService{token: "signed-token"})

	token, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)

	require.NotNil(t, created)
	assert.Equal(t, "John Doe", created.Name)
	assert.Equal(t, "john@example.com", created.Email)
	assert.NotEqual(t, "123456", created.PasswordHash, "password must be stored hashed")
	assert.True(t, CheckPasswordHash("123456", created.PasswordHash))
	assert.Contains(t, created.AvatarURL, "gravatar.com/avatar/")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	existing := &User{Email: "john@example.com"}
	existing.ID = uuid.New()
	mockRepo := &MockUserRepository{
		FindByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return existing, nil
		},
	}
	svc := newTestService(mockRepo, &stubTokenService{token: "signed-token"})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "123456",
	})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "User already exists!", apiErr.Message)
	assert.Zero(t, mockRepo.CreateCalls, "no write should happen for a duplicate email")
}

func TestRegister_ConflictRace(t *testing.T) {
	// A concurrent registration wins the unique index between the lookup and
	// the insert. The caller still sees the duplicate-email response.
	mockRepo := &MockUserRepository{
		FindByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return nil, common.ErrNotFound
		},
		CreateFn: func(ctx context.Context, user *User) error {
			return common.ErrConflict.WithDetails("User with this email already exists.")
		},
	}
	svc := newTestService(mockRepo, &stubTokenService{token: "signed-token"})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "123456",
	})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "User already exists!", apiErr.Message)
}

func TestLogin_Success(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)

	stored := &User{Email: "john@example.com", PasswordHash: hash}
	stored.ID = uuid.New()
	mockRepo := &MockUserRepository{
		FindByEmailFn: func(ctx context.Context, email string) (*User, error) {
			assert.Equal(t, "john@example.com", email)
			return stored, nil
		},
	}
	svc := newTestService(mockRepo, &stubTokenService{token: "signed-token"})

	token, err := svc.Login(context.Background(), "john@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)

	stored := &User{Email: "john@example.com", PasswordHash: hash}
	stored.ID = uuid.New()
	mockRepo := &MockUserRepository{
		FindByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return stored, nil
		},
	}
	svc := newTestService(mockRepo, &stubTokenService{token: "signed-token"})

	_, err = svc.Login(context.Background(), "john@example.com", "wrong-password")
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid Credentials!", apiErr.Message)
}

func TestLogin_UnknownEmail(t *testing.T) {
	mockRepo := &MockUserRepository{
		FindByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return nil, common.ErrNotFound.WithDetails("User not found with this email.")
		},
	}
	svc := newTestService(mockRepo, &stubTokenService{token: "signed-token"})

	_, err := svc.Login(context.Background(), "nobody@example.com", "123456")
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid Credentials!", apiErr.Message,
		"unknown email and wrong password must be indistinguishable")
}

func TestGetByID(t *testing.T) {
	stored := &User{Name: "John Doe", Email: "john@example.com"}
	stored.ID = uuid.New()
	mockRepo := &MockUserRepository{
		FindByIDFn: func(ctx context.Context, id uuid.UUID) (*User, error) {
			if id == stored.ID {
				return stored, nil
			}
			return nil, common.ErrNotFound
		},
	}
	svc := newTestService(mockRepo, &stubTokenService{token: "signed-token"})

	got, err := svc.GetByID(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Email, got.Email)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.Error(t, err)
}
