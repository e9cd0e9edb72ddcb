package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ReservationService/pkg/authtoken"
	"github.com/m04kA/SMC-ReservationService/pkg/password"
)

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(*domain.User)
	return created, args.Error(1)
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(users *mockUsers) (*Service, *authtoken.Manager) {
	tokens := authtoken.NewManager("test-secret", time.Hour, "reservation-service")
	return NewService(users, tokens, bcrypt.MinCost, nopLogger{}), tokens
}

func TestService_Signup(t *testing.T) {
	users := &mockUsers{}
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "guest@example.com" && u.Role == domain.RoleClient &&
			password.Verify(u.PasswordHash, "secret123") == nil
	})).Return(&domain.User{ID: 5}, nil)

	svc, _ := newService(users)
	resp, err := svc.Signup(context.Background(), &SignupRequest{Email: " Guest@Example.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.UserID)
}

func TestService_SignupErrors(t *testing.T) {
	users := &mockUsers{}
	users.On("Create", mock.Anything, mock.Anything).Return(nil, userRepo.ErrUserExists)
	svc, _ := newService(users)

	_, err := svc.Signup(context.Background(), &SignupRequest{Email: "taken@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Signup(context.Background(), &SignupRequest{Email: "not-an-email", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Signup(context.Background(), &SignupRequest{Email: "short@example.com", Password: "123"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Login(t *testing.T) {
	hash, err := password.Hash("admin123", bcrypt.MinCost)
	require.NoError(t, err)

	users := &mockUsers{}
	users.On("GetByEmail", mock.Anything, "admin@restaurant.com").
		Return(&domain.User{ID: 1, Email: "admin@restaurant.com", PasswordHash: hash, Role: domain.RoleAdmin}, nil)
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, userRepo.ErrUserNotFound)

	svc, tokens := newService(users)

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "admin@restaurant.com", Password: "admin123"})
	require.NoError(t, err)

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "admin", claims.Role)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "admin@restaurant.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
