package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ReservationService/pkg/password"
)

const signupMessage = "account created"

// Service регистрация и вход пользователей
type Service struct {
	userRepo   UserRepository
	tokens     TokenIssuer
	bcryptCost int
	logger     Logger
}

// NewService создает новый экземпляр сервиса авторизации
func NewService(userRepo UserRepository, tokens TokenIssuer, bcryptCost int, logger Logger) *Service {
	return &Service{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Signup регистрирует клиента
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(req.Password) < domain.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}

	hash, err := password.Hash(req.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("Signup: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	created, err := s.userRepo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         domain.RoleClient,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserExists) {
			s.logger.Warn("Signup: email %s already registered", email)
			return nil, ErrUserExists
		}
		s.logger.Error("Signup: repository error: %v", err)
		return nil, fmt.Errorf("%w: Signup - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Signup: user id=%d registered", created.ID)
	return &SignupResponse{Message: signupMessage, UserID: created.ID}, nil
}

// Login проверяет пароль и выпускает токен доступа
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := password.Verify(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			s.logger.Warn("Login: wrong password for user id=%d", user.ID)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: failed to verify password for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, string(user.Role), user.IsAdmin())
	if err != nil {
		s.logger.Error("Login: failed to issue token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%d logged in", user.ID)
	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Role:      string(user.Role),
	}, nil
}
