package signup

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/auth"
)

type AuthService interface {
	Signup(ctx context.Context, req *auth.SignupRequest) (*auth.SignupResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
