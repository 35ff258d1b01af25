package logout

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type AuthService interface {
	Logout(ctx context.Context, session *domain.Session)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
