package get_demo_accounts

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/auth/models"
)

type AuthService interface {
	DemoAccounts(ctx context.Context) *models.DemoAccountListResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
