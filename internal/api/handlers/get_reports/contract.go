package get_reports

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
)

type ReportsService interface {
	Summary(ctx context.Context, session *domain.Session) (*models.SummaryResponse, error)
	ServiceStats(ctx context.Context, session *domain.Session) (*models.ServiceStatsResponse, error)
	WorkerStats(ctx context.Context, session *domain.Session) (*models.WorkerStatsResponse, error)
	FrequentClients(ctx context.Context, session *domain.Session, limit int) (*models.FrequentClientsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
