package list_workers

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

type CatalogService interface {
	ListWorkers(ctx context.Context, specialty *string) (*models.WorkerListResponse, error)
	WorkersForService(ctx context.Context, serviceID int64) (*models.WorkerListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
