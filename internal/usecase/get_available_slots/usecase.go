package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
)

// UseCase use case для получения слотов мастера на дату
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	timeProvider TimeProvider
	grid         domain.SlotGrid
	conflictMode domain.ConflictMode
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	grid domain.SlotGrid,
	conflictMode domain.ConflictMode,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		timeProvider: &RealTimeProvider{},
		grid:         grid,
		conflictMode: conflictMode,
		location:     location,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: worker=%q, date=%s", req.WorkerName, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 2. Мастер из каталога
	worker, err := uc.catalogRepo.GetWorkerByName(ctx, req.WorkerName)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrWorkerNotFound) {
			uc.logger.Warn("GetAvailableSlots: worker %q not found", req.WorkerName)
			return nil, ErrWorkerNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get worker %q: %v", req.WorkerName, err)
		return nil, fmt.Errorf("%w: failed to get worker: %v", ErrInternal, err)
	}

	// 3. Длительность проверяемого интервала: услуга или шаг сетки
	duration := uc.grid.StepMinutes
	if req.ServiceID != nil {
		service, err := uc.catalogRepo.GetServiceByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if !worker.CanPerform(service) {
			uc.logger.Warn("GetAvailableSlots: worker %q cannot perform %q", worker.Name, service.Name)
			return nil, ErrWorkerCannotPerform
		}
		duration = service.DurationMinutes
	}

	// 4. Сетка слотов
	times, err := uc.grid.Slots()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 5. Активные бронирования мастера на дату
	date := domain.DateOnly(req.Date)
	filter := domain.BookingFilter{
		WorkerName: &worker.Name,
		StartDate:  &date,
		EndDate:    &date,
	}

	bookings, err := uc.bookingRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Доступность каждого слота
	slots := buildSlots(times, duration, worker.Name, date, now, bookings, domain.SlotChecker(uc.conflictMode))

	uc.logger.Info("GetAvailableSlots: generated %d slots for worker=%q, date=%s",
		len(slots), worker.Name, date.Format(domain.DateFormat))

	return &Response{
		Date:       date,
		WorkerName: worker.Name,
		Slots:      slots,
	}, nil
}
