package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
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
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	grid domain.SlotGrid,
	conflictMode domain.ConflictMode,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
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

// Execute выполняет use case создания бронирования.
// Проверка слота и вставка выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, session *domain.Session, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: session=%s, service=%d, worker=%d, date=%s, time=%s",
		session.ID, req.ServiceID, req.WorkerID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	clientName, clientEmail, err := resolveClient(req, session)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата и время
	now := uc.timeProvider.Now().In(uc.location)
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateTimeSlot(uc.grid, req.StartTime); err != nil {
		uc.logger.Warn("CreateBooking: time validation failed: %v", err)
		return nil, err
	}

	// 3. Услуга и мастер из каталога
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	worker, err := uc.catalogRepo.GetWorkerByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrWorkerNotFound) {
			uc.logger.Warn("CreateBooking: worker id=%d not found", req.WorkerID)
			return nil, ErrWorkerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get worker id=%d: %v", req.WorkerID, err)
		return nil, fmt.Errorf("%w: failed to get worker: %v", ErrInternal, err)
	}

	// 4. Специализация мастера должна совпадать с категорией услуги
	if !worker.CanPerform(service) {
		uc.logger.Warn("CreateBooking: worker %q (%s) cannot perform %q (%s)",
			worker.Name, worker.Specialty, service.Name, service.Category)
		return nil, ErrWorkerCannotPerform
	}

	isFree := domain.SlotChecker(uc.conflictMode)
	date := domain.DateOnly(req.Date)

	var result *domain.Booking

	// 5. Проверка доступности и вставка под writer-локом
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		filter := domain.BookingFilter{
			WorkerName: &worker.Name,
			StartDate:  &date,
			EndDate:    &date,
		}

		bookings, err := uc.bookingRepo.List(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if !isFree(bookings, worker.Name, date, req.StartTime, service.DurationMinutes) {
			uc.logger.Warn("CreateBooking: slot %s %s for %q is taken (mode=%s)",
				date.Format(domain.DateFormat), req.StartTime, worker.Name, uc.conflictMode)
			uc.metrics.SlotConflict(worker.Name)
			return ErrSlotNotAvailable
		}

		// Денормализация данных услуги и мастера
		booking := &domain.Booking{
			ClientName:      clientName,
			ClientEmail:     clientEmail,
			ServiceName:     service.Name,
			WorkerName:      worker.Name,
			DurationMinutes: service.DurationMinutes,
			Price:           service.Price,
			Date:            date,
			Time:            req.StartTime,
			Status:          domain.StatusConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.BookingCreated(string(service.Category))

	message := bookedMessage(result.Date, result.Time)
	uc.notifier.Push(session.ID, domain.NotificationSuccess, message)

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientName:      result.ClientName,
		ClientEmail:     result.ClientEmail,
		ServiceName:     result.ServiceName,
		WorkerName:      result.WorkerName,
		DurationMinutes: result.DurationMinutes,
		Price:           result.Price,
		BookingDate:     result.Date,
		StartTime:       result.Time,
		Status:          string(result.Status),
		Message:         message,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
