package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// Результаты для метрики переходов
const (
	transitionOK       = "ok"
	transitionRejected = "rejected"
	transitionNotFound = "not_found"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	notifier    Notifier
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
	}
}

// VisibleBookings проекция реестра для роли сессии:
// клиент видит свои бронирования (по email), мастер - назначенные ему (по имени), администратор - все.
// Отмененные включаются.
func (s *Service) VisibleBookings(ctx context.Context, session *domain.Session) ([]*domain.Booking, error) {
	filter, err := roleFilter(session)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("VisibleBookings: repository error for session=%s: %v", session.ID, err)
		return nil, fmt.Errorf("%w: VisibleBookings - repository error: %v", ErrInternal, err)
	}
	return bookings, nil
}

// List возвращает бронирования, видимые сессии, с дополнительными фильтрами.
// Фильтр по чужому email (клиент) или чужому имени (мастер) - ErrAccessDenied.
func (s *Service) List(ctx context.Context, session *domain.Session, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for session=%s role=%s", session.ID, session.User.Role)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	switch session.User.Role {
	case domain.RoleClient:
		if filter.ClientEmail != nil && *filter.ClientEmail != session.User.Email {
			return nil, ErrAccessDenied
		}
		email := session.User.Email
		filter.ClientEmail = &email
	case domain.RoleWorker:
		if filter.WorkerName != nil && *filter.WorkerName != session.User.Name {
			return nil, ErrAccessDenied
		}
		name := session.User.Name
		filter.WorkerName = &name
	case domain.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: %v", ErrAccessDenied, session.User.Role.Validate())
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings for session=%s", len(bookings), session.ID)
	return models.FromDomainBookingList(bookings), nil
}

// GetByID получает бронирование по ID с проверкой доступа роли
func (s *Service) GetByID(ctx context.Context, session *domain.Session, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for session=%s", id, session.ID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !canView(session, booking) {
		s.logger.Warn("GetByID: access denied for session=%s to booking id=%d", session.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// SetStatus меняет статус бронирования по графу переходов.
// Отсутствующий ID - не ошибка: возвращается StatusNotFound, реестр не меняется.
//
// Права: администратор - любое бронирование; мастер - только назначенные ему;
// клиент - только отмена своих.
func (s *Service) SetStatus(ctx context.Context, session *domain.Session, id int64, req *models.UpdateStatusRequest) (*models.SetStatusResponse, error) {
	s.logger.Info("SetStatus: booking id=%d to status=%s by session=%s", id, req.Status, session.ID)

	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("SetStatus: invalid status=%s for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.setStatus(ctx, session, id, newStatus, domain.NotificationSuccess, updateMessage(session.User.Role, newStatus))
}

// Cancel отменяет бронирование (status -> cancelada)
func (s *Service) Cancel(ctx context.Context, session *domain.Session, id int64) (*models.SetStatusResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by session=%s", id, session.ID)
	return s.setStatus(ctx, session, id, domain.StatusCancelled, domain.NotificationInfo, "Cita cancelada exitosamente")
}

func (s *Service) setStatus(ctx context.Context, session *domain.Session, id int64, newStatus domain.BookingStatus, kind domain.NotificationKind, message string) (*models.SetStatusResponse, error) {
	var (
		booking *domain.Booking
		from    domain.BookingStatus
		result  = models.StatusUpdated
	)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				result = models.StatusNotFound
				return nil
			}
			return fmt.Errorf("%w: setStatus - get booking: %v", ErrInternal, err)
		}

		if err := checkMutationAccess(session, booking, newStatus); err != nil {
			return err
		}

		from = booking.Status
		if !from.CanTransitionTo(newStatus) {
			return &TransitionError{From: from, To: newStatus, Allowed: from.AllowedTransitions()}
		}

		if err := s.bookingRepo.UpdateStatus(ctx, id, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				result = models.StatusNotFound
				return nil
			}
			return fmt.Errorf("%w: setStatus - update status: %v", ErrInternal, err)
		}

		booking.Status = newStatus
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTransition):
			s.metrics.StatusTransition(string(from), string(newStatus), transitionRejected)
			s.logger.Warn("setStatus: booking id=%d: %v", id, err)
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("setStatus: access denied for session=%s to booking id=%d", session.ID, id)
		default:
			s.logger.Error("setStatus: booking id=%d: %v", id, err)
		}
		return nil, err
	}

	if result == models.StatusNotFound {
		s.metrics.StatusTransition("", string(newStatus), transitionNotFound)
		s.logger.Warn("setStatus: booking id=%d not found, ledger unchanged", id)
		return &models.SetStatusResponse{Result: models.StatusNotFound}, nil
	}

	s.metrics.StatusTransition(string(from), string(newStatus), transitionOK)
	s.notifier.Push(session.ID, kind, message)

	s.logger.Info("setStatus: booking id=%d %s -> %s", id, from, newStatus)
	return &models.SetStatusResponse{
		Result:  models.StatusUpdated,
		Booking: models.FromDomainBooking(booking),
	}, nil
}

// Вспомогательные методы

// roleFilter базовый фильтр проекции реестра для роли
func roleFilter(session *domain.Session) (domain.BookingFilter, error) {
	filter := domain.BookingFilter{IncludeInactive: true}

	switch session.User.Role {
	case domain.RoleClient:
		email := session.User.Email
		filter.ClientEmail = &email
	case domain.RoleWorker:
		name := session.User.Name
		filter.WorkerName = &name
	case domain.RoleAdmin:
	default:
		return filter, fmt.Errorf("%w: %v", ErrAccessDenied, session.User.Role.Validate())
	}
	return filter, nil
}

// canView проверяет, что бронирование входит в проекцию роли
func canView(session *domain.Session, booking *domain.Booking) bool {
	switch session.User.Role {
	case domain.RoleClient:
		return booking.ClientEmail == session.User.Email
	case domain.RoleWorker:
		return booking.WorkerName == session.User.Name
	case domain.RoleAdmin:
		return true
	default:
		return false
	}
}

func checkMutationAccess(session *domain.Session, booking *domain.Booking, newStatus domain.BookingStatus) error {
	if !canView(session, booking) {
		return ErrAccessDenied
	}
	if session.User.Role == domain.RoleClient && newStatus != domain.StatusCancelled {
		return ErrAccessDenied
	}
	return nil
}

// updateMessage текст уведомления об изменении статуса
func updateMessage(role domain.Role, status domain.BookingStatus) string {
	if role == domain.RoleAdmin {
		return "Estado de cita actualizado"
	}

	switch status {
	case domain.StatusConfirmed:
		return "Cita confirmada"
	case domain.StatusCompleted:
		return "Cita marcada como completada"
	case domain.StatusCancelled:
		return "Cita cancelada"
	case domain.StatusPending:
		return "Estado actualizado"
	default:
		return "Estado actualizado"
	}
}
