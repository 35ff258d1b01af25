package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда роль сессии не дает доступа к бронированию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// TransitionError недопустимый переход статуса с перечнем разрешенных статусов
type TransitionError struct {
	From    domain.BookingStatus
	To      domain.BookingStatus
	Allowed []domain.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: %s -> %s: allowed %v", ErrInvalidTransition, e.From, e.To, e.Allowed)
}

func (e *TransitionError) Unwrap() []error {
	return []error{ErrInvalidTransition, domain.ErrInvalidTransition}
}
