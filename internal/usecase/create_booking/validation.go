package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.WorkerID <= 0 {
		return fmt.Errorf("%w: workerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// resolveClient определяет имя и email клиента: явные значения запроса или данные сессии
func resolveClient(req *Request, session *domain.Session) (string, string, error) {
	name := session.User.Name
	if req.ClientName != nil && strings.TrimSpace(*req.ClientName) != "" {
		name = strings.TrimSpace(*req.ClientName)
	}

	email := session.User.Email
	if req.ClientEmail != nil && strings.TrimSpace(*req.ClientEmail) != "" {
		email = strings.TrimSpace(*req.ClientEmail)
	}

	// Клиент бронирует только на себя
	if session.User.Role == domain.RoleClient {
		email = session.User.Email
	}

	if name == "" {
		return "", "", fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if email == "" {
		return "", "", fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}
	return name, email, nil
}

// validateDate проверяет, что дата не в прошлом относительно now
func validateDate(bookingDate time.Time, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, bookingDate.Format(domain.DateFormat))
	}
	return nil
}

// validateTimeSlot проверяет, что время совпадает с одним из слотов сетки
func validateTimeSlot(grid domain.SlotGrid, startTime types.TimeString) error {
	if !grid.Contains(startTime) {
		return fmt.Errorf("%w: %s is not on the %s-%s grid every %d minutes",
			ErrInvalidTimeSlot, startTime, grid.Open, grid.Close, grid.StepMinutes)
	}
	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now))
}

// bookedMessage текст уведомления о новом бронировании
func bookedMessage(date time.Time, startTime types.TimeString) string {
	return fmt.Sprintf("Cita reservada para el %s a las %s", date.Format(domain.DateFormat), startTime)
}
