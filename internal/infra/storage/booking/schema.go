package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Даты и время храним в TEXT: одинаково работает в sqlite и postgres
const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
	id               BIGINT PRIMARY KEY,
	client_name      TEXT NOT NULL,
	client_email     TEXT NOT NULL,
	service_name     TEXT NOT NULL,
	worker_name      TEXT NOT NULL,
	booking_date     TEXT NOT NULL,
	start_time       TEXT NOT NULL,
	status           TEXT NOT NULL,
	duration_minutes INTEGER NOT NULL,
	price            BIGINT NOT NULL,
	created_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL
)`

const createSlotIndex = `
CREATE INDEX IF NOT EXISTS idx_bookings_worker_date ON bookings (worker_name, booking_date)`

// Migrate создает таблицу реестра, если её ещё нет
func (r *Repository) Migrate(ctx context.Context) error {
	executor := r.executor(ctx)

	for _, stmt := range []string{createBookingsTable, createSlotIndex} {
		if _, err := executor.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %v", ErrMigrate, err)
		}
	}
	return nil
}

// Seed загружает начальные бронирования с заданными ID.
// Уже существующие ID пропускаются, повторный вызов безопасен.
// Активное бронирование на занятый (мастер, дата, время) отклоняется с ErrSlotTaken.
func (r *Repository) Seed(ctx context.Context, bookings []*domain.Booking) (int, error) {
	inserted := 0
	for _, b := range bookings {
		_, err := r.GetByID(ctx, b.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrBookingNotFound) {
			return inserted, fmt.Errorf("Seed - booking id=%d: %w", b.ID, err)
		}

		if b.IsActive() {
			existing, err := r.List(ctx, domain.BookingFilter{
				WorkerName: &b.WorkerName,
				StartDate:  &b.Date,
				EndDate:    &b.Date,
			})
			if err != nil {
				return inserted, fmt.Errorf("Seed - booking id=%d: %w", b.ID, err)
			}
			if !domain.IsSlotAvailable(existing, b.WorkerName, b.Date, b.Time) {
				return inserted, fmt.Errorf("%w: Seed - booking id=%d: %s %s %s",
					ErrSlotTaken, b.ID, b.WorkerName, b.Date.Format(domain.DateFormat), b.Time)
			}
		}

		if b.CreatedAt.IsZero() {
			b.CreatedAt = r.now()
		}
		if b.UpdatedAt.IsZero() {
			b.UpdatedAt = b.CreatedAt
		}

		if err := r.insert(ctx, b); err != nil {
			return inserted, fmt.Errorf("Seed - booking id=%d: %w", b.ID, err)
		}
		inserted++
	}
	return inserted, nil
}
