package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

var bookingColumns = []string{
	"id",
	"client_name",
	"client_email",
	"service_name",
	"worker_name",
	"booking_date",
	"start_time",
	"status",
	"duration_minutes",
	"price",
	"created_at",
	"updated_at",
}

// Repository реестр бронирований.
// Записи только добавляются и меняют статус, физического удаления нет.
type Repository struct {
	db      DBExecutor
	builder squirrel.StatementBuilderType
	now     func() time.Time
}

// NewRepository создает новый экземпляр репозитория бронирований.
// builder определяет диалект плейсхолдеров (см. pkg/sqlbuilder).
func NewRepository(db DBExecutor, builder squirrel.StatementBuilderType) *Repository {
	return &Repository{
		db:      db,
		builder: builder,
		now:     time.Now,
	}
}

// Create добавляет бронирование в конец реестра и присваивает ему ID.
// ID монотонный и выводится из времени создания: max(created_at в мс, последний ID + 1).
//
// Если в контексте передана активная транзакция, использует её: проверка
// доступности слота и вставка должны выполняться в одной транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := booking.Status.Validate(); err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrInvalidStatus, err)
	}

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = r.now()
	}
	booking.UpdatedAt = booking.CreatedAt

	lastID, err := r.lastID(ctx)
	if err != nil {
		return nil, err
	}

	booking.ID = booking.CreatedAt.UnixMilli()
	if booking.ID <= lastID {
		booking.ID = lastID + 1
	}

	if err := r.insert(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query, args, err := r.builder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.executor(ctx).QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}
	return booking, nil
}

// List возвращает бронирования, подходящие под фильтр, в порядке добавления в реестр.
//
// Примеры использования:
//
// 1. Бронирования клиента (включая отмененные):
//    filter := domain.BookingFilter{ClientEmail: ptr.Ptr("laura@email.com"), IncludeInactive: true}
//
// 2. Активные бронирования мастера на дату (проверка слотов):
//    filter := domain.BookingFilter{WorkerName: &name, StartDate: &date, EndDate: &date}
//
// 3. Только ожидающие подтверждения:
//    status := domain.StatusPending
//    filter := domain.BookingFilter{Status: &status}
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	selectBuilder := r.builder.Select(bookingColumns...).From("bookings")

	if filter.ClientEmail != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_email": *filter.ClientEmail})
	}
	if filter.WorkerName != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"worker_name": *filter.WorkerName})
	}
	if filter.ServiceName != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_name": *filter.ServiceName})
	}

	// Даты в формате YYYY-MM-DD сравниваются лексикографически
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": filter.EndDate.Format(domain.DateFormat)})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	query, args, err := selectBuilder.OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus заменяет статус бронирования.
// Легальность перехода проверяет сервисный слой.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if err := status.Validate(); err != nil {
		return fmt.Errorf("%w: UpdateStatus: %v", ErrInvalidStatus, err)
	}

	query, args, err := r.builder.Update("bookings").
		Set("status", string(status)).
		Set("updated_at", formatTimestamp(r.now())).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Count количество записей в реестре, включая отмененные
func (r *Repository) Count(ctx context.Context) (int, error) {
	query, args, err := r.builder.Select("COUNT(*)").From("bookings").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := r.executor(ctx).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan: %v", ErrScanRow, err)
	}
	return count, nil
}

func (r *Repository) lastID(ctx context.Context) (int64, error) {
	query, args, err := r.builder.Select("COALESCE(MAX(id), 0)").From("bookings").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: lastID - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := r.executor(ctx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: lastID - scan: %v", ErrScanRow, err)
	}
	return id, nil
}

func (r *Repository) insert(ctx context.Context, booking *domain.Booking) error {
	query, args, err := r.builder.Insert("bookings").
		Columns(bookingColumns...).
		Values(
			booking.ID,
			booking.ClientName,
			booking.ClientEmail,
			booking.ServiceName,
			booking.WorkerName,
			booking.Date.Format(domain.DateFormat),
			booking.Time.String(),
			string(booking.Status),
			booking.DurationMinutes,
			booking.Price,
			formatTimestamp(booking.CreatedAt),
			formatTimestamp(booking.UpdatedAt),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.executor(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insert - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) executor(ctx context.Context) DBExecutor {
	return dbmetrics.GetExecutor(ctx, r.db)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		date, status         string
		createdAt, updatedAt string
	)

	err := row.Scan(
		&booking.ID,
		&booking.ClientName,
		&booking.ClientEmail,
		&booking.ServiceName,
		&booking.WorkerName,
		&date,
		&booking.Time,
		&status,
		&booking.DurationMinutes,
		&booking.Price,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if booking.Date, err = domain.ParseDate(date); err != nil {
		return nil, fmt.Errorf("booking id=%d: booking_date: %v", booking.ID, err)
	}
	if booking.Status, err = domain.ParseBookingStatus(status); err != nil {
		return nil, fmt.Errorf("booking id=%d: %v", booking.ID, err)
	}
	if booking.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("booking id=%d: created_at: %v", booking.ID, err)
	}
	if booking.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("booking id=%d: updated_at: %v", booking.ID, err)
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
