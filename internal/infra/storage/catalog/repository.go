package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

var (
	serviceColumns = []string{"id", "name", "duration_minutes", "price", "category"}
	workerColumns  = []string{"id", "name", "specialty", "schedule"}
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS services (
		id               BIGINT PRIMARY KEY,
		name             TEXT NOT NULL UNIQUE,
		duration_minutes INTEGER NOT NULL,
		price            BIGINT NOT NULL,
		category         TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workers (
		id        BIGINT PRIMARY KEY,
		name      TEXT NOT NULL UNIQUE,
		specialty TEXT NOT NULL,
		schedule  TEXT NOT NULL
	)`,
}

// Repository каталог услуг и мастеров.
// Заполняется один раз при старте (Seed) и дальше только читается.
type Repository struct {
	db      DBExecutor
	builder squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor, builder squirrel.StatementBuilderType) *Repository {
	return &Repository{db: db, builder: builder}
}

// Migrate создает таблицы каталога
func (r *Repository) Migrate(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	for _, stmt := range schema {
		if _, err := executor.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %v", ErrMigrate, err)
		}
	}
	return nil
}

// Seed загружает услуги и мастеров. Существующие ID пропускаются.
func (r *Repository) Seed(ctx context.Context, services []domain.Service, workers []domain.Worker) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, s := range services {
		_, err := r.GetServiceByID(ctx, s.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrServiceNotFound) {
			return fmt.Errorf("Seed - service id=%d: %w", s.ID, err)
		}

		query, args, err := r.builder.Insert("services").
			Columns(serviceColumns...).
			Values(s.ID, s.Name, s.DurationMinutes, s.Price, string(s.Category)).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Seed - build insert service: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Seed - insert service id=%d: %v", ErrExecQuery, s.ID, err)
		}
	}

	for _, w := range workers {
		_, err := r.GetWorkerByID(ctx, w.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrWorkerNotFound) {
			return fmt.Errorf("Seed - worker id=%d: %w", w.ID, err)
		}

		query, args, err := r.builder.Insert("workers").
			Columns(workerColumns...).
			Values(w.ID, w.Name, string(w.Specialty), w.Schedule).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Seed - build insert worker: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Seed - insert worker id=%d: %v", ErrExecQuery, w.ID, err)
		}
	}

	return nil
}

// ListServices возвращает услуги в порядке ID, опционально по категории
func (r *Repository) ListServices(ctx context.Context, category *domain.Category) ([]domain.Service, error) {
	selectBuilder := r.builder.Select(serviceColumns...).From("services").OrderBy("id ASC")
	if category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": string(*category)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := dbmetrics.GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	return r.getService(ctx, squirrel.Eq{"id": id})
}

// GetServiceByName получает услугу по названию
func (r *Repository) GetServiceByName(ctx context.Context, name string) (*domain.Service, error) {
	return r.getService(ctx, squirrel.Eq{"name": name})
}

// ListWorkers возвращает мастеров в порядке ID, опционально по специализации
func (r *Repository) ListWorkers(ctx context.Context, specialty *domain.Category) ([]domain.Worker, error) {
	selectBuilder := r.builder.Select(workerColumns...).From("workers").OrderBy("id ASC")
	if specialty != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"specialty": string(*specialty)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := dbmetrics.GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	workers := make([]domain.Worker, 0)
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWorkers - scan row: %v", ErrScanRow, err)
		}
		workers = append(workers, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWorkers - rows error: %v", ErrScanRow, err)
	}

	return workers, nil
}

// GetWorkerByID получает мастера по ID
func (r *Repository) GetWorkerByID(ctx context.Context, id int64) (*domain.Worker, error) {
	return r.getWorker(ctx, squirrel.Eq{"id": id})
}

// GetWorkerByName получает мастера по имени
func (r *Repository) GetWorkerByName(ctx context.Context, name string) (*domain.Worker, error) {
	return r.getWorker(ctx, squirrel.Eq{"name": name})
}

func (r *Repository) getService(ctx context.Context, where squirrel.Eq) (*domain.Service, error) {
	query, args, err := r.builder.Select(serviceColumns...).From("services").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getService - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanService(dbmetrics.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getService - scan service: %v", ErrScanRow, err)
	}
	return s, nil
}

func (r *Repository) getWorker(ctx context.Context, where squirrel.Eq) (*domain.Worker, error) {
	query, args, err := r.builder.Select(workerColumns...).From("workers").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getWorker - build select query: %v", ErrBuildQuery, err)
	}

	w, err := scanWorker(dbmetrics.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrWorkerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getWorker - scan worker: %v", ErrScanRow, err)
	}
	return w, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var s domain.Service
	var category string
	if err := row.Scan(&s.ID, &s.Name, &s.DurationMinutes, &s.Price, &category); err != nil {
		return nil, err
	}
	s.Category = domain.Category(category)
	return &s, nil
}

func scanWorker(row rowScanner) (*domain.Worker, error) {
	var w domain.Worker
	var specialty string
	if err := row.Scan(&w.ID, &w.Name, &specialty, &w.Schedule); err != nil {
		return nil, err
	}
	w.Specialty = domain.Category(specialty)
	return &w, nil
}
