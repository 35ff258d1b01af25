package txmanager

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

// Beginner источник транзакций (*dbmetrics.DB)
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в транзакции, передавая её через context.
//
// Записи сериализуются через writer-мьютекс: проверка доступности слота и
// вставка бронирования выполняются одним писателем за раз, независимо от
// уровня изоляции, который поддерживает драйвер.
type TransactionManager struct {
	db        Beginner
	isolation sql.IsolationLevel
	writerMu  sync.Mutex
}

// NewTransactionManager создает менеджер транзакций.
// isolation применяется в DoSerializable (sqlite: LevelDefault, postgres: LevelSerializable).
func NewTransactionManager(db Beginner, isolation sql.IsolationLevel) *TransactionManager {
	return &TransactionManager{db: db, isolation: isolation}
}

// Do выполняет fn в обычной транзакции
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn под writer-локом в транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	m.writerMu.Lock()
	defer m.writerMu.Unlock()

	return m.run(ctx, &sql.TxOptions{Isolation: m.isolation}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}
	return nil
}
