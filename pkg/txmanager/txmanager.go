// Package txmanager менеджер сериализуемых транзакций поверх dbmetrics.DB.
// Конкурирующие писатели одного слота сериализуются на уровне БД:
// SERIALIZABLE isolation + блокировка строк (FOR UPDATE в репозитории).
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/BatoulDev/babibeauty-booking/pkg/dbmetrics"
)

// Коды ошибок PostgreSQL, означающие транзиентный конфликт:
// повтор того же запроса после паузы имеет смысл
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// ErrConflict возвращается, когда транзакция не прошла из-за конкуренции
// (serialization failure, deadlock, lock timeout). Ошибка ретраябельна,
// в отличие от бизнес-отказов вроде занятого слота
var ErrConflict = errors.New("txmanager: transaction conflict, safe to retry")

// Classify оборачивает транзиентные ошибки PostgreSQL в ErrConflict,
// остальные возвращает как есть
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
	}
	return err
}

// TransactionManager менеджер транзакций с метриками
type TransactionManager struct {
	db          *dbmetrics.DB
	lockTimeout string // формат интервала PostgreSQL, например "3s"
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db *dbmetrics.DB, lockTimeout string) *TransactionManager {
	if lockTimeout == "" {
		lockTimeout = "3s"
	}
	return &TransactionManager{db: db, lockTimeout: lockTimeout}
}

// DoSerializable выполняет fn в транзакции уровня SERIALIZABLE.
// Транзакция кладется в контекст, репозитории достают её через
// dbmetrics.GetExecutor. Время ожидания блокировок ограничено lock_timeout,
// чтобы писатель не висел бесконечно
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", m.lockTimeout)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("txmanager: set lock_timeout: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return Classify(err)
	}

	if err := tx.Commit(); err != nil {
		return Classify(fmt.Errorf("txmanager: commit: %w", err))
	}

	return nil
}
