// Package simpletxmanager менеджер транзакций поверх чистого *sql.DB,
// без обёртки метрик. Используется, когда метрики выключены
package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BatoulDev/babibeauty-booking/pkg/dbmetrics"
	"github.com/BatoulDev/babibeauty-booking/pkg/txmanager"
)

// TransactionManager менеджер транзакций без метрик
type TransactionManager struct {
	db          *sql.DB
	lockTimeout string
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db *sql.DB, lockTimeout string) *TransactionManager {
	if lockTimeout == "" {
		lockTimeout = "3s"
	}
	return &TransactionManager{db: db, lockTimeout: lockTimeout}
}

// DoSerializable выполняет fn в транзакции уровня SERIALIZABLE
// Семантика идентична txmanager.TransactionManager.DoSerializable
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", m.lockTimeout)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("simpletxmanager: set lock_timeout: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return txmanager.Classify(err)
	}

	if err := tx.Commit(); err != nil {
		return txmanager.Classify(fmt.Errorf("simpletxmanager: commit: %w", err))
	}

	return nil
}
