package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/BatoulDev/babibeauty-booking/internal/domain"
	"github.com/BatoulDev/babibeauty-booking/pkg/dbmetrics"
	"github.com/BatoulDev/babibeauty-booking/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"customer_id",
	"expert_id",
	"starts_at",
	"ends_at",
	"status",
	"price",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте есть активная транзакция, использует её -
// так вставка попадает в ту же транзакцию, что и проверка вместимости
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"customer_id",
			"expert_id",
			"starts_at",
			"ends_at",
			"status",
			"price",
		).
		Values(
			booking.CustomerID,
			booking.ExpertID,
			booking.StartsAt,
			booking.EndsAt,
			booking.Status,
			booking.Price,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с фильтрацией по эксперту, клиенту, дате и статусу
// Для конкретной даты сортирует по времени начала (ASC), как календарь дня
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.ExpertID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"expert_id": *filter.ExpertID})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Date != nil {
		dayStart, dayEnd := dayBounds(*filter.Date)
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"starts_at": dayStart}).
			Where(squirrel.Lt{"starts_at": dayEnd})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Без явного статуса отменённые по умолчанию не показываем
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("starts_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("starts_at DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountActiveAtSlot подсчитывает активные (pending/confirmed) бронирования
// эксперта на точное время начала слота.
//
// Внутри транзакции строки ключа блокируются через FOR UPDATE до подсчёта:
// конкурирующие писатели того же (expert_id, starts_at) выстраиваются в
// очередь и считают уже закоммиченное состояние. Вставку "мимо" пустого
// набора строк добирает SERIALIZABLE изоляция транзакции
func (r *Repository) CountActiveAtSlot(ctx context.Context, expertID int64, startsAt time.Time, excludeID *int64) (int, error) {
	return r.countLocked(ctx, squirrel.And{
		squirrel.Eq{"expert_id": expertID},
		squirrel.Eq{"starts_at": startsAt},
	}, excludeID, "CountActiveAtSlot")
}

// CountActiveByCustomerAtSlot подсчитывает активные бронирования клиента
// у эксперта на то же время - защита от повторной самозаписи
func (r *Repository) CountActiveByCustomerAtSlot(ctx context.Context, customerID, expertID int64, startsAt time.Time, excludeID *int64) (int, error) {
	return r.countLocked(ctx, squirrel.And{
		squirrel.Eq{"customer_id": customerID},
		squirrel.Eq{"expert_id": expertID},
		squirrel.Eq{"starts_at": startsAt},
	}, excludeID, "CountActiveByCustomerAtSlot")
}

func (r *Repository) countLocked(ctx context.Context, where squirrel.And, excludeID *int64, op string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("id").
		From(table).
		Where(where).
		Where(squirrel.Eq{"status": activeStatuses})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	// FOR UPDATE нельзя комбинировать с агрегатами, поэтому выбираем id
	// и считаем строки на клиенте; набор в пределах вместимости слота
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: %s - scan id: %v", ErrScanRow, op, err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return count, nil
}

// CountBookedBySlot возвращает занятость слотов эксперта за календарную дату
// одним агрегированным запросом (без N+1). Ключ карты - starts_at в формате
// domain.DateTimeFormat. Отменённые бронирования исключаются; завершённые
// остаются в счётчике как историческая занятость
func (r *Repository) CountBookedBySlot(ctx context.Context, expertID int64, date time.Time) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart, dayEnd := dayBounds(date)

	query, args, err := psqlbuilder.Select("starts_at", "COUNT(*)").
		From(table).
		Where(squirrel.Eq{"expert_id": expertID}).
		Where(squirrel.GtOrEq{"starts_at": dayStart}).
		Where(squirrel.Lt{"starts_at": dayEnd}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		GroupBy("starts_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountBookedBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountBookedBySlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var startsAt time.Time
		var count int
		if err := rows.Scan(&startsAt, &count); err != nil {
			return nil, fmt.Errorf("%w: CountBookedBySlot - scan row: %v", ErrScanRow, err)
		}
		counts[startsAt.Format(domain.DateTimeFormat)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountBookedBySlot - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// Update сохраняет изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("expert_id", booking.ExpertID).
		Set("starts_at", booking.StartsAt).
		Set("ends_at", booking.EndsAt).
		Set("status", booking.Status).
		Set("price", booking.Price).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateStatus обновляет только статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
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

// Delete физически удаляет бронирование - административная операция,
// пользовательская отмена делается мягко через UpdateStatus
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// dayBounds возвращает полуинтервал [начало даты, начало следующей даты)
func dayBounds(date time.Time) (time.Time, time.Time) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return dayStart, dayStart.AddDate(0, 0, 1)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ExpertID,
		&booking.StartsAt,
		&booking.EndsAt,
		&booking.Status,
		&booking.Price,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

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
