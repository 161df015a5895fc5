package blockedslot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentDesk/pkg/psqlbuilder"
)

const tableName = "blocked_slots"

// Repository репозиторий заблокированных слотов.
// Ядро бронирования только читает блокировки, создаются они через CLI.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByDate получает блокировки на дату
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "hour", "reason", "created_at").
		From(tableName).
		Where(squirrel.Expr("date = ?::date", date.Format(domain.DateFormat))).
		OrderBy("hour ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.BlockedSlot, 0)
	for rows.Next() {
		var s domain.BlockedSlot
		var createdAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.Date, &s.Hour, &s.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListByDate - scan row: %v", ErrScanRow, err)
		}
		s.CreatedAt = createdAt.Time
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDate - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Block блокирует слот; повторная блокировка обновляет причину
func (r *Repository) Block(ctx context.Context, date time.Time, hour int, reason string) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("date", "hour", "reason").
		Values(squirrel.Expr("?::date", date.Format(domain.DateFormat)), hour, reason).
		Suffix("ON CONFLICT (date, hour) DO UPDATE SET reason = EXCLUDED.reason RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Block - build insert query: %v", ErrBuildQuery, err)
	}

	slot := &domain.BlockedSlot{Date: date, Hour: hour, Reason: reason}
	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Block - execute insert: %w", ErrExecQuery, err)
	}
	slot.CreatedAt = createdAt.Time

	return slot, nil
}

// Unblock снимает блокировку слота
func (r *Repository) Unblock(ctx context.Context, date time.Time, hour int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Expr("date = ?::date", date.Format(domain.DateFormat))).
		Where(squirrel.Eq{"hour": hour}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Unblock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Unblock - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Unblock - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
