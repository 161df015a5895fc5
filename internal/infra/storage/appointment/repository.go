package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentDesk/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	pgUniqueViolation = "23505"

	constraintTrackingCode = "appointments_tracking_code_key"
	constraintVendorSlot   = "appointments_vendor_slot_key"
	constraintLiveSlot     = "appointments_live_slot_idx"
)

var columns = []string{
	"id",
	"date",
	"hour",
	"type",
	"vendor_name",
	"vendor_email",
	"carrier_name",
	"tracking_code",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей на разгрузку
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create атомарно создает запись, только если слот не заблокирован
// и число записей того же типа в слоте меньше вместимости типа.
// Если условие не выполнено, возвращает ErrSlotUnavailable.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	date := a.Date.Format(domain.DateFormat)

	// Вложенный SELECT строится без плейсхолдеров postgres: их проставит внешний INSERT
	values := squirrel.Select().
		Column("?::date", date).
		Column("?", a.Hour).
		Column("?", a.Type).
		Column("?", a.VendorName).
		Column("?", a.VendorEmail).
		Column("?", a.CarrierName).
		Column("?", a.TrackingCode).
		Where(slotNotBlocked(date, a.Hour)).
		Where(slotHasCapacity(date, a.Hour, a.Type, 0))

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("date", "hour", "type", "vendor_name", "vendor_email", "carrier_name", "tracking_code").
		Select(values).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotUnavailable
	}
	if err != nil {
		return nil, mapWriteError("Create - execute insert", err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByTrackingCode получает запись по коду
func (r *Repository) GetByTrackingCode(ctx context.Context, code string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"tracking_code": code})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrackingCode - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrackingCode - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// TrackingCodeExists проверяет, занят ли код
func (r *Repository) TrackingCodeExists(ctx context.Context, code string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableName).
		Where(squirrel.Eq{"tracking_code": code}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: TrackingCodeExists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: TrackingCodeExists - execute query: %w", ErrExecQuery, err)
	}

	return exists, nil
}

// ListByDate получает все записи на дату, упорядоченные по часу.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Expr("date = ?::date", date.Format(domain.DateFormat))).
		OrderBy("hour ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByVendor получает записи вендора начиная с даты from, упорядоченные по (date, hour)
func (r *Repository) ListByVendor(ctx context.Context, email string, from time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"vendor_email": email}).
		Where(squirrel.Expr("date >= ?::date", from.Format(domain.DateFormat))).
		OrderBy("date ASC", "hour ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVendor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVendor - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateSlot переносит запись на новый (date, hour) с теми же проверками, что и Create.
// Сама переносимая запись в подсчете вместимости не участвует.
func (r *Repository) UpdateSlot(ctx context.Context, a *domain.Appointment, date time.Time, hour int) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	newDate := date.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Update(tableName).
		Set("date", squirrel.Expr("?::date", newDate)).
		Set("hour", hour).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		Where(slotNotBlocked(newDate, hour)).
		Where(slotHasCapacity(newDate, hour, a.Type, a.ID)).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSlot - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotUnavailable
	}
	if err != nil {
		return nil, mapWriteError("UpdateSlot - execute update", err)
	}

	updated := *a
	updated.Date = date
	updated.Hour = hour
	updated.UpdatedAt = updatedAt.Time

	return &updated, nil
}

// Delete физически удаляет запись
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func slotNotBlocked(date string, hour int) squirrel.Sqlizer {
	return squirrel.Expr("NOT EXISTS (SELECT 1 FROM blocked_slots WHERE date = ?::date AND hour = ?)", date, hour)
}

// slotHasCapacity excludeID = 0 учитывает все записи слота
func slotHasCapacity(date string, hour int, t domain.AppointmentType, excludeID int64) squirrel.Sqlizer {
	return squirrel.Expr(
		"(SELECT COUNT(*) FROM appointments WHERE date = ?::date AND hour = ? AND type = ? AND id <> ?) < ?",
		date, hour, t, excludeID, t.Capacity(),
	)
}

// mapWriteError переводит нарушения уникальности postgres в ошибки репозитория
func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		switch pqErr.Constraint {
		case constraintTrackingCode:
			return ErrTrackingCodeTaken
		case constraintVendorSlot:
			return ErrDuplicate
		case constraintLiveSlot:
			return ErrSlotUnavailable
		}
		return fmt.Errorf("%w: %s: %w", ErrDuplicate, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.Date,
		&a.Hour,
		&a.Type,
		&a.VendorName,
		&a.VendorEmail,
		&a.CarrierName,
		&a.TrackingCode,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
