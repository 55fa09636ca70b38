package timeframe

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const tableName = "timeframes"

var columns = []string{
	"id",
	"title",
	"kind",
	"location_id",
	"item_id",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"grid",
	"full_day",
	"max_advance_booking_days",
	"locked",
	"allowed_roles",
	"user_id",
	"status",
	"booking_code",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с таймфреймами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория таймфреймов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый таймфрейм
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, tf *domain.Timeframe) (*domain.Timeframe, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(columns[1:17]...).
		Values(writeValues(tf)...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tf.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	tf.CreatedAt = createdAt.Time
	tf.UpdatedAt = updatedAt.Time

	return tf, nil
}

// Update обновляет таймфрейм целиком
func (r *Repository) Update(ctx context.Context, tf *domain.Timeframe) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	values := writeValues(tf)
	builder := psqlbuilder.Update(tableName)
	for i, column := range columns[1:17] {
		builder = builder.Set(column, values[i])
	}

	query, args, err := builder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": tf.ID}).
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
		return ErrTimeframeNotFound
	}

	return nil
}

// GetByID получает таймфрейм по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Timeframe, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	tf, err := scanTimeframe(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTimeframeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan timeframe: %v", ErrScanRow, err)
	}

	return tf, nil
}

// FindByLocationItemKind получает таймфреймы заданных видов для локаций и предметов
// Пустой список локаций или предметов означает отсутствие фильтра.
// excludeID исключает таймфрейм из выборки (проверка при редактировании).
func (r *Repository) FindByLocationItemKind(
	ctx context.Context,
	locationIDs, itemIDs []int64,
	kinds []domain.TimeframeKind,
	excludeID *int64,
) ([]*domain.Timeframe, error) {
	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"kind": kindValues(kinds)})

	if len(locationIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"location_id": locationIDs})
	}
	if len(itemIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"item_id": itemIDs})
	}
	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}

	// Внутри транзакции блокируем строки, чтобы параллельное сохранение не прошло проверку
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "FindByLocationItemKind", builder.OrderBy("start_date ASC", "id ASC"))
}

// FindBookableInRange получает bookable таймфреймы с датой начала, не закончившиеся до start.
// Если end задан, таймфрейм должен начинаться не позже end.
func (r *Repository) FindBookableInRange(
	ctx context.Context,
	start time.Time,
	end *time.Time,
	locationIDs, itemIDs []int64,
) ([]*domain.Timeframe, error) {
	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"kind": int(domain.KindBookable)}).
		Where(squirrel.NotEq{"start_date": nil}).
		Where(squirrel.Or{
			squirrel.Eq{"end_date": nil},
			squirrel.GtOrEq{"end_date": start},
		})

	if end != nil {
		builder = builder.Where(squirrel.LtOrEq{"start_date": *end})
	}
	if len(locationIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"location_id": locationIDs})
	}
	if len(itemIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"item_id": itemIDs})
	}

	return r.query(ctx, "FindBookableInRange", builder.OrderBy("start_date ASC", "id ASC"))
}

// FindSlotsInRange получает таймфреймы, действующие в диапазоне [start, end], и раскладывает их по слотам дней.
// Таймфреймы без локации или предмета действуют для всех локаций или предметов.
// Бронирования учитываются только в статусе confirmed.
func (r *Repository) FindSlotsInRange(
	ctx context.Context,
	start, end time.Time,
	locationIDs, itemIDs []int64,
	kinds []domain.TimeframeKind,
) (map[string][]domain.Slot, error) {
	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"kind": kindValues(kinds)}).
		Where(squirrel.LtOrEq{"start_date": end}).
		Where(squirrel.Or{
			squirrel.Eq{"end_date": nil},
			squirrel.GtOrEq{"end_date": start},
		}).
		Where(squirrel.Or{
			squirrel.NotEq{"kind": int(domain.KindBooking)},
			squirrel.Eq{"status": domain.BookingStatusConfirmed},
		})

	if len(locationIDs) > 0 {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"location_id": locationIDs},
			squirrel.Eq{"location_id": nil},
		})
	}
	if len(itemIDs) > 0 {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"item_id": itemIDs},
			squirrel.Eq{"item_id": nil},
		})
	}

	timeframes, err := r.query(ctx, "FindSlotsInRange", builder.OrderBy("id ASC"))
	if err != nil {
		return nil, err
	}

	return availability.ExpandSlots(timeframes, start, end), nil
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Timeframe, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	timeframes := make([]*domain.Timeframe, 0)
	for rows.Next() {
		tf, err := scanTimeframe(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		timeframes = append(timeframes, tf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return timeframes, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanTimeframe сканирует строку в порядке columns
func scanTimeframe(row rowScanner) (*domain.Timeframe, error) {
	var (
		tf                   domain.Timeframe
		kind, grid           int
		locationID, itemID   sql.NullInt64
		userID               sql.NullInt64
		startDate, endDate   sql.NullTime
		startTime, endTime   sql.NullString
		maxDays              sql.NullInt32
		status, bookingCode  sql.NullString
		createdAt, updatedAt sql.NullTime
		roles                []string
	)

	err := row.Scan(
		&tf.ID,
		&tf.Title,
		&kind,
		&locationID,
		&itemID,
		&startDate,
		&endDate,
		&startTime,
		&endTime,
		&grid,
		&tf.FullDay,
		&maxDays,
		&tf.Locked,
		pq.Array(&roles),
		&userID,
		&status,
		&bookingCode,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	tf.Kind = domain.TimeframeKind(kind)
	tf.Grid = domain.GridType(grid)
	tf.LocationID = nullInt64(locationID)
	tf.ItemID = nullInt64(itemID)
	tf.UserID = nullInt64(userID)
	tf.StartDate = nullDate(startDate)
	tf.EndDate = nullDate(endDate)
	if tf.StartTime, err = nullTime(startTime); err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	if tf.EndTime, err = nullTime(endTime); err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}
	if maxDays.Valid {
		days := int(maxDays.Int32)
		tf.MaxAdvanceBookingDays = &days
	}
	if status.Valid {
		tf.Status = &status.String
	}
	if bookingCode.Valid {
		tf.BookingCode = &bookingCode.String
	}
	tf.AllowedRoles = roles
	tf.CreatedAt = createdAt.Time
	tf.UpdatedAt = updatedAt.Time

	return &tf, nil
}

// writeValues значения для columns[1:17] в том же порядке
func writeValues(tf *domain.Timeframe) []interface{} {
	roles := tf.AllowedRoles
	if roles == nil {
		roles = []string{}
	}
	return []interface{}{
		tf.Title,
		int(tf.Kind),
		tf.LocationID,
		tf.ItemID,
		tf.StartDate,
		tf.EndDate,
		timeValue(tf.StartTime),
		timeValue(tf.EndTime),
		int(tf.Grid),
		tf.FullDay,
		tf.MaxAdvanceBookingDays,
		tf.Locked,
		pq.Array(roles),
		tf.UserID,
		tf.Status,
		tf.BookingCode,
	}
}

func kindValues(kinds []domain.TimeframeKind) []int {
	values := make([]int, len(kinds))
	for i, k := range kinds {
		values[i] = int(k)
	}
	return values
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

// nullDate приводит DATE к полуночи UTC без учета часового пояса драйвера
func nullDate(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	y, m, d := v.Time.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &date
}

func nullTime(v sql.NullString) (*types.TimeString, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	ts, err := types.NewTimeStringFromString(v.String)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func timeValue(ts *types.TimeString) interface{} {
	if ts == nil || *ts == "" {
		return nil
	}
	return string(*ts)
}
