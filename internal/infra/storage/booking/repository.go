package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// endOfDay время возврата для бронирований без времени окончания
const endOfDay = types.TimeString("23:59")

// Repository репозиторий бронирований.
// Бронирования хранятся как таймфреймы видов Booking и BookingCanceled.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetList получает бронирования для списка с названиями предметов и локаций
// Фильтрует по пользователю (если не AllUsers) и отбрасывает закончившиеся до StartDate.
func (r *Repository) GetList(ctx context.Context, filter domain.BookingListFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"t.id",
		"COALESCE(t.user_id, 0)",
		"t.user_login",
		"t.user_first_name",
		"t.user_last_name",
		"t.item_id",
		"i.title",
		"t.location_id",
		"l.title",
		"l.address",
		"l.latitude",
		"l.longitude",
		"t.start_date",
		"t.end_date",
		"t.start_time",
		"t.end_time",
		"t.status",
		"t.full_day",
		"t.booking_code",
		"t.created_at",
	).
		From("timeframes t").
		LeftJoin("items i ON i.id = t.item_id").
		LeftJoin("locations l ON l.id = t.location_id").
		Where(squirrel.Eq{"t.kind": []int{int(domain.KindBooking), int(domain.KindBookingCanceled)}}).
		Where(squirrel.NotEq{"t.start_date": nil})

	// Администратор видит бронирования всех пользователей
	if !filter.AllUsers {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"t.user_id": filter.UserID})
	}

	// Закончившиеся бронирования не показываются
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"t.end_date": nil},
			squirrel.GtOrEq{"t.end_date": domain.DateOnly(*filter.StartDate)},
		})
	}

	query, args, err := selectBuilder.OrderBy("t.start_date ASC", "t.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetList - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetList - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetList - scan row: %v", ErrScanRow, err)
		}

		// Точная проверка по времени окончания
		if filter.StartDate != nil && booking.EndAt.Before(*filter.StartDate) {
			continue
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetList - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func scanBooking(rows *sql.Rows) (*domain.Booking, error) {
	var (
		booking                    domain.Booking
		login, firstName, lastName sql.NullString
		itemID, locationID         sql.NullInt64
		itemTitle, locationTitle   sql.NullString
		address                    sql.NullString
		lat, long                  sql.NullFloat64
		startDate, endDate         sql.NullTime
		startTime, endTime         sql.NullString
		status, code               sql.NullString
		createdAt                  sql.NullTime
	)

	err := rows.Scan(
		&booking.ID,
		&booking.UserID,
		&login,
		&firstName,
		&lastName,
		&itemID,
		&itemTitle,
		&locationID,
		&locationTitle,
		&address,
		&lat,
		&long,
		&startDate,
		&endDate,
		&startTime,
		&endTime,
		&status,
		&booking.FullDay,
		&code,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.UserLogin = login.String
	booking.UserFirstName = firstName.String
	booking.UserLastName = lastName.String
	if itemID.Valid {
		booking.ItemID = &itemID.Int64
	}
	if itemTitle.Valid {
		booking.ItemTitle = &itemTitle.String
	}
	if locationID.Valid {
		booking.LocationID = &locationID.Int64
	}
	if locationTitle.Valid {
		booking.LocationTitle = &locationTitle.String
	}
	booking.LocationAddr = address.String
	if lat.Valid {
		booking.LocationLat = &lat.Float64
	}
	if long.Valid {
		booking.LocationLong = &long.Float64
	}
	booking.Status = status.String
	if code.Valid {
		booking.BookingCode = &code.String
	}
	booking.CreatedAt = createdAt.Time

	booking.StartAt = combine(startDate.Time, startTime, "00:00")
	end := startDate.Time
	if endDate.Valid {
		end = endDate.Time
	}
	booking.EndAt = combine(end, endTime, endOfDay)

	return &booking, nil
}

// combine собирает момент времени из даты и времени дня
func combine(date time.Time, t sql.NullString, def types.TimeString) time.Time {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	ts := def
	if t.Valid && t.String != "" {
		if parsed, err := types.NewTimeStringFromString(t.String); err == nil {
			ts = parsed
		}
	}
	return ts.On(day)
}
