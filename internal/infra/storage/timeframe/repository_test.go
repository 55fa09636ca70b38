package timeframe

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func bookableRow(rows *sqlmock.Rows, id int64, start time.Time, end interface{}) *sqlmock.Rows {
	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, "Lastenrad", int64(domain.KindBookable), int64(10), int64(20),
		start, end, "08:00:00", "18:00:00", int64(0), false, int64(14), false,
		"{member,staff}", nil, nil, nil, created, created,
	)
}

func TestRepository_FindByLocationItemKind(t *testing.T) {
	repo, mock := newMock(t)

	rows := bookableRow(sqlmock.NewRows(columns), 1, date(2025, 3, 1), nil)
	mock.ExpectQuery(`SELECT .* FROM timeframes WHERE kind IN \(\$1\) AND location_id IN \(\$2\) AND item_id IN \(\$3\) AND id <> \$4 ORDER BY start_date ASC, id ASC`).
		WithArgs(int(domain.KindBookable), int64(10), int64(20), int64(5)).
		WillReturnRows(rows)

	got, err := repo.FindByLocationItemKind(context.Background(), []int64{10}, []int64{20},
		[]domain.TimeframeKind{domain.KindBookable}, ptr.Ptr(int64(5)))

	require.NoError(t, err)
	require.Len(t, got, 1)
	tf := got[0]
	assert.Equal(t, int64(1), tf.ID)
	assert.Equal(t, domain.KindBookable, tf.Kind)
	assert.Equal(t, int64(10), *tf.LocationID)
	assert.Equal(t, int64(20), *tf.ItemID)
	assert.Equal(t, date(2025, 3, 1), *tf.StartDate)
	assert.Nil(t, tf.EndDate)
	assert.Equal(t, types.TimeString("08:00"), *tf.StartTime)
	assert.Equal(t, types.TimeString("18:00"), *tf.EndTime)
	assert.Equal(t, 14, *tf.MaxAdvanceBookingDays)
	assert.Equal(t, []string{"member", "staff"}, tf.AllowedRoles)
	assert.Nil(t, tf.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByLocationItemKind_NoFilters(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT .* FROM timeframes WHERE kind IN \(\$1,\$2\) ORDER BY`).
		WithArgs(int(domain.KindHoliday), int(domain.KindRepair)).
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.FindByLocationItemKind(context.Background(), nil, nil,
		[]domain.TimeframeKind{domain.KindHoliday, domain.KindRepair}, nil)

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindSlotsInRange(t *testing.T) {
	repo, mock := newMock(t)

	start, end := date(2025, 3, 1), date(2025, 3, 3)
	rows := bookableRow(sqlmock.NewRows(columns), 1, date(2025, 2, 1), date(2025, 3, 2))
	mock.ExpectQuery(`SELECT .* FROM timeframes WHERE kind IN .* AND start_date <= .* AND \(end_date IS NULL OR end_date >= .*\) AND \(kind <> .* OR status = .*\) AND \(location_id IN .* OR location_id IS NULL\)`).
		WillReturnRows(rows)

	got, err := repo.FindSlotsInRange(context.Background(), start, end, []int64{10}, nil, domain.CalendarKinds)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	require.Len(t, got["2025-03-01"], 1)
	assert.Equal(t, types.TimeString("08:00"), got["2025-03-01"][0].Start)
	assert.Equal(t, types.TimeString("18:00"), got["2025-03-01"][0].End)
	assert.NotContains(t, got, "2025-03-03")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindBookableInRange(t *testing.T) {
	repo, mock := newMock(t)

	start, end := date(2025, 3, 1), date(2025, 3, 31)
	mock.ExpectQuery(`SELECT .* FROM timeframes WHERE kind = \$1 AND start_date IS NOT NULL AND \(end_date IS NULL OR end_date >= \$2\) AND start_date <= \$3 AND item_id IN \(\$4\)`).
		WithArgs(int(domain.KindBookable), start, end, int64(20)).
		WillReturnRows(bookableRow(sqlmock.NewRows(columns), 3, date(2025, 3, 10), nil))

	got, err := repo.FindBookableInRange(context.Background(), start, &end, nil, []int64{20})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO timeframes \(title,kind,location_id,item_id,start_date,end_date,start_time,end_time,grid,full_day,max_advance_booking_days,locked,allowed_roles,user_id,status,booking_code\) VALUES .* RETURNING id, created_at, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), created, created))

	tf := &domain.Timeframe{
		Title:      "New",
		Kind:       domain.KindBookable,
		LocationID: ptr.Ptr(int64(10)),
		ItemID:     ptr.Ptr(int64(20)),
		StartDate:  ptr.Ptr(date(2025, 3, 1)),
		StartTime:  ptr.Ptr(types.TimeString("08:00")),
		EndTime:    ptr.Ptr(types.TimeString("12:00")),
	}
	got, err := repo.Create(context.Background(), tf)

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(`UPDATE timeframes SET title = \$1, .* updated_at = NOW\(\) WHERE id = \$17`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), &domain.Timeframe{ID: 7, Kind: domain.KindHoliday})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(`UPDATE timeframes`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), &domain.Timeframe{ID: 7})

		assert.ErrorIs(t, err, ErrTimeframeNotFound)
	})
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery(`SELECT .* FROM timeframes WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(bookableRow(sqlmock.NewRows(columns), 1, date(2025, 3, 1), date(2025, 3, 31)))

		got, err := repo.GetByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, date(2025, 3, 31), *got.EndDate)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery(`SELECT .* FROM timeframes WHERE id = \$1`).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 1)

		assert.ErrorIs(t, err, ErrTimeframeNotFound)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery(`SELECT .* FROM timeframes WHERE id = \$1`).
			WillReturnError(errors.New("boom"))

		_, err := repo.GetByID(context.Background(), 1)

		assert.ErrorIs(t, err, ErrScanRow)
	})
}
