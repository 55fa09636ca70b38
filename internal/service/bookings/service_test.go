package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	err       error
	calls     int
	gotFilter domain.BookingListFilter
}

func (r *fakeBookingRepo) GetList(_ context.Context, filter domain.BookingListFilter) ([]*domain.Booking, error) {
	r.calls++
	r.gotFilter = filter
	return r.bookings, r.err
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func at(day, hour int) time.Time {
	return time.Date(2025, 6, day, hour, 0, 0, 0, time.UTC)
}

func booking(id int64, user, item, location, status string, startDay, endDay int) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		UserID:        id * 10,
		UserLogin:     user,
		UserFirstName: "First",
		UserLastName:  "Last",
		ItemID:        ptr.Ptr(id + 100),
		ItemTitle:     ptr.Ptr(item),
		LocationID:    ptr.Ptr(id + 200),
		LocationTitle: ptr.Ptr(location),
		LocationAddr:  "Main street 1",
		StartAt:       at(startDay, 8),
		EndAt:         at(endDay, 18),
		Status:        status,
		CreatedAt:     at(1, int(id)),
	}
}

func fixtures() []*domain.Booking {
	return []*domain.Booking{
		booking(1, "alice", "Cargo bike", "Library", domain.BookingStatusConfirmed, 5, 6),
		booking(2, "bob", "trailer", "Bakery", domain.BookingStatusConfirmed, 2, 3),
		booking(3, "carol", "Cargo bike", "Bakery", domain.BookingStatusCanceled, 10, 12),
		booking(4, "alice", "Ladder", "Library", domain.BookingStatusConfirmed, 7, 7),
	}
}

func newTestService(t *testing.T, repo BookingRepository) *Service {
	t.Helper()
	backend, err := cache.NewMemoryBackend(100, func() time.Time { return testNow })
	require.NoError(t, err)
	c := cache.New(backend, nil, logger.NewNop())
	return NewService(repo, c, time.Hour, logger.NewNop()).WithTimeProvider(fixedClock{now: testNow})
}

func ids(rows []models.BookingRow) []int64 {
	result := make([]int64, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.ID)
	}
	return result
}

func TestService_GetList_DefaultsAndSort(t *testing.T) {
	repo := &fakeBookingRepo{bookings: fixtures()}
	s := newTestService(t, repo)

	resp, err := s.GetList(context.Background(), &models.GetBookingListRequest{UserID: 1, IsAdmin: true})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, domain.DefaultBookingsPerPage, resp.PerPage)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, []int64{2, 1, 4, 3}, ids(resp.Data))

	require.NotNil(t, repo.gotFilter.StartDate)
	assert.True(t, repo.gotFilter.StartDate.Equal(testNow))
	assert.True(t, repo.gotFilter.AllUsers)

	assert.Equal(t, []string{"alice", "bob", "carol"}, resp.Filters.User)
	assert.Equal(t, []string{"Bakery", "Library"}, resp.Filters.Location)
	assert.Equal(t, []string{"Cargo bike", "Ladder", "trailer"}, resp.Filters.Item)
}

func TestService_GetList_SortByItemIsCaseInsensitive(t *testing.T) {
	s := newTestService(t, &fakeBookingRepo{bookings: fixtures()})

	resp, err := s.GetList(context.Background(), &models.GetBookingListRequest{
		UserID: 1, IsAdmin: true, Sort: models.SortItem, Order: models.OrderDesc,
	})
	require.NoError(t, err)

	// trailer > Ladder > Cargo bike (1 и 3 сохраняют исходный порядок)
	assert.Equal(t, []int64{2, 4, 1, 3}, ids(resp.Data))
}

func TestService_GetList_FiltersAndSearch(t *testing.T) {
	tests := []struct {
		name    string
		req     models.GetBookingListRequest
		wantIDs []int64
	}{
		{
			name:    "location filter",
			req:     models.GetBookingListRequest{Filters: models.ListFilters{Location: "Library"}},
			wantIDs: []int64{1, 4},
		},
		{
			name:    "status filter",
			req:     models.GetBookingListRequest{Filters: models.ListFilters{Status: domain.BookingStatusCanceled}},
			wantIDs: []int64{3},
		},
		{
			name:    "end date hides later bookings",
			req:     models.GetBookingListRequest{Filters: models.ListFilters{EndDate: ptr.Ptr(at(6, 0))}},
			wantIDs: []int64{2, 1},
		},
		{
			name:    "start date hides finished bookings",
			req:     models.GetBookingListRequest{Filters: models.ListFilters{StartDate: ptr.Ptr(at(4, 0))}},
			wantIDs: []int64{1, 4, 3},
		},
		{
			name:    "search ignores case",
			req:     models.GetBookingListRequest{Search: "CARGO"},
			wantIDs: []int64{1, 3},
		},
		{
			name:    "search by user",
			req:     models.GetBookingListRequest{Search: "bob"},
			wantIDs: []int64{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, &fakeBookingRepo{bookings: fixtures()})
			tt.req.UserID = 1
			tt.req.IsAdmin = true

			resp, err := s.GetList(context.Background(), &tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(resp.Data))
			assert.Equal(t, len(tt.wantIDs), resp.Total)
		})
	}
}

func TestService_GetList_SearchKeepsFilterOptions(t *testing.T) {
	s := newTestService(t, &fakeBookingRepo{bookings: fixtures()})

	resp, err := s.GetList(context.Background(), &models.GetBookingListRequest{UserID: 1, IsAdmin: true, Search: "bob"})
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob", "carol"}, resp.Filters.User)
}

func TestService_GetList_Pagination(t *testing.T) {
	s := newTestService(t, &fakeBookingRepo{bookings: fixtures()})

	resp, err := s.GetList(context.Background(), &models.GetBookingListRequest{UserID: 1, IsAdmin: true, Page: 2, PerPage: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, []int64{3}, ids(resp.Data))

	resp, err = s.GetList(context.Background(), &models.GetBookingListRequest{UserID: 1, IsAdmin: true, Page: 5, PerPage: 3})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.NotNil(t, resp.Data)
}

func TestService_GetList_Cached(t *testing.T) {
	repo := &fakeBookingRepo{bookings: fixtures()}
	s := newTestService(t, repo)
	req := &models.GetBookingListRequest{UserID: 10}

	first, err := s.GetList(context.Background(), req)
	require.NoError(t, err)
	second, err := s.GetList(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, ids(first.Data), ids(second.Data))
	assert.False(t, repo.gotFilter.AllUsers)
	assert.Equal(t, int64(10), repo.gotFilter.UserID)

	// Изменение бронирования сбрасывает кэш
	require.NoError(t, s.cache.InvalidateByTag(context.Background(), cache.Tag(domain.TagBooking, 2)))
	_, err = s.GetList(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)

	require.NoError(t, s.cache.InvalidateByTag(context.Background(), cache.Tag(domain.TagUser, 10)))
	_, err = s.GetList(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.calls)
}

func TestService_GetList_EmptyNotCached(t *testing.T) {
	repo := &fakeBookingRepo{}
	s := newTestService(t, repo)
	req := &models.GetBookingListRequest{UserID: 10}

	for i := 0; i < 2; i++ {
		resp, err := s.GetList(context.Background(), req)
		require.NoError(t, err)
		assert.Zero(t, resp.Total)
	}
	assert.Equal(t, 2, repo.calls)
}

func TestService_GetList_Errors(t *testing.T) {
	t.Run("repository error", func(t *testing.T) {
		s := newTestService(t, &fakeBookingRepo{err: errors.New("db down")})
		_, err := s.GetList(context.Background(), &models.GetBookingListRequest{UserID: 1})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("unknown sort", func(t *testing.T) {
		s := newTestService(t, &fakeBookingRepo{})
		_, err := s.GetList(context.Background(), &models.GetBookingListRequest{UserID: 1, Sort: "title"})
		assert.ErrorIs(t, err, ErrInvalidSort)
	})

	t.Run("per page too large", func(t *testing.T) {
		s := newTestService(t, &fakeBookingRepo{})
		_, err := s.GetList(context.Background(), &models.GetBookingListRequest{UserID: 1, PerPage: domain.MaxBookingsPerPage + 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("nil request", func(t *testing.T) {
		s := newTestService(t, &fakeBookingRepo{})
		_, err := s.GetList(context.Background(), nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
