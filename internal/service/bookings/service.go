package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

const cacheNamespace = "bookings"

// Service сервис списка бронирований
type Service struct {
	bookingRepo  BookingRepository
	cache        *cache.Cache
	ttl          cache.TTLPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// cache может быть nil - тогда список всегда строится заново.
func NewService(
	bookingRepo BookingRepository,
	listCache *cache.Cache,
	ttl time.Duration,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		cache:        listCache,
		ttl:          cache.FixedTTL(ttl),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// listKey значимые для результата параметры запроса
type listKey struct {
	UserID  int64
	IsAdmin bool
	Page    int
	PerPage int
	Search  string
	Sort    string
	Order   string
	Filters models.ListFilters
}

// GetList получает страницу списка бронирований пользователя.
// Администратор видит бронирования всех пользователей.
func (s *Service) GetList(ctx context.Context, req *models.GetBookingListRequest) (*models.BookingListResponse, error) {
	// 1. Валидация и значения по умолчанию
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	normalized, err := normalizeRequest(*req)
	if err != nil {
		s.logger.Warn("GetList: invalid request for user=%d: %v", req.UserID, err)
		return nil, err
	}
	s.logger.Info("GetList: user=%d, admin=%t, page=%d, perPage=%d, sort=%s %s",
		normalized.UserID, normalized.IsAdmin, normalized.Page, normalized.PerPage, normalized.Sort, normalized.Order)

	// 2. Ключ кэша строится до подстановки "сейчас" в startDate
	key := cache.Fingerprint(cacheNamespace, listKey{
		UserID:  normalized.UserID,
		IsAdmin: normalized.IsAdmin,
		Page:    normalized.Page,
		PerPage: normalized.PerPage,
		Search:  normalized.Search,
		Sort:    normalized.Sort,
		Order:   normalized.Order,
		Filters: normalized.Filters,
	})
	var tags []string
	if !normalized.IsAdmin {
		tags = append(tags, cache.Tag(domain.TagUser, normalized.UserID))
	}

	if normalized.Filters.StartDate == nil {
		now := s.timeProvider.Now()
		normalized.Filters.StartDate = &now
	}

	// 3. Чтение через кэш
	result, err := cache.GetOrCompute(ctx, s.cache, key, tags, s.ttl,
		func(ctx context.Context) (models.BookingListResponse, []string, error) {
			return s.buildList(ctx, normalized)
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetList: user=%d, total=%d, returned=%d", normalized.UserID, result.Total, len(result.Data))
	return &result, nil
}

func (s *Service) buildList(ctx context.Context, req models.GetBookingListRequest) (models.BookingListResponse, []string, error) {
	bookings, err := s.bookingRepo.GetList(ctx, domain.BookingListFilter{
		UserID:    req.UserID,
		AllUsers:  req.IsAdmin,
		StartDate: req.Filters.StartDate,
	})
	if err != nil {
		s.logger.Error("GetList: repository error for user=%d: %v", req.UserID, err)
		return models.BookingListResponse{}, nil, fmt.Errorf("%w: GetList - repository error: %v", ErrInternal, err)
	}

	rows := make([]models.BookingRow, 0, len(bookings))
	tags := make([]string, 0, len(bookings)*3)
	for _, b := range bookings {
		tags = append(tags, cache.Tag(domain.TagBooking, b.ID))
		if b.ItemID != nil {
			tags = append(tags, cache.Tag(domain.TagItem, *b.ItemID))
		}
		if b.LocationID != nil {
			tags = append(tags, cache.Tag(domain.TagLocation, *b.LocationID))
		}

		row := models.FromDomainBooking(b)
		if !matchesFilters(&row, req.Filters) {
			continue
		}
		rows = append(rows, row)
	}

	// Варианты фильтров строятся до поиска
	options := collectFilterOptions(rows)
	rows = search(rows, req.Search)
	sortRows(rows, req.Sort, req.Order)

	return models.BookingListResponse{
		Page:       req.Page,
		PerPage:    req.PerPage,
		Total:      len(rows),
		TotalPages: totalPages(len(rows), req.PerPage),
		Filters:    options,
		Data:       paginate(rows, req.Page, req.PerPage),
	}, tags, nil
}

func normalizeRequest(req models.GetBookingListRequest) (models.GetBookingListRequest, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PerPage <= 0 {
		req.PerPage = domain.DefaultBookingsPerPage
	}
	if req.PerPage > domain.MaxBookingsPerPage {
		return req, fmt.Errorf("%w: perPage must not exceed %d", ErrInvalidInput, domain.MaxBookingsPerPage)
	}
	if req.Sort == "" {
		req.Sort = domain.DefaultBookingsSort
	}
	if req.Order == "" {
		req.Order = domain.DefaultBookingsOrder
	}
	if !models.IsValidSort(req.Sort) || !models.IsValidOrder(req.Order) {
		return req, fmt.Errorf("%w: sort=%s, order=%s", ErrInvalidSort, req.Sort, req.Order)
	}
	if req.Filters.StartDate != nil && req.Filters.EndDate != nil && req.Filters.EndDate.Before(*req.Filters.StartDate) {
		return req, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}
	return req, nil
}
