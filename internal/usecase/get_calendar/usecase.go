package get_calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/catalog"
)

const cacheNamespace = "calendar"

// UseCase use case построения календаря доступности
type UseCase struct {
	timeframeRepo TimeframeRepository
	locationRepo  LocationRepository
	permissions   PermissionService
	cache         *cache.Cache
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case. calendarCache может быть nil
func NewUseCase(
	timeframeRepo TimeframeRepository,
	locationRepo LocationRepository,
	permissions PermissionService,
	calendarCache *cache.Cache,
	logger Logger,
) *UseCase {
	return &UseCase{
		timeframeRepo: timeframeRepo,
		locationRepo:  locationRepo,
		permissions:   permissions,
		cache:         calendarCache,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// calendarKey значимые для результата параметры запроса
type calendarKey struct {
	Today       string
	StartDate   string
	EndDate     string
	LocationIDs []int64
	ItemIDs     []int64
	UserID      int64
	Roles       []string
}

// Execute строит календарь через кэш. Запись живет до ближайшей полуночи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}
	q := req.Query
	uc.logger.Info("GetCalendar: locations=%v, items=%v, user=%d", q.LocationIDs, q.ItemIDs, q.Actor.UserID)

	// 2. Ключ и теги кэша
	now := uc.timeProvider.Now()
	key := cache.Fingerprint(cacheNamespace, calendarKey{
		Today:       now.Format(domain.DateFormat),
		StartDate:   formatDate(q.StartDate),
		EndDate:     formatDate(q.EndDate),
		LocationIDs: sortedIDs(q.LocationIDs),
		ItemIDs:     sortedIDs(q.ItemIDs),
		UserID:      q.Actor.UserID,
		Roles:       q.Actor.SortedRoles(),
	})
	tags := append(cache.Tags(domain.TagItem, q.ItemIDs...), cache.Tags(domain.TagLocation, q.LocationIDs...)...)

	// 3. Чтение через кэш
	calendar, err := cache.GetOrCompute(ctx, uc.cache, key, tags, cache.UntilMidnight(),
		func(ctx context.Context) (*domain.CalendarResponse, []string, error) {
			return uc.build(ctx, q, now)
		},
	)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetCalendar: built %s..%s, %d days", calendar.StartDate, calendar.EndDate, len(calendar.Days))
	return &Response{Calendar: calendar}, nil
}

// build вычисляет календарь и возвращает теги таймфреймов, попавших в слоты
func (uc *UseCase) build(ctx context.Context, q domain.CalendarQuery, now time.Time) (*domain.CalendarResponse, []string, error) {
	today := domain.DateOnly(now)

	// 1. Диапазон дат
	var first *domain.Timeframe
	if q.StartDate == nil || q.EndDate == nil {
		bookable, err := uc.timeframeRepo.FindBookableInRange(ctx, today, nil, q.LocationIDs, q.ItemIDs)
		if err != nil {
			uc.logger.Error("GetCalendar: failed to get bookable timeframes: %v", err)
			return nil, nil, fmt.Errorf("%w: failed to get bookable timeframes: %v", ErrInternal, err)
		}
		first = latestStart(bookable)
	}
	w := resolveWindow(q.StartDate, q.EndDate, today, first)
	if domain.DaysBetween(w.start, w.end) < 0 {
		uc.logger.Warn("GetCalendar: derived range %s..%s is empty",
			w.start.Format(domain.DateFormat), w.end.Format(domain.DateFormat))
		return nil, nil, fmt.Errorf("%w: end date is before start date", ErrInvalidDateRange)
	}

	// 2. Недели и слоты всего диапазона одним запросом
	weeks := availability.Weeks(w.start, w.end)
	slotsByDay, err := uc.timeframeRepo.FindSlotsInRange(
		ctx, w.start, availability.PaddedEnd(weeks), q.LocationIDs, q.ItemIDs, domain.CalendarKinds,
	)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get slots: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	resp := newCalendarResponse(w)

	// 3. Данные локации, если она единственная
	if err := uc.attachLocation(ctx, resp, q.LocationIDs); err != nil {
		return nil, nil, err
	}

	// 4. Агрегация дней
	allowed := make(map[int64]bool)
	seen := make(map[int64]struct{})
	for _, week := range weeks {
		for _, day := range week.Days {
			key := day.Format(domain.DateFormat)
			slots := slotsByDay[key]
			for i := range slots {
				tf := slots[i].Timeframe
				if tf == nil {
					continue
				}
				seen[tf.ID] = struct{}{}
				// Бронировать можно только слоты bookable таймфреймов
				if !tf.IsBookable() {
					continue
				}
				canBook, ok := allowed[tf.ID]
				if !ok {
					canBook = uc.permissions.CanBook(q.Actor, tf)
					allowed[tf.ID] = canBook
				}
				slots[i].AllowedToBook = canBook
			}
			addDay(resp, key, availability.Aggregate(day, w.end, slots))
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return resp, cache.Tags(domain.TagTimeframe, sortedIDs(ids)...), nil
}

// attachLocation добавляет инструкции выдачи и настройку блокированных дней
func (uc *UseCase) attachLocation(ctx context.Context, resp *domain.CalendarResponse, locationIDs []int64) error {
	if len(locationIDs) != 1 {
		return nil
	}

	location, err := uc.locationRepo.GetLocation(ctx, locationIDs[0])
	if err != nil {
		if errors.Is(err, catalogRepo.ErrLocationNotFound) {
			uc.logger.Warn("GetCalendar: location id=%d not found", locationIDs[0])
			return nil
		}
		uc.logger.Error("GetCalendar: failed to get location id=%d: %v", locationIDs[0], err)
		return fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	resp.Location = &domain.LocationInfo{FullDayInfo: location.PickupInstructions}
	resp.DisallowLockDaysInRange = !location.AllowLockDaysInRange
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateFormat)
}

func sortedIDs(ids []int64) []int64 {
	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}
