package get_items_table

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_calendar"
)

// UseCase use case таблицы доступности опубликованных предметов по локациям
type UseCase struct {
	catalogRepo   CatalogRepository
	timeframeRepo TimeframeRepository
	calendar      CalendarBuilder
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	timeframeRepo TimeframeRepository,
	calendar CalendarBuilder,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:   catalogRepo,
		timeframeRepo: timeframeRepo,
		calendar:      calendar,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute строит таблицу на Days дней начиная с сегодняшнего
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	days := req.Days
	if days == 0 {
		days = domain.DefaultItemsTableDays
	}
	if days < 0 || days > domain.MaxItemsTableDays {
		uc.logger.Warn("GetItemsTable: invalid days=%d", req.Days)
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, domain.MaxItemsTableDays)
	}

	// 2. Диапазон дат
	today := domain.DateOnly(uc.timeProvider.Now())
	lastDay := today.AddDate(0, 0, days-1)
	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, today.AddDate(0, 0, i).Format(domain.DateFormat))
	}
	uc.logger.Info("GetItemsTable: %s..%s, user=%d", dates[0], dates[len(dates)-1], req.Actor.UserID)

	// 3. Опубликованные предметы
	items, err := uc.catalogRepo.ListPublishedItems(ctx)
	if err != nil {
		uc.logger.Error("GetItemsTable: failed to get items: %v", err)
		return nil, fmt.Errorf("%w: failed to get items: %v", ErrInternal, err)
	}

	resp := &Response{
		StartDate: dates[0],
		EndDate:   dates[len(dates)-1],
		Dates:     dates,
		Rows:      []Row{},
	}

	// 4. Для каждого предмета - локации из его bookable таймфреймов
	for _, item := range items {
		locations, err := uc.itemLocations(ctx, item.ID, today, lastDay)
		if err != nil {
			return nil, err
		}

		for _, location := range locations {
			row, err := uc.buildRow(ctx, item, location, today, lastDay, dates, req.Actor)
			if err != nil {
				return nil, err
			}
			resp.Rows = append(resp.Rows, row)
		}
	}

	uc.logger.Info("GetItemsTable: built %d rows for %d items", len(resp.Rows), len(items))
	return resp, nil
}

// itemLocations возвращает локации, где предмет доступен в диапазоне, по названию
func (uc *UseCase) itemLocations(ctx context.Context, itemID int64, start, end time.Time) ([]*domain.Location, error) {
	timeframes, err := uc.timeframeRepo.FindBookableInRange(ctx, start, &end, nil, []int64{itemID})
	if err != nil {
		uc.logger.Error("GetItemsTable: failed to get timeframes for item id=%d: %v", itemID, err)
		return nil, fmt.Errorf("%w: failed to get timeframes: %v", ErrInternal, err)
	}

	seen := make(map[int64]struct{})
	ids := make([]int64, 0, len(timeframes))
	for _, tf := range timeframes {
		if tf.LocationID == nil {
			continue
		}
		if _, ok := seen[*tf.LocationID]; ok {
			continue
		}
		seen[*tf.LocationID] = struct{}{}
		ids = append(ids, *tf.LocationID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	locations, err := uc.catalogRepo.GetLocationsByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("GetItemsTable: failed to get locations %v: %v", ids, err)
		return nil, fmt.Errorf("%w: failed to get locations: %v", ErrInternal, err)
	}
	return locations, nil
}

func (uc *UseCase) buildRow(
	ctx context.Context,
	item *domain.Item,
	location *domain.Location,
	start, end time.Time,
	dates []string,
	actor domain.Actor,
) (Row, error) {
	resp, err := uc.calendar.Execute(ctx, &get_calendar.Request{Query: domain.CalendarQuery{
		StartDate:   &start,
		EndDate:     &end,
		LocationIDs: []int64{location.ID},
		ItemIDs:     []int64{item.ID},
		Actor:       actor,
	}})
	if err != nil {
		uc.logger.Error("GetItemsTable: failed to build calendar for item=%d, location=%d: %v", item.ID, location.ID, err)
		return Row{}, fmt.Errorf("%w: failed to build calendar: %v", ErrInternal, err)
	}

	row := Row{
		ItemID:        item.ID,
		ItemTitle:     item.Title,
		LocationID:    location.ID,
		LocationTitle: location.Title,
		Days:          make([]DayState, 0, len(dates)),
	}
	for _, date := range dates {
		day, ok := resp.Calendar.Days[date]
		if !ok {
			row.Days = append(row.Days, DayUnavailable)
			continue
		}
		row.Days = append(row.Days, dayState(day))
	}
	return row, nil
}

// dayState сводит статус дня календаря к состоянию ячейки таблицы
func dayState(day domain.DayStatus) DayState {
	switch {
	case len(day.Slots) == 0:
		return DayUnavailable
	case day.Holiday:
		return DayHoliday
	case day.Locked && isTrue(day.FirstSlotBooked) && isTrue(day.LastSlotBooked):
		return DayBlocked
	case day.Locked && day.PartiallyBookedDay:
		return DayBooked
	case day.Locked:
		return DayLocked
	default:
		return DayFree
	}
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
