package get_calendar

import (
	"errors"
	"net/url"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getCalendar "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_calendar"
)

// SlotResponse слот в ответе календаря.
// От таймфрейма отдаются только ID, тип и блокировка: данные брони (владелец, код) наружу не уходят
type SlotResponse struct {
	Start         string `json:"start"`
	End           string `json:"end"`
	TimeframeID   int64  `json:"timeframeId"`
	Kind          string `json:"kind"`
	Locked        bool   `json:"locked"`
	AllowedToBook bool   `json:"allowedToBook"`
}

type DayResponse struct {
	Date               string         `json:"date"`
	Slots              []SlotResponse `json:"slots"`
	Locked             bool           `json:"locked"`
	BookedDay          bool           `json:"bookedDay"`
	PartiallyBookedDay bool           `json:"partiallyBookedDay"`
	Holiday            bool           `json:"holiday"`
	Repair             bool           `json:"repair"`
	FullDay            bool           `json:"fullDay"`
	FirstSlotBooked    *bool          `json:"firstSlotBooked"`
	LastSlotBooked     *bool          `json:"lastSlotBooked"`
}

type LocationResponse struct {
	FullDayInfo string `json:"fullDayInfo"`
}

type CalendarResponse struct {
	MinDate                 string                 `json:"minDate"`
	StartDate               string                 `json:"startDate"`
	EndDate                 string                 `json:"endDate"`
	Days                    map[string]DayResponse `json:"days"`
	BookedDays              []string               `json:"bookedDays"`
	PartiallyBookedDays     []string               `json:"partiallyBookedDays"`
	LockDays                []string               `json:"lockDays"`
	Holidays                []string               `json:"holidays"`
	MaxDays                 *int                   `json:"maxDays"`
	DisallowLockDaysInRange bool                   `json:"disallowLockDaysInRange"`
	AdvanceBookingDays      int                    `json:"advanceBookingDays"`
	Location                *LocationResponse      `json:"location,omitempty"`
}

var (
	errInvalidIDs  = errors.New("invalid item or location ids")
	errInvalidDate = errors.New("invalid date")
)

// ToUseCaseRequest создает запрос use case из query параметров
// item, location (списки через запятую), startDate, endDate (YYYY-MM-DD)
func ToUseCaseRequest(query url.Values, actor domain.Actor) (*getCalendar.Request, error) {
	itemIDs, err := handlers.ParseIDList(query.Get("item"))
	if err != nil {
		return nil, errInvalidIDs
	}
	locationIDs, err := handlers.ParseIDList(query.Get("location"))
	if err != nil {
		return nil, errInvalidIDs
	}

	startDate, err := handlers.ParseOptionalDate(query.Get("startDate"))
	if err != nil {
		return nil, errInvalidDate
	}
	endDate, err := handlers.ParseOptionalDate(query.Get("endDate"))
	if err != nil {
		return nil, errInvalidDate
	}

	return &getCalendar.Request{
		Query: domain.CalendarQuery{
			StartDate:   startDate,
			EndDate:     endDate,
			LocationIDs: locationIDs,
			ItemIDs:     itemIDs,
			Actor:       actor,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в ответ API
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	cal := resp.Calendar
	if cal == nil {
		return &CalendarResponse{Days: map[string]DayResponse{}}
	}

	days := make(map[string]DayResponse, len(cal.Days))
	for date, day := range cal.Days {
		days[date] = fromDayStatus(day)
	}

	result := &CalendarResponse{
		MinDate:                 cal.MinDate,
		StartDate:               cal.StartDate,
		EndDate:                 cal.EndDate,
		Days:                    days,
		BookedDays:              cal.BookedDays,
		PartiallyBookedDays:     cal.PartiallyBookedDays,
		LockDays:                cal.LockDays,
		Holidays:                cal.Holidays,
		MaxDays:                 cal.MaxDays,
		DisallowLockDaysInRange: cal.DisallowLockDaysInRange,
		AdvanceBookingDays:      cal.AdvanceBookingDays,
	}
	if cal.Location != nil {
		result.Location = &LocationResponse{FullDayInfo: cal.Location.FullDayInfo}
	}
	return result
}

func fromDayStatus(day domain.DayStatus) DayResponse {
	slots := make([]SlotResponse, 0, len(day.Slots))
	for i := range day.Slots {
		slots = append(slots, fromSlot(&day.Slots[i]))
	}
	return DayResponse{
		Date:               day.Date,
		Slots:              slots,
		Locked:             day.Locked,
		BookedDay:          day.BookedDay,
		PartiallyBookedDay: day.PartiallyBookedDay,
		Holiday:            day.Holiday,
		Repair:             day.Repair,
		FullDay:            day.FullDay,
		FirstSlotBooked:    day.FirstSlotBooked,
		LastSlotBooked:     day.LastSlotBooked,
	}
}

func fromSlot(slot *domain.Slot) SlotResponse {
	result := SlotResponse{
		Start:         string(slot.Start),
		End:           string(slot.End),
		Kind:          slot.Kind().String(),
		Locked:        slot.IsLocked(),
		AllowedToBook: slot.AllowedToBook,
	}
	if slot.Timeframe != nil {
		result.TimeframeID = slot.Timeframe.ID
	}
	return result
}
