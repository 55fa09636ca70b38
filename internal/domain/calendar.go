package domain

import "time"

// CalendarQuery describes one calendar computation.
// Empty LocationIDs / ItemIDs mean "unfiltered" on that axis.
type CalendarQuery struct {
	StartDate   *time.Time
	EndDate     *time.Time
	LocationIDs []int64
	ItemIDs     []int64
	Actor       Actor
}

// HasSelector returns true if at least one item or location is given
func (q CalendarQuery) HasSelector() bool {
	return len(q.LocationIDs) > 0 || len(q.ItemIDs) > 0
}

// Week is seven consecutive days
type Week struct {
	Days []time.Time
}

// DayStatus is the aggregated availability of one calendar day
type DayStatus struct {
	Date               string `json:"date"`
	Slots              []Slot `json:"slots"`
	Locked             bool   `json:"locked"`
	BookedDay          bool   `json:"bookedDay"`
	PartiallyBookedDay bool   `json:"partiallyBookedDay"`
	Holiday            bool   `json:"holiday"`
	Repair             bool   `json:"repair"`
	FullDay            bool   `json:"fullDay"`
	FirstSlotBooked    *bool  `json:"firstSlotBooked"`
	LastSlotBooked     *bool  `json:"lastSlotBooked"`
}

// LocationInfo is location metadata attached when exactly one location is in scope
type LocationInfo struct {
	FullDayInfo string `json:"fullDayInfo"`
}

// CalendarResponse is the calendar data consumed by booking UIs
type CalendarResponse struct {
	MinDate                 string               `json:"minDate"`
	StartDate               string               `json:"startDate"`
	EndDate                 string               `json:"endDate"`
	Days                    map[string]DayStatus `json:"days"`
	BookedDays              []string             `json:"bookedDays"`
	PartiallyBookedDays     []string             `json:"partiallyBookedDays"`
	LockDays                []string             `json:"lockDays"`
	Holidays                []string             `json:"holidays"`
	MaxDays                 *int                 `json:"maxDays"`
	DisallowLockDaysInRange bool                 `json:"disallowLockDaysInRange"`
	AdvanceBookingDays      int                  `json:"advanceBookingDays"`
	Location                *LocationInfo        `json:"location,omitempty"`
}

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole calendar days from start to end
func DaysBetween(start, end time.Time) int {
	s := DateOnly(start)
	e := DateOnly(end)
	// Через UTC, чтобы переход на летнее время не съедал день
	su := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	eu := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
	return int(eu.Sub(su).Hours() / 24)
}
