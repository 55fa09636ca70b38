package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// TimeframeKind identifies what a timeframe describes
type TimeframeKind int

const (
	KindOpeningHours    TimeframeKind = 1
	KindBookable        TimeframeKind = 2
	KindHoliday         TimeframeKind = 3
	KindOffHoliday      TimeframeKind = 4
	KindRepair          TimeframeKind = 5
	KindBooking         TimeframeKind = 6
	KindBookingCanceled TimeframeKind = 7
)

// IsKnown returns true for kinds the service understands
func (k TimeframeKind) IsKnown() bool {
	return k >= KindOpeningHours && k <= KindBookingCanceled
}

// String returns the kind name used in logs and API payloads
func (k TimeframeKind) String() string {
	switch k {
	case KindOpeningHours:
		return "opening_hours"
	case KindBookable:
		return "bookable"
	case KindHoliday:
		return "holiday"
	case KindOffHoliday:
		return "off_holiday"
	case KindRepair:
		return "repair"
	case KindBooking:
		return "booking"
	case KindBookingCanceled:
		return "booking_canceled"
	default:
		return "unknown"
	}
}

// Priority decides which timeframe wins a grid cell claimed by several timeframes.
// Higher wins.
func (k TimeframeKind) Priority() int {
	switch k {
	case KindRepair:
		return 5
	case KindBooking:
		return 4
	case KindHoliday:
		return 3
	case KindOffHoliday:
		return 2
	case KindBookable:
		return 1
	default:
		return 0
	}
}

// GridType is the intra-day slot template of a timeframe
type GridType int

const (
	// GridFullSlot books the whole time window (or the whole day) as one unit
	GridFullSlot GridType = 0
	// GridHourly books the time window hour by hour
	GridHourly GridType = 1
)

// Booking statuses stored on timeframes of kind Booking
const (
	BookingStatusConfirmed   = "confirmed"
	BookingStatusUnconfirmed = "unconfirmed"
	BookingStatusCanceled    = "canceled"
)

// Timeframe describes when and how an item at a location is available, booked or excluded.
// Dates are calendar days (midnight in the service time zone); a nil EndDate means open-ended.
type Timeframe struct {
	ID                    int64             `json:"id"`
	Title                 string            `json:"title"`
	Kind                  TimeframeKind     `json:"kind"`
	LocationID            *int64            `json:"locationId,omitempty"`
	ItemID                *int64            `json:"itemId,omitempty"`
	StartDate             *time.Time        `json:"startDate,omitempty"`
	EndDate               *time.Time        `json:"endDate,omitempty"`
	StartTime             *types.TimeString `json:"startTime,omitempty"`
	EndTime               *types.TimeString `json:"endTime,omitempty"`
	Grid                  GridType          `json:"grid"`
	FullDay               bool              `json:"fullDay"`
	MaxAdvanceBookingDays *int              `json:"maxAdvanceBookingDays,omitempty"`
	Locked                bool              `json:"locked"`
	AllowedRoles          []string          `json:"allowedRoles,omitempty"`

	// Booking specific data (Kind == KindBooking)
	UserID      *int64  `json:"userId,omitempty"`
	Status      *string `json:"status,omitempty"`
	BookingCode *string `json:"bookingCode,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsBookable returns true if the timeframe opens an item for bookings
func (t *Timeframe) IsBookable() bool {
	return t.Kind == KindBookable
}

// IsOpenEnded returns true if the timeframe has no end date
func (t *Timeframe) IsOpenEnded() bool {
	return t.EndDate == nil
}

// HasStartTime returns true if a pickup time is set
func (t *Timeframe) HasStartTime() bool {
	return t.StartTime != nil && *t.StartTime != ""
}

// HasEndTime returns true if a return time is set
func (t *Timeframe) HasEndTime() bool {
	return t.EndTime != nil && *t.EndTime != ""
}

// HasTimeWindow returns true if both pickup and return times are set
func (t *Timeframe) HasTimeWindow() bool {
	return t.HasStartTime() && t.HasEndTime()
}

// HasTimeWindowGap returns true if a pickup time is set without a return time
func (t *Timeframe) HasTimeWindowGap() bool {
	return t.HasStartTime() && !t.HasEndTime()
}

// IsSubjectToOverlapCheck returns true for bookable timeframes with location, item and start date
func (t *Timeframe) IsSubjectToOverlapCheck() bool {
	return t.IsBookable() && t.LocationID != nil && t.ItemID != nil && t.StartDate != nil
}

// BookingCodesApplicable returns true if booking codes can be generated for this timeframe
func (t *Timeframe) BookingCodesApplicable() bool {
	return t.IsBookable() && t.LocationID != nil && t.ItemID != nil && t.StartDate != nil && t.EndDate != nil
}

// AdvanceBookingDays returns the configured max advance booking days or the default
func (t *Timeframe) AdvanceBookingDays() int {
	if t.MaxAdvanceBookingDays == nil || *t.MaxAdvanceBookingDays <= 0 {
		return DefaultMaxAdvanceBookingDays
	}
	return *t.MaxAdvanceBookingDays
}

// IsActiveOn returns true if the timeframe's date range contains day
func (t *Timeframe) IsActiveOn(day time.Time) bool {
	if t.StartDate == nil || day.Before(*t.StartDate) {
		return false
	}
	return t.EndDate == nil || !day.After(*t.EndDate)
}

// IsCurrentlyBookable returns true for bookable timeframes that have not ended before today
func (t *Timeframe) IsCurrentlyBookable(today time.Time) bool {
	if !t.IsBookable() || t.StartDate == nil {
		return false
	}
	return t.EndDate == nil || !t.EndDate.Before(today)
}

// Residence describes how long an item stays at a location relative to now
type Residence string

const (
	ResidenceNone        Residence = ""
	ResidenceOn          Residence = "on"          // available a single day
	ResidenceFrom        Residence = "from"        // starts in the future, no end
	ResidencePermanently Residence = "permanently" // started, no end
	ResidenceFromUntil   Residence = "from_until"  // starts in the future, has an end
	ResidenceUntil       Residence = "until"       // started, has an end
)

// Residence returns the label kind for the "available here" text of the timeframe
func (t *Timeframe) Residence(now time.Time) Residence {
	if t.StartDate == nil {
		return ResidenceNone
	}
	start := *t.StartDate

	switch {
	case t.EndDate != nil && start.Equal(*t.EndDate):
		return ResidenceOn
	case t.EndDate == nil && start.After(now):
		return ResidenceFrom
	case t.EndDate == nil:
		return ResidencePermanently
	case start.After(now):
		return ResidenceFromUntil
	default:
		return ResidenceUntil
	}
}
