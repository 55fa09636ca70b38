package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// Aggregation is the result of aggregating the slots of one day.
// AllLocked and NoSlots are working flags used to classify the day.
type Aggregation struct {
	Status    domain.DayStatus
	AllLocked bool
	NoSlots   bool
	// MaxDays is the advance booking window of the first bookable slot, nil if the day has none
	MaxDays *int
}

// dayState accumulates day flags slot by slot.
// Holiday, Repair and BookedDay start true and are only cleared.
// Locked and PartiallyBookedDay start false and are only set.
type dayState struct {
	status    domain.DayStatus
	allLocked bool
	noSlots   bool
	maxDays   *int
	count     int
	lastSlot  *domain.Slot
}

func newDayState(date time.Time) *dayState {
	return &dayState{
		status: domain.DayStatus{
			Date:      date.Format(domain.DateFormat),
			Slots:     []domain.Slot{},
			BookedDay: true,
			Holiday:   true,
			Repair:    true,
		},
		allLocked: true,
		noSlots:   true,
	}
}

// Aggregate computes the day status of date from its slots in day order.
// Days after windowEnd are always locked.
func Aggregate(date, windowEnd time.Time, slots []domain.Slot) Aggregation {
	s := newDayState(date)

	for i := range slots {
		slot := slots[i]
		s.add(slot)
		if i == 0 {
			s.markFirstSlot(slot)
		}
		s.markLastSlot(slot)
		s.applyHoliday(slot)
		s.applyRepair(slot)
		s.applyBookedDay(slot)
		s.applyPartiallyBooked(slot)
		s.applyLock(slot)
	}

	s.finish(date, windowEnd)

	return Aggregation{
		Status:    s.status,
		AllLocked: s.allLocked,
		NoSlots:   s.noSlots,
		MaxDays:   s.maxDays,
	}
}

func (s *dayState) add(slot domain.Slot) {
	s.noSlots = false
	s.count++
	s.status.Slots = append(s.status.Slots, slot)
	s.lastSlot = &s.status.Slots[len(s.status.Slots)-1]
}

// markFirstSlot records whether the day starts booked and picks up the advance booking window
func (s *dayState) markFirstSlot(slot domain.Slot) {
	if !slot.IsBookable() {
		s.status.FirstSlotBooked = ptr.Ptr(true)
		return
	}
	s.status.FirstSlotBooked = ptr.Ptr(false)
	if s.maxDays == nil {
		s.maxDays = ptr.Ptr(slot.Timeframe.AdvanceBookingDays())
	}
}

// markLastSlot is overwritten by every slot, so the final value belongs to the last one
func (s *dayState) markLastSlot(slot domain.Slot) {
	s.status.LastSlotBooked = ptr.Ptr(!slot.IsBookable())
}

func (s *dayState) applyHoliday(slot domain.Slot) {
	if k := slot.Kind(); k != domain.KindHoliday && k != domain.KindOffHoliday {
		s.status.Holiday = false
	}
}

func (s *dayState) applyRepair(slot domain.Slot) {
	if slot.Kind() != domain.KindRepair {
		s.status.Repair = false
	}
}

func (s *dayState) applyBookedDay(slot domain.Slot) {
	if k := slot.Kind(); k != domain.KindBooking && k != domain.KindRepair {
		s.status.BookedDay = false
	}
}

func (s *dayState) applyPartiallyBooked(slot domain.Slot) {
	if slot.Kind() == domain.KindBooking {
		s.status.PartiallyBookedDay = true
	}
}

func (s *dayState) applyLock(slot domain.Slot) {
	if slot.IsLocked() || !slot.AllowedToBook {
		s.status.Locked = true
		return
	}
	s.allLocked = false
}

func (s *dayState) finish(date, windowEnd time.Time) {
	switch {
	case s.noSlots:
		// An empty day is unavailable, not a holiday
		s.status.Locked = true
		s.status.Holiday = false
		s.status.Repair = false
		s.status.BookedDay = false
	case s.count == 1 && s.lastSlot.Timeframe != nil:
		s.status.FullDay = s.lastSlot.Timeframe.FullDay
	}

	if domain.DaysBetween(windowEnd, date) > 0 {
		s.status.Locked = true
	}
}
