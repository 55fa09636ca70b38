package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

var (
	aggDay    = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	aggWindow = time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
)

func slotOf(kind domain.TimeframeKind, allowed bool) domain.Slot {
	return domain.Slot{
		Start:         "00:00",
		End:           "24:00",
		Timeframe:     &domain.Timeframe{ID: int64(kind), Kind: kind},
		AllowedToBook: allowed,
	}
}

func TestAggregate_NoSlots(t *testing.T) {
	agg := Aggregate(aggDay, aggWindow, nil)

	assert.True(t, agg.NoSlots)
	assert.True(t, agg.AllLocked)
	assert.True(t, agg.Status.Locked)
	assert.False(t, agg.Status.Holiday)
	assert.False(t, agg.Status.Repair)
	assert.False(t, agg.Status.BookedDay)
	assert.False(t, agg.Status.PartiallyBookedDay)
	assert.Nil(t, agg.Status.FirstSlotBooked)
	assert.Nil(t, agg.Status.LastSlotBooked)
	assert.Nil(t, agg.MaxDays)
	assert.NotNil(t, agg.Status.Slots)
	assert.Equal(t, "2025-03-10", agg.Status.Date)
}

func TestAggregate_SingleKind(t *testing.T) {
	tests := []struct {
		name            string
		slot            domain.Slot
		wantLocked      bool
		wantAllLocked   bool
		wantHoliday     bool
		wantRepair      bool
		wantBookedDay   bool
		wantPartially   bool
		wantFirstBooked bool
	}{
		{
			name:            "bookable",
			slot:            slotOf(domain.KindBookable, true),
			wantFirstBooked: false,
		},
		{
			name:            "bookable not allowed",
			slot:            slotOf(domain.KindBookable, false),
			wantLocked:      true,
			wantAllLocked:   true,
			wantFirstBooked: false,
		},
		{
			name:            "holiday",
			slot:            slotOf(domain.KindHoliday, false),
			wantLocked:      true,
			wantAllLocked:   true,
			wantHoliday:     true,
			wantFirstBooked: true,
		},
		{
			name:            "off holiday",
			slot:            slotOf(domain.KindOffHoliday, false),
			wantLocked:      true,
			wantAllLocked:   true,
			wantHoliday:     true,
			wantFirstBooked: true,
		},
		{
			name:            "repair",
			slot:            slotOf(domain.KindRepair, false),
			wantLocked:      true,
			wantAllLocked:   true,
			wantRepair:      true,
			wantBookedDay:   true,
			wantFirstBooked: true,
		},
		{
			name:            "booking",
			slot:            slotOf(domain.KindBooking, false),
			wantLocked:      true,
			wantAllLocked:   true,
			wantBookedDay:   true,
			wantPartially:   true,
			wantFirstBooked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(aggDay, aggWindow, []domain.Slot{tt.slot})

			assert.False(t, agg.NoSlots)
			assert.Equal(t, tt.wantLocked, agg.Status.Locked)
			assert.Equal(t, tt.wantAllLocked, agg.AllLocked)
			assert.Equal(t, tt.wantHoliday, agg.Status.Holiday)
			assert.Equal(t, tt.wantRepair, agg.Status.Repair)
			assert.Equal(t, tt.wantBookedDay, agg.Status.BookedDay)
			assert.Equal(t, tt.wantPartially, agg.Status.PartiallyBookedDay)
			require.NotNil(t, agg.Status.FirstSlotBooked)
			assert.Equal(t, tt.wantFirstBooked, *agg.Status.FirstSlotBooked)
			require.NotNil(t, agg.Status.LastSlotBooked)
			assert.Equal(t, tt.wantFirstBooked, *agg.Status.LastSlotBooked)
		})
	}
}

func TestAggregate_HolidayAndRepairClearEachOther(t *testing.T) {
	agg := Aggregate(aggDay, aggWindow, []domain.Slot{
		slotOf(domain.KindHoliday, false),
		slotOf(domain.KindRepair, false),
	})

	assert.False(t, agg.Status.Holiday)
	assert.False(t, agg.Status.Repair)
	assert.False(t, agg.Status.BookedDay)
	assert.True(t, agg.Status.Locked)
	assert.True(t, agg.AllLocked)
}

func TestAggregate_PartiallyBookedDay(t *testing.T) {
	agg := Aggregate(aggDay, aggWindow, []domain.Slot{
		slotOf(domain.KindBookable, true),
		slotOf(domain.KindBooking, false),
		slotOf(domain.KindBookable, true),
	})

	assert.True(t, agg.Status.Locked)
	assert.False(t, agg.AllLocked)
	assert.True(t, agg.Status.PartiallyBookedDay)
	assert.False(t, agg.Status.BookedDay)
	assert.False(t, *agg.Status.FirstSlotBooked)
	assert.False(t, *agg.Status.LastSlotBooked)
	assert.Len(t, agg.Status.Slots, 3)
	assert.False(t, agg.Status.FullDay)
}

func TestAggregate_LastSlotBooked(t *testing.T) {
	agg := Aggregate(aggDay, aggWindow, []domain.Slot{
		slotOf(domain.KindBookable, true),
		slotOf(domain.KindBooking, false),
	})

	assert.False(t, *agg.Status.FirstSlotBooked)
	assert.True(t, *agg.Status.LastSlotBooked)
}

func TestAggregate_LockedTimeframe(t *testing.T) {
	slot := slotOf(domain.KindBookable, true)
	slot.Timeframe.Locked = true

	agg := Aggregate(aggDay, aggWindow, []domain.Slot{slot})

	assert.True(t, agg.Status.Locked)
	assert.True(t, agg.AllLocked)
}

func TestAggregate_MaxDays(t *testing.T) {
	t.Run("default when unset", func(t *testing.T) {
		agg := Aggregate(aggDay, aggWindow, []domain.Slot{slotOf(domain.KindBookable, true)})
		require.NotNil(t, agg.MaxDays)
		assert.Equal(t, domain.DefaultMaxAdvanceBookingDays, *agg.MaxDays)
	})

	t.Run("from first bookable slot", func(t *testing.T) {
		slot := slotOf(domain.KindBookable, true)
		slot.Timeframe.MaxAdvanceBookingDays = ptr.Ptr(14)
		agg := Aggregate(aggDay, aggWindow, []domain.Slot{slot})
		require.NotNil(t, agg.MaxDays)
		assert.Equal(t, 14, *agg.MaxDays)
	})

	t.Run("not taken from later slots", func(t *testing.T) {
		agg := Aggregate(aggDay, aggWindow, []domain.Slot{
			slotOf(domain.KindBooking, false),
			slotOf(domain.KindBookable, true),
		})
		assert.Nil(t, agg.MaxDays)
	})
}

func TestAggregate_FullDay(t *testing.T) {
	slot := slotOf(domain.KindBookable, true)
	slot.Timeframe.FullDay = true

	agg := Aggregate(aggDay, aggWindow, []domain.Slot{slot})
	assert.True(t, agg.Status.FullDay)

	other := slotOf(domain.KindBookable, true)
	other.Timeframe.FullDay = true
	agg = Aggregate(aggDay, aggWindow, []domain.Slot{slot, other})
	assert.False(t, agg.Status.FullDay)
}

func TestAggregate_PastWindowIsLocked(t *testing.T) {
	slot := slotOf(domain.KindBookable, true)

	onEdge := Aggregate(aggWindow, aggWindow, []domain.Slot{slot})
	assert.False(t, onEdge.Status.Locked)

	past := Aggregate(aggWindow.AddDate(0, 0, 1), aggWindow, []domain.Slot{slot})
	assert.True(t, past.Status.Locked)
	assert.False(t, past.AllLocked)
}
