package domain

// Default configuration values
const (
	DefaultMaxAdvanceBookingDays = 3
	DefaultItemsTableDays        = 31
	DefaultBookingsPerPage       = 6
	DefaultBookingsSort          = "startDate"
	DefaultBookingsOrder         = "asc"
)

// Business validation constants
const (
	MaxCalendarRangeDays = 366
	MaxItemsTableDays    = 93
	MaxBookingsPerPage   = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Cache tag prefixes. Tags are "<prefix>:<id>".
const (
	TagTimeframe = "timeframe"
	TagItem      = "item"
	TagLocation  = "location"
	TagBooking   = "booking"
	TagUser      = "user"
)

// CalendarKinds are the timeframe kinds that contribute slots to the calendar grid
var CalendarKinds = []TimeframeKind{
	KindBookable,
	KindHoliday,
	KindOffHoliday,
	KindRepair,
	KindBooking,
}
