package domain

import "time"

// Booking is a reservation of an item at a location (a timeframe of kind Booking)
// enriched with the data shown in booking lists
type Booking struct {
	ID            int64
	UserID        int64
	UserLogin     string
	UserFirstName string
	UserLastName  string
	ItemID        *int64
	ItemTitle     *string
	LocationID    *int64
	LocationTitle *string
	LocationAddr  string
	LocationLat   *float64
	LocationLong  *float64
	StartAt       time.Time
	EndAt         time.Time
	Status        string
	FullDay       bool
	BookingCode   *string
	CreatedAt     time.Time
}

// IsCanceled returns true if the booking was canceled
func (b *Booking) IsCanceled() bool {
	return b.Status == BookingStatusCanceled
}

// BookingListFilter фильтр для выборки бронирований пользователя
type BookingListFilter struct {
	UserID    int64      // Пользователь, для которого строится список
	AllUsers  bool       // Администраторы видят бронирования всех пользователей
	StartDate *time.Time // Бронирования, закончившиеся раньше, не выбираются
}
