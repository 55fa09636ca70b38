package models

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// DisplayDateTimeFormat формат дат в строках списка
const DisplayDateTimeFormat = "02.01.2006 15:04"

// NotAvailable подпись для удаленного предмета или локации
const NotAvailable = "Not available"

// Поля сортировки
const (
	SortStartDate   = "startDate"
	SortEndDate     = "endDate"
	SortItem        = "item"
	SortLocation    = "location"
	SortUser        = "user"
	SortStatus      = "status"
	SortBookingDate = "bookingDate"
)

// Направления сортировки
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Request модели

// ListFilters фильтры списка бронирований.
// Location, Item, User и Status сравниваются с отображаемыми значениями строки.
type ListFilters struct {
	Location  string     `json:"location,omitempty"`
	Item      string     `json:"item,omitempty"`
	User      string     `json:"user,omitempty"`
	Status    string     `json:"status,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"` // Скрывает бронирования, закончившиеся раньше (по умолчанию - сейчас)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Скрывает бронирования, начинающиеся позже
}

// GetBookingListRequest запрос на получение списка бронирований
type GetBookingListRequest struct {
	UserID  int64       `json:"userId"`
	IsAdmin bool        `json:"isAdmin"`
	Page    int         `json:"page"`
	PerPage int         `json:"perPage"`
	Search  string      `json:"search,omitempty"`
	Sort    string      `json:"sort"`
	Order   string      `json:"order"`
	Filters ListFilters `json:"filters"`
}

// IsValidSort проверяет поле сортировки
func IsValidSort(sort string) bool {
	switch sort {
	case SortStartDate, SortEndDate, SortItem, SortLocation, SortUser, SortStatus, SortBookingDate:
		return true
	default:
		return false
	}
}

// IsValidOrder проверяет направление сортировки
func IsValidOrder(order string) bool {
	return order == OrderAsc || order == OrderDesc
}

// Response модели

// FilterOptions значения для выпадающих фильтров (уникальные, отсортированные)
type FilterOptions struct {
	User     []string `json:"user"`
	Item     []string `json:"item"`
	Location []string `json:"location"`
	Status   []string `json:"status"`
}

// BookingRow строка списка бронирований
type BookingRow struct {
	ID                 int64     `json:"postID"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	StartDateFormatted string    `json:"startDateFormatted"`
	EndDateFormatted   string    `json:"endDateFormatted"`
	Item               string    `json:"item"`
	Location           string    `json:"location"`
	LocationAddr       string    `json:"locationAddr"`
	LocationLat        *float64  `json:"locationLat,omitempty"`
	LocationLong       *float64  `json:"locationLong,omitempty"`
	BookingDate        string    `json:"bookingDate"`
	User               string    `json:"user"`
	UserName           string    `json:"userName"`
	Status             string    `json:"status"`
	FullDay            bool      `json:"fullDay"`
	BookingCode        *string   `json:"bookingCode,omitempty"`
	ItemID             *int64    `json:"itemId,omitempty"`
	LocationID         *int64    `json:"locationId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// SearchFields текстовые поля строки, по которым идет поиск
func (r *BookingRow) SearchFields() []string {
	fields := []string{
		strconv.FormatInt(r.ID, 10),
		r.StartDateFormatted,
		r.EndDateFormatted,
		r.Item,
		r.Location,
		r.LocationAddr,
		r.BookingDate,
		r.User,
		r.UserName,
		r.Status,
	}
	if r.BookingCode != nil {
		fields = append(fields, *r.BookingCode)
	}
	return fields
}

// BookingListResponse ответ со страницей списка бронирований
type BookingListResponse struct {
	Page       int           `json:"page"`
	PerPage    int           `json:"perPage"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
	Filters    FilterOptions `json:"filters"`
	Data       []BookingRow  `json:"data"`
}

// Cacheable пустой список не кэшируется
func (r BookingListResponse) Cacheable() bool {
	return r.Total > 0
}

// FromDomainBooking конвертирует domain.Booking в строку списка
func FromDomainBooking(b *domain.Booking) BookingRow {
	row := BookingRow{
		ID:                 b.ID,
		StartDate:          b.StartAt,
		EndDate:            b.EndAt,
		StartDateFormatted: b.StartAt.Format(DisplayDateTimeFormat),
		EndDateFormatted:   b.EndAt.Format(DisplayDateTimeFormat),
		Item:               NotAvailable,
		Location:           NotAvailable,
		LocationAddr:       b.LocationAddr,
		LocationLat:        b.LocationLat,
		LocationLong:       b.LocationLong,
		BookingDate:        b.CreatedAt.Format(DisplayDateTimeFormat),
		User:               b.UserLogin,
		UserName:           b.UserFirstName + " " + b.UserLastName,
		Status:             b.Status,
		FullDay:            b.FullDay,
		BookingCode:        b.BookingCode,
		ItemID:             b.ItemID,
		LocationID:         b.LocationID,
		CreatedAt:          b.CreatedAt,
	}
	if b.ItemTitle != nil {
		row.Item = *b.ItemTitle
	}
	if b.LocationTitle != nil {
		row.Location = *b.LocationTitle
	}
	return row
}
