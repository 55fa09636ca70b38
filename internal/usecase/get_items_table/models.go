package get_items_table

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// DayState состояние дня в таблице
type DayState string

const (
	DayUnavailable DayState = "unavailable" // нет слотов
	DayHoliday     DayState = "holiday"
	DayBlocked     DayState = "blocked" // заняты первый и последний слоты
	DayBooked      DayState = "booked"  // частично забронирован
	DayLocked      DayState = "locked"
	DayFree        DayState = "free"
)

// Request модель запроса таблицы доступности
type Request struct {
	Days  int // Количество дней начиная с сегодняшнего, 0 - значение по умолчанию
	Actor domain.Actor
}

// Row строка таблицы: предмет в локации
type Row struct {
	ItemID        int64      `json:"itemId"`
	ItemTitle     string     `json:"itemTitle"`
	LocationID    int64      `json:"locationId"`
	LocationTitle string     `json:"locationTitle"`
	Days          []DayState `json:"days"`
}

// Response модель ответа с таблицей доступности
type Response struct {
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Dates     []string `json:"dates"`
	Rows      []Row    `json:"rows"`
}
