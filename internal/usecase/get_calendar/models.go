package get_calendar

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// Request модель запроса календаря
type Request struct {
	Query domain.CalendarQuery
}

// Response модель ответа с данными календаря
type Response struct {
	Calendar *domain.CalendarResponse
}
