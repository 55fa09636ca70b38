package validate_timeframe

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// Request модель запроса на проверку таймфрейма
type Request struct {
	Candidate *domain.Timeframe // Новый или измененный таймфрейм (ID=0 для нового)
}

// Response результат проверки
type Response struct {
	Valid bool             // Таймфрейм можно сохранять
	Error *ValidationError // Причина отказа, если Valid=false
}
