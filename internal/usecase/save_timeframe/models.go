package save_timeframe

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// Request модель запроса на сохранение таймфрейма
type Request struct {
	Timeframe *domain.Timeframe // ID=0 - создание, иначе обновление
}

// Response модель ответа с сохраненным таймфреймом
type Response struct {
	Timeframe *domain.Timeframe
	Created   bool
}
