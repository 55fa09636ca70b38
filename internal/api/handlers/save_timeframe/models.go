package save_timeframe

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	validateHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/validate_timeframe"
	saveTimeframe "github.com/m04kA/SMC-AvailabilityService/internal/usecase/save_timeframe"
	validateTimeframe "github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_timeframe"
)

// SaveTimeframeRequest HTTP request model
type SaveTimeframeRequest struct {
	handlers.TimeframeBody
}

// ConflictResponse тело ответа 409
type ConflictResponse struct {
	Code    int                            `json:"code"`
	Message string                         `json:"message"`
	Error   *validateHandler.ConflictError `json:"error,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case. id=0 - создание
func (r *SaveTimeframeRequest) ToUseCaseRequest(id int64) (*saveTimeframe.Request, error) {
	tf, err := r.TimeframeBody.ToDomain(id)
	if err != nil {
		return nil, err
	}
	return &saveTimeframe.Request{Timeframe: tf}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *saveTimeframe.Response) *handlers.TimeframeResponse {
	return handlers.FromDomainTimeframe(resp.Timeframe)
}

// NewConflictResponse формирует тело ответа по ошибке проверки
func NewConflictResponse(code int, message string, verr *validateTimeframe.ValidationError) *ConflictResponse {
	resp := &ConflictResponse{Code: code, Message: message}
	if verr != nil {
		resp.Error = validateHandler.NewConflictError(verr)
	}
	return resp
}
