package validate_timeframe

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	validateTimeframe "github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_timeframe"
)

// ValidateTimeframeRequest HTTP request model. ID=0 для нового таймфрейма.
type ValidateTimeframeRequest struct {
	ID int64 `json:"id"`
	handlers.TimeframeBody
}

// ValidateTimeframeResponse HTTP response model
type ValidateTimeframeResponse struct {
	Valid bool           `json:"valid"`
	Error *ConflictError `json:"error,omitempty"`
}

// ConflictError причина отказа
type ConflictError struct {
	Kind             string `json:"kind"`
	Message          string `json:"message"`
	ConflictingID    int64  `json:"conflictingId,omitempty"`
	ConflictingTitle string `json:"conflictingTitle,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateTimeframeRequest) ToUseCaseRequest() (*validateTimeframe.Request, error) {
	candidate, err := r.TimeframeBody.ToDomain(r.ID)
	if err != nil {
		return nil, err
	}
	return &validateTimeframe.Request{Candidate: candidate}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateTimeframe.Response) *ValidateTimeframeResponse {
	out := &ValidateTimeframeResponse{Valid: resp.Valid}
	if resp.Error != nil {
		out.Error = NewConflictError(resp.Error)
	}
	return out
}

// NewConflictError конвертирует ошибку проверки в HTTP модель
func NewConflictError(verr *validateTimeframe.ValidationError) *ConflictError {
	return &ConflictError{
		Kind:             string(verr.Kind),
		Message:          verr.Error(),
		ConflictingID:    verr.ConflictingID,
		ConflictingTitle: verr.ConflictingTitle,
	}
}
