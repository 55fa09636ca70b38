package validate_timeframe

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	resultValid    = "valid"
	resultRejected = "rejected"
)

// UseCase use case проверки пересечений bookable таймфреймов
type UseCase struct {
	timeframeRepo TimeframeRepository
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil
func NewUseCase(timeframeRepo TimeframeRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		timeframeRepo: timeframeRepo,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет проверку.
// Отказ возвращается в Response с Valid=false, ошибка - только при сбое хранилища.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req == nil || req.Candidate == nil {
		return nil, fmt.Errorf("%w: candidate is required", ErrInvalidInput)
	}
	candidate := req.Candidate

	uc.logger.Info("ValidateTimeframe: id=%d, kind=%s", candidate.ID, candidate.Kind)

	// 2. Проверяем только bookable таймфреймы с локацией, предметом и датой начала
	if !candidate.IsSubjectToOverlapCheck() {
		uc.observe(resultValid)
		return &Response{Valid: true}, nil
	}

	// 3. Время выдачи без времени возврата
	if candidate.HasTimeWindowGap() {
		verr := &ValidationError{Kind: KindIncompleteTimeWindow}
		uc.logger.Warn("ValidateTimeframe: id=%d rejected: %v", candidate.ID, verr)
		uc.observe(resultRejected)
		return &Response{Valid: false, Error: verr}, nil
	}

	// 4. Получаем остальные bookable таймфреймы той же пары (location, item)
	var excludeID *int64
	if candidate.ID != 0 {
		excludeID = &candidate.ID
	}

	existing, err := uc.timeframeRepo.FindByLocationItemKind(
		ctx,
		[]int64{*candidate.LocationID},
		[]int64{*candidate.ItemID},
		[]domain.TimeframeKind{domain.KindBookable},
		excludeID,
	)
	if err != nil {
		uc.logger.Error("ValidateTimeframe: failed to get existing timeframes: %v", err)
		return nil, fmt.Errorf("%w: failed to get existing timeframes: %v", ErrInternal, err)
	}

	// 5. Проверяем пересечения
	if verr := Validate(candidate, existing); verr != nil {
		uc.logger.Warn("ValidateTimeframe: id=%d rejected: %v", candidate.ID, verr)
		uc.observe(resultRejected)
		return &Response{Valid: false, Error: verr}, nil
	}

	uc.logger.Info("ValidateTimeframe: id=%d is valid, checked against %d timeframes", candidate.ID, len(existing))
	uc.observe(resultValid)

	return &Response{Valid: true}, nil
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveValidation(result)
	}
}
