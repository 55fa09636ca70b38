package save_timeframe

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	timeframeRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/timeframe"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_timeframe"
)

// UseCase use case создания и изменения таймфрейма
type UseCase struct {
	timeframeRepo TimeframeRepository
	validator     Validator
	invalidator   CacheInvalidator
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case. invalidator может быть nil
func NewUseCase(
	timeframeRepo TimeframeRepository,
	validator Validator,
	invalidator CacheInvalidator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		timeframeRepo: timeframeRepo,
		validator:     validator,
		invalidator:   invalidator,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute сохраняет таймфрейм.
// Проверка пересечений и запись выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SaveTimeframe: validation failed: %v", err)
		return nil, err
	}
	tf := req.Timeframe
	created := tf.ID == 0
	uc.logger.Info("SaveTimeframe: id=%d, kind=%s, create=%t", tf.ID, tf.Kind, created)

	var (
		result   *domain.Timeframe
		previous *domain.Timeframe
	)

	// 2. Проверка и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. При обновлении запоминаем прежнюю версию для сброса ее тегов
		if !created {
			existing, err := uc.timeframeRepo.GetByID(txCtx, tf.ID)
			if err != nil {
				if errors.Is(err, timeframeRepo.ErrTimeframeNotFound) {
					uc.logger.Warn("SaveTimeframe: timeframe id=%d not found", tf.ID)
					return ErrTimeframeNotFound
				}
				uc.logger.Error("SaveTimeframe: failed to get timeframe id=%d: %v", tf.ID, err)
				return fmt.Errorf("%w: failed to get timeframe: %v", ErrInternal, err)
			}
			previous = existing
		}

		// 2.2. Проверка пересечений с остальными bookable таймфреймами
		verdict, err := uc.validator.Execute(txCtx, &validate_timeframe.Request{Candidate: tf})
		if err != nil {
			uc.logger.Error("SaveTimeframe: failed to validate timeframe id=%d: %v", tf.ID, err)
			return fmt.Errorf("%w: failed to validate timeframe: %v", ErrInternal, err)
		}
		if !verdict.Valid {
			if verdict.Error == nil {
				return ErrValidationFailed
			}
			uc.logger.Warn("SaveTimeframe: timeframe id=%d rejected: %v", tf.ID, verdict.Error)
			return fmt.Errorf("%w: %w", ErrValidationFailed, verdict.Error)
		}

		// 2.3. Запись
		if created {
			saved, err := uc.timeframeRepo.Create(txCtx, tf)
			if err != nil {
				uc.logger.Error("SaveTimeframe: failed to create timeframe: %v", err)
				return fmt.Errorf("%w: failed to create timeframe: %v", ErrInternal, err)
			}
			result = saved
			return nil
		}

		if err := uc.timeframeRepo.Update(txCtx, tf); err != nil {
			if errors.Is(err, timeframeRepo.ErrTimeframeNotFound) {
				return ErrTimeframeNotFound
			}
			uc.logger.Error("SaveTimeframe: failed to update timeframe id=%d: %v", tf.ID, err)
			return fmt.Errorf("%w: failed to update timeframe: %v", ErrInternal, err)
		}

		updated, err := uc.timeframeRepo.GetByID(txCtx, tf.ID)
		if err != nil {
			uc.logger.Error("SaveTimeframe: failed to reload timeframe id=%d: %v", tf.ID, err)
			return fmt.Errorf("%w: failed to reload timeframe: %v", ErrInternal, err)
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Сброс кэша после фиксации транзакции
	uc.invalidate(ctx, result, previous)

	uc.logger.Info("SaveTimeframe: timeframe id=%d saved", result.ID)
	return &Response{Timeframe: result, Created: created}, nil
}

func (uc *UseCase) invalidate(ctx context.Context, timeframes ...*domain.Timeframe) {
	if uc.invalidator == nil {
		return
	}

	tags := invalidationTags(timeframes...)
	if err := uc.invalidator.InvalidateByTag(ctx, tags...); err != nil {
		uc.logger.Warn("SaveTimeframe: failed to invalidate cache tags %v: %v", tags, err)
	}
}

// invalidationTags теги кэша, затронутые изменением таймфреймов
func invalidationTags(timeframes ...*domain.Timeframe) []string {
	var tags []string
	seen := make(map[string]struct{})
	add := func(tag string) {
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for _, tf := range timeframes {
		if tf == nil {
			continue
		}
		if tf.ID != 0 {
			add(cache.Tag(domain.TagTimeframe, tf.ID))
		}
		if tf.ItemID != nil {
			add(cache.Tag(domain.TagItem, *tf.ItemID))
		}
		if tf.LocationID != nil {
			add(cache.Tag(domain.TagLocation, *tf.LocationID))
		}
		if tf.Kind == domain.KindBooking || tf.Kind == domain.KindBookingCanceled {
			add(cache.Tag(domain.TagBooking, tf.ID))
			if tf.UserID != nil {
				add(cache.Tag(domain.TagUser, *tf.UserID))
			}
		}
	}
	return tags
}
