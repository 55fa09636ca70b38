package cache

import "errors"

var (
	// ErrNilCompute возвращается, если не передана функция вычисления
	ErrNilCompute = errors.New("cache: compute function is nil")
	// ErrEncode ошибка сериализации вычисленного значения
	ErrEncode = errors.New("cache: failed to encode value")
	// ErrInvalidConfig неверные параметры бэкенда
	ErrInvalidConfig = errors.New("cache: invalid backend configuration")
)
