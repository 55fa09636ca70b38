package permissions

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Service проверка права пользователя бронировать по таймфрейму
type Service struct{}

// NewService создает новый экземпляр сервиса прав
func NewService() *Service {
	return &Service{}
}

// CanBook проверяет, может ли пользователь бронировать по таймфрейму:
// администратор - всегда, анонимный пользователь - никогда,
// без ограничения по ролям - любой пользователь, иначе нужна одна из разрешенных ролей.
func (s *Service) CanBook(actor domain.Actor, tf *domain.Timeframe) bool {
	if tf == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	if actor.IsAnonymous() {
		return false
	}
	if len(tf.AllowedRoles) == 0 {
		return true
	}
	for _, role := range tf.AllowedRoles {
		if actor.HasRole(role) {
			return true
		}
	}
	return false
}
