package cache

import "time"

// TTLPolicy вычисляет время жизни записи относительно текущего момента
type TTLPolicy interface {
	TTL(now time.Time) time.Duration
}

type fixedTTL time.Duration

func (p fixedTTL) TTL(time.Time) time.Duration {
	return time.Duration(p)
}

// FixedTTL запись живет фиксированное время
func FixedTTL(d time.Duration) TTLPolicy {
	return fixedTTL(d)
}

type untilMidnight struct{}

func (untilMidnight) TTL(now time.Time) time.Duration {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return midnight.Sub(now)
}

// UntilMidnight запись живет до ближайшей полуночи в часовом поясе текущего времени
func UntilMidnight() TTLPolicy {
	return untilMidnight{}
}
