package ratelimiter

import "golang.org/x/time/rate"

// RateLimiter — token bucket на весь сервис поверх golang.org/x/time/rate.
// Нулевой rps означает отсутствие ограничения. Безопасен для конкурентного использования.
type RateLimiter struct {
	limiter *rate.Limiter
}

// New создаёт лимитер на rps запросов в секунду со всплеском burst.
func New(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Allow сообщает, можно ли обработать запрос прямо сейчас.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}
