package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const msgTooManyRequests = "demasiados intentos, inténtalo más tarde"

// limiterIdleTTL лимитер адреса удаляется после этого времени без запросов
const limiterIdleTTL = 10 * time.Minute

// RateLimiter ограничивает частоту запросов с одного адреса
type RateLimiter struct {
	mu       sync.Mutex
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
	logger   Logger
}

// NewRateLimiter perMinute запросов в минуту с одного IP; perMinute <= 0 - без ограничения
func NewRateLimiter(perMinute int, logger Logger) *RateLimiter {
	return newRateLimiter(perMinute, limiterIdleTTL, logger)
}

func newRateLimiter(perMinute int, idleTTL time.Duration, logger Logger) *RateLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &RateLimiter{
		limiters: cache.New(idleTTL, idleTTL),
		limit:    limit,
		burst:    perMinute,
		logger:   logger,
	}
}

// Wrap оборачивает обработчик
func (l *RateLimiter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.limiter(ip).Allow() {
			l.logger.Warn("%s %s - rate limit exceeded for %s", r.Method, r.URL.Path, ip)
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter := rate.NewLimiter(l.limit, l.burst)
	if cached, ok := l.limiters.Get(key); ok {
		limiter = cached.(*rate.Limiter)
	}
	// продлеваем срок жизни при каждом обращении
	l.limiters.SetDefault(key, limiter)
	return limiter
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
