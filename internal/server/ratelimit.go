package server

import (
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"cryptoclass-bot/internal/utils"
)

const (
	rateLimitWindow = 15 * time.Minute
	rateLimitMax    = 100
)

// RateLimit is a fixed-window per-IP limiter backed by Redis TTL keys:
// 100 requests per 15 minutes. When Redis is unreachable requests pass
// through; the limiter protects against abuse, it is not a correctness
// gate.
func RateLimit(rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit_" + utils.ClientIP(r)

			count, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				log.Printf("Rate limiter redis error: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(r.Context(), key, rateLimitWindow)
			}

			if count > rateLimitMax {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
