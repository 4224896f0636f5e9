package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"cryptoclass-bot/internal/config"
	"cryptoclass-bot/internal/payment"
	"cryptoclass-bot/internal/utils"
)

// New builds the webhook API router. Both provider endpoints sit behind the
// Redis rate limiter; the card-rail endpoint is additionally pinned to the
// provider's published source IPs when an allowlist is configured.
func New(cfg *config.Config, dispatcher *payment.Dispatcher, rdb *redis.Client) *chi.Mux {
	r := chi.NewRouter()
	r.Use(RateLimit(rdb))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte("Bot is running!"))
	})

	paystackHandler := dispatcher.HandleWebhook(&payment.PaystackProvider{Secret: cfg.PaystackKey})
	r.Post("/api/paystack-webhook", func(w http.ResponseWriter, req *http.Request) {
		if len(cfg.AllowedPaystackIPs) > 0 {
			ip := utils.ClientIP(req)
			if !utils.IsAllowedIP(ip, cfg.AllowedPaystackIPs) {
				log.Printf("Rejected paystack webhook from unlisted IP %s", ip)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
		}
		paystackHandler(w, req)
	})

	r.Post("/api/usdt-webhook", dispatcher.HandleWebhook(&payment.NowPaymentsProvider{IPNSecret: cfg.NowPaymentsIPN}))

	return r
}

// Start runs the HTTP server on the configured port.
func Start(cfg *config.Config, router *chi.Mux) error {
	addr := fmt.Sprintf(":%s", cfg.HTTPPort)
	log.Printf("HTTP server listening on %s", addr)
	return http.ListenAndServe(addr, router)
}
