package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"

	"cryptoclass-bot/internal/config"
	"cryptoclass-bot/internal/payment"
)

// unreachableRedis returns a client nothing listens on; the rate limiter is
// expected to fail open when Redis is down.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func testConfig() *config.Config {
	return &config.Config{
		PaystackKey:        "sk_test_secret",
		NowPaymentsIPN:     "ipn-secret",
		AllowedPaystackIPs: []string{"52.31.139.75/32"},
	}
}

func TestHealthRoute(t *testing.T) {
	router := New(testConfig(), payment.NewDispatcher(nil, nil, nil), unreachableRedis())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "running") {
		t.Fatalf("unexpected health body: %q", rec.Body.String())
	}
}

func TestPaystackWebhookRejectsUnlistedIP(t *testing.T) {
	router := New(testConfig(), payment.NewDispatcher(nil, nil, nil), unreachableRedis())

	req := httptest.NewRequest(http.MethodPost, "/api/paystack-webhook", strings.NewReader("{}"))
	req.RemoteAddr = "198.51.100.9:4321"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("unlisted IP got %d, want 403", rec.Code)
	}
}

func TestPaystackWebhookAllowedIPStillNeedsSignature(t *testing.T) {
	router := New(testConfig(), payment.NewDispatcher(nil, nil, nil), unreachableRedis())

	req := httptest.NewRequest(http.MethodPost, "/api/paystack-webhook", strings.NewReader("{}"))
	req.RemoteAddr = "52.31.139.75:4321"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// The allowlist never substitutes for signature verification.
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unsigned webhook from allowed IP got %d, want 400", rec.Code)
	}
}

func TestUSDTWebhookRejectsUnsigned(t *testing.T) {
	router := New(testConfig(), payment.NewDispatcher(nil, nil, nil), unreachableRedis())

	req := httptest.NewRequest(http.MethodPost, "/api/usdt-webhook", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unsigned IPN got %d, want 400", rec.Code)
	}
}
