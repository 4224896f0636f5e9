package utils

import (
	"net/http/httptest"
	"testing"
)

func TestIsAllowedIP(t *testing.T) {
	allowed := []string{"52.31.139.75/32", "10.0.0.0/8", "bogus", "2a02:5180::/32"}

	tests := []struct {
		ip   string
		want bool
	}{
		{ip: "52.31.139.75", want: true},
		{ip: "52.31.139.76", want: false},
		{ip: "10.20.30.40", want: true},
		{ip: "2a02:5180::1", want: true},
		{ip: "not-an-ip", want: false},
		{ip: "", want: false},
	}

	for _, tt := range tests {
		if got := IsAllowedIP(tt.ip, allowed); got != tt.want {
			t.Fatalf("IsAllowedIP(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.RemoteAddr = "52.31.139.75:39123"
	if got := ClientIP(req); got != "52.31.139.75" {
		t.Fatalf("ClientIP = %q, want remote host", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Fatalf("ClientIP = %q, want first forwarded hop", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.8")
	if got := ClientIP(req); got != "203.0.113.8" {
		t.Fatalf("ClientIP = %q, want forwarded address", got)
	}
}
