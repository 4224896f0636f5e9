package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func hmacHex(t *testing.T, payload []byte, secret string) string {
	t.Helper()
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRawBodySignature(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"metadata":{"userId":482913,"type":"lifetime"}}}`)
	secret := "sk_test_secret"

	if err := VerifyRawBodySignature(body, hmacHex(t, body, secret), secret); err != nil {
		t.Fatalf("expected valid signature to verify, got %v", err)
	}

	// Upper-case hex and surrounding whitespace must also verify.
	upper := strings.ToUpper(hmacHex(t, body, secret))
	if err := VerifyRawBodySignature(body, "  "+upper+"  ", secret); err != nil {
		t.Fatalf("expected padded upper-case signature to verify, got %v", err)
	}
}

func TestVerifyRawBodySignatureRejects(t *testing.T) {
	body := []byte(`{"event":"charge.success"}`)
	secret := "sk_test_secret"
	valid := hmacHex(t, body, secret)

	// Any single-byte mutation of the body invalidates the signature.
	mutated := append([]byte(nil), body...)
	mutated[10] ^= 0x01
	if err := VerifyRawBodySignature(mutated, valid, secret); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("mutated body verified: %v", err)
	}

	if err := VerifyRawBodySignature(body, valid, "other-secret"); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("wrong secret verified: %v", err)
	}
	if err := VerifyRawBodySignature(body, "not-hex", secret); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("non-hex signature verified: %v", err)
	}
	if err := VerifyRawBodySignature(body, "", secret); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("empty signature verified: %v", err)
	}
	if err := VerifyRawBodySignature(body, valid, ""); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("empty secret verified: %v", err)
	}
}

func TestVerifyRawBodySignatureUsesExactBytes(t *testing.T) {
	// Semantically identical JSON with different byte layout must not verify.
	body := []byte(`{"a":1,"b":2}`)
	reordered := []byte(`{"b":2,"a":1}`)
	secret := "sk_test_secret"

	if err := VerifyRawBodySignature(reordered, hmacHex(t, body, secret), secret); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("re-serialized body verified against raw-body signature: %v", err)
	}
}

func TestVerifySortedJSONSignature(t *testing.T) {
	secret := "ipn-secret"

	// The provider signs the key-sorted serialization; the wire body arrives
	// with keys in arbitrary order at every nesting level.
	wire := []byte(`{"payment_status":"finished","order_id":"482913-lifetime","price_amount":100,"pay":{"b":2,"a":"x"}}`)
	canonical := []byte(`{"order_id":"482913-lifetime","pay":{"a":"x","b":2},"payment_status":"finished","price_amount":100}`)

	if err := VerifySortedJSONSignature(wire, hmacHex(t, canonical, secret), secret); err != nil {
		t.Fatalf("expected sorted-key signature to verify, got %v", err)
	}
}

func TestVerifySortedJSONSignatureRejects(t *testing.T) {
	secret := "ipn-secret"
	body := []byte(`{"order_id":"482913-monthly","payment_status":"finished"}`)
	valid := hmacHex(t, body, secret)

	mutated := []byte(`{"order_id":"482914-monthly","payment_status":"finished"}`)
	if err := VerifySortedJSONSignature(mutated, valid, secret); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("mutated body verified: %v", err)
	}
	if err := VerifySortedJSONSignature(body, valid, "wrong"); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("wrong secret verified: %v", err)
	}
	if err := VerifySortedJSONSignature([]byte("not json"), valid, secret); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("non-JSON body verified: %v", err)
	}
}

func TestSortedJSONPreservesNumbersAndSortsNested(t *testing.T) {
	in := []byte(`{"b":{"z":1.50,"y":{"k2":2,"k1":1}},"a":100.00}`)
	want := `{"a":100.00,"b":{"y":{"k1":1,"k2":2},"z":1.50}}`

	got, err := sortedJSON(in)
	if err != nil {
		t.Fatalf("sortedJSON returned error: %v", err)
	}
	if string(got) != want {
		t.Fatalf("sortedJSON = %s, want %s", got, want)
	}
}
