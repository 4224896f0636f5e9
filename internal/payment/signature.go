package payment

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// VerifyRawBodySignature checks an HMAC-SHA512 hex signature computed over
// the exact bytes received on the wire (Paystack scheme). The body must not
// be re-serialized before hashing; any key reordering or whitespace change
// on a parsed copy would break verification.
func VerifyRawBodySignature(body []byte, signatureHeader, secret string) error {
	return verifySHA512(body, signatureHeader, secret)
}

// VerifySortedJSONSignature checks an HMAC-SHA512 hex signature computed over
// the body's JSON serialization with object keys sorted lexicographically at
// every nesting level (NOWPayments IPN scheme).
func VerifySortedJSONSignature(body []byte, signatureHeader, secret string) error {
	canonical, err := sortedJSON(body)
	if err != nil {
		return fmt.Errorf("%w: body is not valid JSON", ErrInvalidSignature)
	}
	return verifySHA512(canonical, signatureHeader, secret)
}

func verifySHA512(payload []byte, signatureHeader, secret string) error {
	sig := strings.TrimSpace(signatureHeader)
	if sig == "" || secret == "" {
		return fmt.Errorf("%w: missing signature or secret", ErrInvalidSignature)
	}

	decodedSig, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return fmt.Errorf("%w: signature is not hex", ErrInvalidSignature)
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	if !hmac.Equal(mac.Sum(nil), decodedSig) {
		return ErrInvalidSignature
	}
	return nil
}

// sortedJSON re-serializes a JSON document with object keys sorted at every
// depth. Numbers keep their original literal form and HTML escaping is off
// so the output matches the provider's own serialization byte for byte.
func sortedJSON(body []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}

	// Marshaling map[string]interface{} sorts keys at every level; Encode
	// appends a trailing newline that is not part of the signed payload.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
