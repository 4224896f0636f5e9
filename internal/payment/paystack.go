package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// PaystackProvider is the card-rail webhook strategy. Signatures cover the
// raw request bytes; the only event acted on is charge.success, everything
// else is a no-op.
type PaystackProvider struct {
	Secret string
}

func (p *PaystackProvider) Name() string { return "paystack" }

func (p *PaystackProvider) Verify(body []byte, header http.Header) error {
	return VerifyRawBodySignature(body, header.Get("x-paystack-signature"), p.Secret)
}

func (p *PaystackProvider) Decode(body []byte) (Notification, error) {
	var evt paystackEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return Notification{}, fmt.Errorf("%w: unrecognized payload shape", ErrInvalidReference)
	}

	if evt.Event != "charge.success" {
		return Notification{Outcome: OutcomeIgnore, Status: evt.Event}, nil
	}

	userID, err := evt.Data.Metadata.UserID.Int64()
	if err != nil || userID <= 0 {
		return Notification{}, fmt.Errorf("%w: bad userId in metadata", ErrInvalidReference)
	}

	rawRef := EncodeOrderRef(userID, evt.Data.Metadata.Type)
	ref, err := DecodeOrderRef(rawRef)
	if err != nil {
		return Notification{RawRef: rawRef}, err
	}

	amount, _ := evt.Data.Amount.Float64()
	return Notification{
		Ref:        ref,
		RawRef:     rawRef,
		Outcome:    OutcomeSuccess,
		Status:     evt.Event,
		Amount:     math.Round(amount) / 100, // Paystack amounts are in subunits
		Currency:   evt.Data.Currency,
		ProviderID: evt.Data.Reference,
	}, nil
}

// PaystackClient creates hosted card payment pages.
type PaystackClient struct {
	SecretKey  string
	Email      string
	Currency   string
	APIURL     string
	PublicURL  string
	HTTPClient *http.Client
}

func NewPaystackClient(secretKey, email, currency, publicURL string) *PaystackClient {
	return &PaystackClient{
		SecretKey: secretKey,
		Email:     email,
		Currency:  currency,
		APIURL:    "https://api.paystack.co",
		PublicURL: publicURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// InitializeTransaction opens a Paystack checkout for the given user and
// tier and returns the hosted payment page URL. The metadata carries the
// same (userId, type) pair the webhook decodes back out.
func (c *PaystackClient) InitializeTransaction(userID int64, tier string) (string, error) {
	price, ok := Prices[tier]
	if !ok {
		return "", fmt.Errorf("unknown tier: %s", tier)
	}

	reqBody := PaystackInitRequest{
		Email:       c.Email,
		Amount:      int64(price * 100),
		Currency:    c.Currency,
		Reference:   uuid.New().String(),
		CallbackURL: fmt.Sprintf("%s/payment-success?userId=%d&type=%s", c.PublicURL, userID, tier),
		Metadata: map[string]string{
			"userId": strconv.FormatInt(userID, 10),
			"type":   tier,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/transaction/initialize", c.APIURL), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.SecretKey))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("api error: %s (status: %d)", string(respBody), resp.StatusCode)
	}

	var initResp PaystackInitResponse
	if err := json.Unmarshal(respBody, &initResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if initResp.Data.AuthorizationURL == "" {
		return "", fmt.Errorf("paystack returned no authorization url: %s", initResp.Message)
	}

	return initResp.Data.AuthorizationURL, nil
}
