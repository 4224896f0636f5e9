package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NowPaymentsProvider is the crypto-rail IPN strategy. Signatures cover the
// key-sorted JSON serialization of the body; the order_id string is the
// encoded order reference.
type NowPaymentsProvider struct {
	IPNSecret string
}

func (p *NowPaymentsProvider) Name() string { return "nowpayments" }

func (p *NowPaymentsProvider) Verify(body []byte, header http.Header) error {
	return VerifySortedJSONSignature(body, header.Get("x-nowpayments-sig"), p.IPNSecret)
}

func (p *NowPaymentsProvider) Decode(body []byte) (Notification, error) {
	var ipn ipnPayload
	if err := json.Unmarshal(body, &ipn); err != nil {
		return Notification{}, fmt.Errorf("%w: unrecognized payload shape", ErrInvalidReference)
	}

	amount, _ := ipn.PriceAmount.Float64()
	base := Notification{
		RawRef:     ipn.OrderID,
		Status:     ipn.PaymentStatus,
		Amount:     amount,
		Currency:   ipn.PriceCurrency,
		ProviderID: ipn.PaymentID.String(),
	}

	switch ipn.PaymentStatus {
	case "finished":
		ref, err := DecodeOrderRef(ipn.OrderID)
		if err != nil {
			return base, err
		}
		base.Ref = ref
		base.Outcome = OutcomeSuccess
		return base, nil
	case "failed", "expired":
		base.Outcome = OutcomeFailure
		return base, nil
	default:
		// waiting, confirming, partially_paid etc.
		base.Outcome = OutcomeIgnore
		return base, nil
	}
}

// NowPaymentsClient creates crypto invoices (USDT).
type NowPaymentsClient struct {
	APIKey     string
	APIURL     string
	PublicURL  string
	HTTPClient *http.Client
}

func NewNowPaymentsClient(apiKey, publicURL string) *NowPaymentsClient {
	return &NowPaymentsClient{
		APIKey:    apiKey,
		APIURL:    "https://api.nowpayments.io/v1",
		PublicURL: publicURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateInvoice opens a USDT invoice for the given user and tier. The
// order_id is the encoded order reference the IPN webhook decodes back out.
func (c *NowPaymentsClient) CreateInvoice(userID int64, tier string) (*NowPaymentsInvoiceResponse, error) {
	price, ok := Prices[tier]
	if !ok {
		return nil, fmt.Errorf("unknown tier: %s", tier)
	}

	reqBody := NowPaymentsInvoiceRequest{
		PriceAmount:      price,
		PriceCurrency:    "usd",
		PayCurrency:      "usdttrc20",
		IPNCallbackURL:   fmt.Sprintf("%s/api/usdt-webhook", c.PublicURL),
		OrderID:          EncodeOrderRef(userID, tier),
		OrderDescription: "Crypto Class Subscription",
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/invoice", c.APIURL), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api error: %s (status: %d)", string(respBody), resp.StatusCode)
	}

	var invoice NowPaymentsInvoiceResponse
	if err := json.Unmarshal(respBody, &invoice); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &invoice, nil
}
