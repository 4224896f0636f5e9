package payment

import "encoding/json"

// Prices in USD per tier.
var Prices = map[string]float64{
	"monthly":  20,
	"lifetime": 100,
}

// Paystack wire structures

type PaystackInitRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"` // subunits
	Currency    string            `json:"currency"`
	Reference   string            `json:"reference,omitempty"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type PaystackInitResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type paystackEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string      `json:"reference"`
		Amount    json.Number `json:"amount"` // subunits
		Currency  string      `json:"currency"`
		Metadata  struct {
			UserID json.Number `json:"userId"`
			Type   string      `json:"type"`
		} `json:"metadata"`
	} `json:"data"`
}

// NOWPayments wire structures

type NowPaymentsInvoiceRequest struct {
	PriceAmount      float64 `json:"price_amount"`
	PriceCurrency    string  `json:"price_currency"`
	PayCurrency      string  `json:"pay_currency"`
	IPNCallbackURL   string  `json:"ipn_callback_url"`
	OrderID          string  `json:"order_id"`
	OrderDescription string  `json:"order_description"`
}

type NowPaymentsInvoiceResponse struct {
	ID         json.Number `json:"id"`
	PaymentID  json.Number `json:"payment_id"`
	PayAddress string      `json:"pay_address"`
	PayAmount  float64     `json:"pay_amount"`
	InvoiceURL string      `json:"invoice_url"`
}

type ipnPayload struct {
	PaymentID     json.Number `json:"payment_id"`
	PaymentStatus string      `json:"payment_status"`
	OrderID       string      `json:"order_id"`
	PriceAmount   json.Number `json:"price_amount"`
	PriceCurrency string      `json:"price_currency"`
	ActuallyPaid  json.Number `json:"actually_paid"`
}
