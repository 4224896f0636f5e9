package payment

import (
	"context"
	"io"
	"log"
	"net/http"

	"cryptoclass-bot/internal/analytics"
	"cryptoclass-bot/internal/models"
	"cryptoclass-bot/internal/storage"
)

// Outcome classifies a decoded notification.
type Outcome int

const (
	// OutcomeIgnore covers intermediate provider statuses ("waiting",
	// "confirming", ...) this system does not act on.
	OutcomeIgnore Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

// Notification is the provider-independent view of one webhook call. It is
// processed and discarded, never persisted.
type Notification struct {
	Ref        OrderRef
	RawRef     string
	Outcome    Outcome
	Status     string
	Amount     float64
	Currency   string
	ProviderID string
}

// Provider is the per-rail strategy: authenticate a raw notification, then
// map it onto a Notification. Decode may return a partially filled
// Notification (RawRef in particular) alongside an error so failure notices
// can still reach the right user.
type Provider interface {
	Name() string
	Verify(body []byte, header http.Header) error
	Decode(body []byte) (Notification, error)
}

// Dispatcher runs the webhook pipeline for every provider: verify, decode,
// apply the subscription transition, issue the access grant. One instance
// serves both rails; the Provider strategy carries the differences.
type Dispatcher struct {
	Store  storage.UserStore
	Grants *GrantIssuer
	Track  *analytics.Client
}

func NewDispatcher(store storage.UserStore, grants *GrantIssuer, track *analytics.Client) *Dispatcher {
	return &Dispatcher{Store: store, Grants: grants, Track: track}
}

// HandleWebhook returns the HTTP handler for one provider's webhook
// endpoint. Responses are deliberately uninformative: 200 when the call was
// consumed, 400 for anything the provider should retry or an attacker
// should learn nothing from.
func (d *Dispatcher) HandleWebhook(provider Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Printf("[%s] failed to read webhook body: %v", provider.Name(), err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		// The raw bytes go into verification untouched; re-serializing a
		// parsed copy is exactly the mistake that breaks the card-rail HMAC.
		if err := provider.Verify(body, r.Header); err != nil {
			// No user-facing message: a forger learns nothing beyond 400.
			log.Printf("[%s] rejected webhook: %v", provider.Name(), err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		notif, err := provider.Decode(body)
		if err != nil {
			log.Printf("[%s] failed to decode notification: %v", provider.Name(), err)
			if notif.RawRef != "" {
				d.Grants.NotifyFailure(r.Context(), notif.RawRef, "we could not match your payment")
			}
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		switch notif.Outcome {
		case OutcomeSuccess:
			if err := d.processSuccess(r.Context(), provider.Name(), notif); err != nil {
				log.Printf("[%s] failed to process payment %s: %v", provider.Name(), notif.ProviderID, err)
				d.Grants.NotifyFailure(r.Context(), notif.RawRef, "something went wrong on our side")
				http.Error(w, "Bad request", http.StatusBadRequest)
				return
			}
		case OutcomeFailure:
			log.Printf("[%s] payment %s ended with status %q", provider.Name(), notif.ProviderID, notif.Status)
			d.Grants.NotifyFailure(r.Context(), notif.RawRef, notif.Status)
		default:
			log.Printf("[%s] ignored status %q for payment %s", provider.Name(), notif.Status, notif.ProviderID)
		}

		w.WriteHeader(http.StatusOK)
	}
}

func (d *Dispatcher) processSuccess(ctx context.Context, providerName string, notif Notification) error {
	user, err := CompleteSubscription(ctx, d.Store, notif.Ref.UserID, notif.Ref.Tier)
	if err != nil {
		return err
	}

	// The subscription is committed past this point. Audit rows, analytics
	// and grant delivery are best effort and must not fail the pipeline.
	if err := d.Store.CreatePayment(ctx, &models.Payment{
		UserID:    user.ID,
		Amount:    notif.Amount,
		Currency:  notif.Currency,
		Status:    "succeeded",
		Provider:  providerName,
		Reference: notif.ProviderID,
		Tier:      notif.Ref.Tier,
	}); err != nil {
		log.Printf("[%s] failed to record payment audit row: %v", providerName, err)
	}

	d.Track.Event("Subscription Completed", map[string]interface{}{
		"userId": notif.Ref.UserID,
		"type":   notif.Ref.Tier,
		"method": providerName,
	})

	d.Grants.IssueGrant(ctx, notif.Ref.UserID)
	return nil
}
