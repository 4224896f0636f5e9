package payment

import (
	"context"
	"fmt"
	"log"
)

// GrantIssuer delivers group access after a confirmed payment and failure
// notices when a payment does not complete.
type GrantIssuer struct {
	Messenger Messenger
	GroupID   int64
}

func NewGrantIssuer(messenger Messenger, groupID int64) *GrantIssuer {
	return &GrantIssuer{Messenger: messenger, GroupID: groupID}
}

// IssueGrant creates a single-use invite into the premium group and DMs it
// to the user. By the time this runs the subscription is already committed,
// so delivery failures are logged and swallowed: a blocked bot must never
// look like a failed payment.
func (g *GrantIssuer) IssueGrant(ctx context.Context, userID int64) {
	link, err := g.Messenger.CreateInviteLink(ctx, g.GroupID, fmt.Sprintf("subscriber-%d", userID))
	if err != nil {
		log.Printf("Failed to create invite link for user %d: %v", userID, err)
		return
	}

	msg := fmt.Sprintf("Subscription active! Join the premium group: %s\n\nThis link is valid for one person only. Please don't share it.", link)
	if err := g.Messenger.SendMessage(ctx, userID, msg); err != nil {
		log.Printf("Failed to deliver invite to user %d: %v", userID, err)
	}
}

// NotifyFailure resolves the order reference back to a user and sends a
// plain failure notice. Best effort only: an undecodable reference means
// there is nobody to tell, so decode errors are swallowed.
func (g *GrantIssuer) NotifyFailure(ctx context.Context, orderRef, reason string) {
	ref, err := DecodeOrderRef(orderRef)
	if err != nil {
		log.Printf("Cannot notify failure, undecodable reference %q: %v", orderRef, err)
		return
	}

	msg := fmt.Sprintf("Your payment did not complete (%s). No charge was applied to your subscription — please try again or contact support.", reason)
	if err := g.Messenger.SendMessage(ctx, ref.UserID, msg); err != nil {
		log.Printf("Failed to send failure notice to user %d: %v", ref.UserID, err)
	}
}
