package payment

import (
	"fmt"
	"strconv"
	"strings"

	"cryptoclass-bot/internal/models"
)

// OrderRef links an external payment back to a user and tier. It is encoded
// into the provider's order id / metadata at invoice time and round-trips
// unchanged through the provider to the webhook.
type OrderRef struct {
	UserID int64
	Tier   string
}

// EncodeOrderRef produces the "<userId>-<tier>" reference string. Tier labels
// never contain '-', so the first dash is always the separator.
func EncodeOrderRef(userID int64, tier string) string {
	return fmt.Sprintf("%d-%s", userID, tier)
}

// DecodeOrderRef parses a reference back into its user id and tier. The user
// id segment must be a plain base-10 integer and the tier must be a known
// paid tier, otherwise ErrInvalidReference.
func DecodeOrderRef(ref string) (OrderRef, error) {
	idPart, tier, found := strings.Cut(ref, "-")
	if !found {
		return OrderRef{}, fmt.Errorf("%w: %q has no separator", ErrInvalidReference, ref)
	}

	userID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || userID <= 0 {
		return OrderRef{}, fmt.Errorf("%w: bad user id in %q", ErrInvalidReference, ref)
	}

	if !ValidTier(tier) {
		return OrderRef{}, fmt.Errorf("%w: unknown tier %q", ErrInvalidReference, tier)
	}

	return OrderRef{UserID: userID, Tier: tier}, nil
}

// ValidTier reports whether tier is one of the purchasable tiers.
func ValidTier(tier string) bool {
	return tier == models.SubscriptionMonthly || tier == models.SubscriptionLifetime
}
