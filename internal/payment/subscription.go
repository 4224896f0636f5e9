package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cryptoclass-bot/internal/models"
	"cryptoclass-bot/internal/storage"
)

// monthlyTerm is the fixed length of a monthly subscription.
const monthlyTerm = 30 * 24 * time.Hour

// CompleteSubscription marks the user as subscribed at the given tier. The
// record must already exist from first bot contact; it is never auto-created
// here. Re-applying the same transition is safe: providers redeliver
// notifications and the field assignment is idempotent, with a monthly
// expiry recomputed from the latest delivery.
func CompleteSubscription(ctx context.Context, store storage.UserStore, userID int64, tier string) (*models.User, error) {
	if !ValidTier(tier) {
		return nil, fmt.Errorf("%w: tier %q", ErrInvalidReference, tier)
	}

	user, err := store.FindByTelegramID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: telegram id %d", ErrUserNotFound, userID)
		}
		return nil, err
	}

	user.Subscribed = true
	user.SubscriptionType = tier
	switch tier {
	case models.SubscriptionMonthly:
		end := time.Now().Add(monthlyTerm)
		user.SubscriptionEnd = &end
	case models.SubscriptionLifetime:
		user.SubscriptionEnd = nil
	}

	if err := store.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
