package payment

import "errors"

// Error kinds the dispatcher branches on. Wrapped with context at the point
// of failure; callers test with errors.Is.
var (
	// ErrInvalidSignature means the notification did not originate from the
	// provider. Processing stops with no state mutation and no user-facing
	// message.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrInvalidReference means the order reference could not be mapped back
	// to a (user, tier) pair.
	ErrInvalidReference = errors.New("invalid order reference")

	// ErrUserNotFound means the referenced user record does not exist. The
	// record is created on first bot contact, so this is a data integrity
	// problem, not a normal path.
	ErrUserNotFound = errors.New("user not found")
)
