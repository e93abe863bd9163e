package event

import "context"

// TrackingService validates and classifies incoming attendance actions
// against the user's event history.
type TrackingService interface {
	// CheckIn records an arrival. Rejects with ErrUserIsOnBreak while a
	// break is open; a repeat scan within the dedup window returns the
	// existing event tagged as duplicate.
	CheckIn(ctx context.Context, req CheckInRequest) (ActionResult, error)

	// Pause records a break start, answers a break-status query, or
	// records a return, depending on req.Mode.
	Pause(ctx context.Context, req PauseRequest) (ActionResult, error)

	// Checkout records a departure. Requires a check-in on the current
	// calendar day.
	Checkout(ctx context.Context, req CheckoutRequest) (ActionResult, error)
}
