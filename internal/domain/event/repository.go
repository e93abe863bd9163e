package event

import (
	"context"
	"time"
)

// EventRepository defines the event store operations the tracking and
// activity services consume. Events are append-mostly: Create is the
// only write in the normal flow.
type EventRepository interface {
	// Create persists a new attendance event
	Create(ctx context.Context, ev Event) (Event, error)

	// LatestByUserAndKind retrieves the most recent event of one kind
	// for a user, or nil if none exists
	LatestByUserAndKind(ctx context.Context, userID string, kind Kind) (*Event, error)

	// FindWithinWindow retrieves the most recent event of one kind for a
	// user with timestamp >= since, or nil. Used by the dedup guard.
	FindWithinWindow(ctx context.Context, userID string, kind Kind, since time.Time) (*Event, error)

	// ListForUserOnDate retrieves all events for a user on one calendar
	// day, ordered by timestamp ascending
	ListForUserOnDate(ctx context.Context, userID string, date time.Time) ([]Event, error)

	// List retrieves events matching the filter, ordered by timestamp
	// ascending
	List(ctx context.Context, filter Filter) ([]Event, error)

	// ListOpenSessions retrieves, for every user whose latest event is a
	// check-in or pause, that latest event when it is older than the
	// cutoff. Consumed by the stale-session sweep.
	ListOpenSessions(ctx context.Context, cutoff time.Time) ([]Event, error)
}

// Filter narrows a List call. Zero values mean "no restriction".
type Filter struct {
	UserID *string
	Kind   *Kind
	From   *time.Time
	To     *time.Time
}
