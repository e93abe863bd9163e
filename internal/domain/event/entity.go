package event

import (
	"time"
)

// Kind identifies the three attendance facts the event store records.
type Kind string

const (
	KindCheckIn  Kind = "check_in"
	KindPause    Kind = "pause"
	KindCheckout Kind = "checkout"
)

// Event is one immutable attendance fact. There is no update or delete
// in the normal flow; a user's presence is derived from the log, never
// stored as a column.
type Event struct {
	ID        string
	UserID    string
	Kind      Kind
	Timestamp time.Time

	// IsReturn marks a check-in that resumes work after a pause.
	// Always false for pause and checkout events.
	IsReturn bool

	// Resolved address and raw coordinates, check-in/checkout only.
	Location  *string
	Latitude  *float64
	Longitude *float64
	Accuracy  *float64

	// Free-text pause reason, pause events only.
	Reason *string

	CreatedAt time.Time
}

// Presence is the derived working status of a user.
type Presence string

const (
	PresenceOffClock Presence = "off_clock"
	PresenceWorking  Presence = "working"
	PresenceOnBreak  Presence = "on_break"
)

// DerivePresence computes the current status from the most recent
// check-in and pause events. A user is on break iff a pause exists that
// is strictly later than the latest check-in (or no check-in exists at
// all). This is the single source of truth shared by the request
// handlers and any analytics replay.
func DerivePresence(lastCheckIn, lastPause *Event) Presence {
	if lastPause != nil && (lastCheckIn == nil || lastPause.Timestamp.After(lastCheckIn.Timestamp)) {
		return PresenceOnBreak
	}
	if lastCheckIn != nil {
		return PresenceWorking
	}
	return PresenceOffClock
}

// OnBreak reports whether the derived presence is on_break.
func OnBreak(lastCheckIn, lastPause *Event) bool {
	return DerivePresence(lastCheckIn, lastPause) == PresenceOnBreak
}
