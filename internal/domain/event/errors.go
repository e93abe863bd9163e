package event

import "errors"

// Tracking domain errors. Policy rejections carry a corrective message
// for the user; they are never silently dropped.
var (
	// Check-in errors
	ErrUserIsOnBreak = errors.New("you are on a break, scan the pause point to resume work")

	// Pause errors
	ErrNoCheckInYet = errors.New("you have not checked in yet")
	ErrNotOnBreak   = errors.New("you are not on a break")

	// Checkout errors
	ErrNoCheckInToday = errors.New("you have no check-in today, check in before checking out")

	// General errors
	ErrEventNotFound = errors.New("attendance event not found")
)
