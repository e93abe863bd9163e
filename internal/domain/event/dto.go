package event

import (
	"time"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/pkg/validator"
)

// ========================================
// TRACKING DTOs
// ========================================

// Coordinates are the raw scan coordinates. Optional: a scan from a
// fixed terminal carries none.
type Coordinates struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

func (c *Coordinates) validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if c.Latitude != nil && (*c.Latitude < -90 || *c.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if c.Longitude != nil && (*c.Longitude < -180 || *c.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if (c.Latitude == nil) != (c.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "coordinates",
			Message: "latitude and longitude must be provided together",
		})
	}

	return errs
}

// HasPosition reports whether both latitude and longitude are present.
func (c *Coordinates) HasPosition() bool {
	return c != nil && c.Latitude != nil && c.Longitude != nil
}

type CheckInRequest struct {
	UserID string `json:"-"`
	Coordinates
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	errs = append(errs, r.Coordinates.validate()...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PauseMode selects the behaviour of a pause request.
type PauseMode string

const (
	// PauseModeNormal starts a break, or ends it when the user is
	// already on one (re-scanning the pause point resumes work).
	PauseModeNormal PauseMode = "normal"
	// PauseModeQueryOnly reads the break status without writing.
	PauseModeQueryOnly PauseMode = "query_only"
	// PauseModeExplicitReturn ends the break via the dedicated return
	// action and rejects when the user is not on a break.
	PauseModeExplicitReturn PauseMode = "explicit_return"
)

type PauseRequest struct {
	UserID string    `json:"-"`
	Mode   PauseMode `json:"-"`
	Reason *string   `json:"reason,omitempty"`
}

func (r *PauseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	validModes := []string{string(PauseModeNormal), string(PauseModeQueryOnly), string(PauseModeExplicitReturn)}
	if !validator.IsInSlice(string(r.Mode), validModes) {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: normal, query_only, explicit_return",
		})
	}

	if r.Reason != nil && len(*r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckoutRequest struct {
	UserID string `json:"-"`
	Coordinates
}

func (r *CheckoutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	errs = append(errs, r.Coordinates.validate()...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BreakStatus is the read-only answer to a query_only pause request.
type BreakStatus struct {
	OnBreak   bool       `json:"on_break"`
	Elapsed   string     `json:"elapsed,omitempty"` // "M min S sec"
	StartedAt *time.Time `json:"started_at,omitempty"`
}

// ActionResult is the outcome of every tracking operation. Duplicate
// suppression is a successful no-op: IsDuplicate is set and Event
// carries the existing record verbatim.
type ActionResult struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message,omitempty"`
	IsDuplicate bool         `json:"is_duplicate,omitempty"`
	Event       *Event       `json:"-"`
	Break       *BreakStatus `json:"break,omitempty"`
}

type EventResponse struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	Kind      string   `json:"kind"`
	Timestamp string   `json:"timestamp"`
	IsReturn  bool     `json:"is_return,omitempty"`
	Location  *string  `json:"location,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Reason    *string  `json:"reason,omitempty"`
}

// MapEventToResponse converts an Event entity to EventResponse
func MapEventToResponse(ev Event) EventResponse {
	return EventResponse{
		ID:        ev.ID,
		UserID:    ev.UserID,
		Kind:      string(ev.Kind),
		Timestamp: ev.Timestamp.UTC().Format(time.RFC3339),
		IsReturn:  ev.IsReturn,
		Location:  ev.Location,
		Latitude:  ev.Latitude,
		Longitude: ev.Longitude,
		Accuracy:  ev.Accuracy,
		Reason:    ev.Reason,
	}
}

// ActionResponse is the wire shape of an ActionResult.
type ActionResponse struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message,omitempty"`
	IsDuplicate bool           `json:"is_duplicate,omitempty"`
	Event       *EventResponse `json:"event,omitempty"`
	Break       *BreakStatus   `json:"break,omitempty"`
}

// MapActionToResponse converts an ActionResult to its wire shape.
func MapActionToResponse(res ActionResult) ActionResponse {
	resp := ActionResponse{
		Success:     res.Success,
		Message:     res.Message,
		IsDuplicate: res.IsDuplicate,
		Break:       res.Break,
	}
	if res.Event != nil {
		ev := MapEventToResponse(*res.Event)
		resp.Event = &ev
	}
	return resp
}
