package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/event"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/user"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/pkg/geocode"
	"github.com/google/uuid"
)

// DedupWindow suppresses accidental repeat submissions (a QR scan
// retried by a flaky client). Applied identically to check-in and
// pause; checkout is deliberately exempt. Best-effort read-then-write,
// not a transactional lock.
const DedupWindow = 60 * time.Second

type TrackingServiceImpl struct {
	event.EventRepository
	user.UserRepository
	resolver geocode.Resolver

	// clock is swapped in tests
	clock func() time.Time
}

func NewTrackingService(
	eventRepo event.EventRepository,
	userRepo user.UserRepository,
	resolver geocode.Resolver,
) event.TrackingService {
	return &TrackingServiceImpl{
		EventRepository: eventRepo,
		UserRepository:  userRepo,
		resolver:        resolver,
		clock:           time.Now,
	}
}

// resolveAccount is the single place where a stale identity reference
// is substituted with the well-known anonymous account. This keeps scan
// terminals usable for anonymous/demo sessions; every other
// ErrUserNotFound in the codebase must propagate.
func (s *TrackingServiceImpl) resolveAccount(ctx context.Context, userID string) (user.User, error) {
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.Warn("unknown user on tracking request, substituting fallback account", "user_id", userID)
			return s.UserRepository.GetFallback(ctx)
		}
		return user.User{}, fmt.Errorf("failed to resolve account: %w", err)
	}
	return u, nil
}

// resolveLocation reverse-geocodes the scan coordinates. Failures are
// logged and swallowed: the event is recorded without an address.
func (s *TrackingServiceImpl) resolveLocation(ctx context.Context, coords event.Coordinates) *string {
	if !coords.HasPosition() || s.resolver == nil {
		return nil
	}
	address, err := s.resolver.Resolve(ctx, *coords.Latitude, *coords.Longitude)
	if err != nil {
		slog.Warn("reverse geocoding failed, recording event without address", "error", err)
		return nil
	}
	return address
}

// latestPair fetches the most recent check-in and pause events, the two
// facts presence is derived from.
func (s *TrackingServiceImpl) latestPair(ctx context.Context, userID string) (lastCheckIn, lastPause *event.Event, err error) {
	lastCheckIn, err = s.EventRepository.LatestByUserAndKind(ctx, userID, event.KindCheckIn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get latest check-in: %w", err)
	}
	lastPause, err = s.EventRepository.LatestByUserAndKind(ctx, userID, event.KindPause)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get latest pause: %w", err)
	}
	return lastCheckIn, lastPause, nil
}

// CheckIn implements event.TrackingService.
func (s *TrackingServiceImpl) CheckIn(ctx context.Context, req event.CheckInRequest) (event.ActionResult, error) {
	if err := req.Validate(); err != nil {
		return event.ActionResult{}, err
	}

	acct, err := s.resolveAccount(ctx, req.UserID)
	if err != nil {
		return event.ActionResult{}, err
	}

	now := s.clock().UTC()

	existing, err := s.EventRepository.FindWithinWindow(ctx, acct.ID, event.KindCheckIn, now.Add(-DedupWindow))
	if err != nil {
		return event.ActionResult{}, fmt.Errorf("failed to run dedup check: %w", err)
	}
	if existing != nil {
		return event.ActionResult{
			Success:     true,
			Message:     "already checked in",
			IsDuplicate: true,
			Event:       existing,
		}, nil
	}

	lastCheckIn, lastPause, err := s.latestPair(ctx, acct.ID)
	if err != nil {
		return event.ActionResult{}, err
	}
	if event.OnBreak(lastCheckIn, lastPause) {
		// A check-in never substitutes for a pause return; the caller
		// must use the dedicated return action.
		return event.ActionResult{}, event.ErrUserIsOnBreak
	}

	ev := event.Event{
		ID:        uuid.NewString(),
		UserID:    acct.ID,
		Kind:      event.KindCheckIn,
		Timestamp: now,
		IsReturn:  false,
		Location:  s.resolveLocation(ctx, req.Coordinates),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Accuracy:  req.Accuracy,
	}

	created, err := s.EventRepository.Create(ctx, ev)
	if err != nil {
		return event.ActionResult{}, fmt.Errorf("failed to create check-in: %w", err)
	}

	return event.ActionResult{
		Success: true,
		Message: "check-in recorded",
		Event:   &created,
	}, nil
}

// Pause implements event.TrackingService.
func (s *TrackingServiceImpl) Pause(ctx context.Context, req event.PauseRequest) (event.ActionResult, error) {
	if err := req.Validate(); err != nil {
		return event.ActionResult{}, err
	}

	acct, err := s.resolveAccount(ctx, req.UserID)
	if err != nil {
		return event.ActionResult{}, err
	}

	lastCheckIn, lastPause, err := s.latestPair(ctx, acct.ID)
	if err != nil {
		return event.ActionResult{}, err
	}
	if lastCheckIn == nil {
		return event.ActionResult{}, event.ErrNoCheckInYet
	}

	now := s.clock().UTC()
	onBreak := event.OnBreak(lastCheckIn, lastPause)

	switch req.Mode {
	case event.PauseModeQueryOnly:
		if !onBreak {
			return event.ActionResult{
				Success: true,
				Break:   &event.BreakStatus{OnBreak: false},
			}, nil
		}
		return event.ActionResult{
			Success: true,
			Break: &event.BreakStatus{
				OnBreak:   true,
				Elapsed:   formatElapsed(now.Sub(lastPause.Timestamp)),
				StartedAt: &lastPause.Timestamp,
			},
		}, nil

	case event.PauseModeExplicitReturn:
		if !onBreak {
			return event.ActionResult{}, event.ErrNotOnBreak
		}
		return s.createReturn(ctx, acct.ID, now)

	default: // event.PauseModeNormal
		existing, err := s.EventRepository.FindWithinWindow(ctx, acct.ID, event.KindPause, now.Add(-DedupWindow))
		if err != nil {
			return event.ActionResult{}, fmt.Errorf("failed to run dedup check: %w", err)
		}
		if existing != nil {
			return event.ActionResult{
				Success:     true,
				Message:     "break already started",
				IsDuplicate: true,
				Event:       existing,
			}, nil
		}

		if onBreak {
			// Re-scanning the pause point while on break is the resume
			// mechanism: record a return check-in, not a second pause.
			return s.createReturn(ctx, acct.ID, now)
		}

		ev := event.Event{
			ID:        uuid.NewString(),
			UserID:    acct.ID,
			Kind:      event.KindPause,
			Timestamp: now,
			Reason:    req.Reason,
		}
		created, err := s.EventRepository.Create(ctx, ev)
		if err != nil {
			return event.ActionResult{}, fmt.Errorf("failed to create pause: %w", err)
		}
		return event.ActionResult{
			Success: true,
			Message: "break started",
			Event:   &created,
		}, nil
	}
}

// Checkout implements event.TrackingService.
func (s *TrackingServiceImpl) Checkout(ctx context.Context, req event.CheckoutRequest) (event.ActionResult, error) {
	if err := req.Validate(); err != nil {
		return event.ActionResult{}, err
	}

	acct, err := s.resolveAccount(ctx, req.UserID)
	if err != nil {
		return event.ActionResult{}, err
	}

	now := s.clock().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	todayCheckIn, err := s.EventRepository.FindWithinWindow(ctx, acct.ID, event.KindCheckIn, dayStart)
	if err != nil {
		return event.ActionResult{}, fmt.Errorf("failed to look up today's check-in: %w", err)
	}
	if todayCheckIn == nil {
		return event.ActionResult{}, event.ErrNoCheckInToday
	}

	// No dedup guard on checkout.
	ev := event.Event{
		ID:        uuid.NewString(),
		UserID:    acct.ID,
		Kind:      event.KindCheckout,
		Timestamp: now,
		Location:  s.resolveLocation(ctx, req.Coordinates),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Accuracy:  req.Accuracy,
	}

	created, err := s.EventRepository.Create(ctx, ev)
	if err != nil {
		return event.ActionResult{}, fmt.Errorf("failed to create checkout: %w", err)
	}

	return event.ActionResult{
		Success: true,
		Message: "checkout recorded",
		Event:   &created,
	}, nil
}

// createReturn records the check-in that ends a break.
func (s *TrackingServiceImpl) createReturn(ctx context.Context, userID string, now time.Time) (event.ActionResult, error) {
	ev := event.Event{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      event.KindCheckIn,
		Timestamp: now,
		IsReturn:  true,
	}
	created, err := s.EventRepository.Create(ctx, ev)
	if err != nil {
		return event.ActionResult{}, fmt.Errorf("failed to create return check-in: %w", err)
	}
	return event.ActionResult{
		Success: true,
		Message: "break ended, welcome back",
		Event:   &created,
	}, nil
}

// formatElapsed renders a break duration as "M min S sec".
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%d min %d sec", minutes, seconds)
}
