package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/event"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/notification"
	"github.com/google/uuid"
)

// staleAfterDays is how many calendar days an open session may linger
// before the sweep closes it.
const staleAfterDays = 2

type SessionJobs struct {
	eventRepo       event.EventRepository
	notificationSvc notification.Service
	clock           func() time.Time
}

func NewSessionJobs(
	eventRepo event.EventRepository,
	notificationSvc notification.Service,
) *SessionJobs {
	return &SessionJobs{
		eventRepo:       eventRepo,
		notificationSvc: notificationSvc,
		clock:           time.Now,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", 1*time.Hour, j.AutoCloseStaleSessions)
}

// AutoCloseStaleSessions appends a synthetic checkout at the end of the
// forgotten day for every user whose latest event is a days-old
// check-in or pause. Keeps ongoing days from leaking into aggregation
// forever when someone forgets to scan out.
//
// The sweep is idempotent: once a user's day is closed their latest
// event is a checkout, so the next tick skips them.
func (j *SessionJobs) AutoCloseStaleSessions(ctx context.Context) error {
	now := j.clock().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -staleAfterDays)

	stale, err := j.eventRepo.ListOpenSessions(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}

	if len(stale) == 0 {
		slog.Debug("stale session sweep found nothing to close")
		return nil
	}

	closedCount := 0
	for _, last := range stale {
		day := last.Timestamp.UTC()
		endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.UTC)

		_, err := j.eventRepo.Create(ctx, event.Event{
			ID:        uuid.NewString(),
			UserID:    last.UserID,
			Kind:      event.KindCheckout,
			Timestamp: endOfDay,
		})
		if err != nil {
			slog.Error("failed to close stale session", "user_id", last.UserID, "error", err)
			continue
		}

		if err := j.notificationSvc.Notify(ctx, last.UserID,
			"day closed automatically",
			fmt.Sprintf("you did not check out on %s, the day was closed at 23:59", day.Format("2006-01-02")),
		); err != nil {
			slog.Error("failed to notify user about auto-close", "user_id", last.UserID, "error", err)
		}

		closedCount++
	}

	slog.Info("stale session sweep finished", "closed", closedCount)
	return nil
}
