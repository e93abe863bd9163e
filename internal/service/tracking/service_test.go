package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/event"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo is an in-memory event store ordered by insertion.
type fakeEventRepo struct {
	events []event.Event
}

func (r *fakeEventRepo) Create(ctx context.Context, ev event.Event) (event.Event, error) {
	ev.CreatedAt = time.Now().UTC()
	r.events = append(r.events, ev)
	return ev, nil
}

func (r *fakeEventRepo) LatestByUserAndKind(ctx context.Context, userID string, kind event.Kind) (*event.Event, error) {
	var latest *event.Event
	for i := range r.events {
		ev := r.events[i]
		if ev.UserID != userID || ev.Kind != kind {
			continue
		}
		if latest == nil || ev.Timestamp.After(latest.Timestamp) {
			latest = &r.events[i]
		}
	}
	return latest, nil
}

func (r *fakeEventRepo) FindWithinWindow(ctx context.Context, userID string, kind event.Kind, since time.Time) (*event.Event, error) {
	var latest *event.Event
	for i := range r.events {
		ev := r.events[i]
		if ev.UserID != userID || ev.Kind != kind || ev.Timestamp.Before(since) {
			continue
		}
		if latest == nil || ev.Timestamp.After(latest.Timestamp) {
			latest = &r.events[i]
		}
	}
	return latest, nil
}

func (r *fakeEventRepo) ListForUserOnDate(ctx context.Context, userID string, date time.Time) ([]event.Event, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)
	var out []event.Event
	for _, ev := range r.events {
		if ev.UserID == userID && !ev.Timestamp.Before(dayStart) && ev.Timestamp.Before(dayEnd) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) List(ctx context.Context, filter event.Filter) ([]event.Event, error) {
	var out []event.Event
	for _, ev := range r.events {
		if filter.UserID != nil && ev.UserID != *filter.UserID {
			continue
		}
		if filter.Kind != nil && ev.Kind != *filter.Kind {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (r *fakeEventRepo) ListOpenSessions(ctx context.Context, cutoff time.Time) ([]event.Event, error) {
	latest := make(map[string]event.Event)
	for _, ev := range r.events {
		cur, ok := latest[ev.UserID]
		if !ok || ev.Timestamp.After(cur.Timestamp) {
			latest[ev.UserID] = ev
		}
	}
	var out []event.Event
	for _, ev := range latest {
		if ev.Kind != event.KindCheckout && ev.Timestamp.Before(cutoff) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) countByKind(kind event.Kind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// fakeUserRepo resolves from a fixed set of accounts.
type fakeUserRepo struct {
	users    map[string]user.User
	fallback *user.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetFallback(ctx context.Context) (user.User, error) {
	if r.fallback == nil {
		return user.User{}, user.ErrNoFallbackAccount
	}
	return *r.fallback, nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id string, status user.Status) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Status = status
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

const testUserID = "9f1c2d3e-0000-4000-8000-000000000001"

func newTestService(now time.Time) (*TrackingServiceImpl, *fakeEventRepo) {
	eventRepo := &fakeEventRepo{}
	userRepo := &fakeUserRepo{
		users: map[string]user.User{
			testUserID: {ID: testUserID, Email: "alice@example.com", Name: "Alice", Role: user.RoleUser, Status: user.StatusActive},
		},
		fallback: &user.User{ID: "fallback-id", Email: "anonymous@example.com", Name: "Anonymous", IsFallback: true},
	}
	svc := &TrackingServiceImpl{
		EventRepository: eventRepo,
		UserRepository:  userRepo,
		clock:           func() time.Time { return now },
	}
	return svc, eventRepo
}

func TestCheckIn_RecordsEvent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	result, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.IsDuplicate)
	assert.Equal(t, "check-in recorded", result.Message)
	require.NotNil(t, result.Event)
	assert.Equal(t, event.KindCheckIn, result.Event.Kind)
	assert.Equal(t, 1, repo.countByKind(event.KindCheckIn))
}

func TestCheckIn_DuplicateWithinWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	first, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})
	require.NoError(t, err)

	// 30 seconds later, inside the window
	svc.clock = func() time.Time { return now.Add(30 * time.Second) }
	second, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})

	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.True(t, second.IsDuplicate)
	assert.Equal(t, "already checked in", second.Message)
	assert.Equal(t, first.Event.ID, second.Event.ID)
	assert.Equal(t, 1, repo.countByKind(event.KindCheckIn), "no second event may be written")
}

func TestCheckIn_AfterWindowIsNewEvent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	_, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})
	require.NoError(t, err)

	svc.clock = func() time.Time { return now.Add(61 * time.Second) }
	second, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})

	require.NoError(t, err)
	assert.False(t, second.IsDuplicate)
	assert.Equal(t, 2, repo.countByKind(event.KindCheckIn))
}

func TestCheckIn_RejectedWhileOnBreak(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	_, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})
	require.NoError(t, err)

	svc.clock = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = svc.Pause(ctx, event.PauseRequest{UserID: testUserID, Mode: event.PauseModeNormal})
	require.NoError(t, err)

	svc.clock = func() time.Time { return now.Add(3 * time.Hour) }
	_, err = svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})

	assert.ErrorIs(t, err, event.ErrUserIsOnBreak)
	assert.Equal(t, 1, repo.countByKind(event.KindCheckIn), "rejection must not write")
}

func TestPause_RequiresCheckIn(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	_, err := svc.Pause(ctx, event.PauseRequest{UserID: testUserID, Mode: event.PauseModeNormal})

	assert.ErrorIs(t, err, event.ErrNoCheckInYet)
	assert.Empty(t, repo.events)
}

func TestPause_StartsBreak(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	_, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})
	require.NoError(t, err)

	reason := "lunch"
	svc.clock = func() time.Time { return now.Add(4 * time.Hour) }
	result, err := svc.Pause(ctx, event.PauseRequest{UserID: testUserID, Mode: event.PauseModeNormal, Reason: &reason})

	require.NoError(t, err)
	assert.Equal(t, "break started", result.Message)
	require.NotNil(t, result.Event)
	assert.Equal(t, event.KindPause, result.Event.Kind)
	require.NotNil(t, result.Event.Reason)
	assert.Equal(t, "lunch", *result.Event.Reason)
	assert.Equal(t, 1, repo.countByKind(event.KindPause))
}

func TestPause_DuplicateWithinWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	_, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})
	require.NoError(t, err)

	svc.clock = func() time.Time { return now.Add(4 * time.Hour) }
	_, err = svc.Pause(ctx, event.PauseRequest{UserID: testUserID, Mode: event.PauseModeNormal})
	require.NoError(t, err)

	// A retried scan lands inside the window and must not be read as a
	// return to work.
	svc.clock = func() time.Time { return now.Add(4*time.Hour + 20*time.Second) }
	second, err := svc.Pause(ctx, event.PauseRequest{UserID: testUserID, Mode: event.PauseModeNormal})

	require.NoError(t, err)
	assert.True(t, second.IsDuplicate)
	assert.Equal(t, "break already started", second.Message)
	assert.Equal(t, 1, repo.countByKind(event.KindPause))
	assert.Equal(t, 1, repo.countByKind(event.KindCheckIn), "no return check-in may be written")
}

func TestPause_RescanEndsBreak(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	_, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})
	require.NoError(t, err)

	svc.clock = func() time.Time { return now.Add(4 * time.Hour) }
	_, err = svc.Pause(ctx, event.PauseRequest{UserID: testUserID, Mode: event.PauseModeNormal})
	require.NoError(t, err)

	// Past the dedup window, still on break: the re-scan resumes work.
	svc.clock = func() time.Time { return now.Add(4*time.Hour + 30*time.Minute) }
	result, err := svc.Pause(ctx, event.PauseRequest{UserID: testUserID, Mode: event.PauseModeNormal})

	require.NoError(t, err)
	assert.Equal(t, "break ended, welcome back", result.Message)
	require.NotNil(t, result.Event)
	assert.Equal(t, event.KindCheckIn, result.Event.Kind)
	assert.True(t, result.Event.IsReturn)
	assert.Equal(t, 1, repo.countByKind(event.KindPause))
}

func TestPause_QueryOnlyNeverWrites(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	_, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})
	require.NoError(t, err)

	svc.clock = func() time.Time { return now.Add(4 * time.Hour) }
	_, err = svc.Pause(ctx, event.PauseRequest{UserID: testUserID, Mode: event.PauseModeNormal})
	require.NoError(t, err)

	before := len(repo.events)

	svc.clock = func() time.Time { return now.Add(4*time.Hour + 5*time.Minute + 30*time.Second) }
	result, err := svc.Pause(ctx, event.PauseRequest{UserID: testUserID, Mode: event.PauseModeQueryOnly})

	require.NoError(t, err)
	require.NotNil(t, result.Break)
	assert.True(t, result.Break.OnBreak)
	assert.Equal(t, "5 min 30 sec", result.Break.Elapsed)
	assert.Len(t, repo.events, before, "query must not write")
}

func TestPause_QueryOnlyWhileWorking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	_, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})
	require.NoError(t, err)

	result, err := svc.Pause(ctx, event.PauseRequest{UserID: testUserID, Mode: event.PauseModeQueryOnly})

	require.NoError(t, err)
	require.NotNil(t, result.Break)
	assert.False(t, result.Break.OnBreak)
	assert.Empty(t, result.Break.Elapsed)
}

func TestPause_ExplicitReturn(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	_, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})
	require.NoError(t, err)

	svc.clock = func() time.Time { return now.Add(4 * time.Hour) }
	_, err = svc.Pause(ctx, event.PauseRequest{UserID: testUserID, Mode: event.PauseModeNormal})
	require.NoError(t, err)

	svc.clock = func() time.Time { return now.Add(4*time.Hour + 15*time.Minute) }
	result, err := svc.Pause(ctx, event.PauseRequest{UserID: testUserID, Mode: event.PauseModeExplicitReturn})

	require.NoError(t, err)
	require.NotNil(t, result.Event)
	assert.Equal(t, event.KindCheckIn, result.Event.Kind)
	assert.True(t, result.Event.IsReturn)
}

func TestPause_ExplicitReturnRejectedWhileWorking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	_, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})
	require.NoError(t, err)

	before := len(repo.events)
	_, err = svc.Pause(ctx, event.PauseRequest{UserID: testUserID, Mode: event.PauseModeExplicitReturn})

	assert.ErrorIs(t, err, event.ErrNotOnBreak)
	assert.Len(t, repo.events, before)
}

func TestCheckout_RequiresCheckInToday(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	// Yesterday's check-in does not count.
	repo.events = append(repo.events, event.Event{
		ID:        "old",
		UserID:    testUserID,
		Kind:      event.KindCheckIn,
		Timestamp: now.AddDate(0, 0, -1),
	})

	_, err := svc.Checkout(ctx, event.CheckoutRequest{UserID: testUserID})

	assert.ErrorIs(t, err, event.ErrNoCheckInToday)
	assert.Equal(t, 0, repo.countByKind(event.KindCheckout))
}

func TestCheckout_Succeeds(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	_, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})
	require.NoError(t, err)

	svc.clock = func() time.Time { return now.Add(9 * time.Hour) }
	result, err := svc.Checkout(ctx, event.CheckoutRequest{UserID: testUserID})

	require.NoError(t, err)
	assert.Equal(t, "checkout recorded", result.Message)
	assert.Equal(t, 1, repo.countByKind(event.KindCheckout))
}

func TestCheckout_NoDedupGuard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	_, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: testUserID})
	require.NoError(t, err)

	svc.clock = func() time.Time { return now.Add(9 * time.Hour) }
	_, err = svc.Checkout(ctx, event.CheckoutRequest{UserID: testUserID})
	require.NoError(t, err)

	// Seconds later: still a fresh event, the last departure wins.
	svc.clock = func() time.Time { return now.Add(9*time.Hour + 10*time.Second) }
	second, err := svc.Checkout(ctx, event.CheckoutRequest{UserID: testUserID})

	require.NoError(t, err)
	assert.False(t, second.IsDuplicate)
	assert.Equal(t, 2, repo.countByKind(event.KindCheckout))
}

func TestUnknownUserFallsBackToAnonymousAccount(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	result, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: "no-such-user"})

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, repo.events, 1)
	assert.Equal(t, "fallback-id", repo.events[0].UserID)
}

func TestUnknownUserWithoutFallbackFails(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)
	svc.UserRepository.(*fakeUserRepo).fallback = nil

	_, err := svc.CheckIn(ctx, event.CheckInRequest{UserID: "no-such-user"})

	assert.ErrorIs(t, err, user.ErrNoFallbackAccount)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0 min 0 sec", formatElapsed(0))
	assert.Equal(t, "0 min 59 sec", formatElapsed(59*time.Second))
	assert.Equal(t, "5 min 30 sec", formatElapsed(5*time.Minute+30*time.Second))
	assert.Equal(t, "90 min 0 sec", formatElapsed(90*time.Minute))
	assert.Equal(t, "0 min 0 sec", formatElapsed(-time.Second))
}
