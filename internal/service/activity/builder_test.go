package activity

import (
	"testing"
	"time"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNames = map[string]string{
	"u1": "Alice",
	"u2": "Bob",
}

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func TestBuildDailyRecords_StandardDay(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// 08:00 arrive, 12:00-12:30 lunch, 17:00 leave
	events := []event.Event{
		{ID: "1", UserID: "u1", Kind: event.KindCheckIn, Timestamp: at(day, 8, 0)},
		{ID: "2", UserID: "u1", Kind: event.KindPause, Timestamp: at(day, 12, 0), Reason: strPtr("lunch")},
		{ID: "3", UserID: "u1", Kind: event.KindCheckIn, Timestamp: at(day, 12, 30), IsReturn: true},
		{ID: "4", UserID: "u1", Kind: event.KindCheckout, Timestamp: at(day, 17, 0)},
	}

	records := BuildDailyRecords(events, testNames)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, "Alice", rec.UserName)
	assert.Equal(t, day, rec.Date)
	assert.Equal(t, at(day, 8, 0), rec.CheckInAt)
	require.NotNil(t, rec.CheckOutAt)
	assert.Equal(t, at(day, 17, 0), *rec.CheckOutAt)

	// Worked time excludes the pause: 4h morning + 4h30 afternoon.
	assert.Equal(t, 8*time.Hour+30*time.Minute, rec.TotalWork)

	require.Len(t, rec.Pauses, 1)
	pause := rec.Pauses[0]
	assert.Equal(t, at(day, 12, 0), pause.StartedAt)
	require.NotNil(t, pause.EndedAt)
	assert.Equal(t, at(day, 12, 30), *pause.EndedAt)
	assert.Equal(t, 30*time.Minute, pause.Duration())
	require.NotNil(t, pause.Reason)
	assert.Equal(t, "lunch", *pause.Reason)
}

func TestBuildDailyRecords_OngoingDay(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	events := []event.Event{
		{ID: "1", UserID: "u1", Kind: event.KindCheckIn, Timestamp: at(day, 9, 0)},
		{ID: "2", UserID: "u1", Kind: event.KindPause, Timestamp: at(day, 11, 0)},
	}

	records := BuildDailyRecords(events, testNames)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Nil(t, rec.CheckOutAt)
	assert.Equal(t, 2*time.Hour, rec.TotalWork)

	// Open break: present, no end, zero duration.
	require.Len(t, rec.Pauses, 1)
	assert.Nil(t, rec.Pauses[0].EndedAt)
	assert.Equal(t, time.Duration(0), rec.Pauses[0].Duration())
}

func TestBuildDailyRecords_OpenTrailingSegmentCountsZero(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	events := []event.Event{
		{ID: "1", UserID: "u1", Kind: event.KindCheckIn, Timestamp: at(day, 9, 0)},
	}

	records := BuildDailyRecords(events, testNames)

	require.Len(t, records, 1)
	assert.Equal(t, time.Duration(0), records[0].TotalWork)
	assert.Nil(t, records[0].CheckOutAt)
}

func TestBuildDailyRecords_PauseOnlyDayIsSkipped(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	events := []event.Event{
		{ID: "1", UserID: "u1", Kind: event.KindPause, Timestamp: at(day, 10, 0)},
	}

	records := BuildDailyRecords(events, testNames)

	assert.Empty(t, records)
}

func TestBuildDailyRecords_LastCheckoutWins(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	events := []event.Event{
		{ID: "1", UserID: "u1", Kind: event.KindCheckIn, Timestamp: at(day, 8, 0)},
		{ID: "2", UserID: "u1", Kind: event.KindCheckout, Timestamp: at(day, 16, 0)},
		{ID: "3", UserID: "u1", Kind: event.KindCheckout, Timestamp: at(day, 16, 0).Add(10 * time.Second)},
	}

	records := BuildDailyRecords(events, testNames)

	require.Len(t, records, 1)
	require.NotNil(t, records[0].CheckOutAt)
	assert.Equal(t, at(day, 16, 0).Add(10*time.Second), *records[0].CheckOutAt)
	// The second checkout closes no open segment and adds no work.
	assert.Equal(t, 8*time.Hour, records[0].TotalWork)
}

func TestBuildDailyRecords_SplitsUsersAndDays(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	events := []event.Event{
		{ID: "1", UserID: "u1", Kind: event.KindCheckIn, Timestamp: at(monday, 8, 0)},
		{ID: "2", UserID: "u1", Kind: event.KindCheckout, Timestamp: at(monday, 16, 0)},
		{ID: "3", UserID: "u2", Kind: event.KindCheckIn, Timestamp: at(monday, 9, 0)},
		{ID: "4", UserID: "u2", Kind: event.KindCheckout, Timestamp: at(monday, 17, 0)},
		{ID: "5", UserID: "u1", Kind: event.KindCheckIn, Timestamp: at(tuesday, 8, 30)},
		{ID: "6", UserID: "u1", Kind: event.KindCheckout, Timestamp: at(tuesday, 16, 30)},
	}

	records := BuildDailyRecords(events, testNames)

	require.Len(t, records, 3)
	// Newest day first, then by user name.
	assert.Equal(t, tuesday, records[0].Date)
	assert.Equal(t, "Alice", records[0].UserName)
	assert.Equal(t, monday, records[1].Date)
	assert.Equal(t, "Alice", records[1].UserName)
	assert.Equal(t, "Bob", records[2].UserName)
}

func TestBuildDailyRecords_UnorderedInput(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	events := []event.Event{
		{ID: "4", UserID: "u1", Kind: event.KindCheckout, Timestamp: at(day, 17, 0)},
		{ID: "1", UserID: "u1", Kind: event.KindCheckIn, Timestamp: at(day, 8, 0)},
		{ID: "3", UserID: "u1", Kind: event.KindCheckIn, Timestamp: at(day, 12, 30), IsReturn: true},
		{ID: "2", UserID: "u1", Kind: event.KindPause, Timestamp: at(day, 12, 0)},
	}

	records := BuildDailyRecords(events, testNames)

	require.Len(t, records, 1)
	assert.Equal(t, 8*time.Hour+30*time.Minute, records[0].TotalWork)
}
