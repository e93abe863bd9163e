package activity

import (
	"sort"
	"time"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/activity"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/event"
)

// BuildDailyRecords folds a flat event list into one record per user
// per day. Events are expected in timestamp order; the builder sorts
// defensively since the result is a pure function of its input.
//
// Worked time accumulates closed segments only: check-in (or return)
// up to the next pause or checkout. An open trailing segment counts as
// zero until the day is closed.
func BuildDailyRecords(events []event.Event, userNames map[string]string) []activity.DailyRecord {
	sorted := make([]event.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	type dayKey struct {
		userID string
		date   string
	}

	grouped := make(map[dayKey][]event.Event)
	var order []dayKey
	for _, ev := range sorted {
		key := dayKey{userID: ev.UserID, date: ev.Timestamp.UTC().Format("2006-01-02")}
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], ev)
	}

	var records []activity.DailyRecord
	for _, key := range order {
		rec, ok := buildDay(grouped[key], userNames)
		if ok {
			records = append(records, rec)
		}
	}

	// Newest day first, then by user name for a stable display order.
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].UserName < records[j].UserName
	})

	return records
}

// buildDay walks one user-day. Days without any check-in (a stray pause
// with no arrival) produce no record.
func buildDay(events []event.Event, userNames map[string]string) (activity.DailyRecord, bool) {
	var rec activity.DailyRecord
	var workStart *time.Time
	var openPause *activity.PauseSpan
	seenCheckIn := false

	for _, ev := range events {
		rec.UserID = ev.UserID

		switch ev.Kind {
		case event.KindCheckIn:
			if !seenCheckIn {
				rec.CheckInAt = ev.Timestamp
				rec.Date = truncateToDay(ev.Timestamp)
				seenCheckIn = true
			}
			if openPause != nil {
				ts := ev.Timestamp
				openPause.EndedAt = &ts
				rec.Pauses = append(rec.Pauses, *openPause)
				openPause = nil
			}
			if workStart == nil {
				ts := ev.Timestamp
				workStart = &ts
			}

		case event.KindPause:
			if workStart != nil {
				rec.TotalWork += ev.Timestamp.Sub(*workStart)
				workStart = nil
			}
			if openPause == nil {
				openPause = &activity.PauseSpan{StartedAt: ev.Timestamp, Reason: ev.Reason}
			}

		case event.KindCheckout:
			if workStart != nil {
				rec.TotalWork += ev.Timestamp.Sub(*workStart)
				workStart = nil
			}
			ts := ev.Timestamp
			rec.CheckOutAt = &ts
		}
	}

	if openPause != nil {
		rec.Pauses = append(rec.Pauses, *openPause)
	}

	if !seenCheckIn {
		return activity.DailyRecord{}, false
	}

	rec.UserName = userNames[rec.UserID]
	return rec, true
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
