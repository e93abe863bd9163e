package activity

import (
	"sort"
	"time"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/activity"
)

// PeriodKey identifies the period instance a timestamp falls into:
// week is the ISO-week Monday date (yyyy-MM-dd), month is yyyy-MM,
// year is the 4-digit year. Day is the identity key.
func PeriodKey(t time.Time, g activity.Granularity) string {
	t = t.UTC()
	switch g {
	case activity.GranularityWeek:
		// Shift back to Monday; Sunday counts as the end of the week.
		offset := 1 - int(t.Weekday())
		if t.Weekday() == time.Sunday {
			offset = -6
		}
		return t.AddDate(0, 0, offset).Format("2006-01-02")
	case activity.GranularityMonth:
		return t.Format("2006-01")
	case activity.GranularityYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

// PeriodLabel renders a period key for display.
func PeriodLabel(key string, g activity.Granularity) string {
	if g == activity.GranularityWeek {
		return "week of " + key
	}
	return key
}

// Aggregate rolls per-day records up into one summary per user per
// period. Day granularity is the identity: callers list the daily
// records directly instead.
func Aggregate(records []activity.DailyRecord, g activity.Granularity) []activity.AggregatedRecord {
	type bucket struct {
		userID    string
		userName  string
		periodKey string
		checkIns  []time.Time
		checkOuts []time.Time
		pauses    int
		pauseSum  time.Duration
		totalWork time.Duration
	}

	buckets := make(map[string]*bucket)
	var order []string

	for _, rec := range records {
		periodKey := PeriodKey(rec.Date, g)
		groupKey := rec.UserID + "-" + periodKey

		b, ok := buckets[groupKey]
		if !ok {
			b = &bucket{userID: rec.UserID, userName: rec.UserName, periodKey: periodKey}
			buckets[groupKey] = b
			order = append(order, groupKey)
		}

		b.checkIns = append(b.checkIns, rec.CheckInAt)
		if rec.CheckOutAt != nil {
			b.checkOuts = append(b.checkOuts, *rec.CheckOutAt)
		}
		for _, p := range rec.Pauses {
			b.pauses++
			b.pauseSum += p.Duration()
		}
		// Accumulated per-day totals, never lastDeparture-firstArrival:
		// a period boundary subtraction would count pause time when work
		// spans several days.
		b.totalWork += rec.TotalWork
	}

	out := make([]activity.AggregatedRecord, 0, len(order))
	for _, groupKey := range order {
		b := buckets[groupKey]

		sort.Slice(b.checkIns, func(i, j int) bool { return b.checkIns[i].Before(b.checkIns[j]) })
		sort.Slice(b.checkOuts, func(i, j int) bool { return b.checkOuts[i].Before(b.checkOuts[j]) })

		agg := activity.AggregatedRecord{
			UserID:       b.userID,
			UserName:     b.userName,
			GroupKey:     groupKey,
			PeriodKey:    b.periodKey,
			PeriodLabel:  PeriodLabel(b.periodKey, g),
			FirstArrival: b.checkIns[0],
			PausesCount:  b.pauses,
			TotalWork:    b.totalWork,
			IsAggregated: true,
		}
		if len(b.checkOuts) > 0 {
			last := b.checkOuts[len(b.checkOuts)-1]
			agg.LastDeparture = &last
		}
		if b.pauses > 0 {
			agg.AveragePause = b.pauseSum / time.Duration(b.pauses)
		}

		out = append(out, agg)
	}

	// Newest period first, then by user name.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PeriodKey != out[j].PeriodKey {
			return out[i].PeriodKey > out[j].PeriodKey
		}
		return out[i].UserName < out[j].UserName
	})

	return out
}
