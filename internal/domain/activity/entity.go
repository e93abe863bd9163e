package activity

import "time"

// Granularity is the aggregation level records are grouped at.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// Valid reports whether g is a known granularity.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear:
		return true
	}
	return false
}

// Finer returns the next finer level. ok is false for day.
func (g Granularity) Finer() (Granularity, bool) {
	switch g {
	case GranularityYear:
		return GranularityMonth, true
	case GranularityMonth:
		return GranularityWeek, true
	case GranularityWeek:
		return GranularityDay, true
	}
	return g, false
}

// Coarser returns the next coarser level. ok is false for year.
func (g Granularity) Coarser() (Granularity, bool) {
	switch g {
	case GranularityDay:
		return GranularityWeek, true
	case GranularityWeek:
		return GranularityMonth, true
	case GranularityMonth:
		return GranularityYear, true
	}
	return g, false
}

// PauseSpan is one break inside a work day. EndedAt is nil while the
// break is still open.
type PauseSpan struct {
	StartedAt time.Time
	EndedAt   *time.Time
	Reason    *string
}

// Duration returns the span length, zero while the break is open.
func (p PauseSpan) Duration() time.Duration {
	if p.EndedAt == nil {
		return 0
	}
	return p.EndedAt.Sub(p.StartedAt)
}

// DailyRecord is one user's work day, computed on read from the event
// store and never persisted.
type DailyRecord struct {
	UserID   string
	UserName string
	Date     time.Time

	CheckInAt  time.Time
	CheckOutAt *time.Time // nil while the day is ongoing

	Pauses []PauseSpan

	// TotalWork accumulates closed working segments. It is never derived
	// from CheckOutAt - CheckInAt, which would count pause time.
	TotalWork time.Duration
}

// AggregatedRecord is one user's summary over a week, month or year.
type AggregatedRecord struct {
	UserID   string
	UserName string

	// GroupKey is userID + "-" + PeriodKey; PeriodKey identifies the
	// period instance (Monday date, yyyy-MM, or yyyy).
	GroupKey    string
	PeriodKey   string
	PeriodLabel string

	FirstArrival  time.Time
	LastDeparture *time.Time // nil when the period contains an open day

	PausesCount  int
	AveragePause time.Duration
	TotalWork    time.Duration

	IsAggregated bool
}
