package activity

import (
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/activity"
)

// FilterDaily restricts raw daily records to the view state's focused
// period and collaborator filter. Grouping to the display granularity
// happens afterwards, on the survivors.
func FilterDaily(records []activity.DailyRecord, state activity.ViewState) []activity.DailyRecord {
	out := make([]activity.DailyRecord, 0, len(records))
	for _, rec := range records {
		if state.CollaboratorID != nil && rec.UserID != *state.CollaboratorID {
			continue
		}
		if state.Focus != nil && PeriodKey(rec.Date, state.Focus.Type) != state.Focus.Value {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// pageBounds returns the slice bounds for the state's page over total
// items, after clamping.
func pageBounds(state activity.ViewState, total int) (int, int) {
	start := (state.Page - 1) * state.PageSize
	if start > total {
		start = total
	}
	end := start + state.PageSize
	if end > total {
		end = total
	}
	return start, end
}
