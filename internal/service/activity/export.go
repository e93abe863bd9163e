package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/activity"
)

// ExportRows implements activity.ActivityService. The whole filtered
// view is exported, not just the current page. Day views get per-day
// columns, aggregated views period columns; the header row comes first
// so callers can feed the result straight into a CSV writer.
func (s *ActivityServiceImpl) ExportRows(ctx context.Context, state activity.ViewState) ([][]string, error) {
	filtered, err := s.GetFiltered(ctx, state)
	if err != nil {
		return nil, err
	}

	if state.Granularity == activity.GranularityDay {
		rows := make([][]string, 0, len(filtered)+1)
		rows = append(rows, []string{"date", "collaborator", "check_in", "check_out", "pauses", "total_work"})
		for _, rec := range filtered {
			checkOut := ""
			if rec.CheckOutAt != nil {
				checkOut = rec.CheckOutAt.UTC().Format("15:04")
			}
			rows = append(rows, []string{
				rec.Date.Format("2006-01-02"),
				rec.UserName,
				rec.CheckInAt.UTC().Format("15:04"),
				checkOut,
				fmt.Sprintf("%d", len(rec.Pauses)),
				formatWorkDuration(rec.TotalWork),
			})
		}
		return rows, nil
	}

	aggregated := Aggregate(filtered, state.Granularity)
	rows := make([][]string, 0, len(aggregated)+1)
	rows = append(rows, []string{"period", "collaborator", "first_arrival", "last_departure", "pauses_count", "average_pause", "total_work"})
	for _, rec := range aggregated {
		lastDeparture := ""
		if rec.LastDeparture != nil {
			lastDeparture = rec.LastDeparture.UTC().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			rec.PeriodLabel,
			rec.UserName,
			rec.FirstArrival.UTC().Format("2006-01-02 15:04"),
			lastDeparture,
			fmt.Sprintf("%d", rec.PausesCount),
			formatWorkDuration(rec.AveragePause),
			formatWorkDuration(rec.TotalWork),
		})
	}
	return rows, nil
}

// formatWorkDuration renders a duration as "H:MM".
func formatWorkDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
