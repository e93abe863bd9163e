package activity

import (
	"net/url"
	"strconv"
	"time"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/pkg/validator"
)

// ========================================
// ACTIVITY DTOs
// ========================================

type PauseSpanResponse struct {
	StartedAt  string  `json:"started_at"`
	EndedAt    *string `json:"ended_at,omitempty"`
	Reason     *string `json:"reason,omitempty"`
	DurationMs int64   `json:"duration_ms"`
}

type DailyRecordResponse struct {
	UserID      string              `json:"user_id"`
	UserName    string              `json:"user_name"`
	Date        string              `json:"date"`
	CheckInAt   string              `json:"check_in_at"`
	CheckOutAt  *string             `json:"check_out_at,omitempty"`
	Pauses      []PauseSpanResponse `json:"pauses"`
	TotalWorkMs int64               `json:"total_work_ms"`
}

type AggregatedRecordResponse struct {
	UserID         string  `json:"user_id"`
	UserName       string  `json:"user_name"`
	GroupKey       string  `json:"group_key"`
	PeriodKey      string  `json:"period_key"`
	PeriodLabel    string  `json:"period_label"`
	FirstArrival   string  `json:"first_arrival"`
	LastDeparture  *string `json:"last_departure,omitempty"`
	PausesCount    int     `json:"pauses_count"`
	AveragePauseMs int64   `json:"average_pause_ms"`
	TotalWorkMs    int64   `json:"total_work_ms"`
	IsAggregated   bool    `json:"is_aggregated"`
}

// PageResponse is one page of the navigator view. Days is populated at
// day granularity, Periods at every other level; callers branch on
// Granularity.
type PageResponse struct {
	Granularity    string                     `json:"granularity"`
	Focus          *PeriodFocus               `json:"focus,omitempty"`
	CollaboratorID *string                    `json:"collaborator_id,omitempty"`
	TotalCount     int                        `json:"total_count"`
	Page           int                        `json:"page"`
	PageSize       int                        `json:"page_size"`
	TotalPages     int                        `json:"total_pages"`
	Days           []DailyRecordResponse      `json:"days,omitempty"`
	Periods        []AggregatedRecordResponse `json:"periods,omitempty"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// MapDailyToResponse converts a DailyRecord to its wire shape.
func MapDailyToResponse(rec DailyRecord) DailyRecordResponse {
	pauses := make([]PauseSpanResponse, 0, len(rec.Pauses))
	for _, p := range rec.Pauses {
		pauses = append(pauses, PauseSpanResponse{
			StartedAt:  formatTime(p.StartedAt),
			EndedAt:    formatTimePtr(p.EndedAt),
			Reason:     p.Reason,
			DurationMs: p.Duration().Milliseconds(),
		})
	}
	return DailyRecordResponse{
		UserID:      rec.UserID,
		UserName:    rec.UserName,
		Date:        rec.Date.Format("2006-01-02"),
		CheckInAt:   formatTime(rec.CheckInAt),
		CheckOutAt:  formatTimePtr(rec.CheckOutAt),
		Pauses:      pauses,
		TotalWorkMs: rec.TotalWork.Milliseconds(),
	}
}

// MapAggregatedToResponse converts an AggregatedRecord to its wire shape.
func MapAggregatedToResponse(rec AggregatedRecord) AggregatedRecordResponse {
	return AggregatedRecordResponse{
		UserID:         rec.UserID,
		UserName:       rec.UserName,
		GroupKey:       rec.GroupKey,
		PeriodKey:      rec.PeriodKey,
		PeriodLabel:    rec.PeriodLabel,
		FirstArrival:   formatTime(rec.FirstArrival),
		LastDeparture:  formatTimePtr(rec.LastDeparture),
		PausesCount:    rec.PausesCount,
		AveragePauseMs: rec.AveragePause.Milliseconds(),
		TotalWorkMs:    rec.TotalWork.Milliseconds(),
		IsAggregated:   rec.IsAggregated,
	}
}

// ========================================
// VIEW STATE CODEC
// ========================================

// ParseViewState decodes a ViewState from URL query parameters, so a
// navigator view is addressable by deep link.
func ParseViewState(q url.Values) (ViewState, error) {
	var errs validator.ValidationErrors

	state := NewViewState()

	if g := q.Get("granularity"); g != "" {
		state.Granularity = Granularity(g)
		if !state.Granularity.Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "granularity",
				Message: "granularity must be one of: day, week, month, year",
			})
		}
	}

	focusType := q.Get("focus_type")
	focusValue := q.Get("focus_value")
	if (focusType == "") != (focusValue == "") {
		errs = append(errs, validator.ValidationError{
			Field:   "focus",
			Message: "focus_type and focus_value must be provided together",
		})
	}
	if focusType != "" && focusValue != "" {
		ft := Granularity(focusType)
		valid := false
		switch ft {
		case GranularityWeek:
			_, valid = validator.IsValidDate(focusValue)
		case GranularityMonth:
			_, valid = validator.IsValidMonth(focusValue)
		case GranularityYear:
			_, valid = validator.IsValidYear(focusValue)
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "focus_type",
				Message: "focus_type must be one of: week, month, year",
			})
			valid = true
		}
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "focus_value",
				Message: "focus_value does not match focus_type format",
			})
		}
		state.Focus = &PeriodFocus{Type: ft, Value: focusValue}
	}

	if c := q.Get("collaborator_id"); c != "" {
		state.CollaboratorID = &c
	}

	if p := q.Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil || page < 1 {
			errs = append(errs, validator.ValidationError{
				Field:   "page",
				Message: "page must be a positive number",
			})
		} else {
			state.Page = page
		}
	}

	if ps := q.Get("page_size"); ps != "" {
		pageSize, err := strconv.Atoi(ps)
		if err != nil || pageSize < 1 {
			errs = append(errs, validator.ValidationError{
				Field:   "page_size",
				Message: "page_size must be a positive number",
			})
		} else if pageSize > 100 {
			errs = append(errs, validator.ValidationError{
				Field:   "page_size",
				Message: "page_size must not exceed 100",
			})
		} else {
			state.PageSize = pageSize
		}
	}

	if len(errs) > 0 {
		return ViewState{}, errs
	}

	return state, nil
}

// Values encodes the state back into URL query parameters.
func (s ViewState) Values() url.Values {
	q := url.Values{}
	q.Set("granularity", string(s.Granularity))
	if s.Focus != nil {
		q.Set("focus_type", string(s.Focus.Type))
		q.Set("focus_value", s.Focus.Value)
	}
	if s.CollaboratorID != nil {
		q.Set("collaborator_id", *s.CollaboratorID)
	}
	q.Set("page", strconv.Itoa(s.Page))
	q.Set("page_size", strconv.Itoa(s.PageSize))
	return q
}
