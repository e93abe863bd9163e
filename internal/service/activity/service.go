package activity

import (
	"context"
	"fmt"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/activity"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/event"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/user"
)

// ActivityServiceImpl reads an in-memory snapshot of the event log and
// runs the pure build/filter/aggregate pipeline over it on every call.
// It holds no state between calls.
type ActivityServiceImpl struct {
	event.EventRepository
	user.UserRepository
}

func NewActivityService(
	eventRepo event.EventRepository,
	userRepo user.UserRepository,
) activity.ActivityService {
	return &ActivityServiceImpl{
		EventRepository: eventRepo,
		UserRepository:  userRepo,
	}
}

// loadDaily snapshots the event log (optionally pre-restricted to one
// collaborator) and folds it into daily records.
func (s *ActivityServiceImpl) loadDaily(ctx context.Context, collaboratorID *string) ([]activity.DailyRecord, error) {
	events, err := s.EventRepository.List(ctx, event.Filter{UserID: collaboratorID})
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	return BuildDailyRecords(events, names), nil
}

// GetAggregated implements activity.ActivityService.
func (s *ActivityServiceImpl) GetAggregated(ctx context.Context, g activity.Granularity) ([]activity.AggregatedRecord, error) {
	if !g.Valid() || g == activity.GranularityDay {
		return nil, activity.ErrInvalidGranularity
	}

	records, err := s.loadDaily(ctx, nil)
	if err != nil {
		return nil, err
	}

	return Aggregate(records, g), nil
}

// GetFiltered implements activity.ActivityService.
func (s *ActivityServiceImpl) GetFiltered(ctx context.Context, state activity.ViewState) ([]activity.DailyRecord, error) {
	if !state.Granularity.Valid() {
		return nil, activity.ErrInvalidGranularity
	}

	records, err := s.loadDaily(ctx, state.CollaboratorID)
	if err != nil {
		return nil, err
	}

	return FilterDaily(records, state), nil
}

// GetPage implements activity.ActivityService.
func (s *ActivityServiceImpl) GetPage(ctx context.Context, state activity.ViewState) (activity.PageResponse, error) {
	filtered, err := s.GetFiltered(ctx, state)
	if err != nil {
		return activity.PageResponse{}, err
	}

	resp := activity.PageResponse{
		Granularity:    string(state.Granularity),
		Focus:          state.Focus,
		CollaboratorID: state.CollaboratorID,
	}

	if state.Granularity == activity.GranularityDay {
		total := len(filtered)
		state = state.ClampPage(total)
		start, end := pageBounds(state, total)

		days := make([]activity.DailyRecordResponse, 0, end-start)
		for _, rec := range filtered[start:end] {
			days = append(days, activity.MapDailyToResponse(rec))
		}

		resp.TotalCount = total
		resp.Days = days
	} else {
		aggregated := Aggregate(filtered, state.Granularity)
		total := len(aggregated)
		state = state.ClampPage(total)
		start, end := pageBounds(state, total)

		periods := make([]activity.AggregatedRecordResponse, 0, end-start)
		for _, rec := range aggregated[start:end] {
			periods = append(periods, activity.MapAggregatedToResponse(rec))
		}

		resp.TotalCount = total
		resp.Periods = periods
	}

	resp.Page = state.Page
	resp.PageSize = state.PageSize
	resp.TotalPages = activity.TotalPages(resp.TotalCount, state.PageSize)

	return resp, nil
}
