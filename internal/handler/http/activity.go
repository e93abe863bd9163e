package http

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/activity"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/handler/http/middleware"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/handler/http/response"
)

type ActivityHandler interface {
	GetAggregated(w http.ResponseWriter, r *http.Request)
	GetPage(w http.ResponseWriter, r *http.Request)
	GetMyActivity(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type activityHandlerImpl struct {
	activityService activity.ActivityService
}

func NewActivityHandler(activityService activity.ActivityService) ActivityHandler {
	return &activityHandlerImpl{
		activityService: activityService,
	}
}

// GetAggregated implements ActivityHandler. Whole-dataset rollup at one
// granularity, no focus or pagination.
func (h *activityHandlerImpl) GetAggregated(w http.ResponseWriter, r *http.Request) {
	g := activity.Granularity(r.URL.Query().Get("granularity"))

	records, err := h.activityService.GetAggregated(r.Context(), g)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]activity.AggregatedRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, activity.MapAggregatedToResponse(rec))
	}

	response.Success(w, responses)
}

// GetPage implements ActivityHandler. The full navigator state travels
// in the query string, so every view is addressable by deep link.
func (h *activityHandlerImpl) GetPage(w http.ResponseWriter, r *http.Request) {
	state, err := activity.ParseViewState(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.activityService.GetPage(r.Context(), state)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, page, &response.Meta{
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalCount,
		TotalPages: page.TotalPages,
	})
}

// GetMyActivity implements ActivityHandler. Same navigator, pinned to
// the authenticated user.
func (h *activityHandlerImpl) GetMyActivity(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	state, err := activity.ParseViewState(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	state.CollaboratorID = &userID

	page, err := h.activityService.GetPage(r.Context(), state)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, page, &response.Meta{
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalCount,
		TotalPages: page.TotalPages,
	})
}

// Export implements ActivityHandler. Streams the whole filtered view as
// CSV, not just the visible page.
func (h *activityHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	state, err := activity.ParseViewState(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.activityService.ExportRows(r.Context(), state)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("activity-%s-%s.csv", state.Granularity, time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(rows); err != nil {
		slog.Error("Export write error", "error", err)
	}
}
