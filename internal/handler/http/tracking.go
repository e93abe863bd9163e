package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/event"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/handler/http/middleware"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/handler/http/response"
)

type TrackingHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	Pause(w http.ResponseWriter, r *http.Request)
	PauseStatus(w http.ResponseWriter, r *http.Request)
	PauseReturn(w http.ResponseWriter, r *http.Request)
	Checkout(w http.ResponseWriter, r *http.Request)
}

type trackingHandlerImpl struct {
	trackingService event.TrackingService
}

func NewTrackingHandler(trackingService event.TrackingService) TrackingHandler {
	return &trackingHandlerImpl{
		trackingService: trackingService,
	}
}

// CheckIn implements TrackingHandler.
func (h *trackingHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req event.CheckInRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.trackingService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := event.MapActionToResponse(result)
	if result.IsDuplicate {
		response.SuccessWithMessage(w, result.Message, resp)
		return
	}
	response.Created(w, result.Message, resp)
}

// Pause implements TrackingHandler. Scanning the pause point while on a
// break ends the break instead of stacking a second one.
func (h *trackingHandlerImpl) Pause(w http.ResponseWriter, r *http.Request) {
	h.handlePause(w, r, event.PauseModeNormal, true)
}

// PauseStatus implements TrackingHandler. Read-only, never writes an
// event.
func (h *trackingHandlerImpl) PauseStatus(w http.ResponseWriter, r *http.Request) {
	h.handlePause(w, r, event.PauseModeQueryOnly, false)
}

// PauseReturn implements TrackingHandler. Explicit end-of-break action,
// rejected when no break is open.
func (h *trackingHandlerImpl) PauseReturn(w http.ResponseWriter, r *http.Request) {
	h.handlePause(w, r, event.PauseModeExplicitReturn, false)
}

func (h *trackingHandlerImpl) handlePause(w http.ResponseWriter, r *http.Request, mode event.PauseMode, withBody bool) {
	userID, err := middleware.UserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req event.PauseRequest
	if withBody {
		if err := decodeOptionalBody(r, &req); err != nil {
			slog.Error("Pause decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.UserID = userID
	req.Mode = mode

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.trackingService.Pause(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := event.MapActionToResponse(result)
	if mode == event.PauseModeQueryOnly || result.IsDuplicate {
		response.SuccessWithMessage(w, result.Message, resp)
		return
	}
	response.Created(w, result.Message, resp)
}

// Checkout implements TrackingHandler.
func (h *trackingHandlerImpl) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req event.CheckoutRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		slog.Error("Checkout decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.trackingService.Checkout(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result.Message, event.MapActionToResponse(result))
}

// decodeOptionalBody decodes a JSON body into dst, treating an empty
// body as an empty request. Badge terminals post without a payload.
func decodeOptionalBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == io.EOF {
		return nil
	}
	return err
}
