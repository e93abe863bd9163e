package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/user"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AccountHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type accountHandlerImpl struct {
	accountService user.AccountService
}

func NewAccountHandler(accountService user.AccountService) AccountHandler {
	return &accountHandlerImpl{
		accountService: accountService,
	}
}

// List implements AccountHandler.
func (h *accountHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.accountService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// UpdateStatus implements AccountHandler.
func (h *accountHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.accountService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Account status updated", updated)
}
