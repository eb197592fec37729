package group

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/satishccy/splitrix/internal/balance"
	"github.com/satishccy/splitrix/internal/ledger"
	"github.com/satishccy/splitrix/pkg/middleware"
	"github.com/satishccy/splitrix/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for group endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/refresh", h.Refresh)
	r.Get("/{id}", h.GetByID)
	r.Get("/{id}/balances", h.Balances)
	r.Get("/{id}/bills/{billId}", h.BillStatus)
	r.Post("/{id}/refresh", h.RefreshGroup)

	return r
}

func groupID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id >= 0
}

// List handles GET /groups
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetViewer(r.Context())
	if !ok {
		response.Unauthorized(w, "Viewer address required")
		return
	}

	overviews, err := h.service.Overviews(r.Context(), viewer)
	if err != nil {
		response.InternalError(w, "Failed to load groups")
		return
	}

	response.JSON(w, http.StatusOK, overviews)
}

// GetByID handles GET /groups/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetViewer(r.Context())
	if !ok {
		response.Unauthorized(w, "Viewer address required")
		return
	}
	id, ok := groupID(r)
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	overview, err := h.service.Overview(r.Context(), viewer, id)
	if err != nil {
		if errors.Is(err, balance.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to load group")
		return
	}

	response.JSON(w, http.StatusOK, overview)
}

// Balances handles GET /groups/{id}/balances
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetViewer(r.Context())
	if !ok {
		response.Unauthorized(w, "Viewer address required")
		return
	}
	id, ok := groupID(r)
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	balances, err := h.service.Balances(r.Context(), viewer, id)
	if err != nil {
		if errors.Is(err, balance.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute balances")
		return
	}

	response.JSON(w, http.StatusOK, balances)
}

// BillStatus handles GET /groups/{id}/bills/{billId}
func (h *Handler) BillStatus(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetViewer(r.Context())
	if !ok {
		response.Unauthorized(w, "Viewer address required")
		return
	}
	id, ok := groupID(r)
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}
	billID, err := strconv.ParseInt(chi.URLParam(r, "billId"), 10, 64)
	if err != nil || billID < 0 {
		response.BadRequest(w, "Invalid bill ID")
		return
	}

	status, err := h.service.BillStatus(r.Context(), viewer, id, billID)
	if err != nil {
		if errors.Is(err, balance.ErrGroupNotFound) || errors.Is(err, balance.ErrBillNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to load bill status")
		return
	}

	response.JSON(w, http.StatusOK, status)
}

// Refresh handles POST /groups/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetViewer(r.Context())
	if !ok {
		response.Unauthorized(w, "Viewer address required")
		return
	}

	count, err := h.service.Refresh(r.Context(), viewer)
	if err != nil {
		response.BadGateway(w, "Failed to refresh from ledger")
		return
	}

	response.JSON(w, http.StatusOK, RefreshResponse{Viewer: viewer, Groups: count})
}

// RefreshGroup handles POST /groups/{id}/refresh
func (h *Handler) RefreshGroup(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetViewer(r.Context())
	if !ok {
		response.Unauthorized(w, "Viewer address required")
		return
	}
	id, ok := groupID(r)
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	if err := h.service.RefreshGroup(r.Context(), viewer, id); err != nil {
		if errors.Is(err, balance.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadGateway(w, "Failed to refresh from ledger")
		return
	}

	response.JSON(w, http.StatusOK, RefreshResponse{Viewer: viewer, Groups: 1})
}

// Create handles POST /groups
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetViewer(r.Context())
	if !ok {
		response.Unauthorized(w, "Viewer address required")
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	submission, err := h.service.CreatePayload(r.Context(), viewer, &req)
	if err != nil {
		if errors.Is(err, ledger.ErrNoMembers) || errors.Is(err, ledger.ErrEmptyAddress) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to build payload")
		return
	}

	response.JSON(w, http.StatusCreated, submission)
}
