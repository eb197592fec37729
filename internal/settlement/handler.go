package settlement

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/satishccy/splitrix/internal/balance"
	"github.com/satishccy/splitrix/internal/ledger"
	"github.com/satishccy/splitrix/pkg/middleware"
	"github.com/satishccy/splitrix/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)

	return r
}

// Create handles POST /settlements
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetViewer(r.Context())
	if !ok {
		response.Unauthorized(w, "Viewer address required")
		return
	}

	var req SettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	proposal, err := h.service.Propose(r.Context(), viewer, &req)
	if err != nil {
		switch {
		case errors.Is(err, balance.ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNothingToSettle),
			errors.Is(err, ledger.ErrMissingCreditor),
			errors.Is(err, ledger.ErrInvalidGroupID):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to build settlement")
		}
		return
	}

	response.JSON(w, http.StatusCreated, proposal)
}
