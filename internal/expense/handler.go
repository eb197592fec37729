package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/satishccy/splitrix/internal/ledger"
	"github.com/satishccy/splitrix/internal/money"
	"github.com/satishccy/splitrix/internal/split"
	"github.com/satishccy/splitrix/pkg/middleware"
	"github.com/satishccy/splitrix/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Post("/preview", h.Preview)

	return r
}

// isRequestError reports whether the failure was caused by the client's
// input rather than by this service.
func isRequestError(err error) bool {
	return errors.Is(err, money.ErrInvalidAmount) ||
		errors.Is(err, split.ErrNoValidWeights) ||
		errors.Is(err, split.ErrInvalidSplitSum) ||
		errors.Is(err, split.ErrNoDebtors) ||
		errors.Is(err, split.ErrNegativeAmount) ||
		errors.Is(err, split.ErrAmountTooLarge) ||
		errors.Is(err, split.ErrLengthMismatch) ||
		errors.Is(err, ledger.ErrEmptyMemo) ||
		errors.Is(err, ledger.ErrInvalidGroupID) ||
		errors.Is(err, ledger.ErrNonPositive)
}

// Preview handles POST /expenses/preview
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	preview, err := h.service.Preview(&req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, preview)
}

// Create handles POST /expenses
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetViewer(r.Context())
	if !ok {
		response.Unauthorized(w, "Viewer address required")
		return
	}

	var req ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	submission, err := h.service.BuildPayload(r.Context(), viewer, &req)
	if err != nil {
		if isRequestError(err) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to build payload")
		return
	}

	response.JSON(w, http.StatusCreated, submission)
}
