package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "subpix/internal/errors"
	"subpix/internal/license"
	"subpix/internal/services"
)

// LicenseHandler handles license routes.
type LicenseHandler struct {
	service services.LicenseService
	logger  *slog.Logger
}

// NewLicenseHandler creates a new license handler.
func NewLicenseHandler(service services.LicenseService, logger *slog.Logger) *LicenseHandler {
	return &LicenseHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "license")),
	}
}

// ActivationRequest is the license activation payload.
type ActivationRequest struct {
	Key string `json:"key" validate:"required,min=4"`
}

// Bind implements render.Binder.
func (req *ActivationRequest) Bind(r *http.Request) error {
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}
	return nil
}

// ActivationResponse is returned on successful activation.
type ActivationResponse struct {
	Success   bool               `json:"success"`
	Status    license.StatusInfo `json:"status"`
	Timestamp time.Time          `json:"timestamp"`
}

// Routes returns the chi router for license endpoints.
func (h *LicenseHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/status", h.GetStatus)
	r.Post("/activate", h.Activate)
	return r
}

// GetStatus handles GET /api/license/status.
func (h *LicenseHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.GetStatus(r.Context()))
}

// Activate handles POST /api/license/activate.
func (h *LicenseHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req ActivationRequest
	if err := render.Bind(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	outcome, status, err := h.service.Activate(r.Context(), req.Key)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "activation failed",
			slog.String("error", err.Error()),
		)
		render.Render(w, r, apierrors.ErrInternalServer)
		return
	}

	switch outcome {
	case license.OutcomeInvalid:
		render.Render(w, r, apierrors.LicenseInvalidKey())
	case license.OutcomeDuplicate:
		render.Render(w, r, apierrors.LicenseDuplicateKey())
	default:
		render.JSON(w, r, ActivationResponse{
			Success:   true,
			Status:    status,
			Timestamp: time.Now(),
		})
	}
}
