package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	apierrors "subpix/internal/errors"
	"subpix/internal/services"
)

// DashboardHandler serves the dashboard summary and spreadsheet reports.
type DashboardHandler struct {
	service services.BillingService
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service services.BillingService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "dashboard")),
	}
}

// Summary handles GET /api/dashboard.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Summary(r.Context()))
}

// PaymentsReport handles GET /api/reports/payments.xlsx.
func (h *DashboardHandler) PaymentsReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="pagamentos.xlsx"`)

	if err := h.service.ExportPayments(r.Context(), w); err != nil {
		// Headers are already out; log and give up on the body.
		h.logger.ErrorContext(r.Context(), "payments report failed",
			slog.String("error", err.Error()),
		)
		render.Render(w, r, apierrors.ErrInternalServer)
	}
}
