package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apierrors "subpix/internal/errors"
	"subpix/internal/services"
)

// ChargeHandler builds Pix charges.
type ChargeHandler struct {
	charges services.ChargeService
	billing services.BillingService
	logger  *slog.Logger
}

// NewChargeHandler creates a new charge handler.
func NewChargeHandler(charges services.ChargeService, billing services.BillingService, logger *slog.Logger) *ChargeHandler {
	return &ChargeHandler{
		charges: charges,
		billing: billing,
		logger:  logger.With(slog.String("handler", "charge")),
	}
}

// ChargeRequest asks for a charge either for a known client (plan price, due
// date and WhatsApp link included) or ad hoc for an arbitrary amount.
type ChargeRequest struct {
	ClientID string          `json:"client_id,omitempty" validate:"omitempty,uuid"`
	Amount   decimal.Decimal `json:"amount,omitempty"`
	TxID     string          `json:"tx_id,omitempty" validate:"omitempty,max=25"`

	clientID uuid.UUID
}

// Bind implements render.Binder.
func (req *ChargeRequest) Bind(r *http.Request) error {
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}
	if req.ClientID == "" && !req.Amount.IsPositive() {
		return apierrors.ErrValidation("amount", "must be positive for ad-hoc charges")
	}
	if req.ClientID != "" {
		var err error
		if req.clientID, err = uuid.Parse(req.ClientID); err != nil {
			return apierrors.ErrValidation("client_id", "must be a UUID")
		}
	}
	return nil
}

// Routes returns the chi router for charge endpoints.
func (h *ChargeHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	return r
}

// Create handles POST /api/charges.
func (h *ChargeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ChargeRequest
	if err := render.Bind(r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	ctx := r.Context()

	if req.ClientID == "" {
		render.JSON(w, r, h.charges.AdHocCharge(ctx, req.Amount, req.TxID))
		return
	}

	client, err := h.billing.ClientByID(ctx, req.clientID)
	if err != nil {
		render.Render(w, r, apierrors.NotFoundError("client"))
		return
	}
	plan, err := h.billing.PlanForClient(ctx, client)
	if err != nil {
		render.Render(w, r, apierrors.NotFoundError("plan"))
		return
	}
	render.JSON(w, r, h.charges.ChargeForClient(ctx, client, plan))
}
