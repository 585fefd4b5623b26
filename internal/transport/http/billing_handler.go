package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"subpix/internal/billing"
	apierrors "subpix/internal/errors"
	"subpix/internal/services"
)

// BillingHandler handles client, plan, payment and payable routes.
type BillingHandler struct {
	service services.BillingService
	logger  *slog.Logger
}

// NewBillingHandler creates a new billing handler.
func NewBillingHandler(service services.BillingService, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "billing")),
	}
}

// ClientRoutes returns the chi router for client endpoints.
func (h *BillingHandler) ClientRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListClients)
	r.Post("/", h.CreateClient)
	r.Put("/{id}", h.UpdateClient)
	r.Delete("/{id}", h.DeleteClient)
	return r
}

// PlanRoutes returns the chi router for plan endpoints.
func (h *BillingHandler) PlanRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPlans)
	r.Post("/", h.CreatePlan)
	r.Delete("/{id}", h.DeletePlan)
	return r
}

// PaymentRoutes returns the chi router for payment endpoints.
func (h *BillingHandler) PaymentRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPayments)
	r.Post("/", h.RegisterPayment)
	return r
}

// PayableRoutes returns the chi router for payable endpoints.
func (h *BillingHandler) PayableRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPayables)
	r.Post("/", h.CreatePayable)
	r.Post("/{id}/pay", h.MarkPayablePaid)
	return r
}

// domainError maps billing sentinel errors onto the API envelope.
func (h *BillingHandler) domainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, billing.ErrClientNotFound):
		render.Render(w, r, apierrors.NotFoundError("client"))
	case errors.Is(err, billing.ErrPlanNotFound):
		render.Render(w, r, apierrors.NotFoundError("plan"))
	case errors.Is(err, billing.ErrPayableNotFound):
		render.Render(w, r, apierrors.NotFoundError("payable"))
	case errors.Is(err, billing.ErrPlanInUse):
		render.Render(w, r, apierrors.NewWithDetails(http.StatusConflict, "PLAN_IN_USE",
			"Plan is referenced by clients", err.Error()))
	default:
		h.logger.ErrorContext(r.Context(), "billing operation failed",
			slog.String("error", err.Error()),
		)
		render.Render(w, r, apierrors.ErrInternalServer)
	}
}

// --- Plans ---

// PlanRequest is the plan creation payload.
type PlanRequest struct {
	Name         string          `json:"name" validate:"required"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"duration_days" validate:"required,gt=0"`
}

// Bind implements render.Binder.
func (req *PlanRequest) Bind(r *http.Request) error {
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}
	if req.Price.IsNegative() {
		return apierrors.ErrValidation("price", "must be non-negative")
	}
	return nil
}

// ListPlans handles GET /api/plans.
func (h *BillingHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Plans(r.Context()))
}

// CreatePlan handles POST /api/plans.
func (h *BillingHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := render.Bind(r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	plan, err := h.service.AddPlan(r.Context(), req.Name, req.Price, req.DurationDays)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, plan)
}

// DeletePlan handles DELETE /api/plans/{id}.
func (h *BillingHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, apiErr := urlUUID(r)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}
	if err := h.service.DeletePlan(r.Context(), id); err != nil {
		h.domainError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// --- Clients ---

// ClientRequest is the client create/update payload.
type ClientRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	PlanID  string `json:"plan_id" validate:"required,uuid"`
	DueDate string `json:"due_date" validate:"required"`
	Notes   string `json:"notes"`

	planID  uuid.UUID
	dueDate billing.Date
}

// Bind implements render.Binder, parsing the plan id and due date.
func (req *ClientRequest) Bind(r *http.Request) error {
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}
	var err error
	if req.planID, err = uuid.Parse(req.PlanID); err != nil {
		return apierrors.ErrValidation("plan_id", "must be a UUID")
	}
	if req.dueDate, err = billing.ParseDate(req.DueDate); err != nil {
		return apierrors.ErrValidation("due_date", "must be YYYY-MM-DD")
	}
	return nil
}

// ListClients handles GET /api/clients.
func (h *BillingHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Clients(r.Context()))
}

// CreateClient handles POST /api/clients.
func (h *BillingHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := render.Bind(r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	client, err := h.service.AddClient(r.Context(), req.Name, req.Phone, req.planID, req.dueDate, req.Notes)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, client)
}

// UpdateClient handles PUT /api/clients/{id}.
func (h *BillingHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, apiErr := urlUUID(r)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}
	var req ClientRequest
	if err := render.Bind(r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	client, err := h.service.UpdateClient(r.Context(), id, req.Name, req.Phone, req.planID, req.dueDate, req.Notes)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	render.JSON(w, r, client)
}

// DeleteClient handles DELETE /api/clients/{id}.
func (h *BillingHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, apiErr := urlUUID(r)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}
	if err := h.service.DeleteClient(r.Context(), id); err != nil {
		h.domainError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// --- Payments ---

// PaymentRequest is the payment registration payload.
type PaymentRequest struct {
	ClientID string          `json:"client_id" validate:"required,uuid"`
	Amount   decimal.Decimal `json:"amount"`
	PaidOn   string          `json:"paid_on" validate:"required"`
	Method   string          `json:"method"`

	clientID uuid.UUID
	paidOn   billing.Date
}

// Bind implements render.Binder.
func (req *PaymentRequest) Bind(r *http.Request) error {
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}
	if !req.Amount.IsPositive() {
		return apierrors.ErrValidation("amount", "must be positive")
	}
	var err error
	if req.clientID, err = uuid.Parse(req.ClientID); err != nil {
		return apierrors.ErrValidation("client_id", "must be a UUID")
	}
	if req.paidOn, err = billing.ParseDate(req.PaidOn); err != nil {
		return apierrors.ErrValidation("paid_on", "must be YYYY-MM-DD")
	}
	return nil
}

// ListPayments handles GET /api/payments.
func (h *BillingHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Payments(r.Context()))
}

// RegisterPayment handles POST /api/payments.
func (h *BillingHandler) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := render.Bind(r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	payment, err := h.service.RegisterPayment(r.Context(), req.clientID, req.Amount, req.paidOn, req.Method)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, payment)
}

// --- Payables ---

// PayableRequest is the payable creation payload.
type PayableRequest struct {
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date" validate:"required"`

	dueDate billing.Date
}

// Bind implements render.Binder.
func (req *PayableRequest) Bind(r *http.Request) error {
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}
	if !req.Amount.IsPositive() {
		return apierrors.ErrValidation("amount", "must be positive")
	}
	var err error
	if req.dueDate, err = billing.ParseDate(req.DueDate); err != nil {
		return apierrors.ErrValidation("due_date", "must be YYYY-MM-DD")
	}
	return nil
}

// ListPayables handles GET /api/payables.
func (h *BillingHandler) ListPayables(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Payables(r.Context()))
}

// CreatePayable handles POST /api/payables.
func (h *BillingHandler) CreatePayable(w http.ResponseWriter, r *http.Request) {
	var req PayableRequest
	if err := render.Bind(r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	payable, err := h.service.AddPayable(r.Context(), req.Description, req.Amount, req.dueDate)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, payable)
}

// MarkPayablePaid handles POST /api/payables/{id}/pay.
func (h *BillingHandler) MarkPayablePaid(w http.ResponseWriter, r *http.Request) {
	id, apiErr := urlUUID(r)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}
	payable, err := h.service.MarkPayablePaid(r.Context(), id)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	render.JSON(w, r, payable)
}
