package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"subpix/internal/billing"
	"subpix/internal/exporter"
	"subpix/internal/infrastructure"
)

// BillingService exposes the billing graph to the transport layer.
type BillingService interface {
	Plans(ctx context.Context) []billing.Plan
	AddPlan(ctx context.Context, name string, price decimal.Decimal, durationDays int) (billing.Plan, error)
	DeletePlan(ctx context.Context, id uuid.UUID) error

	Clients(ctx context.Context) []billing.Client
	ClientByID(ctx context.Context, id uuid.UUID) (billing.Client, error)
	AddClient(ctx context.Context, name, phone string, planID uuid.UUID, dueDate billing.Date, notes string) (billing.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, name, phone string, planID uuid.UUID, dueDate billing.Date, notes string) (billing.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error

	Payments(ctx context.Context) []billing.Payment
	RegisterPayment(ctx context.Context, clientID uuid.UUID, amount decimal.Decimal, paidOn billing.Date, method string) (billing.Payment, error)

	Payables(ctx context.Context) []billing.Payable
	AddPayable(ctx context.Context, description string, amount decimal.Decimal, dueDate billing.Date) (billing.Payable, error)
	MarkPayablePaid(ctx context.Context, id uuid.UUID) (billing.Payable, error)

	Summary(ctx context.Context) billing.Summary
	ExportPayments(ctx context.Context, w io.Writer) error

	// PlanForClient resolves the plan a client subscribes to, for charges.
	PlanForClient(ctx context.Context, client billing.Client) (billing.Plan, error)
}

type billingService struct {
	store  *billing.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewBillingService creates the billing service over the store.
func NewBillingService(store *billing.Store, logger *slog.Logger) BillingService {
	return &billingService{
		store:  store,
		logger: logger.With(slog.String("service", "billing")),
		now:    time.Now,
	}
}

func (s *billingService) Plans(ctx context.Context) []billing.Plan { return s.store.Plans(ctx) }

func (s *billingService) AddPlan(ctx context.Context, name string, price decimal.Decimal, durationDays int) (billing.Plan, error) {
	return s.store.AddPlan(ctx, name, price, durationDays)
}

func (s *billingService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	return s.store.DeletePlan(ctx, id)
}

func (s *billingService) Clients(ctx context.Context) []billing.Client { return s.store.Clients(ctx) }

func (s *billingService) ClientByID(ctx context.Context, id uuid.UUID) (billing.Client, error) {
	return s.store.ClientByID(ctx, id)
}

func (s *billingService) AddClient(ctx context.Context, name, phone string, planID uuid.UUID, dueDate billing.Date, notes string) (billing.Client, error) {
	return s.store.AddClient(ctx, name, phone, planID, dueDate, notes)
}

func (s *billingService) UpdateClient(ctx context.Context, id uuid.UUID, name, phone string, planID uuid.UUID, dueDate billing.Date, notes string) (billing.Client, error) {
	return s.store.UpdateClient(ctx, id, name, phone, planID, dueDate, notes)
}

func (s *billingService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteClient(ctx, id)
}

func (s *billingService) Payments(ctx context.Context) []billing.Payment {
	return s.store.Payments(ctx)
}

func (s *billingService) RegisterPayment(ctx context.Context, clientID uuid.UUID, amount decimal.Decimal, paidOn billing.Date, method string) (billing.Payment, error) {
	payment, err := s.store.RegisterPayment(ctx, clientID, amount, paidOn, method)
	if err == nil {
		infrastructure.PaymentsRegistered.Inc()
	}
	return payment, err
}

func (s *billingService) Payables(ctx context.Context) []billing.Payable {
	return s.store.Payables(ctx)
}

func (s *billingService) AddPayable(ctx context.Context, description string, amount decimal.Decimal, dueDate billing.Date) (billing.Payable, error) {
	return s.store.AddPayable(ctx, description, amount, dueDate)
}

func (s *billingService) MarkPayablePaid(ctx context.Context, id uuid.UUID) (billing.Payable, error) {
	return s.store.MarkPayablePaid(ctx, id)
}

func (s *billingService) Summary(ctx context.Context) billing.Summary {
	return s.store.Summarize(ctx, billing.DateOf(s.now()))
}

func (s *billingService) ExportPayments(ctx context.Context, w io.Writer) error {
	return exporter.PaymentsReport(w, s.store.Payments(ctx), s.store.Clients(ctx), s.store.Plans(ctx))
}

func (s *billingService) PlanForClient(ctx context.Context, client billing.Client) (billing.Plan, error) {
	return s.store.PlanByID(ctx, client.PlanID)
}
