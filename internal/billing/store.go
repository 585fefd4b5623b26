package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sentinel errors for lookups and referential checks.
var (
	ErrClientNotFound  = errors.New("client not found")
	ErrPlanNotFound    = errors.New("plan not found")
	ErrPayableNotFound = errors.New("payable not found")
	ErrPlanInUse       = errors.New("plan is referenced by clients")
)

// SnapshotStore abstracts persistence of the billing graph. The production
// implementation writes the shared application document.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context) (Snapshot, error)
	SaveSnapshot(ctx context.Context, snap Snapshot) error
}

// Store owns the in-memory billing graph. All mutations run under one mutex
// and persist the full snapshot before returning, so the persisted document
// is never ahead of or behind the memory state.
type Store struct {
	mu     sync.Mutex
	store  SnapshotStore
	logger *slog.Logger
	now    func() time.Time
	snap   Snapshot
}

// NewStore loads the persisted snapshot and returns the store that owns it.
func NewStore(ctx context.Context, store SnapshotStore, logger *slog.Logger) (*Store, error) {
	return newStore(ctx, store, logger, time.Now)
}

func newStore(ctx context.Context, store SnapshotStore, logger *slog.Logger, now func() time.Time) (*Store, error) {
	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load billing snapshot: %w", err)
	}
	s := &Store{
		store:  store,
		logger: logger.With(slog.String("component", "billing")),
		now:    now,
		snap:   snap,
	}
	s.logger.InfoContext(ctx, "billing snapshot loaded",
		slog.Int("clients", len(snap.Clients)),
		slog.Int("plans", len(snap.Plans)),
		slog.Int("payments", len(snap.Payments)),
	)
	return s, nil
}

func (s *Store) persist(ctx context.Context) error {
	if err := s.store.SaveSnapshot(ctx, s.snap); err != nil {
		return fmt.Errorf("save billing snapshot: %w", err)
	}
	return nil
}

// --- Plans ---

// AddPlan registers a new plan and returns it with an assigned ID.
func (s *Store) AddPlan(ctx context.Context, name string, price decimal.Decimal, durationDays int) (Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan := Plan{ID: uuid.New(), Name: name, Price: price, DurationDays: durationDays}
	s.snap.Plans = append(s.snap.Plans, plan)
	if err := s.persist(ctx); err != nil {
		s.snap.Plans = s.snap.Plans[:len(s.snap.Plans)-1]
		return Plan{}, err
	}
	return plan, nil
}

// Plans returns a copy of all plans.
func (s *Store) Plans(ctx context.Context) []Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Plan, len(s.snap.Plans))
	copy(out, s.snap.Plans)
	return out
}

// PlanByID looks up a plan.
func (s *Store) PlanByID(ctx context.Context, id uuid.UUID) (Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.planByID(id)
}

func (s *Store) planByID(id uuid.UUID) (Plan, error) {
	for _, p := range s.snap.Plans {
		if p.ID == id {
			return p, nil
		}
	}
	return Plan{}, ErrPlanNotFound
}

// DeletePlan removes a plan not referenced by any client.
func (s *Store) DeletePlan(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.snap.Clients {
		if c.PlanID == id {
			return ErrPlanInUse
		}
	}
	for i, p := range s.snap.Plans {
		if p.ID == id {
			before := s.snap.Plans
			s.snap.Plans = append(append([]Plan{}, before[:i]...), before[i+1:]...)
			if err := s.persist(ctx); err != nil {
				s.snap.Plans = before
				return err
			}
			return nil
		}
	}
	return ErrPlanNotFound
}

// --- Clients ---

// AddClient registers a new subscriber on an existing plan.
func (s *Store) AddClient(ctx context.Context, name, phone string, planID uuid.UUID, dueDate Date, notes string) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.planByID(planID); err != nil {
		return Client{}, err
	}
	client := Client{
		ID:        uuid.New(),
		Name:      name,
		Phone:     phone,
		PlanID:    planID,
		DueDate:   dueDate,
		Notes:     notes,
		CreatedAt: s.now(),
	}
	s.snap.Clients = append(s.snap.Clients, client)
	if err := s.persist(ctx); err != nil {
		s.snap.Clients = s.snap.Clients[:len(s.snap.Clients)-1]
		return Client{}, err
	}
	s.logger.InfoContext(ctx, "client added", slog.String("client_id", client.ID.String()))
	return client, nil
}

// Clients returns a copy of all clients.
func (s *Store) Clients(ctx context.Context) []Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Client, len(s.snap.Clients))
	copy(out, s.snap.Clients)
	return out
}

// ClientByID looks up a client.
func (s *Store) ClientByID(ctx context.Context, id uuid.UUID) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientByID(id)
}

func (s *Store) clientByID(id uuid.UUID) (Client, error) {
	for _, c := range s.snap.Clients {
		if c.ID == id {
			return c, nil
		}
	}
	return Client{}, ErrClientNotFound
}

// UpdateClient replaces the mutable fields of an existing client.
func (s *Store) UpdateClient(ctx context.Context, id uuid.UUID, name, phone string, planID uuid.UUID, dueDate Date, notes string) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.planByID(planID); err != nil {
		return Client{}, err
	}
	for i, c := range s.snap.Clients {
		if c.ID == id {
			before := c
			c.Name, c.Phone, c.PlanID, c.DueDate, c.Notes = name, phone, planID, dueDate, notes
			s.snap.Clients[i] = c
			if err := s.persist(ctx); err != nil {
				s.snap.Clients[i] = before
				return Client{}, err
			}
			return c, nil
		}
	}
	return Client{}, ErrClientNotFound
}

// DeleteClient removes a client. Its payment history is kept for reporting.
func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.snap.Clients {
		if c.ID == id {
			before := s.snap.Clients
			s.snap.Clients = append(append([]Client{}, before[:i]...), before[i+1:]...)
			if err := s.persist(ctx); err != nil {
				s.snap.Clients = before
				return err
			}
			return nil
		}
	}
	return ErrClientNotFound
}

// --- Payments ---

// RegisterPayment records a payment and advances the client's due date by one
// plan cycle. When the current due date is still ahead of the payment date
// the cycle stacks on top of it; a late payment restarts the cycle from the
// payment date instead of the stale due date.
func (s *Store) RegisterPayment(ctx context.Context, clientID uuid.UUID, amount decimal.Decimal, paidOn Date, method string) (Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.clientByID(clientID)
	if err != nil {
		return Payment{}, err
	}
	plan, err := s.planByID(client.PlanID)
	if err != nil {
		return Payment{}, err
	}

	base := paidOn
	if client.DueDate.After(paidOn) {
		base = client.DueDate
	}
	newDue := base.AddDays(plan.DurationDays)

	payment := Payment{
		ID:        uuid.New(),
		ClientID:  clientID,
		Amount:    amount,
		PaidOn:    paidOn,
		Method:    method,
		CreatedAt: s.now(),
	}

	beforePayments := s.snap.Payments
	s.snap.Payments = append(s.snap.Payments, payment)
	for i := range s.snap.Clients {
		if s.snap.Clients[i].ID == clientID {
			s.snap.Clients[i].DueDate = newDue
			break
		}
	}
	if err := s.persist(ctx); err != nil {
		s.snap.Payments = beforePayments
		for i := range s.snap.Clients {
			if s.snap.Clients[i].ID == clientID {
				s.snap.Clients[i].DueDate = client.DueDate
				break
			}
		}
		return Payment{}, err
	}

	s.logger.InfoContext(ctx, "payment registered",
		slog.String("client_id", clientID.String()),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("new_due_date", newDue.String()),
	)
	return payment, nil
}

// Payments returns a copy of all payments.
func (s *Store) Payments(ctx context.Context) []Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Payment, len(s.snap.Payments))
	copy(out, s.snap.Payments)
	return out
}

// --- Payables ---

// AddPayable registers an account payable.
func (s *Store) AddPayable(ctx context.Context, description string, amount decimal.Decimal, dueDate Date) (Payable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payable := Payable{ID: uuid.New(), Description: description, Amount: amount, DueDate: dueDate}
	s.snap.Payables = append(s.snap.Payables, payable)
	if err := s.persist(ctx); err != nil {
		s.snap.Payables = s.snap.Payables[:len(s.snap.Payables)-1]
		return Payable{}, err
	}
	return payable, nil
}

// MarkPayablePaid flips a payable to paid.
func (s *Store) MarkPayablePaid(ctx context.Context, id uuid.UUID) (Payable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.snap.Payables {
		if p.ID == id {
			before := p
			p.Paid = true
			s.snap.Payables[i] = p
			if err := s.persist(ctx); err != nil {
				s.snap.Payables[i] = before
				return Payable{}, err
			}
			return p, nil
		}
	}
	return Payable{}, ErrPayableNotFound
}

// Payables returns a copy of all payables.
func (s *Store) Payables(ctx context.Context) []Payable {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Payable, len(s.snap.Payables))
	copy(out, s.snap.Payables)
	return out
}
