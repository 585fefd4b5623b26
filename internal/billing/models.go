package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Plan is a subscription offering with a fixed price and cycle length.
type Plan struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"duration_days"`
}

// Client is a subscriber. DueDate is the next date a payment is expected;
// registering a payment advances it by the plan's cycle length.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	PlanID    uuid.UUID `json:"plan_id"`
	DueDate   Date      `json:"due_date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Payment records money received from a client.
type Payment struct {
	ID        uuid.UUID       `json:"id"`
	ClientID  uuid.UUID       `json:"client_id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidOn    Date            `json:"paid_on"`
	Method    string          `json:"method,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Payable is an account payable of the reseller (panel costs, servers, etc).
type Payable struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     Date            `json:"due_date"`
	Paid        bool            `json:"paid"`
}

// DueStatus classifies a client's due date relative to today.
type DueStatus string

const (
	DueStatusOK      DueStatus = "ok"
	DueStatusDueSoon DueStatus = "due_soon"
	DueStatusOverdue DueStatus = "overdue"
)

// dueSoonWindowDays is how many days ahead a due date counts as "due soon".
const dueSoonWindowDays = 3

// DueStatusAt classifies the client's due date against today.
func (c Client) DueStatusAt(today Date) DueStatus {
	switch {
	case c.DueDate.Before(today):
		return DueStatusOverdue
	case today.DaysUntil(c.DueDate) <= dueSoonWindowDays:
		return DueStatusDueSoon
	default:
		return DueStatusOK
	}
}

// Snapshot is the whole billing object graph, persisted verbatim.
type Snapshot struct {
	Clients  []Client  `json:"clients"`
	Plans    []Plan    `json:"plans"`
	Payments []Payment `json:"payments"`
	Payables []Payable `json:"payables"`
}
