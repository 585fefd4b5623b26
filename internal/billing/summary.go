package billing

import (
	"context"

	"github.com/shopspring/decimal"
)

// Summary is the dashboard aggregation over the billing graph.
type Summary struct {
	TotalClients   int             `json:"total_clients"`
	ClientsOK      int             `json:"clients_ok"`
	ClientsDueSoon int             `json:"clients_due_soon"`
	ClientsOverdue int             `json:"clients_overdue"`
	RevenueMonth   decimal.Decimal `json:"revenue_month"`
	OpenPayables   int             `json:"open_payables"`
	PayablesTotal  decimal.Decimal `json:"payables_total"`
	PaymentsMonth  int             `json:"payments_month"`
}

// Summarize computes the dashboard numbers as of the given date. Revenue and
// payment counts cover the calendar month of today.
func (s *Store) Summarize(ctx context.Context, today Date) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{
		TotalClients:  len(s.snap.Clients),
		RevenueMonth:  decimal.Zero,
		PayablesTotal: decimal.Zero,
	}

	for _, c := range s.snap.Clients {
		switch c.DueStatusAt(today) {
		case DueStatusOverdue:
			sum.ClientsOverdue++
		case DueStatusDueSoon:
			sum.ClientsDueSoon++
		default:
			sum.ClientsOK++
		}
	}

	for _, p := range s.snap.Payments {
		if p.PaidOn.Year == today.Year && p.PaidOn.Month == today.Month {
			sum.RevenueMonth = sum.RevenueMonth.Add(p.Amount)
			sum.PaymentsMonth++
		}
	}

	for _, p := range s.snap.Payables {
		if !p.Paid {
			sum.OpenPayables++
			sum.PayablesTotal = sum.PayablesTotal.Add(p.Amount)
		}
	}

	return sum
}
