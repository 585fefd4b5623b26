package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"subpix/internal/billing"
	"subpix/internal/config"
	"subpix/internal/infrastructure"
	"subpix/internal/pix"
	"subpix/internal/whatsapp"
)

// Charge is a ready-to-send collection: the Pix payload for QR rendering or
// clipboard copy, the dunning message, and the WhatsApp deep link.
type Charge struct {
	ClientName   string          `json:"client_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	PixPayload   string          `json:"pix_payload"`
	Message      string          `json:"message,omitempty"`
	WhatsAppLink string          `json:"whatsapp_link,omitempty"`
}

// ChargeService builds Pix charges from the configured merchant identity.
type ChargeService interface {
	// ChargeForClient builds a collection charge for the client's plan price
	// and due date, including the WhatsApp message and link.
	ChargeForClient(ctx context.Context, client billing.Client, plan billing.Plan) Charge
	// AdHocCharge builds a bare charge for an arbitrary amount and
	// transaction id.
	AdHocCharge(ctx context.Context, amount decimal.Decimal, txID string) Charge
}

type chargeService struct {
	merchant config.MerchantConfig
	logger   *slog.Logger
}

// NewChargeService creates the charge service for the configured merchant.
func NewChargeService(merchant config.MerchantConfig, logger *slog.Logger) ChargeService {
	return &chargeService{
		merchant: merchant,
		logger:   logger.With(slog.String("service", "charge")),
	}
}

func (s *chargeService) ChargeForClient(ctx context.Context, client billing.Client, plan billing.Plan) Charge {
	payload := pix.Encode(s.merchant.PixKey, s.merchant.Name, s.merchant.City, plan.Price, "")
	message := whatsapp.CollectionMessage(client.Name, plan.Name, plan.Price, client.DueDate, payload)

	infrastructure.ChargesGenerated.Inc()
	s.logger.InfoContext(ctx, "charge generated",
		slog.String("client_id", client.ID.String()),
		slog.String("amount", plan.Price.StringFixed(2)),
	)

	return Charge{
		ClientName:   client.Name,
		Amount:       plan.Price,
		PixPayload:   payload,
		Message:      message,
		WhatsAppLink: whatsapp.Link(client.Phone, message),
	}
}

func (s *chargeService) AdHocCharge(ctx context.Context, amount decimal.Decimal, txID string) Charge {
	payload := pix.Encode(s.merchant.PixKey, s.merchant.Name, s.merchant.City, amount, txID)

	infrastructure.ChargesGenerated.Inc()
	s.logger.InfoContext(ctx, "ad-hoc charge generated",
		slog.String("amount", amount.StringFixed(2)),
		slog.String("tx_id", fmt.Sprintf("%.25s", txID)),
	)

	return Charge{Amount: amount, PixPayload: payload}
}
