// Package whatsapp builds collection messages and wa.me deep links. The link
// opens a pre-filled WhatsApp conversation; actual delivery happens in the
// user's WhatsApp client, outside this system.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"subpix/internal/billing"
)

// brazilCountryCode is prefixed to national numbers that lack one.
const brazilCountryCode = "55"

// NormalizePhone strips formatting characters and ensures a country code.
// Brazilian national numbers have 10 or 11 digits (DDD + number).
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 10 || len(digits) == 11 {
		return brazilCountryCode + digits
	}
	return digits
}

// Link builds a wa.me deep link opening a chat with the given number and a
// pre-filled, URL-encoded message.
func Link(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", NormalizePhone(phone), url.QueryEscape(message))
}

// CollectionMessage renders the pt-BR dunning text sent to a client, with
// the Pix copy-and-paste payload at the end so the client can pay directly.
func CollectionMessage(clientName, planName string, amount decimal.Decimal, dueDate billing.Date, pixPayload string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Olá %s! 👋\n\n", clientName)
	fmt.Fprintf(&b, "Sua assinatura (%s) vence em %02d/%02d/%04d.\n", planName, dueDate.Day, int(dueDate.Month), dueDate.Year)
	fmt.Fprintf(&b, "Valor: R$ %s\n\n", amount.StringFixed(2))
	b.WriteString("Para pagar via Pix, copie o código abaixo e cole no seu aplicativo do banco:\n\n")
	b.WriteString(pixPayload)
	return b.String()
}
