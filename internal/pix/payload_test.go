package pix

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_StructureAndCRC(t *testing.T) {
	payload := Encode("11999999999", "JOAO SILVA", "SAO PAULO", decimal.NewFromFloat(10.00), "")

	require.True(t, strings.HasPrefix(payload, "000201"), "payload must start with the format indicator field")
	assert.Contains(t, payload, "br.gov.bcb.pix")
	assert.Contains(t, payload, "0111"+"11999999999") // sub-field 01, len 11, pix key
	assert.Contains(t, payload, "52040000")
	assert.Contains(t, payload, "5303986")
	assert.Contains(t, payload, "540510.00")
	assert.Contains(t, payload, "5802BR")
	assert.Contains(t, payload, "5910JOAO SILVA")
	assert.Contains(t, payload, "6009SAO PAULO")
	assert.Contains(t, payload, "62070503***")

	// The last four characters are the CRC over everything before them,
	// including the literal "6304" prefix.
	body, crc := payload[:len(payload)-4], payload[len(payload)-4:]
	require.True(t, strings.HasSuffix(body, "6304"))
	assert.Equal(t, Checksum(body), crc)
}

func TestEncode_Deterministic(t *testing.T) {
	a := Encode("chave@pix.com", "Mercearia Azul", "Recife", decimal.NewFromInt(25), "PED42")
	b := Encode("chave@pix.com", "Mercearia Azul", "Recife", decimal.NewFromInt(25), "PED42")
	assert.Equal(t, a, b)
}

func TestEncode_AmountFormatting(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		field  string
	}{
		{name: "integer amount gains two decimals", amount: decimal.NewFromInt(5), field: "54045.00"},
		{name: "single decimal padded", amount: decimal.NewFromFloat(1234.5), field: "54071234.50"},
		{name: "two decimals preserved", amount: decimal.NewFromFloat(0.99), field: "54040.99"},
		{name: "zero amount", amount: decimal.Zero, field: "54040.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := Encode("11999999999", "LOJA", "NATAL", tt.amount, "")
			assert.Contains(t, payload, tt.field)
		})
	}
}

func TestEncode_TxIDDefault(t *testing.T) {
	withDefault := Encode("k", "N", "C", decimal.NewFromInt(1), "")
	explicit := Encode("k", "N", "C", decimal.NewFromInt(1), "***")
	assert.Equal(t, explicit, withDefault)

	custom := Encode("k", "N", "C", decimal.NewFromInt(1), "FATURA7")
	assert.Contains(t, custom, "62110507FATURA7")
}

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "diacritics stripped and upper-cased", in: "João Gonçalves", max: 25, want: "JOAO GONCALVES"},
		{name: "city with cedilla and tilde", in: "São Gonçalo", max: 15, want: "SAO GONCALO"},
		{name: "plain ascii passes through", in: "Recife", max: 15, want: "RECIFE"},
		{name: "truncated to limit", in: "Maria Aparecida de Oliveira Souza", max: 25, want: "MARIA APARECIDA DE OLIVEI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeField(tt.in, tt.max))
		})
	}
}

func TestEncode_LongAccentedNameTruncated(t *testing.T) {
	// 30 characters with accents; normalized form must be cut to 25.
	payload := Encode("11999999999", "Antônio José da Conceição Néto", "Belém", decimal.NewFromInt(10), "")
	assert.Contains(t, payload, "5925ANTONIO JOSE DA CONCEICAO")
	assert.Contains(t, payload, "6005BELEM")
}
