package pix

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum_KnownVector(t *testing.T) {
	// Standard CRC-16/CCITT-FALSE check value.
	require.Equal(t, "29B1", Checksum("123456789"))
}

func TestChecksum_Format(t *testing.T) {
	hex4 := regexp.MustCompile(`^[0-9A-F]{4}$`)

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "single char", input: "a"},
		{name: "typical payload prefix", input: "000201"},
		{name: "long mixed input", input: "00020126330014br.gov.bcb.pix01111199999999995204000053039865802BR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Checksum(tt.input)
			assert.Regexp(t, hex4, got)
			// Deterministic: same input, same checksum.
			assert.Equal(t, got, Checksum(tt.input))
		})
	}
}

func TestChecksum_EmptyInputIsInitValue(t *testing.T) {
	// With no bytes processed the register stays at the 0xFFFF seed.
	assert.Equal(t, "FFFF", Checksum(""))
}
