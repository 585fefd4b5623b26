package pix

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EMV tag identifiers for the static Pix merchant-presented payload.
const (
	tagPayloadFormat    = "00"
	tagMerchantAccount  = "26"
	tagMerchantCategory = "52"
	tagCurrency         = "53"
	tagAmount           = "54"
	tagCountry          = "58"
	tagMerchantName     = "59"
	tagMerchantCity     = "60"
	tagAdditionalData   = "62"
	tagCRC              = "63"
	subTagGUI           = "00"
	subTagPixKey        = "01"
	subTagTxID          = "05"
)

const (
	payloadFormatIndicator = "01"
	pixGUI                 = "br.gov.bcb.pix"
	merchantCategoryNone   = "0000"
	currencyBRL            = "986" // ISO 4217
	countryBrazil          = "BR"

	maxMerchantNameLen = 25
	maxMerchantCityLen = 15

	// DefaultTxID is the Pix convention for "no specific transaction id".
	DefaultTxID = "***"
)

// Encode builds the complete static payload for a fixed-amount charge.
// txID may be empty, in which case DefaultTxID is used. The result is
// byte-for-byte reproducible for identical inputs, including the trailing CRC.
func Encode(pixKey, merchantName, merchantCity string, amount decimal.Decimal, txID string) string {
	if txID == "" {
		txID = DefaultTxID
	}

	var b strings.Builder
	b.WriteString(field(tagPayloadFormat, payloadFormatIndicator))
	b.WriteString(field(tagMerchantAccount,
		field(subTagGUI, pixGUI)+field(subTagPixKey, pixKey)))
	b.WriteString(field(tagMerchantCategory, merchantCategoryNone))
	b.WriteString(field(tagCurrency, currencyBRL))
	b.WriteString(field(tagAmount, amount.StringFixed(2)))
	b.WriteString(field(tagCountry, countryBrazil))
	b.WriteString(field(tagMerchantName, normalizeField(merchantName, maxMerchantNameLen)))
	b.WriteString(field(tagMerchantCity, normalizeField(merchantCity, maxMerchantCityLen)))
	b.WriteString(field(tagAdditionalData, field(subTagTxID, txID)))

	// The CRC field's own tag and length are part of the checksummed input.
	b.WriteString(tagCRC + "04")
	payload := b.String()
	return payload + Checksum(payload)
}

// field renders one tag-length-value element. Lengths are always two ASCII
// digits; values of 100+ characters are outside the EMV static profile and
// not defended against.
func field(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}
