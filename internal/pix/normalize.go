package pix

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, turning accented
// characters into their base ASCII letters.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeField prepares a merchant name or city for the payload: diacritics
// stripped, upper-cased, truncated to max characters. EMV fields carry a plain
// ASCII subset, so wallets reject accented text.
func normalizeField(s string, max int) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	out = strings.ToUpper(out)
	if len(out) > max {
		out = out[:max]
	}
	return out
}
