// Package pix builds static Pix "Copia e Cola" payment payloads following the
// Banco Central do Brasil EMV QR Code (Merchant-Presented Mode) profile.
//
// A static payload encodes a fixed recipient and amount into a copyable string
// that any Pix-reading wallet can parse, either pasted directly or rendered as
// a QR code. The payload is a flat sequence of tag-length-value fields closed
// by a CRC-CCITT checksum over the whole string.
//
// Example usage:
//
//	payload := pix.Encode("11999999999", "Joao Silva", "Sao Paulo",
//		decimal.NewFromFloat(49.90), "")
//	// payload starts with "000201" and ends with a 4-hex-digit CRC
//
// Encoding is pure and total: malformed inputs produce a syntactically valid
// but useless payload, so callers validate inputs before encoding.
package pix
