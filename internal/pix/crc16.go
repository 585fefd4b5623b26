package pix

import "fmt"

// crcPoly is the CRC-CCITT generator polynomial mandated by EMV QRCPS.
const crcPoly = 0x1021

// Checksum computes the CRC-CCITT (init 0xFFFF, no final XOR, MSB-first)
// checksum of s and renders it as 4 uppercase hexadecimal digits, exactly as
// it appears in the trailing field of a Pix payload.
func Checksum(s string) string {
	crc := 0xFFFF
	for _, c := range s {
		crc ^= int(c) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crcPoly
			} else {
				crc <<= 1
			}
		}
		crc &= 0xFFFF
	}
	return fmt.Sprintf("%04X", crc)
}
