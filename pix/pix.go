// Package pix renders PIX "copia e cola" payloads in the EMV BR Code format.
package pix

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	gui             = "br.gov.bcb.pix"
	currencyBRL     = "986"
	countryBR       = "BR"
	merchantCatCode = "0000"

	maxMerchantName = 25
	maxMerchantCity = 15
	// TxIDLength is the length of generated transaction identifiers.
	TxIDLength = 25

	txidAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	ErrMissingKey     = errors.New("pix key is required")
	ErrInvalidTxID    = errors.New("txid must be 1-25 alphanumeric characters")
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// Payload describes a static PIX charge.
type Payload struct {
	Key          string
	MerchantName string
	MerchantCity string
	AmountCents  int64
	TxID         string
}

// NewTxID generates a random alphanumeric transaction identifier.
func NewTxID() (string, error) {
	return gonanoid.Generate(txidAlphabet, TxIDLength)
}

// Encode renders the payload as a BR Code string terminated by its CRC.
func (p Payload) Encode() (string, error) {
	if strings.TrimSpace(p.Key) == "" {
		return "", ErrMissingKey
	}
	if p.AmountCents < 0 {
		return "", ErrNegativeAmount
	}
	if !validTxID(p.TxID) {
		return "", ErrInvalidTxID
	}

	var b strings.Builder
	b.WriteString(field("00", "01"))
	b.WriteString(field("26", field("00", gui)+field("01", p.Key)))
	b.WriteString(field("52", merchantCatCode))
	b.WriteString(field("53", currencyBRL))
	if p.AmountCents > 0 {
		b.WriteString(field("54", fmt.Sprintf("%d.%02d", p.AmountCents/100, p.AmountCents%100)))
	}
	b.WriteString(field("58", countryBR))
	b.WriteString(field("59", sanitize(p.MerchantName, maxMerchantName, "ESPORTS HUB")))
	b.WriteString(field("60", sanitize(p.MerchantCity, maxMerchantCity, "SAO PAULO")))
	b.WriteString(field("62", field("05", p.TxID)))
	b.WriteString("6304")

	out := b.String()
	return out + fmt.Sprintf("%04X", CRC16(out)), nil
}

func field(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

func validTxID(id string) bool {
	if id == "" || len(id) > TxIDLength {
		return false
	}
	for _, r := range id {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

// sanitize keeps printable ASCII, upper-cases it and truncates to max.
func sanitize(s string, max int, fallback string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = fallback
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

// CRC16 computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF).
func CRC16(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
