package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

const (
	SOLDecimals = 9 // SOL has 9 decimals (lamports)
)

// ErrEmptyKey is returned by ParsePublicKey for blank input
var ErrEmptyKey = errors.New("empty key")

// LamportsToSOL converts lamports to SOL string without float precision loss
func LamportsToSOL(lamports uint64) string {
	return formatWithDecimals(lamports, SOLDecimals)
}

// ParsePublicKey parses free-text key input (e.g. a mint key typed by the user).
// Surrounding whitespace is ignored, anything that is not exactly 32 base58-decoded bytes is rejected.
func ParsePublicKey(s string) (solana.PublicKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return solana.PublicKey{}, ErrEmptyKey
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid base58: %w", err)
	}
	if len(raw) != solana.PublicKeyLength {
		return solana.PublicKey{}, fmt.Errorf("invalid key length %d, expected %d", len(raw), solana.PublicKeyLength)
	}
	return solana.PublicKeyFromBytes(raw), nil
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 9) = "0.024981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)

	// Pad with leading zeros if needed
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}
