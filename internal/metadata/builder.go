// Package metadata builds token metadata records and encodes them for the
// Metaplex token-metadata program.
package metadata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jam1729/create-update-burn-nft/internal/model"

	"github.com/gagliardetto/solana-go"
)

// Limits enforced by the token-metadata program
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200
)

// ErrInvalidInput is returned when metadata cannot be built from the given inputs
var ErrInvalidInput = errors.New("invalid metadata input")

// Build produces the metadata record for a token minted by owner.
// The owner is always the single verified creator with a 100% share. Description is
// empty and the seller fee is zero: this client does not support royalties.
func Build(owner solana.PublicKey, name, symbol string, image model.FileBlob) (*model.Metadata, error) {
	if owner == (solana.PublicKey{}) {
		return nil, fmt.Errorf("owner identity unknown: %w", ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	symbol = strings.TrimSpace(symbol)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrInvalidInput)
	}
	if len(name) > MaxNameLength {
		return nil, fmt.Errorf("name longer than %d bytes: %w", MaxNameLength, ErrInvalidInput)
	}
	if len(symbol) > MaxSymbolLength {
		return nil, fmt.Errorf("symbol longer than %d bytes: %w", MaxSymbolLength, ErrInvalidInput)
	}
	if image.Name == "" || len(image.Bytes) == 0 {
		return nil, fmt.Errorf("image is missing: %w", ErrInvalidInput)
	}

	return &model.Metadata{
		Name:   name,
		Symbol: symbol,
		Creators: []model.Creator{{
			Address:  owner.String(),
			Verified: true,
			Share:    100,
		}},
		Description:          "",
		SellerFeeBasisPoints: 0,
		Image:                image.Name,
		Properties: model.Properties{
			Files:    []model.FileBlob{image},
			Category: model.CategoryImage,
		},
	}, nil
}

// ValidateCreators checks creator shares sum to 100 and every address is a valid key
func ValidateCreators(creators []model.Creator) error {
	if len(creators) == 0 {
		return fmt.Errorf("no creators: %w", ErrInvalidInput)
	}
	total := 0
	for _, c := range creators {
		if _, err := solana.PublicKeyFromBase58(c.Address); err != nil {
			return fmt.Errorf("creator %q: %w", c.Address, ErrInvalidInput)
		}
		total += int(c.Share)
	}
	if total != 100 {
		return fmt.Errorf("creator shares sum to %d, expected 100: %w", total, ErrInvalidInput)
	}
	return nil
}
