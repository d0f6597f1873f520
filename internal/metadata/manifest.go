package metadata

import (
	"encoding/json"
	"fmt"

	"github.com/jam1729/create-update-burn-nft/internal/model"
)

type manifestFile struct {
	URI  string `json:"uri"`
	Type string `json:"type"`
}

type manifestProperties struct {
	Files    []manifestFile  `json:"files"`
	Category model.Category  `json:"category"`
	Creators []model.Creator `json:"creators"`
}

// manifest is the off-chain JSON document the on-chain uri points to
type manifest struct {
	Name                 string             `json:"name"`
	Symbol               string             `json:"symbol"`
	Description          string             `json:"description"`
	SellerFeeBasisPoints uint16             `json:"seller_fee_basis_points"`
	Image                string             `json:"image"`
	AnimationURL         string             `json:"animation_url,omitempty"`
	ExternalURL          string             `json:"external_url,omitempty"`
	Properties           manifestProperties `json:"properties"`
}

// Manifest renders metadata as the off-chain JSON document.
// imageURI replaces the bare filename with the location the image was stored at.
func Manifest(md *model.Metadata, imageURI string) ([]byte, error) {
	if err := ValidateCreators(md.Creators); err != nil {
		return nil, err
	}
	if imageURI == "" {
		imageURI = md.Image
	}

	files := make([]manifestFile, 0, len(md.Properties.Files))
	for _, f := range md.Properties.Files {
		uri := f.Name
		if f.Name == md.Image {
			uri = imageURI
		}
		files = append(files, manifestFile{URI: uri, Type: "image/png"})
	}

	out, err := json.MarshalIndent(manifest{
		Name:                 md.Name,
		Symbol:               md.Symbol,
		Description:          md.Description,
		SellerFeeBasisPoints: md.SellerFeeBasisPoints,
		Image:                imageURI,
		AnimationURL:         md.AnimationURL,
		ExternalURL:          md.ExternalURL,
		Properties: manifestProperties{
			Files:    files,
			Category: md.Properties.Category,
			Creators: md.Creators,
		},
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return out, nil
}
