package model

import (
	"encoding/json"
	"time"
)

// Category is the media category of a token
type Category string

const (
	CategoryImage Category = "image"
	CategoryVideo Category = "video"
	CategoryAudio Category = "audio"
	CategoryHTML  Category = "html"
)

// Creator is a single creator entry of token metadata.
// Shares across all creators of one token sum to 100.
type Creator struct {
	Address  string `json:"address"`
	Verified bool   `json:"verified"`
	Share    uint8  `json:"share"`
}

// FileBlob is a named binary payload (PNG image for captured elements)
type FileBlob struct {
	Name  string
	Bytes []byte
}

// MarshalJSON renders the blob as a file reference, raw bytes never go into JSON
func (f FileBlob) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		URI  string `json:"uri"`
		Type string `json:"type"`
	}{
		URI:  f.Name,
		Type: "image/png",
	})
}

// Properties holds the file list and category of token metadata
type Properties struct {
	Files    []FileBlob `json:"files"`
	Category Category   `json:"category"`
}

// Metadata describes a token. Built fresh per mint/update call, never persisted.
type Metadata struct {
	Name                 string     `json:"name"`
	Symbol               string     `json:"symbol"`
	Creators             []Creator  `json:"creators"`
	Description          string     `json:"description"`
	SellerFeeBasisPoints uint16     `json:"seller_fee_basis_points"`
	Image                string     `json:"image"`
	AnimationURL         string     `json:"animation_url,omitempty"`
	ExternalURL          string     `json:"external_url,omitempty"`
	Properties           Properties `json:"properties"`
}

// WalletIdentity is the owner's public identity as seen by the session
type WalletIdentity struct {
	PublicKey string `json:"publicKey"`
	Connected bool   `json:"connected"`
}

// TokenState is the client-side on-chain identity of one managed token
type TokenState struct {
	MintKey       string `json:"mintKey,omitempty"`
	Account       string `json:"account,omitempty"`
	BurnSignature string `json:"burnSignature,omitempty"`
}

// TokenRecord is the persisted form of a managed token
type TokenRecord struct {
	ID         string                     `json:"id"`
	Phase      string                     `json:"phase"`
	State      TokenState                 `json:"state"`
	Operations map[string]OperationRecord `json:"operations,omitempty"`
	CreatedAt  time.Time                  `json:"createdAt"`
	UpdatedAt  time.Time                  `json:"updatedAt"`
}

// OperationRecord is the last known status of one operation kind on a token
type OperationRecord struct {
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Signature string    `json:"signature,omitempty"`
	At        time.Time `json:"at"`
}
