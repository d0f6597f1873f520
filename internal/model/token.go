package model

// MintRequest represents request for POST /nft/mint.
// TokenID retries a previously failed mint, a new token is created when empty.
type MintRequest struct {
	TokenID   string `json:"tokenId"`
	ElementID string `json:"elementId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Symbol    string `json:"symbol"`
}

// UpdateRequest represents request for POST /nft/update.
// MintKey may name any mint the owner controls; when empty the token's own mint is used.
type UpdateRequest struct {
	TokenID   string `json:"tokenId"`
	ElementID string `json:"elementId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Symbol    string `json:"symbol"`
	MintKey   string `json:"mintKey"`
}

// BurnRequest represents request for POST /nft/burn
type BurnRequest struct {
	TokenID string `json:"tokenId" binding:"required"`
}

// TokenResponse is the presentation projection of a managed token
type TokenResponse struct {
	ID         string                     `json:"id"`
	Phase      string                     `json:"phase"`
	State      TokenState                 `json:"state"`
	Operations map[string]OperationRecord `json:"operations"`
}

// TokenListResponse represents response for GET /nft/tokens
type TokenListResponse struct {
	Tokens []TokenResponse `json:"tokens"`
}
