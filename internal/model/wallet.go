package model

// CWTFile represents .cwt keystore file structure
type CWTFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	QR         string `json:"QR"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
	ScryptN    int    `json:"scryptN,omitempty"`
}

// WalletData represents decrypted keystore data
type WalletData struct {
	PrivateKey []byte `json:"privateKey"` // 64 bytes ed25519 key (stored as base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}

// WalletResponse represents response for GET /wallet and the connect/disconnect endpoints
type WalletResponse struct {
	State     string `json:"state"`
	PublicKey string `json:"publicKey,omitempty"`
	Connected bool   `json:"connected"`
	// BalanceSOL is the owner's SOL balance, empty when disconnected or unavailable
	BalanceSOL string `json:"balanceSol,omitempty"`
}
