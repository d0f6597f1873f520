package wallet

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jam1729/create-update-burn-nft/internal/crypto"
	"github.com/jam1729/create-update-burn-nft/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/skip2/go-qrcode"
)

const (
	networkSolana = "solana"
)

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Message string
}

func (e *FileExistsError) Error() string {
	return e.Message
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	var target *FileExistsError
	return errors.As(err, &target)
}

// GenerateKeystore creates a new keypair and seals it into a .cwt keystore.
// scryptN is the key derivation cost, 0 selects crypto.StandardScryptN.
// Returns the generated public address on success.
// password must be []byte for security (caller should zero it after use)
func GenerateKeystore(filePath string, password []byte, scryptN int) (address string, err error) {
	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return "", &FileExistsError{Message: "file is not empty"}
	}

	w := solana.NewWallet()
	defer clear(w.PrivateKey)

	address = w.PublicKey().String()

	qrCode, err := addressQRCode(address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	file := &model.CWTFile{
		Network: networkSolana,
		Address: address,
		QR:      qrCode,
		ScryptN: scryptN,
	}
	walletData := &model.WalletData{
		PrivateKey: w.PrivateKey,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := crypto.WriteKeystore(filePath, file, walletData, password); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", &FileExistsError{Message: err.Error()}
		}
		return "", fmt.Errorf("failed to write keystore: %w", err)
	}

	return address, nil
}

// addressQRCode renders the address as a base64 PNG QR code
func addressQRCode(address string) (string, error) {
	png, err := qrcode.Encode(address, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
