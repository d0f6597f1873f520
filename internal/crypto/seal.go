package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jam1729/create-update-burn-nft/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	// StandardScryptN needs ~256MB RAM and 0.5-2s per derivation
	StandardScryptN = 1 << 18
	// LightScryptN is for throwaway keystores, it offers little protection
	LightScryptN = 1 << 12

	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

// ErrInvalidPassword is returned when the keystore cannot be opened with the given password
var ErrInvalidPassword = errors.New("invalid password")

// Seal encrypts wallet data into the salt/nonce/cipherText fields of a keystore file.
// The scrypt cost is taken from file.ScryptN, StandardScryptN when unset, and recorded there.
// password must be []byte for security (caller should zero it after use)
func Seal(file *model.CWTFile, walletData *model.WalletData, password []byte) error {
	if file.ScryptN == 0 {
		file.ScryptN = StandardScryptN
	}
	return seal(file.ScryptN, file, walletData, password)
}

// Open decrypts the wallet data sealed in a keystore file.
// Files without a recorded cost were sealed with StandardScryptN.
// password must be []byte for security (caller should zero it after use)
func Open(file *model.CWTFile, password []byte) (*model.WalletData, error) {
	n := file.ScryptN
	if n == 0 {
		n = StandardScryptN
	}
	return open(n, file, password)
}

func seal(n int, file *model.CWTFile, walletData *model.WalletData, password []byte) error {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(n, password, salt)
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(walletData)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	file.Salt = base64.StdEncoding.EncodeToString(salt)
	file.Nonce = base64.StdEncoding.EncodeToString(nonce)
	file.CipherText = base64.StdEncoding.EncodeToString(ciphertext)
	return nil
}

func open(n int, file *model.CWTFile, password []byte) (*model.WalletData, error) {
	salt, err := base64.StdEncoding.DecodeString(file.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(file.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	if len(nonce) != nonceLen {
		return nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(file.CipherText)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(n, password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var walletData model.WalletData
	if err := json.Unmarshal(plaintext, &walletData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet data: %w", err)
	}
	return &walletData, nil
}

func newGCM(n int, password, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, n, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
