package crypto

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jam1729/create-update-burn-nft/internal/model"
)

const keystoreExt = ".cwt"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteKeystore seals wallet data and writes it to a new .cwt file.
// Fails with os.ErrExist if the file is present and not empty.
// password must be []byte for security (caller should zero it after use)
func WriteKeystore(filePath string, file *model.CWTFile, walletData *model.WalletData, password []byte) error {
	if filepath.Ext(filePath) != keystoreExt {
		return errors.New("file must have .cwt extension")
	}
	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return fmt.Errorf("file is not empty: %w", os.ErrExist)
	}

	if err := Seal(file, walletData, password); err != nil {
		return err
	}

	fileData, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cwt file: %w", err)
	}

	// Add UTF-8 BOM for proper display in Windows
	fileData = append(append([]byte{}, utf8BOM...), fileData...)

	if err := os.WriteFile(filePath, fileData, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ReadKeystore reads a .cwt file without decrypting it
func ReadKeystore(filePath string) (*model.CWTFile, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("keystore does not exist: %w", os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if fileInfo.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Skip UTF-8 BOM if present
	if len(fileData) >= 3 && fileData[0] == 0xEF && fileData[1] == 0xBB && fileData[2] == 0xBF {
		fileData = fileData[3:]
	}

	var file model.CWTFile
	if err := json.Unmarshal(fileData, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cwt file: %w", err)
	}
	return &file, nil
}

// OpenKeystore reads and decrypts a .cwt file
func OpenKeystore(filePath string, password []byte) (*model.CWTFile, *model.WalletData, error) {
	file, err := ReadKeystore(filePath)
	if err != nil {
		return nil, nil, err
	}
	walletData, err := Open(file, password)
	if err != nil {
		return nil, nil, err
	}
	return file, walletData, nil
}
