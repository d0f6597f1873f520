package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jam1729/create-update-burn-nft/internal/model"

	"github.com/stretchr/testify/require"
)

func TestKeystoreRoundTrip(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "wallet.cwt")
	data := &model.WalletData{PrivateKey: []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"), CreatedAt: "2026-10-14T00:00:00Z"}
	file := &model.CWTFile{Network: "solana", Address: "addr", ScryptN: LightScryptN}

	require.NoError(WriteKeystore(path, file, data, []byte("pw")))

	read, err := ReadKeystore(path)
	require.NoError(err)
	require.Equal("addr", read.Address)
	require.Equal(LightScryptN, read.ScryptN)

	_, opened, err := OpenKeystore(path, []byte("pw"))
	require.NoError(err)
	require.Equal(data.PrivateKey, opened.PrivateKey)
	require.Equal(data.CreatedAt, opened.CreatedAt)

	_, _, err = OpenKeystore(path, []byte("wrong"))
	require.ErrorIs(err, ErrInvalidPassword)
}

func TestWriteKeystoreRefusesNonEmptyFile(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "wallet.cwt")
	require.NoError(os.WriteFile(path, []byte("x"), 0600))

	err := WriteKeystore(path, &model.CWTFile{ScryptN: LightScryptN}, &model.WalletData{}, []byte("pw"))
	require.ErrorIs(err, os.ErrExist)
}

func TestWriteKeystoreRequiresExtension(t *testing.T) {
	err := WriteKeystore(filepath.Join(t.TempDir(), "wallet.json"), &model.CWTFile{}, &model.WalletData{}, []byte("pw"))
	require.ErrorContains(t, err, ".cwt")
}

func TestReadKeystoreMissing(t *testing.T) {
	_, err := ReadKeystore(filepath.Join(t.TempDir(), "nope.cwt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSealRecordsDefaultCost(t *testing.T) {
	require := require.New(t)

	// legacy files carry no cost and open at the standard one
	file := &model.CWTFile{}
	require.NoError(Seal(file, &model.WalletData{CreatedAt: "x"}, []byte("pw")))
	require.Equal(StandardScryptN, file.ScryptN)

	file.ScryptN = 0
	opened, err := Open(file, []byte("pw"))
	require.NoError(err)
	require.Equal("x", opened.CreatedAt)
}
