package wallet

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jam1729/create-update-burn-nft/internal/crypto"

	"github.com/gagliardetto/solana-go"
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"
)

const eventBuffer = 8

// PasswordFunc returns a copy of the keystore password; the agent zeroes it after use
type PasswordFunc func() ([]byte, error)

// LocalAgent is a signing agent backed by an encrypted .cwt keystore.
// The key is decrypted on Connect and forgotten on Disconnect.
type LocalAgent struct {
	path     string
	password PasswordFunc
	log      *zap.Logger
	pub      solana.PublicKey
	events   chan Event

	mu  deadlock.Mutex
	key solana.PrivateKey
}

var _ Agent = (*LocalAgent)(nil)

// NewLocalAgent opens the keystore at path without decrypting it
func NewLocalAgent(path string, password PasswordFunc, logger *zap.Logger) (*LocalAgent, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	file, err := crypto.ReadKeystore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}
	pub, err := solana.PublicKeyFromBase58(file.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid keystore address: %w", err)
	}
	return &LocalAgent{
		path:     path,
		password: password,
		log:      logger,
		pub:      pub,
		events:   make(chan Event, eventBuffer),
	}, nil
}

// DetectLocal returns a detector for Session.TryAutoDetect that finds a keystore at path
func DetectLocal(path string, password PasswordFunc, logger *zap.Logger) func() (Agent, bool) {
	return func() (Agent, bool) {
		if path == "" {
			return nil, false
		}
		if _, err := os.Stat(path); err != nil {
			return nil, false
		}
		agent, err := NewLocalAgent(path, password, logger)
		if err != nil {
			if logger != nil {
				logger.Warn("keystore present but unreadable", zap.String("path", path), zap.Error(err))
			}
			return nil, false
		}
		return agent, true
	}
}

// Connect decrypts the keystore and emits a connect notification
func (a *LocalAgent) Connect(ctx context.Context) error {
	if a.IsConnected() {
		return nil
	}

	password, err := a.password()
	if err != nil {
		return fmt.Errorf("failed to get password: %w", err)
	}
	defer clear(password) // Always clear password from memory

	_, walletData, err := crypto.OpenKeystore(a.path, password)
	if err != nil {
		return fmt.Errorf("failed to decrypt wallet: %w", err)
	}
	defer clear(walletData.PrivateKey)

	// Verify private key length (full 64-byte key is stored)
	if len(walletData.PrivateKey) != 64 {
		return errors.New("invalid private key length")
	}
	key := make(solana.PrivateKey, len(walletData.PrivateKey))
	copy(key, walletData.PrivateKey)

	if !key.PublicKey().Equals(a.pub) {
		clear(key)
		return errors.New("private key does not match keystore address")
	}
	// key derivation is slow, the caller may have given up meanwhile
	if err := ctx.Err(); err != nil {
		clear(key)
		return err
	}

	a.mu.Lock()
	a.key = key
	a.mu.Unlock()

	return a.emit(ctx, Event{Kind: EventConnect, PublicKey: a.pub})
}

// Disconnect forgets the key and emits a disconnect notification
func (a *LocalAgent) Disconnect() error {
	a.mu.Lock()
	if a.key == nil {
		a.mu.Unlock()
		return nil
	}
	clear(a.key)
	a.key = nil
	a.mu.Unlock()

	return a.emit(context.Background(), Event{Kind: EventDisconnect, PublicKey: a.pub})
}

// IsConnected reports whether the key is currently decrypted
func (a *LocalAgent) IsConnected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.key != nil
}

// PublicKey returns the keystore address, known before connecting
func (a *LocalAgent) PublicKey() solana.PublicKey {
	return a.pub
}

// Signer leases a copy of the key
func (a *LocalAgent) Signer() (Signer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.key == nil {
		return nil, ErrNotConnected
	}
	key := make(solana.PrivateKey, len(a.key))
	copy(key, a.key)
	return &KeySigner{key: key}, nil
}

// Events returns the notification channel
func (a *LocalAgent) Events() <-chan Event {
	return a.events
}

func (a *LocalAgent) emit(ctx context.Context, ev Event) error {
	select {
	case a.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// KeySigner signs with an in-memory private key
type KeySigner struct {
	mu  deadlock.Mutex
	key solana.PrivateKey
}

// NewKeySigner wraps a private key. The signer owns the slice and zeroes it on Release.
func NewKeySigner(key solana.PrivateKey) *KeySigner {
	return &KeySigner{key: key}
}

func (s *KeySigner) PublicKey() solana.PublicKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return solana.PublicKey{}
	}
	return s.key.PublicKey()
}

func (s *KeySigner) Sign(_ context.Context, message []byte) (solana.Signature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return solana.Signature{}, errors.New("signer released")
	}
	return s.key.Sign(message)
}

func (s *KeySigner) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.key)
	s.key = nil
}
