// Package nft drives the mint, update and burn lifecycle of Metaplex NFTs
// owned by the connected wallet.
package nft

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jam1729/create-update-burn-nft/internal/metadata"
	"github.com/jam1729/create-update-burn-nft/internal/model"
	"github.com/jam1729/create-update-burn-nft/internal/store"
	"github.com/jam1729/create-update-burn-nft/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"
)

const (
	// DefaultMaxSupply is the master edition print limit when none is configured
	DefaultMaxSupply uint64 = 1_000_000_000

	mintAccountSize = 82
	feeLamports     = 5000 // per signature
)

// Connection is the RPC surface the manager needs
type Connection interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	MinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error)
	Balance(ctx context.Context, owner solana.PublicKey) (uint64, error)
	SendAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// SignerSource hands out signing leases for the connected wallet
type SignerSource interface {
	Acquire() (wallet.Signer, error)
}

// ImageSource turns a page element id into image bytes
type ImageSource interface {
	Capture(elementID string) (model.FileBlob, error)
}

// MediaStore publishes token media and returns addressable URIs
type MediaStore interface {
	PutImage(ctx context.Context, blob model.FileBlob) (string, error)
	PutManifest(ctx context.Context, manifest []byte) (string, error)
}

// TokenStore persists token records across restarts
type TokenStore interface {
	WriteToken(rec *model.TokenRecord) error
	ReadToken(id string) (*model.TokenRecord, error)
	ListTokens() ([]*model.TokenRecord, error)
}

type Options struct {
	MaxSupply uint64
	// MintFundingLamports overrides the rent-exempt minimum of new mint accounts when > 0
	MintFundingLamports uint64
}

// Manager runs lifecycle operations on behalf of the wallet owner
type Manager struct {
	signers SignerSource
	conn    Connection
	images  ImageSource
	media   MediaStore
	store   TokenStore
	opts    Options
	log     *zap.Logger

	newMintKey func() (solana.PrivateKey, error)

	mu     deadlock.Mutex
	tokens map[string]*Token
}

// NewManager wires the lifecycle manager. tokens may be nil, nothing is persisted then.
func NewManager(signers SignerSource, conn Connection, images ImageSource, media MediaStore, tokens TokenStore, opts Options, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxSupply == 0 {
		opts.MaxSupply = DefaultMaxSupply
	}
	return &Manager{
		signers:    signers,
		conn:       conn,
		images:     images,
		media:      media,
		store:      tokens,
		opts:       opts,
		log:        logger,
		newMintKey: solana.NewRandomPrivateKey,
		tokens:     make(map[string]*Token),
	}
}

// NewToken registers a fresh unminted token
func (m *Manager) NewToken() *Token {
	t := newToken(uuid.NewString())
	m.mu.Lock()
	m.tokens[t.id] = t
	m.mu.Unlock()
	m.persist(t)
	return t
}

// Token returns the token with the given id, loading it from the store if needed
func (m *Manager) Token(id string) (*Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.tokens[id]; ok {
		return t, nil
	}
	if m.store == nil {
		return nil, ErrUnknownToken
	}
	rec, err := m.store.ReadToken(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownToken
	} else if err != nil {
		return nil, fmt.Errorf("failed to read token %s: %w", id, err)
	}
	t, err := tokenFromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("corrupt token record %s: %w", id, err)
	}
	m.tokens[id] = t
	return t, nil
}

// Tokens returns every known token, oldest first
func (m *Manager) Tokens() ([]*Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		recs, err := m.store.ListTokens()
		if err != nil {
			return nil, fmt.Errorf("failed to list tokens: %w", err)
		}
		for _, rec := range recs {
			if _, ok := m.tokens[rec.ID]; ok {
				continue
			}
			t, err := tokenFromRecord(rec)
			if err != nil {
				m.log.Warn("skipping corrupt token record", zap.String("token", rec.ID), zap.Error(err))
				continue
			}
			m.tokens[rec.ID] = t
		}
	}

	out := make([]*Token, 0, len(m.tokens))
	for _, t := range m.tokens {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].createdAt.Equal(out[j].createdAt) {
			return out[i].id < out[j].id
		}
		return out[i].createdAt.Before(out[j].createdAt)
	})
	return out, nil
}

func (m *Manager) persist(t *Token) {
	if m.store == nil || t.id == "" {
		return
	}
	if err := m.store.WriteToken(t.Record()); err != nil {
		m.log.Error("failed to persist token", zap.String("token", t.id), zap.Error(err))
	}
}

// start takes the in-flight guard and records the attempt, a crash mid-operation stays visible
func (m *Manager) start(t *Token, op Operation) bool {
	if !t.begin(op) {
		return false
	}
	m.persist(t)
	return true
}

// finish records the outcome of op on t and logs failures
func (m *Manager) finish(t *Token, op Operation, sig solana.Signature, err error) {
	var sigStr string
	if sig != (solana.Signature{}) {
		sigStr = sig.String()
	}
	t.end(op, sigStr, err)
	m.persist(t)

	if err != nil {
		m.log.Warn("nft operation failed",
			zap.String("op", string(op)),
			zap.String("token", t.id),
			zap.Error(err),
		)
		return
	}
	m.log.Info("nft operation succeeded",
		zap.String("op", string(op)),
		zap.String("token", t.id),
		zap.String("signature", sigStr),
	)
}

// acquire leases the wallet signer, mapping every failure to ErrNotConnected
func (m *Manager) acquire(op Operation) (wallet.Signer, error) {
	if m.signers == nil {
		return nil, opError(op, ErrNotConnected, nil)
	}
	signer, err := m.signers.Acquire()
	if err != nil {
		return nil, opError(op, ErrNotConnected, err)
	}
	return signer, nil
}

// describe captures the element and builds metadata with its published manifest URI
func (m *Manager) describe(ctx context.Context, op Operation, owner solana.PublicKey, elementID, name, symbol string) (*model.Metadata, string, error) {
	image, err := m.images.Capture(elementID)
	if err != nil {
		return nil, "", opError(op, ErrInvalidInput, fmt.Errorf("failed to capture element %q: %w", elementID, err))
	}
	md, err := metadata.Build(owner, name, symbol, image)
	if err != nil {
		return nil, "", opError(op, ErrInvalidInput, err)
	}

	imageURI, err := m.media.PutImage(ctx, image)
	if err != nil {
		return nil, "", opError(op, ErrSubmissionFailed, fmt.Errorf("failed to upload image: %w", err))
	}
	manifest, err := metadata.Manifest(md, imageURI)
	if err != nil {
		return nil, "", opError(op, ErrSubmissionFailed, err)
	}
	uri, err := m.media.PutManifest(ctx, manifest)
	if err != nil {
		return nil, "", opError(op, ErrSubmissionFailed, fmt.Errorf("failed to upload manifest: %w", err))
	}
	if len(uri) > metadata.MaxURILength {
		return nil, "", opError(op, ErrInvalidInput, fmt.Errorf("metadata uri longer than %d bytes", metadata.MaxURILength))
	}
	return md, uri, nil
}
