package nft

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jam1729/create-update-burn-nft/internal/common"
	"github.com/jam1729/create-update-burn-nft/internal/metadata"

	"github.com/gagliardetto/solana-go"
)

// Update rewrites the on-chain metadata of mintKey with a new name, symbol
// and freshly captured image. An empty mintKey targets the token's own mint.
// t may be nil when updating a mint that is not tracked by the manager.
func (m *Manager) Update(ctx context.Context, t *Token, elementID, name, symbol, mintKey string) (err error) {
	if t == nil {
		t = newToken("")
	}
	if !m.start(t, OpUpdate) {
		return opError(OpUpdate, ErrOperationInFlight, nil)
	}
	var sig solana.Signature
	defer func() { m.finish(t, OpUpdate, sig, err) }()

	signer, err := m.acquire(OpUpdate)
	if err != nil {
		return err
	}
	defer signer.Release()
	owner := signer.PublicKey()

	state, phase := t.State(), t.Phase()
	target := strings.TrimSpace(mintKey)
	if target == "" {
		target = state.MintKey
	}
	if target == "" {
		return opError(OpUpdate, ErrInvalidInput, errors.New("mint key is required"))
	}
	mint, err := common.ParsePublicKey(target)
	if err != nil {
		return opError(OpUpdate, ErrInvalidInput, fmt.Errorf("invalid mint key: %w", err))
	}
	own := target == state.MintKey
	if own && phase == PhaseBurned {
		return opError(OpUpdate, ErrInvalidInput, errors.New("token is burned"))
	}

	md, uri, err := m.describe(ctx, OpUpdate, owner, elementID, name, symbol)
	if err != nil {
		return err
	}

	ix, err := metadata.UpdateMetadataInstruction(md, uri, mint, owner)
	if err != nil {
		return opError(OpUpdate, ErrSubmissionFailed, err)
	}
	sig, err = m.submit(ctx, []solana.Instruction{ix}, owner, signer)
	if err != nil {
		return opError(OpUpdate, ErrSubmissionFailed, err)
	}

	if own {
		t.mu.Lock()
		t.phase = PhaseUpdated
		t.mu.Unlock()
	}
	return nil
}
