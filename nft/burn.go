package nft

import (
	"context"
	"errors"
	"fmt"

	"github.com/jam1729/create-update-burn-nft/internal/common"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// Burn destroys the single unit held in the token account and returns the
// confirmed transaction signature
func (m *Manager) Burn(ctx context.Context, t *Token) (sig solana.Signature, err error) {
	if t == nil {
		return solana.Signature{}, opError(OpBurn, ErrMissingMintKey, errors.New("nil token"))
	}
	if !m.start(t, OpBurn) {
		return solana.Signature{}, opError(OpBurn, ErrOperationInFlight, nil)
	}
	defer func() { m.finish(t, OpBurn, sig, err) }()

	state := t.State()
	if state.MintKey == "" || state.Account == "" {
		return solana.Signature{}, opError(OpBurn, ErrMissingMintKey, nil)
	}

	signer, err := m.acquire(OpBurn)
	if err != nil {
		return solana.Signature{}, err
	}
	defer signer.Release()
	owner := signer.PublicKey()

	if t.Phase() == PhaseBurned {
		return solana.Signature{}, opError(OpBurn, ErrInvalidInput, errors.New("token is already burned"))
	}
	mint, err := common.ParsePublicKey(state.MintKey)
	if err != nil {
		return solana.Signature{}, opError(OpBurn, ErrInvalidInput, fmt.Errorf("invalid mint key: %w", err))
	}
	account, err := common.ParsePublicKey(state.Account)
	if err != nil {
		return solana.Signature{}, opError(OpBurn, ErrInvalidInput, fmt.Errorf("invalid token account: %w", err))
	}

	ix := token.NewBurnInstruction(
		1,
		account,
		mint,
		owner,
		[]solana.PublicKey{},
	).Build()

	sig, err = m.submit(ctx, []solana.Instruction{ix}, owner, signer)
	if err != nil {
		return sig, opError(OpBurn, ErrSubmissionFailed, err)
	}

	t.mu.Lock()
	t.state.BurnSignature = sig.String()
	t.phase = PhaseBurned
	t.mu.Unlock()
	return sig, nil
}
