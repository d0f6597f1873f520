package nft

import (
	"context"
	"errors"
	"fmt"

	"github.com/jam1729/create-update-burn-nft/internal/client"
	"github.com/jam1729/create-update-burn-nft/internal/metadata"
	"github.com/jam1729/create-update-burn-nft/internal/model"
	"github.com/jam1729/create-update-burn-nft/internal/wallet"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
)

// Mint creates a new one-of-one token owned by the connected wallet.
// The image is captured from elementID and published together with its
// metadata manifest before the transaction is submitted.
func (m *Manager) Mint(ctx context.Context, t *Token, elementID, name, symbol string) (err error) {
	if t == nil {
		return opError(OpMint, ErrInvalidInput, errors.New("nil token"))
	}
	if !m.start(t, OpMint) {
		return opError(OpMint, ErrOperationInFlight, nil)
	}
	var sig solana.Signature
	defer func() { m.finish(t, OpMint, sig, err) }()

	signer, err := m.acquire(OpMint)
	if err != nil {
		return err
	}
	defer signer.Release()
	owner := signer.PublicKey()

	switch t.Phase() {
	case PhaseUnminted:
	case PhaseBurned:
		return opError(OpMint, ErrInvalidInput, errors.New("token is burned"))
	default:
		return opError(OpMint, ErrInvalidInput, errors.New("token is already minted"))
	}

	md, uri, err := m.describe(ctx, OpMint, owner, elementID, name, symbol)
	if err != nil {
		return err
	}

	// Fresh keypair for the mint account, it only co-signs this transaction
	mintKey, err := m.newMintKey()
	if err != nil {
		return opError(OpMint, ErrSubmissionFailed, fmt.Errorf("failed to generate mint key: %w", err))
	}
	mintSigner := wallet.NewKeySigner(mintKey)
	defer mintSigner.Release()
	mint := mintKey.PublicKey()

	account, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return opError(OpMint, ErrSubmissionFailed, fmt.Errorf("failed to derive token account: %w", err))
	}

	funding := m.opts.MintFundingLamports
	if funding == 0 {
		funding, err = m.conn.MinimumBalanceForRentExemption(ctx, mintAccountSize)
		if err != nil {
			return opError(OpMint, ErrSubmissionFailed, err)
		}
	}

	// Check SOL sufficiency for mint funding and both signatures
	balance, err := m.conn.Balance(ctx, owner)
	if err != nil {
		return opError(OpMint, ErrSubmissionFailed, fmt.Errorf("failed to check balance: %w", err))
	}
	if required := funding + 2*feeLamports; balance < required {
		return opError(OpMint, ErrSubmissionFailed, client.InsufficientFundsError(balance, required))
	}

	instructions, err := m.mintInstructions(md, uri, funding, owner, mint, account)
	if err != nil {
		return opError(OpMint, ErrSubmissionFailed, err)
	}

	sig, err = m.submit(ctx, instructions, owner, signer, mintSigner)
	if err != nil {
		return opError(OpMint, ErrSubmissionFailed, err)
	}

	t.mu.Lock()
	t.state.MintKey = mint.String()
	t.state.Account = account.String()
	t.state.BurnSignature = ""
	t.phase = PhaseMinted
	t.mu.Unlock()
	return nil
}

// mintInstructions is the full mint bundle in execution order
func (m *Manager) mintInstructions(md *model.Metadata, uri string, funding uint64, owner, mint, account solana.PublicKey) ([]solana.Instruction, error) {
	createMetadata, err := metadata.CreateMetadataInstruction(md, uri, mint, owner)
	if err != nil {
		return nil, err
	}
	createEdition, err := metadata.CreateMasterEditionInstruction(m.opts.MaxSupply, mint, owner)
	if err != nil {
		return nil, err
	}

	return []solana.Instruction{
		system.NewCreateAccountInstruction(
			funding,
			mintAccountSize,
			solana.TokenProgramID,
			owner,
			mint,
		).Build(),
		token.NewInitializeMintInstruction(
			0,
			owner,
			owner,
			mint,
			solana.SysVarRentPubkey,
		).Build(),
		associatedtokenaccount.NewCreateInstruction(
			owner,
			owner,
			mint,
		).Build(),
		createMetadata,
		token.NewMintToInstruction(
			1,
			mint,
			account,
			owner,
			[]solana.PublicKey{},
		).Build(),
		createEdition,
	}, nil
}
