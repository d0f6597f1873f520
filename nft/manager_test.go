package nft

import (
	"context"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jam1729/create-update-burn-nft/internal/capture"
	"github.com/jam1729/create-update-burn-nft/internal/media"
	"github.com/jam1729/create-update-burn-nft/internal/metadata"
	"github.com/jam1729/create-update-burn-nft/internal/store"
	"github.com/jam1729/create-update-burn-nft/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

const element = "nft-canvas"

// stubWallet leases signers for a fixed key while connected
type stubWallet struct {
	key       solana.PrivateKey
	connected atomic.Bool
}

func newStubWallet() *stubWallet {
	w := &stubWallet{key: solana.NewWallet().PrivateKey}
	w.connected.Store(true)
	return w
}

func (w *stubWallet) Acquire() (wallet.Signer, error) {
	if !w.connected.Load() {
		return nil, wallet.ErrNotConnected
	}
	key := make(solana.PrivateKey, len(w.key))
	copy(key, w.key)
	return wallet.NewKeySigner(key), nil
}

// stubConn verifies signatures and records every submitted transaction
type stubConn struct {
	mu      sync.Mutex
	balance uint64
	rent    uint64
	sendErr error
	sent    []*solana.Transaction

	entered chan struct{}
	release chan struct{}
}

func newStubConn() *stubConn {
	return &stubConn{balance: 2 * solana.LAMPORTS_PER_SOL, rent: 1461600}
}

func (c *stubConn) LatestBlockhash(context.Context) (solana.Hash, error) {
	return solana.Hash{7}, nil
}

func (c *stubConn) MinimumBalanceForRentExemption(_ context.Context, size uint64) (uint64, error) {
	if size != mintAccountSize {
		return 0, errors.New("unexpected account size")
	}
	return c.rent, nil
}

func (c *stubConn) Balance(context.Context, solana.PublicKey) (uint64, error) {
	return c.balance, nil
}

func (c *stubConn) SendAndConfirm(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return solana.Signature{}, err
	}
	if len(tx.Signatures) != int(tx.Message.Header.NumRequiredSignatures) {
		return solana.Signature{}, errors.New("signature count mismatch")
	}
	for i, sig := range tx.Signatures {
		if !sig.Verify(tx.Message.AccountKeys[i], msg) {
			return solana.Signature{}, errors.New("bad signature")
		}
	}

	c.mu.Lock()
	c.sent = append(c.sent, tx)
	sendErr := c.sendErr
	c.mu.Unlock()

	if c.entered != nil {
		c.entered <- struct{}{}
		<-c.release
	}
	if sendErr != nil {
		return solana.Signature{}, sendErr
	}
	return tx.Signatures[0], nil
}

func (c *stubConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func (c *stubConn) last() *solana.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sent[len(c.sent)-1]
}

type fixture struct {
	wallet *stubWallet
	conn   *stubConn
	store  *store.BadgerStore
	m      *Manager
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	capturer := capture.New(t.TempDir(), "Dummy.png")
	capturer.Register(element, func() (image.Image, error) {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		img.Set(1, 1, color.RGBA{R: 255, A: 255})
		return img, nil
	})
	files, err := media.NewFileStore(t.TempDir(), "http://localhost:8080/media")
	require.NoError(t, err)
	bs, err := store.OpenInMemory(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { bs.Close() })

	f := &fixture{wallet: newStubWallet(), conn: newStubConn(), store: bs}
	f.m = NewManager(f.wallet, f.conn, capturer, files, bs, opts, nil)
	return f
}

func programOf(tx *solana.Transaction, i int) solana.PublicKey {
	return tx.Message.AccountKeys[tx.Message.Instructions[i].ProgramIDIndex]
}

func TestMintUpdateBurnLifecycle(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Options{})
	ctx := context.Background()
	owner := f.wallet.key.PublicKey()

	tok := f.m.NewToken()
	require.Equal(PhaseUnminted, tok.Phase())
	require.Equal(StatusIdle, tok.Status(OpMint).Status)

	require.NoError(f.m.Mint(ctx, tok, element, "SOLG_NFT", "MNFT"))
	require.Equal(PhaseMinted, tok.Phase())
	require.Equal(StatusSucceeded, tok.Status(OpMint).Status)

	state := tok.State()
	mint, err := solana.PublicKeyFromBase58(state.MintKey)
	require.NoError(err)
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(err)
	require.Equal(ata.String(), state.Account)

	tx := f.conn.last()
	require.EqualValues(2, tx.Message.Header.NumRequiredSignatures)
	require.True(tx.Message.AccountKeys[0].Equals(owner))
	require.Len(tx.Message.Instructions, 6)
	require.Equal(solana.SystemProgramID, programOf(tx, 0))
	require.Equal(solana.TokenProgramID, programOf(tx, 1))
	require.Equal(solana.SPLAssociatedTokenAccountProgramID, programOf(tx, 2))
	require.Equal(metadata.ProgramID, programOf(tx, 3))
	require.Equal(solana.TokenProgramID, programOf(tx, 4))
	require.Equal(metadata.ProgramID, programOf(tx, 5))
	// rent-exempt funding of the mint account
	require.Equal(f.conn.rent, binary.LittleEndian.Uint64(tx.Message.Instructions[0].Data[4:12]))

	require.NoError(f.m.Update(ctx, tok, element, "MY_UPDATED_NFT_NAME", "MUNN", state.MintKey))
	require.Equal(PhaseUpdated, tok.Phase())
	require.Equal(state, tok.State())
	tx = f.conn.last()
	require.Len(tx.Message.Instructions, 1)
	require.Equal(metadata.ProgramID, programOf(tx, 0))
	metadataAccount, err := metadata.MetadataAddress(mint)
	require.NoError(err)
	require.Equal(metadataAccount, tx.Message.AccountKeys[tx.Message.Instructions[0].Accounts[0]])
	require.Contains(string(tx.Message.Instructions[0].Data), "MUNN")
	require.Contains(string(tx.Message.Instructions[0].Data), "MY_UPDATED_NFT_NAME")

	sig, err := f.m.Burn(ctx, tok)
	require.NoError(err)
	require.Equal(PhaseBurned, tok.Phase())
	require.Equal(sig.String(), tok.State().BurnSignature)
	require.Equal(sig.String(), tok.Status(OpBurn).Signature)
	tx = f.conn.last()
	require.Equal(solana.TokenProgramID, programOf(tx, 0))
	data := tx.Message.Instructions[0].Data
	require.EqualValues(8, data[0]) // Burn
	require.EqualValues(1, binary.LittleEndian.Uint64(data[1:9]))
	require.Equal(3, f.conn.count())
}

func TestMintFundingOverride(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Options{MintFundingLamports: 10_000_000})

	tok := f.m.NewToken()
	require.NoError(f.m.Mint(context.Background(), tok, element, "SOLG_NFT", "SOLG"))
	data := f.conn.last().Message.Instructions[0].Data
	require.EqualValues(10_000_000, binary.LittleEndian.Uint64(data[4:12]))
}

func TestOperationsRequireConnectedWallet(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Options{})
	ctx := context.Background()

	minted := f.m.NewToken()
	require.NoError(f.m.Mint(ctx, minted, element, "SOLG_NFT", "SOLG"))
	sent := f.conn.count()

	f.wallet.connected.Store(false)

	err := f.m.Mint(ctx, f.m.NewToken(), element, "SOLG_NFT", "SOLG")
	require.True(IsKind(err, ErrNotConnected), err)
	require.ErrorIs(err, wallet.ErrNotConnected)

	err = f.m.Update(ctx, minted, element, "MY_UPDATED_NFT_NAME", "SOLG", "")
	require.True(IsKind(err, ErrNotConnected), err)

	_, err = f.m.Burn(ctx, minted)
	require.True(IsKind(err, ErrNotConnected), err)

	require.Equal(sent, f.conn.count())
	require.Equal(PhaseMinted, minted.Phase())
	require.Equal(StatusFailed, minted.Status(OpBurn).Status)
}

func TestBurnWithoutMintKey(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Options{})

	_, err := f.m.Burn(context.Background(), f.m.NewToken())
	require.ErrorIs(err, ErrMissingMintKey)
	require.Equal(ErrMissingMintKey, KindOf(err))
	require.Zero(f.conn.count())

	// disconnected does not change the answer
	f.wallet.connected.Store(false)
	_, err = f.m.Burn(context.Background(), f.m.NewToken())
	require.ErrorIs(err, ErrMissingMintKey)
}

func TestMintRejectsInvalidInput(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Options{})
	ctx := context.Background()
	tok := f.m.NewToken()

	err := f.m.Mint(ctx, tok, element, "", "SOLG")
	require.True(IsKind(err, ErrInvalidInput), err)

	err = f.m.Mint(ctx, tok, element, "A_NAME_THAT_IS_FAR_TOO_LONG_FOR_METAPLEX", "SOLG")
	require.True(IsKind(err, ErrInvalidInput), err)

	err = f.m.Mint(ctx, tok, "no-such-element", "SOLG_NFT", "SOLG")
	require.True(IsKind(err, ErrInvalidInput), err)
	require.ErrorIs(err, capture.ErrNotFound)

	require.Zero(f.conn.count())
	require.Equal(PhaseUnminted, tok.Phase())
	require.Equal(StatusFailed, tok.Status(OpMint).Status)

	require.NoError(f.m.Mint(ctx, tok, element, "SOLG_NFT", "SOLG"))
	err = f.m.Mint(ctx, tok, element, "SOLG_NFT", "SOLG")
	require.True(IsKind(err, ErrInvalidInput), err)
}

func TestSubmissionFailureKeepsState(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Options{})
	ctx := context.Background()

	tok := f.m.NewToken()
	require.NoError(f.m.Mint(ctx, tok, element, "SOLG_NFT", "SOLG"))
	state := tok.State()

	f.conn.sendErr = errors.New("blockhash not found")
	err := f.m.Update(ctx, tok, element, "MY_UPDATED_NFT_NAME", "SOLG", "")
	require.True(IsKind(err, ErrSubmissionFailed), err)
	require.Contains(err.Error(), "blockhash not found")
	require.Equal(PhaseMinted, tok.Phase())

	_, err = f.m.Burn(ctx, tok)
	require.True(IsKind(err, ErrSubmissionFailed), err)
	require.Equal(state, tok.State())
	require.Equal(PhaseMinted, tok.Phase())
	require.Equal(StatusFailed, tok.Status(OpBurn).Status)
	require.Contains(tok.Status(OpBurn).Err, "blockhash not found")
}

func TestMintInsufficientFunds(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Options{})
	f.conn.balance = 1000

	tok := f.m.NewToken()
	err := f.m.Mint(context.Background(), tok, element, "SOLG_NFT", "SOLG")
	require.True(IsKind(err, ErrSubmissionFailed), err)
	require.Contains(err.Error(), "insufficient SOL balance")
	require.Zero(f.conn.count())
	require.Empty(tok.State().MintKey)
}

func TestOneOperationPerToken(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Options{})
	ctx := context.Background()

	tok := f.m.NewToken()
	f.conn.entered = make(chan struct{})
	f.conn.release = make(chan struct{})

	done := make(chan error, 1)
	go func() { done <- f.m.Mint(ctx, tok, element, "SOLG_NFT", "SOLG") }()

	select {
	case <-f.conn.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("mint never reached submission")
	}
	require.True(tok.InFlight())
	require.Equal(StatusInFlight, tok.Status(OpMint).Status)

	_, err := f.m.Burn(ctx, tok)
	require.ErrorIs(err, ErrOperationInFlight)
	err = f.m.Update(ctx, tok, element, "MY_UPDATED_NFT_NAME", "SOLG", "")
	require.ErrorIs(err, ErrOperationInFlight)
	// rejected attempts leave no trace on the running operation
	require.Equal(StatusIdle, tok.Status(OpBurn).Status)

	close(f.conn.release)
	require.NoError(<-done)
	require.False(tok.InFlight())
	require.Equal(PhaseMinted, tok.Phase())
}

func TestUpdateForeignMint(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Options{})
	ctx := context.Background()

	tok := f.m.NewToken()
	require.NoError(f.m.Mint(ctx, tok, element, "SOLG_NFT", "SOLG"))

	other := solana.NewWallet().PublicKey()
	require.NoError(f.m.Update(ctx, tok, element, "MY_UPDATED_NFT_NAME", "SOLG", other.String()))
	require.Equal(PhaseMinted, tok.Phase())

	require.NoError(f.m.Update(ctx, nil, element, "MY_UPDATED_NFT_NAME", "SOLG", other.String()))

	err := f.m.Update(ctx, nil, element, "MY_UPDATED_NFT_NAME", "SOLG", "")
	require.True(IsKind(err, ErrInvalidInput), err)
	err = f.m.Update(ctx, nil, element, "MY_UPDATED_NFT_NAME", "SOLG", "not-a-key")
	require.True(IsKind(err, ErrInvalidInput), err)
}

func TestBurnedTokenIsTerminal(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Options{})
	ctx := context.Background()

	tok := f.m.NewToken()
	require.NoError(f.m.Mint(ctx, tok, element, "SOLG_NFT", "SOLG"))
	_, err := f.m.Burn(ctx, tok)
	require.NoError(err)
	sent := f.conn.count()

	_, err = f.m.Burn(ctx, tok)
	require.True(IsKind(err, ErrInvalidInput), err)
	err = f.m.Update(ctx, tok, element, "MY_UPDATED_NFT_NAME", "SOLG", "")
	require.True(IsKind(err, ErrInvalidInput), err)
	err = f.m.Mint(ctx, tok, element, "SOLG_NFT", "SOLG")
	require.True(IsKind(err, ErrInvalidInput), err)
	require.Equal(sent, f.conn.count())
}

func TestTokensSurviveManagerRestart(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Options{})
	ctx := context.Background()

	first := f.m.NewToken()
	require.NoError(f.m.Mint(ctx, first, element, "SOLG_NFT", "SOLG"))
	second := f.m.NewToken()

	restarted := NewManager(f.wallet, f.conn, nil, nil, f.store, Options{}, nil)
	got, err := restarted.Token(first.ID())
	require.NoError(err)
	require.Equal(PhaseMinted, got.Phase())
	require.Equal(first.State(), got.State())
	require.Equal(StatusSucceeded, got.Status(OpMint).Status)

	all, err := restarted.Tokens()
	require.NoError(err)
	require.Len(all, 2)
	require.Equal(first.ID(), all[0].ID())
	require.Equal(second.ID(), all[1].ID())

	_, err = restarted.Token("missing")
	require.ErrorIs(err, ErrUnknownToken)

	sig, err := restarted.Burn(ctx, got)
	require.NoError(err)
	require.Equal(sig.String(), got.State().BurnSignature)
}

func TestKindOf(t *testing.T) {
	require := require.New(t)

	err := opError(OpMint, ErrSubmissionFailed, errors.New("boom"))
	require.Equal("mint: submission failed: boom", err.Error())
	require.Equal(ErrSubmissionFailed, KindOf(err))
	require.True(IsKind(err, ErrSubmissionFailed))
	require.False(IsKind(err, ErrInvalidInput))
	require.Nil(KindOf(errors.New("plain")))
	require.Nil(KindOf(nil))
}

func TestDisconnectDuringOperation(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Options{})
	ctx := context.Background()

	tok := f.m.NewToken()
	f.conn.entered = make(chan struct{})
	f.conn.release = make(chan struct{})

	done := make(chan error, 1)
	go func() { done <- f.m.Mint(ctx, tok, element, "SOLG_NFT", "SOLG") }()
	<-f.conn.entered

	f.wallet.connected.Store(false)
	close(f.conn.release)

	// the interrupted mint completes, the next operation sees the disconnect
	require.NoError(<-done)
	require.Equal(PhaseMinted, tok.Phase())

	_, err := f.m.Burn(ctx, tok)
	require.True(IsKind(err, ErrNotConnected), err)
	require.Equal(PhaseMinted, tok.Phase())
}

func TestInterruptedOperationSurvivesRestart(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, Options{})
	ctx := context.Background()

	tok := f.m.NewToken()
	f.conn.entered = make(chan struct{})
	f.conn.release = make(chan struct{})

	done := make(chan error, 1)
	go func() { done <- f.m.Mint(ctx, tok, element, "SOLG_NFT", "MNFT") }()
	<-f.conn.entered

	// the process dies here: the store already knows the mint was attempted
	rec, err := f.store.ReadToken(tok.ID())
	require.NoError(err)
	require.Equal(StatusInFlight.String(), rec.Operations[string(OpMint)].Status)

	restarted := NewManager(f.wallet, f.conn, nil, nil, f.store, Options{}, nil)
	got, err := restarted.Token(tok.ID())
	require.NoError(err)
	require.False(got.InFlight())
	require.Equal(PhaseUnminted, got.Phase())
	require.Equal(StatusFailed, got.Status(OpMint).Status)
	require.Equal("interrupted", got.Status(OpMint).Err)

	close(f.conn.release)
	require.NoError(<-done)
	rec, err = f.store.ReadToken(tok.ID())
	require.NoError(err)
	require.Equal(StatusSucceeded.String(), rec.Operations[string(OpMint)].Status)
}
