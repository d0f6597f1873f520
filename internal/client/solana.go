package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jam1729/create-update-burn-nft/internal/common"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

const (
	defaultPollInterval   = 500 * time.Millisecond
	defaultConfirmTimeout = 2 * time.Minute
)

// ErrTransactionFailed is returned when a submitted transaction lands with an on-chain error
var ErrTransactionFailed = errors.New("transaction failed on chain")

// Options tune confirmation polling
type Options struct {
	PollInterval   time.Duration
	ConfirmTimeout time.Duration
}

// SolanaClient is a client for working with Solana RPC
type SolanaClient struct {
	rpcClient *rpc.Client
	rpcURL    string
	opts      Options
	log       *zap.Logger
}

// NewSolanaClient creates a new Solana client for the given cluster URL.
func NewSolanaClient(rpcURL string, opts Options, logger *zap.Logger) *SolanaClient {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.ConfirmTimeout <= 0 {
		opts.ConfirmTimeout = defaultConfirmTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SolanaClient{
		rpcClient: rpc.New(rpcURL),
		rpcURL:    rpcURL,
		opts:      opts,
		log:       logger,
	}
}

// URL returns the cluster URL the client talks to
func (c *SolanaClient) URL() string {
	return c.rpcURL
}

// LatestBlockhash gets the latest finalized blockhash
func (c *SolanaClient) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	recent, err := c.rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	if recent == nil || recent.Value == nil {
		return solana.Hash{}, errors.New("empty blockhash response")
	}
	return recent.Value.Blockhash, nil
}

// MinimumBalanceForRentExemption gets the rent-exempt minimum for an account of size bytes
func (c *SolanaClient) MinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error) {
	lamports, err := c.rpcClient.GetMinimumBalanceForRentExemption(ctx, size, rpc.CommitmentFinalized)
	if err != nil {
		return 0, fmt.Errorf("failed to get rent exemption: %w", err)
	}
	return lamports, nil
}

// Balance gets SOL balance in lamports
func (c *SolanaClient) Balance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	balance, err := c.rpcClient.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to get SOL balance: %w", err)
	}
	return balance.Value, nil
}

// SendAndConfirm submits a signed transaction and waits until it is confirmed
func (c *SolanaClient) SendAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false, // Transaction validation before node
			PreflightCommitment: rpc.CommitmentFinalized,
		},
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	c.log.Debug("transaction submitted", zap.Stringer("signature", sig))

	if err := c.confirm(ctx, sig); err != nil {
		return sig, err
	}
	return sig, nil
}

// confirm polls the signature status until it reaches confirmed commitment
func (c *SolanaClient) confirm(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.ConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()

	for {
		statuses, err := c.rpcClient.GetSignatureStatuses(ctx, false, sig)
		if err != nil {
			c.log.Debug("signature status not available", zap.Stringer("signature", sig), zap.Error(err))
		} else if len(statuses.Value) > 0 && statuses.Value[0] != nil {
			status := statuses.Value[0]
			if status.Err != nil {
				return fmt.Errorf("%w: %v", ErrTransactionFailed, status.Err)
			}
			switch status.ConfirmationStatus {
			case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
				c.log.Debug("transaction confirmed",
					zap.Stringer("signature", sig),
					zap.Uint64("slot", status.Slot),
				)
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("transaction %s not confirmed: %w", sig, ctx.Err())
		case <-ticker.C:
		}
	}
}

// InsufficientFundsError formats the payer shortfall in SOL units
func InsufficientFundsError(have, need uint64) error {
	return fmt.Errorf("insufficient SOL balance. Required: %s SOL. Have: %s SOL",
		common.LamportsToSOL(need), common.LamportsToSOL(have))
}
