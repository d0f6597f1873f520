package nft

import (
	"context"
	"fmt"

	"github.com/jam1729/create-update-burn-nft/internal/wallet"

	"github.com/gagliardetto/solana-go"
)

// submit builds one transaction paid by payer, signs it with every required
// signer and waits for confirmation
func (m *Manager) submit(ctx context.Context, instructions []solana.Instruction, payer solana.PublicKey, signers ...wallet.Signer) (solana.Signature, error) {
	blockhash, err := m.conn.LatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, err
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	if err := signTransaction(ctx, tx, signers...); err != nil {
		return solana.Signature{}, err
	}

	return m.conn.SendAndConfirm(ctx, tx)
}

// signTransaction fills tx.Signatures in account key order
func signTransaction(ctx context.Context, tx *solana.Transaction, signers ...wallet.Signer) error {
	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	required := int(tx.Message.Header.NumRequiredSignatures)
	if required > len(tx.Message.AccountKeys) {
		return fmt.Errorf("message requires %d signatures but has %d accounts", required, len(tx.Message.AccountKeys))
	}

	sigs := make([]solana.Signature, required)
	for i, key := range tx.Message.AccountKeys[:required] {
		var signer wallet.Signer
		for _, s := range signers {
			if s.PublicKey().Equals(key) {
				signer = s
				break
			}
		}
		if signer == nil {
			return fmt.Errorf("no signer for %s", key)
		}
		sig, err := signer.Sign(ctx, msg)
		if err != nil {
			return fmt.Errorf("signing rejected for %s: %w", key, err)
		}
		sigs[i] = sig
	}
	tx.Signatures = sigs
	return nil
}
