package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// rpcServer answers JSON-RPC methods with canned results
func rpcServer(t *testing.T, results map[string]func() any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if fn, ok := results[req.Method]; ok {
			resp["result"] = fn()
		} else {
			resp["error"] = map[string]any{"code": -32601, "message": "method not found: " + req.Method}
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func withContext(v any) map[string]any {
	return map[string]any{"context": map[string]any{"slot": 1}, "value": v}
}

func signedTransfer(t *testing.T) (*solana.Transaction, solana.Signature) {
	t.Helper()
	payer := solana.NewWallet().PrivateKey
	tx, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1, payer.PublicKey(), solana.NewWallet().PublicKey()).Build()},
		solana.Hash{1},
		solana.TransactionPayer(payer.PublicKey()),
	)
	require.NoError(t, err)
	sigs, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payer.PublicKey()) {
			return &payer
		}
		return nil
	})
	require.NoError(t, err)
	return tx, sigs[0]
}

func TestSendAndConfirmPollsUntilConfirmed(t *testing.T) {
	require := require.New(t)
	tx, sig := signedTransfer(t)

	var polls atomic.Int32
	srv := rpcServer(t, map[string]func() any{
		"sendTransaction": func() any { return sig.String() },
		"getSignatureStatuses": func() any {
			if polls.Add(1) < 3 {
				return withContext([]any{nil})
			}
			return withContext([]any{map[string]any{
				"slot": 42, "confirmations": 1, "err": nil, "confirmationStatus": "confirmed",
			}})
		},
	})

	c := NewSolanaClient(srv.URL, Options{PollInterval: time.Millisecond, ConfirmTimeout: 5 * time.Second}, nil)
	got, err := c.SendAndConfirm(context.Background(), tx)
	require.NoError(err)
	require.Equal(sig, got)
	require.GreaterOrEqual(polls.Load(), int32(3))
}

func TestSendAndConfirmOnChainError(t *testing.T) {
	tx, sig := signedTransfer(t)

	srv := rpcServer(t, map[string]func() any{
		"sendTransaction": func() any { return sig.String() },
		"getSignatureStatuses": func() any {
			return withContext([]any{map[string]any{
				"slot": 42, "confirmations": nil, "err": map[string]any{"InstructionError": []any{0, "Custom"}}, "confirmationStatus": "processed",
			}})
		},
	})

	c := NewSolanaClient(srv.URL, Options{PollInterval: time.Millisecond}, nil)
	_, err := c.SendAndConfirm(context.Background(), tx)
	require.ErrorIs(t, err, ErrTransactionFailed)
}

func TestSendAndConfirmTimeout(t *testing.T) {
	tx, sig := signedTransfer(t)

	srv := rpcServer(t, map[string]func() any{
		"sendTransaction":      func() any { return sig.String() },
		"getSignatureStatuses": func() any { return withContext([]any{nil}) },
	})

	c := NewSolanaClient(srv.URL, Options{PollInterval: time.Millisecond, ConfirmTimeout: 20 * time.Millisecond}, nil)
	_, err := c.SendAndConfirm(context.Background(), tx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSendRejected(t *testing.T) {
	tx, _ := signedTransfer(t)
	srv := rpcServer(t, map[string]func() any{})

	c := NewSolanaClient(srv.URL, Options{}, nil)
	_, err := c.SendAndConfirm(context.Background(), tx)
	require.ErrorContains(t, err, "failed to send transaction")
}

func TestQueries(t *testing.T) {
	require := require.New(t)
	hash := solana.Hash{7, 7, 7}

	srv := rpcServer(t, map[string]func() any{
		"getLatestBlockhash": func() any {
			return withContext(map[string]any{"blockhash": hash.String(), "lastValidBlockHeight": 100})
		},
		"getMinimumBalanceForRentExemption": func() any { return 1461600 },
		"getBalance":                        func() any { return withContext(2039280) },
	})
	c := NewSolanaClient(srv.URL, Options{}, nil)

	got, err := c.LatestBlockhash(context.Background())
	require.NoError(err)
	require.Equal(hash, got)

	rent, err := c.MinimumBalanceForRentExemption(context.Background(), 82)
	require.NoError(err)
	require.Equal(uint64(1461600), rent)

	bal, err := c.Balance(context.Background(), solana.NewWallet().PublicKey())
	require.NoError(err)
	require.Equal(uint64(2039280), bal)
}

func TestInsufficientFundsError(t *testing.T) {
	err := InsufficientFundsError(1000, 1461600)
	require.EqualError(t, err, "insufficient SOL balance. Required: 0.001461600 SOL. Have: 0.000001000 SOL")
}
