// Package wallet owns the connection to the signing agent and exposes the
// owner's identity and signer to lifecycle operations.
package wallet

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

// ErrNotConnected is returned when a signer is required but the wallet is not connected
var ErrNotConnected = errors.New("wallet not connected")

// EventKind is the type of a wallet notification
type EventKind int

const (
	EventConnect EventKind = iota
	EventDisconnect
	EventConnectFailed
)

func (k EventKind) String() string {
	switch k {
	case EventConnect:
		return "connect"
	case EventDisconnect:
		return "disconnect"
	case EventConnectFailed:
		return "connect_failed"
	default:
		return "unknown"
	}
}

// Event is a connect/disconnect notification from the signing agent or the session
type Event struct {
	Kind      EventKind
	PublicKey solana.PublicKey
	Err       error
}

// Agent is the external signing agent holding the owner's key material
type Agent interface {
	// Connect requests a connection. Completion is reported on Events.
	Connect(ctx context.Context) error
	Disconnect() error
	IsConnected() bool
	PublicKey() solana.PublicKey
	// Signer leases the current key for one operation. Fails when not connected.
	Signer() (Signer, error)
	Events() <-chan Event
}

// Signer approves transaction messages on behalf of the owner.
// A lease stays valid after the agent disconnects until Release is called.
type Signer interface {
	PublicKey() solana.PublicKey
	Sign(ctx context.Context, message []byte) (solana.Signature, error)
	Release()
}
