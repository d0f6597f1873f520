package nft

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jam1729/create-update-burn-nft/internal/model"

	"github.com/sasha-s/go-deadlock"
)

// Phase is the lifecycle position of a managed token.
// Unminted -> Minted -> Updated* -> Burned, Burned is terminal.
type Phase int

const (
	PhaseUnminted Phase = iota
	PhaseMinted
	PhaseUpdated
	PhaseBurned
)

func (p Phase) String() string {
	switch p {
	case PhaseUnminted:
		return "unminted"
	case PhaseMinted:
		return "minted"
	case PhaseUpdated:
		return "updated"
	case PhaseBurned:
		return "burned"
	default:
		return "unknown"
	}
}

func parsePhase(s string) (Phase, error) {
	for _, p := range []Phase{PhaseUnminted, PhaseMinted, PhaseUpdated, PhaseBurned} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

// Operation names a lifecycle operation
type Operation string

const (
	OpMint   Operation = "mint"
	OpUpdate Operation = "update"
	OpBurn   Operation = "burn"
)

// Status is the outcome of the last attempt of an operation
type Status int

const (
	StatusIdle Status = iota
	StatusInFlight
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusInFlight:
		return "in_flight"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func parseStatus(s string) Status {
	for _, st := range []Status{StatusInFlight, StatusSucceeded, StatusFailed} {
		if st.String() == s {
			return st
		}
	}
	return StatusIdle
}

// OperationStatus is the last attempt of one operation on a token
type OperationStatus struct {
	Status    Status
	Err       string
	Signature string
	At        time.Time
}

// Token is one NFT managed by the client.
// At most one operation runs against a token at a time.
type Token struct {
	id       string
	inFlight atomic.Bool

	mu        deadlock.RWMutex
	phase     Phase
	state     model.TokenState
	ops       map[Operation]OperationStatus
	createdAt time.Time
}

func newToken(id string) *Token {
	return &Token{
		id:        id,
		ops:       make(map[Operation]OperationStatus),
		createdAt: time.Now().UTC(),
	}
}

func tokenFromRecord(rec *model.TokenRecord) (*Token, error) {
	phase, err := parsePhase(rec.Phase)
	if err != nil {
		return nil, err
	}
	t := newToken(rec.ID)
	t.phase = phase
	t.state = rec.State
	t.createdAt = rec.CreatedAt
	for name, op := range rec.Operations {
		st := parseStatus(op.Status)
		// nothing survives a restart in flight
		if st == StatusInFlight {
			st = StatusFailed
			op.Error = "interrupted"
		}
		t.ops[Operation(name)] = OperationStatus{Status: st, Err: op.Error, Signature: op.Signature, At: op.At}
	}
	return t, nil
}

// ID returns the token id, empty for detached tokens
func (t *Token) ID() string {
	return t.id
}

// State returns a copy of the on-chain identity
func (t *Token) State() model.TokenState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Phase returns the lifecycle position
func (t *Token) Phase() Phase {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.phase
}

// Status returns the last attempt of op, StatusIdle if never attempted
func (t *Token) Status(op Operation) OperationStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ops[op]
}

// InFlight reports whether an operation is currently running
func (t *Token) InFlight() bool {
	return t.inFlight.Load()
}

// Record returns the persisted form of the token
func (t *Token) Record() *model.TokenRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ops := make(map[string]model.OperationRecord, len(t.ops))
	var updated time.Time
	for op, st := range t.ops {
		ops[string(op)] = model.OperationRecord{
			Status:    st.Status.String(),
			Error:     st.Err,
			Signature: st.Signature,
			At:        st.At,
		}
		if st.At.After(updated) {
			updated = st.At
		}
	}
	if updated.IsZero() {
		updated = t.createdAt
	}
	return &model.TokenRecord{
		ID:         t.id,
		Phase:      t.phase.String(),
		State:      t.state,
		Operations: ops,
		CreatedAt:  t.createdAt,
		UpdatedAt:  updated,
	}
}

// begin takes the in-flight guard and marks op in flight
func (t *Token) begin(op Operation) bool {
	if !t.inFlight.CompareAndSwap(false, true) {
		return false
	}
	t.mu.Lock()
	t.ops[op] = OperationStatus{Status: StatusInFlight, At: time.Now().UTC()}
	t.mu.Unlock()
	return true
}

// end records the outcome and releases the guard
func (t *Token) end(op Operation, sig string, err error) {
	st := OperationStatus{Status: StatusSucceeded, Signature: sig, At: time.Now().UTC()}
	if err != nil {
		st.Status = StatusFailed
		st.Err = err.Error()
	}
	t.mu.Lock()
	t.ops[op] = st
	t.mu.Unlock()
	t.inFlight.Store(false)
}
