package wallet

import (
	"context"
	"fmt"

	"github.com/jam1729/create-update-burn-nft/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"
)

// State is the connection state of a Session
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Session wraps one signing agent. Agent notifications mutate it, lifecycle
// operations only read it.
type Session struct {
	log *zap.Logger

	mu       deadlock.RWMutex
	agent    Agent
	state    State
	identity solana.PublicKey
	done     chan struct{}

	// attempt identifies the pending connect, cancel aborts it
	attempt uint64
	cancel  context.CancelFunc

	subMu   deadlock.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// NewSession creates a Session with no agent
func NewSession(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		log:  logger,
		subs: make(map[int]func(Event)),
	}
}

// TryAutoDetect adopts an agent present in the host environment if the session has none.
// The session stays Disconnected until Connect completes.
func (s *Session) TryAutoDetect(detect func() (Agent, bool)) bool {
	s.mu.RLock()
	has := s.agent != nil
	s.mu.RUnlock()
	if has {
		return false
	}
	agent, ok := detect()
	if !ok {
		return false
	}
	s.log.Info("signing agent present")
	return s.Adopt(agent)
}

// Adopt attaches an agent and starts listening to its notifications.
// Returns false if an agent is already attached.
func (s *Session) Adopt(agent Agent) bool {
	s.mu.Lock()
	if s.agent != nil {
		s.mu.Unlock()
		return false
	}
	s.agent = agent
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go s.watch(agent.Events(), done)
	return true
}

// Close stops listening to the agent
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
}

func (s *Session) watch(events <-chan Event, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.handle(ev)
		}
	}
}

func (s *Session) handle(ev Event) {
	s.mu.Lock()
	switch ev.Kind {
	case EventConnect:
		if s.state == Disconnected {
			// the user disconnected while the agent was still connecting
			agent := s.agent
			s.mu.Unlock()
			s.log.Info("dropping late wallet connect", zap.Stringer("publicKey", ev.PublicKey))
			go s.disconnectAgent(agent)
			return
		}
		s.state = Connected
		s.identity = ev.PublicKey
		s.endAttempt()
		s.log.Info("wallet got connected", zap.Stringer("publicKey", ev.PublicKey))
	case EventDisconnect:
		s.state = Disconnected
		s.identity = solana.PublicKey{}
		s.endAttempt()
		s.log.Info("disconnected from wallet")
	}
	s.mu.Unlock()
	s.notify(ev)
}

// endAttempt forgets the pending connect. Callers hold s.mu.
func (s *Session) endAttempt() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.attempt++
}

// disconnectAgent runs off the watch goroutine, the agent's Disconnect may block on its events channel
func (s *Session) disconnectAgent(agent Agent) {
	if agent == nil {
		return
	}
	if err := agent.Disconnect(); err != nil {
		s.log.Warn("failed to disconnect wallet", zap.Error(err))
	}
}

// Connect asks the agent to connect and returns without waiting for it.
// No-op when already connected or connecting. Without an agent it only logs.
// A Disconnect before the agent answers cancels the attempt.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	agent := s.agent
	if agent == nil {
		s.mu.Unlock()
		s.log.Warn("no provider found")
		return nil
	}
	if s.state != Disconnected {
		s.mu.Unlock()
		return nil
	}
	if agent.IsConnected() {
		s.state = Connected
		s.identity = agent.PublicKey()
		s.mu.Unlock()
		return nil
	}
	s.endAttempt()
	attemptCtx, cancel := context.WithCancel(ctx)
	s.state = Connecting
	s.cancel = cancel
	attempt := s.attempt
	s.mu.Unlock()

	go func() {
		defer cancel()
		if err := agent.Connect(attemptCtx); err != nil {
			s.log.Warn("wallet connect failed", zap.Error(err))
			s.mu.Lock()
			if s.state == Connecting && s.attempt == attempt {
				s.state = Disconnected
				s.endAttempt()
			}
			s.mu.Unlock()
			s.notify(Event{Kind: EventConnectFailed, Err: err})
		}
	}()
	return nil
}

// Disconnect drops the connection or cancels a pending connect. New operations
// fail with ErrNotConnected immediately, leases already handed out stay valid.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	agent := s.agent
	wasConnected := s.state != Disconnected
	s.state = Disconnected
	s.identity = solana.PublicKey{}
	s.endAttempt()
	s.mu.Unlock()

	if agent == nil || !wasConnected {
		return nil
	}
	if err := agent.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect wallet: %w", err)
	}
	return nil
}

// State returns the current connection state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// HasAgent reports whether a signing agent is attached
func (s *Session) HasAgent() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agent != nil
}

// CurrentIdentity returns the owner identity, ok is false when not connected
func (s *Session) CurrentIdentity() (model.WalletIdentity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Connected {
		return model.WalletIdentity{}, false
	}
	return model.WalletIdentity{
		PublicKey: s.identity.String(),
		Connected: true,
	}, true
}

// Acquire leases the signer for one operation
func (s *Session) Acquire() (Signer, error) {
	s.mu.RLock()
	agent, state, identity := s.agent, s.state, s.identity
	s.mu.RUnlock()

	if agent == nil || state != Connected {
		return nil, ErrNotConnected
	}
	signer, err := agent.Signer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConnected, err)
	}
	if !signer.PublicKey().Equals(identity) {
		signer.Release()
		return nil, fmt.Errorf("%w: signer does not match connected identity", ErrNotConnected)
	}
	return signer, nil
}

// Subscribe registers fn for every notification. fn runs on the notifying goroutine.
func (s *Session) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Session) notify(ev Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
