package session

import (
	"context"
	"log"
	"sync"
	"time"
)

// Authenticator is the record store's auth subsystem as the Manager needs
// it. SignUp may legitimately return a nil session when the backend defers
// activation; the push channel reports the truth either way.
type Authenticator interface {
	CurrentSession(ctx context.Context) (*Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
}

// Snapshot is the read-only projection handed to observers.
type Snapshot struct {
	State   State    `json:"state"`
	Session *Session `json:"session,omitempty"`
	Busy    bool     `json:"busy"`
	InitErr error    `json:"-"`
}

// Manager is the single source of truth for who is signed in. After
// Initialize performs the first resolution, the push channel is the sole
// authority for transitions: SignIn, SignUp and SignOut never write state
// themselves. A push event for a different user wholly replaces the held
// Session; calls already in flight for the previous user are neither
// cancelled nor reconciled.
type Manager struct {
	auth     Authenticator
	hub      *Hub
	listener *Listener

	mu       sync.RWMutex
	state    State
	session  *Session
	busy     int
	initErr  error
	disposed bool
	subs     map[chan Snapshot]struct{}

	done chan struct{}
}

func NewManager(auth Authenticator, hub *Hub) *Manager {
	m := &Manager{
		auth:  auth,
		hub:   hub,
		state: Uninitialized,
		subs:  map[chan Snapshot]struct{}{},
		done:  make(chan struct{}),
	}
	// attach to the push channel before anything can publish through us
	m.listener = hub.Subscribe()
	go m.run()
	return m
}

func (m *Manager) run() {
	for {
		select {
		case evt, ok := <-m.listener.C:
			if !ok {
				return
			}
			m.apply(evt.Session, nil)
		case <-m.done:
			return
		}
	}
}

// Initialize resolves the current session from the record store. A backend
// failure degrades to unauthenticated and is kept as a non-fatal
// initialization error rather than returned, so app start is never blocked.
func (m *Manager) Initialize(ctx context.Context) error {
	if m.isDisposed() {
		return ErrDisposed
	}
	sess, err := m.auth.CurrentSession(ctx)
	if err != nil {
		log.Printf("session: initialize: %v", err)
		m.apply(nil, err)
		return nil
	}
	if sess.Expired(time.Now()) {
		sess = nil
	}
	m.apply(sess, nil)
	return nil
}

// SignIn verifies credentials against the backend. State changes arrive via
// the push channel, not here; on failure the backend's error is surfaced and
// state is left as it was.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	if m.isDisposed() {
		return ErrDisposed
	}
	m.setBusy(1)
	defer m.setBusy(-1)

	if _, err := m.auth.SignInWithPassword(ctx, email, password); err != nil {
		return &AuthError{Op: "sign in", Err: err}
	}
	return nil
}

// SignUp registers a new account. Whether a session is active immediately is
// backend policy; the manager does not assume activation.
func (m *Manager) SignUp(ctx context.Context, email, password string) error {
	if m.isDisposed() {
		return ErrDisposed
	}
	m.setBusy(1)
	defer m.setBusy(-1)

	if _, err := m.auth.SignUp(ctx, email, password); err != nil {
		return &AuthError{Op: "sign up", Err: err}
	}
	return nil
}

// SignOut invalidates the backend session. Signing out while already
// unauthenticated is a no-op from the backend's perspective.
func (m *Manager) SignOut(ctx context.Context) error {
	if m.isDisposed() {
		return ErrDisposed
	}
	m.setBusy(1)
	defer m.setBusy(-1)

	if err := m.auth.SignOut(ctx); err != nil {
		return &AuthError{Op: "sign out", Err: err}
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Subscribe returns a channel receiving one Snapshot per transition. The
// caller must drain it and detach with Unsubscribe when done.
func (m *Manager) Subscribe() chan Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan Snapshot, 16)
	if m.disposed {
		close(ch)
		return ch
	}
	m.subs[ch] = struct{}{}
	return ch
}

func (m *Manager) Unsubscribe(ch chan Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[ch]; ok {
		delete(m.subs, ch)
		close(ch)
	}
}

// Close detaches the manager from the push channel and marks it inert. No
// transition is applied afterwards; an already-issued backend call still
// completes but its state write is discarded.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	for ch := range m.subs {
		delete(m.subs, ch)
		close(ch)
	}
	m.mu.Unlock()

	close(m.done)
	m.hub.Unsubscribe(m.listener)
}

// apply is the single transition point: a present session means
// authenticated, an absent one unauthenticated. Observers are notified once
// per transition, non-blocking so a stalled observer cannot wedge the
// push-channel loop.
func (m *Manager) apply(sess *Session, initErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return
	}
	if sess != nil {
		m.state = Authenticated
		copied := *sess
		m.session = &copied
	} else {
		m.state = Unauthenticated
		m.session = nil
	}
	if initErr != nil {
		m.initErr = initErr
	}

	snap := m.snapshotLocked()
	for ch := range m.subs {
		select {
		case ch <- snap:
		default:
			log.Printf("session: observer not draining, transition dropped")
		}
	}
}

func (m *Manager) snapshotLocked() Snapshot {
	var sess *Session
	if m.session != nil {
		copied := *m.session
		sess = &copied
	}
	return Snapshot{State: m.state, Session: sess, Busy: m.busy > 0, InitErr: m.initErr}
}

func (m *Manager) setBusy(delta int) {
	m.mu.Lock()
	m.busy += delta
	m.mu.Unlock()
}

func (m *Manager) isDisposed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.disposed
}
