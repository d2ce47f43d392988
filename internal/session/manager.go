package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/avezina/givehub/internal/api"
	"github.com/avezina/givehub/internal/logging"
	"github.com/avezina/givehub/internal/store"
)

// Manager is the session state machine. One instance lives for the process;
// collaborators receive it by reference.
//
// A single mutex serializes every state transition and store write, so
// concurrent invocations (a double-tapped sign-in) cannot interleave partial
// writes: the last completing operation's result is the one observed.
// Network I/O happens outside the lock.
type Manager struct {
	api   api.Client
	store store.Store
	log   logging.Logger

	mu          sync.Mutex
	state       State
	session     *Session
	initialized bool
}

func NewManager(c api.Client, st store.Store, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		api:   c,
		store: st,
		log:   log.With("component", "session"),
		state: StateUnknown,
	}
}

// Initialize consults the durable store once at process start and resolves
// the Unknown state. Any storage or decode failure lands in Unauthenticated:
// it is logged, never surfaced, and never produces a half-populated session.
// Calling Initialize again is a no-op. Returns the resulting state.
func (m *Manager) Initialize(ctx context.Context) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return m.state
	}
	m.initialized = true

	data, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNoRecord) {
			m.log.Warn(ctx, "session restore failed, starting signed out", "error", err)
		}
		m.state = StateUnauthenticated
		return m.state
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil || s.Token == "" || s.UserID == "" {
		m.log.Warn(ctx, "persisted session unusable, starting signed out", "error", err)
		m.state = StateUnauthenticated
		return m.state
	}

	m.session = &s
	m.state = StateAuthenticated
	m.log.Info(ctx, "session restored", "userId", s.UserID, "role", s.Role)
	return m.state
}

// SignIn exchanges credentials for a session. The durable record is written
// before the transition is reported complete; if that write fails the
// backend's acceptance is discarded, prior state is kept, and a StorageError
// is returned (recovery is caller policy). Credential rejections and
// transport failures leave state untouched.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	acct, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	s := &Session{
		UserID: acct.UserID,
		Name:   acct.Name,
		Email:  acct.Email,
		Token:  acct.Token,
		Role:   acct.Role,
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(ctx, data); err != nil {
		return nil, &StorageError{Op: "save", Err: err}
	}
	m.session = s
	m.state = StateAuthenticated
	m.log.Info(ctx, "signed in", "userId", s.UserID, "role", s.Role)

	out := *s
	return &out, nil
}

// SignUp registers a new account. It deliberately does not establish a
// session: the caller is expected to navigate to sign-in afterwards. The
// normalized account is returned for display.
func (m *Manager) SignUp(ctx context.Context, p api.SignUpParams) (*api.Account, error) {
	acct, err := m.api.SignUp(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	m.log.Info(ctx, "account registered", "userId", acct.UserID, "role", acct.Role)
	return acct, nil
}

// SignOut clears the durable record and the in-memory session. The in-memory
// state always ends Unauthenticated, even when the store delete fails; the
// failure is still reported so the UI can mention it. Safe to call when
// already signed out.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delErr := m.store.Delete(ctx)

	m.session = nil
	m.state = StateUnauthenticated
	m.initialized = true

	if delErr != nil {
		m.log.Error(ctx, "session record delete failed", "error", delErr)
		return &StorageError{Op: "delete", Err: delErr}
	}
	m.log.Info(ctx, "signed out")
	return nil
}

// Current returns a copy of the live session, if any. Pure read, no I/O.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// IsAuthenticated reports whether a session is live. Pure read, no I/O.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAuthenticated
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// AuthorizationHeader returns the value collaborators attach to the
// Authorization header of authenticated requests.
func (m *Manager) AuthorizationHeader() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return "", ErrNotAuthenticated
	}
	return "Bearer " + m.session.Token, nil
}
