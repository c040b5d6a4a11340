package shippin

import (
	"fmt"
	"sync"
)

// SessionStatus enumerates the states a Session moves through.
type SessionStatus string

const (
	SessionAnonymous      SessionStatus = "anonymous"
	SessionAuthenticating SessionStatus = "authenticating"
	SessionAuthenticated  SessionStatus = "authenticated"
	SessionError          SessionStatus = "error"
)

// Identity holds the attributes of the authenticated principal. It is created
// on successful authentication and destroyed on sign-out.
type Identity struct {
	Role  Role   `json:"role"`
	Token string `json:"-"`
	Email string `json:"email"`
}

// Session is a point-in-time snapshot of the store. Status is authenticated
// if and only if Identity is non-nil and its token is non-empty.
type Session struct {
	Status   SessionStatus
	Identity *Identity
	LastErr  error
}

func (s Session) String() string {
	email := "<nil>"
	if s.Identity != nil {
		email = s.Identity.Email
	}
	return fmt.Sprintf("status=%s email=%s", s.Status, email)
}

// SessionStore is the process-wide holder of the current Session. It is
// written exclusively by the session operations in this package and read by
// every other component. A failed operation preserves whatever Identity was
// committed before the attempt.
type SessionStore struct {
	mu       sync.RWMutex
	status   SessionStatus
	identity *Identity
	lastErr  error
	seq      uint64
}

func NewSessionStore() *SessionStore {
	return &SessionStore{status: SessionAnonymous}
}

// Current returns a snapshot of the session. The Identity is copied so
// readers cannot mutate store state.
func (s *SessionStore) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Session{Status: s.status, LastErr: s.lastErr}
	if s.identity != nil {
		id := *s.identity
		snapshot.Identity = &id
	}
	return snapshot
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status == SessionAuthenticated && s.identity != nil && s.identity.Token != ""
}

// HasRole reports whether the session is authenticated as the given role.
// Cross-role access is indistinguishable from anonymous access.
func (s *SessionStore) HasRole(role Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status == SessionAuthenticated && s.identity != nil &&
		s.identity.Token != "" && s.identity.Role == role
}

// Token returns the bearer credential for the current identity, or the empty
// string when no one is signed in. Callers attach it per request; absence
// means the call goes out unauthenticated, the server is the final authority.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return ""
	}
	return s.identity.Token
}

// begin marks an operation in flight and hands back its sequence number. The
// previous identity, if any, stays valid until the operation resolves.
func (s *SessionStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.status = SessionAuthenticating
	s.lastErr = nil
	return s.seq
}

// commit installs the identity produced by operation seq. Completions that
// arrive after a newer operation already ran are stale: last write wins, the
// stale result is discarded.
func (s *SessionStore) commit(seq uint64, identity Identity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}

	if identity.Token == "" {
		s.status = SessionError
		s.lastErr = ErrMalformedResponse
		return false
	}

	id := identity
	s.status = SessionAuthenticated
	s.identity = &id
	s.lastErr = nil
	return true
}

// fail records the failure of operation seq. The identity committed before
// the attempt, if any, is left untouched.
func (s *SessionStore) fail(seq uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}

	// A prior committed identity remains usable; only the status records
	// that the latest attempt failed.
	s.status = SessionError
	s.lastErr = err
	return true
}

// clear unconditionally returns the session to anonymous. Never fails.
func (s *SessionStore) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.status = SessionAnonymous
	s.identity = nil
	s.lastErr = nil
}
