package bot

import "sync"

// State is the position in the password-reset / account-linking dialog.
type State int

const (
	StateNone State = iota
	StateAwaitPassword
	StateAwaitPasswordConfirm
	StateAwaitUsername
	StateAwaitPasswordForLink
)

// SessionKey identifies one conversation: a chat and the user speaking
// in it.
type SessionKey struct {
	ChatID int64
	UserID int64
}

// Session holds the current state plus the transient data the flows
// carry between steps.
type Session struct {
	State       State
	PendingHash string // bcrypt hash of the first password entry
	PendingUser string // candidate username during linking
}

// StateStore keeps per-conversation sessions behind a narrow interface
// so the in-memory default can be swapped for a durable backend
// without touching the state machine.
type StateStore interface {
	Get(key SessionKey) Session
	Set(key SessionKey, session Session)
	Clear(key SessionKey)
}

// MemoryStateStore holds sessions in process memory; everything is
// lost on restart.
type MemoryStateStore struct {
	mu       sync.Mutex
	sessions map[SessionKey]Session
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{sessions: make(map[SessionKey]Session)}
}

func (s *MemoryStateStore) Get(key SessionKey) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[key]
}

func (s *MemoryStateStore) Set(key SessionKey, session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = session
}

func (s *MemoryStateStore) Clear(key SessionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}
