package conversation

import "sync"

// Session is the per-session ephemeral context. It lives only as long as the
// session: ending the session discards it. The turn mutex serializes turns of
// one session in arrival order; distinct sessions run fully concurrently.
type Session struct {
	id string

	turnMu sync.Mutex

	mu       sync.Mutex
	lastMood string
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// LastMood returns the most recent mood label detected in this session, or ""
// when no cleared turn has run yet.
func (s *Session) LastMood() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMood
}

func (s *Session) setLastMood(mood string) {
	if mood == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastMood = mood
}

func (s *Session) beginTurn() { s.turnMu.Lock() }
func (s *Session) endTurn()   { s.turnMu.Unlock() }

// Sessions is the in-process session registry.
type Sessions struct {
	mu sync.Mutex
	m  map[string]*Session
}

// NewSessions returns an empty registry.
func NewSessions() *Sessions {
	return &Sessions{m: make(map[string]*Session)}
}

// Get returns the session for id, creating it on first use.
func (r *Sessions) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.m[id]
	if !ok {
		sess = &Session{id: id}
		r.m[id] = sess
	}
	return sess
}

// End discards the session and its ephemeral context.
func (r *Sessions) End(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
}
