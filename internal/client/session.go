package client

import (
	"context"
	"sync"
	"time"
)

// session holds the per connection identifiers stamped into outbound
// headers and the heartbeat lifecycle. The loop goroutine owns the
// writes, but the heartbeat goroutine shares the send path that reads
// them, so every access goes through the mutex.
type session struct {
	mu sync.Mutex

	steamID       *uint64
	miniprofileID *uint64
	sessionID     *int32

	heartbeatStop context.CancelFunc
}

// begin records the identity the caller is logging on with.
func (s *session) begin(steamID, miniprofileID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steamID = &steamID
	s.miniprofileID = &miniprofileID
}

func (s *session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steamID = nil
}

// identity returns the identifiers as of this instant. The pointers are
// never written through, so sharing them is safe.
func (s *session) identity() (steamID, miniprofileID *uint64, sessionID *int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steamID, s.miniprofileID, s.sessionID
}

// noteSessionID adopts the candidate only when no session id is known
// yet and the candidate is nonzero. Once learned the value is sticky
// for the life of the connection.
func (s *session) noteSessionID(candidate *int32) bool {
	if candidate == nil || *candidate == 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionID != nil {
		return false
	}
	v := *candidate
	s.sessionID = &v
	return true
}

// replaceHeartbeat cancels any running heartbeat task and installs the
// new task's cancel function.
func (s *session) replaceHeartbeat(cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.heartbeatStop != nil {
		s.heartbeatStop()
	}
	s.heartbeatStop = cancel
}

// stopHeartbeat cancels the heartbeat task. Calling it with no
// heartbeat running, or twice, is a no-op.
func (s *session) stopHeartbeat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.heartbeatStop != nil {
		s.heartbeatStop()
		s.heartbeatStop = nil
	}
}

// heartbeatInterval converts the server supplied seconds value.
func heartbeatInterval(seconds int32) time.Duration {
	return time.Duration(seconds) * time.Second
}
