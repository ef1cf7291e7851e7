/*
session.go - Per-user interaction state

PURPOSE:
  A Session is one operator's in-flight interaction: the provisional basket,
  the selected return date, and the current mode. Sessions are pure UI state:
  in-memory only, never persisted, lost on restart by design.

CONCURRENCY:
  Each Session carries its own mutex. Two events from the same user (a rapid
  double-tap) serialize through that lock, so increments are never lost.
  Distinct users touch distinct sessions and need no shared lock; the Sessions
  map itself is guarded separately.

INVARIANTS:
  - Basket quantities are never negative: Remove clamps at zero.
  - A session is reset (basket and date cleared) on entering a top-level flow
    and again after a successful commit.

SEE ALSO:
  - engine.go: Holds the session lock across the whole commit
  - basket.go: Rendering a basket to display text
*/
package depot

import "sync"

// =============================================================================
// SESSION
// =============================================================================

// Session is one user's in-flight interaction state. All access goes through
// the locked methods; the zero value is not usable, use Sessions.Ensure.
type Session struct {
	mu         sync.Mutex
	basket     map[string]int
	returnDate string
	mode       Mode
}

func newSession() *Session {
	return &Session{basket: make(map[string]int), mode: ModeOrder}
}

// Reset clears the basket and return date and sets the mode. Called when the
// user enters a top-level flow.
func (s *Session) Reset(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.mode = mode
}

func (s *Session) resetLocked() {
	s.basket = make(map[string]int)
	s.returnDate = ""
}

// Add increments the basket entry for the item, creating it if absent.
// There is no upper bound; stock sufficiency is checked only at commit.
func (s *Session) Add(item string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.basket[item]++
}

// Remove decrements the basket entry for the item, clamped at zero.
// Removing an absent or zero item is a no-op.
func (s *Session) Remove(item string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.basket[item] > 0 {
		s.basket[item]--
	}
}

// Quantity returns the current basket count for the item.
func (s *Session) Quantity(item string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket[item]
}

// SetReturnDate records the selected return date (ISO date string).
func (s *Session) SetReturnDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.returnDate = date
}

// ReturnDate returns the selected return date, or "" when none is set.
func (s *Session) ReturnDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.returnDate
}

// Mode returns the session's current mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Effective returns the basket entries with positive counts, as a copy.
func (s *Session) Effective() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveLocked()
}

func (s *Session) effectiveLocked() map[string]int {
	out := make(map[string]int)
	for name, qty := range s.basket {
		if qty > 0 {
			out[name] = qty
		}
	}
	return out
}

// =============================================================================
// SESSIONS - Per-user store, lazy creation, process lifetime
// =============================================================================

// Sessions holds every user's session for the process lifetime. There is no
// eviction; memory grows with distinct users, which is an accepted trade-off
// at this scale.
type Sessions struct {
	mu    sync.RWMutex
	byUID map[int64]*Session
}

// NewSessions creates an empty session store.
func NewSessions() *Sessions {
	return &Sessions{byUID: make(map[int64]*Session)}
}

// Ensure returns the session for the user, creating a fresh one (empty
// basket, no date, order mode) on first interaction.
func (ss *Sessions) Ensure(userID int64) *Session {
	ss.mu.RLock()
	s, ok := ss.byUID[userID]
	ss.mu.RUnlock()
	if ok {
		return s
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	if s, ok := ss.byUID[userID]; ok {
		return s
	}
	s = newSession()
	ss.byUID[userID] = s
	return s
}

// Len returns the number of live sessions.
func (ss *Sessions) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.byUID)
}
