// Package runtime owns the shared connection and group bookkeeping and the
// message routing built on top of it. Each registry encapsulates its own
// synchronization; handles are passed explicitly, never held in globals.
package runtime

import (
	"sort"
	"sync"

	"chatline/contract"
	"chatline/errors"
)

// Connections maps usernames to live sessions and tracks every live session,
// including ones still in handshake, for broadcast enumeration.
type Connections struct {
	mu     sync.RWMutex
	byName map[string]contract.Session
	live   map[string]contract.Session // keyed by session ID
}

func NewConnections() *Connections {
	return &Connections{
		byName: make(map[string]contract.Session),
		live:   make(map[string]contract.Session),
	}
}

// Track adds a session to the live set before it has a username.
func (c *Connections) Track(s contract.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.live[s.ID()] = s
}

// Forget drops a session from the live set. Idempotent.
func (c *Connections) Forget(s contract.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.live, s.ID())
}

// Register claims a username for a session in one atomic check-and-insert.
// Two concurrent callers can never both observe the name as free.
func (c *Connections) Register(name string, s contract.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, taken := c.byName[name]; taken {
		return errors.ErrNameTaken
	}
	c.byName[name] = s
	return nil
}

// Unregister releases the username held by a session, if any. Idempotent.
// The name becomes reusable as soon as this returns.
func (c *Connections) Unregister(s contract.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, sess := range c.byName {
		if sess.ID() == s.ID() {
			delete(c.byName, name)
			return
		}
	}
}

func (c *Connections) Lookup(name string) (contract.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byName[name]
	return s, ok
}

// Names returns the registered usernames in lexical order.
func (c *Connections) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllSessions returns a copy-on-read snapshot of every live session.
// Concurrent registry changes never mutate a returned slice.
func (c *Connections) AllSessions() []contract.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sessions := make([]contract.Session, 0, len(c.live))
	for _, s := range c.live {
		sessions = append(sessions, s)
	}
	return sessions
}

func (c *Connections) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.live)
}
