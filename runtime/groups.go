package runtime

import (
	"sync"

	"chatline/contract"
	"chatline/errors"
)

// Groups maps group names to member sessions. One mutex serializes every
// mutation so a session is never observable in two groups, not even
// transiently. Member snapshots for notices are captured under the same
// lock and returned to the caller; no lock is ever held while delivering.
type Groups struct {
	mu       sync.Mutex
	members  map[string]map[string]contract.Session // group -> session ID -> session
	byMember map[string]string                      // session ID -> group
	order    []string                               // creation order
}

func NewGroups() *Groups {
	return &Groups{
		members:  make(map[string]map[string]contract.Session),
		byMember: make(map[string]string),
	}
}

// Create makes a new group with the founder as sole member. The founder is
// removed from its previous group first; the returned Departure (nil if the
// founder was groupless) carries that group's remaining members so the caller
// can notify them.
func (g *Groups) Create(name string, founder contract.Session) (*contract.Departure, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.members[name]; exists {
		return nil, errors.ErrGroupExists
	}

	left := g.removeLocked(founder)
	g.members[name] = map[string]contract.Session{founder.ID(): founder}
	g.byMember[founder.ID()] = name
	g.order = append(g.order, name)
	return left, nil
}

// Join moves a session into an existing group, atomically removing it from
// its previous group. Rejoining the current group is a no-op success.
func (g *Groups) Join(name string, s contract.Session) (contract.JoinResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	group, ok := g.members[name]
	if !ok {
		return contract.JoinResult{}, errors.ErrGroupNotFound
	}

	if g.byMember[s.ID()] == name {
		return contract.JoinResult{Others: g.othersLocked(name, s)}, nil
	}

	left := g.removeLocked(s)
	group[s.ID()] = s
	g.byMember[s.ID()] = name
	return contract.JoinResult{Left: left, Others: g.othersLocked(name, s)}, nil
}

// Leave removes a session from its current group, deleting the group if it
// empties out.
func (g *Groups) Leave(s contract.Session) (contract.Departure, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.byMember[s.ID()]; !ok {
		return contract.Departure{}, errors.ErrNotInGroup
	}
	return *g.removeLocked(s), nil
}

func (g *Groups) GroupOf(s contract.Session) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	name, ok := g.byMember[s.ID()]
	return name, ok
}

// Members returns a snapshot of every member of a group, nil if the group
// does not exist.
func (g *Groups) Members(name string) []contract.Session {
	g.mu.Lock()
	defer g.mu.Unlock()

	group, ok := g.members[name]
	if !ok {
		return nil
	}
	members := make([]contract.Session, 0, len(group))
	for _, member := range group {
		members = append(members, member)
	}
	return members
}

// ListNames returns the group names in creation order. The order is stable
// for a given sequence of operations.
func (g *Groups) ListNames() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

func (g *Groups) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.members)
}

// removeLocked pulls a session out of its current group, deletes the group
// when the last member is gone, and reports who stayed behind. Callers hold
// the mutex.
func (g *Groups) removeLocked(s contract.Session) *contract.Departure {
	name, ok := g.byMember[s.ID()]
	if !ok {
		return nil
	}

	delete(g.byMember, s.ID())
	group := g.members[name]
	delete(group, s.ID())

	if len(group) == 0 {
		delete(g.members, name)
		g.dropFromOrder(name)
		return &contract.Departure{Group: name}
	}

	remaining := make([]contract.Session, 0, len(group))
	for _, member := range group {
		remaining = append(remaining, member)
	}
	return &contract.Departure{Group: name, Remaining: remaining}
}

func (g *Groups) othersLocked(name string, s contract.Session) []contract.Session {
	var others []contract.Session
	for id, member := range g.members[name] {
		if id != s.ID() {
			others = append(others, member)
		}
	}
	return others
}

func (g *Groups) dropFromOrder(name string) {
	for i, n := range g.order {
		if n == name {
			g.order = append(g.order[:i], g.order[i+1:]...)
			return
		}
	}
}
