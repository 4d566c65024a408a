package runtime

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// fakeSession records delivered lines in memory; used across registry and
// router tests.
type fakeSession struct {
	id   string
	name string

	mu     sync.Mutex
	lines  []string
	broken bool
	closed bool
}

func newFakeSession(name string) *fakeSession {
	return &fakeSession{id: uuid.NewString(), name: name}
}

func (f *fakeSession) ID() string       { return f.id }
func (f *fakeSession) Username() string { return f.name }

func (f *fakeSession) Deliver(line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.broken {
		return fmt.Errorf("broken pipe")
	}
	f.lines = append(f.lines, line)
	return nil
}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSession) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.lines))
	copy(out, f.lines)
	return out
}

func (f *fakeSession) breakPipe() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broken = true
}

func (f *fakeSession) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
