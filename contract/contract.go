//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Session is the live handle to one connected client.
// Deliver pushes one text line to the peer; a failed Deliver means the peer
// is gone and the session must be torn down, never that the original sender
// failed. Close is idempotent.
type Session interface {
	ID() string
	Username() string
	Deliver(line string) error
	Close() error
}

// IConnections maps usernames to live sessions.
// Track/Forget maintain the full live set (including sessions still in
// handshake) used for broadcast enumeration.
type IConnections interface {
	Track(s Session)
	Forget(s Session)
	Register(name string, s Session) error
	Unregister(s Session)
	Lookup(name string) (Session, bool)
	Names() []string
	AllSessions() []Session
	Count() int
}

// Departure reports a group a session just left and the members who stayed
// behind, captured atomically with the removal so notices reach exactly the
// right peers.
type Departure struct {
	Group     string
	Remaining []Session
}

// JoinResult reports the outcome of joining a group: the departure from the
// previous group (nil if there was none) and the other members of the new one.
type JoinResult struct {
	Left   *Departure
	Others []Session
}

// IGroups maps group names to member sessions. A session belongs to at most
// one group; a group disappears as soon as its last member leaves.
type IGroups interface {
	Create(name string, founder Session) (*Departure, error)
	Join(name string, s Session) (JoinResult, error)
	Leave(s Session) (Departure, error)
	GroupOf(s Session) (string, bool)
	Members(name string) []Session
	ListNames() []string
	Count() int
}

// Collaborator is the external AI question/answer service.
// Ask blocks until an answer arrives, the context expires, or the
// collaborator fails; failures stay confined to the asking session.
type Collaborator interface {
	Ask(ctx context.Context, question string) (string, error)
}
