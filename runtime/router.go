package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"

	"chatline/contract"
	"chatline/domain"
	"chatline/moderation"
)

// Router resolves a parsed command into a recipient set and delivers the
// formatted lines. Registries are only consulted through snapshot-returning
// operations, so no registry lock is ever held during delivery or during the
// collaborator call.
type Router struct {
	log          *slog.Logger
	connections  contract.IConnections
	groups       contract.IGroups
	moderator    *moderation.Moderator
	collaborator contract.Collaborator
	askTimeout   time.Duration
}

func NewRouter(log *slog.Logger, connections contract.IConnections, groups contract.IGroups,
	moderator *moderation.Moderator, collaborator contract.Collaborator, askTimeout time.Duration) *Router {
	return &Router{
		log:          log,
		connections:  connections,
		groups:       groups,
		moderator:    moderator,
		collaborator: collaborator,
		askTimeout:   askTimeout,
	}
}

// Route delivers one command on behalf of sender.
func (r *Router) Route(ctx context.Context, sender contract.Session, cmd domain.Command) {
	switch c := cmd.(type) {
	case domain.PlainMessage:
		r.routeChat(sender, c.Text)
	case domain.Whisper:
		r.routeWhisper(sender, c.Target, c.Text)
	case domain.ListUsers:
		r.deliver(domain.FormatOnlineUsers(r.connections.Names()), sender)
	case domain.GroupCreate:
		r.routeGroupCreate(sender, c.Name)
	case domain.GroupJoin:
		r.routeGroupJoin(sender, c.Name)
	case domain.GroupLeave:
		r.routeGroupLeave(sender)
	case domain.GroupList:
		r.deliver(domain.FormatGroupNames(r.groups.ListNames()), sender)
	case domain.AIQuery:
		r.routeQuestion(ctx, sender, c.Question)
	case domain.Invalid:
		r.deliver(c.Reason, sender)
	}
}

// AnnounceJoin tells every other live session that a freshly registered user
// arrived.
func (r *Router) AnnounceJoin(sender contract.Session) {
	r.deliver(domain.FormatJoinedChat(sender.Username()), r.everyoneExcept(sender)...)
}

// Disconnect runs the fan-out side of session teardown: the departure notice
// for the session's group if it had one, a "left the chat" broadcast
// otherwise, then removal from both registries. Safe to call for sessions
// that never finished handshake.
func (r *Router) Disconnect(sender contract.Session) {
	registered := sender.Username() != ""

	if departure, err := r.groups.Leave(sender); err == nil {
		r.deliver(domain.FormatLeftGroup(sender.Username(), departure.Group), departure.Remaining...)
	} else if registered {
		r.deliver(domain.FormatLeftChat(sender.Username()), r.everyoneExcept(sender)...)
	}

	r.connections.Unregister(sender)
	r.connections.Forget(sender)
	_ = sender.Close()
}

// routeChat fans a plain message out to the sender's group, or to every live
// session when the sender is groupless. The sender always receives its own
// message back.
func (r *Router) routeChat(sender contract.Session, text string) {
	content := r.moderate(sender, text)

	if group, ok := r.groups.GroupOf(sender); ok {
		r.deliver(domain.FormatGroupChat(group, sender.Username(), content), r.groups.Members(group)...)
		return
	}
	r.deliver(domain.FormatChat(sender.Username(), content), r.connections.AllSessions()...)
}

func (r *Router) routeWhisper(sender contract.Session, target, text string) {
	recipient, ok := r.connections.Lookup(target)
	if !ok {
		r.deliver(domain.FormatUnknownUser(target), sender)
		return
	}
	line := domain.FormatWhisper(sender.Username(), text)
	if recipient.ID() == sender.ID() {
		r.deliver(line, sender)
		return
	}
	r.deliver(line, recipient, sender)
}

func (r *Router) routeGroupCreate(sender contract.Session, name string) {
	left, err := r.groups.Create(name, sender)
	if err != nil {
		r.deliver(domain.FormatGroupExists(name), sender)
		return
	}
	if left != nil {
		r.deliver(domain.FormatLeftGroup(sender.Username(), left.Group), left.Remaining...)
	}
	r.deliver(domain.FormatGroupCreated(name), sender)
	r.deliver(domain.FormatYouJoinedGroup(name), sender)
}

func (r *Router) routeGroupJoin(sender contract.Session, name string) {
	result, err := r.groups.Join(name, sender)
	if err != nil {
		r.deliver(domain.FormatUnknownGroup(name), sender)
		return
	}
	// Departure notice for the old group goes out before the join notice.
	if result.Left != nil {
		r.deliver(domain.FormatLeftGroup(sender.Username(), result.Left.Group), result.Left.Remaining...)
	}
	r.deliver(domain.FormatYouJoinedGroup(name), sender)
	r.deliver(domain.FormatJoinedGroup(sender.Username(), name), result.Others...)
}

func (r *Router) routeGroupLeave(sender contract.Session) {
	departure, err := r.groups.Leave(sender)
	if err != nil {
		r.deliver(domain.FormatNotInGroup(), sender)
		return
	}
	r.deliver(domain.FormatYouLeftGroup(departure.Group), sender)
	r.deliver(domain.FormatLeftGroup(sender.Username(), departure.Group), departure.Remaining...)
}

// routeQuestion blocks only the asking session. No registry state is touched
// while the collaborator call is in flight.
func (r *Router) routeQuestion(ctx context.Context, sender contract.Session, question string) {
	if r.collaborator == nil {
		r.deliver(domain.FormatAssistantUnavailable(), sender)
		return
	}

	askCtx, cancel := context.WithTimeout(ctx, r.askTimeout)
	defer cancel()

	answer, err := r.collaborator.Ask(askCtx, question)
	if err != nil {
		r.log.Warn("Collaborator query failed", "user", sender.Username(), "error", err)
		r.deliver(domain.FormatAssistantUnavailable(), sender)
		return
	}
	r.deliver(domain.FormatQuestion(question), sender)
	r.deliver(domain.FormatAnswer(answer), sender)
}

// moderate censors chat content and logs what was caught, tagged with the
// detected language.
func (r *Router) moderate(sender contract.Session, text string) string {
	if r.moderator == nil {
		return text
	}
	content, words := r.moderator.Censor(text)
	if len(words) > 0 {
		info := whatlanggo.Detect(text)
		r.log.Info("Message censored",
			"user", sender.Username(),
			"lang", info.Lang.Iso6391(),
			"words", fmt.Sprintf("%v", words))
	}
	return content
}

// deliver writes one line to each recipient independently. A failed write
// marks that recipient as disconnected and closes it; its own read loop then
// performs the full teardown. Other recipients are unaffected.
func (r *Router) deliver(line string, recipients ...contract.Session) {
	for _, recipient := range recipients {
		if err := recipient.Deliver(line); err != nil {
			r.log.Warn("Delivery failed, closing recipient",
				"recipient", recipient.Username(), "error", err)
			_ = recipient.Close()
		}
	}
}

func (r *Router) everyoneExcept(sender contract.Session) []contract.Session {
	return lo.Filter(r.connections.AllSessions(), func(s contract.Session, _ int) bool {
		return s.ID() != sender.ID()
	})
}
