// Package domain contains core concepts of the chat system:
// commands parsed from inbound lines and the wire formats of outbound lines.
// No runtime, network, or UI logic should be added here.
package domain

import "strings"

// Usage strings returned to the sender on malformed commands.
const (
	UsageWhisper = "usage: /whisper <username> <message>"
	UsageList    = "usage: /list"
	UsageGroup   = "usage: /group <create|join> <name>, /group <list|leave>"
	UsageAsk     = "usage: /chatgpt <question>"
)

// Command is one parsed inbound line. It is created per line and consumed
// immediately by the router, never stored.
type Command interface {
	isCommand()
}

type PlainMessage struct {
	Text string
}

type Whisper struct {
	Target string
	Text   string
}

type ListUsers struct{}

type GroupCreate struct {
	Name string
}

type GroupJoin struct {
	Name string
}

type GroupLeave struct{}

type GroupList struct{}

type AIQuery struct {
	Question string
}

type Invalid struct {
	Reason string
}

func (PlainMessage) isCommand() {}
func (Whisper) isCommand()      {}
func (ListUsers) isCommand()    {}
func (GroupCreate) isCommand()  {}
func (GroupJoin) isCommand()    {}
func (GroupLeave) isCommand()   {}
func (GroupList) isCommand()    {}
func (AIQuery) isCommand()      {}
func (Invalid) isCommand()      {}

// Parse classifies one non-empty inbound line. Empty lines signal
// end-of-stream and are handled by the read loop before parsing.
func Parse(line string) Command {
	switch {
	case strings.HasPrefix(line, "/whisper"):
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return Invalid{Reason: UsageWhisper}
		}
		return Whisper{Target: fields[1], Text: strings.Join(fields[2:], " ")}

	case strings.HasPrefix(line, "/list"):
		if strings.TrimSpace(line) != "/list" {
			return Invalid{Reason: UsageList}
		}
		return ListUsers{}

	case strings.HasPrefix(line, "/group"):
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			switch fields[1] {
			case "create":
				if len(fields) == 3 {
					return GroupCreate{Name: fields[2]}
				}
			case "join":
				if len(fields) == 3 {
					return GroupJoin{Name: fields[2]}
				}
			case "leave":
				if len(fields) == 2 {
					return GroupLeave{}
				}
			case "list":
				if len(fields) == 2 {
					return GroupList{}
				}
			}
		}
		return Invalid{Reason: UsageGroup}

	case strings.HasPrefix(line, "/chatgpt"):
		question := strings.TrimSpace(strings.TrimPrefix(line, "/chatgpt"))
		if question == "" {
			return Invalid{Reason: UsageAsk}
		}
		return AIQuery{Question: question}

	default:
		return PlainMessage{Text: line}
	}
}
