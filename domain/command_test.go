package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_Whisper(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name     string
		line     string
		expected Command
	}{
		{
			name:     "Target and single word",
			line:     "/whisper bob secret",
			expected: Whisper{Target: "bob", Text: "secret"},
		},
		{
			name:     "Multi word message",
			line:     "/whisper bob see you at noon",
			expected: Whisper{Target: "bob", Text: "see you at noon"},
		},
		{
			name:     "Missing message",
			line:     "/whisper bob",
			expected: Invalid{Reason: UsageWhisper},
		},
		{
			name:     "Missing everything",
			line:     "/whisper",
			expected: Invalid{Reason: UsageWhisper},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.expected, Parse(tt.line))
		})
	}
}

func TestParse_List(t *testing.T) {
	req := require.New(t)

	req.Equal(ListUsers{}, Parse("/list"))
	req.Equal(ListUsers{}, Parse("/list  "))
	req.Equal(Invalid{Reason: UsageList}, Parse("/list everyone"))
}

func TestParse_Group(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name     string
		line     string
		expected Command
	}{
		{name: "Create", line: "/group create g1", expected: GroupCreate{Name: "g1"}},
		{name: "Join", line: "/group join g1", expected: GroupJoin{Name: "g1"}},
		{name: "Leave", line: "/group leave", expected: GroupLeave{}},
		{name: "List", line: "/group list", expected: GroupList{}},
		{name: "Create without name", line: "/group create", expected: Invalid{Reason: UsageGroup}},
		{name: "Join without name", line: "/group join", expected: Invalid{Reason: UsageGroup}},
		{name: "Leave with extra argument", line: "/group leave now", expected: Invalid{Reason: UsageGroup}},
		{name: "List with extra argument", line: "/group list all", expected: Invalid{Reason: UsageGroup}},
		{name: "Unknown action", line: "/group destroy g1", expected: Invalid{Reason: UsageGroup}},
		{name: "Bare command", line: "/group", expected: Invalid{Reason: UsageGroup}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.expected, Parse(tt.line))
		})
	}
}

func TestParse_AIQuery(t *testing.T) {
	req := require.New(t)

	req.Equal(AIQuery{Question: "what is Go?"}, Parse("/chatgpt what is Go?"))
	req.Equal(Invalid{Reason: UsageAsk}, Parse("/chatgpt"))
	req.Equal(Invalid{Reason: UsageAsk}, Parse("/chatgpt   "))
}

func TestParse_PlainMessage(t *testing.T) {
	req := require.New(t)

	// Unknown slash commands fall through to plain chat, like any other text.
	req.Equal(PlainMessage{Text: "hello there"}, Parse("hello there"))
	req.Equal(PlainMessage{Text: "/unknown thing"}, Parse("/unknown thing"))
}
