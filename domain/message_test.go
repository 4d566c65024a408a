package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Clients pattern-match on exact substrings; these tests pin the contract.
func TestFormats_ClientMarkers(t *testing.T) {
	req := require.New(t)

	req.Contains(FormatWelcome("alice"), "Welcome")
	req.Equal("Online Users: alice, bob", FormatOnlineUsers([]string{"alice", "bob"}))
	req.Equal("bob has joined the group 'g1'", FormatJoinedGroup("bob", "g1"))
	req.Equal("bob has left the group 'g1'", FormatLeftGroup("bob", "g1"))
	req.Equal("You joined the group 'g1'", FormatYouJoinedGroup("g1"))
	req.Equal("You left the group 'g1'", FormatYouLeftGroup("g1"))
}

func TestFormats_Chat(t *testing.T) {
	req := require.New(t)

	req.Equal("alice: hi", FormatChat("alice", "hi"))
	req.Equal("[g1] alice: hello", FormatGroupChat("g1", "alice", "hello"))
	req.Equal("(whisper) alice: secret", FormatWhisper("alice", "secret"))
	req.Equal("No user named nosuchuser found", FormatUnknownUser("nosuchuser"))
	req.Equal("Groups: none", FormatGroupNames(nil))
	req.Equal("Groups: g1, g2", FormatGroupNames([]string{"g1", "g2"}))
}
