package e2e

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type testChatScenarioSuite struct {
	BaseChatSuite
}

func TestChatScenarioSuite(t *testing.T) {
	suite.Run(t, &testChatScenarioSuite{})
}

func (s *testChatScenarioSuite) TestGlobalBroadcastIncludesSender() {
	s.Step("Two users in the room, one speaks")
	alice := s.Join("alice")
	defer alice.Close()
	bob := s.Join("bob", alice)
	defer bob.Close()

	alice.Send("hello everyone")

	alice.Expect("alice: hello everyone")
	bob.Expect("alice: hello everyone")
}

func (s *testChatScenarioSuite) TestGroupMessagesAreScoped() {
	alice := s.Join("alice")
	defer alice.Close()
	bob := s.Join("bob", alice)
	defer bob.Close()
	carol := s.Join("carol", alice, bob)
	defer carol.Close()

	s.Step("Alice founds a group and Bob joins it")
	alice.Send("/group create g1")
	alice.Expect("You created the group 'g1'")
	alice.Expect("You joined the group 'g1'")

	bob.Send("/group join g1")
	bob.Expect("You joined the group 'g1'")
	alice.Expect("bob has joined the group 'g1'")

	s.Step("A group message stays inside the group")
	alice.Send("hi team")
	alice.Expect("[g1] alice: hi team")
	bob.Expect("[g1] alice: hi team")
	carol.ExpectSilence()
}

func (s *testChatScenarioSuite) TestWhisperReachesOnlyBothParties() {
	alice := s.Join("alice")
	defer alice.Close()
	bob := s.Join("bob", alice)
	defer bob.Close()
	carol := s.Join("carol", alice, bob)
	defer carol.Close()

	s.Step("Alice whispers to Bob")
	alice.Send("/whisper bob secret plan")
	alice.Expect("(whisper) alice: secret plan")
	bob.Expect("(whisper) alice: secret plan")
	carol.ExpectSilence()

	s.Step("Whispering to a stranger fails quietly")
	alice.Send("/whisper ghost anyone home")
	alice.Expect("No user named ghost found")
	bob.ExpectSilence()
}

func (s *testChatScenarioSuite) TestGroupSurvivesMemberDisconnect() {
	alice := s.Join("alice")
	defer alice.Close()
	bob := s.Join("bob", alice)
	carol := s.Join("carol", alice, bob)
	defer carol.Close()

	alice.Send("/group create g1")
	alice.Expect("You created the group 'g1'")
	alice.Expect("You joined the group 'g1'")
	bob.Send("/group join g1")
	bob.Expect("You joined the group 'g1'")
	alice.Expect("bob has joined the group 'g1'")

	s.Step("Bob's connection drops abruptly")
	bob.Close()

	// The remaining member hears a group departure, outsiders hear nothing
	alice.Expect("bob has left the group 'g1'")
	carol.ExpectSilence()

	s.Step("The group still exists for everyone else")
	carol.Send("/group list")
	carol.Expect("Groups: g1")
}

func (s *testChatScenarioSuite) TestDuplicateUsernameIsRejected() {
	alice := s.Join("alice")
	defer alice.Close()

	s.Step("A second client claims the same name")
	imposter := s.Dial()
	defer imposter.Close()
	imposter.Send("alice")
	imposter.Expect("Username alice is already taken")
	imposter.ExpectEOF()

	s.Step("The original session is untouched")
	alice.Send("still here")
	alice.Expect("alice: still here")
}

func (s *testChatScenarioSuite) TestEmptyUsernameClosesConnection() {
	client := s.Dial()
	defer client.Close()

	client.Send("")
	client.ExpectEOF()
}

func (s *testChatScenarioSuite) TestListUsers() {
	alice := s.Join("alice")
	defer alice.Close()
	bob := s.Join("bob", alice)
	defer bob.Close()

	bob.Send("/list")
	bob.Expect("Online Users: alice, bob")
	alice.ExpectSilence()
}

func (s *testChatScenarioSuite) TestAssistantAnswersOnlyTheAsker() {
	alice := s.Join("alice")
	defer alice.Close()
	bob := s.Join("bob", alice)
	defer bob.Close()

	alice.Send("/chatgpt what is the meaning of life?")
	alice.Expect("You asked: what is the meaning of life?")
	alice.Expect("ChatGPT: the answer is 42")
	bob.ExpectSilence()
}

func (s *testChatScenarioSuite) TestForbiddenWordsAreMasked() {
	alice := s.Join("alice")
	defer alice.Close()
	bob := s.Join("bob", alice)
	defer bob.Close()

	alice.Send("you idiot")
	alice.Expect("alice: you *****")
	bob.Expect("alice: you *****")
}

func (s *testChatScenarioSuite) TestLeaveChatNotice() {
	alice := s.Join("alice")
	defer alice.Close()
	bob := s.Join("bob", alice)

	bob.Close()
	alice.Expect("bob has left the chat")
}
