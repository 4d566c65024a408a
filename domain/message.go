package domain

import (
	"fmt"
	"strings"
)

// Wire formats of every line the server emits. Clients pattern-match on the
// exact substrings below ("Welcome", "Online Users:", "has joined the group",
// "has left the group", the quoted group name in the You joined/left
// self-notices), so changing any of them is a protocol break.

func FormatWelcome(name string) string {
	return fmt.Sprintf("Server: Welcome to the chat room, %s!", name)
}

func FormatChat(sender, text string) string {
	return fmt.Sprintf("%s: %s", sender, text)
}

func FormatGroupChat(group, sender, text string) string {
	return fmt.Sprintf("[%s] %s: %s", group, sender, text)
}

func FormatWhisper(sender, text string) string {
	return fmt.Sprintf("(whisper) %s: %s", sender, text)
}

func FormatOnlineUsers(names []string) string {
	return "Online Users: " + strings.Join(names, ", ")
}

func FormatGroupNames(names []string) string {
	if len(names) == 0 {
		return "Groups: none"
	}
	return "Groups: " + strings.Join(names, ", ")
}

func FormatUnknownUser(name string) string {
	return fmt.Sprintf("No user named %s found", name)
}

func FormatUnknownGroup(name string) string {
	return fmt.Sprintf("No group named %s found", name)
}

func FormatNameTaken(name string) string {
	return fmt.Sprintf("Username %s is already taken", name)
}

func FormatJoinedChat(name string) string {
	return fmt.Sprintf("%s has joined the chat", name)
}

func FormatLeftChat(name string) string {
	return fmt.Sprintf("%s has left the chat", name)
}

func FormatGroupCreated(group string) string {
	return fmt.Sprintf("You created the group '%s'", group)
}

func FormatGroupExists(group string) string {
	return fmt.Sprintf("A group named '%s' already exists", group)
}

func FormatYouJoinedGroup(group string) string {
	return fmt.Sprintf("You joined the group '%s'", group)
}

func FormatYouLeftGroup(group string) string {
	return fmt.Sprintf("You left the group '%s'", group)
}

func FormatJoinedGroup(name, group string) string {
	return fmt.Sprintf("%s has joined the group '%s'", name, group)
}

func FormatLeftGroup(name, group string) string {
	return fmt.Sprintf("%s has left the group '%s'", name, group)
}

func FormatNotInGroup() string {
	return "You are not in a group"
}

func FormatQuestion(question string) string {
	return fmt.Sprintf("You asked: %s", question)
}

func FormatAnswer(answer string) string {
	return fmt.Sprintf("ChatGPT: %s", answer)
}

func FormatAssistantUnavailable() string {
	return "ChatGPT: no answer is available right now"
}
