// Package llm provides the chat-completion client behind the
// economics tutor. It speaks the OpenAI-compatible wire format against
// Groq's API with a fixed model and temperature.
package llm

import (
	"errors"
	"time"
)

// Common errors returned by the chat client.
var (
	ErrNoAPIKey     = errors.New("llm: API key not configured")
	ErrProviderDown = errors.New("llm: provider unavailable")
	ErrEmptyAnswer  = errors.New("llm: provider returned no choices")
)

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ValidRole reports whether a wire role is one the tutor accepts.
func ValidRole(r Role) bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Response represents a complete response from the chat provider.
type Response struct {
	Content string        `json:"content"`
	Model   string        `json:"model"`
	Latency time.Duration `json:"latency"`
}

// ChatOptions configures a single chat request.
type ChatOptions struct {
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage creates an assistant message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// SystemMessage creates a system prompt message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}
