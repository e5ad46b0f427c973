package store

import "github.com/google/uuid"

const (
	testIDPrefix = "test_"
	chatIDPrefix = "chat_"
)

// NewTestID returns a fresh, unguessable test id.
func NewTestID() string {
	return testIDPrefix + uuid.NewString()
}

// NewChatID returns a fresh chat session id.
func NewChatID() string {
	return chatIDPrefix + uuid.NewString()
}
