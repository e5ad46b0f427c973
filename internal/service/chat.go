package service

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/mcqgenie/internal/llm"
	"github.com/abhisek/mcqgenie/internal/mcqgen"
	"github.com/abhisek/mcqgenie/internal/quiz"
	"github.com/abhisek/mcqgenie/internal/store"
)

const tutorPrompt = `You are MCQ Genie, a helpful AI assistant specialized in education and learning.

Your capabilities:
1. Answer questions on any topic clearly and accurately
2. Explain complex concepts in simple terms
3. Help users learn through conversation
4. Generate quiz questions when requested

Guidelines:
- Be conversational and friendly
- Provide clear, concise explanations
- Use examples when helpful
- If user wants to test their knowledge, suggest generating a quiz
- Stay on topic and educational

Remember: Your goal is to help users learn effectively.`

const (
	chatTemperature = 0.7
	chatMaxTokens   = 1000
)

// ChatConfig wires a ChatService.
type ChatConfig struct {
	Chats    store.ChatRepo
	Provider llm.Provider

	// Suggestions defaults to a generator on Provider.
	Suggestions *mcqgen.SuggestionGenerator

	Now func() time.Time
}

// ChatService proxies conversation turns to the LLM and keeps the thread.
type ChatService struct {
	chats       store.ChatRepo
	provider    llm.Provider
	suggestions *mcqgen.SuggestionGenerator
	now         func() time.Time
}

// NewChatService creates a ChatService.
func NewChatService(cfg ChatConfig) *ChatService {
	s := &ChatService{
		chats:       cfg.Chats,
		provider:    cfg.Provider,
		suggestions: cfg.Suggestions,
		now:         cfg.Now,
	}
	if s.suggestions == nil {
		s.suggestions = mcqgen.NewSuggestionGenerator(cfg.Provider)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *ChatService) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// Send appends message to the thread sessionID and returns the reply. An
// empty or unknown sessionID starts a new thread, whose id is in the reply.
func (s *ChatService) Send(ctx context.Context, sessionID, message string) (quiz.ChatReply, error) {
	if err := quiz.ValidateChatMessage(message); err != nil {
		return quiz.ChatReply{}, err
	}

	sessionID, err := s.resolveSession(ctx, sessionID)
	if err != nil {
		return quiz.ChatReply{}, err
	}

	user := quiz.ChatMessage{Role: quiz.ChatRoleUser, Content: message, Timestamp: s.clock()}
	if err := s.chats.AppendMessage(ctx, sessionID, user); err != nil {
		return quiz.ChatReply{}, fmt.Errorf("save user message: %w", err)
	}

	history, err := s.chats.Messages(ctx, sessionID)
	if err != nil {
		return quiz.ChatReply{}, fmt.Errorf("load chat history: %w", err)
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeChat), llm.Request{
		System:      tutorPrompt,
		Messages:    toLLMMessages(history),
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		return quiz.ChatReply{}, fmt.Errorf("chat completion: %w", err)
	}

	reply := quiz.ChatMessage{Role: quiz.ChatRoleAssistant, Content: resp.Text(), Timestamp: s.clock()}
	if err := s.chats.AppendMessage(ctx, sessionID, reply); err != nil {
		return quiz.ChatReply{}, fmt.Errorf("save assistant message: %w", err)
	}

	return quiz.ChatReply{
		Message:     reply.Content,
		SessionID:   sessionID,
		Suggestions: s.suggestions.Suggest(ctx, message),
	}, nil
}

func (s *ChatService) resolveSession(ctx context.Context, id string) (string, error) {
	if id != "" {
		ok, err := s.chats.ChatSessionExists(ctx, id)
		if err != nil {
			return "", err
		}
		if ok {
			return id, nil
		}
	}
	return s.NewSession(ctx)
}

// History returns a thread oldest first.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]quiz.ChatMessage, error) {
	return s.chats.Messages(ctx, sessionID)
}

// NewSession starts an empty thread.
func (s *ChatService) NewSession(ctx context.Context) (string, error) {
	id, err := s.chats.CreateChatSession(ctx, s.clock())
	if err != nil {
		return "", fmt.Errorf("create chat session: %w", err)
	}
	return id, nil
}

// Exists reports whether sessionID names a thread.
func (s *ChatService) Exists(ctx context.Context, sessionID string) (bool, error) {
	return s.chats.ChatSessionExists(ctx, sessionID)
}

func toLLMMessages(history []quiz.ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(history))
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == quiz.ChatRoleAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Content})
	}
	return out
}
