package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/mcqgenie/internal/quiz"
)

// Sentinel errors returned by the repositories. Callers match them with
// errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadySubmitted = errors.New("test already submitted")
	ErrExpired          = errors.New("test expired")
)

// NewSession is everything needed to persist a freshly generated test.
type NewSession struct {
	Topic            string
	Difficulty       quiz.Difficulty
	Questions        []quiz.Question
	TimeLimitMinutes int
	CreatedAt        time.Time
}

// SessionRepo persists test sessions. Sessions are created once and change
// state at most once, from in_progress to completed or expired.
type SessionRepo interface {
	// CreateSession stores a new in_progress session and returns its id.
	// It never overwrites an existing session.
	CreateSession(ctx context.Context, s NewSession) (string, error)

	// GetSession returns the full session including correct answers.
	// Returns ErrNotFound for unknown ids.
	GetSession(ctx context.Context, id string) (*quiz.TestSession, error)

	// RecordSubmission atomically moves an in_progress session to
	// completed and stores the answers and result. When the session is not
	// in_progress it returns ErrNotFound, ErrAlreadySubmitted or ErrExpired
	// and leaves the record untouched.
	RecordSubmission(ctx context.Context, id string, answers []quiz.AnswerSubmission, result quiz.TestResult, submittedAt time.Time) error

	// MarkExpired moves an in_progress session to expired.
	MarkExpired(ctx context.Context, id string) error

	// ListRecent returns up to limit session summaries, newest first.
	// A non-positive limit returns every session.
	ListRecent(ctx context.Context, limit int) ([]quiz.TestSummary, error)
}

// ChatRepo persists chat threads.
type ChatRepo interface {
	// CreateChatSession starts an empty thread and returns its id.
	CreateChatSession(ctx context.Context, createdAt time.Time) (string, error)

	// ChatSessionExists reports whether id names a thread.
	ChatSessionExists(ctx context.Context, id string) (bool, error)

	// AppendMessage adds a message to the end of a thread.
	AppendMessage(ctx context.Context, sessionID string, msg quiz.ChatMessage) error

	// Messages returns a thread oldest first. Unknown ids yield ErrNotFound.
	Messages(ctx context.Context, sessionID string) ([]quiz.ChatMessage, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact purpose match (empty = any)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a recorded LLM request.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
