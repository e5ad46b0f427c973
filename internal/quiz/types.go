package quiz

import "time"

// OptionID identifies one of the four answer options of a question.
type OptionID string

const (
	OptionA OptionID = "A"
	OptionB OptionID = "B"
	OptionC OptionID = "C"
	OptionD OptionID = "D"
)

// OptionIDs lists the option ids in display order.
var OptionIDs = []OptionID{OptionA, OptionB, OptionC, OptionD}

// Valid reports whether id is one of A, B, C or D. The comparison is
// case-sensitive.
func (id OptionID) Valid() bool {
	switch id {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// Difficulty is the requested difficulty of a generated test.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty level.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Status is the lifecycle state of a test session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusExpired    Status = "expired"
)

// NotAnswered is recorded as the selected answer of a question the
// submission did not cover.
const NotAnswered = "Not answered"

// Option is a single answer option.
type Option struct {
	ID   OptionID `json:"option_id"`
	Text string   `json:"text"`
}

// Question is a multiple-choice question with exactly four options.
// CorrectAnswer and Explanation are ground truth and must be scrubbed
// before a question leaves the process for an untrusted caller.
type Question struct {
	ID            string     `json:"question_id"`
	Text          string     `json:"question_text"`
	Options       []Option   `json:"options"`
	CorrectAnswer OptionID   `json:"correct_answer"`
	Explanation   string     `json:"explanation,omitempty"`
	Difficulty    Difficulty `json:"difficulty"`
}

// AnswerSubmission is the caller's choice for one question.
type AnswerSubmission struct {
	QuestionID     string   `json:"question_id"`
	SelectedAnswer OptionID `json:"selected_answer"`
}

// QuestionResult is the per-question outcome of an evaluation.
type QuestionResult struct {
	QuestionID     string `json:"question_id"`
	QuestionText   string `json:"question_text"`
	SelectedAnswer string `json:"selected_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
	Explanation    string `json:"explanation"`
}

// TestResult is the immutable evaluation of a submission.
type TestResult struct {
	TestID          string           `json:"test_id"`
	Topic           string           `json:"topic"`
	TotalQuestions  int              `json:"total_questions"`
	CorrectAnswers  int              `json:"correct_answers"`
	WrongAnswers    int              `json:"wrong_answers"`
	ScorePercentage float64          `json:"score_percentage"`
	Results         []QuestionResult `json:"results"`
	CompletedAt     time.Time        `json:"completed_at"`
}

// TestSession is the persisted record of a generated test. It is owned by
// the session store; the only mutations are submission and expiry.
type TestSession struct {
	ID               string             `json:"test_id"`
	Topic            string             `json:"topic"`
	Questions        []Question         `json:"questions"`
	Difficulty       Difficulty         `json:"difficulty"`
	Status           Status             `json:"status"`
	TimeLimitMinutes int                `json:"time_limit_minutes"`
	CreatedAt        time.Time          `json:"created_at"`
	SubmittedAt      *time.Time         `json:"submitted_at,omitempty"`
	Answers          []AnswerSubmission `json:"answers,omitempty"`
	Result           *TestResult        `json:"result,omitempty"`
}

// PublicQuestion is a question as shown to the test taker. CorrectAnswer is
// always empty; it exists so clients see the same shape as Question.
type PublicQuestion struct {
	ID            string     `json:"question_id"`
	Text          string     `json:"question_text"`
	Options       []Option   `json:"options"`
	CorrectAnswer string     `json:"correct_answer"`
	Difficulty    Difficulty `json:"difficulty"`
}

// PublicTest is the caller-facing view of a test session.
type PublicTest struct {
	TestID           string           `json:"test_id"`
	Topic            string           `json:"topic"`
	Questions        []PublicQuestion `json:"questions"`
	TotalQuestions   int              `json:"total_questions"`
	TimeLimitMinutes int              `json:"time_limit_minutes"`
	CreatedAt        time.Time        `json:"created_at"`
}

// TestStatus summarizes where a test is in its lifecycle.
type TestStatus struct {
	TestID           string    `json:"test_id"`
	Topic            string    `json:"topic"`
	Status           Status    `json:"status"`
	TotalQuestions   int       `json:"total_questions"`
	TimeLimitMinutes int       `json:"time_limit_minutes"`
	CreatedAt        time.Time `json:"created_at"`
}

// TestSummary is one row of the test history listing.
type TestSummary struct {
	TestID          string     `json:"test_id"`
	Topic           string     `json:"topic"`
	Difficulty      Difficulty `json:"difficulty"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	TotalQuestions  int        `json:"total_questions"`
	ScorePercentage *float64   `json:"score_percentage,omitempty"`
}

// ChatRole is the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a persisted chat thread.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatReply is returned for every chat message sent.
type ChatReply struct {
	Message     string   `json:"message"`
	SessionID   string   `json:"session_id"`
	Suggestions []string `json:"suggestions,omitempty"`
}
