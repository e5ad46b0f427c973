// Package service orchestrates test generation, submission and chat on
// top of the generator, the scoring engine and the stores.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/abhisek/mcqgenie/internal/events"
	"github.com/abhisek/mcqgenie/internal/mcqgen"
	"github.com/abhisek/mcqgenie/internal/quiz"
	"github.com/abhisek/mcqgenie/internal/scoring"
	"github.com/abhisek/mcqgenie/internal/store"
)

// ErrResultNotReady is returned for the result of a test that has not been
// submitted.
var ErrResultNotReady = errors.New("test not submitted yet")

const (
	defaultTimeLimitMinutes = 30
	publishTimeout          = 5 * time.Second
)

// TestConfig wires a TestService.
type TestConfig struct {
	Sessions  store.SessionRepo
	Generator mcqgen.Generator

	// Publisher receives test.completed events. Nil disables publishing.
	Publisher events.Publisher

	// MaxQuestions caps the requested count. It never raises it.
	MaxQuestions int

	TimeLimitMinutes int

	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

// TestService runs the test lifecycle: generate, view, submit, grade.
type TestService struct {
	sessions  store.SessionRepo
	generator mcqgen.Generator
	publisher events.Publisher
	maxCount  int
	timeLimit int
	now       func() time.Time
}

// NewTestService creates a TestService, filling in defaults for unset
// config fields.
func NewTestService(cfg TestConfig) *TestService {
	s := &TestService{
		sessions:  cfg.Sessions,
		generator: cfg.Generator,
		publisher: cfg.Publisher,
		maxCount:  cfg.MaxQuestions,
		timeLimit: cfg.TimeLimitMinutes,
		now:       cfg.Now,
	}
	if s.publisher == nil {
		s.publisher = events.Nop{}
	}
	if s.maxCount <= 0 || s.maxCount > quiz.MaxQuestions {
		s.maxCount = quiz.MaxQuestions
	}
	if s.timeLimit <= 0 {
		s.timeLimit = defaultTimeLimitMinutes
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// clock returns the current time in UTC at the precision the stores keep.
func (s *TestService) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// Generate creates a new test and returns its public view. Nothing is
// stored unless every question was generated and validated.
func (s *TestService) Generate(ctx context.Context, req quiz.GenerationRequest) (quiz.PublicTest, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return quiz.PublicTest{}, err
	}
	if req.Count > s.maxCount {
		req.Count = s.maxCount
	}

	questions, err := s.generator.Generate(ctx, req)
	if err != nil {
		return quiz.PublicTest{}, err
	}

	sess := &quiz.TestSession{
		Topic:            req.Topic,
		Questions:        questions,
		Difficulty:       req.Difficulty,
		Status:           quiz.StatusInProgress,
		TimeLimitMinutes: s.timeLimit,
		CreatedAt:        s.clock(),
	}
	sess.ID, err = s.sessions.CreateSession(ctx, store.NewSession{
		Topic:            sess.Topic,
		Difficulty:       sess.Difficulty,
		Questions:        sess.Questions,
		TimeLimitMinutes: sess.TimeLimitMinutes,
		CreatedAt:        sess.CreatedAt,
	})
	if err != nil {
		return quiz.PublicTest{}, fmt.Errorf("save test: %w", err)
	}
	return store.PublicView(sess), nil
}

// Details returns the public view of a stored test.
func (s *TestService) Details(ctx context.Context, id string) (quiz.PublicTest, error) {
	sess, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return quiz.PublicTest{}, err
	}
	return store.PublicView(sess), nil
}

// Submit grades answers and records the result. Only the first submission
// of an in_progress test succeeds; later ones get store.ErrAlreadySubmitted
// and leave the stored result untouched.
func (s *TestService) Submit(ctx context.Context, id string, answers []quiz.AnswerSubmission) (quiz.TestResult, error) {
	if err := quiz.ValidateAnswers(answers); err != nil {
		return quiz.TestResult{}, err
	}

	sess, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return quiz.TestResult{}, err
	}
	// Fast path only. RecordSubmission decides races.
	switch sess.Status {
	case quiz.StatusCompleted:
		return quiz.TestResult{}, store.ErrAlreadySubmitted
	case quiz.StatusExpired:
		return quiz.TestResult{}, store.ErrExpired
	}

	result := scoring.Evaluate(scoring.Input{
		TestID:      sess.ID,
		Topic:       sess.Topic,
		Questions:   sess.Questions,
		Answers:     answers,
		CompletedAt: s.clock(),
	})
	if err := s.sessions.RecordSubmission(ctx, id, answers, result, result.CompletedAt); err != nil {
		return quiz.TestResult{}, err
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishTestCompleted(pubCtx, events.NewTestCompleted(result)); err != nil {
		log.Printf("warning: publish test.completed for %s: %v", id, err)
	}
	return result, nil
}

// Result returns the stored evaluation of a submitted test.
func (s *TestService) Result(ctx context.Context, id string) (quiz.TestResult, error) {
	sess, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return quiz.TestResult{}, err
	}
	if sess.Result == nil {
		return quiz.TestResult{}, ErrResultNotReady
	}
	return *sess.Result, nil
}

// Status reports where a test is in its lifecycle.
func (s *TestService) Status(ctx context.Context, id string) (quiz.TestStatus, error) {
	sess, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return quiz.TestStatus{}, err
	}
	return store.StatusOf(sess), nil
}

// History lists recent tests, newest first.
func (s *TestService) History(ctx context.Context, limit int) ([]quiz.TestSummary, error) {
	return s.sessions.ListRecent(ctx, limit)
}

// Expire closes an in_progress test without a result.
func (s *TestService) Expire(ctx context.Context, id string) error {
	return s.sessions.MarkExpired(ctx, id)
}
