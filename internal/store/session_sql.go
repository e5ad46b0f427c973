package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mcqgenie/internal/quiz"
)

const testSessionsTable = "test_sessions"

var sessionColumns = []string{
	"id", "topic", "difficulty", "status", "time_limit_minutes",
	"questions_json", "answers_json", "result_json", "created_at", "submitted_at",
}

// SQLSessionRepo implements SessionRepo on SQLite or Postgres.
type SQLSessionRepo struct {
	db      *sql.DB
	dialect string
}

func (r *SQLSessionRepo) CreateSession(ctx context.Context, s NewSession) (string, error) {
	qj, err := json.Marshal(s.Questions)
	if err != nil {
		return "", fmt.Errorf("marshal questions: %w", err)
	}

	id := NewTestID()
	query, args := builder(r.dialect).Insert(testSessionsTable).
		Columns("id", "topic", "difficulty", "status", "time_limit_minutes",
			"total_questions", "questions_json", "created_at").
		Values(id, s.Topic, string(s.Difficulty), string(quiz.StatusInProgress), s.TimeLimitMinutes,
			len(s.Questions), string(qj), toMicros(s.CreatedAt)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert test session: %w", err)
	}
	return id, nil
}

func (r *SQLSessionRepo) GetSession(ctx context.Context, id string) (*quiz.TestSession, error) {
	b := builder(r.dialect)
	query, args := b.Select(sessionColumns...).
		From(b.Table(testSessionsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	var (
		s                  quiz.TestSession
		difficulty, status string
		questionsJSON      string
		answersJSON        sql.NullString
		resultJSON         sql.NullString
		createdAt          int64
		submittedAt        sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.ID, &s.Topic, &difficulty, &status, &s.TimeLimitMinutes,
		&questionsJSON, &answersJSON, &resultJSON, &createdAt, &submittedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query test session: %w", err)
	}

	s.Difficulty = quiz.Difficulty(difficulty)
	s.Status = quiz.Status(status)
	s.CreatedAt = fromMicros(createdAt)
	if err := json.Unmarshal([]byte(questionsJSON), &s.Questions); err != nil {
		return nil, fmt.Errorf("decode questions of %s: %w", id, err)
	}
	if answersJSON.Valid {
		if err := json.Unmarshal([]byte(answersJSON.String), &s.Answers); err != nil {
			return nil, fmt.Errorf("decode answers of %s: %w", id, err)
		}
	}
	if resultJSON.Valid {
		s.Result = &quiz.TestResult{}
		if err := json.Unmarshal([]byte(resultJSON.String), s.Result); err != nil {
			return nil, fmt.Errorf("decode result of %s: %w", id, err)
		}
	}
	if submittedAt.Valid {
		t := fromMicros(submittedAt.Int64)
		s.SubmittedAt = &t
	}
	return &s, nil
}

func (r *SQLSessionRepo) RecordSubmission(ctx context.Context, id string, answers []quiz.AnswerSubmission, result quiz.TestResult, submittedAt time.Time) error {
	aj, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	rj, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	query, args := builder(r.dialect).Update(testSessionsTable).
		Set("status", string(quiz.StatusCompleted)).
		Set("answers_json", string(aj)).
		Set("result_json", string(rj)).
		Set("score_percentage", result.ScorePercentage).
		Set("submitted_at", toMicros(submittedAt)).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.EQ("status", string(quiz.StatusInProgress)),
		)).
		Query()
	return r.transition(ctx, id, query, args)
}

func (r *SQLSessionRepo) MarkExpired(ctx context.Context, id string) error {
	query, args := builder(r.dialect).Update(testSessionsTable).
		Set("status", string(quiz.StatusExpired)).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.EQ("status", string(quiz.StatusInProgress)),
		)).
		Query()
	return r.transition(ctx, id, query, args)
}

// transition runs a conditional update guarded by status = in_progress.
// Exactly one concurrent caller observes a row change; the rest get the
// error matching the state they lost to.
func (r *SQLSessionRepo) transition(ctx context.Context, id, query string, args []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update test session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 1 {
		return nil
	}

	status, err := r.status(ctx, id)
	if err != nil {
		return err
	}
	return stateError(id, status)
}

func (r *SQLSessionRepo) status(ctx context.Context, id string) (quiz.Status, error) {
	b := builder(r.dialect)
	query, args := b.Select("status").
		From(b.Table(testSessionsTable)).
		Where(entsql.EQ("id", id)).
		Query()
	var status string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query status: %w", err)
	}
	return quiz.Status(status), nil
}

func (r *SQLSessionRepo) ListRecent(ctx context.Context, limit int) ([]quiz.TestSummary, error) {
	b := builder(r.dialect)
	sel := b.Select("id", "topic", "difficulty", "status", "created_at", "total_questions", "score_percentage").
		From(b.Table(testSessionsTable)).
		OrderBy(entsql.Desc("created_at"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list test sessions: %w", err)
	}
	defer rows.Close()

	var out []quiz.TestSummary
	for rows.Next() {
		var (
			s                  quiz.TestSummary
			difficulty, status string
			createdAt          int64
			score              sql.NullFloat64
		)
		if err := rows.Scan(&s.TestID, &s.Topic, &difficulty, &status, &createdAt, &s.TotalQuestions, &score); err != nil {
			return nil, fmt.Errorf("scan test summary: %w", err)
		}
		s.Difficulty = quiz.Difficulty(difficulty)
		s.Status = quiz.Status(status)
		s.CreatedAt = fromMicros(createdAt)
		if score.Valid {
			v := score.Float64
			s.ScorePercentage = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// stateError explains why a session is no longer in_progress.
func stateError(id string, status quiz.Status) error {
	switch status {
	case quiz.StatusCompleted:
		return ErrAlreadySubmitted
	case quiz.StatusExpired:
		return ErrExpired
	}
	return fmt.Errorf("test %s: unexpected status %q after conditional update", id, status)
}

func toMicros(t time.Time) int64 {
	return t.UTC().UnixMicro()
}

func fromMicros(v int64) time.Time {
	return time.UnixMicro(v).UTC()
}
