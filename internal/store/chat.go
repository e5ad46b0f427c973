package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mcqgenie/internal/quiz"
)

type chatRepo struct {
	db      *sql.DB
	dialect string
}

func (r *chatRepo) CreateChatSession(ctx context.Context, createdAt time.Time) (string, error) {
	id := NewChatID()
	query, args := builder(r.dialect).Insert("chat_sessions").
		Columns("id", "created_at").
		Values(id, toMicros(createdAt)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert chat session: %w", err)
	}
	return id, nil
}

func (r *chatRepo) ChatSessionExists(ctx context.Context, id string) (bool, error) {
	b := builder(r.dialect)
	query, args := b.Select("id").
		From(b.Table("chat_sessions")).
		Where(entsql.EQ("id", id)).
		Query()
	var got string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query chat session: %w", err)
	}
	return true, nil
}

func (r *chatRepo) AppendMessage(ctx context.Context, sessionID string, msg quiz.ChatMessage) error {
	query, args := builder(r.dialect).Insert("chat_messages").
		Columns("session_id", "role", "content", "created_at").
		Values(sessionID, string(msg.Role), msg.Content, toMicros(msg.Timestamp)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (r *chatRepo) Messages(ctx context.Context, sessionID string) ([]quiz.ChatMessage, error) {
	ok, err := r.ChatSessionExists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	b := builder(r.dialect)
	query, args := b.Select("role", "content", "created_at").
		From(b.Table("chat_messages")).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy(entsql.Asc("id")).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chat messages: %w", err)
	}
	defer rows.Close()

	msgs := []quiz.ChatMessage{}
	for rows.Next() {
		var (
			m         quiz.ChatMessage
			role      string
			createdAt int64
		)
		if err := rows.Scan(&role, &m.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		m.Role = quiz.ChatRole(role)
		m.Timestamp = fromMicros(createdAt)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
