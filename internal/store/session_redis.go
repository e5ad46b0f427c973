package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/mcqgenie/internal/quiz"
)

// Each session is a hash with a "status" field and a "data" field holding
// the JSON-encoded session. A sorted set scored by creation time indexes
// every session for ListRecent.

// createScript inserts a session only if its key is absent.
var createScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return 0
end
redis.call('HSET', KEYS[1], 'status', ARGV[1], 'data', ARGV[2])
redis.call('ZADD', KEYS[2], ARGV[3], ARGV[4])
return 1
`)

// transitionScript changes status from ARGV[1] to ARGV[2], replacing the
// data when ARGV[3] is non-empty. It returns "ok" on success, "" when the
// key is missing, and the current status otherwise.
var transitionScript = redis.NewScript(`
local st = redis.call('HGET', KEYS[1], 'status')
if not st then
  return ''
end
if st ~= ARGV[1] then
  return st
end
if ARGV[3] ~= '' then
  redis.call('HSET', KEYS[1], 'status', ARGV[2], 'data', ARGV[3])
else
  redis.call('HSET', KEYS[1], 'status', ARGV[2])
end
return 'ok'
`)

// RedisSessionRepo implements SessionRepo on Redis. Chat threads and LLM
// events stay in the SQL store.
type RedisSessionRepo struct {
	client *redis.Client
	prefix string
}

// RedisConfig describes how to reach Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces every key. Default: "mcqgenie:".
	Prefix string
}

// NewRedisSessionRepo connects to Redis and verifies the connection.
func NewRedisSessionRepo(ctx context.Context, cfg RedisConfig) (*RedisSessionRepo, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "mcqgenie:"
	}
	return &RedisSessionRepo{client: client, prefix: prefix}, nil
}

// Close closes the Redis client.
func (r *RedisSessionRepo) Close() error {
	return r.client.Close()
}

// Ping checks that Redis is reachable.
func (r *RedisSessionRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisSessionRepo) key(id string) string { return r.prefix + "test:" + id }
func (r *RedisSessionRepo) indexKey() string     { return r.prefix + "tests" }

func (r *RedisSessionRepo) CreateSession(ctx context.Context, s NewSession) (string, error) {
	id := NewTestID()
	sess := quiz.TestSession{
		ID:               id,
		Topic:            s.Topic,
		Questions:        s.Questions,
		Difficulty:       s.Difficulty,
		Status:           quiz.StatusInProgress,
		TimeLimitMinutes: s.TimeLimitMinutes,
		CreatedAt:        s.CreatedAt.UTC(),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	created, err := createScript.Run(ctx, r.client,
		[]string{r.key(id), r.indexKey()},
		string(quiz.StatusInProgress), string(data), toMicros(s.CreatedAt), id,
	).Int64()
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	if created != 1 {
		return "", fmt.Errorf("create session: id %s already exists", id)
	}
	return id, nil
}

func (r *RedisSessionRepo) GetSession(ctx context.Context, id string) (*quiz.TestSession, error) {
	vals, err := r.client.HMGet(ctx, r.key(id), "status", "data").Result()
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return decodeRedisSession(id, vals)
}

func decodeRedisSession(id string, vals []any) (*quiz.TestSession, error) {
	status, ok1 := vals[0].(string)
	data, ok2 := vals[1].(string)
	if !ok1 || !ok2 {
		return nil, ErrNotFound
	}
	var s quiz.TestSession
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	s.Status = quiz.Status(status)
	return &s, nil
}

func (r *RedisSessionRepo) RecordSubmission(ctx context.Context, id string, answers []quiz.AnswerSubmission, result quiz.TestResult, submittedAt time.Time) error {
	s, err := r.GetSession(ctx, id)
	if err != nil {
		return err
	}
	if s.Status != quiz.StatusInProgress {
		return stateError(id, s.Status)
	}

	at := submittedAt.UTC()
	s.Status = quiz.StatusCompleted
	s.Answers = answers
	s.Result = &result
	s.SubmittedAt = &at
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.transition(ctx, id, quiz.StatusCompleted, string(data))
}

func (r *RedisSessionRepo) MarkExpired(ctx context.Context, id string) error {
	return r.transition(ctx, id, quiz.StatusExpired, "")
}

func (r *RedisSessionRepo) transition(ctx context.Context, id string, to quiz.Status, data string) error {
	res, err := transitionScript.Run(ctx, r.client, []string{r.key(id)},
		string(quiz.StatusInProgress), string(to), data,
	).Text()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	switch res {
	case "ok":
		return nil
	case "":
		return ErrNotFound
	}
	return stateError(id, quiz.Status(res))
}

func (r *RedisSessionRepo) ListRecent(ctx context.Context, limit int) ([]quiz.TestSummary, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	ids, err := r.client.ZRevRange(ctx, r.indexKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	var out []quiz.TestSummary
	for _, id := range ids {
		s, err := r.GetSession(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		sum := quiz.TestSummary{
			TestID:         s.ID,
			Topic:          s.Topic,
			Difficulty:     s.Difficulty,
			Status:         s.Status,
			CreatedAt:      s.CreatedAt,
			TotalQuestions: len(s.Questions),
		}
		if s.Result != nil {
			v := s.Result.ScorePercentage
			sum.ScorePercentage = &v
		}
		out = append(out, sum)
	}
	return out, nil
}
