package store

// Timestamps are stored as UTC unix microseconds in BIGINT columns so both
// backends sort and compare them the same way.

var schemaSQLite = []string{
	`CREATE TABLE IF NOT EXISTS test_sessions (
  id TEXT PRIMARY KEY,
  topic TEXT NOT NULL,
  difficulty TEXT NOT NULL,
  status TEXT NOT NULL,
  time_limit_minutes INTEGER NOT NULL,
  total_questions INTEGER NOT NULL,
  questions_json TEXT NOT NULL,
  answers_json TEXT,
  result_json TEXT,
  score_percentage REAL,
  created_at BIGINT NOT NULL,
  submitted_at BIGINT
)`,
	`CREATE INDEX IF NOT EXISTS test_sessions_created_at ON test_sessions (created_at)`,
	`CREATE TABLE IF NOT EXISTS chat_sessions (
  id TEXT PRIMARY KEY,
  created_at BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session_id TEXT NOT NULL REFERENCES chat_sessions(id) ON DELETE CASCADE,
  role TEXT NOT NULL,
  content TEXT NOT NULL,
  created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS chat_messages_session ON chat_messages (session_id, id)`,
	`CREATE TABLE IF NOT EXISTS llm_events (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  created_at BIGINT NOT NULL,
  provider TEXT NOT NULL,
  model TEXT NOT NULL,
  purpose TEXT NOT NULL,
  input_tokens INTEGER NOT NULL DEFAULT 0,
  output_tokens INTEGER NOT NULL DEFAULT 0,
  latency_ms INTEGER NOT NULL DEFAULT 0,
  success BOOLEAN NOT NULL,
  error_message TEXT NOT NULL DEFAULT '',
  request_body TEXT NOT NULL DEFAULT '',
  response_body TEXT NOT NULL DEFAULT ''
)`,
}

var schemaPostgres = []string{
	`CREATE TABLE IF NOT EXISTS test_sessions (
  id TEXT PRIMARY KEY,
  topic TEXT NOT NULL,
  difficulty TEXT NOT NULL,
  status TEXT NOT NULL,
  time_limit_minutes INTEGER NOT NULL,
  total_questions INTEGER NOT NULL,
  questions_json TEXT NOT NULL,
  answers_json TEXT,
  result_json TEXT,
  score_percentage DOUBLE PRECISION,
  created_at BIGINT NOT NULL,
  submitted_at BIGINT
)`,
	`CREATE INDEX IF NOT EXISTS test_sessions_created_at ON test_sessions (created_at)`,
	`CREATE TABLE IF NOT EXISTS chat_sessions (
  id TEXT PRIMARY KEY,
  created_at BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
  id BIGSERIAL PRIMARY KEY,
  session_id TEXT NOT NULL REFERENCES chat_sessions(id) ON DELETE CASCADE,
  role TEXT NOT NULL,
  content TEXT NOT NULL,
  created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS chat_messages_session ON chat_messages (session_id, id)`,
	`CREATE TABLE IF NOT EXISTS llm_events (
  id BIGSERIAL PRIMARY KEY,
  created_at BIGINT NOT NULL,
  provider TEXT NOT NULL,
  model TEXT NOT NULL,
  purpose TEXT NOT NULL,
  input_tokens INTEGER NOT NULL DEFAULT 0,
  output_tokens INTEGER NOT NULL DEFAULT 0,
  latency_ms INTEGER NOT NULL DEFAULT 0,
  success BOOLEAN NOT NULL,
  error_message TEXT NOT NULL DEFAULT '',
  request_body TEXT NOT NULL DEFAULT '',
  response_body TEXT NOT NULL DEFAULT ''
)`,
}
