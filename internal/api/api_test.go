package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mcqgenie/internal/llm"
	"github.com/abhisek/mcqgenie/internal/mcqgen"
	"github.com/abhisek/mcqgenie/internal/quiz"
	"github.com/abhisek/mcqgenie/internal/service"
	"github.com/abhisek/mcqgenie/internal/store"
)

const photosynthesisJSON = `[
  {"question": "Which gas do plants absorb?", "options": {"A": "Oxygen", "B": "Carbon dioxide", "C": "Nitrogen", "D": "Helium"}, "correct_answer": "B", "explanation": "Plants take in CO2."},
  {"question": "Where does photosynthesis happen?", "options": {"A": "Mitochondria", "B": "Nucleus", "C": "Chloroplast", "D": "Ribosome"}, "correct_answer": "C", "explanation": "In chloroplasts."},
  {"question": "Which pigment captures light?", "options": {"A": "Chlorophyll", "B": "Melanin", "C": "Hemoglobin", "D": "Keratin"}, "correct_answer": "A", "explanation": "Chlorophyll absorbs light."}
]`

type testServer struct {
	*httptest.Server
	mock  *llm.MockProvider
	store *store.Store
}

func newTestServer(t *testing.T, responses ...llm.MockResponse) *testServer {
	t.Helper()
	st, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	mock := llm.NewMockProvider(responses...)
	tests := service.NewTestService(service.TestConfig{
		Sessions:  st.SessionRepo(),
		Generator: mcqgen.New(mock, mcqgen.DefaultConfig()),
	})
	chat := service.NewChatService(service.ChatConfig{Chats: st.ChatRepo(), Provider: mock})

	srv := httptest.NewServer(NewRouter(Deps{
		Tests:        tests,
		Chat:         chat,
		Ping:         st.Ping,
		DefaultCount: 3,
		CORSOrigins:  []string{"http://localhost:3000"},
		Version:      "test",
	}))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, mock: mock, store: st}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.URL+path, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func detailOf(t *testing.T, raw []byte) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return body.Detail
}

func TestGenerateSubmitFlow(t *testing.T) {
	srv := newTestServer(t, llm.MockText(photosynthesisJSON))

	resp, raw := srv.do(t, http.MethodPost, "/api/test/generate", `{"topic":"Photosynthesis","num_questions":3,"difficulty":"medium"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Equal(t, 3, strings.Count(string(raw), `"correct_answer":""`))
	assert.NotContains(t, string(raw), "explanation")

	var test quiz.PublicTest
	require.NoError(t, json.Unmarshal(raw, &test))
	require.True(t, strings.HasPrefix(test.TestID, "test_"))
	require.Len(t, test.Questions, 3)

	resp, raw = srv.do(t, http.MethodGet, "/api/test/"+test.TestID+"/result", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	submit := fmt.Sprintf(`{"test_id":%q,"answers":[{"question_id":"q_1","selected_answer":"B"},{"question_id":"q_2","selected_answer":"C"},{"question_id":"q_3","selected_answer":"D"}]}`, test.TestID)
	resp, raw = srv.do(t, http.MethodPost, "/api/test/submit", submit)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var result quiz.TestResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 1, result.WrongAnswers)
	assert.Equal(t, 66.67, result.ScorePercentage)

	resp, raw = srv.do(t, http.MethodPost, "/api/test/submit", submit)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, store.ErrAlreadySubmitted.Error(), detailOf(t, raw))

	resp, raw = srv.do(t, http.MethodGet, "/api/test/"+test.TestID+"/result", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stored quiz.TestResult
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, result.ScorePercentage, stored.ScorePercentage)

	resp, raw = srv.do(t, http.MethodGet, "/api/test/"+test.TestID+"/status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status quiz.TestStatus
	require.NoError(t, json.Unmarshal(raw, &status))
	assert.Equal(t, quiz.StatusCompleted, status.Status)

	resp, raw = srv.do(t, http.MethodGet, "/api/test/history?limit=5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []quiz.TestSummary
	require.NoError(t, json.Unmarshal(raw, &history))
	require.Len(t, history, 1)
	require.NotNil(t, history[0].ScorePercentage)
	assert.Equal(t, 66.67, *history[0].ScorePercentage)
}

func TestGenerateDefaults(t *testing.T) {
	srv := newTestServer(t, llm.MockText(photosynthesisJSON))

	resp, raw := srv.do(t, http.MethodPost, "/api/test/generate", `{"topic":"Photosynthesis"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	call := srv.mock.LastCall()
	assert.Contains(t, call.Messages[0].Content, "Generate 3 multiple-choice questions")
	assert.Contains(t, call.System, "MEDIUM")
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		responses  []llm.MockResponse
		wantStatus int
	}{
		{"bad json", `{"topic":`, nil, http.StatusBadRequest},
		{"short topic", `{"topic":"ab"}`, nil, http.StatusUnprocessableEntity},
		{"too many questions", `{"topic":"Physics","num_questions":51}`, nil, http.StatusUnprocessableEntity},
		{"zero questions", `{"topic":"Physics","num_questions":0}`, nil, http.StatusUnprocessableEntity},
		{"bad difficulty", `{"topic":"Physics","difficulty":"extreme"}`, nil, http.StatusUnprocessableEntity},
		{"malformed output", `{"topic":"Physics","num_questions":1}`, []llm.MockResponse{llm.MockText("no json here")}, http.StatusBadGateway},
		{"timeout", `{"topic":"Physics","num_questions":1}`, []llm.MockResponse{{Err: &llm.ErrTimeout{}}}, http.StatusServiceUnavailable},
		{"rate limit", `{"topic":"Physics","num_questions":1}`, []llm.MockResponse{{Err: &llm.ErrRateLimit{}}}, http.StatusServiceUnavailable},
		{"rejected", `{"topic":"Physics","num_questions":1}`, []llm.MockResponse{{Err: &llm.ErrRequestRejected{StatusCode: 401, Err: errors.New("bad key")}}}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.responses...)
			resp, raw := srv.do(t, http.MethodPost, "/api/test/generate", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode, string(raw))
			assert.NotEmpty(t, detailOf(t, raw))

			history, err := srv.store.SessionRepo().ListRecent(context.Background(), 0)
			require.NoError(t, err)
			assert.Empty(t, history, "failed generation must not persist a session")
		})
	}
}

func TestSubmitErrors(t *testing.T) {
	srv := newTestServer(t, llm.MockText(photosynthesisJSON))
	resp, raw := srv.do(t, http.MethodPost, "/api/test/generate", `{"topic":"Photosynthesis"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var test quiz.PublicTest
	require.NoError(t, json.Unmarshal(raw, &test))

	resp, _ = srv.do(t, http.MethodPost, "/api/test/submit", `{"answers":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, raw = srv.do(t, http.MethodPost, "/api/test/submit", `{"test_id":"test_nope","answers":[]}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(raw))

	resp, raw = srv.do(t, http.MethodPost, "/api/test/submit", fmt.Sprintf(`{"test_id":%q,"answers":[{"question_id":"q_1","selected_answer":"X"}]}`, test.TestID))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, detailOf(t, raw), "answers[0].selected_answer")

	require.NoError(t, srv.store.SessionRepo().MarkExpired(context.Background(), test.TestID))
	resp, _ = srv.do(t, http.MethodPost, "/api/test/submit", fmt.Sprintf(`{"test_id":%q,"answers":[]}`, test.TestID))
	assert.Equal(t, http.StatusGone, resp.StatusCode)
}

func TestTestLookupNotFound(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/api/test/test_x", "/api/test/test_x/result", "/api/test/test_x/status"} {
		resp, raw := srv.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Contains(t, detailOf(t, raw), "test_x")
	}
}

func TestHistoryLimitValidation(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := srv.do(t, http.MethodGet, "/api/test/history?limit=abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, raw := srv.do(t, http.MethodGet, "/api/test/history", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))
}

func TestChatEndpoints(t *testing.T) {
	srv := newTestServer(t, llm.MockText("Hi! Ask me anything."))

	resp, raw := srv.do(t, http.MethodPost, "/api/chat/session/new", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]string
	require.NoError(t, json.Unmarshal(raw, &created))
	id := created["session_id"]
	require.NotEmpty(t, id)

	resp, raw = srv.do(t, http.MethodPost, "/api/chat/message", fmt.Sprintf(`{"message":"hello","session_id":%q}`, id))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var reply quiz.ChatReply
	require.NoError(t, json.Unmarshal(raw, &reply))
	assert.Equal(t, id, reply.SessionID)
	assert.Equal(t, "Hi! Ask me anything.", reply.Message)
	assert.Len(t, reply.Suggestions, 3)

	resp, raw = srv.do(t, http.MethodGet, "/api/chat/history/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []quiz.ChatMessage
	require.NoError(t, json.Unmarshal(raw, &history))
	assert.Len(t, history, 2)

	resp, raw = srv.do(t, http.MethodGet, "/api/chat/session/"+id+"/exists", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var exists map[string]any
	require.NoError(t, json.Unmarshal(raw, &exists))
	assert.Equal(t, true, exists["exists"])
	assert.Equal(t, float64(2), exists["message_count"])

	resp, _ = srv.do(t, http.MethodGet, "/api/chat/history/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = srv.do(t, http.MethodPost, "/api/chat/message", `{"message":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(raw))
}

func TestRootAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := srv.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "MCQ Genie")

	resp, raw = srv.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"database":"connected"`)
}

func TestHealthUnhealthy(t *testing.T) {
	h := NewRouter(Deps{Ping: func(context.Context) error { return errors.New("down") }})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "disconnected")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/test/generate", bytes.NewReader(nil))
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&quiz.ValidationError{Field: "topic"}, http.StatusUnprocessableEntity},
		{store.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", service.ErrResultNotReady), http.StatusNotFound},
		{store.ErrAlreadySubmitted, http.StatusConflict},
		{store.ErrExpired, http.StatusGone},
		{&mcqgen.GenerationError{Err: &mcqgen.MalformedOutputError{Index: -1, Err: errors.New("x")}}, http.StatusBadGateway},
		{&mcqgen.GenerationError{Err: &llm.ErrProviderUnavailable{}}, http.StatusServiceUnavailable},
		{&mcqgen.GenerationError{Err: &llm.ErrRequestRejected{StatusCode: 400}}, http.StatusBadGateway},
		{fmt.Errorf("chat completion: %w", &llm.ErrInvalidResponse{}), http.StatusBadGateway},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
