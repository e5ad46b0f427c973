package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/abhisek/mcqgenie/internal/llm"
	"github.com/abhisek/mcqgenie/internal/mcqgen"
	"github.com/abhisek/mcqgenie/internal/quiz"
	"github.com/abhisek/mcqgenie/internal/service"
	"github.com/abhisek/mcqgenie/internal/store"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorBody{Detail: detail})
}

// respondError maps err onto a status code and a {"detail": ...} body.
// Unexpected errors are logged and reported without their text.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		detail = "internal server error"
	}
	respondDetail(w, status, detail)
}

func statusFor(err error) int {
	var (
		verr      *quiz.ValidationError
		malformed *mcqgen.MalformedOutputError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound), errors.Is(err, service.ErrResultNotReady):
		return http.StatusNotFound
	case errors.Is(err, store.ErrAlreadySubmitted):
		return http.StatusConflict
	case errors.Is(err, store.ErrExpired):
		return http.StatusGone
	case errors.As(err, &malformed):
		return http.StatusBadGateway
	case llm.IsRetryable(err):
		return http.StatusServiceUnavailable
	case isUpstream(err):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// isUpstream reports a permanent failure of the LLM call.
func isUpstream(err error) bool {
	var (
		gen      *mcqgen.GenerationError
		rejected *llm.ErrRequestRejected
		invalid  *llm.ErrInvalidResponse
		maxTok   *llm.ErrMaxTokensExceeded
	)
	return errors.As(err, &gen) || errors.As(err, &rejected) || errors.As(err, &invalid) || errors.As(err, &maxTok)
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
