package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/mcqgenie/internal/quiz"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

func chatMessageHandler(svc ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body chatRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		reply, err := svc.Send(r.Context(), body.SessionID, body.Message)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, reply)
	}
}

func chatHistoryHandler(svc ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		messages, err := svc.History(r.Context(), id)
		if err != nil {
			if statusFor(err) == http.StatusNotFound {
				respondDetail(w, http.StatusNotFound, "session not found: "+id)
				return
			}
			respondError(w, r, err)
			return
		}
		if messages == nil {
			messages = []quiz.ChatMessage{}
		}
		respondJSON(w, http.StatusOK, messages)
	}
}

func newChatSessionHandler(svc ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := svc.NewSession(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]string{
			"session_id": id,
			"message":    "New chat session created",
		})
	}
}

func chatSessionExistsHandler(svc ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		exists, err := svc.Exists(r.Context(), id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		count := 0
		if exists {
			messages, err := svc.History(r.Context(), id)
			if err != nil {
				respondError(w, r, err)
				return
			}
			count = len(messages)
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"session_id":    id,
			"exists":        exists,
			"message_count": count,
		})
	}
}
