package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/mcqgenie/internal/quiz"
)

const defaultHistoryLimit = 20

type generateRequest struct {
	Topic        string          `json:"topic"`
	NumQuestions *int            `json:"num_questions"`
	Difficulty   quiz.Difficulty `json:"difficulty"`
}

func generateHandler(svc TestService, defaultCount int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body generateRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		req := quiz.GenerationRequest{
			Topic:      body.Topic,
			Count:      defaultCount,
			Difficulty: body.Difficulty,
		}
		if body.NumQuestions != nil {
			req.Count = *body.NumQuestions
		}
		if req.Difficulty == "" {
			req.Difficulty = quiz.DifficultyMedium
		}

		test, err := svc.Generate(r.Context(), req)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, test)
	}
}

type submitRequest struct {
	TestID  string                  `json:"test_id"`
	Answers []quiz.AnswerSubmission `json:"answers"`
}

func submitHandler(svc TestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body submitRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.TestID == "" {
			respondError(w, r, &quiz.ValidationError{Field: "test_id", Message: "is required"})
			return
		}

		result, err := svc.Submit(r.Context(), body.TestID, body.Answers)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

func historyHandler(svc TestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultHistoryLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 100 {
				respondError(w, r, &quiz.ValidationError{Field: "limit", Message: "must be an integer between 1 and 100"})
				return
			}
			limit = n
		}

		history, err := svc.History(r.Context(), limit)
		if err != nil {
			respondError(w, r, err)
			return
		}
		if history == nil {
			history = []quiz.TestSummary{}
		}
		respondJSON(w, http.StatusOK, history)
	}
}

func detailsHandler(svc TestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "testID")
		test, err := svc.Details(r.Context(), id)
		if err != nil {
			respondTestError(w, r, id, err)
			return
		}
		respondJSON(w, http.StatusOK, test)
	}
}

func resultHandler(svc TestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "testID")
		result, err := svc.Result(r.Context(), id)
		if err != nil {
			respondTestError(w, r, id, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

func statusHandler(svc TestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "testID")
		status, err := svc.Status(r.Context(), id)
		if err != nil {
			respondTestError(w, r, id, err)
			return
		}
		respondJSON(w, http.StatusOK, status)
	}
}

// respondTestError names the test id in 404 details.
func respondTestError(w http.ResponseWriter, r *http.Request, id string, err error) {
	if statusFor(err) == http.StatusNotFound {
		respondDetail(w, http.StatusNotFound, err.Error()+": "+id)
		return
	}
	respondError(w, r, err)
}
