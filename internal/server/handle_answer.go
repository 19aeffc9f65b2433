package server

import (
	"log/slog"
	"net/http"

	"github.com/playperu/countryquiz/internal/countryquiz"
)

type AnswerRequest struct {
	QuestionID string `json:"questionId" required:"true"`
	Choice     string `json:"choice" required:"true" enum:"a,b"`
}

type AnswerResponse struct {
	QuestionID string        `json:"questionId"`
	Metric     string        `json:"metric"`
	Choice     string        `json:"choice"`
	IsCorrect  bool          `json:"isCorrect"`
	ValueA     float64       `json:"valueA"`
	ValueB     float64       `json:"valueB"`
	DisplayA   string        `json:"displayA"`
	DisplayB   string        `json:"displayB"`
	Message    string        `json:"message"`
	NewBest    bool          `json:"newBest"`
	State      StateResponse `json:"state"`
	Persisted  bool          `json:"persisted"`
}

func handleAnswer(logger *slog.Logger, sessions *Sessions, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := playerSession(r)

		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.QuestionID == "" {
			writeError(w, http.StatusBadRequest, "questionId is required")
			return
		}
		choice, err := countryquiz.ParseSide(req.Choice)
		if err != nil {
			writeEngineError(w, logger, err)
			return
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()

		res, err := sess.game.Answer(req.QuestionID, choice)
		if err != nil {
			writeEngineError(w, logger, err)
			return
		}

		persisted := sessions.save(r.Context(), logger, sess)
		state := sess.game.State()

		ev := progressEvent(eventAnswered, state)
		ev.IsCorrect = res.IsCorrect
		ev.Metric = res.Metric.String()
		broker.Publish(sess.key, ev)

		writeJSON(w, http.StatusOK, AnswerResponse{
			QuestionID: res.QuestionID,
			Metric:     res.Metric.String(),
			Choice:     string(res.Choice),
			IsCorrect:  res.IsCorrect,
			ValueA:     res.ValueA,
			ValueB:     res.ValueB,
			DisplayA:   res.DisplayA,
			DisplayB:   res.DisplayB,
			Message:    res.Message,
			NewBest:    res.NewBest,
			State:      newStateResponse(state),
			Persisted:  persisted,
		})
	}
}
