package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/playperu/countryquiz/internal/countryquiz"
)

type StateResponse struct {
	PlayerKey       string     `json:"playerKey"`
	CurrentScore    int        `json:"currentScore"`
	HighScore       int        `json:"highScore"`
	CurrentStreak   int        `json:"currentStreak"`
	BestStreak      int        `json:"bestStreak"`
	TotalCorrect    int        `json:"totalCorrect"`
	TotalAnswered   int        `json:"totalAnswered"`
	Accuracy        float64    `json:"accuracy"`
	AccuracyComment string     `json:"accuracyComment"`
	SelectedMetric  string     `json:"selectedMetric,omitempty"`
	LastPlayedAt    *time.Time `json:"lastPlayedAt,omitempty"`
}

type ResetRequest struct {
	Scope string `json:"scope,omitempty" enum:"session,full"`
}

type ResetResponse struct {
	State     StateResponse `json:"state"`
	Message   string        `json:"message"`
	Persisted bool          `json:"persisted"`
}

type MetricRequest struct {
	// Metric is a metric key, or empty to clear the preference.
	Metric string `json:"metric"`
}

type MetricResponse struct {
	State     StateResponse `json:"state"`
	Persisted bool          `json:"persisted"`
}

func newStateResponse(s *countryquiz.GameState) StateResponse {
	acc := s.Accuracy()
	resp := StateResponse{
		PlayerKey:       s.PlayerKey,
		CurrentScore:    s.CurrentScore,
		HighScore:       s.HighScore,
		CurrentStreak:   s.CurrentStreak,
		BestStreak:      s.BestStreak,
		TotalCorrect:    s.TotalCorrect,
		TotalAnswered:   s.TotalAnswered,
		Accuracy:        acc,
		AccuracyComment: countryquiz.AccuracyComment(acc),
		LastPlayedAt:    s.LastPlayedAt,
	}
	if s.SelectedMetric != nil {
		resp.SelectedMetric = s.SelectedMetric.String()
	}
	return resp
}

func progressEvent(typ string, s *countryquiz.GameState) Event {
	ev := Event{
		Type:          typ,
		CurrentScore:  s.CurrentScore,
		CurrentStreak: s.CurrentStreak,
		BestStreak:    s.BestStreak,
	}
	if s.SelectedMetric != nil {
		ev.Metric = s.SelectedMetric.String()
	}
	return ev
}

func handleGetState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := playerSession(r)

		sess.mu.Lock()
		state := sess.game.State()
		sess.mu.Unlock()

		writeJSON(w, http.StatusOK, newStateResponse(state))
	}
}

func handleReset(logger *slog.Logger, sessions *Sessions, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := playerSession(r)

		var req ResetRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()

		var msg string
		switch req.Scope {
		case "", "session":
			msg = sess.game.SessionReset()
		case "full":
			msg = sess.game.FullReset()
		default:
			writeError(w, http.StatusBadRequest, `scope must be "session" or "full"`)
			return
		}

		persisted := sessions.save(r.Context(), logger, sess)
		state := sess.game.State()
		broker.Publish(sess.key, progressEvent(eventReset, state))

		writeJSON(w, http.StatusOK, ResetResponse{
			State:     newStateResponse(state),
			Message:   msg,
			Persisted: persisted,
		})
	}
}

func handleSelectMetric(logger *slog.Logger, sessions *Sessions, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := playerSession(r)

		var req MetricRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var selected *countryquiz.Metric
		if req.Metric != "" {
			m, err := countryquiz.ParseMetric(req.Metric)
			if err != nil {
				writeEngineError(w, logger, err)
				return
			}
			selected = &m
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()

		if err := sess.game.SelectMetric(selected); err != nil {
			writeEngineError(w, logger, err)
			return
		}

		persisted := sessions.save(r.Context(), logger, sess)
		state := sess.game.State()
		broker.Publish(sess.key, progressEvent(eventMetric, state))

		writeJSON(w, http.StatusOK, MetricResponse{
			State:     newStateResponse(state),
			Persisted: persisted,
		})
	}
}
