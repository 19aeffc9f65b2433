package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/playperu/countryquiz/internal/countryquiz"
)

type QuestionRequest struct {
	// Metric overrides the player's preference for this question only.
	Metric string `json:"metric,omitempty"`
}

// CountryInfo is a country as shown in a question, without its statistics.
type CountryInfo struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Flag      string `json:"flag"`
	Continent string `json:"continent"`
}

type QuestionResponse struct {
	ID        string      `json:"id"`
	Metric    string      `json:"metric"`
	Label     string      `json:"label"`
	Prompt    string      `json:"prompt"`
	A         CountryInfo `json:"a"`
	B         CountryInfo `json:"b"`
	CreatedAt time.Time   `json:"createdAt"`
}

func newCountryInfo(c countryquiz.Country) CountryInfo {
	return CountryInfo{Code: c.Code, Name: c.Name, Flag: c.Flag, Continent: c.Continent}
}

func handleNewQuestion(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := playerSession(r)

		var req QuestionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var override *countryquiz.Metric
		if req.Metric != "" {
			m, err := countryquiz.ParseMetric(req.Metric)
			if err != nil {
				writeEngineError(w, logger, err)
				return
			}
			override = &m
		}

		sess.mu.Lock()
		q, err := sess.game.NextQuestion(override)
		sess.mu.Unlock()
		if errors.Is(err, countryquiz.ErrCatalogTooSmall) {
			logger.Error("generating question", "player", sess.key, "error", err)
			writeError(w, http.StatusInternalServerError, "country catalog is too small")
			return
		}
		if err != nil {
			writeEngineError(w, logger, err)
			return
		}

		spec, err := countryquiz.Lookup(q.Metric)
		if err != nil {
			writeEngineError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, QuestionResponse{
			ID:        q.ID,
			Metric:    spec.Key,
			Label:     spec.Label,
			Prompt:    spec.Prompt,
			A:         newCountryInfo(q.A),
			B:         newCountryInfo(q.B),
			CreatedAt: q.CreatedAt,
		})
	}
}
