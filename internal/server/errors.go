package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/countryquiz/internal/countryquiz"
)

// writeEngineError maps engine errors to HTTP statuses. Anything
// unrecognized is logged and reported as an internal error.
func writeEngineError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, countryquiz.ErrUnknownMetric):
		writeError(w, http.StatusBadRequest, "unknown metric")
	case errors.Is(err, countryquiz.ErrInvalidSide):
		writeError(w, http.StatusBadRequest, `choice must be "a" or "b"`)
	case errors.Is(err, countryquiz.ErrNoQuestion):
		writeError(w, http.StatusConflict, "no question has been asked")
	case errors.Is(err, countryquiz.ErrStaleQuestion):
		writeError(w, http.StatusConflict, "question is no longer current")
	case errors.Is(err, countryquiz.ErrAlreadyAnswered):
		writeError(w, http.StatusConflict, "question already answered")
	default:
		logger.Error("game engine", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
