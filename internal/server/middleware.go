package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/countryquiz/internal/store"
)

type ctxKey int

const ctxKeySession ctxKey = iota

func playerMiddleware(logger *slog.Logger, sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := chi.URLParam(r, "player")
			if err := store.ValidateKey(key); err != nil {
				writeError(w, http.StatusBadRequest, "invalid player key")
				return
			}

			sess, err := sessions.Get(r.Context(), key)
			if errors.Is(err, store.ErrInvalidKey) {
				writeError(w, http.StatusBadRequest, "invalid player key")
				return
			}
			if err != nil {
				logger.Error("loading player session", "player", key, "error", err)
				writeError(w, http.StatusServiceUnavailable, "game state unavailable")
				return
			}
			defer sessions.Release(sess)

			ctx := context.WithValue(r.Context(), ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func playerSession(r *http.Request) *session {
	return r.Context().Value(ctxKeySession).(*session)
}
