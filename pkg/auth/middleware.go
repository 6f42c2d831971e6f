package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/equiprent/pkg/httpx"
	"github.com/ghuser/equiprent/pkg/logger"
)

const (
	sessionName          = "equiprent_session"
	sessionOperatorIDKey = "operator_id"
)

// RequireAuth rejects requests without a session carrying a valid
// operator_id with 401. Downstream handlers can call OperatorIDFromCtx.
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "Authentication required.")
				return
			}

			raw, ok := session.Values[sessionOperatorIDKey].(string)
			if !ok || raw == "" {
				log.WarnContext(r.Context(), "session missing operator_id")
				httpx.JSONError(w, http.StatusUnauthorized, "Authentication required.")
				return
			}

			id, err := uuid.Parse(raw)
			if err != nil || id == uuid.Nil {
				log.WarnContext(r.Context(), "invalid operator_id in session", "operator_id", raw)
				httpx.JSONError(w, http.StatusUnauthorized, "Invalid session.")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOperatorID(r.Context(), id)))
		})
	}
}

type signInRequest struct {
	OperatorID string `json:"operator_id"`
	APIKey     string `json:"api_key"`
}

// SignInHandler starts an operator session when the posted api_key matches
// apiKey. It answers 204 with the session cookie, 400 on a malformed body
// and 401 on a key mismatch.
func SignInHandler(store sessions.Store, apiKey string, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		id, err := uuid.Parse(req.OperatorID)
		if err != nil || id == uuid.Nil {
			httpx.JSONError(w, http.StatusBadRequest, "operator_id must be a UUID.")
			return
		}
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(apiKey)) != 1 {
			log.WarnContext(r.Context(), "operator sign-in rejected", "operator_id", id)
			httpx.JSONError(w, http.StatusUnauthorized, "Invalid credentials.")
			return
		}

		session, _ := store.Get(r, sessionName) // a bad cookie still yields a fresh session
		session.Values[sessionOperatorIDKey] = id.String()
		if err := session.Save(r, w); err != nil {
			log.ErrorContext(r.Context(), "failed to save session", "error", err)
			httpx.JSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
		log.InfoContext(r.Context(), "operator signed in", "operator_id", id)
		httpx.NoContent(w)
	}
}

// SignOutHandler expires the session. Always 204.
func SignOutHandler(store sessions.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, sessionName)
		if err == nil {
			session.Options.MaxAge = -1
			if err := session.Save(r, w); err != nil {
				log.WarnContext(r.Context(), "failed to expire session", "error", err)
			}
		}
		httpx.NoContent(w)
	}
}
