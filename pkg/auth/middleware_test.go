package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/equiprent/pkg/logger"
)

// The cookie store needs no Redis; RedisStore satisfies the same interface.
func newTestStore() sessions.Store {
	return NewCookieSessionStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
		false,
	)
}

func cookiesFrom(w *httptest.ResponseRecorder, r *http.Request) *http.Request {
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

// requestWithValue returns a request carrying a session whose operator_id is value.
func requestWithValue(t *testing.T, store sessions.Store, value any) *http.Request {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPatch, "/items/1/image", http.NoBody)

	session, err := store.Get(r, sessionName)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if value != nil {
		session.Values[sessionOperatorIDKey] = value
	}
	if err := session.Save(r, w); err != nil {
		t.Fatalf("save session: %v", err)
	}
	return cookiesFrom(w, httptest.NewRequest(http.MethodPatch, "/items/1/image", http.NoBody))
}

func mustNotCall(t *testing.T) http.Handler {
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not be called")
	})
}

func TestRequireAuth_ValidSession(t *testing.T) {
	store := newTestStore()
	id := uuid.New()

	var captured uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = OperatorIDFromCtx(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	RequireAuth(store, logger.Discard())(next).ServeHTTP(w, requestWithValue(t, store, id.String()))

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if captured != id {
		t.Fatalf("expected operator %v in context, got %v", id, captured)
	}
}

func TestRequireAuth_Rejects(t *testing.T) {
	store := newTestStore()
	tests := []struct {
		name string
		req  func() *http.Request
	}{
		{"missing cookie", func() *http.Request {
			return httptest.NewRequest(http.MethodPatch, "/items/1/image", http.NoBody)
		}},
		{"session without operator", func() *http.Request { return requestWithValue(t, store, nil) }},
		{"operator not a uuid", func() *http.Request { return requestWithValue(t, store, "not-a-uuid") }},
		{"tampered cookie", func() *http.Request {
			r := httptest.NewRequest(http.MethodPatch, "/items/1/image", http.NoBody)
			r.AddCookie(&http.Cookie{Name: sessionName, Value: "garbage"})
			return r
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RequireAuth(store, logger.Discard())(mustNotCall(t)).ServeHTTP(w, tt.req())
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), `"message"`) {
				t.Errorf("expected message body, got %s", w.Body.String())
			}
		})
	}
}

func TestSignInHandler(t *testing.T) {
	const key = "operator-key-0123456789abcdef"
	id := uuid.New()

	tests := []struct {
		name       string
		apiKey     string
		body       string
		wantStatus int
	}{
		{"valid", key, `{"operator_id":"` + id.String() + `","api_key":"` + key + `"}`, http.StatusNoContent},
		{"wrong key", key, `{"operator_id":"` + id.String() + `","api_key":"nope"}`, http.StatusUnauthorized},
		{"sign-in disabled", "", `{"operator_id":"` + id.String() + `","api_key":""}`, http.StatusUnauthorized},
		{"bad operator id", key, `{"operator_id":"x","api_key":"` + key + `"}`, http.StatusBadRequest},
		{"bad json", key, `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/operator/session", strings.NewReader(tt.body))
			SignInHandler(store, tt.apiKey, logger.Discard()).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusNoContent {
				return
			}

			// The issued cookie passes RequireAuth.
			var captured uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured, _ = OperatorIDFromCtx(r.Context())
			})
			req := cookiesFrom(w, httptest.NewRequest(http.MethodPatch, "/items/1/image", http.NoBody))
			RequireAuth(store, logger.Discard())(next).ServeHTTP(httptest.NewRecorder(), req)
			if captured != id {
				t.Fatalf("session operator = %v, want %v", captured, id)
			}
		})
	}
}

func TestSignOutHandler_ExpiresCookie(t *testing.T) {
	store := newTestStore()
	w := httptest.NewRecorder()
	SignOutHandler(store, logger.Discard()).ServeHTTP(w, requestWithValue(t, store, uuid.NewString()))

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected an expiring cookie, got %+v", cookies)
	}
}
