package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
)

func TestWrapOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), tag("inner"), tag("outer"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestLogging(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	h := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/game?difficulty=easy", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "/game?difficulty=easy", entry.Data["uri"])
	assert.Equal(t, http.MethodPost, entry.Data["method"])
}

func TestLoggingImplicitOK(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	h := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/records", nil))

	assert.Equal(t, http.StatusOK, hook.LastEntry().Data["status"])
}

func authServer(t *testing.T, j *config.JWT) *http.ServeMux {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	mux := http.NewServeMux()
	mux.Handle("POST /game/{id}/move", Auth(log, j)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(CtxSessionClaims).(*config.SessionClaims)
			require.True(t, ok)
			w.Write([]byte(claims.SessionId))
		},
	)))
	return mux
}

func TestAuth(t *testing.T) {
	j := config.NewJWTWithSecret([]byte("secret"), time.Minute)
	mux := authServer(t, j)
	valid, err := j.Sign("abc")
	require.NoError(t, err)
	forged, err := config.NewJWTWithSecret([]byte("nope"), time.Minute).Sign("abc")
	require.NoError(t, err)

	tests := []struct {
		name   string
		target string
		header string
		status int
	}{
		{"no token", "/game/abc/move", "", http.StatusUnauthorized},
		{"bearer", "/game/abc/move", "Bearer " + valid, http.StatusOK},
		{"query", "/game/abc/move?token=" + valid, "", http.StatusOK},
		{"wrong scheme", "/game/abc/move", "Basic " + valid, http.StatusUnauthorized},
		{"forged", "/game/abc/move", "Bearer " + forged, http.StatusUnauthorized},
		{"other session", "/game/xyz/move", "Bearer " + valid, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "abc", rec.Body.String())
			}
		})
	}
}

func TestCorsPreflight(t *testing.T) {
	h := Cors()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodOptions, "/game", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
