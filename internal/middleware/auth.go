package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
)

type CtxKey int

const (
	CtxSessionClaims CtxKey = iota
)

// token reads a bearer token from the Authorization header or, for clients
// that cannot set headers such as browser websockets, the token query value.
func token(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, found := strings.Cut(h, " ")
		if found && strings.EqualFold(scheme, "bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// Auth admits requests whose token was issued for the session named by the
// {id} path value. It must wrap a handler registered on a pattern with {id}.
func Auth(log logrus.FieldLogger, j *config.JWT) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := token(r)
			if raw == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			claims, err := j.Parse(raw)
			if err != nil {
				log.WithError(err).Debug("rejected session token")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if claims.SessionId != r.PathValue("id") {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
