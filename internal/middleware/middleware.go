// Package middleware holds the http.Handler decorators shared by the server
// routes.
package middleware

import "net/http"

// Middleware decorates a handler. See [Wrap] for how a chain is assembled.
type Middleware func(http.Handler) http.Handler

// Wrap applies mws in order, so the first one listed ends up innermost and
// the last one sees the request first. A nil list returns h unchanged.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}
