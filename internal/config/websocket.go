package config

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket holds the upgrader used by the game connect endpoint.
type WebSocket struct {
	Upgrader websocket.Upgrader
}

// allowedOrigins reads the comma separated WS_ALLOWED_ORIGINS list. An empty
// list admits every origin.
func allowedOrigins() map[string]bool {
	origins := make(map[string]bool)
	for _, o := range strings.Split(os.Getenv("WS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = true
		}
	}
	return origins
}

func NewWebSocket() (*WebSocket, error) {
	origins := allowedOrigins()

	return &WebSocket{
		Upgrader: websocket.Upgrader{
			HandshakeTimeout: 4 * time.Second,
			// command lines and session snapshots are small
			ReadBufferSize:  2048,
			WriteBufferSize: 2048,
			CheckOrigin: func(r *http.Request) bool {
				if len(origins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				return origin == "" || origins[origin]
			},
		},
	}, nil
}
