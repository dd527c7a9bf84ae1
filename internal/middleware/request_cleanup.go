package middleware

import (
	"io"
	"net/http"

	"github.com/gorilla/websocket"
)

// DrainAndCloseRequest - avoid potential overhead and memory leaks by draining the request body and closing it.
// Websocket upgrades are left alone, their connection belongs to the handler.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if websocket.IsWebSocketUpgrade(r) {
				return
			}
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
