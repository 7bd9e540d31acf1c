// Package server wires the gateway's endpoints into a mux router.
package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter configures and returns the application router: health check
// plus the two WebSocket channels. The username path variable is the
// caller's identity; authentication happens upstream.
func NewRouter(g *Gateway) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/ws/chat/{username}", g.ChatHandler)
	r.HandleFunc("/ws/notifications/{username}", g.NotificationsHandler)
	return r
}

// HealthHandler provides a simple health check endpoint that returns
// server status as plain text.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "Arena hub is running!")
}
