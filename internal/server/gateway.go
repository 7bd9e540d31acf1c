package server

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/arenahub/arenahub/internal/hub"
)

// Gateway owns the WebSocket endpoints and the set of live clients. It is
// constructed once at startup with the hub and directory injected, so
// tests can run any number of independent gateways.
type Gateway struct {
	hub            *hub.Hub
	directory      hub.UserDirectory
	upgrader       websocket.Upgrader
	maxMessageSize int64

	mu      sync.Mutex
	clients map[*Client]struct{}
	closed  bool
	wg      sync.WaitGroup
}

// NewGateway wires a gateway to the given hub and user directory.
func NewGateway(cfg *Config, h *hub.Hub, directory hub.UserDirectory) *Gateway {
	policy := newOriginPolicy(cfg.AllowedOrigins)

	return &Gateway{
		hub:            h,
		directory:      directory,
		maxMessageSize: cfg.MaxMessageSize,
		clients:        make(map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     policy.check,
		},
	}
}

// ChatHandler upgrades a chat channel connection. The username path
// variable carries the caller's authenticated identity; the avatar is
// snapshotted from the directory at connect time and stamped onto every
// room broadcast this connection sends.
func (g *Gateway) ChatHandler(w http.ResponseWriter, r *http.Request) {
	username, ok := g.identity(w, r)
	if !ok {
		return
	}

	avatar := ""
	if profile, err := g.directory.Lookup(r.Context(), username); err == nil {
		avatar = profile.Avatar
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := newClient(conn, r.RemoteAddr, g.maxMessageSize)
	client.bind(NewChatSession(username, avatar, client, g.hub.Groups))
	g.serve(client)
}

// NotificationsHandler upgrades a notification channel connection and
// announces the user as online before the pumps start, so the very first
// frame the client receives is the presence snapshot including itself.
func (g *Gateway) NotificationsHandler(w http.ResponseWriter, r *http.Request) {
	username, ok := g.identity(w, r)
	if !ok {
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := newClient(conn, r.RemoteAddr, g.maxMessageSize)
	session := NewNotifySession(r.Context(), username, client, g.hub)
	client.bind(session)
	session.Connect()
	g.serve(client)
}

func (g *Gateway) identity(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. WebSocket endpoint only accepts GET requests.", http.StatusMethodNotAllowed)
		return "", false
	}

	username := mux.Vars(r)["username"]
	if username == "" {
		http.Error(w, "Missing username.", http.StatusBadRequest)
		return "", false
	}
	return username, true
}

// serve runs the client's pumps, blocking until the connection drops.
func (g *Gateway) serve(client *Client) {
	if !g.track(client) {
		// Shutdown raced the handshake: release any memberships the
		// session acquired and drop the connection.
		if client.session != nil {
			client.session.Close()
		}
		client.shutdown()
		return
	}
	defer g.untrack(client)

	log.Printf("Client %s connected from %s", client.id, client.addr)

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		client.writePump()
	}()
	client.readPump()

	log.Printf("Client %s disconnected", client.id)
}

func (g *Gateway) track(client *Client) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return false
	}
	g.clients[client] = struct{}{}
	return true
}

func (g *Gateway) untrack(client *Client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.clients, client)
}

// Shutdown closes every live client connection and waits for their pumps
// to finish, or until the timeout is reached.
func (g *Gateway) Shutdown(timeout time.Duration) error {
	g.mu.Lock()
	g.closed = true
	clients := make([]*Client, 0, len(g.clients))
	for client := range g.clients {
		clients = append(clients, client)
	}
	g.mu.Unlock()

	log.Printf("Shutting down %d client connections...", len(clients))
	for _, client := range clients {
		client.shutdown()
	}

	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Gateway shutdown completed")
		return nil
	case <-time.After(timeout):
		log.Println("Gateway shutdown timeout reached, some goroutines may still be running")
		return context.DeadlineExceeded
	}
}
