package server

import (
	"context"
	"encoding/json"
	"log"

	"github.com/arenahub/arenahub/internal/hub"
)

// Inbound notification-channel message types with dedicated handlers.
// Anything else falls through to the generic per-user router.
const (
	msgTournamentJoin   = "tournament_join"
	msgTournamentWinner = "tournament_winner"
	msgTournamentFinal  = "tournament_final"
	msgGetOnlineUsers   = "get_online_users"
)

// invalidJSONReply is sent back to the offending sender only; the
// connection stays open.
var invalidJSONReply = []byte(`{"error": "Invalid JSON format"}`)

// NotifySession binds one user to the notification channel: the user's
// private notification group, the shared online group, presence, and the
// matchmaking message dispatch. Inbound types are routed through an
// explicitly enumerated dispatch table.
type NotifySession struct {
	username string
	conn     hub.Conn
	hub      *hub.Hub
	ctx      context.Context
	handlers map[string]func(Envelope)
}

// NewNotifySession constructs the session and its dispatch table. The
// context bounds directory lookups issued on behalf of this connection.
func NewNotifySession(ctx context.Context, username string, conn hub.Conn, h *hub.Hub) *NotifySession {
	s := &NotifySession{
		username: username,
		conn:     conn,
		hub:      h,
		ctx:      ctx,
	}
	s.handlers = map[string]func(Envelope){
		msgTournamentJoin:   s.handleTournamentJoin,
		msgTournamentWinner: s.handleTournamentWinner,
		msgTournamentFinal:  s.handleTournamentFinal,
		msgGetOnlineUsers:   s.handleGetOnlineUsers,
	}
	return s
}

// Connect joins the session to its private group and the shared online
// group, then announces the user as online. The session joins the online
// group first so it receives its own status broadcast.
func (s *NotifySession) Connect() {
	s.hub.Groups.Join(hub.OnlineGroup, s.conn)
	s.hub.Groups.Join(hub.NotificationGroup(s.username), s.conn)
	s.hub.Presence.Connect(s.username)
}

// HandleMessage decodes one inbound frame and dispatches it by type.
// Malformed JSON earns the sender an error envelope and nothing else.
func (s *NotifySession) HandleMessage(raw []byte) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		s.conn.Deliver(invalidJSONReply)
		return
	}

	if env.Type == "" {
		log.Printf("Notification session for %s dropped message without type", s.username)
		return
	}

	if handler, ok := s.handlers[env.Type]; ok {
		handler(env)
		return
	}

	// Catch-all: address an arbitrary typed notice to a named user.
	s.hub.Notifications.Route(env.Type, env.Username, env.Title, env.Message, env.Data)
}

// Close withdraws the user from presence and leaves both groups. Presence
// broadcasts before the memberships are dropped, matching connect order
// in reverse.
func (s *NotifySession) Close() {
	s.hub.Presence.Disconnect(s.username)
	s.hub.Groups.Leave(hub.NotificationGroup(s.username), s.conn)
	s.hub.Groups.Leave(hub.OnlineGroup, s.conn)
}

func (s *NotifySession) handleTournamentJoin(env Envelope) {
	username, _ := env.Data["username"].(string)
	if username == "" {
		log.Printf("Notification session for %s dropped tournament_join without data.username", s.username)
		return
	}
	s.hub.Tournament.Join(s.ctx, username)
}

func (s *NotifySession) handleTournamentWinner(env Envelope) {
	if err := s.hub.Tournament.ReportWinner(env.Username); err != nil {
		s.deliverEvent(hub.ErrorNotice{
			Type:    hub.EventError,
			Message: err.Error(),
		})
	}
}

// handleTournamentFinal re-emits a final announcement carrying the given
// finalists to the sender's own notification group. No room id is
// derived on this path.
func (s *NotifySession) handleTournamentFinal(env Envelope) {
	s.hub.Groups.Send(hub.NotificationGroup(s.username), hub.TournamentFinal{
		Type:      hub.EventTournamentFinal,
		Finalists: env.Finalists,
	})
}

// handleGetOnlineUsers replies to the requesting connection only.
func (s *NotifySession) handleGetOnlineUsers(Envelope) {
	s.deliverEvent(hub.StatusUpdate{
		Type:        hub.EventUserStatusUpdate,
		OnlineUsers: s.hub.Presence.OnlineUsers(),
	})
}

func (s *NotifySession) deliverEvent(event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Notification session for %s failed to encode reply: %v", s.username, err)
		return
	}
	s.conn.Deliver(payload)
}
