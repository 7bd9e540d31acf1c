package server

import (
	"log"

	"github.com/arenahub/arenahub/internal/hub"
)

const joinRoomType = "join_room"

func chatGroup(roomID string) string {
	return "chat_" + roomID
}

// ChatSession binds one authenticated user to the chat channel. It tracks
// the rooms this connection joined so memberships can be released on
// disconnect even after an abnormal close. HandleMessage and Close run on
// the connection's read loop, so the room set needs no locking.
type ChatSession struct {
	username string
	avatar   string
	conn     hub.Conn
	groups   *hub.GroupRegistry
	rooms    map[string]struct{}
}

// NewChatSession returns a session with an empty room membership set.
func NewChatSession(username, avatar string, conn hub.Conn, groups *hub.GroupRegistry) *ChatSession {
	return &ChatSession{
		username: username,
		avatar:   avatar,
		conn:     conn,
		groups:   groups,
		rooms:    make(map[string]struct{}),
	}
}

// HandleMessage routes one inbound chat frame. join_room enters the
// room's group; any other message is broadcast to the room only when this
// session is a member. Messages without a room and messages for rooms the
// sender never joined are dropped without a reply.
func (s *ChatSession) HandleMessage(raw []byte) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		log.Printf("Chat session for %s dropped malformed message: %v", s.username, err)
		return
	}

	if env.RoomID == "" {
		return
	}
	group := chatGroup(env.RoomID)

	if env.Type == joinRoomType {
		if _, member := s.rooms[group]; !member {
			s.rooms[group] = struct{}{}
			s.groups.Join(group, s.conn)
		}
		return
	}

	if _, member := s.rooms[group]; !member {
		return
	}

	kind := env.Type
	if kind == "" {
		kind = hub.EventMessage
	}

	s.groups.Send(group, hub.ChatMessage{
		Type:    kind,
		Message: env.Message,
		RoomID:  env.RoomID,
		User:    s.username,
		Avatar:  s.avatar,
	})
}

// Close leaves every room this session joined.
func (s *ChatSession) Close() {
	for group := range s.rooms {
		s.groups.Leave(group, s.conn)
	}
	s.rooms = make(map[string]struct{})
}
