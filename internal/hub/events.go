package hub

// Outbound event type discriminators.
const (
	EventMessage                 = "message"
	EventUserStatusUpdate        = "user_status_update"
	EventNotification            = "notification"
	EventInvite                  = "invite"
	EventInviteAccepted          = "invite_accepted"
	EventTournamentPlayerJoined  = "tournament_player_joined"
	EventTournamentReady         = "tournament_ready"
	EventTournamentFinal         = "tournament_final"
	EventRandomMatchPlayerJoined = "random_match_player_joined"
	EventRandomMatchReady        = "random_match_ready"
	EventError                   = "error"
)

// PlayerInfo is a snapshot of a player's public profile taken when the
// player enters a queue. Equality is by username only; the avatar can go
// stale if the profile changes after the snapshot was taken.
type PlayerInfo struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// ChatMessage is a chat room broadcast stamped with the sender's identity.
type ChatMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	RoomID  string `json:"room_id"`
	User    string `json:"user"`
	Avatar  string `json:"avatar"`
}

// StatusUpdate carries the full snapshot of online usernames.
type StatusUpdate struct {
	Type        string   `json:"type"`
	OnlineUsers []string `json:"online_users"`
}

// Notice is the generic per-user notification envelope. The type is the
// inbound kind re-emitted verbatim (notification, invite, invite_accepted,
// or any other caller-chosen tag).
type Notice struct {
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// TournamentPlayerJoined announces a new queue entrant to everyone
// currently waiting.
type TournamentPlayerJoined struct {
	Type           string       `json:"type"`
	Player         PlayerInfo   `json:"player"`
	CurrentPlayers []PlayerInfo `json:"current_players"`
}

// TournamentReady announces a full bracket with first-come pairings.
type TournamentReady struct {
	Type     string       `json:"type"`
	Players  []PlayerInfo `json:"players"`
	Pairings [][]string   `json:"pairings"`
}

// TournamentFinal announces the final match between the two bracket
// winners.
type TournamentFinal struct {
	Type      string   `json:"type"`
	Finalists []string `json:"finalists"`
	RoomID    string   `json:"room_id"`
}

// RandomMatchPlayerJoined announces a new random-match queue entrant.
type RandomMatchPlayerJoined struct {
	Type           string       `json:"type"`
	Player         PlayerInfo   `json:"player"`
	CurrentPlayers []PlayerInfo `json:"current_players"`
}

// RandomMatchReady announces a formed random pair. The roomId casing is
// part of the wire contract.
type RandomMatchReady struct {
	Type    string       `json:"type"`
	Players []PlayerInfo `json:"players"`
	RoomID  string       `json:"roomId"`
}

// ErrorNotice is a generic failure notice sent to a single connection.
type ErrorNotice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
