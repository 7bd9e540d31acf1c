package server

import "encoding/json"

// Envelope is the inbound client message. Only the fields relevant to the
// addressed branch are populated; Data always decodes to a non-nil map so
// downstream code never needs a nil branch.
type Envelope struct {
	Type      string         `json:"type"`
	RoomID    string         `json:"room_id"`
	Message   string         `json:"message"`
	Username  string         `json:"username"`
	Title     string         `json:"title"`
	Data      map[string]any `json:"data"`
	Finalists []string       `json:"finalists"`
}

func decodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, err
	}
	if env.Data == nil {
		env.Data = map[string]any{}
	}
	return env, nil
}
