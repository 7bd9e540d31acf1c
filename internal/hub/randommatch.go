package hub

import (
	"context"
	"sync"
)

const randomMatchSize = 2

// RandomMatchCoordinator owns the pairwise random-match queue. The second
// distinct player to arrive completes a pair: a deterministic room id is
// derived from the two usernames in arrival order and the queue resets.
type RandomMatchCoordinator struct {
	mu        sync.Mutex
	queue     []PlayerInfo
	directory UserDirectory
	groups    *GroupRegistry
}

// NewRandomMatchCoordinator returns an idle coordinator.
func NewRandomMatchCoordinator(directory UserDirectory, groups *GroupRegistry) *RandomMatchCoordinator {
	return &RandomMatchCoordinator{
		directory: directory,
		groups:    groups,
	}
}

// Join enqueues username for random matching. A username already waiting
// is ignored and nothing is broadcast. On a fresh enqueue every queued
// player is told about the entrant, so the player completing a pair
// receives both the joined and the ready events.
func (m *RandomMatchCoordinator) Join(ctx context.Context, username string) {
	player := lookupPlayer(ctx, m.directory, username)

	m.mu.Lock()
	if containsPlayer(m.queue, username) {
		m.mu.Unlock()
		return
	}
	m.queue = append(m.queue, player)
	current := clonePlayers(m.queue)

	var ready *RandomMatchReady
	if len(m.queue) == randomMatchSize {
		players := clonePlayers(m.queue)
		ready = &RandomMatchReady{
			Type:    EventRandomMatchReady,
			Players: players,
			RoomID:  "random_" + players[0].Username + "_" + players[1].Username,
		}
		m.queue = nil
	}
	m.mu.Unlock()

	joined := RandomMatchPlayerJoined{
		Type:           EventRandomMatchPlayerJoined,
		Player:         player,
		CurrentPlayers: current,
	}
	for _, p := range current {
		m.groups.Send(NotificationGroup(p.Username), joined)
	}

	if ready != nil {
		for _, p := range ready.Players {
			m.groups.Send(NotificationGroup(p.Username), *ready)
		}
	}
}
