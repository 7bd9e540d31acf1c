package hub

import (
	"context"
	"errors"
	"log"
	"sync"
)

const (
	tournamentSize = 4
	finalistCount  = 2
)

// UserDirectory resolves a username to public profile information. Lookup
// failures are tolerated by the coordinators: the player is enqueued with
// a bare username and no avatar.
type UserDirectory interface {
	Lookup(ctx context.Context, username string) (PlayerInfo, error)
}

// TournamentCoordinator owns the four-player bracket queue and the
// two-slot finalist aggregator. All state transitions happen inside one
// mutex so a length check and the append it guards are a single atomic
// step; broadcasts are computed under the lock and delivered after it is
// released.
type TournamentCoordinator struct {
	mu        sync.Mutex
	queue     []PlayerInfo
	finalists []string
	directory UserDirectory
	groups    *GroupRegistry
}

// NewTournamentCoordinator returns an idle coordinator with empty queues.
func NewTournamentCoordinator(directory UserDirectory, groups *GroupRegistry) *TournamentCoordinator {
	return &TournamentCoordinator{
		directory: directory,
		groups:    groups,
	}
}

// Join enqueues username for the next bracket. A username already waiting
// is ignored. Every current queue member is told about the new entrant;
// when the fourth distinct player arrives the bracket is announced with
// first-come pairings and the queue resets.
func (t *TournamentCoordinator) Join(ctx context.Context, username string) {
	player := lookupPlayer(ctx, t.directory, username)

	t.mu.Lock()
	if containsPlayer(t.queue, username) {
		t.mu.Unlock()
		return
	}
	t.queue = append(t.queue, player)
	current := clonePlayers(t.queue)

	var ready *TournamentReady
	if len(t.queue) == tournamentSize {
		players := clonePlayers(t.queue)
		ready = &TournamentReady{
			Type:    EventTournamentReady,
			Players: players,
			Pairings: [][]string{
				{players[0].Username, players[1].Username},
				{players[2].Username, players[3].Username},
			},
		}
		t.queue = nil
	}
	t.mu.Unlock()

	joined := TournamentPlayerJoined{
		Type:           EventTournamentPlayerJoined,
		Player:         player,
		CurrentPlayers: current,
	}
	for _, p := range current {
		t.groups.Send(NotificationGroup(p.Username), joined)
	}

	if ready != nil {
		for _, p := range ready.Players {
			t.groups.Send(NotificationGroup(p.Username), *ready)
		}
	}
}

// ReportWinner records username as a bracket winner. A winner already
// recorded is ignored. When the second distinct finalist arrives the
// final match is announced to both and the aggregator resets for the
// next cycle. The returned error carries a user-presentable message
// only; the root cause has already been logged.
func (t *TournamentCoordinator) ReportWinner(username string) error {
	if username == "" {
		log.Printf("tournament: rejected winner report with empty username")
		return errors.New("Tournament winner process failed")
	}

	t.mu.Lock()
	if !containsString(t.finalists, username) {
		t.finalists = append(t.finalists, username)
	}

	var final *TournamentFinal
	if len(t.finalists) == finalistCount {
		finalists := append([]string(nil), t.finalists...)
		final = &TournamentFinal{
			Type:      EventTournamentFinal,
			Finalists: finalists,
			RoomID:    "tournament_final_" + finalists[0] + "_" + finalists[1],
		}
		t.finalists = nil
	}
	t.mu.Unlock()

	if final != nil {
		for _, finalist := range final.Finalists {
			t.groups.Send(NotificationGroup(finalist), *final)
		}
	}
	return nil
}

func lookupPlayer(ctx context.Context, directory UserDirectory, username string) PlayerInfo {
	player, err := directory.Lookup(ctx, username)
	if err != nil {
		log.Printf("matchmaking: profile lookup for %q failed: %v", username, err)
		return PlayerInfo{Username: username}
	}
	return player
}

func containsPlayer(players []PlayerInfo, username string) bool {
	for _, p := range players {
		if p.Username == username {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func clonePlayers(players []PlayerInfo) []PlayerInfo {
	return append([]PlayerInfo(nil), players...)
}
