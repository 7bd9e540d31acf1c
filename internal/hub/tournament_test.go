package hub_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/arenahub/arenahub/internal/hub"
)

func newTournament(avatars map[string]string) (*hub.TournamentCoordinator, *hub.GroupRegistry) {
	groups := hub.NewGroupRegistry()
	return hub.NewTournamentCoordinator(stubDirectory{avatars: avatars}, groups), groups
}

func TestTournamentJoinIsIdempotent(t *testing.T) {
	tournament, groups := newTournament(nil)
	alice := subscribe(groups, "alice")

	tournament.Join(context.Background(), "alice")
	tournament.Join(context.Background(), "alice")

	joins := alice.eventsOfType(t, hub.EventTournamentPlayerJoined)
	if len(joins) != 1 {
		t.Fatalf("Received %d player_joined events after duplicate join, want 1", len(joins))
	}

	// A third player's join reveals the true queue length.
	tournament.Join(context.Background(), "bob")
	joins = alice.eventsOfType(t, hub.EventTournamentPlayerJoined)
	current := joins[len(joins)-1]["current_players"].([]any)
	if len(current) != 2 {
		t.Errorf("Queue holds %d players after duplicate join, want 2", len(current))
	}
}

func TestTournamentJoinNotifiesAllQueuedPlayers(t *testing.T) {
	tournament, groups := newTournament(nil)
	alice := subscribe(groups, "alice")
	bob := subscribe(groups, "bob")

	tournament.Join(context.Background(), "alice")
	tournament.Join(context.Background(), "bob")

	// alice saw her own join plus bob's; bob only saw his own.
	if got := len(alice.eventsOfType(t, hub.EventTournamentPlayerJoined)); got != 2 {
		t.Errorf("alice received %d player_joined events, want 2", got)
	}
	if got := len(bob.eventsOfType(t, hub.EventTournamentPlayerJoined)); got != 1 {
		t.Errorf("bob received %d player_joined events, want 1", got)
	}
}

func TestFourJoinsAnnounceBracketAndResetQueue(t *testing.T) {
	tournament, groups := newTournament(map[string]string{
		"alice": "https://cdn.example/a.png",
	})
	usernames := []string{"alice", "bob", "carol", "dave"}
	conns := make(map[string]*fakeConn, len(usernames))
	for _, username := range usernames {
		conns[username] = subscribe(groups, username)
	}

	for _, username := range usernames {
		tournament.Join(context.Background(), username)
	}

	for _, username := range usernames {
		ready := conns[username].eventsOfType(t, hub.EventTournamentReady)
		if len(ready) != 1 {
			t.Fatalf("%s received %d tournament_ready events, want 1", username, len(ready))
		}

		players := ready[0]["players"].([]any)
		if len(players) != 4 {
			t.Errorf("%s saw %d players, want 4", username, len(players))
		}

		pairings := ready[0]["pairings"].([]any)
		if len(pairings) != 2 {
			t.Fatalf("%s saw %d pairings, want 2", username, len(pairings))
		}
		first := pairings[0].([]any)
		second := pairings[1].([]any)
		if first[0] != "alice" || first[1] != "bob" || second[0] != "carol" || second[1] != "dave" {
			t.Errorf("Pairings = %v, want [[alice bob] [carol dave]]", pairings)
		}
	}

	// The queue reset: a new joiner starts a fresh bracket of one.
	eve := subscribe(groups, "eve")
	tournament.Join(context.Background(), "eve")
	joins := eve.eventsOfType(t, hub.EventTournamentPlayerJoined)
	if len(joins) != 1 {
		t.Fatalf("eve received %d player_joined events, want 1", len(joins))
	}
	if current := joins[0]["current_players"].([]any); len(current) != 1 {
		t.Errorf("Fresh queue holds %d players, want 1", len(current))
	}
}

func TestConcurrentJoinsProduceExactlyOneBracket(t *testing.T) {
	tournament, groups := newTournament(nil)
	usernames := []string{"alice", "bob", "carol", "dave"}
	conns := make(map[string]*fakeConn, len(usernames))
	for _, username := range usernames {
		conns[username] = subscribe(groups, username)
	}

	var wg sync.WaitGroup
	for _, username := range usernames {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			tournament.Join(context.Background(), name)
		}(username)
	}
	wg.Wait()

	for _, username := range usernames {
		ready := conns[username].eventsOfType(t, hub.EventTournamentReady)
		if len(ready) != 1 {
			t.Fatalf("%s received %d tournament_ready events, want exactly 1", username, len(ready))
		}
		if players := ready[0]["players"].([]any); len(players) != 4 {
			t.Errorf("%s saw a bracket of %d players, want 4", username, len(players))
		}
	}
}

func TestJoinSurvivesDirectoryFailure(t *testing.T) {
	groups := hub.NewGroupRegistry()
	tournament := hub.NewTournamentCoordinator(stubDirectory{err: errors.New("directory down")}, groups)
	alice := subscribe(groups, "alice")

	tournament.Join(context.Background(), "alice")

	joins := alice.eventsOfType(t, hub.EventTournamentPlayerJoined)
	if len(joins) != 1 {
		t.Fatalf("Received %d player_joined events, want 1", len(joins))
	}
	player := joins[0]["player"].(map[string]any)
	if player["username"] != "alice" {
		t.Errorf("player.username = %v, want alice", player["username"])
	}
	if _, present := player["avatar"]; present {
		t.Errorf("player.avatar = %v, want omitted", player["avatar"])
	}
}

func TestReportWinnerIsIdempotent(t *testing.T) {
	tournament, groups := newTournament(nil)
	alice := subscribe(groups, "alice")

	if err := tournament.ReportWinner("alice"); err != nil {
		t.Fatalf("ReportWinner(alice) returned error: %v", err)
	}
	if err := tournament.ReportWinner("alice"); err != nil {
		t.Fatalf("Duplicate ReportWinner(alice) returned error: %v", err)
	}

	if got := len(alice.eventsOfType(t, hub.EventTournamentFinal)); got != 0 {
		t.Errorf("Final fired after a single distinct winner, got %d events", got)
	}
}

func TestSecondWinnerTriggersFinal(t *testing.T) {
	tournament, groups := newTournament(nil)
	alice := subscribe(groups, "alice")
	bob := subscribe(groups, "bob")

	if err := tournament.ReportWinner("alice"); err != nil {
		t.Fatalf("ReportWinner(alice) returned error: %v", err)
	}
	if err := tournament.ReportWinner("bob"); err != nil {
		t.Fatalf("ReportWinner(bob) returned error: %v", err)
	}

	for name, conn := range map[string]*fakeConn{"alice": alice, "bob": bob} {
		finals := conn.eventsOfType(t, hub.EventTournamentFinal)
		if len(finals) != 1 {
			t.Fatalf("%s received %d tournament_final events, want 1", name, len(finals))
		}
		if got := finals[0]["room_id"]; got != "tournament_final_alice_bob" {
			t.Errorf("room_id = %v, want tournament_final_alice_bob", got)
		}
		finalists := finals[0]["finalists"].([]any)
		if len(finalists) != 2 || finalists[0] != "alice" || finalists[1] != "bob" {
			t.Errorf("finalists = %v, want [alice bob]", finalists)
		}
	}
}

func TestFinalistsResetAfterFinal(t *testing.T) {
	tournament, groups := newTournament(nil)
	carol := subscribe(groups, "carol")
	dave := subscribe(groups, "dave")

	if err := tournament.ReportWinner("alice"); err != nil {
		t.Fatalf("ReportWinner(alice) returned error: %v", err)
	}
	if err := tournament.ReportWinner("bob"); err != nil {
		t.Fatalf("ReportWinner(bob) returned error: %v", err)
	}

	// A fresh cycle starts empty: one winner is not enough for a final.
	if err := tournament.ReportWinner("carol"); err != nil {
		t.Fatalf("ReportWinner(carol) returned error: %v", err)
	}
	if got := len(carol.eventsOfType(t, hub.EventTournamentFinal)); got != 0 {
		t.Fatalf("Final fired with one finalist in the new cycle, got %d events", got)
	}

	if err := tournament.ReportWinner("dave"); err != nil {
		t.Fatalf("ReportWinner(dave) returned error: %v", err)
	}
	finals := dave.eventsOfType(t, hub.EventTournamentFinal)
	if len(finals) != 1 {
		t.Fatalf("dave received %d tournament_final events, want 1", len(finals))
	}
	if got := finals[0]["room_id"]; got != "tournament_final_carol_dave" {
		t.Errorf("room_id = %v, want tournament_final_carol_dave", got)
	}
}

func TestReportWinnerRejectsEmptyUsername(t *testing.T) {
	tournament, _ := newTournament(nil)

	err := tournament.ReportWinner("")
	if err == nil {
		t.Fatal("ReportWinner(\"\") returned nil, want generic failure")
	}
	if err.Error() != "Tournament winner process failed" {
		t.Errorf("Error message = %q, want the generic failure notice", err.Error())
	}
}
