package hub_test

import (
	"sync"
	"testing"

	"github.com/arenahub/arenahub/internal/hub"
)

type ping struct {
	Type string `json:"type"`
	Seq  int    `json:"seq"`
}

func TestSendReachesEveryMember(t *testing.T) {
	groups := hub.NewGroupRegistry()
	first := &fakeConn{}
	second := &fakeConn{}
	groups.Join("room", first)
	groups.Join("room", second)

	groups.Send("room", ping{Type: "ping", Seq: 1})

	for i, conn := range []*fakeConn{first, second} {
		if got := len(conn.events(t)); got != 1 {
			t.Errorf("Member %d received %d events, want 1", i, got)
		}
	}
}

func TestJoinIsIdempotent(t *testing.T) {
	groups := hub.NewGroupRegistry()
	conn := &fakeConn{}
	groups.Join("room", conn)
	groups.Join("room", conn)

	groups.Send("room", ping{Type: "ping"})

	if got := len(conn.events(t)); got != 1 {
		t.Errorf("Received %d deliveries after duplicate join, want 1", got)
	}
}

func TestLeaveStopsDelivery(t *testing.T) {
	groups := hub.NewGroupRegistry()
	leaver := &fakeConn{}
	stayer := &fakeConn{}
	groups.Join("room", leaver)
	groups.Join("room", stayer)

	groups.Leave("room", leaver)
	groups.Send("room", ping{Type: "ping"})

	if got := len(leaver.events(t)); got != 0 {
		t.Errorf("Departed member received %d events, want 0", got)
	}
	if got := len(stayer.events(t)); got != 1 {
		t.Errorf("Remaining member received %d events, want 1", got)
	}
}

func TestLeaveAbsentMemberIsNoOp(t *testing.T) {
	groups := hub.NewGroupRegistry()
	groups.Leave("room", &fakeConn{})
	groups.Leave("missing", &fakeConn{})
}

func TestSendToMissingGroupIsSilent(t *testing.T) {
	groups := hub.NewGroupRegistry()
	groups.Send("nowhere", ping{Type: "ping"})
}

func TestSendSkipsUnreachableMember(t *testing.T) {
	groups := hub.NewGroupRegistry()
	gone := &fakeConn{reject: true}
	alive := &fakeConn{}
	groups.Join("room", gone)
	groups.Join("room", alive)

	groups.Send("room", ping{Type: "ping"})

	if got := len(alive.events(t)); got != 1 {
		t.Errorf("Healthy member received %d events, want 1", got)
	}
}

// A member leaving while fanouts are in flight must neither crash the
// registry nor block the remaining deliveries.
func TestConcurrentLeaveDuringFanout(t *testing.T) {
	groups := hub.NewGroupRegistry()
	conns := make([]*fakeConn, 20)
	for i := range conns {
		conns[i] = &fakeConn{}
		groups.Join("room", conns[i])
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			groups.Send("room", ping{Type: "ping", Seq: i})
		}
	}()
	go func() {
		defer wg.Done()
		for _, conn := range conns[:10] {
			groups.Leave("room", conn)
		}
	}()
	wg.Wait()

	for i, conn := range conns[10:] {
		if got := len(conn.events(t)); got != 50 {
			t.Errorf("Persistent member %d received %d events, want 50", i, got)
		}
	}
}

func TestGroupsAreIndependent(t *testing.T) {
	groups := hub.NewGroupRegistry()
	chatter := &fakeConn{}
	bystander := &fakeConn{}
	groups.Join("chat_1", chatter)
	groups.Join("chat_2", bystander)

	groups.Send("chat_1", ping{Type: "ping"})

	if got := len(chatter.events(t)); got != 1 {
		t.Errorf("chat_1 member received %d events, want 1", got)
	}
	if got := len(bystander.events(t)); got != 0 {
		t.Errorf("chat_2 member received %d events, want 0", got)
	}
}
