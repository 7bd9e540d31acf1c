package hub

import "sync"

// OnlineGroup is the shared broadcast group every notification connection
// joins; presence snapshots are fanned out to it.
const OnlineGroup = "online"

// PresenceTracker owns the set of currently-online usernames. Every
// mutation broadcasts a full snapshot to the online group so clients
// never need to reconcile deltas.
type PresenceTracker struct {
	mu     sync.Mutex
	online map[string]struct{}
	groups *GroupRegistry
}

// NewPresenceTracker returns a tracker broadcasting through groups.
func NewPresenceTracker(groups *GroupRegistry) *PresenceTracker {
	return &PresenceTracker{
		online: make(map[string]struct{}),
		groups: groups,
	}
}

// Connect marks username as online and broadcasts the updated snapshot.
func (p *PresenceTracker) Connect(username string) {
	p.mu.Lock()
	p.online[username] = struct{}{}
	snapshot := p.snapshotLocked()
	p.mu.Unlock()

	p.broadcast(snapshot)
}

// Disconnect marks username as offline and broadcasts the updated
// snapshot. Removing a username that is not present is a no-op apart
// from the broadcast, which keeps reconnect races harmless.
func (p *PresenceTracker) Disconnect(username string) {
	p.mu.Lock()
	delete(p.online, username)
	snapshot := p.snapshotLocked()
	p.mu.Unlock()

	p.broadcast(snapshot)
}

// OnlineUsers returns the current snapshot. The slice is never nil and
// carries no ordering guarantee.
func (p *PresenceTracker) OnlineUsers() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *PresenceTracker) snapshotLocked() []string {
	users := make([]string, 0, len(p.online))
	for username := range p.online {
		users = append(users, username)
	}
	return users
}

func (p *PresenceTracker) broadcast(snapshot []string) {
	p.groups.Send(OnlineGroup, StatusUpdate{
		Type:        EventUserStatusUpdate,
		OnlineUsers: snapshot,
	})
}
