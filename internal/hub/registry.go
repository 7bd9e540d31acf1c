package hub

import (
	"encoding/json"
	"log"
	"sync"
)

// Conn is the write side of one connected client. Implementations must be
// safe for concurrent use and must never block: Deliver reports whether
// the payload was accepted for delivery. A false return marks the member
// as gone for the current fanout only; membership bookkeeping stays with
// the session that joined the group.
type Conn interface {
	Deliver(payload []byte) bool
}

// GroupRegistry maps group names to their current member connections.
// Groups are created on first join and pruned when the last member
// leaves; sending to a missing or empty group is a silent no-op.
type GroupRegistry struct {
	mu     sync.RWMutex
	groups map[string]map[Conn]struct{}
}

// NewGroupRegistry returns an empty registry ready for use.
func NewGroupRegistry() *GroupRegistry {
	return &GroupRegistry{
		groups: make(map[string]map[Conn]struct{}),
	}
}

// Join adds conn to the named group, creating the group on first join.
// Joining a group the connection already belongs to has no effect.
func (r *GroupRegistry) Join(group string, conn Conn) {
	if conn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.groups[group]
	if !ok {
		members = make(map[Conn]struct{})
		r.groups[group] = members
	}
	members[conn] = struct{}{}
}

// Leave removes conn from the named group. It is a no-op when either the
// group or the membership does not exist.
func (r *GroupRegistry) Leave(group string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.groups[group]
	if !ok {
		return
	}
	delete(members, conn)
	if len(members) == 0 {
		delete(r.groups, group)
	}
}

// Send marshals event once and delivers it to every current member of the
// named group. The member list is snapshotted under the read lock and
// delivery happens outside it, so a slow or disconnecting member never
// stalls membership changes. A member that refuses delivery is skipped;
// the remaining members still receive the event.
func (r *GroupRegistry) Send(group string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("registry: dropping undeliverable event for group %q: %v", group, err)
		return
	}

	for _, conn := range r.snapshot(group) {
		if !conn.Deliver(payload) {
			log.Printf("registry: skipped unreachable member of group %q", group)
		}
	}
}

func (r *GroupRegistry) snapshot(group string) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.groups[group]
	if !ok {
		return nil
	}

	conns := make([]Conn, 0, len(members))
	for conn := range members {
		conns = append(conns, conn)
	}
	return conns
}
