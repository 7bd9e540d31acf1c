package hub

import "time"

// NotificationGroup returns the private broadcast group carrying one
// user's notification connections.
func NotificationGroup(username string) string {
	return "notifications_" + username
}

// NotificationRouter delivers typed events to a single user's private
// notification group, stamping each with a server-generated timestamp.
type NotificationRouter struct {
	groups *GroupRegistry
	now    func() time.Time
}

// NewNotificationRouter returns a router broadcasting through groups.
func NewNotificationRouter(groups *GroupRegistry) *NotificationRouter {
	return &NotificationRouter{
		groups: groups,
		now:    time.Now,
	}
}

// Route addresses a notice to the named user. The kind is re-emitted
// verbatim as the event type, so besides the recognized notification,
// invite, and invite_accepted kinds this doubles as the catch-all "send
// an arbitrary typed message to a named user" path. Routing to a user
// with no connected notification sessions is a silent no-op.
func (n *NotificationRouter) Route(kind, target, title, message string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}

	n.groups.Send(NotificationGroup(target), Notice{
		Type:      kind,
		Title:     title,
		Message:   message,
		Timestamp: n.now().Format(time.RFC3339),
		Data:      data,
	})
}
