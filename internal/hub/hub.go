package hub

// Hub bundles the process-wide coordination state. One instance is
// created at startup and handed by reference to every connection
// handler, making lifecycle and ownership explicit instead of
// materializing shared state on first use.
type Hub struct {
	Groups        *GroupRegistry
	Presence      *PresenceTracker
	Notifications *NotificationRouter
	Tournament    *TournamentCoordinator
	RandomMatch   *RandomMatchCoordinator
}

// New constructs a Hub with empty groups, presence, and queues. The
// directory is consulted by the matchmaking coordinators when players
// enter a queue.
func New(directory UserDirectory) *Hub {
	groups := NewGroupRegistry()
	return &Hub{
		Groups:        groups,
		Presence:      NewPresenceTracker(groups),
		Notifications: NewNotificationRouter(groups),
		Tournament:    NewTournamentCoordinator(directory, groups),
		RandomMatch:   NewRandomMatchCoordinator(directory, groups),
	}
}
