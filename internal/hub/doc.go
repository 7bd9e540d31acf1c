// Package hub implements the in-memory coordination core of the arena
// messaging service: named broadcast groups, online presence tracking,
// per-user notification routing, and the tournament and random-match
// queues.
//
// All state owned by this package is process-wide and shared by every
// connection handler. Each coordinator serializes its own mutations so
// that queue-length checks and the appends they guard form a single
// atomic step, and group fanout never holds the membership lock while
// delivering to individual connections.
package hub
