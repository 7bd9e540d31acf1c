// Package server implements the WebSocket transport for the arena hub:
// connection upgrade and identity binding, the chat and notification
// session façades, per-connection read/write pumps, origin enforcement,
// and HTTP server lifecycle.
//
// The package owns no coordination state of its own; all shared state
// lives in the injected hub.Hub instance.
package server
