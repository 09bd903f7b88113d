// Package driving defines the inbound ports of the hexagonal architecture.
//
// These interfaces are implemented by core services and consumed by
// driving adapters (CLI, watcher).
package driving
