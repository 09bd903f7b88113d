// Package driven defines the outbound ports of the hexagonal architecture.
//
// These interfaces are implemented by adapters (storage, filesystem,
// export, config) and consumed by core services. Core services depend on
// these abstractions, never on concrete adapters.
package driven
