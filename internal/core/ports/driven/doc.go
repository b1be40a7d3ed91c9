// Package driven defines interfaces for infrastructure the core depends on.
// These are implemented by adapters (platform HTTP client, config store,
// history stores) and injected into services.
package driven
