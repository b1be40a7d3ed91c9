// Package services implements the core application services: grouped search
// with latest-wins request discipline, the situation state machine, surface
// routing, filter inference, best-effort ledger emission, and search history.
package services
