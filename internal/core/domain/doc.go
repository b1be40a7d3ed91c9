// Package domain contains the core business types for Deckhand.
//
// The domain layer has no dependencies on adapters or external services.
// It defines the canonical search result shape, the entity classification
// table shared by grouping and surface routing, the situation (focus)
// state machine types, inferred filters, and link-resolution error states.
package domain
