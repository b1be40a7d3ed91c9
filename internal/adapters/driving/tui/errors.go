package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingSituationService is returned when the situation service is not provided.
var ErrMissingSituationService = errors.New("tui: situation service is required")

// ErrMissingSurfaceCoordinator is returned when the surface coordinator is not provided.
var ErrMissingSurfaceCoordinator = errors.New("tui: surface coordinator is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
