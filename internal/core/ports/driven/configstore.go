package driven

// ConfigStore provides persistent key-value configuration access.
// Keys use dot notation (e.g. "search.top_match_threshold"). Heuristic
// constants (group caps, thresholds, filter minimums) are read through it so
// they stay configuration parameters rather than buried magic numbers.
type ConfigStore interface {
	// Get retrieves a raw value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" when absent.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 when absent.
	GetInt(key string) int

	// GetFloat retrieves a float value, or 0 when absent.
	GetFloat(key string) float64

	// GetBool retrieves a boolean value, or false when absent.
	GetBool(key string) bool

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Load re-reads configuration from the backing store.
	Load() error
}
