package watch

import "time"

// DefaultInterval is the polling period used when none is configured.
const DefaultInterval = 2 * time.Second

// Config holds configuration for change subscriptions.
type Config struct {
	// Interval is the time between two snapshot fetches.
	Interval time.Duration `mapstructure:"interval" default:"2s"`
}
