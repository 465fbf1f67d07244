package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string from configuration, falling
// back to the given default when the value is malformed.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("value", durationStr).Dur("default", defaultDuration).Msg("Could not parse duration, using default")
		return defaultDuration
	}
	return d
}
