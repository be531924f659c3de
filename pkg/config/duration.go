package config

import (
	"fmt"
	"time"
)

// DurationWithin returns an error unless lo <= d <= hi.
func DurationWithin(d, lo, hi time.Duration) error {
	switch {
	case lo > hi:
		return fmt.Errorf("bad bounds [%v, %v]", lo, hi)
	case d < lo || d > hi:
		return fmt.Errorf("duration %v outside [%v, %v]", d, lo, hi)
	}
	return nil
}

// GetEnvDurationWithin is GetEnvDuration bounded to [lo, hi]. Values outside
// the bounds fall back to defaultValue with a warning, like unparseable ones.
func GetEnvDurationWithin(key string, defaultValue, lo, hi time.Duration) time.Duration {
	d := GetEnvDuration(key, defaultValue)
	if err := DurationWithin(d, lo, hi); err != nil {
		warnInvalid(key, d.String(), defaultValue.String(), err)
		return defaultValue
	}
	return d
}
