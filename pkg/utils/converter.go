package utils

import "time"

// ToDurationMs converts a whole number of milliseconds to a time.Duration.
// Non-positive values yield zero, which callers treat as "no timeout".
func ToDurationMs(ms int) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
