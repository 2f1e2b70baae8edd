package adapter

import "time"

// formatDuration renders d in Go duration syntax, which Consul accepts.
// Zero durations are omitted.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.String()
}
