package routehandlers

import "time"

// startOfToday zeroes the clock fields of now, yielding local midnight of
// the current day. Scan-log comparisons against it are inclusive.
func startOfToday(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
