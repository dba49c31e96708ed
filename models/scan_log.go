package models

import "time"

// ScanLog marks that a daily fetch-and-rank run completed. Rows are only
// ever inserted and counted; there is no update or delete path.
type ScanLog struct {
	ID       string    `json:"id"`
	ScanDate time.Time `json:"scan_date"`
}
