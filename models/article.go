package models

import "time"

// Article is a per-request view of a single feed item. Articles are built
// while scanning feeds and returned to the caller; they are never persisted.
type Article struct {
	// ID is "{feedURL}_{guid}". Prefixing with the feed URL keeps IDs
	// unique even when two feeds reuse the same guid namespace.
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
	Content   string    `json:"content"`
}
