package store

import "time"

// Tab is an open browser tab reported by the companion extension.
type Tab struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Favicon   string    `json:"favicon"`
	CreatedAt time.Time `json:"created_at"`
}

// Bookmark is a saved page, grouped into folders.
type Bookmark struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Favicon   string    `json:"favicon"`
	Folder    string    `json:"folder"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntry records visits to a URL. URLs are unique; repeat visits
// bump VisitCount and refresh VisitTime instead of inserting a new row.
type HistoryEntry struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Favicon    string    `json:"favicon"`
	VisitTime  time.Time `json:"visit_time"`
	VisitCount int       `json:"visit_count"`
}
