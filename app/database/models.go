package database

import (
	"time"
)

// Post represents a stored listing entry. RutorID is the natural key:
// re-ingesting the same entry refreshes only the liveness fields (seeds,
// peers, updated_at), everything descriptive is set once at insert time.
type Post struct {
	ID              string // Database UUID
	RutorID         string // Site-assigned identifier embedded in the detail link
	Title           string
	Category        string
	Size            string
	Seeds           int
	Peers           int
	TorrentURL      string
	KinopoiskID     *int64
	KinopoiskRating *float64
	ReleaseYear     *int
	Genre           string
	Director        string
	Description     string
	PosterURL       string
	KinopoiskURL    string
	PublishedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
