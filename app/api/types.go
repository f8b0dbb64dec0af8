package api

import (
	"context"

	"github.com/pr-poehali-dev/rutor-parser-site/app/database"
	"github.com/pr-poehali-dev/rutor-parser-site/app/ingest"
)

type IngesterInterface interface {
	Run(ctx context.Context) ingest.Stats
}

var _ IngesterInterface = (*ingest.Ingester)(nil)

type Handler struct {
	postRepo database.PostRepository
	ingester IngesterInterface
}

// PostResponse mirrors the JSON shape consumed by the frontend. Optional
// fields serialize as null, rating as a plain decimal, timestamps as
// RFC3339 strings.
type PostResponse struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	Size            string   `json:"size"`
	Seeds           int      `json:"seeds"`
	Peers           int      `json:"peers"`
	KinopoiskRating *float64 `json:"kinopoisk_rating"`
	ReleaseYear     *int     `json:"release_year"`
	Genre           *string  `json:"genre"`
	Director        *string  `json:"director"`
	Description     *string  `json:"description"`
	PosterURL       *string  `json:"poster_url"`
	PublishedAt     *string  `json:"published_at"`
	TorrentURL      string   `json:"torrent_url"`
	KinopoiskURL    *string  `json:"kinopoisk_url"`
}
