package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/pr-poehali-dev/rutor-parser-site/app/database"
	"github.com/pr-poehali-dev/rutor-parser-site/app/kinopoisk"
	"github.com/pr-poehali-dev/rutor-parser-site/app/listing"
)

// Stats summarizes one ingestion run. ParsedTotal counts rows that passed
// the recency filter, before classification; Stored counts successful
// upserts. A run with Stored == 0 is still a successful run.
type Stats struct {
	ParsedTotal int
	Stored      int
	Failed      int
}

type Enricher interface {
	IsConfigured() bool
	Lookup(ctx context.Context, title string, yearHint *int) *kinopoisk.Enrichment
}

var _ Enricher = (*kinopoisk.Client)(nil)

// Ingester drives the full pipeline: fetch listing pages, extract rows,
// filter by recency, classify, enrich movies and upsert. Pages are
// processed strictly in sequence; a failing page or post is logged and
// skipped, never aborting the batch.
type Ingester struct {
	source     *SourceConfig
	parser     *listing.Parser
	enricher   Enricher
	postRepo   database.PostRepository
	httpClient *http.Client
	userAgent  string
}

func NewIngester(source *SourceConfig, parser *listing.Parser, enricher Enricher,
	postRepo database.PostRepository, httpClient *http.Client, userAgent string) *Ingester {
	return &Ingester{
		source:     source,
		parser:     parser,
		enricher:   enricher,
		postRepo:   postRepo,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

type candidate struct {
	row         listing.Row
	publishedAt time.Time
}

// Run executes one ingestion batch and reports totals. It returns early
// only on context cancellation; individual failures are counted, not
// propagated.
func (in *Ingester) Run(ctx context.Context) Stats {
	var stats Stats

	started := time.Now()
	cutoff := started.Add(-time.Duration(in.source.LookbackDays) * 24 * time.Hour)

	var candidates []candidate

	for page := 0; page < in.source.Pages; page++ {
		select {
		case <-ctx.Done():
			slog.Warn("Ingestion cancelled", "page", page)
			return stats
		default:
		}

		data, err := in.fetchPage(ctx, page)
		if err != nil {
			slog.Warn("Listing page fetch failed, skipping", "page", page, "error", err)
			continue
		}

		for _, row := range in.parser.Run(data) {
			// Rows without a date token cannot be placed inside the
			// recency window and are dropped.
			if row.DateToken == "" {
				continue
			}
			publishedAt := listing.ParseListingDate(row.DateToken, time.Now())
			if publishedAt.Before(cutoff) {
				continue
			}
			candidates = append(candidates, candidate{row: row, publishedAt: publishedAt})
		}
	}

	stats.ParsedTotal = len(candidates)

	for _, cand := range candidates {
		if cand.row.Title == "" || cand.row.ID == "" {
			continue
		}

		category, ok := listing.Categorize(cand.row.Title)
		if !ok {
			continue
		}

		publishedAt := cand.publishedAt
		post := database.Post{
			RutorID:     cand.row.ID,
			Title:       cand.row.Title,
			Category:    category,
			Size:        cand.row.Size,
			Seeds:       cand.row.Seeds,
			Peers:       cand.row.Peers,
			TorrentURL:  cand.row.TorrentURL,
			ReleaseYear: listing.ExtractYear(cand.row.Title),
			PublishedAt: &publishedAt,
		}

		if category == listing.CategoryMovie && in.enricher.IsConfigured() {
			if enr := in.enricher.Lookup(ctx, post.Title, post.ReleaseYear); enr != nil {
				kinopoiskID := enr.KinopoiskID
				post.KinopoiskID = &kinopoiskID
				post.KinopoiskRating = enr.Rating
				post.Genre = enr.Genre
				post.Director = enr.Director
				post.Description = enr.Description
				post.PosterURL = enr.PosterURL
				post.KinopoiskURL = enr.KinopoiskURL
				if enr.ReleaseYear != nil {
					post.ReleaseYear = enr.ReleaseYear
				}
			}
		}

		if err := in.postRepo.UpsertPost(post); err != nil {
			slog.Warn("Failed to store post", "rutor_id", post.RutorID, "error", err)
			stats.Failed++
			continue
		}
		stats.Stored++
	}

	slog.Info("Ingestion completed",
		"duration", time.Since(started).Round(time.Millisecond),
		"parsed_total", stats.ParsedTotal,
		"stored", stats.Stored,
		"failed", stats.Failed)

	return stats
}

func (in *Ingester) fetchPage(ctx context.Context, page int) ([]byte, error) {
	pageURL := fmt.Sprintf("%s/browse/%d/0/000/0", in.source.BaseURL, page)

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(in.source.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", in.userAgent)

	resp, err := in.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	// Decode to UTF-8 based on the response charset; older mirrors still
	// serve windows-1251.
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
