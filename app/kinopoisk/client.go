package kinopoisk

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.kinopoisk.dev"

	// Search and detail legs are bounded independently so one slow lookup
	// cannot stall a whole ingestion batch.
	requestTimeout = 5 * time.Second

	maxCandidates     = 3
	maxGenres         = 3
	maxDescriptionLen = 500
)

// Enrichment is the best-effort metadata looked up for a movie title.
// Absence of a match is expressed as a nil *Enrichment, never an error.
type Enrichment struct {
	KinopoiskID  int64
	Rating       *float64
	Genre        string
	Director     string
	Description  string
	PosterURL    string
	KinopoiskURL string
	ReleaseYear  *int
}

type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

// IsConfigured reports whether an API key is present. Enrichment is
// opt-in: without a key every lookup is an immediate miss.
func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

type searchResponse struct {
	Docs []searchDoc `json:"docs"`
}

type searchDoc struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Year int    `json:"year"`
}

type movieResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Year        int    `json:"year"`
	Description string `json:"description"`
	Rating      struct {
		KP float64 `json:"kp"`
	} `json:"rating"`
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Persons []struct {
		Name         string `json:"name"`
		EnName       string `json:"enName"`
		EnProfession string `json:"enProfession"`
	} `json:"persons"`
	Poster struct {
		URL string `json:"url"`
	} `json:"poster"`
}

// Lookup finds a confident match for the given release title and returns
// its detail metadata. A candidate is accepted only when its year is
// within 1 of the hint, so year-less titles never enrich. Any transport,
// timeout or decode failure on either leg is logged and reported as a
// miss; this path must never fail the caller.
func (c *Client) Lookup(ctx context.Context, title string, yearHint *int) *Enrichment {
	if !c.IsConfigured() {
		return nil
	}

	// The year rule below can never accept a candidate without a hint, so
	// skip the search round-trip entirely.
	if yearHint == nil {
		return nil
	}

	query := CleanTitle(title)
	if query == "" {
		return nil
	}

	candidate := c.search(ctx, query, *yearHint)
	if candidate == nil {
		return nil
	}

	detail := c.fetchMovie(ctx, candidate.ID)
	if detail == nil {
		return nil
	}

	return buildEnrichment(detail)
}

func (c *Client) search(ctx context.Context, query string, yearHint int) *searchDoc {
	endpoint := fmt.Sprintf("%s/v1.4/movie/search?page=1&limit=%d&query=%s",
		c.baseURL, maxCandidates, url.QueryEscape(query))

	var res searchResponse
	if err := c.doGET(ctx, endpoint, &res); err != nil {
		slog.Warn("Kinopoisk search failed", "query", query, "error", err)
		return nil
	}

	docs := res.Docs
	if len(docs) > maxCandidates {
		docs = docs[:maxCandidates]
	}

	for i := range docs {
		if docs[i].Year == 0 {
			continue
		}
		diff := docs[i].Year - yearHint
		if diff >= -1 && diff <= 1 {
			return &docs[i]
		}
	}

	slog.Debug("Kinopoisk search yielded no year match", "query", query, "year", yearHint, "candidates", len(docs))
	return nil
}

func (c *Client) fetchMovie(ctx context.Context, id int64) *movieResponse {
	endpoint := fmt.Sprintf("%s/v1.4/movie/%d", c.baseURL, id)

	var res movieResponse
	if err := c.doGET(ctx, endpoint, &res); err != nil {
		slog.Warn("Kinopoisk detail fetch failed", "kinopoisk_id", id, "error", err)
		return nil
	}

	return &res
}

func (c *Client) doGET(ctx context.Context, endpoint string, v any) error {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("kinopoisk request failed: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

func buildEnrichment(detail *movieResponse) *Enrichment {
	enrichment := &Enrichment{
		KinopoiskID:  detail.ID,
		Description:  truncate(detail.Description, maxDescriptionLen),
		PosterURL:    detail.Poster.URL,
		KinopoiskURL: fmt.Sprintf("https://www.kinopoisk.ru/film/%d/", detail.ID),
	}

	if detail.Rating.KP > 0 {
		rating := detail.Rating.KP
		enrichment.Rating = &rating
	}

	if detail.Year > 0 {
		year := detail.Year
		enrichment.ReleaseYear = &year
	}

	var genres []string
	for _, g := range detail.Genres {
		if g.Name == "" {
			continue
		}
		genres = append(genres, g.Name)
		if len(genres) == maxGenres {
			break
		}
	}
	enrichment.Genre = strings.Join(genres, ", ")

	for _, p := range detail.Persons {
		if !strings.EqualFold(p.EnProfession, "director") {
			continue
		}
		if p.Name != "" {
			enrichment.Director = p.Name
		} else {
			enrichment.Director = p.EnName
		}
		break
	}

	return enrichment
}

var bracketedRe = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)

// CleanTitle strips parenthesized and bracketed release tags and keeps
// only the part before the first "/" separator; listing titles are
// commonly "Local Title / Original Title".
func CleanTitle(title string) string {
	cleaned := bracketedRe.ReplaceAllString(title, "")
	if idx := strings.Index(cleaned, "/"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	return strings.TrimSpace(cleaned)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
