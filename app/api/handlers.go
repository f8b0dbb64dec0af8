package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pr-poehali-dev/rutor-parser-site/app/database"
	"github.com/pr-poehali-dev/rutor-parser-site/app/listing"
)

// Read path serves at most this many rows; there is no pagination.
const visiblePostLimit = 200

func NewHandler(postRepo database.PostRepository, ingester IngesterInterface) *Handler {
	return &Handler{
		postRepo: postRepo,
		ingester: ingester,
	}
}

func (h *Handler) GetPosts(c *gin.Context) {
	posts, err := h.postRepo.GetVisiblePosts(visiblePostLimit)
	if err != nil {
		slog.Error("Database error", "operation", "get_posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	out := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, toPostResponse(post))
	}

	c.JSON(http.StatusOK, gin.H{"posts": out})
}

// IngestPosts runs the full ingestion pipeline synchronously. Partial
// failure is a normal outcome: the response always reports totals, and a
// zero count is still a 200.
func (h *Handler) IngestPosts(c *gin.Context) {
	stats := h.ingester.Run(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message":      "Posts parsed and saved",
		"count":        stats.Stored,
		"parsed_total": stats.ParsedTotal,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.postRepo.GetPostCount(); err == nil {
		health["posts"] = count
	}

	if movies, series, err := h.postRepo.GetPostStats(); err == nil {
		health["movies"] = movies
		health["series"] = series
	}

	c.JSON(http.StatusOK, health)
}

func toPostResponse(post database.Post) PostResponse {
	resp := PostResponse{
		ID:              post.ID,
		Title:           post.Title,
		Category:        post.Category,
		Size:            post.Size,
		Seeds:           post.Seeds,
		Peers:           post.Peers,
		KinopoiskRating: post.KinopoiskRating,
		ReleaseYear:     post.ReleaseYear,
		Genre:           nullableString(post.Genre),
		Director:        nullableString(post.Director),
		Description:     nullableString(post.Description),
		PosterURL:       nullableString(post.PosterURL),
		TorrentURL:      post.TorrentURL,
		KinopoiskURL:    nullableString(post.KinopoiskURL),
	}

	// Display fallbacks for legacy rows stored before classification was
	// mandatory on the write path.
	if resp.Category == "" {
		resp.Category = listing.CategoryOther
	}
	if resp.Size == "" {
		resp.Size = "N/A"
	}

	if post.PublishedAt != nil {
		published := post.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &published
	}

	return resp
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
