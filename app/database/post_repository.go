package database

import (
	"database/sql"
	"fmt"

	"github.com/pr-poehali-dev/rutor-parser-site/app/listing"
)

type postRepository struct {
	db *DB
}

func NewPostRepository(db *DB) PostRepository {
	return &postRepository{db: db}
}

// UpsertPost inserts a post keyed by its rutor_id. On conflict only the
// liveness fields are refreshed; title, category and enrichment data are
// immutable after the first insert.
func (r *postRepository) UpsertPost(post Post) error {
	_, err := r.db.Exec(`
		INSERT INTO posts (
			rutor_id, title, category, size, seeds, peers, torrent_url,
			kinopoisk_id, kinopoisk_rating, release_year, genre, director,
			description, poster_url, kinopoisk_url, published_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (rutor_id) DO UPDATE SET
			seeds = EXCLUDED.seeds,
			peers = EXCLUDED.peers,
			updated_at = NOW()
	`, post.RutorID, post.Title, nullString(post.Category), nullString(post.Size),
		post.Seeds, post.Peers, nullString(post.TorrentURL),
		post.KinopoiskID, post.KinopoiskRating, post.ReleaseYear,
		nullString(post.Genre), nullString(post.Director), nullString(post.Description),
		nullString(post.PosterURL), nullString(post.KinopoiskURL), post.PublishedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert post: %w", err)
	}

	return nil
}

// GetVisiblePosts returns the newest posts in the two accepted categories
// for display, freshest publish date first.
func (r *postRepository) GetVisiblePosts(limit int) ([]Post, error) {
	rows, err := r.db.Query(`
		SELECT id, rutor_id, title, COALESCE(category, ''), COALESCE(size, ''),
		       seeds, peers, COALESCE(torrent_url, ''),
		       kinopoisk_id, kinopoisk_rating, release_year,
		       COALESCE(genre, ''), COALESCE(director, ''), COALESCE(description, ''),
		       COALESCE(poster_url, ''), COALESCE(kinopoisk_url, ''),
		       published_at, created_at, updated_at
		FROM posts
		WHERE category IN ($1, $2)
		ORDER BY published_at DESC NULLS LAST, created_at DESC
		LIMIT $3
	`, listing.CategoryMovie, listing.CategorySeries, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get visible posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

// GetPostCount returns the total number of stored posts
func (r *postRepository) GetPostCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get post count: %w", err)
	}
	return count, nil
}

// GetPostStats returns per-category counts for the two accepted categories
func (r *postRepository) GetPostStats() (movies, series int, err error) {
	err = r.db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN category = $1 THEN 1 ELSE 0 END), 0) AS movies,
			COALESCE(SUM(CASE WHEN category = $2 THEN 1 ELSE 0 END), 0) AS series
		FROM posts
	`, listing.CategoryMovie, listing.CategorySeries).Scan(&movies, &series)

	if err != nil {
		return 0, 0, fmt.Errorf("failed to get post stats: %w", err)
	}

	return movies, series, nil
}

func scanPost(rows *sql.Rows) (Post, error) {
	var post Post
	var kinopoiskID sql.NullInt64
	var rating sql.NullFloat64
	var releaseYear sql.NullInt64
	var publishedAt sql.NullTime

	err := rows.Scan(
		&post.ID, &post.RutorID, &post.Title, &post.Category, &post.Size,
		&post.Seeds, &post.Peers, &post.TorrentURL,
		&kinopoiskID, &rating, &releaseYear,
		&post.Genre, &post.Director, &post.Description,
		&post.PosterURL, &post.KinopoiskURL,
		&publishedAt, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return Post{}, err
	}

	if kinopoiskID.Valid {
		post.KinopoiskID = &kinopoiskID.Int64
	}
	if rating.Valid {
		post.KinopoiskRating = &rating.Float64
	}
	if releaseYear.Valid {
		year := int(releaseYear.Int64)
		post.ReleaseYear = &year
	}
	if publishedAt.Valid {
		post.PublishedAt = &publishedAt.Time
	}

	return post, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
