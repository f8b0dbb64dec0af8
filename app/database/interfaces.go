package database

type PostRepository interface {
	UpsertPost(post Post) error

	GetVisiblePosts(limit int) ([]Post, error)
	GetPostCount() (int, error)
	GetPostStats() (movies, series int, err error)
}
