// Package docstore is the document store for user content: comments
// and bookmarks. It is a plain CRUD repository with uniqueness checks;
// its only coupling to the caching core is invalidation, because a
// comment mutation must not leave a stale cached comment list behind.
package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/newsaura/news-gateway/pkg/cache"
)

// Errors returned by repository operations.
var (
	// ErrNotFound indicates the referenced document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicate indicates a uniqueness violation (an article
	// bookmarked twice by the same user).
	ErrDuplicate = errors.New("already bookmarked")
)

// CommentsTTL is how long a cached comment list stays valid. Short,
// because mutations from other replicas bypass this process's
// invalidation.
const CommentsTTL = 5 * time.Minute

// Comment is one comment on an article.
type Comment struct {
	ID        int64     `json:"id"`
	ArticleID string    `json:"article_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Bookmark is one saved article for a user.
type Bookmark struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	ArticleID string    `json:"article_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	article_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_comments_article ON comments(article_id, created_at);

CREATE TABLE IF NOT EXISTS bookmarks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	article_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (user_id, article_id)
);
`

// Store is the SQLite-backed document repository.
type Store struct {
	db          *sql.DB
	cache       *cache.Cache
	commentsTTL time.Duration
	logger      zerolog.Logger
}

// Open opens (creating if needed) the document store at path.
func Open(path string, c *cache.Cache, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open docstore: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate docstore: %w", err)
	}

	return &Store{db: db, cache: c, commentsTTL: CommentsTTL, logger: logger}, nil
}

// SetCommentsTTL overrides the comment list cache TTL.
func (s *Store) SetCommentsTTL(ttl time.Duration) {
	if ttl > 0 {
		s.commentsTTL = ttl
	}
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddComment stores a comment and invalidates the article's cached
// comment list so the next read sees it.
func (s *Store) AddComment(ctx context.Context, comment Comment) (int64, error) {
	if comment.ArticleID == "" || comment.Text == "" {
		return 0, fmt.Errorf("article_id and text are required")
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (article_id, user_id, body, created_at) VALUES (?, ?, ?, ?)`,
		comment.ArticleID, comment.UserID, comment.Text, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("comment id: %w", err)
	}

	s.cache.Invalidate(ctx, cache.CommentsKey(comment.ArticleID))
	s.logger.Debug().Int64("comment_id", id).Str("article_id", comment.ArticleID).Msg("Comment added")
	return id, nil
}

// CommentsByArticle lists an article's comments, newest first. The
// list is cached for the configured comments TTL; mutations
// invalidate it.
func (s *Store) CommentsByArticle(ctx context.Context, articleID string) ([]Comment, error) {
	key := cache.CommentsKey(articleID)

	var cached []Comment
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, article_id, user_id, body, created_at FROM comments
		 WHERE article_id = ? ORDER BY created_at DESC, id DESC`,
		articleID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ArticleID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	s.cache.SetWithTTL(ctx, key, comments, s.commentsTTL)
	return comments, nil
}

// DeleteComment removes a comment and invalidates its article's cached
// list. Returns ErrNotFound for an unknown id.
func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	var articleID string
	err := s.db.QueryRowContext(ctx,
		`SELECT article_id FROM comments WHERE id = ?`, id).Scan(&articleID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup comment: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.cache.Invalidate(ctx, cache.CommentsKey(articleID))
	s.logger.Debug().Int64("comment_id", id).Str("article_id", articleID).Msg("Comment deleted")
	return nil
}

// AddBookmark saves an article for a user. Each user can bookmark an
// article once; a second attempt returns ErrDuplicate.
func (s *Store) AddBookmark(ctx context.Context, bookmark Bookmark) (int64, error) {
	if bookmark.UserID == "" || bookmark.ArticleID == "" {
		return 0, fmt.Errorf("user_id and article_id are required")
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM bookmarks WHERE user_id = ? AND article_id = ?`,
		bookmark.UserID, bookmark.ArticleID).Scan(&exists)
	if err == nil {
		return 0, ErrDuplicate
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("check bookmark: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO bookmarks (user_id, article_id, title, url, created_at) VALUES (?, ?, ?, ?, ?)`,
		bookmark.UserID, bookmark.ArticleID, bookmark.Title, bookmark.URL, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("insert bookmark: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("bookmark id: %w", err)
	}
	return id, nil
}

// BookmarksByUser lists a user's bookmarks, newest first.
func (s *Store) BookmarksByUser(ctx context.Context, userID string) ([]Bookmark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, article_id, title, url, created_at FROM bookmarks
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []Bookmark{}
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.ArticleID, &b.Title, &b.URL, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}
	return bookmarks, nil
}

// DeleteBookmark removes a bookmark by id. Returns ErrNotFound for an
// unknown id.
func (s *Store) DeleteBookmark(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
