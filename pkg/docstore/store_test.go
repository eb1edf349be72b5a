package docstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/newsaura/news-gateway/pkg/cache"
	"github.com/newsaura/news-gateway/pkg/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	st := store.NewWithClient(rdb, zerolog.Nop())
	st.Connect(context.Background())
	c := cache.New(st, zerolog.Nop())

	docs, err := Open(filepath.Join(t.TempDir(), "test.db"), c, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { docs.Close() })

	return docs
}

func TestComments_AddAndList(t *testing.T) {
	docs := newTestStore(t)
	ctx := context.Background()

	id1, err := docs.AddComment(ctx, Comment{ArticleID: "article-1", UserID: "u1", Text: "first"})
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	if id1 == 0 {
		t.Error("AddComment() returned zero id")
	}
	if _, err := docs.AddComment(ctx, Comment{ArticleID: "article-1", UserID: "u2", Text: "second"}); err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	comments, err := docs.CommentsByArticle(ctx, "article-1")
	if err != nil {
		t.Fatalf("CommentsByArticle() error = %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	// Newest first.
	if comments[0].Text != "second" {
		t.Errorf("comments[0].Text = %q, want second", comments[0].Text)
	}
}

func TestComments_Validation(t *testing.T) {
	docs := newTestStore(t)

	if _, err := docs.AddComment(context.Background(), Comment{ArticleID: "", Text: "x"}); err == nil {
		t.Error("AddComment() should reject missing article_id")
	}
	if _, err := docs.AddComment(context.Background(), Comment{ArticleID: "a", Text: ""}); err == nil {
		t.Error("AddComment() should reject empty text")
	}
}

func TestComments_MutationInvalidatesCachedList(t *testing.T) {
	docs := newTestStore(t)
	ctx := context.Background()

	if _, err := docs.AddComment(ctx, Comment{ArticleID: "article-2", UserID: "u1", Text: "only"}); err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	// Prime the cached list.
	first, err := docs.CommentsByArticle(ctx, "article-2")
	if err != nil {
		t.Fatalf("CommentsByArticle() error = %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("got %d comments, want 1", len(first))
	}

	// A new comment must be visible immediately, not after TTL.
	if _, err := docs.AddComment(ctx, Comment{ArticleID: "article-2", UserID: "u2", Text: "later"}); err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	after, err := docs.CommentsByArticle(ctx, "article-2")
	if err != nil {
		t.Fatalf("CommentsByArticle() error = %v", err)
	}
	if len(after) != 2 {
		t.Errorf("got %d comments after add, want 2 (stale cache?)", len(after))
	}

	// Same for deletion.
	if err := docs.DeleteComment(ctx, after[0].ID); err != nil {
		t.Fatalf("DeleteComment() error = %v", err)
	}
	final, err := docs.CommentsByArticle(ctx, "article-2")
	if err != nil {
		t.Fatalf("CommentsByArticle() error = %v", err)
	}
	if len(final) != 1 {
		t.Errorf("got %d comments after delete, want 1 (stale cache?)", len(final))
	}
}

func TestComments_DeleteUnknown(t *testing.T) {
	docs := newTestStore(t)

	if err := docs.DeleteComment(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteComment() error = %v, want ErrNotFound", err)
	}
}

func TestComments_EmptyArticle(t *testing.T) {
	docs := newTestStore(t)

	comments, err := docs.CommentsByArticle(context.Background(), "no-such-article")
	if err != nil {
		t.Fatalf("CommentsByArticle() error = %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("got %d comments, want 0", len(comments))
	}
}

func TestBookmarks_AddListDelete(t *testing.T) {
	docs := newTestStore(t)
	ctx := context.Background()

	id, err := docs.AddBookmark(ctx, Bookmark{
		UserID:    "u1",
		ArticleID: "article-1",
		Title:     "Chip maker posts record quarter",
		URL:       "https://news.example.com/chips",
	})
	if err != nil {
		t.Fatalf("AddBookmark() error = %v", err)
	}

	bookmarks, err := docs.BookmarksByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("BookmarksByUser() error = %v", err)
	}
	if len(bookmarks) != 1 || bookmarks[0].Title != "Chip maker posts record quarter" {
		t.Errorf("bookmarks = %+v", bookmarks)
	}

	if err := docs.DeleteBookmark(ctx, id); err != nil {
		t.Fatalf("DeleteBookmark() error = %v", err)
	}

	bookmarks, err = docs.BookmarksByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("BookmarksByUser() error = %v", err)
	}
	if len(bookmarks) != 0 {
		t.Errorf("got %d bookmarks after delete, want 0", len(bookmarks))
	}
}

func TestBookmarks_DuplicateRejected(t *testing.T) {
	docs := newTestStore(t)
	ctx := context.Background()

	if _, err := docs.AddBookmark(ctx, Bookmark{UserID: "u1", ArticleID: "a1"}); err != nil {
		t.Fatalf("AddBookmark() error = %v", err)
	}

	if _, err := docs.AddBookmark(ctx, Bookmark{UserID: "u1", ArticleID: "a1"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate AddBookmark() error = %v, want ErrDuplicate", err)
	}

	// A different user may bookmark the same article.
	if _, err := docs.AddBookmark(ctx, Bookmark{UserID: "u2", ArticleID: "a1"}); err != nil {
		t.Errorf("other-user AddBookmark() error = %v", err)
	}
}

func TestBookmarks_DeleteUnknown(t *testing.T) {
	docs := newTestStore(t)

	if err := docs.DeleteBookmark(context.Background(), 12345); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteBookmark() error = %v, want ErrNotFound", err)
	}
}
