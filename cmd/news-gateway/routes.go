package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/newsaura/news-gateway/pkg/docstore"
	"github.com/newsaura/news-gateway/pkg/news"
	"github.com/newsaura/news-gateway/pkg/quota"
	"github.com/newsaura/news-gateway/pkg/resolve"
	"github.com/newsaura/news-gateway/pkg/store"
)

// newRouter wires the HTTP surface. The handlers only adapt between
// HTTP and the resolver/counter/docstore; all policy lives below.
func newRouter(resolver *resolve.Resolver, counter *quota.Counter, docs *docstore.Store, st *store.Client) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/ready", func(c *gin.Context) {
		// Degraded cache is still "ready": the gateway computes
		// everything fresh. Report the state for operators anyway.
		c.JSON(http.StatusOK, gin.H{"cache_enabled": st.Enabled()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/news/:category", getNewsHandler(resolver))
		api.GET("/summary", getSummaryHandler(resolver))
		api.POST("/sentiment", postSentimentHandler(resolver))

		api.GET("/quota", func(c *gin.Context) {
			c.JSON(http.StatusOK, counter.Peek(c.Request.Context()))
		})
		api.POST("/quota/reset", func(c *gin.Context) {
			c.JSON(http.StatusOK, counter.Reset(c.Request.Context()))
		})

		api.POST("/comments", postCommentHandler(docs))
		api.GET("/comments/:article_id", getCommentsHandler(docs))
		api.DELETE("/comments/:id", deleteCommentHandler(docs))

		api.POST("/bookmarks", postBookmarkHandler(docs))
		api.GET("/bookmarks/:user_id", getBookmarksHandler(docs))
		api.DELETE("/bookmarks/:id", deleteBookmarkHandler(docs))
	}

	return router
}

func getNewsHandler(resolver *resolve.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := resolver.ResolveNewsCategory(c.Request.Context(), c.Param("category"))
		if err != nil {
			var quotaErr *resolve.QuotaExceededError
			switch {
			case errors.As(err, &quotaErr):
				c.JSON(http.StatusTooManyRequests, gin.H{"detail": quotaErr.Message})
			case errors.Is(err, resolve.ErrMissingCategory):
				c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			case errors.Is(err, news.ErrNoArticles):
				c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"detail": "failed to fetch news: " + err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func getSummaryHandler(resolver *resolve.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := resolver.ResolveSummary(c.Request.Context(),
			c.Query("article_url"), c.Query("content"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func postSentimentHandler(resolver *resolve.Resolver) gin.HandlerFunc {
	type request struct {
		Text string `json:"text"`
	}
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
			return
		}

		result, err := resolver.ResolveSentiment(c.Request.Context(), req.Text)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func postCommentHandler(docs *docstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var comment docstore.Comment
		if err := c.ShouldBindJSON(&comment); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
			return
		}

		id, err := docs.AddComment(c.Request.Context(), comment)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "comment added", "comment_id": id})
	}
}

func getCommentsHandler(docs *docstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		comments, err := docs.CommentsByArticle(c.Request.Context(), c.Param("article_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(comments), "comments": comments})
	}
}

func deleteCommentHandler(docs *docstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid comment id"})
			return
		}

		if err := docs.DeleteComment(c.Request.Context(), id); err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "comment not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
	}
}

func postBookmarkHandler(docs *docstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bookmark docstore.Bookmark
		if err := c.ShouldBindJSON(&bookmark); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
			return
		}

		id, err := docs.AddBookmark(c.Request.Context(), bookmark)
		if err != nil {
			if errors.Is(err, docstore.ErrDuplicate) {
				c.JSON(http.StatusConflict, gin.H{"detail": "already bookmarked"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "bookmark added", "bookmark_id": id})
	}
}

func getBookmarksHandler(docs *docstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookmarks, err := docs.BookmarksByUser(c.Request.Context(), c.Param("user_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(bookmarks), "bookmarks": bookmarks})
	}
}

func deleteBookmarkHandler(docs *docstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid bookmark id"})
			return
		}

		if err := docs.DeleteBookmark(c.Request.Context(), id); err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "bookmark not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "bookmark removed"})
	}
}
