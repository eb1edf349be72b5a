package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/newsaura/news-gateway/pkg/cache"
	"github.com/newsaura/news-gateway/pkg/config"
	"github.com/newsaura/news-gateway/pkg/docstore"
	"github.com/newsaura/news-gateway/pkg/extract"
	"github.com/newsaura/news-gateway/pkg/logging"
	"github.com/newsaura/news-gateway/pkg/news"
	"github.com/newsaura/news-gateway/pkg/quota"
	"github.com/newsaura/news-gateway/pkg/resolve"
	"github.com/newsaura/news-gateway/pkg/store"
)

func main() {
	cfg := config.Load()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
	})

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis adapter: connected here, torn down here. A failed connect
	// degrades the gateway to always-compute instead of aborting.
	st := store.New(cfg.RedisURL, logging.NewLogger("store"))
	st.SetTimeout(cfg.CacheTimeout)
	st.Connect(ctx)
	defer st.Close()

	typedCache := cache.New(st, logging.NewLogger("cache"))
	typedCache.SetDefaultTTL(cfg.NewsTTL)

	counter := quota.NewCounter(typedCache, logging.NewLogger("quota"))

	newsClient, err := news.NewClient(news.Config{
		BaseURL: cfg.GNewsBaseURL,
		APIKey:  cfg.GNewsAPIKey,
		Timeout: cfg.UpstreamTimeout,
	}, logging.NewLogger("gnews"))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create GNews client")
	}

	extractor := extract.New(cfg.ScrapeTimeout, logging.NewLogger("extract"))

	resolver := resolve.New(typedCache, counter, newsClient, extractor,
		cfg.NewsTTL, logging.NewLogger("resolve"))

	docs, err := docstore.Open(cfg.DocStorePath, typedCache, logging.NewLogger("docstore"))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open document store")
	}
	defer docs.Close()
	docs.SetCommentsTTL(cfg.CommentsTTL)

	srv := &http.Server{
		Addr:              cfg.Host + ":" + cfg.Port,
		Handler:           newRouter(resolver, counter, docs, st),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Starting news gateway")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
