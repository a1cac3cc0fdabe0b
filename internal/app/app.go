package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/templui/portfolio/internal/config"
	"github.com/templui/portfolio/internal/service"
	"github.com/templui/portfolio/internal/storage"
)

type App struct {
	Cfg            *config.Config
	Source         storage.Source
	BlogService    *service.BlogService
	SitemapService *service.SitemapService
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Storage
	source, err := newSource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blog source: %w", err)
	}

	strategies := []storage.Discoverer{source}
	if cfg.BlogFallback {
		known := cfg.BlogKnownFiles
		if len(known) == 0 {
			known = storage.DefaultKnownFiles
		}
		strategies = append(strategies, storage.NewStaticList(known))
	}

	// Services
	blogService := service.NewBlogService(source, strategies, service.BlogOptions{
		Concurrency:  cfg.BlogFetchConcurrency,
		FetchTimeout: cfg.BlogFetchTimeout,
		Logger:       log,
	})
	sitemapService := service.NewSitemapService(blogService, cfg.AppURL)

	log.Debug("app initialized", "source", source.Name(), "fallback", cfg.BlogFallback)

	return &App{
		Cfg:            cfg,
		Source:         source,
		BlogService:    blogService,
		SitemapService: sitemapService,
	}, nil
}

func newSource(ctx context.Context, cfg *config.Config) (storage.Source, error) {
	switch cfg.BlogSource {
	case config.SourceS3:
		return storage.NewS3Source(ctx, storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			Prefix:    cfg.S3Prefix,
		})
	case config.SourceDir:
		return storage.NewFSSource(os.DirFS(cfg.BlogDir), "."), nil
	default:
		return storage.NewHTTPSource(cfg.BlogBaseURL, http.DefaultClient), nil
	}
}
