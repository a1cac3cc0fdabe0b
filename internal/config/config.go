package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Blog sources.
const (
	SourceHTTP = "http"
	SourceS3   = "s3"
	SourceDir  = "dir"
)

type Config struct {
	// Application
	AppEnv string
	AppURL string

	// Blog
	BlogSource           string // "http", "s3" or "dir"
	BlogBaseURL          string // Directory URL holding the posts, e.g. https://example.com/blogs/
	BlogDir              string
	BlogKnownFiles       []string // Tried when the source cannot list its posts
	BlogFallback         bool
	BlogFetchTimeout     time.Duration
	BlogFetchConcurrency int

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services
	S3Prefix    string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	return &Config{
		AppEnv: envString("APP_ENV", "development"),
		AppURL: envString("APP_URL", "http://localhost:3000"),

		BlogSource:           strings.ToLower(envString("BLOG_SOURCE", SourceHTTP)),
		BlogBaseURL:          envString("BLOG_BASE_URL", "http://localhost:3000/blogs/"),
		BlogDir:              envString("BLOG_DIR", "public/blogs"),
		BlogKnownFiles:       envList("BLOG_KNOWN_FILES", nil),
		BlogFallback:         envBool("BLOG_FALLBACK", true),
		BlogFetchTimeout:     envDuration("BLOG_FETCH_TIMEOUT", 10*time.Second),
		BlogFetchConcurrency: envInt("BLOG_FETCH_CONCURRENCY", 4),

		SentryDSN: envString("SENTRY_DSN", ""),

		S3Region:    envString("S3_REGION", "us-east-1"),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),
		S3Prefix:    envString("S3_PREFIX", "blogs/"),
	}
}

// Validate checks that the selected blog source has what it needs.
func (c *Config) Validate() error {
	var errs []error

	switch c.BlogSource {
	case SourceHTTP:
		if c.BlogBaseURL == "" {
			errs = append(errs, errors.New("BLOG_BASE_URL is required for the http source"))
		}
	case SourceS3:
		for key, value := range map[string]string{
			"S3_BUCKET":     c.S3Bucket,
			"S3_ACCESS_KEY": c.S3AccessKey,
			"S3_SECRET_KEY": c.S3SecretKey,
		} {
			if value == "" {
				errs = append(errs, fmt.Errorf("%s is required for the s3 source", key))
			}
		}
	case SourceDir:
		if c.BlogDir == "" {
			errs = append(errs, errors.New("BLOG_DIR is required for the dir source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown BLOG_SOURCE %q (want http, s3 or dir)", c.BlogSource))
	}

	if c.BlogFetchConcurrency < 1 {
		errs = append(errs, errors.New("BLOG_FETCH_CONCURRENCY must be at least 1"))
	}

	return errors.Join(errs...)
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envList reads a comma separated value, dropping blank entries.
func envList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
