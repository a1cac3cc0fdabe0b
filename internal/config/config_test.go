package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "BLOG_SOURCE", "BLOG_KNOWN_FILES", "BLOG_FALLBACK",
		"BLOG_FETCH_TIMEOUT", "BLOG_FETCH_CONCURRENCY", "S3_PREFIX",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Fatalf("expected development by default, got %q", cfg.AppEnv)
	}
	if cfg.BlogSource != SourceHTTP {
		t.Fatalf("source = %q, want http", cfg.BlogSource)
	}
	if cfg.BlogKnownFiles != nil || !cfg.BlogFallback {
		t.Fatalf("unexpected fallback settings %v %v", cfg.BlogKnownFiles, cfg.BlogFallback)
	}
	if cfg.BlogFetchTimeout != 10*time.Second || cfg.BlogFetchConcurrency != 4 {
		t.Fatalf("unexpected fetch settings %v %d", cfg.BlogFetchTimeout, cfg.BlogFetchConcurrency)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("BLOG_SOURCE", "S3")
	t.Setenv("BLOG_KNOWN_FILES", " a.md, ,b.md ")
	t.Setenv("BLOG_FALLBACK", "false")
	t.Setenv("BLOG_FETCH_TIMEOUT", "250ms")
	t.Setenv("BLOG_FETCH_CONCURRENCY", "not-a-number")

	cfg := Load()
	if !cfg.IsProduction() {
		t.Fatalf("expected production, got %q", cfg.AppEnv)
	}
	if cfg.BlogSource != SourceS3 {
		t.Fatalf("source = %q, want s3", cfg.BlogSource)
	}
	if !reflect.DeepEqual(cfg.BlogKnownFiles, []string{"a.md", "b.md"}) {
		t.Fatalf("unexpected known files %#v", cfg.BlogKnownFiles)
	}
	if cfg.BlogFallback {
		t.Fatal("expected fallback to be disabled")
	}
	if cfg.BlogFetchTimeout != 250*time.Millisecond {
		t.Fatalf("timeout = %v", cfg.BlogFetchTimeout)
	}
	if cfg.BlogFetchConcurrency != 4 {
		t.Fatalf("invalid ints should fall back to the default, got %d", cfg.BlogFetchConcurrency)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr []string
	}{
		{
			name: "dir source",
			cfg:  Config{BlogSource: SourceDir, BlogDir: "posts", BlogFetchConcurrency: 1},
		},
		{
			name:    "s3 without credentials",
			cfg:     Config{BlogSource: SourceS3, S3Bucket: "site", BlogFetchConcurrency: 2},
			wantErr: []string{"S3_ACCESS_KEY", "S3_SECRET_KEY"},
		},
		{
			name:    "unknown source",
			cfg:     Config{BlogSource: "ftp", BlogFetchConcurrency: 1},
			wantErr: []string{`unknown BLOG_SOURCE "ftp"`},
		},
		{
			name:    "no concurrency",
			cfg:     Config{BlogSource: SourceHTTP, BlogBaseURL: "http://x/blogs/"},
			wantErr: []string{"BLOG_FETCH_CONCURRENCY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not mention %q", err, want)
				}
			}
		})
	}
}
