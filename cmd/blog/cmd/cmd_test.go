package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/templui/portfolio/internal/model"
)

func setupBlogDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"momentum-trading-strategies.md": "---\nTitle: Momentum\nTags: [trading, momentum]\nFeatured: true\ndate: 2024-03-01\n---\n# Momentum",
		"breakout-trading-systems.md":    "---\nTitle: Breakout\nTags: [trading]\ndate: 2024-01-15\n---\n# Breakout",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_URL", "https://example.com")
	t.Setenv("BLOG_SOURCE", "dir")
	t.Setenv("BLOG_DIR", dir)
	t.Setenv("BLOG_FALLBACK", "false")
	t.Setenv("SENTRY_DSN", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := RootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCmd(t *testing.T) {
	setupBlogDir(t)

	out, err := run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var posts []model.BlogPost
	if err := json.Unmarshal([]byte(out), &posts); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if len(posts) != 2 || posts[0].Slug != "momentum-trading-strategies" {
		t.Fatalf("unexpected posts %+v", posts)
	}

	out, err = run(t, "list", "--featured")
	if err != nil {
		t.Fatalf("list --featured: %v", err)
	}
	posts = nil
	if err := json.Unmarshal([]byte(out), &posts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(posts) != 1 || !posts[0].Featured {
		t.Fatalf("unexpected featured posts %+v", posts)
	}

	out, err = run(t, "list", "--tag", "MOMENTUM")
	if err != nil {
		t.Fatalf("list --tag: %v", err)
	}
	posts = nil
	if err := json.Unmarshal([]byte(out), &posts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Momentum" {
		t.Fatalf("unexpected tagged posts %+v", posts)
	}
}

func TestListCmd_Report(t *testing.T) {
	setupBlogDir(t)

	out, err := run(t, "list", "--report")
	if err != nil {
		t.Fatalf("list --report: %v", err)
	}
	if !strings.Contains(out, `"strategy": "fs-listing"`) || !strings.Contains(out, `"loaded": 2`) {
		t.Fatalf("unexpected report:\n%s", out)
	}
}

func TestShowCmd(t *testing.T) {
	setupBlogDir(t)

	out, err := run(t, "show", "breakout-trading-systems")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, `"title": "Breakout"`) || !strings.Contains(out, "<h1") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	if _, err := run(t, "show", "does-not-exist"); err == nil || !strings.Contains(err.Error(), "does-not-exist") {
		t.Fatalf("expected a not found error, got %v", err)
	}
}

func TestTagsCmd(t *testing.T) {
	setupBlogDir(t)

	out, err := run(t, "tags")
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	var tags []model.TagCount
	if err := json.Unmarshal([]byte(out), &tags); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(tags) != 2 || tags[0] != (model.TagCount{Tag: "trading", Count: 2}) {
		t.Fatalf("unexpected tags %+v", tags)
	}
}

func TestRenderCmd(t *testing.T) {
	file := filepath.Join(t.TempDir(), "draft-post.md")
	if err := os.WriteFile(file, []byte("---\nAuthor: Sam\n---\nHello **there**"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "render", "--html", file)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<p>Hello <strong>there</strong></p>\n" {
		t.Fatalf("unexpected html %q", out)
	}

	out, err = run(t, "render", file)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `"title": "draft post"`) || !strings.Contains(out, `"author": "Sam"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSitemapCmd(t *testing.T) {
	setupBlogDir(t)

	out, err := run(t, "sitemap")
	if err != nil {
		t.Fatalf("sitemap: %v", err)
	}
	if !strings.Contains(out, "<loc>https://example.com/blog/momentum-trading-strategies</loc>") {
		t.Fatalf("unexpected sitemap:\n%s", out)
	}
}
