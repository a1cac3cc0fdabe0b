package service

import (
	"context"
	"encoding/xml"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/templui/portfolio/internal/model"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// publicRoutes are the static pages of the site that belong in the sitemap.
var publicRoutes = []struct {
	Path       string
	Priority   string
	ChangeFreq string
}{
	{"/", "1.0", "daily"},
	{"/blog", "0.8", "daily"},
}

type SitemapService struct {
	blogService *BlogService
	baseURL     string
	now         func() time.Time
}

func NewSitemapService(blogService *BlogService, baseURL string) *SitemapService {
	return &SitemapService{
		blogService: blogService,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		now:         time.Now,
	}
}

// GenerateSitemap renders the site's pages, posts and tag pages as sitemap XML.
// A failed post load leaves the static routes in place.
func (s *SitemapService) GenerateSitemap(ctx context.Context) ([]byte, error) {
	today := s.now().Format(dateLayout)
	sitemap := model.Sitemap{
		XMLNS: sitemapNamespace,
		URLs:  s.staticURLs(today),
	}

	blogURLs, err := s.blogURLs(ctx, today)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		slog.Warn("failed to get blog URLs for sitemap", "error", err)
	} else {
		sitemap.URLs = append(sitemap.URLs, blogURLs...)
	}

	output, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return []byte(xml.Header + string(output)), nil
}

func (s *SitemapService) staticURLs(today string) []model.SitemapURL {
	urls := make([]model.SitemapURL, 0, len(publicRoutes))
	for _, route := range publicRoutes {
		urls = append(urls, model.SitemapURL{
			Loc:        s.baseURL + route.Path,
			LastMod:    today,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}
	return urls
}

func (s *SitemapService) blogURLs(ctx context.Context, today string) ([]model.SitemapURL, error) {
	posts, err := s.blogService.Posts(ctx)
	if err != nil {
		return nil, err
	}

	urls := make([]model.SitemapURL, 0, len(posts))
	for _, post := range posts {
		lastMod := today
		if !post.PublishedAt.IsZero() {
			lastMod = post.PublishedAt.Format(dateLayout)
		}

		urls = append(urls, model.SitemapURL{
			Loc:        s.baseURL + "/blog/" + url.PathEscape(post.Slug),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	// Tag pages, in first-seen order so output is stable.
	seen := make(map[string]bool)
	for _, post := range posts {
		for _, tag := range post.Tags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			urls = append(urls, model.SitemapURL{
				Loc:        s.baseURL + "/blog/tag/" + url.PathEscape(tag),
				LastMod:    today,
				ChangeFreq: "weekly",
				Priority:   "0.5",
			})
		}
	}

	return urls, nil
}
