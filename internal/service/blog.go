package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/templui/portfolio/internal/markdown"
	"github.com/templui/portfolio/internal/model"
	"github.com/templui/portfolio/internal/storage"
)

// ErrPostNotFound is returned by Post when no post has the requested slug.
var ErrPostNotFound = errors.New("blog post not found")

const (
	DefaultConcurrency  = 4
	DefaultFetchTimeout = 10 * time.Second

	dateLayout     = "2006-01-02"
	wordsPerMinute = 200
)

// Defaults for posts whose frontmatter omits a field.
const (
	DefaultAuthor      = "Unknown"
	DefaultCategory    = "General"
	DefaultImage       = "portfolio_theory.gif"
	DefaultStatus      = "published"
	DefaultReadingTime = "10 min"
)

type BlogOptions struct {
	// Concurrency bounds simultaneous fetches. Zero uses DefaultConcurrency.
	Concurrency int
	// FetchTimeout bounds each file fetch; a file that times out is skipped.
	// Zero uses DefaultFetchTimeout, a negative value disables the timeout.
	FetchTimeout time.Duration
	Logger       *slog.Logger
	// Now supplies the date used for posts without one.
	Now func() time.Time
}

type BlogService struct {
	parser       *markdown.Parser
	fetcher      storage.Fetcher
	strategies   []storage.Discoverer
	concurrency  int
	fetchTimeout time.Duration
	log          *slog.Logger
	now          func() time.Time
}

// NewBlogService reads posts through fetcher. Strategies are asked for filenames in
// order and the first one that returns any wins.
func NewBlogService(fetcher storage.Fetcher, strategies []storage.Discoverer, opts BlogOptions) *BlogService {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.FetchTimeout == 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &BlogService{
		parser:       markdown.NewParser(),
		fetcher:      fetcher,
		strategies:   append([]storage.Discoverer(nil), strategies...),
		concurrency:  opts.Concurrency,
		fetchTimeout: opts.FetchTimeout,
		log:          opts.Logger,
		now:          opts.Now,
	}
}

// Load discovers, fetches and parses every post. Files that cannot be fetched are
// skipped and listed in the collection's report; the only error returned is the
// caller's context ending.
func (s *BlogService) Load(ctx context.Context) (*model.Collection, error) {
	report := model.LoadReport{RunID: uuid.NewString()}
	log := s.log.With("run_id", report.RunID)
	today := startOfDay(s.now())

	names := s.discover(ctx, log, &report)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report.Discovered = len(names)

	// Each fetch owns one slot, so results need no locking and keep discovery order.
	posts := make([]*model.BlogPost, len(names))
	failures := make([]error, len(names))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			posts[i], failures[i] = s.loadFile(ctx, name, today)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	collection := &model.Collection{Posts: make([]*model.BlogPost, 0, len(names))}
	for i, name := range names {
		if failures[i] != nil {
			log.Warn("skipping blog post", "file", name, "error", failures[i])
			report.Skipped = append(report.Skipped, model.SkippedFile{Name: name, Reason: failures[i].Error()})
			continue
		}
		post := posts[i]
		post.ID = len(collection.Posts) + 1
		collection.Posts = append(collection.Posts, post)
	}
	report.Loaded = len(collection.Posts)

	sortByDate(collection.Posts)
	collection.Report = report

	log.Info("blog posts loaded",
		"strategy", report.Strategy,
		"discovered", report.Discovered,
		"loaded", report.Loaded,
		"skipped", len(report.Skipped),
		"outcome", report.Outcome(),
	)

	return collection, nil
}

// Posts returns every post, newest first.
func (s *BlogService) Posts(ctx context.Context) ([]*model.BlogPost, error) {
	collection, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return collection.Posts, nil
}

// Post loads all posts and returns the one whose slug equals slug exactly.
func (s *BlogService) Post(ctx context.Context, slug string) (*model.BlogPost, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
}

func (s *BlogService) PostsByTag(ctx context.Context, tag string) ([]*model.BlogPost, error) {
	allPosts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}

	var posts []*model.BlogPost
	for _, post := range allPosts {
		if post.HasTag(tag) {
			posts = append(posts, post)
		}
	}

	return posts, nil
}

func (s *BlogService) FeaturedPosts(ctx context.Context) ([]*model.BlogPost, error) {
	allPosts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}

	var posts []*model.BlogPost
	for _, post := range allPosts {
		if post.Featured {
			posts = append(posts, post)
		}
	}

	return posts, nil
}

// Tags returns each distinct tag with its post count, most used first. Tags that
// differ only in case are merged under the first spelling seen.
func (s *BlogService) Tags(ctx context.Context) ([]model.TagCount, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	index := make(map[string]int)
	var counts []model.TagCount
	for _, post := range posts {
		seen := make(map[string]bool)
		for _, tag := range post.Tags {
			key := fold.String(tag)
			if seen[key] {
				continue
			}
			seen[key] = true

			i, ok := index[key]
			if !ok {
				i = len(counts)
				index[key] = i
				counts = append(counts, model.TagCount{Tag: tag})
			}
			counts[i].Count++
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Tag < counts[j].Tag
	})

	return counts, nil
}

// ParsePost builds a post from one file's raw content without fetching anything.
func (s *BlogService) ParsePost(filename string, content []byte) *model.BlogPost {
	return s.buildPost(filename, content, startOfDay(s.now()))
}

func (s *BlogService) discover(ctx context.Context, log *slog.Logger, report *model.LoadReport) []string {
	for _, strategy := range s.strategies {
		names, err := strategy.Discover(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Warn("blog discovery failed", "strategy", strategy.Name(), "error", err)
			report.Discovery = append(report.Discovery, model.StrategyError{
				Strategy: strategy.Name(),
				Reason:   err.Error(),
			})
			continue
		}
		if len(names) == 0 {
			log.Debug("blog discovery found no posts", "strategy", strategy.Name())
			continue
		}

		report.Strategy = strategy.Name()
		return names
	}
	return nil
}

func (s *BlogService) loadFile(ctx context.Context, name string, today time.Time) (*model.BlogPost, error) {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	content, err := s.fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.buildPost(name, content, today), nil
}

func (s *BlogService) buildPost(filename string, content []byte, today time.Time) *model.BlogPost {
	meta, body, fmReport := markdown.ParseFrontmatterReport(string(content))
	if fmReport.Unterminated {
		s.log.Debug("frontmatter not closed, treating file as body", "file", filename)
	}
	if fmReport.IgnoredLines > 0 {
		s.log.Debug("frontmatter lines ignored", "file", filename, "lines", fmReport.IgnoredLines)
	}

	slug := storage.TrimContentExt(filename)

	post := &model.BlogPost{
		Filename:             slug,
		Slug:                 slug,
		Title:                textField(meta, strings.ReplaceAll(slug, "-", " "), "Title"),
		Description:          textField(meta, "", "Description"),
		Author:               textField(meta, DefaultAuthor, "Author"),
		Category:             categoryField(meta),
		Tags:                 tagsField(meta),
		Image:                textField(meta, DefaultImage, "Image"),
		Status:               textField(meta, DefaultStatus, "Status"),
		EstimatedReadingTime: textField(meta, DefaultReadingTime, "Estimated Reading Time"),
		Featured:             featuredField(meta),
		Date:                 textField(meta, today.Format(dateLayout), "date", "Created"),
		HTMLContent:          s.parser.Render(body),
		Content:              body,
		ReadTime:             calculateReadTime(body),
		Frontmatter:          meta,
	}
	post.Excerpt = textField(meta, post.Description, "Excerpt")
	post.PublishedAt = parseDate(post.Date, today)

	return post
}

// textField returns the text of the first key with a non-empty value, or def.
func textField(meta markdown.Frontmatter, def string, keys ...string) string {
	for _, key := range keys {
		v, ok := meta.Lookup(key)
		if !ok {
			continue
		}
		if text := valueText(v); text != "" {
			return text
		}
	}
	return def
}

func valueText(v markdown.Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	if b, ok := v.AsBool(); ok {
		if b {
			return "true"
		}
		return "false"
	}
	items, _ := v.AsList()
	return strings.Join(items, ", ")
}

func categoryField(meta markdown.Frontmatter) string {
	v, ok := meta.Lookup("Category")
	if !ok {
		return DefaultCategory
	}
	if items, ok := v.AsList(); ok {
		if len(items) > 0 && items[0] != "" {
			return items[0]
		}
		return DefaultCategory
	}
	if text := valueText(v); text != "" {
		return text
	}
	return DefaultCategory
}

func tagsField(meta markdown.Frontmatter) []string {
	tags := []string{}
	v, ok := meta.Lookup("Tags")
	if !ok {
		return tags
	}
	if items, ok := v.AsList(); ok {
		return append(tags, items...)
	}
	if s, ok := v.AsString(); ok && s != "" {
		tags = append(tags, s)
	}
	return tags
}

func featuredField(meta markdown.Frontmatter) bool {
	v, ok := meta.Lookup("Featured")
	if !ok {
		return false
	}
	if b, ok := v.AsBool(); ok {
		return b
	}
	s, _ := v.AsString()
	return s == "true"
}

// parseDate reads a post date for ordering. Dates that cannot be read sort as today,
// so two such posts keep their discovery order.
func parseDate(value string, today time.Time) time.Time {
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return today
	}
	return t
}

func sortByDate(posts []*model.BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func calculateReadTime(content string) int {
	words := strings.Fields(content)
	readTime := len(words) / wordsPerMinute
	if readTime < 1 {
		readTime = 1
	}
	return readTime
}
