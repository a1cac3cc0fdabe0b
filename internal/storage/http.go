package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxListingSize bounds how much of an index page or post is read.
const maxListingSize = 4 << 20

// HTTPSource serves posts from a web directory such as https://example.com/blogs/.
// Discovery scrapes the directory's index page.
type HTTPSource struct {
	client  *http.Client
	baseURL string
}

// NewHTTPSource creates a source rooted at baseURL. A nil client uses http.DefaultClient.
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &HTTPSource{
		client:  client,
		baseURL: baseURL,
	}
}

func (s *HTTPSource) Name() string {
	return "http-listing"
}

func (s *HTTPSource) Discover(ctx context.Context) ([]string, error) {
	page, status, err := s.get(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing %s: %w", s.baseURL, err)
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("fetch listing %s: status %d", s.baseURL, status)
	}
	return ScrapeListing(page), nil
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	body, status, err := s.get(ctx, s.baseURL+url.PathEscape(name))
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	switch {
	case status == http.StatusNotFound:
		return nil, &FetchError{Name: name, StatusCode: status, Err: ErrNotFound}
	case status < 200 || status > 299:
		return nil, &FetchError{Name: name, StatusCode: status}
	}
	return body, nil
}

func (s *HTTPSource) get(ctx context.Context, target string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListingSize))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
