package storage

import (
	"bytes"
	"net/url"
	"path"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var contentFilePattern = regexp.MustCompile(`[\w-]+\.(?:markdown|md)\b`)

// ScrapeListing extracts post filenames from a directory index page. Links whose
// target ends in a content extension are preferred, then links that merely contain
// one, and finally any filename-looking text in the raw page.
func ScrapeListing(page []byte) []string {
	hrefs := anchorHrefs(page)

	names := namesFromHrefs(hrefs, func(href string) bool {
		return IsContentFile(strings.ToLower(href))
	})
	if len(names) == 0 {
		names = namesFromHrefs(hrefs, containsContentExt)
	}
	if len(names) == 0 {
		names = contentFilePattern.FindAllString(string(page), -1)
	}

	return dedupe(names)
}

func anchorHrefs(page []byte) []string {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil
	}

	var hrefs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return hrefs
}

func namesFromHrefs(hrefs []string, match func(string) bool) []string {
	var names []string
	for _, href := range hrefs {
		if !match(href) {
			continue
		}
		name := hrefBase(href)
		if IsContentFile(name) {
			names = append(names, name)
		}
	}
	return names
}

func containsContentExt(href string) bool {
	lower := strings.ToLower(href)
	for _, ext := range ContentExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}

// hrefBase reduces a link target to its unescaped final path segment.
func hrefBase(href string) string {
	p := href
	if u, err := url.Parse(href); err == nil {
		p = u.Path
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
