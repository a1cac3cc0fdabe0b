package model

import (
	"time"

	"golang.org/x/text/cases"

	"github.com/templui/portfolio/internal/markdown"
)

// BlogPost is one parsed post. It is built fresh on every load and not mutated afterwards.
type BlogPost struct {
	ID                   int                  `json:"id"`
	Filename             string               `json:"filename"`
	Slug                 string               `json:"slug"`
	Title                string               `json:"title"`
	Description          string               `json:"description"`
	Author               string               `json:"author"`
	Category             string               `json:"category"`
	Excerpt              string               `json:"excerpt"`
	Image                string               `json:"image"`
	Status               string               `json:"status"`
	EstimatedReadingTime string               `json:"estimatedReadingTime"`
	Tags                 []string             `json:"tags"`
	Featured             bool                 `json:"featured"`
	Date                 string               `json:"date"`
	HTMLContent          string               `json:"htmlContent"`
	Content              string               `json:"-"`
	ReadTime             int                  `json:"readTime"`
	Frontmatter          markdown.Frontmatter `json:"frontmatter,omitempty"`

	// PublishedAt is Date parsed for ordering.
	PublishedAt time.Time `json:"-"`
}

// HasTag reports whether the post carries tag, ignoring case.
func (p *BlogPost) HasTag(tag string) bool {
	fold := cases.Fold()
	want := fold.String(tag)
	for _, t := range p.Tags {
		if fold.String(t) == want {
			return true
		}
	}
	return false
}

// Collection is the ordered set of posts from one load, newest first.
type Collection struct {
	Posts  []*BlogPost `json:"posts"`
	Report LoadReport  `json:"report"`
}

// TagCount is a tag with the number of posts using it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
