package storage

import "context"

// DefaultKnownFiles are the posts the site has always shipped with.
var DefaultKnownFiles = []string{
	"momentum-trading-strategies.md",
	"portfolio-theory-optimization.md",
	"breakout-trading-systems.md",
	"rainbow-algorithm-analysis.md",
}

// StaticList discovers a fixed set of filenames. It is the last resort when no
// listing is available.
type StaticList struct {
	names []string
}

func NewStaticList(names []string) *StaticList {
	return &StaticList{names: dedupe(names)}
}

func (l *StaticList) Name() string {
	return "known-files"
}

func (l *StaticList) Discover(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]string(nil), l.names...), nil
}
