package storage

import (
	"reflect"
	"testing"
)

func TestScrapeListing(t *testing.T) {
	tests := []struct {
		name string
		page string
		want []string
	}{
		{
			name: "autoindex links",
			page: `<html><body><h1>Index of /blogs</h1><pre>
<a href="../">../</a>
<a href="breakout-trading-systems.md">breakout-trading-systems.md</a>
<a href="momentum-trading-strategies.md">momentum-trading-strategies.md</a>
<a href="notes.txt">notes.txt</a>
</pre></body></html>`,
			want: []string{"breakout-trading-systems.md", "momentum-trading-strategies.md"},
		},
		{
			name: "absolute and escaped hrefs",
			page: `<ul><li><a href="/blogs/rainbow-algorithm-analysis.md">x</a></li>
<li><a href="http://example.com/blogs/my%20post.markdown">y</a></li>
<li><a href="/blogs/rainbow-algorithm-analysis.md">dup</a></li></ul>`,
			want: []string{"rainbow-algorithm-analysis.md", "my post.markdown"},
		},
		{
			name: "links with query strings",
			page: `<a href="portfolio-theory-optimization.md?raw=1">p</a><a href="other.mdx">o</a>`,
			want: []string{"portfolio-theory-optimization.md"},
		},
		{
			name: "raw text fallback",
			page: `{"files": ["momentum-trading-strategies.md", "draft.mdx", "breakout-trading-systems.md"]}`,
			want: []string{"momentum-trading-strategies.md", "breakout-trading-systems.md"},
		},
		{
			name: "nothing",
			page: `<html><body>Forbidden</body></html>`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScrapeListing([]byte(tt.page))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ScrapeListing() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestIsContentFile(t *testing.T) {
	for name, want := range map[string]bool{
		"post.md":       true,
		"POST.MD":       true,
		"post.markdown": true,
		"post.mdx":      false,
		"post":          false,
		"md":            false,
	} {
		if got := IsContentFile(name); got != want {
			t.Errorf("IsContentFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestTrimContentExt(t *testing.T) {
	for name, want := range map[string]string{
		"momentum-trading-strategies.md": "momentum-trading-strategies",
		"a.md.md":                        "a.md",
		"notes.markdown":                 "notes",
		"readme.txt":                     "readme.txt",
	} {
		if got := TrimContentExt(name); got != want {
			t.Errorf("TrimContentExt(%q) = %q, want %q", name, got, want)
		}
	}
}
