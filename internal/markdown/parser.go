package markdown

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Parser renders Markdown bodies to HTML. Output is not sanitized; callers that inject
// it into a live page own XSS mitigation.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithUnsafe(),
		),
	)

	return &Parser{
		md: md,
	}
}

func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render converts a Markdown string to HTML. Conversion into memory cannot fail in
// practice; if it does, the partial output is returned and the error logged.
func (p *Parser) Render(body string) string {
	var buf bytes.Buffer
	err := p.md.Convert([]byte(body), &buf)
	if err != nil {
		slog.Warn("markdown render failed", "error", err)
	}
	return buf.String()
}

// ParseWithFrontmatter splits the document, renders the body and returns both.
func (p *Parser) ParseWithFrontmatter(source []byte) (content []byte, meta Frontmatter, body string, err error) {
	meta, body = ParseFrontmatter(string(source))

	content, err = p.Parse([]byte(body))
	if err != nil {
		return nil, nil, "", err
	}

	return content, meta, body, nil
}

func (p *Parser) ConvertReader(r io.Reader, w io.Writer) error {
	data, err := readAll(r)
	if err != nil {
		return err
	}
	_, body := ParseFrontmatter(string(data))
	return p.md.Convert([]byte(body), w)
}

func readAll(r io.Reader) ([]byte, error) {
	buf := new(bytes.Buffer)
	_, err := buf.ReadFrom(r)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
