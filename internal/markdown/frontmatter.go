package markdown

import (
	"encoding/json"
	"fmt"
	"strings"
)

const delimiter = "---"

// Kind identifies which variant a frontmatter Value holds.
type Kind int

const (
	StringKind Kind = iota
	BoolKind
	ListKind
)

func (k Kind) String() string {
	switch k {
	case StringKind:
		return "string"
	case BoolKind:
		return "bool"
	case ListKind:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a single frontmatter value: a string, a boolean or an ordered list of strings.
type Value struct {
	kind Kind
	str  string
	b    bool
	list []string
}

func StringValue(s string) Value {
	return Value{kind: StringKind, str: s}
}

func BoolValue(b bool) Value {
	return Value{kind: BoolKind, b: b}
}

func ListValue(items ...string) Value {
	return Value{kind: ListKind, list: append([]string{}, items...)}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == StringKind
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == BoolKind
}

// AsList returns a copy of the list items.
func (v Value) AsList() ([]string, bool) {
	if v.kind != ListKind {
		return nil, false
	}
	return append([]string{}, v.list...), true
}

func (v Value) append(item string) Value {
	if v.kind != ListKind {
		v = ListValue()
	}
	v.list = append(v.list, item)
	return v
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case BoolKind:
		return json.Marshal(v.b)
	case ListKind:
		return json.Marshal(v.list)
	default:
		return json.Marshal(v.str)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw := raw.(type) {
	case bool:
		*v = BoolValue(raw)
	case string:
		*v = StringValue(raw)
	case []any:
		items := make([]string, 0, len(raw))
		for _, item := range raw {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("frontmatter list item %v is not a string", item)
			}
			items = append(items, s)
		}
		*v = ListValue(items...)
	default:
		return fmt.Errorf("unsupported frontmatter value %s", data)
	}
	return nil
}

// Frontmatter maps keys to values. Keys are unique; a later declaration replaces an earlier one.
type Frontmatter map[string]Value

// Lookup returns the value for the first key that is present. Exact matches win over
// case-insensitive ones.
func (fm Frontmatter) Lookup(keys ...string) (Value, bool) {
	for _, key := range keys {
		if v, ok := fm[key]; ok {
			return v, true
		}
	}
	for _, key := range keys {
		for k, v := range fm {
			if strings.EqualFold(k, key) {
				return v, true
			}
		}
	}
	return Value{}, false
}

// FrontmatterReport describes how a document's frontmatter block was interpreted.
type FrontmatterReport struct {
	// Delimited is true when both delimiters were found.
	Delimited bool
	// Unterminated is true when an opening delimiter had no closing one.
	Unterminated bool
	// IgnoredLines counts block lines that were neither keys nor list items.
	IgnoredLines int
}

// ParseFrontmatter splits raw document text into its frontmatter and Markdown body.
// It never fails: a document without a complete delimited block is all body.
func ParseFrontmatter(text string) (Frontmatter, string) {
	fm, body, _ := ParseFrontmatterReport(text)
	return fm, body
}

// ParseFrontmatterReport is ParseFrontmatter plus a report of what was skipped.
func ParseFrontmatterReport(text string) (Frontmatter, string, FrontmatterReport) {
	var report FrontmatterReport

	lines := strings.Split(text, "\n")
	if strings.TrimSpace(lines[0]) != delimiter {
		return Frontmatter{}, text, report
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end == -1 {
		report.Unterminated = true
		return Frontmatter{}, text, report
	}

	report.Delimited = true

	s := newBlockScanner()
	for _, line := range lines[1:end] {
		if !s.scan(line) {
			report.IgnoredLines++
		}
	}

	return s.fm, strings.Join(lines[end+1:], "\n"), report
}

// blockScanner is the line state machine for a single frontmatter block. currentKey
// is the last key declared; list items attach to it.
type blockScanner struct {
	fm         Frontmatter
	currentKey string
}

func newBlockScanner() *blockScanner {
	return &blockScanner{fm: Frontmatter{}}
}

// scan consumes one line and reports whether it was understood.
func (s *blockScanner) scan(line string) bool {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "-") && s.currentKey != "" {
		item := strings.TrimSpace(trimmed[1:])
		s.fm[s.currentKey] = s.fm[s.currentKey].append(item)
		return true
	}

	idx := strings.Index(line, ":")
	if idx < 0 {
		return false
	}

	s.currentKey = strings.TrimSpace(line[:idx])
	raw := strings.TrimSpace(line[idx+1:])
	if raw == "" {
		s.fm[s.currentKey] = ListValue()
		return true
	}

	s.fm[s.currentKey] = coerce(raw)
	return true
}

func coerce(raw string) Value {
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		switch {
		case first == '[' && last == ']':
			return parseInlineList(raw)
		case (first == '"' && last == '"') || (first == '\'' && last == '\''):
			return StringValue(raw[1 : len(raw)-1])
		}
	}

	switch raw {
	case `"`, "'":
		// A lone quote opens and closes itself.
		return StringValue("")
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}
	return StringValue(raw)
}

// parseInlineList reads `[a, b]` style values as a JSON array first, then as a
// comma separated list.
func parseInlineList(raw string) Value {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err == nil {
		items := make([]string, 0, len(elems))
		for _, elem := range elems {
			var s string
			if err := json.Unmarshal(elem, &s); err == nil {
				items = append(items, s)
				continue
			}
			items = append(items, strings.TrimSpace(string(elem)))
		}
		return ListValue(items...)
	}

	parts := strings.Split(raw[1:len(raw)-1], ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		items = append(items, strings.TrimSpace(part))
	}
	return ListValue(items...)
}
