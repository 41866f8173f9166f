package validator

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
)

// EventKind distinguishes start tags from end tags.
type EventKind int

const (
	StartTag EventKind = iota
	EndTag
)

// Attr is one attribute as written on a start tag. Keys are lowercased by
// the scanner; values keep their original casing with entities unescaped.
type Attr struct {
	Key string
	Val string
}

// TagEvent is one tag occurrence in document order. Name is lowercased.
// SelfClosing is true for start tags written with a trailing slash.
type TagEvent struct {
	Kind        EventKind
	Name        string
	Attrs       []Attr
	SelfClosing bool
	Offset      int
	Line        int
}

// Attr returns the value of the named attribute and whether it is present.
func (e TagEvent) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Scanner lexes a document into TagEvents, one traversal, no rewind.
// Comments, text, and doctype declarations are consumed without being
// emitted. Malformed regions are skipped best-effort and recorded as
// scan issues rather than stopping the pass.
type Scanner struct {
	z      *html.Tokenizer
	offset int
	line   int
	issues []Issue
	done   bool
}

// NewScanner returns a scanner over the full document text.
func NewScanner(content []byte) *Scanner {
	return &Scanner{z: html.NewTokenizer(bytes.NewReader(content)), line: 1}
}

// Next returns the next tag event. It reports false once the document is
// exhausted; after that, Issues holds anything the lexer had to skip.
func (s *Scanner) Next() (TagEvent, bool) {
	for !s.done {
		tt := s.z.Next()

		// Raw must be consumed before TagName/TagAttr invalidate it.
		raw := s.z.Raw()
		line := s.line
		offset := s.offset
		s.offset += len(raw)
		s.line += bytes.Count(raw, []byte{'\n'})

		switch tt {
		case html.ErrorToken:
			s.done = true
			if err := s.z.Err(); err != io.EOF {
				s.issues = append(s.issues, newIssue(CategoryScanError, line,
					"HTML parsing error (possibly malformed tags)."))
			} else if len(raw) > 0 && raw[0] == '<' {
				// The document ended inside an unterminated tag.
				s.issues = append(s.issues, newIssue(CategoryScanError, line,
					"index.html has malformed tag syntax near line %d.", line))
			}
			return TagEvent{}, false

		case html.StartTagToken, html.SelfClosingTagToken:
			ev := TagEvent{
				Kind:        StartTag,
				SelfClosing: tt == html.SelfClosingTagToken,
				Offset:      offset,
				Line:        line,
			}
			name, hasAttr := s.z.TagName()
			ev.Name = string(name)
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = s.z.TagAttr()
				ev.Attrs = append(ev.Attrs, Attr{Key: string(key), Val: string(val)})
			}
			return ev, true

		case html.EndTagToken:
			name, _ := s.z.TagName()
			return TagEvent{Kind: EndTag, Name: string(name), Offset: offset, Line: line}, true
		}
	}
	return TagEvent{}, false
}

// Issues returns the scan issues found so far. Complete once Next has
// reported false.
func (s *Scanner) Issues() []Issue {
	return s.issues
}
