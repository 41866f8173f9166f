package validator

import "bytes"

// Result is the outcome of validating one document. FormatOK is derived:
// it is true exactly when Issues is empty.
type Result struct {
	FormatOK bool
	Issues   []Issue
}

// Messages flattens the issues into student-facing strings, preserving
// order.
func (r Result) Messages() []string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		out[i] = issue.Message
	}
	return out
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// binarySniffLen bounds how far Validate looks for evidence that the
// document is not text at all.
const binarySniffLen = 8000

// Validate runs the structural checks over the raw bytes of index.html and
// returns every defect found, in deterministic order: issues tied to a
// document position first (as encountered), then unclosed tags, missing
// required tags, ordering, and finally the stylesheet-link check. The
// document is traversed exactly once and no state survives the call.
func Validate(content []byte) Result {
	content = bytes.TrimPrefix(content, utf8BOM)
	if looksBinary(content) {
		return Result{Issues: []Issue{newIssue(CategoryUnreadable, 0,
			"index.html is not readable as text.")}}
	}

	scanner := NewScanner(content)
	matcher := NewMatcher()
	links := &LinkDetector{}

	for {
		ev, ok := scanner.Next()
		if !ok {
			break
		}
		matcher.Feed(ev)
		links.Feed(ev)
	}

	issues := append([]Issue(nil), matcher.Issues()...)
	issues = append(issues, scanner.Issues()...)
	issues = append(issues, matcher.Finish()...)
	if !links.Satisfied() {
		issues = append(issues, newIssue(CategoryNoCSSLink, 0,
			"index.html does not link to a CSS file."))
	}

	return Result{FormatOK: len(issues) == 0, Issues: issues}
}

// looksBinary applies the NUL-byte heuristic to the head of the document.
func looksBinary(content []byte) bool {
	head := content
	if len(head) > binarySniffLen {
		head = head[:binarySniffLen]
	}
	return bytes.IndexByte(head, 0) >= 0
}
