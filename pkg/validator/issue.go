package validator

import "fmt"

// Category identifies the kind of defect an Issue reports. The set is
// closed; report consumers and tests match on it rather than on message
// wording.
type Category string

const (
	CategoryScanError       Category = "scan-error"
	CategoryUnclosed        Category = "unclosed-tag"
	CategoryMismatched      Category = "mismatched-tag"
	CategoryUnexpectedClose Category = "unexpected-close"
	CategoryMissingRequired Category = "missing-required"
	CategoryBadOrder        Category = "bad-order"
	CategoryNoCSSLink       Category = "no-css-link"
	CategoryUnreadable      Category = "unreadable"
)

// Issue is a single defect found in a document. Message is the
// student-facing wording; Line is 1-based and 0 for issues that are only
// determined at end of stream.
type Issue struct {
	Category Category
	Message  string
	Line     int
}

func (i Issue) String() string {
	return i.Message
}

func newIssue(cat Category, line int, format string, args ...any) Issue {
	return Issue{Category: cat, Message: fmt.Sprintf(format, args...), Line: line}
}
