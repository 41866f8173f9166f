package validator

// voidElements never take a closing tag, with or without a trailing slash.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// requiredTags must each open at least once, in this order.
var requiredTags = []string{"html", "head", "body"}

type openTag struct {
	name string
	line int
}

// Matcher consumes tag events and tracks nesting with an explicit stack
// plus the first-occurrence order of the required top-level tags. Feed it
// every event, then call Finish once for the end-of-stream issues.
type Matcher struct {
	stack    []openTag
	opened   map[string]bool
	order    []string
	perEvent []Issue
}

func NewMatcher() *Matcher {
	return &Matcher{opened: make(map[string]bool, len(requiredTags))}
}

// Feed processes one event. Nesting defects are recorded as they occur;
// at most one issue is recorded per end tag.
func (m *Matcher) Feed(ev TagEvent) {
	switch ev.Kind {
	case StartTag:
		m.noteOpened(ev.Name)
		if ev.SelfClosing || voidElements[ev.Name] {
			return
		}
		m.noteOrder(ev.Name)
		m.stack = append(m.stack, openTag{name: ev.Name, line: ev.Line})
	case EndTag:
		if voidElements[ev.Name] {
			// Stray </br> and friends carry no structure; ignore.
			return
		}
		m.close(ev)
	}
}

// close pops down to the matching open tag, reporting one mismatch per
// level skipped. Without a match anywhere on the stack the close is
// unexpected and the stack is left alone.
func (m *Matcher) close(ev TagEvent) {
	match := -1
	for i := len(m.stack) - 1; i >= 0; i-- {
		if m.stack[i].name == ev.Name {
			match = i
			break
		}
	}
	if match < 0 {
		m.perEvent = append(m.perEvent, newIssue(CategoryUnexpectedClose, ev.Line,
			"Unexpected closing tag </%s>.", ev.Name))
		return
	}
	for i := len(m.stack) - 1; i > match; i-- {
		m.perEvent = append(m.perEvent, newIssue(CategoryMismatched, ev.Line,
			"Mismatched closing tag </%s> (expected </%s>).", ev.Name, m.stack[i].name))
	}
	m.stack = m.stack[:match]
}

// Issues returns the per-event issues recorded so far, in document order.
func (m *Matcher) Issues() []Issue {
	return m.perEvent
}

// Finish evaluates the end-of-stream state: unclosed tags (once per
// distinct name, in open order), missing required tags in canonical order,
// then a single ordering issue if the required tags opened out of sequence.
func (m *Matcher) Finish() []Issue {
	var out []Issue

	seen := make(map[string]bool, len(m.stack))
	for _, t := range m.stack {
		if seen[t.name] {
			continue
		}
		seen[t.name] = true
		out = append(out, newIssue(CategoryUnclosed, t.line, "Unclosed tag <%s>.", t.name))
	}

	for _, name := range requiredTags {
		if !m.opened[name] {
			out = append(out, newIssue(CategoryMissingRequired, 0,
				"index.html is missing <%s> tag.", name))
		}
	}

	if !m.orderOK() {
		out = append(out, newIssue(CategoryBadOrder, 0,
			"index.html has an unexpected order of <html>, <head>, and <body> tags."))
	}

	return out
}

// noteOpened satisfies the presence check. Self-closing occurrences of the
// required tags count here even though they never reach the stack.
func (m *Matcher) noteOpened(name string) {
	for _, req := range requiredTags {
		if name == req {
			m.opened[name] = true
			return
		}
	}
}

// noteOrder records the first stack-relevant occurrence of each required tag.
func (m *Matcher) noteOrder(name string) {
	rank := requiredRank(name)
	if rank < 0 {
		return
	}
	for _, prev := range m.order {
		if prev == name {
			return
		}
	}
	m.order = append(m.order, name)
}

// orderOK checks that the required tags which did occur opened in
// html, head, body order. Absent tags are not compared; their absence is
// reported separately as missing-required.
func (m *Matcher) orderOK() bool {
	last := -1
	for _, name := range m.order {
		rank := requiredRank(name)
		if rank < last {
			return false
		}
		last = rank
	}
	return true
}

func requiredRank(name string) int {
	for i, req := range requiredTags {
		if name == req {
			return i
		}
	}
	return -1
}
