package validator

import "testing"

func start(name string) TagEvent {
	return TagEvent{Kind: StartTag, Name: name}
}

func selfClosing(name string) TagEvent {
	return TagEvent{Kind: StartTag, Name: name, SelfClosing: true}
}

func end(name string) TagEvent {
	return TagEvent{Kind: EndTag, Name: name}
}

func runMatcher(events ...TagEvent) []Issue {
	m := NewMatcher()
	for _, ev := range events {
		m.Feed(ev)
	}
	issues := append([]Issue(nil), m.Issues()...)
	return append(issues, m.Finish()...)
}

func categories(issues []Issue) []Category {
	out := make([]Category, len(issues))
	for i, issue := range issues {
		out[i] = issue.Category
	}
	return out
}

func TestMatcherCleanDocument(t *testing.T) {
	issues := runMatcher(
		start("html"), start("head"), end("head"),
		start("body"), start("p"), end("p"), end("body"),
		end("html"),
	)
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestMatcherMismatchedClosePopsToAncestor(t *testing.T) {
	// <p><b></p></b>: closing p skips b, then b has nothing left to close.
	issues := runMatcher(start("p"), start("b"), end("p"), end("b"))

	want := []Category{
		CategoryMismatched,      // b skipped while closing p
		CategoryUnexpectedClose, // trailing </b>
		CategoryMissingRequired, // html
		CategoryMissingRequired, // head
		CategoryMissingRequired, // body
	}
	got := categories(issues)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v (%v)", want, got, issues)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("issue %d: expected %s, got %s (%v)", i, want[i], got[i], issues)
		}
	}
	if issues[0].Message != "Mismatched closing tag </p> (expected </b>)." {
		t.Fatalf("unexpected mismatch wording: %q", issues[0].Message)
	}
}

func TestMatcherMismatchRecoveryDoesNotCascade(t *testing.T) {
	// After recovery the remaining well-formed structure must validate clean.
	issues := runMatcher(
		start("html"), start("head"), end("body"), end("head"), end("html"),
	)
	got := categories(issues)
	want := []Category{CategoryUnexpectedClose, CategoryMissingRequired}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v (%v)", want, got, issues)
	}
	if issues[0].Message != "Unexpected closing tag </body>." {
		t.Fatalf("unexpected close wording: %q", issues[0].Message)
	}
	if issues[1].Message != "index.html is missing <body> tag." {
		t.Fatalf("missing-required wording: %q", issues[1].Message)
	}
}

func TestMatcherUnexpectedCloseOnEmptyStack(t *testing.T) {
	issues := runMatcher(start("p"), end("p"), end("p"))
	unexpected := 0
	for _, issue := range issues {
		if issue.Category == CategoryUnexpectedClose {
			unexpected++
			if issue.Message != "Unexpected closing tag </p>." {
				t.Fatalf("unexpected wording: %q", issue.Message)
			}
		}
	}
	if unexpected != 1 {
		t.Fatalf("expected exactly one unexpected-close, got %d (%v)", unexpected, issues)
	}
}

func TestMatcherUnclosedReportedOncePerTagName(t *testing.T) {
	issues := runMatcher(start("div"), start("div"), start("span"))
	var unclosed []string
	for _, issue := range issues {
		if issue.Category == CategoryUnclosed {
			unclosed = append(unclosed, issue.Message)
		}
	}
	if len(unclosed) != 2 {
		t.Fatalf("expected div and span reported once each, got %v", unclosed)
	}
	if unclosed[0] != "Unclosed tag <div>." || unclosed[1] != "Unclosed tag <span>." {
		t.Fatalf("unexpected unclosed wording/order: %v", unclosed)
	}
}

func TestMatcherNoFalseUnclosedForAbsentTags(t *testing.T) {
	issues := runMatcher(start("html"), start("body"), end("body"), end("html"))
	for _, issue := range issues {
		if issue.Category == CategoryUnclosed {
			t.Fatalf("no tag was left open, got %v", issue)
		}
		if issue.Category == CategoryBadOrder {
			t.Fatalf("html before body is in order, got %v", issue)
		}
	}
	missing := 0
	for _, issue := range issues {
		if issue.Category == CategoryMissingRequired {
			missing++
			if issue.Message != "index.html is missing <head> tag." {
				t.Fatalf("expected head to be the missing tag, got %q", issue.Message)
			}
		}
	}
	if missing != 1 {
		t.Fatalf("expected exactly one missing-required, got %d (%v)", missing, issues)
	}
}

func TestMatcherMissingRequiredCanonicalOrder(t *testing.T) {
	issues := runMatcher()
	got := categories(issues)
	if len(got) != 3 {
		t.Fatalf("expected three missing-required issues, got %v", issues)
	}
	wantMessages := []string{
		"index.html is missing <html> tag.",
		"index.html is missing <head> tag.",
		"index.html is missing <body> tag.",
	}
	for i, want := range wantMessages {
		if issues[i].Message != want {
			t.Fatalf("issue %d = %q, want %q", i, issues[i].Message, want)
		}
	}
}

func TestMatcherBadOrder(t *testing.T) {
	tests := []struct {
		name   string
		events []TagEvent
		want   bool
	}{
		{
			name: "head before html",
			events: []TagEvent{
				start("head"), start("html"), start("body"),
				end("body"), end("html"), end("head"),
			},
			want: true,
		},
		{
			name: "body before head",
			events: []TagEvent{
				start("html"), start("body"), end("body"),
				start("head"), end("head"), end("html"),
			},
			want: true,
		},
		{
			name: "in order",
			events: []TagEvent{
				start("html"), start("head"), end("head"),
				start("body"), end("body"), end("html"),
			},
			want: false,
		},
		{
			name:   "absent tags are not compared",
			events: []TagEvent{start("html"), end("html")},
			want:   false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			issues := runMatcher(tc.events...)
			found := false
			for _, issue := range issues {
				if issue.Category == CategoryBadOrder {
					found = true
				}
			}
			if found != tc.want {
				t.Fatalf("bad-order=%v, want %v (%v)", found, tc.want, issues)
			}
		})
	}
}

func TestMatcherVoidAndSelfClosingStayOffTheStack(t *testing.T) {
	issues := runMatcher(
		start("html"), start("head"),
		start("link"), start("meta"), selfClosing("br"),
		end("head"), start("body"), end("body"), end("html"),
	)
	if len(issues) != 0 {
		t.Fatalf("void elements must not demand closing tags, got %v", issues)
	}
}

func TestMatcherIgnoresEndTagsForVoidElements(t *testing.T) {
	issues := runMatcher(
		start("html"), start("head"), end("link"), end("head"),
		start("body"), end("body"), end("html"),
	)
	if len(issues) != 0 {
		t.Fatalf("stray void end tags carry no structure, got %v", issues)
	}
}

func TestMatcherSelfClosingRequiredTagCountsAsOpened(t *testing.T) {
	issues := runMatcher(
		start("html"), selfClosing("head"),
		start("body"), end("body"), end("html"),
	)
	for _, issue := range issues {
		if issue.Category == CategoryMissingRequired {
			t.Fatalf("self-closing head still satisfies presence, got %v", issue)
		}
		if issue.Category == CategoryBadOrder {
			t.Fatalf("self-closing tags must not feed the order state, got %v", issue)
		}
	}
}

func TestMatcherOrderUsesFirstOccurrenceOnly(t *testing.T) {
	// A second <html> after <body> must not flip the order verdict.
	issues := runMatcher(
		start("html"), start("head"), end("head"),
		start("body"), end("body"), end("html"),
		start("html"), end("html"),
	)
	for _, issue := range issues {
		if issue.Category == CategoryBadOrder {
			t.Fatalf("first occurrences were ordered, got %v", issue)
		}
	}
}
