package validator

import "testing"

func collectEvents(t *testing.T, doc string) ([]TagEvent, []Issue) {
	t.Helper()
	s := NewScanner([]byte(doc))
	var events []TagEvent
	for {
		ev, ok := s.Next()
		if !ok {
			break
		}
		events = append(events, ev)
	}
	return events, s.Issues()
}

func TestScannerEmitsTagEventsInDocumentOrder(t *testing.T) {
	events, issues := collectEvents(t, "<a>\n<b></b></a>")
	if len(issues) != 0 {
		t.Fatalf("expected no scan issues, got %v", issues)
	}

	want := []struct {
		kind   EventKind
		name   string
		offset int
		line   int
	}{
		{StartTag, "a", 0, 1},
		{StartTag, "b", 4, 2},
		{EndTag, "b", 7, 2},
		{EndTag, "a", 11, 2},
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d: %#v", len(want), len(events), events)
	}
	for i, w := range want {
		ev := events[i]
		if ev.Kind != w.kind || ev.Name != w.name || ev.Offset != w.offset || ev.Line != w.line {
			t.Fatalf("event %d = %+v, want %+v", i, ev, w)
		}
	}
}

func TestScannerFoldsCaseAndKeepsAttributeValues(t *testing.T) {
	events, _ := collectEvents(t, `<LINK REL="Stylesheet" HREF='Style.CSS'>`)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Name != "link" {
		t.Fatalf("expected lowercased name, got %q", ev.Name)
	}
	if rel, ok := ev.Attr("rel"); !ok || rel != "Stylesheet" {
		t.Fatalf("expected rel=Stylesheet with original casing, got %q (present=%v)", rel, ok)
	}
	if href, ok := ev.Attr("href"); !ok || href != "Style.CSS" {
		t.Fatalf("expected href=Style.CSS, got %q (present=%v)", href, ok)
	}
}

func TestScannerAttributeQuotingVariants(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"double quoted", `<link href="style.css">`},
		{"single quoted", `<link href='style.css'>`},
		{"unquoted", `<link href=style.css>`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			events, _ := collectEvents(t, tc.doc)
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			if href, ok := events[0].Attr("href"); !ok || href != "style.css" {
				t.Fatalf("expected href=style.css, got %q (present=%v)", href, ok)
			}
		})
	}
}

func TestScannerMarksSelfClosingTags(t *testing.T) {
	events, _ := collectEvents(t, "<br/><div></div>")
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d: %#v", len(events), events)
	}
	if !events[0].SelfClosing || events[0].Name != "br" {
		t.Fatalf("expected self-closing br, got %+v", events[0])
	}
	if events[1].SelfClosing {
		t.Fatalf("expected plain start tag for div, got %+v", events[1])
	}
}

func TestScannerSkipsCommentsTextAndDoctype(t *testing.T) {
	doc := "<!DOCTYPE html>\n<!-- a <fake> tag in a comment -->\nplain text\n<p>body</p>"
	events, issues := collectEvents(t, doc)
	if len(issues) != 0 {
		t.Fatalf("expected no scan issues, got %v", issues)
	}
	if len(events) != 2 {
		t.Fatalf("expected only the p tags, got %#v", events)
	}
	if events[0].Name != "p" || events[1].Name != "p" {
		t.Fatalf("expected p start and end, got %#v", events)
	}
	if events[0].Line != 4 {
		t.Fatalf("expected <p> on line 4, got %d", events[0].Line)
	}
}

func TestScannerReportsUnterminatedTag(t *testing.T) {
	events, issues := collectEvents(t, "<p>ok</p>\n<div")
	if len(events) != 2 {
		t.Fatalf("expected the complete tags to still be emitted, got %#v", events)
	}
	if len(issues) != 1 {
		t.Fatalf("expected exactly one scan issue, got %v", issues)
	}
	if issues[0].Category != CategoryScanError {
		t.Fatalf("expected scan-error category, got %s", issues[0].Category)
	}
	if issues[0].Line != 2 {
		t.Fatalf("expected issue on line 2, got %d", issues[0].Line)
	}
}

func TestScannerEmptyDocument(t *testing.T) {
	events, issues := collectEvents(t, "")
	if len(events) != 0 || len(issues) != 0 {
		t.Fatalf("expected nothing from empty input, got events=%#v issues=%v", events, issues)
	}
}

func TestScannerIsExhaustedAfterEOF(t *testing.T) {
	s := NewScanner([]byte("<p></p>"))
	for {
		if _, ok := s.Next(); !ok {
			break
		}
	}
	if _, ok := s.Next(); ok {
		t.Fatalf("expected scanner to stay exhausted")
	}
}
