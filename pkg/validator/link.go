package validator

import "strings"

// LinkDetector looks for a stylesheet reference anywhere in the document,
// independent of nesting. A <link> counts when rel is absent or lists
// "stylesheet" and href points at a .css file.
type LinkDetector struct {
	found bool
}

func (d *LinkDetector) Feed(ev TagEvent) {
	if d.found || ev.Kind != StartTag || ev.Name != "link" {
		return
	}
	if rel, ok := ev.Attr("rel"); ok && !relListsStylesheet(rel) {
		return
	}
	href, ok := ev.Attr("href")
	if !ok {
		return
	}
	d.found = isCSSHref(href)
}

// Satisfied reports whether a stylesheet link has been seen.
func (d *LinkDetector) Satisfied() bool {
	return d.found
}

func relListsStylesheet(rel string) bool {
	for _, field := range strings.Fields(rel) {
		if strings.EqualFold(field, "stylesheet") {
			return true
		}
	}
	return false
}

// isCSSHref matches href values ending in .css, ignoring case and any
// query or fragment suffix.
func isCSSHref(href string) bool {
	href = strings.TrimSpace(href)
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	return strings.HasSuffix(strings.ToLower(href), ".css")
}
