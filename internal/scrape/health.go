package scrape

import "strings"

// HealthCheck reports whether the tab has become unusable. It is pluggable
// because string-matching error pages is inherently fragile and will need
// new phrases as the browser changes.
type HealthCheck func(d Driver) bool

var crashTitlePhrases = []string{"aw, snap", "error", "page unresponsive"}

const bodyTextJS = `() => document.body ? document.body.innerText : ''`

// TabCrashed is the default health predicate: it recognizes the browser's
// fatal-error pages by title, falling back to scanning the body text. After
// heavy memory usage these tabs crash in place, so an unreadable page also
// counts as crashed.
func TabCrashed(d Driver) bool {
	title, err := d.Title()
	if err != nil {
		return true
	}
	lower := strings.ToLower(title)
	for _, phrase := range crashTitlePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	body, err := d.Evaluate(bodyTextJS)
	if err != nil {
		return true
	}
	if text, ok := body.(string); ok && strings.Contains(strings.ToLower(text), "aw, snap") {
		return true
	}
	return false
}
