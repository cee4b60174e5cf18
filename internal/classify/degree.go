// Degree/year text parser.
// Works on free-text education blocks ("Drexel University, Bachelor of
// Science (BS) · 2012 – 2017") from search cards or panel rows.

package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Match reports how a block of education text relates to a bachelor's degree.
type Match int

const (
	NoMatch     Match = iota // not a bachelor's entry
	MatchNoYear              // bachelor's entry, no parseable year
	MatchYear                // bachelor's entry with a graduation year
)

var bachelorsKeywords = []string{
	"bachelor", "b.s.", "b.s", "b.a.", "b.a", "b.sc", "b.eng",
	"b.e.", "btech", "b.tech", "(bs)", "(ba)",
}

// Bare "BS"/"BA" tokens need word boundaries: a substring check would hit
// them inside "MBA", "Abs", "BAs" and miss "BS, Computer Science" or a
// trailing "BS".
var bareBachelorsRegex = regexp.MustCompile(`\b(bs|ba)\b`)

// Degree levels and programs that are never candidates for "Bachelor's",
// even when bachelor keywords also appear in the same text (dual-degree
// lines, "Bachelor's + Master's" combos).
var skipPatterns = []string{
	"master", "m.s.", "m.s", "m.a.", "m.a", "mba", "m.b.a",
	"ph.d", "phd", "doctor", "associate", "a.s.", "a.a.",
	"high school", "diploma", "certificate", "bootcamp",
	"hack reactor", "app academy", "flatiron", "general assembly",
	"graddip", "postgrad",
}

var masterRegex = regexp.MustCompile(`(?i)\bmaster|\bmba\b|m\.b\.a\b|m\.s\b|m\.a\b|m\.eng\b|m\.sc\b|mtech\b|m\.tech\b`)

var yearRegex = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// BachelorsYear parses a block of education text. When the text describes a
// bachelor's-level degree it returns the graduation year: the LAST 4-digit
// year token in the text, so a "2012 – 2017" range reports 2017.
func BachelorsYear(text string) (int, Match) {
	if text == "" {
		return 0, NoMatch
	}
	lower := strings.ToLower(text)

	for _, skip := range skipPatterns {
		if strings.Contains(lower, skip) {
			return 0, NoMatch
		}
	}

	// Entries with no degree-type text ("Stanford University · 2018") are
	// ambiguous and treated as non-matches, not as bachelor's.
	hasBachelors := bareBachelorsRegex.MatchString(lower)
	for _, kw := range bachelorsKeywords {
		if strings.Contains(lower, kw) {
			hasBachelors = true
			break
		}
	}
	if !hasBachelors {
		return 0, NoMatch
	}

	years := yearRegex.FindAllString(text, -1)
	if len(years) == 0 {
		return 0, MatchNoYear
	}
	year, err := strconv.Atoi(years[len(years)-1])
	if err != nil {
		return 0, MatchNoYear
	}
	return year, MatchYear
}

// IsMastersLevel reports whether the degree text describes a master's-level
// degree. Used by the education decision table for the "no bachelor's but
// has master's" review row.
func IsMastersLevel(text string) bool {
	return masterRegex.MatchString(text)
}
