// Job-title whitelist/blacklist matching.

package classify

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Hard excludes. A match rejects the title regardless of the whitelist,
// which prevents broad phrases like "software engineer" from passing
// "Director of Software Engineering".
var titleBlacklist = []string{
	"director",
	"vice president",
	"vp", // covers "VP of Eng", "SVP", "EVP"
	"advocate",
	"advocacy",
	"merchandising",
	"operations", // blocks ops/strategy roles; does not affect "devops"/"mlops"
	"professional services",
}

// Soft flags. The title passes but gets marked for manual review.
var titleReviewFlags = []string{
	"head of",
}

// parenthetical or bracketed suffixes: "(Snowflake alum)", "[2021-2024]"
var suffixRegex = regexp.MustCompile(`\s*[\(\[].*?[\)\]]`)

// TitleWhitelist is a set of lowercase normalized title phrases. A nil
// whitelist means no filtering: every non-blacklisted title passes.
type TitleWhitelist struct {
	phrases mapset.Set[string]
}

// NewTitleWhitelist builds a whitelist from raw lines, stripping
// parenthetical suffixes and lowercasing, so "Software Engineer (Snowflake
// alum)" normalizes to "software engineer".
func NewTitleWhitelist(lines []string) *TitleWhitelist {
	phrases := mapset.NewSet[string]()
	for _, line := range lines {
		cleaned := strings.TrimSpace(suffixRegex.ReplaceAllString(line, ""))
		if cleaned != "" {
			phrases.Add(strings.ToLower(cleaned))
		}
	}
	return &TitleWhitelist{phrases: phrases}
}

func (w *TitleWhitelist) Len() int {
	if w == nil {
		return 0
	}
	return w.phrases.Cardinality()
}

// LoadTitleWhitelist reads a line-delimited phrase file. A missing file is
// not an error: it returns nil, which disables title filtering entirely.
func LoadTitleWhitelist(path string) (*TitleWhitelist, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read title whitelist: %w", err)
	}
	wl := NewTitleWhitelist(strings.Split(string(data), "\n"))
	log.Printf("📋 Loaded %d unique title phrases from %s", wl.Len(), path)
	return wl, nil
}

// MatchTitle returns (passes, reviewNote). Precedence, first match wins:
//  1. blacklist substring → reject, even when the whitelist would match
//  2. whitelist configured and non-empty → require a phrase substring match
//  3. soft review flag → pass with a note
//  4. pass clean
func MatchTitle(title string, wl *TitleWhitelist) (bool, string) {
	lower := strings.ToLower(title)

	for _, phrase := range titleBlacklist {
		if strings.Contains(lower, phrase) {
			return false, ""
		}
	}

	if wl != nil && wl.phrases.Cardinality() > 0 {
		matched := false
		wl.phrases.Each(func(phrase string) bool {
			if strings.Contains(lower, phrase) {
				matched = true
				return true // stop iteration
			}
			return false
		})
		if !matched {
			return false, ""
		}
	}

	for _, phrase := range titleReviewFlags {
		if strings.Contains(lower, phrase) {
			return true, fmt.Sprintf("title: '%s' - review", phrase)
		}
	}

	return true, ""
}
