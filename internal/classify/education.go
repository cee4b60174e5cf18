// Education admission-control gate. This runs before the expensive public
// URL resolution so rejected candidates cost no extra UI interaction.

package classify

import "go-recruiter-automation/internal/models"

// Classification is the verdict over a candidate's full education section.
// Exactly one of skip / proceed-with-note / proceed-clean holds.
type Classification struct {
	ShouldExtract bool
	ReviewNote    string
	GradYear      *int
}

// ClassifyEducation applies the fixed decision table:
//
//	no education section at all        → extract, "no education"
//	exactly one bachelor's, year known → extract only if year in [minYear, maxYear]
//	exactly one bachelor's, no year    → extract, "no edu year - review"
//	multiple bachelor's                → extract, "multi bachelor - review"
//	no bachelor's but has master's     → extract, "No bachelor's - review"
//	no bachelor's, no master's         → skip
//	truncated list ("see more")        → skip
//
// "No section at all" is permissive while "section with only irrelevant
// degrees" skips: a hidden education section says nothing about the
// candidate, a visible one without a bachelor's does.
func ClassifyEducation(entries []models.EducationEntry, hasSection, truncated bool, minYear, maxYear int) Classification {
	if !hasSection {
		return Classification{ShouldExtract: true, ReviewNote: "no education"}
	}

	// A truncated list means more degrees than the panel shows; these
	// candidates almost always fall outside the grad-year range.
	if truncated {
		return Classification{ShouldExtract: false}
	}

	var bachelors []models.EducationEntry
	hasMaster := false
	for _, e := range entries {
		if _, m := BachelorsYear(e.Degree); m != NoMatch {
			bachelors = append(bachelors, e)
		}
		if IsMastersLevel(e.Degree) {
			hasMaster = true
		}
	}

	if len(bachelors) == 0 {
		if hasMaster {
			return Classification{ShouldExtract: true, ReviewNote: "No bachelor's - review"}
		}
		return Classification{ShouldExtract: false}
	}

	if len(bachelors) > 1 {
		return Classification{ShouldExtract: true, ReviewNote: "multi bachelor - review"}
	}

	entry := bachelors[0]
	year := entry.Year
	if year == nil {
		// The dates cell was empty; the degree text itself may carry one.
		if y, m := BachelorsYear(entry.Degree); m == MatchYear {
			year = &y
		}
	}
	if year == nil {
		return Classification{ShouldExtract: true, ReviewNote: "no edu year - review"}
	}

	if *year < minYear || *year > maxYear {
		return Classification{ShouldExtract: false, GradYear: year}
	}
	return Classification{ShouldExtract: true, GradYear: year}
}
