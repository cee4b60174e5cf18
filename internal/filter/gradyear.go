// Grad-year range filtering over already-extracted records.

package filter

import (
	"log"

	"go-recruiter-automation/internal/config"
	"go-recruiter-automation/internal/models"
)

// Apply filters records by the bachelor's grad-year window. Records with no
// detected grad year are handled per no_bachelors_action: "skip" drops them,
// "include" keeps them as-is, "flag" keeps them marked for review.
func Apply(records []models.CandidateRecord, cfg config.FilterConfig) []models.CandidateRecord {
	minYear := cfg.BachelorsGradYearMin
	maxYear := cfg.BachelorsGradYearMax
	if minYear == 0 && maxYear == 0 {
		return records
	}

	var kept []models.CandidateRecord
	skipped := 0
	flagged := 0

	for _, r := range records {
		if r.BachelorsGradYear == nil {
			switch cfg.NoBachelorsAction {
			case "include":
				kept = append(kept, r)
			case "flag":
				r.NeedsReview = true
				kept = append(kept, r)
				flagged++
			default: // "skip"
				skipped++
			}
			continue
		}

		year := *r.BachelorsGradYear
		if (minYear != 0 && year < minYear) || (maxYear != 0 && year > maxYear) {
			skipped++
			continue
		}
		kept = append(kept, r)
	}

	log.Printf("  Kept: %d | Skipped: %d | Flagged for review: %d", len(kept), skipped, flagged)
	return kept
}
