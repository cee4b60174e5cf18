package filter

import (
	"testing"

	"go-recruiter-automation/internal/config"
	"go-recruiter-automation/internal/models"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func record(name string, year *int) models.CandidateRecord {
	return models.CandidateRecord{FullName: name, BachelorsGradYear: year}
}

func TestApply_YearWindow(t *testing.T) {
	cfg := config.FilterConfig{
		BachelorsGradYearMin: 2010,
		BachelorsGradYearMax: 2024,
		NoBachelorsAction:    "skip",
	}

	records := []models.CandidateRecord{
		record("in range", intPtr(2017)),
		record("too old", intPtr(2005)),
		record("too new", intPtr(2025)),
		record("no year", nil),
	}

	kept := Apply(records, cfg)
	assert.Len(t, kept, 1)
	assert.Equal(t, "in range", kept[0].FullName)
}

func TestApply_FlagAction(t *testing.T) {
	cfg := config.FilterConfig{
		BachelorsGradYearMin: 2010,
		BachelorsGradYearMax: 2024,
		NoBachelorsAction:    "flag",
	}

	kept := Apply([]models.CandidateRecord{record("no year", nil)}, cfg)
	assert.Len(t, kept, 1)
	assert.True(t, kept[0].NeedsReview)
}

func TestApply_IncludeAction(t *testing.T) {
	cfg := config.FilterConfig{
		BachelorsGradYearMin: 2010,
		BachelorsGradYearMax: 2024,
		NoBachelorsAction:    "include",
	}

	kept := Apply([]models.CandidateRecord{record("no year", nil)}, cfg)
	assert.Len(t, kept, 1)
	assert.False(t, kept[0].NeedsReview)
}

func TestApply_NoWindowConfigured(t *testing.T) {
	records := []models.CandidateRecord{record("anyone", intPtr(1999))}
	kept := Apply(records, config.FilterConfig{})
	assert.Equal(t, records, kept)
}
