// CSV export: a short sheet for the sourcing workflow and a _detailed
// companion carrying every extracted field.

package export

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go-recruiter-automation/internal/config"
	"go-recruiter-automation/internal/models"
)

var csvHeader = []string{
	"full_name", "current_company", "current_title",
	"linkedin_public_url", "location", "review",
}

var detailedHeader = []string{
	"full_name", "current_company", "current_title",
	"linkedin_public_url", "location", "headline",
	"bachelors_grad_year", "years_experience",
	"recruiter_url", "needs_review", "review",
}

// WriteCSV writes both sheets and returns the main sheet's path. The
// {timestamp} token in the configured filename is replaced so reruns never
// clobber an earlier export.
func WriteCSV(records []models.CandidateRecord, cfg config.OutputConfig) (string, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := strings.ReplaceAll(cfg.CSV.Filename, "{timestamp}", time.Now().Format("2006-01-02_15-04-05"))
	mainPath := filepath.Join(cfg.Dir, name)
	detailedPath := detailedPathFor(mainPath)

	if err := writeSheet(mainPath, csvHeader, records, mainRow); err != nil {
		return "", err
	}
	if err := writeSheet(detailedPath, detailedHeader, records, detailedRow); err != nil {
		return "", err
	}

	log.Printf("📄 Wrote %d candidates to %s (+ detailed sheet)", len(records), mainPath)
	return mainPath, nil
}

func writeSheet(path string, header []string, records []models.CandidateRecord, row func(models.CandidateRecord) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(row(r)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.FullName, err)
		}
	}
	w.Flush()
	return w.Error()
}

func mainRow(r models.CandidateRecord) []string {
	return []string{
		r.FullName, r.CurrentCompany, r.CurrentTitle,
		r.PublicProfileURL, r.Location, r.Review,
	}
}

func detailedRow(r models.CandidateRecord) []string {
	return []string{
		r.FullName, r.CurrentCompany, r.CurrentTitle,
		r.PublicProfileURL, r.Location, r.Headline,
		intPtrString(r.BachelorsGradYear), intPtrString(r.YearsExperience),
		r.RecruiterURL, strconv.FormatBool(r.NeedsReview), r.Review,
	}
}

func intPtrString(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// detailedPathFor inserts _detailed before the extension:
// results.csv → results_detailed.csv.
func detailedPathFor(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_detailed" + ext
}
