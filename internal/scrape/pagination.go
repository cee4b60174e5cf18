package scrape

import (
	"fmt"
	"log"
	"net/url"
	"strconv"

	"go-recruiter-automation/internal/config"
	"go-recruiter-automation/internal/models"
)

const (
	candidatesPerPage = 25

	pageNextSelector = `a[data-test-mini-pagination-next], a.mini-pagination__quick-link[rel="next"]`
)

// SearchURLForPage rewrites the saved search URL's start offset so a run can
// begin mid-search. Page 1 carries no offset.
func SearchURLForPage(raw string, page int) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid search URL: %w", err)
	}
	query := parsed.Query()
	if page <= 1 {
		query.Del("start")
	} else {
		query.Set("start", strconv.Itoa((page-1)*candidatesPerPage))
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// RunResult is the outcome of a multi-page search run.
type RunResult struct {
	Records  []models.CandidateRecord
	LastPage int
	Resume   *ResumePoint
}

// Search drives a saved Recruiter search page by page.
type Search struct {
	Traverser *Traverser
	Pacer     Pacer
}

// Run navigates to the requested start page, then walks page numbers from
// start_page through max_pages inclusive with the page-level next button,
// stopping early when the button goes dead or a tab crash forces a stop.
// Records already checkpointed are returned even when the run ends early.
// A page whose panel traversal came up empty does not stop the run; only a
// missing result list does.
func (s *Search) Run(d Driver, cfg config.SearchConfig) (*RunResult, error) {
	result := &RunResult{}

	startURL, err := SearchURLForPage(cfg.SavedSearchURL, cfg.StartPage)
	if err != nil {
		return nil, err
	}
	log.Printf("🔍 Opening search at page %d", cfg.StartPage)
	if err := d.Navigate(startURL); err != nil {
		return nil, fmt.Errorf("failed to open search: %w", err)
	}

	for page := cfg.StartPage; page <= cfg.MaxPages; page++ {
		if err := d.WaitForSelector(resultRowSelector, 15000); err != nil {
			log.Printf("⚠️ No search results appeared on page %d, stopping run: %v", page, err)
			break
		}

		log.Printf("📄 Processing page %d", page)
		result.LastPage = page

		pageResult := s.Traverser.ProcessPage(d, page)
		result.Records = append(result.Records, pageResult.Records...)
		log.Printf("📄 Page %d done: %d processed, %d kept", page, pageResult.Processed, len(pageResult.Records))

		if pageResult.Crashed {
			result.Resume = pageResult.Resume
			break
		}
		if page == cfg.MaxPages {
			break
		}

		advanced, err := s.clickNextPage(d)
		if err != nil {
			log.Printf("⚠️ Next-page click failed: %v", err)
			break
		}
		if !advanced {
			log.Printf("🏁 No more result pages after page %d", page)
			break
		}
		s.Pacer.Pause()
	}

	return result, nil
}

func (s *Search) clickNextPage(d Driver) (bool, error) {
	next, err := d.QuerySelector(pageNextSelector)
	if err != nil {
		return false, err
	}
	if next == nil || elementDisabled(next) {
		return false, nil
	}
	if err := next.Click(); err != nil {
		return false, err
	}
	return true, nil
}
