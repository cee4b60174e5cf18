package scrape

import (
	"fmt"
	"log"
	"strings"

	"go-recruiter-automation/internal/checkpoint"
	"go-recruiter-automation/internal/models"
)

const (
	firstCandidateSelector = `a[href*="/talent/profile/"]`
	panelReadySelector     = `[data-test-row-lockup-full-name], [data-live-test-profile-name]`
	panelNextSelector      = `a[data-test-pagination-next], a[rel="next"].skyline-pagination-link`
	blockingModalSelector  = `[data-test-liha-panel] button[aria-label="Dismiss"], [data-test-liha-panel] button[class*="close"]`
	resultRowSelector      = `li.search-results__result-item, [data-test-search-result], li[class*='result'], div[class*='entity-result'], div[class*='search-result']`
)

// ResumePoint records where a crashed run should pick back up.
type ResumePoint struct {
	Page      int
	Candidate int
}

// PageResult summarizes one results page worth of panel traversal.
type PageResult struct {
	Records   []models.CandidateRecord
	Processed int
	Crashed   bool
	Resume    *ResumePoint
}

// Screenshotter captures debug evidence when something goes sideways.
type Screenshotter interface {
	Capture(d Driver, label string)
}

// Traverser steps through every candidate on a results page via the detail
// panel's own next button instead of re-clicking rows in the list.
type Traverser struct {
	Extractor  *Extractor
	Checkpoint *checkpoint.Store
	Health     HealthCheck
	Pacer      Pacer
	Debug      Screenshotter
}

// ProcessPage opens the first candidate's panel and walks forward until the
// panel's next button goes dead. Each kept record is checkpointed before the
// next panel loads, so a crash never loses more than the candidate in flight.
//
// A page whose panel never opens is abandoned with an empty result; only a
// crashed tab (via Resume) stops the caller from moving to the next page.
func (t *Traverser) ProcessPage(d Driver, pageNum int) *PageResult {
	result := &PageResult{}

	t.dismissBlockingModal(d)

	first, err := d.QuerySelector(firstCandidateSelector)
	if err != nil {
		log.Printf("  ⚠️ Failed to find candidate links on page %d: %v", pageNum, err)
		return result
	}
	if first == nil {
		log.Printf("  No candidate links on page %d", pageNum)
		return result
	}
	stub := rowStub(first)
	if stub.Name != "" {
		log.Printf("  Opening panel at '%s'", stub.Name)
	}
	if err := first.Click(); err != nil {
		log.Printf("  ⚠️ Failed to open first candidate on page %d: %v", pageNum, err)
		return result
	}

	if err := d.WaitForSelector(panelReadySelector, 10000); err != nil {
		t.screenshot(d, fmt.Sprintf("panel_timeout_page%d", pageNum))
		log.Printf("  ⚠️ Candidate panel never became ready on page %d, abandoning page: %v", pageNum, err)
		return result
	}

	for candidate := 1; ; candidate++ {
		health := t.Health
		if health == nil {
			health = TabCrashed
		}
		if health(d) {
			log.Println("  ============================================")
			log.Printf("  ❌ Tab crashed on page %d, candidate %d", pageNum, candidate)
			log.Printf("  Progress is saved. Restart and resume from page %d, candidate %d.", pageNum, candidate)
			log.Println("  ============================================")
			result.Crashed = true
			result.Resume = &ResumePoint{Page: pageNum, Candidate: candidate}
			return result
		}

		record, err := t.Extractor.Extract(d)
		result.Processed++
		if err != nil {
			log.Printf("    ⚠️ Extraction failed for candidate %d: %v", candidate, err)
		} else if record != nil {
			// The first panel belongs to the link that was clicked.
			if candidate == 1 && record.RecruiterURL == "" {
				record.RecruiterURL = stub.RecruiterURL
			}
			if t.Checkpoint != nil {
				if cpErr := t.Checkpoint.Append(*record); cpErr != nil {
					log.Printf("    ⚠️ Checkpoint write failed: %v", cpErr)
				}
			}
			result.Records = append(result.Records, *record)
			log.Printf("    ✅ %s | %s | %s", record.FullName, record.CurrentTitle, record.CurrentCompany)
		}

		if candidate%50 == 0 {
			log.Printf("  Progress: %d candidates processed on page %d, %d kept", candidate, pageNum, len(result.Records))
		}

		advanced, err := t.clickNextCandidate(d)
		if err != nil {
			log.Printf("    ⚠️ Next-candidate click failed: %v", err)
			break
		}
		if !advanced {
			break
		}
		t.Pacer.Pause()
	}

	ClosePanel(d)
	return result
}

// rowStub reads the minimal identity off a search-result link before it is
// clicked, scrolling it into view the way a user reaching for it would.
func rowStub(link Element) models.CandidateStub {
	if err := link.ScrollIntoView(); err != nil {
		log.Printf("  ⚠️ Could not scroll candidate link into view: %v", err)
	}
	var stub models.CandidateStub
	if href, err := link.GetAttribute("href"); err == nil {
		stub.RecruiterURL = href
	}
	if text, err := link.Text(); err == nil {
		stub.Name = strings.Join(strings.Fields(text), " ")
	}
	return stub
}

// clickNextCandidate advances the panel. false means the button is missing
// or disabled, i.e. the last candidate on the page.
func (t *Traverser) clickNextCandidate(d Driver) (bool, error) {
	next, err := d.QuerySelector(panelNextSelector)
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

// elementDisabled checks the attribute combinations Recruiter uses to mark a
// pagination control dead while keeping it in the DOM.
func elementDisabled(el Element) bool {
	for _, attr := range []string{"aria-hidden", "aria-disabled", "disabled"} {
		value, err := el.GetAttribute(attr)
		if err != nil {
			continue
		}
		if value == "true" || (attr == "disabled" && value != "") {
			return true
		}
	}
	return false
}

// dismissBlockingModal closes the promo overlay Recruiter sometimes drops on
// top of search results.
func (t *Traverser) dismissBlockingModal(d Driver) {
	btn, err := d.QuerySelector(blockingModalSelector)
	if err != nil || btn == nil {
		return
	}
	log.Println("  Dismissing blocking modal")
	_ = btn.Click()
	t.Pacer.Brief()
}

func (t *Traverser) screenshot(d Driver, label string) {
	if t.Debug != nil {
		t.Debug.Capture(d, label)
	}
}
