// Panel extractor: pulls one candidate's structured fields out of the open
// detail panel. Cheap checks run first; the public-URL reveal is the most
// expensive interaction and is only reached once the candidate has passed
// the education and title gates.

package scrape

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"go-recruiter-automation/internal/classify"
	"go-recruiter-automation/internal/models"

	"golang.org/x/text/unicode/norm"
)

// The out-of-network placeholder shown instead of a real name.
const outOfNetworkName = "LinkedIn Member"

const (
	publicProfileTriggerSelector = `button[data-test-public-profile-trigger], a[data-test-public-profile-trigger]`
	publicProfileLinkSelector    = `a[data-test-public-profile-link]`
)

var publicURLRegex = regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/in/([\w-]+)`)
var profileHandleRegex = regexp.MustCompile(`linkedin\.com/in/([\w-]+)`)

type panelFields struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

type educationData struct {
	Entries      []models.EducationEntry `json:"entries"`
	HasEducation bool                    `json:"hasEducation"`
	HasShowMore  bool                    `json:"hasShowMore"`
}

// Extractor turns an open panel into a CandidateRecord.
type Extractor struct {
	Whitelist   *classify.TitleWhitelist
	MinGradYear int
	MaxGradYear int
	Year        int // current year, for the years-experience derivation
	Pacer       Pacer
}

// Extract reads the open panel. A (nil, nil) return is a deliberate skip
// (filtered out or out-of-network); an error is an extraction failure the
// caller logs and moves past, never fatal to the run.
func (e *Extractor) Extract(d Driver) (*models.CandidateRecord, error) {
	e.Pacer.Brief()

	// Step 1: header + current-role fields in one evaluate.
	var fields panelFields
	if err := evalInto(d, panelFieldsJS, &fields); err != nil {
		return nil, fmt.Errorf("panel fields: %w", err)
	}

	name := cleanText(fields.Name)
	if name == "" {
		return nil, fmt.Errorf("no candidate name in panel")
	}
	if name == outOfNetworkName {
		log.Printf("    Skipping out-of-network candidate")
		return nil, nil
	}

	title := cleanText(fields.Title)
	company := cleanText(fields.Company)
	location := cleanText(fields.Location)

	// Step 2: education gate, before any further UI interaction.
	var edu educationData
	if err := evalInto(d, educationJS, &edu); err != nil {
		return nil, fmt.Errorf("education section: %w", err)
	}
	verdict := classify.ClassifyEducation(edu.Entries, edu.HasEducation, edu.HasShowMore, e.MinGradYear, e.MaxGradYear)
	if !verdict.ShouldExtract {
		log.Printf("    Skipping '%s' - education out of range or no relevant degree", name)
		return nil, nil
	}
	reviewNote := verdict.ReviewNote

	// Step 3: title gate. No title extracted → allow through; rejecting on
	// a missing field would silently drop candidates on a layout change.
	if e.Whitelist != nil && title != "" {
		passes, titleNote := classify.MatchTitle(title, e.Whitelist)
		if !passes {
			log.Printf("    Skipping '%s' - title '%s' blacklisted or not in whitelist", name, title)
			return nil, nil
		}
		reviewNote = joinNotes(reviewNote, titleNote)
	}

	// Step 4: public URL, the expensive part.
	publicURL := e.publicProfileURL(d)

	var yearsExp *int
	if verdict.GradYear != nil {
		n := e.Year - *verdict.GradYear
		yearsExp = &n
	}

	headline := title
	if title != "" && company != "" {
		headline = title + " at " + company
	} else if headline == "" {
		headline = company
	}

	return &models.CandidateRecord{
		FullName:          name,
		CurrentCompany:    company,
		CurrentTitle:      title,
		PublicProfileURL:  publicURL,
		Location:          classify.NormalizeLocation(location),
		Headline:          headline,
		BachelorsGradYear: verdict.GradYear,
		YearsExperience:   yearsExp,
		NeedsReview:       reviewNote != "",
		Review:            reviewNote,
	}, nil
}

// publicProfileURL tries each resolution strategy in decreasing order of
// confidence and takes the first hit.
func (e *Extractor) publicProfileURL(d Driver) string {
	strategies := []struct {
		name string
		fn   func(Driver) (string, error)
	}{
		{"reveal-click", e.urlFromRevealPopover},
		{"anchor-scan", urlFromAnchorScan},
		{"content-regex", urlFromContentScan},
	}
	for _, s := range strategies {
		url, err := s.fn(d)
		if err != nil {
			log.Printf("    Public URL via %s failed: %v", s.name, err)
			continue
		}
		if url != "" {
			return NormalizeProfileURL(url)
		}
	}
	return ""
}

// urlFromRevealPopover clicks the "Public profile" affordance and reads the
// revealed link's target.
func (e *Extractor) urlFromRevealPopover(d Driver) (string, error) {
	trigger, err := d.QuerySelector(publicProfileTriggerSelector)
	if err != nil || trigger == nil {
		return "", err
	}
	if err := trigger.Click(); err != nil {
		return "", err
	}
	e.Pacer.Brief()

	link, err := d.QuerySelector(publicProfileLinkSelector)
	if err != nil || link == nil {
		// Close the popover either way.
		_ = d.Press("Escape")
		return "", err
	}
	href, err := link.GetAttribute("href")
	_ = d.Press("Escape")
	if err != nil {
		return "", err
	}
	return href, nil
}

func urlFromAnchorScan(d Driver) (string, error) {
	value, err := d.Evaluate(profileAnchorJS)
	if err != nil {
		return "", err
	}
	if url, ok := value.(string); ok {
		return url, nil
	}
	return "", nil
}

func urlFromContentScan(d Driver) (string, error) {
	html, err := d.Content()
	if err != nil {
		return "", err
	}
	return publicURLRegex.FindString(html), nil
}

// NormalizeProfileURL reduces any profile link to the canonical
// https://www.linkedin.com/in/<handle> form.
func NormalizeProfileURL(url string) string {
	if m := profileHandleRegex.FindStringSubmatch(url); m != nil {
		return "https://www.linkedin.com/in/" + m[1]
	}
	return url
}

// ClosePanel returns to the search results. Best-effort: failures here are
// swallowed, the next navigation recovers anyway.
func ClosePanel(d Driver) {
	_ = d.Press("Escape")
	closeBtn, err := d.QuerySelector(
		`button[aria-label="Close"], button[aria-label="Dismiss"], button[class*="close"], [class*="artdeco-dismiss"]`,
	)
	if err == nil && closeBtn != nil {
		_ = closeBtn.Click()
	}
}

// evalInto runs an in-page script and decodes its JSON-ish result.
func evalInto(d Driver, script string, dst any) error {
	value, err := d.Evaluate(script)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode evaluate result: %w", err)
	}
	return json.Unmarshal(data, dst)
}

// cleanText NFC-normalizes and collapses whitespace in panel text; names
// especially arrive with combining accents and stray newlines.
func cleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

func joinNotes(notes ...string) string {
	var parts []string
	for _, n := range notes {
		if n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "; ")
}
