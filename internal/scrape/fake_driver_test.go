package scrape

import (
	"fmt"
	"strings"
)

// fakeCandidate is one scripted detail panel.
type fakeCandidate struct {
	name      string
	title     string
	company   string
	location  string
	education []map[string]any
	hasEdu    bool
	truncated bool
	publicURL string
}

// fakePage is one scripted results page.
type fakePage struct {
	candidates []fakeCandidate
	// crashAt, when nonzero, makes the tab report a crash title right
	// before extracting that candidate (1-based).
	crashAt int
	// panelBroken makes the detail panel never become ready on this page.
	panelBroken bool
}

// fakeDriver replays a scripted Recruiter session. It dispatches on the
// exact selectors and script constants the engines use, so a renamed
// selector fails the test instead of silently matching nothing.
type fakeDriver struct {
	pages     []fakePage
	pageIdx   int
	candidate int // 0-based index into the current page's candidates
	panelOpen bool

	navigated []string
	pressed   []string
}

func (f *fakeDriver) page() fakePage {
	return f.pages[f.pageIdx]
}

func (f *fakeDriver) current() fakeCandidate {
	return f.page().candidates[f.candidate]
}

func (f *fakeDriver) crashed() bool {
	p := f.page()
	return f.panelOpen && p.crashAt > 0 && f.candidate+1 >= p.crashAt
}

func (f *fakeDriver) Navigate(url string) error {
	f.navigated = append(f.navigated, url)
	return nil
}

func (f *fakeDriver) QuerySelector(selector string) (Element, error) {
	switch selector {
	case firstCandidateSelector:
		if len(f.page().candidates) == 0 {
			return nil, nil
		}
		first := f.page().candidates[0]
		return &fakeElement{
			attrs: map[string]string{
				"href": "https://www.linkedin.com/talent/profile/" + strings.ReplaceAll(first.name, " ", ""),
			},
			text: first.name,
			onClick: func() error {
				f.panelOpen = true
				f.candidate = 0
				return nil
			},
		}, nil
	case panelNextSelector:
		if f.candidate+1 >= len(f.page().candidates) {
			return nil, nil
		}
		return &fakeElement{onClick: func() error {
			f.candidate++
			return nil
		}}, nil
	case pageNextSelector:
		if f.pageIdx+1 >= len(f.pages) {
			return nil, nil
		}
		return &fakeElement{onClick: func() error {
			f.pageIdx++
			f.panelOpen = false
			f.candidate = 0
			return nil
		}}, nil
	case publicProfileTriggerSelector, publicProfileLinkSelector:
		// No reveal popover in the fake; extraction falls through to the
		// anchor scan.
		return nil, nil
	}
	return nil, nil
}

func (f *fakeDriver) WaitForSelector(selector string, timeoutMs float64) error {
	switch selector {
	case resultRowSelector:
		if len(f.page().candidates) == 0 {
			return &DriverError{Op: "wait", Selector: selector, Err: fmt.Errorf("timeout")}
		}
		return nil
	case panelReadySelector:
		if f.page().panelBroken {
			return &DriverError{Op: "wait", Selector: selector, Err: fmt.Errorf("timeout")}
		}
		return nil
	}
	return nil
}

func (f *fakeDriver) Evaluate(script string) (any, error) {
	switch script {
	case bodyTextJS:
		if f.crashed() {
			return "Aw, Snap! Something went wrong", nil
		}
		return "search results", nil
	case panelFieldsJS:
		c := f.current()
		return map[string]any{
			"name":     c.name,
			"title":    c.title,
			"company":  c.company,
			"location": c.location,
		}, nil
	case educationJS:
		c := f.current()
		entries := c.education
		if entries == nil {
			entries = []map[string]any{}
		}
		return map[string]any{
			"entries":      entries,
			"hasEducation": c.hasEdu,
			"hasShowMore":  c.truncated,
		}, nil
	case profileAnchorJS:
		return f.current().publicURL, nil
	}
	return nil, &DriverError{Op: "evaluate", Err: fmt.Errorf("unknown script")}
}

func (f *fakeDriver) Title() (string, error) {
	if f.crashed() {
		return "Aw, Snap!", nil
	}
	return "Talent Search | LinkedIn Recruiter", nil
}

func (f *fakeDriver) Content() (string, error) {
	return "", nil
}

func (f *fakeDriver) Press(key string) error {
	f.pressed = append(f.pressed, key)
	return nil
}

func (f *fakeDriver) Screenshot(path string) error {
	return nil
}

type fakeElement struct {
	attrs    map[string]string
	text     string
	onClick  func() error
	scrolled bool
}

func (e *fakeElement) Click() error {
	if e.onClick != nil {
		return e.onClick()
	}
	return nil
}

func (e *fakeElement) GetAttribute(name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) Text() (string, error) {
	return e.text, nil
}

func (e *fakeElement) ScrollIntoView() error {
	e.scrolled = true
	return nil
}

type noopPacer struct{}

func (noopPacer) Pause() {}
func (noopPacer) Brief() {}

func bachelorsEdu(year int) []map[string]any {
	return []map[string]any{
		{"degree": "Bachelor of Science, Computer Science", "year": year},
	}
}

func candidateNamed(name, title string) fakeCandidate {
	return fakeCandidate{
		name:      name,
		title:     title,
		company:   "Acme Corp",
		location:  "New York City Metropolitan Area",
		education: bachelorsEdu(2018),
		hasEdu:    true,
		publicURL: "https://www.linkedin.com/in/" + strings.ToLower(strings.ReplaceAll(name, " ", "-")),
	}
}
