// Page-driver capability boundary. The traversal and extraction engines
// only ever talk to this interface; the production backend wraps a
// playwright page, tests use a scripted fake.

package scrape

import "fmt"

// Element is a handle to a DOM element on the live page.
type Element interface {
	Click() error
	GetAttribute(name string) (string, error)
	Text() (string, error)
	ScrollIntoView() error
}

// Driver exposes the page operations the engines need. QuerySelector
// returns (nil, nil) when no element matches; every failure is a
// *DriverError.
type Driver interface {
	Navigate(url string) error
	QuerySelector(selector string) (Element, error)
	WaitForSelector(selector string, timeoutMs float64) error
	Evaluate(script string) (any, error)
	Title() (string, error)
	Content() (string, error)
	Press(key string) error
	Screenshot(path string) error
}

// DriverError wraps a failure from the browser-automation backend.
type DriverError struct {
	Op       string
	Selector string
	Err      error
}

func (e *DriverError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("driver %s %q: %v", e.Op, e.Selector, e.Err)
	}
	return fmt.Sprintf("driver %s: %v", e.Op, e.Err)
}

func (e *DriverError) Unwrap() error {
	return e.Err
}

// Pacer injects the randomized human-imitation delays between UI actions.
type Pacer interface {
	// Pause waits the full configured delay, used after navigations and
	// panel transitions.
	Pause()
	// Brief waits a fraction of the configured delay, used between small
	// in-panel interactions.
	Brief()
}
