// Playwright-backed Driver implementation.

package scrape

import (
	"github.com/playwright-community/playwright-go"
)

type PageDriver struct {
	page      playwright.Page
	timeoutMs float64
}

func NewPageDriver(page playwright.Page, timeoutMs float64) *PageDriver {
	return &PageDriver{page: page, timeoutMs: timeoutMs}
}

func (d *PageDriver) Navigate(url string) error {
	// domcontentloaded instead of networkidle: the site makes constant
	// background requests that keep networkidle from ever firing.
	_, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(d.timeoutMs),
	})
	if err != nil {
		return &DriverError{Op: "navigate", Err: err}
	}
	return nil
}

func (d *PageDriver) QuerySelector(selector string) (Element, error) {
	handle, err := d.page.QuerySelector(selector)
	if err != nil {
		return nil, &DriverError{Op: "query", Selector: selector, Err: err}
	}
	if handle == nil {
		return nil, nil
	}
	return &pageElement{handle: handle}, nil
}

func (d *PageDriver) WaitForSelector(selector string, timeoutMs float64) error {
	_, err := d.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(timeoutMs),
	})
	if err != nil {
		return &DriverError{Op: "wait", Selector: selector, Err: err}
	}
	return nil
}

func (d *PageDriver) Evaluate(script string) (any, error) {
	value, err := d.page.Evaluate(script)
	if err != nil {
		return nil, &DriverError{Op: "evaluate", Err: err}
	}
	return value, nil
}

func (d *PageDriver) Title() (string, error) {
	title, err := d.page.Title()
	if err != nil {
		return "", &DriverError{Op: "title", Err: err}
	}
	return title, nil
}

func (d *PageDriver) Content() (string, error) {
	content, err := d.page.Content()
	if err != nil {
		return "", &DriverError{Op: "content", Err: err}
	}
	return content, nil
}

func (d *PageDriver) Press(key string) error {
	if err := d.page.Keyboard().Press(key); err != nil {
		return &DriverError{Op: "press", Err: err}
	}
	return nil
}

func (d *PageDriver) Screenshot(path string) error {
	_, err := d.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return &DriverError{Op: "screenshot", Err: err}
	}
	return nil
}

type pageElement struct {
	handle playwright.ElementHandle
}

func (e *pageElement) Click() error {
	if err := e.handle.Click(); err != nil {
		return &DriverError{Op: "click", Err: err}
	}
	return nil
}

func (e *pageElement) GetAttribute(name string) (string, error) {
	value, err := e.handle.GetAttribute(name)
	if err != nil {
		return "", &DriverError{Op: "attribute", Selector: name, Err: err}
	}
	return value, nil
}

func (e *pageElement) Text() (string, error) {
	text, err := e.handle.TextContent()
	if err != nil {
		return "", &DriverError{Op: "text", Err: err}
	}
	return text, nil
}

func (e *pageElement) ScrollIntoView() error {
	if err := e.handle.ScrollIntoViewIfNeeded(); err != nil {
		return &DriverError{Op: "scroll", Err: err}
	}
	return nil
}
