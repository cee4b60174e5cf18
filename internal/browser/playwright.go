package browser

import (
	"fmt"
	"log"

	"go-recruiter-automation/internal/config"

	"github.com/playwright-community/playwright-go"
)

// Script injected before any page code runs. Recruiter fingerprints
// automation via navigator.webdriver.
const maskWebdriverJS = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`

// Manager owns the playwright runtime and one browser, either launched
// fresh or attached to an already-running Chrome over CDP.
type Manager struct {
	pw        *playwright.Playwright
	browser   playwright.Browser
	context   playwright.BrowserContext
	connected bool // attached over CDP, do not close the user's browser
}

func NewManager(cfg config.BrowserConfig) (*Manager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	m := &Manager{pw: pw}
	if cfg.UseExistingBrowser {
		log.Printf("🔗 Connecting to existing browser at %s", cfg.CDPURL)
		browser, err := pw.Chromium.ConnectOverCDP(cfg.CDPURL)
		if err != nil {
			pw.Stop()
			return nil, fmt.Errorf("failed to connect over CDP (is Chrome running with --remote-debugging-port?): %w", err)
		}
		m.browser = browser
		m.connected = true
		return m, nil
	}

	log.Println("🚀 Launching browser")
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo)),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	m.browser = browser
	return m, nil
}

// NewPage creates a page in a context seeded from the saved session when
// one exists. The webdriver mask is installed before any navigation.
func (m *Manager) NewPage(cfg config.BrowserConfig) (playwright.Page, error) {
	ctx, err := m.newContext(cfg)
	if err != nil {
		return nil, err
	}
	m.context = ctx

	if err := ctx.AddInitScript(playwright.Script{Content: playwright.String(maskWebdriverJS)}); err != nil {
		return nil, fmt.Errorf("failed to add init script: %w", err)
	}

	page, err := ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(float64(cfg.TimeoutMs))
	return page, nil
}

func (m *Manager) newContext(cfg config.BrowserConfig) (playwright.BrowserContext, error) {
	// An attached browser already has the user's profile, reuse its
	// default context instead of opening an incognito one.
	if m.connected {
		if contexts := m.browser.Contexts(); len(contexts) > 0 {
			return contexts[0], nil
		}
	}

	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1440, Height: 900},
	}
	if cfg.PersistSession && sessionExists(cfg.SessionPath) {
		log.Printf("🍪 Restoring session from %s", cfg.SessionPath)
		opts.StorageStatePath = playwright.String(cfg.SessionPath)
	}

	ctx, err := m.browser.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	return ctx, nil
}

// SaveSession snapshots cookies and local storage so the next run skips
// the manual login.
func (m *Manager) SaveSession(cfg config.BrowserConfig) error {
	if !cfg.PersistSession || m.context == nil {
		return nil
	}
	if _, err := m.context.StorageState(cfg.SessionPath); err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}
	log.Printf("💾 Session saved to %s", cfg.SessionPath)
	return nil
}

func (m *Manager) Close() {
	if m.browser != nil && !m.connected {
		if err := m.browser.Close(); err != nil {
			log.Printf("⚠️ Failed to close browser: %v", err)
		}
	}
	if m.pw != nil {
		if err := m.pw.Stop(); err != nil {
			log.Printf("⚠️ Failed to stop playwright: %v", err)
		}
	}
}
