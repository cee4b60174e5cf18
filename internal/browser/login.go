package browser

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

const (
	talentHomeURL    = "https://www.linkedin.com/talent/home"
	recruiterHomeURL = "https://www.linkedin.com/recruiter/home"

	loginPollInterval = 5 * time.Second
)

// EnsureLoggedIn navigates to Recruiter and, if the page bounces to a login
// wall, waits up to maxWait for the user to sign in by hand. Automating the
// login itself trips the checkpoint flow, so it stays manual.
func EnsureLoggedIn(page playwright.Page, maxWait time.Duration) error {
	if _, err := page.Goto(talentHomeURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		log.Printf("⚠️ Talent home failed, trying legacy Recruiter URL: %v", err)
		if _, err := page.Goto(recruiterHomeURL, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		}); err != nil {
			return fmt.Errorf("failed to open Recruiter: %w", err)
		}
	}
	time.Sleep(2 * time.Second)

	if !onLoginWall(page.URL()) {
		log.Println("✅ Already logged in")
		return nil
	}

	log.Println("🔐 Login required. Sign in manually in the browser window...")
	deadline := time.Now().Add(maxWait)
	for time.Now().Before(deadline) {
		time.Sleep(loginPollInterval)
		if !onLoginWall(page.URL()) {
			log.Println("✅ Login detected")
			return nil
		}
	}
	return fmt.Errorf("login not completed within %s", maxWait)
}

func onLoginWall(url string) bool {
	for _, marker := range []string{"/login", "/uas/", "/checkpoint"} {
		if strings.Contains(url, marker) {
			return true
		}
	}
	return false
}
