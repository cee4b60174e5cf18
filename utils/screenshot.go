package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-recruiter-automation/internal/scrape"
)

// ScreenShotDebugger captures full-page screenshots when extraction hits
// something unexpected.
type ScreenShotDebugger struct {
	outputDir string
}

func NewScreenShotDebugger() *ScreenShotDebugger {
	dir := filepath.Join(".", "logs", "screenshots")
	os.MkdirAll(dir, 0755)
	return &ScreenShotDebugger{
		outputDir: dir,
	}
}

func (s *ScreenShotDebugger) Capture(d scrape.Driver, label string) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", label, timestamp)
	path := filepath.Join(s.outputDir, filename)
	log.Printf("📸 Capturing debug screenshot: %s", label)

	if err := d.Screenshot(path); err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return
	}
	log.Printf("   Screenshot saved: %s", path)
}
