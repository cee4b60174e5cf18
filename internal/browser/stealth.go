package browser

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay waits for a random duration between min and max milliseconds
func RandomDelay(min, max int) {
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	duration := time.Duration(rand.Intn(max-min)+min) * time.Millisecond
	time.Sleep(duration)
}

// HumanPacer spaces out UI actions with randomized delays so traversal
// does not tick like a metronome.
type HumanPacer struct {
	MinMs int
	MaxMs int
}

// Pause waits the full configured range, used between panels and pages.
func (p HumanPacer) Pause() {
	RandomDelay(p.MinMs, p.MaxMs)
}

// Brief waits a quarter of the configured range, used between small
// in-panel interactions.
func (p HumanPacer) Brief() {
	RandomDelay(p.MinMs/4, p.MaxMs/4)
}

// StealthPacer layers occasional mouse movement and panel scrolling on top
// of the randomized delays. Long traversals with zero pointer activity are
// an idle-detection tell.
type StealthPacer struct {
	HumanPacer
	page playwright.Page
}

func NewStealthPacer(page playwright.Page, minMs, maxMs int) *StealthPacer {
	return &StealthPacer{
		HumanPacer: HumanPacer{MinMs: minMs, MaxMs: maxMs},
		page:       page,
	}
}

func (p *StealthPacer) Pause() {
	if p.page != nil {
		if rand.Intn(4) == 0 {
			MouseJiggle(p.page)
		}
		if rand.Intn(6) == 0 {
			HumanScroll(p.page)
		}
	}
	p.HumanPacer.Pause()
}

// MouseJiggle simulates random mouse movements to prevent idle detection
func MouseJiggle(page playwright.Page) {
	x := float64(rand.Intn(800) + 100)
	y := float64(rand.Intn(600) + 100)
	page.Mouse().Move(x, y)
	RandomDelay(100, 300)
}

// HumanScroll simulates human scrolling inside the detail panel
func HumanScroll(page playwright.Page) {
	page.Mouse().Wheel(0, 500)
	RandomDelay(500, 1000)

	// Scroll up a tiny bit (human-like correction)
	page.Mouse().Wheel(0, -200)
	RandomDelay(300, 600)
}
