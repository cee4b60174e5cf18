package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go-recruiter-automation/internal/browser"
	"go-recruiter-automation/internal/checkpoint"
	"go-recruiter-automation/internal/classify"
	"go-recruiter-automation/internal/config"
	"go-recruiter-automation/internal/database"
	"go-recruiter-automation/internal/export"
	"go-recruiter-automation/internal/filter"
	"go-recruiter-automation/internal/models"
	"go-recruiter-automation/internal/scrape"
	"go-recruiter-automation/internal/telegram"
	"go-recruiter-automation/utils"
)

const loginWait = 5 * time.Minute

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	searchURL := flag.String("url", "", "saved search URL (overrides config)")
	startPage := flag.Int("start", 0, "page to start from (overrides config)")
	maxPages := flag.Int("pages", 0, "last page number to process, inclusive (overrides config)")
	resume := flag.Bool("resume", false, "keep the existing checkpoint and merge into it")
	flag.Parse()

	started := time.Now()

	//load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if *searchURL != "" {
		cfg.Search.SavedSearchURL = *searchURL
	}
	if *startPage > 0 {
		cfg.Search.StartPage = *startPage
	}
	if *maxPages > 0 {
		cfg.Search.MaxPages = *maxPages
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid config: %v", err)
	}
	log.Printf("🔧 Config loaded. Pages %d-%d", cfg.Search.StartPage, cfg.Search.MaxPages)

	//init telegram bot
	var bot *telegram.Bot
	if cfg.Telegram.Enabled {
		bot, err = telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Fatalf("❌ Failed to init Telegram Bot: %v", err)
		}
		log.Println("🤖 Telegram Bot initialized.")
	}

	//load title whitelist
	whitelist, err := classify.LoadTitleWhitelist(cfg.Search.WhitelistPath)
	if err != nil {
		log.Fatalf("❌ Failed to load title whitelist: %v", err)
	}
	if whitelist == nil {
		log.Println("📋 No title whitelist, title filtering disabled")
	}

	//prepare checkpoint
	store := checkpoint.NewStore(cfg.Output.CheckpointFile)
	var previous []models.CandidateRecord
	if *resume {
		previous, err = store.Load()
		if err != nil {
			log.Fatalf("❌ Failed to load checkpoint: %v", err)
		}
		log.Printf("🔁 Resuming with %d previously extracted candidates", len(previous))
	} else {
		if err := store.Clear(); err != nil {
			log.Fatalf("❌ Failed to clear checkpoint: %v", err)
		}
	}

	ctx := context.Background()

	log.Println("🚀 Starting Recruiter scrape...")

	//init browser
	manager, err := browser.NewManager(cfg.Browser)
	if err != nil {
		fatal(bot, "Failed to init browser", err)
	}
	defer manager.Close()

	page, err := manager.NewPage(cfg.Browser)
	if err != nil {
		fatal(bot, "Failed to create page", err)
	}
	if err := browser.EnsureLoggedIn(page, loginWait); err != nil {
		fatal(bot, "Login failed", err)
	}
	if err := manager.SaveSession(cfg.Browser); err != nil {
		log.Printf("⚠️ Could not persist session: %v", err)
	}
	log.Println("✅ Browser initialized successfully!")

	if bot != nil {
		msg := fmt.Sprintf("Recruiter scrape started, pages %d-%d", cfg.Search.StartPage, cfg.Search.MaxPages)
		if err := bot.SendStatus(msg); err != nil {
			log.Printf("⚠️ Failed to send Telegram status: %v", err)
		}
	}

	//wire the engine
	pacer := browser.NewStealthPacer(page, cfg.Browser.DelayMinMs, cfg.Browser.DelayMaxMs)
	extractor := &scrape.Extractor{
		Whitelist:   whitelist,
		MinGradYear: cfg.Filters.BachelorsGradYearMin,
		MaxGradYear: cfg.Filters.BachelorsGradYearMax,
		Year:        time.Now().Year(),
		Pacer:       pacer,
	}
	traverser := &scrape.Traverser{
		Extractor:  extractor,
		Checkpoint: store,
		Pacer:      pacer,
		Debug:      utils.NewScreenShotDebugger(),
	}
	search := &scrape.Search{Traverser: traverser, Pacer: pacer}

	driver := scrape.NewPageDriver(page, float64(cfg.Browser.TimeoutMs))
	result, err := search.Run(driver, cfg.Search)
	if err != nil {
		// The checkpoint still holds everything extracted before the failure.
		log.Printf("❌ Run failed: %v", err)
		recovered, loadErr := store.Load()
		if loadErr != nil || len(recovered) == 0 {
			fatal(bot, "Run failed with nothing recoverable", err)
		}
		log.Printf("💾 Recovered %d candidates from checkpoint", len(recovered))
		result = &scrape.RunResult{Records: recovered, LastPage: cfg.Search.StartPage}
	}

	//merge resumed records, newest extraction wins on duplicate URLs
	records := mergeRecords(previous, result.Records)
	extracted := len(records)
	log.Printf("\n📦 Total candidates extracted: %d (last page %d)", extracted, result.LastPage)

	//grad-year filter pass
	log.Println("🔍 Applying grad-year filter...")
	records = filter.Apply(records, cfg.Filters)

	flagged := 0
	for _, r := range records {
		if r.NeedsReview {
			flagged++
		}
	}

	//sinks
	var csvPath string
	if cfg.Output.CSV.Enabled {
		csvPath, err = export.WriteCSV(records, cfg.Output)
		if err != nil {
			fatal(bot, "CSV export failed", err)
		}
	}
	if cfg.Output.Airtable.Enabled {
		airtable := export.NewAirtable(cfg.Output.Airtable)
		if _, err := airtable.Upsert(ctx, records); err != nil {
			log.Printf("⚠️ Airtable upsert incomplete: %v", err)
		}
	}
	if cfg.Output.Postgres.Enabled {
		repo, err := database.ConnectDB(ctx, cfg.Output.Postgres.URL)
		if err != nil {
			log.Printf("⚠️ Postgres unavailable, skipping sink: %v", err)
		} else {
			defer repo.Close()
			if _, err := repo.SaveAll(ctx, records); err != nil {
				log.Printf("⚠️ Postgres save incomplete: %v", err)
			}
		}
	}

	if result.Resume != nil {
		log.Println("============================================")
		log.Printf("⚠️ Run ended on a tab crash.")
		log.Printf("   Restart with: -resume -start %d", result.Resume.Page)
		log.Println("============================================")
	}

	if bot != nil {
		err := bot.SendSummary(telegram.RunSummary{
			Extracted:  extracted,
			Kept:       len(records),
			Flagged:    flagged,
			LastPage:   result.LastPage,
			CSVPath:    csvPath,
			Resume:     result.Resume,
			RunMinutes: time.Since(started).Minutes(),
		})
		if err != nil {
			log.Printf("⚠️ Failed to send Telegram summary: %v", err)
		}
	}

	log.Printf("🏁 Done in %.1f minutes. %d candidates kept.", time.Since(started).Minutes(), len(records))
}

// mergeRecords combines a resumed checkpoint with freshly extracted records.
// Later extractions overwrite earlier ones with the same dedup key.
func mergeRecords(previous, fresh []models.CandidateRecord) []models.CandidateRecord {
	seen := checkpoint.SeenURLs(fresh)
	merged := make([]models.CandidateRecord, 0, len(previous)+len(fresh))
	for _, r := range previous {
		if key := r.DedupKey(); key != "" && seen.Contains(key) {
			continue
		}
		merged = append(merged, r)
	}
	return append(merged, fresh...)
}

func fatal(bot *telegram.Bot, msg string, err error) {
	if bot != nil {
		_ = bot.SendError(err)
	}
	log.Fatalf("❌ %s: %v", msg, err)
}
