// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Search   SearchConfig   `yaml:"search"`
	Browser  BrowserConfig  `yaml:"browser"`
	Filters  FilterConfig   `yaml:"filters"`
	Output   OutputConfig   `yaml:"output"`
	Telegram TelegramConfig `yaml:"telegram"`
}

type SearchConfig struct {
	SavedSearchURL string `yaml:"saved_search_url"`
	StartPage      int    `yaml:"start_page"`
	MaxPages       int    `yaml:"max_pages"`
	WhitelistPath  string `yaml:"title_whitelist_path"`
}

type BrowserConfig struct {
	UseExistingBrowser bool   `yaml:"use_existing_browser"`
	CDPURL             string `yaml:"cdp_url"`
	Headless           bool   `yaml:"headless"`
	SlowMo             int    `yaml:"slow_mo"`
	DelayMinMs         int    `yaml:"delay_min_ms"`
	DelayMaxMs         int    `yaml:"delay_max_ms"`
	TimeoutMs          int    `yaml:"timeout_ms"`
	PersistSession     bool   `yaml:"persist_session"`
	SessionPath        string `yaml:"session_path"`
}

type FilterConfig struct {
	BachelorsGradYearMin int    `yaml:"bachelors_grad_year_min"`
	BachelorsGradYearMax int    `yaml:"bachelors_grad_year_max"`
	NoBachelorsAction    string `yaml:"no_bachelors_action"` // skip | include | flag
}

type OutputConfig struct {
	Dir            string         `yaml:"dir"`
	CheckpointFile string         `yaml:"checkpoint_file"`
	CSV            CSVConfig      `yaml:"csv"`
	Airtable       AirtableConfig `yaml:"airtable"`
	Postgres       PostgresConfig `yaml:"postgres"`
}

type CSVConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Filename string `yaml:"filename"`
}

type AirtableConfig struct {
	Enabled    bool              `yaml:"enabled"`
	BaseID     string            `yaml:"base_id"`
	TableName  string            `yaml:"table_name"`
	MergeField string            `yaml:"merge_field"`
	FieldMap   map[string]string `yaml:"field_map"`
	APIKey     string            `yaml:"-"` // AIRTABLE_API_KEY
}

type PostgresConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"-"` // DATABASE_URL
}

type TelegramConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"-"` // TELEGRAM_BOT_TOKEN
	ChatID  int64  `yaml:"-"` // TELEGRAM_CHAT_ID
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("⚠️ Could not read %s: %v (using defaults)", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	// Secrets come from the environment, never from YAML.
	cfg.Output.Airtable.APIKey = os.Getenv("AIRTABLE_API_KEY")
	cfg.Output.Postgres.URL = os.Getenv("DATABASE_URL")
	cfg.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Telegram.ChatID = id
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Search.StartPage == 0 {
		c.Search.StartPage = 1
	}
	if c.Search.MaxPages == 0 {
		c.Search.MaxPages = 10
	}
	if c.Search.WhitelistPath == "" {
		c.Search.WhitelistPath = "job_titles_whitelist.txt"
	}
	if c.Browser.CDPURL == "" {
		c.Browser.CDPURL = "http://localhost:9222"
	}
	if c.Browser.SlowMo == 0 {
		c.Browser.SlowMo = 600
	}
	if c.Browser.DelayMinMs == 0 {
		c.Browser.DelayMinMs = 2000
	}
	if c.Browser.DelayMaxMs == 0 {
		c.Browser.DelayMaxMs = 5000
	}
	if c.Browser.TimeoutMs == 0 {
		c.Browser.TimeoutMs = 30000
	}
	if c.Browser.SessionPath == "" {
		c.Browser.SessionPath = "cookies/linkedin_session.json"
	}
	if c.Filters.BachelorsGradYearMin == 0 {
		c.Filters.BachelorsGradYearMin = 2010
	}
	if c.Filters.BachelorsGradYearMax == 0 {
		c.Filters.BachelorsGradYearMax = 2024
	}
	if c.Filters.NoBachelorsAction == "" {
		c.Filters.NoBachelorsAction = "flag"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
	if c.Output.CheckpointFile == "" {
		c.Output.CheckpointFile = filepath.Join(c.Output.Dir, "_checkpoint.jsonl")
	}
	if c.Output.CSV.Filename == "" {
		c.Output.CSV.Filename = "recruiter_results_{timestamp}.csv"
	}
	if c.Output.Airtable.MergeField == "" {
		c.Output.Airtable.MergeField = "LinkedIn URL"
	}
}

// Validate fails fast, before any browser interaction.
func (c *Config) Validate() error {
	if c.Search.SavedSearchURL == "" {
		return fmt.Errorf("search.saved_search_url is required")
	}
	if !strings.Contains(c.Search.SavedSearchURL, "linkedin.com") {
		return fmt.Errorf("search.saved_search_url does not look like a LinkedIn search URL")
	}
	if c.Search.StartPage < 1 {
		return fmt.Errorf("search.start_page must be >= 1")
	}
	if c.Search.MaxPages < c.Search.StartPage {
		return fmt.Errorf("search.max_pages must be >= start_page")
	}
	if c.Browser.DelayMaxMs < c.Browser.DelayMinMs {
		return fmt.Errorf("browser.delay_max_ms must be >= delay_min_ms")
	}
	if c.Output.Airtable.Enabled {
		if c.Output.Airtable.APIKey == "" {
			return fmt.Errorf("AIRTABLE_API_KEY is required when the Airtable sink is enabled")
		}
		if c.Output.Airtable.BaseID == "" || c.Output.Airtable.TableName == "" {
			return fmt.Errorf("output.airtable.base_id and table_name are required")
		}
	}
	if c.Output.Postgres.Enabled && c.Output.Postgres.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when the Postgres sink is enabled")
	}
	if c.Telegram.Enabled {
		if c.Telegram.Token == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN is required when telegram is enabled")
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("TELEGRAM_CHAT_ID is required when telegram is enabled")
		}
	}
	switch c.Filters.NoBachelorsAction {
	case "skip", "include", "flag":
	default:
		return fmt.Errorf("filters.no_bachelors_action must be skip, include or flag")
	}
	return nil
}
