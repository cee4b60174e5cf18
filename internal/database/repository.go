package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-recruiter-automation/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// IMPORTANT: Supabase connection pooler (PgBouncer in Transaction mode)
	// does not support prepared statements easily. We MUST disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// SaveCandidate inserts a candidate or updates the existing row keyed by the
// public profile URL. COALESCE keeps previously extracted values when a rerun
// could not resolve a field, so a partial re-extraction never erases data.
func (r *Repository) SaveCandidate(ctx context.Context, c *models.CandidateRecord) error {
	query := `
		INSERT INTO candidates (full_name, current_company, current_title, linkedin_public_url,
			location, headline, bachelors_grad_year, years_experience, recruiter_url, needs_review, review)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (linkedin_public_url)
		DO UPDATE SET
			full_name = EXCLUDED.full_name,
			current_company = COALESCE(NULLIF(EXCLUDED.current_company, ''), candidates.current_company),
			current_title = COALESCE(NULLIF(EXCLUDED.current_title, ''), candidates.current_title),
			location = COALESCE(NULLIF(EXCLUDED.location, ''), candidates.location),
			headline = COALESCE(NULLIF(EXCLUDED.headline, ''), candidates.headline),
			bachelors_grad_year = COALESCE(EXCLUDED.bachelors_grad_year, candidates.bachelors_grad_year),
			years_experience = COALESCE(EXCLUDED.years_experience, candidates.years_experience),
			recruiter_url = COALESCE(NULLIF(EXCLUDED.recruiter_url, ''), candidates.recruiter_url),
			needs_review = EXCLUDED.needs_review,
			review = EXCLUDED.review,
			updated_at = now()`

	_, err := r.db.Exec(ctx, query,
		c.FullName, c.CurrentCompany, c.CurrentTitle, c.PublicProfileURL,
		c.Location, c.Headline, c.BachelorsGradYear, c.YearsExperience,
		c.RecruiterURL, c.NeedsReview, c.Review)
	if err != nil {
		return fmt.Errorf("failed to save candidate: %w", err)
	}
	return nil
}

// SaveAll upserts every record, counting failures instead of aborting.
func (r *Repository) SaveAll(ctx context.Context, records []models.CandidateRecord) (int, error) {
	var saved int
	var firstErr error
	for i := range records {
		if records[i].PublicProfileURL == "" {
			// No stable key to upsert on.
			continue
		}
		if err := r.SaveCandidate(ctx, &records[i]); err != nil {
			log.Printf("⚠️ Failed to save %s: %v", records[i].FullName, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		saved++
	}
	log.Printf("🗄️ Postgres: saved %d/%d candidates", saved, len(records))
	return saved, firstErr
}

// CountCandidates returns the table size, used by the run summary.
func (r *Repository) CountCandidates(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM candidates").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return count, nil
}
