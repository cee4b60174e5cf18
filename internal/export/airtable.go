// Airtable sink. Batched upserts merge into existing rows on the configured
// key field, so reruns update candidates instead of duplicating them.

package export

import (
	"context"
	"fmt"
	"log"

	"go-recruiter-automation/internal/config"
	"go-recruiter-automation/internal/models"

	"github.com/go-resty/resty/v2"
)

const (
	airtableBaseURL   = "https://api.airtable.com/v0"
	airtableBatchSize = 10
)

// Default Airtable column per record field. The field_map config overrides
// individual entries to match an existing base's schema.
var defaultFieldMap = map[string]string{
	"full_name":           "Name",
	"current_company":     "Company",
	"current_title":       "Title",
	"linkedin_public_url": "LinkedIn URL",
	"location":            "Location",
	"bachelors_grad_year": "Grad Year",
	"years_experience":    "Years Experience",
	"review":              "Review",
}

type airtableRecord struct {
	Fields map[string]any `json:"fields"`
}

type upsertRequest struct {
	PerformUpsert struct {
		FieldsToMergeOn []string `json:"fieldsToMergeOn"`
	} `json:"performUpsert"`
	Records  []airtableRecord `json:"records"`
	Typecast bool             `json:"typecast"`
}

type upsertResponse struct {
	Records []struct {
		ID string `json:"id"`
	} `json:"records"`
}

// Airtable pushes candidate records into one table of one base.
type Airtable struct {
	client *resty.Client
	cfg    config.AirtableConfig
	fields map[string]string
}

func NewAirtable(cfg config.AirtableConfig) *Airtable {
	fields := make(map[string]string, len(defaultFieldMap))
	for k, v := range defaultFieldMap {
		fields[k] = v
	}
	for k, v := range cfg.FieldMap {
		fields[k] = v
	}

	client := resty.New().
		SetBaseURL(airtableBaseURL).
		SetAuthToken(cfg.APIKey).
		SetRetryCount(2)

	return &Airtable{client: client, cfg: cfg, fields: fields}
}

// Upsert pushes all records in batches. A failed batch is logged and skipped
// so one bad row never sinks the whole export; the first error is returned
// after every batch has been attempted.
func (a *Airtable) Upsert(ctx context.Context, records []models.CandidateRecord) (int, error) {
	var pushed int
	var firstErr error

	for start := 0; start < len(records); start += airtableBatchSize {
		end := start + airtableBatchSize
		if end > len(records) {
			end = len(records)
		}
		n, err := a.upsertBatch(ctx, records[start:end])
		pushed += n
		if err != nil {
			log.Printf("⚠️ Airtable batch %d-%d failed: %v", start, end, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	log.Printf("☁️ Airtable: upserted %d/%d records", pushed, len(records))
	return pushed, firstErr
}

func (a *Airtable) upsertBatch(ctx context.Context, batch []models.CandidateRecord) (int, error) {
	req := upsertRequest{Typecast: true}
	req.PerformUpsert.FieldsToMergeOn = []string{a.fields["linkedin_public_url"]}
	if a.cfg.MergeField != "" {
		req.PerformUpsert.FieldsToMergeOn = []string{a.cfg.MergeField}
	}
	for _, r := range batch {
		req.Records = append(req.Records, airtableRecord{Fields: a.fieldsFor(r)})
	}

	var result upsertResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Patch(fmt.Sprintf("/%s/%s", a.cfg.BaseID, a.cfg.TableName))
	if err != nil {
		return 0, fmt.Errorf("airtable request failed: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("airtable returned %s: %s", resp.Status(), resp.String())
	}
	return len(result.Records), nil
}

// fieldsFor maps a record into the table's columns. Unset optional fields
// are omitted so the upsert merges rather than blanking existing cells.
func (a *Airtable) fieldsFor(r models.CandidateRecord) map[string]any {
	fields := map[string]any{
		a.fields["full_name"]:           r.FullName,
		a.fields["linkedin_public_url"]: r.PublicProfileURL,
	}
	if r.CurrentCompany != "" {
		fields[a.fields["current_company"]] = r.CurrentCompany
	}
	if r.CurrentTitle != "" {
		fields[a.fields["current_title"]] = r.CurrentTitle
	}
	if r.Location != "" {
		fields[a.fields["location"]] = r.Location
	}
	if r.BachelorsGradYear != nil {
		fields[a.fields["bachelors_grad_year"]] = *r.BachelorsGradYear
	}
	if r.YearsExperience != nil {
		fields[a.fields["years_experience"]] = *r.YearsExperience
	}
	if r.Review != "" {
		fields[a.fields["review"]] = r.Review
	}
	return fields
}
