package export

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-recruiter-automation/internal/config"
	"go-recruiter-automation/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func newTestAirtable(t *testing.T, handler http.HandlerFunc) *Airtable {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	a := NewAirtable(config.AirtableConfig{
		BaseID:     "appTEST",
		TableName:  "Candidates",
		MergeField: "LinkedIn URL",
		APIKey:     "key-test",
	})
	a.client.SetBaseURL(server.URL)
	a.client.SetRetryCount(0)
	return a
}

func TestUpsertBatchesOfTen(t *testing.T) {
	var requests []upsertRequest
	a := newTestAirtable(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/appTEST/Candidates", r.URL.Path)
		assert.Equal(t, "Bearer key-test", r.Header.Get("Authorization"))

		var req upsertRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		resp := upsertResponse{}
		for i := range req.Records {
			resp.Records = append(resp.Records, struct {
				ID string `json:"id"`
			}{ID: fmt.Sprintf("rec%d", i)})
		}
		writeJSON(w, resp)
	})

	var records []models.CandidateRecord
	for i := 0; i < 23; i++ {
		records = append(records, models.CandidateRecord{
			FullName:         fmt.Sprintf("Candidate %d", i),
			PublicProfileURL: fmt.Sprintf("https://www.linkedin.com/in/candidate-%d", i),
		})
	}

	pushed, err := a.Upsert(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 23, pushed)

	require.Len(t, requests, 3, "23 records split into 10+10+3")
	assert.Len(t, requests[0].Records, 10)
	assert.Len(t, requests[2].Records, 3)
	assert.Equal(t, []string{"LinkedIn URL"}, requests[0].PerformUpsert.FieldsToMergeOn)
}

func TestUpsertMapsFieldsAndOmitsEmpty(t *testing.T) {
	var got upsertRequest
	a := newTestAirtable(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, upsertResponse{Records: []struct {
			ID string `json:"id"`
		}{{ID: "rec0"}}})
	})

	year := 2018
	_, err := a.Upsert(context.Background(), []models.CandidateRecord{{
		FullName:          "Jane Doe",
		CurrentTitle:      "Software Engineer",
		PublicProfileURL:  "https://www.linkedin.com/in/jane-doe",
		BachelorsGradYear: &year,
	}})
	require.NoError(t, err)

	require.Len(t, got.Records, 1)
	fields := got.Records[0].Fields
	assert.Equal(t, "Jane Doe", fields["Name"])
	assert.Equal(t, "Software Engineer", fields["Title"])
	assert.Equal(t, float64(2018), fields["Grad Year"])
	assert.NotContains(t, fields, "Company", "empty fields stay out of the upsert")
	assert.NotContains(t, fields, "Review")
}

func TestUpsertContinuesPastFailedBatch(t *testing.T) {
	var calls int
	a := newTestAirtable(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, `{"error":"INVALID_REQUEST"}`, http.StatusUnprocessableEntity)
			return
		}
		var req upsertRequest
		json.NewDecoder(r.Body).Decode(&req)
		resp := upsertResponse{}
		for range req.Records {
			resp.Records = append(resp.Records, struct {
				ID string `json:"id"`
			}{ID: "rec"})
		}
		writeJSON(w, resp)
	})

	var records []models.CandidateRecord
	for i := 0; i < 15; i++ {
		records = append(records, models.CandidateRecord{
			FullName:         fmt.Sprintf("Candidate %d", i),
			PublicProfileURL: fmt.Sprintf("https://www.linkedin.com/in/c%d", i),
		})
	}

	pushed, err := a.Upsert(context.Background(), records)
	assert.Error(t, err, "first batch failure surfaces after all batches ran")
	assert.Equal(t, 5, pushed, "second batch still lands")
	assert.Equal(t, 2, calls)
}

func TestFieldMapOverride(t *testing.T) {
	a := NewAirtable(config.AirtableConfig{
		FieldMap: map[string]string{"full_name": "Candidate Name"},
	})
	fields := a.fieldsFor(models.CandidateRecord{FullName: "Jane Doe"})
	assert.Equal(t, "Jane Doe", fields["Candidate Name"])
	assert.NotContains(t, fields, "Name")
}
