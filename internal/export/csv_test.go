package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-recruiter-automation/internal/config"
	"go-recruiter-automation/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []models.CandidateRecord {
	year := 2018
	exp := 7
	return []models.CandidateRecord{
		{
			FullName:          "Jane Doe",
			CurrentCompany:    "Acme Corp",
			CurrentTitle:      "Software Engineer",
			PublicProfileURL:  "https://www.linkedin.com/in/jane-doe",
			Location:          "NYC",
			Headline:          "Software Engineer at Acme Corp",
			BachelorsGradYear: &year,
			YearsExperience:   &exp,
		},
		{
			FullName:    "Sam Lee",
			Location:    "SF",
			NeedsReview: true,
			Review:      "no education",
		},
	}
}

func TestWriteCSVProducesBothSheets(t *testing.T) {
	dir := t.TempDir()
	cfg := config.OutputConfig{
		Dir: dir,
		CSV: config.CSVConfig{Filename: "results_{timestamp}.csv"},
	}

	path, err := WriteCSV(sampleRecords(), cfg)
	require.NoError(t, err)
	assert.NotContains(t, path, "{timestamp}")

	rows := readCSV(t, path)
	require.Len(t, rows, 3, "header plus two records")
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"Jane Doe", "Acme Corp", "Software Engineer",
		"https://www.linkedin.com/in/jane-doe", "NYC", "",
	}, rows[1])
	assert.Equal(t, "no education", rows[2][5])

	detailed := readCSV(t, detailedPathFor(path))
	require.Len(t, detailed, 3)
	assert.Equal(t, detailedHeader, detailed[0])
	assert.Equal(t, "2018", detailed[1][6])
	assert.Equal(t, "7", detailed[1][7])
	assert.Equal(t, "true", detailed[2][9])
}

func TestDetailedPathFor(t *testing.T) {
	assert.Equal(t, "out/results_detailed.csv", detailedPathFor("out/results.csv"))
	assert.Equal(t, "results_detailed", detailedPathFor("results"))
}

func TestWriteCSVEmptyRun(t *testing.T) {
	dir := t.TempDir()
	cfg := config.OutputConfig{
		Dir: dir,
		CSV: config.CSVConfig{Filename: "empty.csv"},
	}

	path, err := WriteCSV(nil, cfg)
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 1, "header only")
	assert.Equal(t, filepath.Join(dir, "empty.csv"), path)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return rows
}
