package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"go-recruiter-automation/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "out", "_checkpoint.jsonl"))
}

func TestStore_AppendAndLoadPreservesOrder(t *testing.T) {
	store := tempStore(t)

	names := []string{"Alice", "Bob", "Carol"}
	for _, n := range names {
		require.NoError(t, store.Append(models.CandidateRecord{
			FullName:         n,
			PublicProfileURL: "https://www.linkedin.com/in/" + n,
		}))
	}

	records, err := store.Load()
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, n := range names {
		assert.Equal(t, n, records[i].FullName)
	}
}

// The loader must NOT deduplicate; that is a consumer responsibility.
func TestStore_LoadKeepsDuplicates(t *testing.T) {
	store := tempStore(t)

	dup := models.CandidateRecord{
		FullName:         "Alice",
		PublicProfileURL: "https://www.linkedin.com/in/alice",
	}
	require.NoError(t, store.Append(dup))
	require.NoError(t, store.Append(dup))

	records, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, records, 2)

	seen := SeenURLs(records)
	assert.Equal(t, 1, seen.Cardinality())
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := tempStore(t)
	records, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, records)
}

func TestStore_LoadSkipsMalformedLine(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Append(models.CandidateRecord{FullName: "Alice"}))

	// Simulate a crash mid-write.
	f, err := os.OpenFile(store.Path(), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"full_name": "Bo`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	records, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestStore_Clear(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Append(models.CandidateRecord{FullName: "Alice"}))
	require.NoError(t, store.Clear())

	records, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, records)

	// Clearing an already-missing file is fine.
	assert.NoError(t, store.Clear())
}
