package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchTitle_BlacklistOverridesWhitelist(t *testing.T) {
	wl := NewTitleWhitelist([]string{"Software Engineer"})

	passes, note := MatchTitle("Director of Software Engineering", wl)
	assert.False(t, passes, "blacklist must reject even when a whitelist phrase matches")
	assert.Empty(t, note)

	passes, _ = MatchTitle("VP, Software Engineer", wl)
	assert.False(t, passes)
}

func TestMatchTitle_NilWhitelistPassesEverything(t *testing.T) {
	passes, note := MatchTitle("Underwater Basket Weaver", nil)
	assert.True(t, passes)
	assert.Empty(t, note)

	// Blacklist still applies without a whitelist.
	passes, _ = MatchTitle("Developer Advocate", nil)
	assert.False(t, passes)
}

func TestMatchTitle_WhitelistSubstring(t *testing.T) {
	wl := NewTitleWhitelist([]string{"Software Engineer (Snowflake alum)", "Data Scientist"})

	// Parenthetical suffix stripped, so the phrase matches a senior title too.
	passes, note := MatchTitle("Senior Software Engineer", wl)
	assert.True(t, passes)
	assert.Empty(t, note)

	passes, _ = MatchTitle("Product Manager", wl)
	assert.False(t, passes)
}

func TestMatchTitle_SoftReviewFlag(t *testing.T) {
	wl := NewTitleWhitelist([]string{"head of product"})

	passes, note := MatchTitle("Head of Product", wl)
	assert.True(t, passes)
	assert.Contains(t, note, "head of")
}

func TestNewTitleWhitelist_Normalization(t *testing.T) {
	wl := NewTitleWhitelist([]string{
		"Software Engineer (Snowflake alum)",
		"Software Engineer [2021-2024]",
		"  ",
		"software engineer",
	})
	// All three variants collapse into one phrase.
	assert.Equal(t, 1, wl.Len())
}
