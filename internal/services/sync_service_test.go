package services

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Plain string unchanged",
			input:    "a normal description",
			expected: "a normal description",
		},
		{
			name:     "Control characters stripped",
			input:    "bad\x00bytes\x07here",
			expected: "badbyteshere",
		},
		{
			name:     "Newlines and tabs become spaces",
			input:    "line one\nline two\tend",
			expected: "line one line two end",
		},
		{
			name:     "Surrounding whitespace trimmed",
			input:    "  padded  ",
			expected: "padded",
		},
		{
			name:     "Empty string stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sanitizeString(tc.input, maxStoredStringLength))
		})
	}
}

func TestSanitizeStringLengthCap(t *testing.T) {
	long := strings.Repeat("x", maxStoredStringLength+500)
	assert.Len(t, sanitizeString(long, maxStoredStringLength), maxStoredStringLength)
}

func TestSanitizeStringKeepsRunesWhole(t *testing.T) {
	// 999 ASCII bytes followed by a two-byte rune straddling the cap
	input := strings.Repeat("x", maxStoredStringLength-1) + "é"

	result := sanitizeString(input, maxStoredStringLength)

	assert.True(t, utf8.ValidString(result), "truncation must not split a rune")
	assert.Len(t, result, maxStoredStringLength-1)
}

func TestSanitizeOptional(t *testing.T) {
	assert.Nil(t, sanitizeOptional(nil))

	empty := "   "
	assert.Nil(t, sanitizeOptional(&empty), "whitespace-only values collapse to nil")

	value := "  kept  "
	result := sanitizeOptional(&value)
	assert.NotNil(t, result)
	assert.Equal(t, "kept", *result)
}

func TestRateLimitCache(t *testing.T) {
	cache := NewRateLimitCache()

	assert.False(t, cache.IsBlocked("github:user-1"))

	cache.Block("github:user-1", time.Now().Add(1*time.Hour))
	assert.True(t, cache.IsBlocked("github:user-1"))
	assert.False(t, cache.IsBlocked("github:user-2"))

	// Expired entries are evicted on read
	cache.Block("github:user-3", time.Now().Add(-1*time.Minute))
	assert.False(t, cache.IsBlocked("github:user-3"))
}

func TestBuildProjectScoresFreshSnapshot(t *testing.T) {
	service := &SyncService{}
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	pushed := now.AddDate(0, 0, -2)

	fetched := &FetchedRepository{
		GithubID:     42,
		Name:         "sample",
		URL:          "https://github.com/u/sample",
		Description:  strPtr("a sufficiently long description"),
		Homepage:     strPtr("https://sample.dev"),
		Language:     strPtr("Go"),
		Topics:       []string{"cli"},
		Stars:        50,
		Forks:        10,
		PushedAt:     &pushed,
		ReadmeLength: 1200,
	}

	project := service.buildProject("user-1", fetched, now)

	assert.Equal(t, "sample", project.Name)
	assert.Equal(t, int64(42), project.GithubID)
	assert.Equal(t, 43, project.ImpactScore) // log2(71)*3 + 15 + 10
	assert.NoError(t, project.Validate())
}
