package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	require.Equal(t, "learn-mongodb-in-2025", Slugify("Learn MongoDB in 2025!!"))
	require.Equal(t, "hello-world", Slugify("  Hello   World  "))
	require.Equal(t, "a-b-c", Slugify("a - b -- c"))
	require.Equal(t, "", Slugify("!!!"))
}

// TestSlugifyIdempotent verifies slugify(slugify(s)) == slugify(s).
func TestSlugifyIdempotent(t *testing.T) {
	for _, s := range []string{
		"Learn MongoDB in 2025!!",
		"  Ünïcode & Symbols #1  ",
		"already-a-slug",
		"--- leading and trailing ---",
		"",
	} {
		once := Slugify(s)
		require.Equal(t, once, Slugify(once), "input %q", s)
	}
}

func TestComputeReadTime(t *testing.T) {
	require.Equal(t, 1, ComputeReadTime(""))
	require.Equal(t, 1, ComputeReadTime("just a few words"))
	require.Equal(t, 1, ComputeReadTime(strings.Repeat("word ", 200)))
	require.Equal(t, 2, ComputeReadTime(strings.Repeat("word ", 201)))
	// a 450-word body reads in 3 minutes
	require.Equal(t, 3, ComputeReadTime(strings.Repeat("word ", 450)))
}

func TestDeriveExcerpt(t *testing.T) {
	excerpt := DeriveExcerpt("<p>short body</p>")
	require.Equal(t, "short body...", excerpt)

	long := strings.Repeat("a", 300)
	excerpt = DeriveExcerpt("<div>" + long + "</div>")
	require.Len(t, excerpt, 153)
	require.True(t, strings.HasSuffix(excerpt, "..."))
	require.NotContains(t, excerpt, "<")
}
