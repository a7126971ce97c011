package deptscrape_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/mhaseeb/deptscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Cardiology", "cardiology"},
		{"spaces become hyphens", "Heart Health Centre", "heart-health-centre"},
		{"strips punctuation", "Ear, Nose & Throat (ENT)", "ear-nose-throat-ent"},
		{"collapses separator runs", "a  -  b__c", "a-b-c"},
		{"trims leading and trailing separators", " - Oncology - ", "oncology"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, deptscrape.Slugify(tt.in))
		})
	}

	t.Run("caps length at 90", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("cardiology ", 20)
		slug := deptscrape.Slugify(long)
		assert.LessOrEqual(t, len(slug), 90)
		assert.False(t, strings.HasSuffix(slug, "-"))
	})

	t.Run("empty title gets a placeholder", func(t *testing.T) {
		t.Parallel()
		slug := deptscrape.Slugify("!!!")
		assert.Regexp(t, `^service-\d+$`, slug)
	})
}

func TestSlugCandidates(t *testing.T) {
	t.Parallel()

	t.Run("base slug comes first", func(t *testing.T) {
		t.Parallel()
		candidates := deptscrape.SlugCandidates("Cardiology", 3)
		require.Len(t, candidates, 3)
		assert.Equal(t, "cardiology", candidates[0])
	})

	t.Run("middle candidates carry random suffixes", func(t *testing.T) {
		t.Parallel()
		candidates := deptscrape.SlugCandidates("Cardiology", 4)
		require.Len(t, candidates, 4)
		suffixed := regexp.MustCompile(`^cardiology-\d{4}$`)
		for _, c := range candidates[1 : len(candidates)-1] {
			assert.Regexp(t, suffixed, c)
		}
	})

	t.Run("last candidate carries a timestamp suffix", func(t *testing.T) {
		t.Parallel()
		candidates := deptscrape.SlugCandidates("Cardiology", 3)
		require.Len(t, candidates, 3)
		assert.Regexp(t, `^cardiology-\d{5,}$`, candidates[len(candidates)-1])
	})

	t.Run("single candidate is just the base", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"cardiology"}, deptscrape.SlugCandidates("Cardiology", 1))
	})

	t.Run("zero candidates", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, deptscrape.SlugCandidates("Cardiology", 0))
	})
}
