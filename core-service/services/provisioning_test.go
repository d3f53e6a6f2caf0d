package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme Corp":         "acme-corp",
		"  Acme   Corp  ":   "acme-corp",
		"Müller & Söhne":    "m-ller-s-hne",
		"ACME":              "acme",
		"---":               "org",
		"":                  "org",
		"Already-Slugged-1": "already-slugged-1",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestUniqueSlugFirstCandidateFree(t *testing.T) {
	slug, err := UniqueSlug("Acme Corp", func(string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.Equal(t, "acme-corp", slug)
}

func TestUniqueSlugAppendsSuffix(t *testing.T) {
	taken := map[string]bool{"acme-corp": true, "acme-corp-2": true}

	var probed []string
	slug, err := UniqueSlug("Acme Corp", func(candidate string) (bool, error) {
		probed = append(probed, candidate)
		return taken[candidate], nil
	})

	require.NoError(t, err)
	assert.Equal(t, "acme-corp-3", slug)
	assert.Equal(t, []string{"acme-corp", "acme-corp-2", "acme-corp-3"}, probed)
}

func TestUniqueSlugPropagatesLookupError(t *testing.T) {
	_, err := UniqueSlug("Acme", func(string) (bool, error) {
		return false, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}
