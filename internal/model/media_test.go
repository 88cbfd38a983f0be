package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayTitleFallback(t *testing.T) {
	m := MediaSummary{Title: "Dune"}
	assert.Equal(t, "Dune", m.DisplayTitle())

	empty := MediaSummary{}
	assert.Equal(t, "Unknown Title", empty.DisplayTitle())
}

func TestResolvedType(t *testing.T) {
	assert.Equal(t, MediaTypeTV, (&MediaSummary{MediaType: "tv"}).ResolvedType())
	assert.Equal(t, MediaTypeTV, (&MediaSummary{FirstAirDate: "2016-07-15"}).ResolvedType())
	assert.Equal(t, MediaTypeMovie, (&MediaSummary{ReleaseDate: "2010-07-16"}).ResolvedType())
	assert.Equal(t, MediaTypeMovie, (&MediaSummary{}).ResolvedType())
}

func TestYearParsing(t *testing.T) {
	assert.Equal(t, 2010, (&MediaSummary{ReleaseDate: "2010-07-16"}).Year())
	assert.Equal(t, 2016, (&MediaSummary{FirstAirDate: "2016-07-15"}).Year())
	assert.Equal(t, 0, (&MediaSummary{}).Year())
	assert.Equal(t, 0, (&MediaSummary{ReleaseDate: "n/a"}).Year())
}

func TestGenreName(t *testing.T) {
	assert.Equal(t, "Action", GenreName(28))
	assert.Equal(t, "Drama", GenreName(18))
	assert.Equal(t, "Unknown", GenreName(99999))
}

func TestActiveSeasonalCollections(t *testing.T) {
	december := time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC)
	active := ActiveSeasonalCollections(december)
	require.NotEmpty(t, active)
	for _, c := range active {
		assert.True(t, c.IsActive)
	}

	ids := make([]string, 0, len(active))
	for _, c := range active {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, "christmas")
	assert.NotContains(t, ids, "halloween")

	july := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	summer := ActiveSeasonalCollections(july)
	require.Len(t, summer, 1)
	assert.Equal(t, "summer", summer[0].ID)
}

func TestFindDecade(t *testing.T) {
	decade := FindDecade("90s")
	require.NotNil(t, decade)
	assert.Equal(t, 1990, decade.StartYear)
	assert.Equal(t, 1999, decade.EndYear)

	assert.Nil(t, FindDecade("70s"))
}
