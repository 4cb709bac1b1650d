package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `name,short_description,genres,minimum_system_requirement,recommend_system_requirement,release_date,developer,publisher,overall_player_rating,number_of_reviews_from_purchased_people,number_of_english_reviews,link
Hollow Knight,Forge your own path in a vast ruined kingdom.,"['Action', 'Adventure', 'Indie']",Windows 7,Windows 10,24 Feb 2017,Team Cherry,Team Cherry,Overwhelmingly Positive,"212,904","150,873",https://store.steampowered.com/app/367520/
Celeste,Help Madeline survive her inner demons.,"['Action', 'Indie']",Windows 7,Windows 10,25 Jan 2018,Maddy Makes Games,Maddy Makes Games,Overwhelmingly Positive,"75,510","52,407",https://store.steampowered.com/app/504230/
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleCSV))

	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Hollow Knight", records[0].Name)
	assert.Equal(t, "Forge your own path in a vast ruined kingdom.", records[0].ShortDescription)
	assert.Equal(t, "Team Cherry", records[0].Developer)
	assert.Equal(t, "Celeste", records[1].Name)
	assert.Equal(t, "https://store.steampowered.com/app/504230/", records[1].Link)
}

func TestParse_ColumnOrderIndependent(t *testing.T) {
	csv := "developer,name\nSupergiant Games,Hades\n"

	records, err := Parse(strings.NewReader(csv))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Hades", records[0].Name)
	assert.Equal(t, "Supergiant Games", records[0].Developer)
}

func TestParse_IgnoresUnknownColumns(t *testing.T) {
	csv := "name,steam_appid\nHades,1145360\n"

	records, err := Parse(strings.NewReader(csv))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Hades", records[0].Name)
}

func TestParse_NoKnownColumns(t *testing.T) {
	csv := "foo,bar\n1,2\n"

	_, err := Parse(strings.NewReader(csv))

	assert.Error(t, err)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))

	assert.Error(t, err)
}

func TestRecord_Document(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	doc := records[0].Document()

	assert.True(t, strings.HasPrefix(doc, "Name: Hollow Knight\n"))
	assert.Contains(t, doc, "Short Description: Forge your own path in a vast ruined kingdom.\n")
	assert.Contains(t, doc, "Genres: ['Action', 'Adventure', 'Indie']\n")
	assert.Contains(t, doc, "Minimum System Requirements: Windows 7\n")
	assert.Contains(t, doc, "Recommended System Requirements: Windows 10\n")
	assert.Contains(t, doc, "Release Date: 24 Feb 2017\n")
	assert.Contains(t, doc, "Overall Player Rating: Overwhelmingly Positive\n")
	assert.Contains(t, doc, "Reviews from Purchased People: 212,904\n")
	assert.Contains(t, doc, "English Reviews: 150,873\n")
	assert.True(t, strings.HasSuffix(doc, "Link: https://store.steampowered.com/app/367520/\n"))
}
