package stats

import (
	"testing"

	"shelfthis/internal/history"
	"shelfthis/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readSample() []history.Record {
	return history.FilterRead(testutil.SampleHistory())
}

func titles(records []history.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func TestFilterYear(t *testing.T) {
	read := readSample()

	assert.Equal(t, []string{"The Hobbit", "Dune", "Piranesi"}, titles(FilterYear(read, 2024)))
	assert.Equal(t, []string{"Circe", "Emma"}, titles(FilterYear(read, 2023)))
	assert.Empty(t, FilterYear(read, 1999))
	// all years keeps the undated record too
	assert.Len(t, FilterYear(read, AllYears), 6)
}

func TestYears(t *testing.T) {
	assert.Equal(t, []int{2024, 2023}, Years(readSample()))
	assert.Empty(t, Years(nil))
}

func TestRatingCounts(t *testing.T) {
	got := RatingCounts(readSample())
	require.NotEmpty(t, got)
	assert.Equal(t, Count{Label: "5", Count: 2}, got[0])

	var total int
	for _, c := range got {
		total += c.Count
	}
	// Emma is unrated
	assert.Equal(t, 5, total)
	assert.Equal(t, []string{"5", "3", "4", "4.5"}, labels(got))
}

func labels(counts []Count) []string {
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.Label
	}
	return out
}

func TestAverageRating(t *testing.T) {
	avg, ok := AverageRating(readSample())
	require.True(t, ok)
	assert.InDelta(t, 4.3, avg, 1e-9)

	_, ok = AverageRating([]history.Record{testutil.ReadBook("Emma", "ebook", 0, "2023-01-30", "")})
	assert.False(t, ok)
}

func TestFormatCounts(t *testing.T) {
	got := FormatCounts(readSample())
	assert.Equal(t, []Count{
		{Label: "ebook", Count: 3},
		{Label: "paperback", Count: 2},
		{Label: "hardcover", Count: 1},
	}, got)

	top, ok := MostUsedFormat(got)
	require.True(t, ok)
	assert.Equal(t, "ebook", top.Label)

	_, ok = MostUsedFormat(nil)
	assert.False(t, ok)
}

func TestFormatCounts_TiesAreAlphabetical(t *testing.T) {
	recs := []history.Record{
		testutil.ReadBook("A", "paperback", 0, "", ""),
		testutil.ReadBook("B", "ebook", 0, "", ""),
		testutil.ReadBook("C", "", 0, "", ""),
	}
	assert.Equal(t, []string{"ebook", "paperback"}, labels(FormatCounts(recs)))
}

func TestBooksPerYear(t *testing.T) {
	assert.Equal(t, []YearCount{
		{Year: 2023, Count: 2},
		{Year: 2024, Count: 3},
	}, BooksPerYear(readSample()))
}

func TestReadingPace(t *testing.T) {
	got := ReadingPace(FilterYear(readSample(), 2024))
	assert.Equal(t, []PacePoint{
		{Year: 2024, Month: 3, Count: 2, Cumulative: 2},
		{Year: 2024, Month: 7, Count: 1, Cumulative: 3},
	}, got)

	all := ReadingPace(readSample())
	require.Len(t, all, 4)
	assert.Equal(t, 1, all[0].Month)
	assert.Equal(t, 5, all[len(all)-1].Cumulative)
}

func TestTopRated(t *testing.T) {
	read := readSample()

	got := TopRated(read, 10)
	// equal ratings keep input order: Hobbit before Beloved
	assert.Equal(t, []string{"The Hobbit", "Beloved", "Piranesi", "Dune", "Circe"}, titles(got))

	assert.Equal(t, []string{"The Hobbit", "Beloved"}, titles(TopRated(read, 2)))
	assert.Empty(t, TopRated(read, 0))
}

func TestShelfIdentifiers(t *testing.T) {
	recs := []history.Record{
		{Identifier: "111"},
		{Identifier: ""},
		{Identifier: " 222 "},
		{Identifier: "111"},
		{Identifier: "333"},
	}
	assert.Equal(t, []string{"111", "222", "333"}, ShelfIdentifiers(recs))
	assert.Empty(t, ShelfIdentifiers(nil))
}
