package bootcamp

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/campdirector/campdirector/db"
	"github.com/campdirector/campdirector/testutil"
	"github.com/evergreen-ci/utility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// advancedFixtures inserts a deterministic set of bootcamps and
// returns it, so query results can be checked against a plain scan
// over the same slice.
func advancedFixtures(ctx context.Context, t *testing.T) []Bootcamp {
	require.NoError(t, db.ClearCollections(ctx, Collection))

	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	fixtures := []Bootcamp{
		{Name: "Codemasters", Description: "d", User: "u1", AverageCost: utility.ToFloat64Ptr(5000), AverageRating: utility.ToFloat64Ptr(9)},
		{Name: "Devcentral", Description: "d", User: "u2", AverageCost: utility.ToFloat64Ptr(7000), AverageRating: utility.ToFloat64Ptr(6), Housing: true},
		{Name: "Devcentral", Description: "d", User: "u3", AverageCost: utility.ToFloat64Ptr(9000), AverageRating: utility.ToFloat64Ptr(8)},
		{Name: "Devworks", Description: "d", User: "u4", AverageCost: utility.ToFloat64Ptr(11000), AverageRating: utility.ToFloat64Ptr(7), Housing: true},
		{Name: "ModernTech", Description: "d", User: "u5", AverageCost: utility.ToFloat64Ptr(13000)},
	}
	for i := range fixtures {
		fixtures[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, fixtures[i].Insert(ctx))
	}

	return fixtures
}

func fixtureIds(fixtures []Bootcamp, matches func(Bootcamp) bool) []string {
	ids := []string{}
	for _, b := range fixtures {
		if matches(b) {
			ids = append(ids, b.Id)
		}
	}
	return ids
}

func foundIds(bootcamps []Bootcamp) []string {
	ids := []string{}
	for _, b := range bootcamps {
		ids = append(ids, b.Id)
	}
	return ids
}

func TestAdvancedFilterExecution(t *testing.T) {
	testutil.Setup()
	ctx := context.Background()
	fixtures := advancedFixtures(ctx, t)

	for name, tc := range map[string]struct {
		params  url.Values
		matches func(Bootcamp) bool
	}{
		"LessThanOrEqual": {
			params: url.Values{"averageCost[lte]": []string{"9000"}},
			matches: func(b Bootcamp) bool {
				return b.AverageCost != nil && *b.AverageCost <= 9000
			},
		},
		"GreaterThan": {
			params: url.Values{"averageCost[gt]": []string{"7000"}},
			matches: func(b Bootcamp) bool {
				return b.AverageCost != nil && *b.AverageCost > 7000
			},
		},
		"GreaterThanOrEqual": {
			params: url.Values{"averageRating[gte]": []string{"7"}},
			matches: func(b Bootcamp) bool {
				return b.AverageRating != nil && *b.AverageRating >= 7
			},
		},
		"LessThan": {
			params: url.Values{"averageRating[lt]": []string{"8"}},
			matches: func(b Bootcamp) bool {
				return b.AverageRating != nil && *b.AverageRating < 8
			},
		},
		"In": {
			params: url.Values{"averageCost[in]": []string{"5000,13000"}},
			matches: func(b Bootcamp) bool {
				return b.AverageCost != nil && (*b.AverageCost == 5000 || *b.AverageCost == 13000)
			},
		},
		"Range": {
			params: url.Values{
				"averageCost[gte]": []string{"7000"},
				"averageCost[lt]":  []string{"13000"},
			},
			matches: func(b Bootcamp) bool {
				return b.AverageCost != nil && *b.AverageCost >= 7000 && *b.AverageCost < 13000
			},
		},
		"Equality": {
			params: url.Values{"housing": []string{"true"}},
			matches: func(b Bootcamp) bool {
				return b.Housing
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			found, err := Find(ctx, db.ParseAdvanced(tc.params).Query())
			require.NoError(t, err)

			expected := fixtureIds(fixtures, tc.matches)
			assert.NotEmpty(t, expected)
			assert.ElementsMatch(t, expected, foundIds(found))
		})
	}
}

func TestAdvancedSortExecution(t *testing.T) {
	testutil.Setup()
	ctx := context.Background()
	advancedFixtures(ctx, t)

	found, err := Find(ctx, db.ParseAdvanced(url.Values{
		"sort": []string{"name,-averageRating"},
	}).Query())
	require.NoError(t, err)

	names := []string{}
	for _, b := range found {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Codemasters", "Devcentral", "Devcentral", "Devworks", "ModernTech"}, names)

	// the tied names order by rating descending
	require.Len(t, found, 5)
	require.NotNil(t, found[1].AverageRating)
	require.NotNil(t, found[2].AverageRating)
	assert.Equal(t, float64(8), *found[1].AverageRating)
	assert.Equal(t, float64(6), *found[2].AverageRating)
}

func TestAdvancedPaginationExecution(t *testing.T) {
	testutil.Setup()
	ctx := context.Background()
	fixtures := advancedFixtures(ctx, t)

	opts := db.ParseAdvanced(url.Values{
		"sort":  []string{"name"},
		"page":  []string{"2"},
		"limit": []string{"2"},
	})

	found, err := Find(ctx, opts.Query())
	require.NoError(t, err)
	require.True(t, len(found) <= opts.Limit)

	// page 2 of 5 documents at limit 2 holds the third and fourth
	require.Len(t, found, 2)
	assert.Equal(t, "Devcentral", found[0].Name)
	assert.Equal(t, "Devworks", found[1].Name)

	total, err := Count(ctx, db.Query(opts.Filter))
	require.NoError(t, err)
	assert.Len(t, fixtures, total)

	pages := opts.Pagination(total)
	require.NotNil(t, pages.Next)
	require.NotNil(t, pages.Prev)
	assert.Equal(t, 3, pages.Next.Page)
	assert.Equal(t, 1, pages.Prev.Page)

	// the last page has a prev but no next
	opts.Page = 3
	last, err := Find(ctx, opts.Query())
	require.NoError(t, err)
	assert.Len(t, last, 1)

	pages = opts.Pagination(total)
	assert.Nil(t, pages.Next)
	assert.NotNil(t, pages.Prev)
}
