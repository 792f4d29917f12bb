// ABOUTME: Unit tests for the query engine
// ABOUTME: Covers list/search/get/children flows, determinism and pagination properties

package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	s, err := NewSnapshot([]ComponentRecord{
		{ID: "a", Name: "Fabric API"},
		{ID: "b", Name: "Fabric Loader"},
		{ID: "c", Name: "Sodium"},
	})
	require.NoError(t, err)
	return s
}

func ids(result PageResult) []string {
	out := make([]string, len(result.Items))
	for i, h := range result.Items {
		out[i] = h.Record.ID
	}
	return out
}

func TestEngine_SearchExample(t *testing.T) {
	e := NewEngine(nil)

	result, err := e.Execute(exampleSnapshot(t), Query{Kind: SearchText, Text: "fab", Page: 1, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(result))
	assert.Equal(t, 2, result.TotalMatches)
	assert.Equal(t, 1, result.PageCount)
	for _, h := range result.Items {
		assert.Positive(t, h.Score)
		assert.Equal(t, []Span{{Start: 0, End: 3}}, h.Spans)
	}
}

func TestEngine_ListSecondPageOfOne(t *testing.T) {
	e := NewEngine(nil)

	result, err := e.Execute(exampleSnapshot(t), Query{Kind: ListAll, Page: 2, PageSize: 1})

	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(result))
	assert.Equal(t, 3, result.PageCount)
	assert.Equal(t, 3, result.TotalMatches)
	assert.Equal(t, 2, result.PageIndex)
}

func TestEngine_GetByIDMissing(t *testing.T) {
	e := NewEngine(nil)

	result, err := e.Execute(exampleSnapshot(t), Query{Kind: GetByID, Text: "zzz", Page: 1, PageSize: 8})

	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Zero(t, result.TotalMatches)
	assert.Zero(t, result.PageCount)
}

func TestEngine_GetByIDFound(t *testing.T) {
	e := NewEngine(nil)

	result, err := e.Execute(exampleSnapshot(t), Query{Kind: GetByID, Text: "c", Page: 1, PageSize: 8})

	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ids(result))
	assert.Equal(t, 1, result.TotalMatches)
	assert.Equal(t, 1, result.PageCount)
}

func TestEngine_EmptySnapshot(t *testing.T) {
	e := NewEngine(nil)
	empty := MustNewSnapshot(nil)

	for _, q := range []Query{
		{Kind: ListAll, Page: 1, PageSize: 8},
		{Kind: SearchText, Text: "fab", Page: 1, PageSize: 8},
		{Kind: GetByID, Text: "a", Page: 1, PageSize: 8},
		{Kind: ListChildren, Text: "a", Page: 1, PageSize: 8},
	} {
		t.Run(q.Kind.String(), func(t *testing.T) {
			for _, s := range []*Snapshot{empty, nil} {
				result, err := e.Execute(s, q)
				require.NoError(t, err)
				assert.Zero(t, result.TotalMatches)
				assert.Zero(t, result.PageCount)
				assert.Empty(t, result.Items)
			}
		})
	}
}

func TestEngine_RejectsInvalidQueries(t *testing.T) {
	e := NewEngine(nil)

	for name, q := range map[string]Query{
		"page size zero":  {Kind: ListAll, Page: 1, PageSize: 0},
		"page zero":       {Kind: ListAll, Page: 0, PageSize: 8},
		"get without id":  {Kind: GetByID, Page: 1, PageSize: 8},
		"children no id":  {Kind: ListChildren, Page: 1, PageSize: 8},
		"unknown kind":    {Kind: QueryKind(42), Page: 1, PageSize: 8},
		"bad environment": {Kind: ListAll, Page: 1, PageSize: 8, Environment: "moon"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := e.Execute(exampleSnapshot(t), q)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidQuery))

			var invalid *InvalidQueryError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestEngine_EmptySearchFallsBackToListing(t *testing.T) {
	e := NewEngine(nil)
	s := exampleSnapshot(t)

	for page := 1; page <= 3; page++ {
		listed, err := e.Execute(s, Query{Kind: ListAll, Page: page, PageSize: 2})
		require.NoError(t, err)

		searched, err := e.Execute(s, Query{Kind: SearchText, Page: page, PageSize: 2})
		require.NoError(t, err)

		assert.Equal(t, ids(listed), ids(searched))
		assert.Equal(t, listed.PageCount, searched.PageCount)
		assert.Equal(t, listed.TotalMatches, searched.TotalMatches)
	}
}

func TestEngine_Deterministic(t *testing.T) {
	e := NewEngine(nil)
	s := exampleSnapshot(t)
	q := Query{Kind: SearchText, Text: "a", Page: 1, PageSize: 10}

	first, err := e.Execute(s, q)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := e.Execute(s, q)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEngine_PagesReconstructRankedSequence(t *testing.T) {
	records := []ComponentRecord{
		{ID: "m01", Name: "Mod Menu"},
		{ID: "m02", Name: "Modern Fix"},
		{ID: "m03", Name: "More Culling"},
		{ID: "m04", Name: "Memory Leak Fix"},
		{ID: "m05", Name: "Mouse Tweaks"},
		{ID: "m06", Name: "Model Gap Fix"},
		{ID: "m07", Name: "Sodium", Description: "modern rendering engine"},
	}
	s := MustNewSnapshot(records)
	e := NewEngine(nil)

	full, err := e.Execute(s, Query{Kind: SearchText, Text: "mo", Page: 1, PageSize: 100})
	require.NoError(t, err)

	for _, size := range []int{1, 2, 3, 4} {
		first, err := e.Execute(s, Query{Kind: SearchText, Text: "mo", Page: 1, PageSize: size})
		require.NoError(t, err)

		var got []string
		for page := 1; page <= first.PageCount; page++ {
			result, err := e.Execute(s, Query{Kind: SearchText, Text: "mo", Page: page, PageSize: size})
			require.NoError(t, err)
			got = append(got, ids(result)...)
		}
		assert.Equal(t, ids(full), got, "page size %d", size)
	}
}

func TestEngine_ExactNameRanksFirst(t *testing.T) {
	s := MustNewSnapshot([]ComponentRecord{
		{ID: "a-sodium-extra", Name: "Sodium Extra"},
		{ID: "b-reeses", Name: "Reese's Sodium Options"},
		{ID: "z-sodium", Name: "sodium"},
	})

	result, err := NewEngine(nil).Execute(s, Query{Kind: SearchText, Text: "Sodium", Page: 1, PageSize: 10})

	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	assert.Equal(t, "z-sodium", result.Items[0].Record.ID)
}

func TestEngine_TiesOrderedByID(t *testing.T) {
	forward := MustNewSnapshot([]ComponentRecord{
		{ID: "alpha", Name: "Lib Core"},
		{ID: "beta", Name: "Lib Core"},
		{ID: "gamma", Name: "Lib Core"},
	})
	reversed := MustNewSnapshot([]ComponentRecord{
		{ID: "gamma", Name: "Lib Core"},
		{ID: "beta", Name: "Lib Core"},
		{ID: "alpha", Name: "Lib Core"},
	})
	q := Query{Kind: SearchText, Text: "lib", Page: 1, PageSize: 10}

	a, err := NewEngine(nil).Execute(forward, q)
	require.NoError(t, err)
	b, err := NewEngine(nil).Execute(reversed, q)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, ids(a))
	assert.Equal(t, ids(a), ids(b))
}

func TestEngine_TopLevelAndChildren(t *testing.T) {
	s := MustNewSnapshot([]ComponentRecord{
		{ID: "fabric", Name: "Fabric API", Children: []string{"fabric-api-base", "fabric-networking-api-v1"}},
		{ID: "fabric-api-base", Name: "Fabric API Base", Parent: "fabric"},
		{ID: "fabric-networking-api-v1", Name: "Fabric Networking API (v1)", Parent: "fabric"},
		{ID: "sodium", Name: "Sodium"},
	})
	e := NewEngine(nil)

	top, err := e.Execute(s, Query{Kind: ListAll, Page: 1, PageSize: 10, TopLevelOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"fabric", "sodium"}, ids(top))

	all, err := e.Execute(s, Query{Kind: ListAll, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, all.TotalMatches)

	children, err := e.Execute(s, Query{Kind: ListChildren, Text: "fabric", Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"fabric-api-base"}, ids(children))
	assert.Equal(t, 2, children.PageCount)

	none, err := e.Execute(s, Query{Kind: ListChildren, Text: "sodium", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, none.TotalMatches)
}

func TestEngine_EnvironmentFilter(t *testing.T) {
	s := MustNewSnapshot([]ComponentRecord{
		{ID: "iris", Name: "Iris", Environment: EnvClient},
		{ID: "lithium", Name: "Lithium", Environment: EnvUniversal},
		{ID: "spark", Name: "Spark", Environment: EnvServer},
	})
	e := NewEngine(nil)

	client, err := e.Execute(s, Query{Kind: ListAll, Page: 1, PageSize: 10, Environment: EnvClient})
	require.NoError(t, err)
	assert.Equal(t, []string{"iris"}, ids(client))

	server, err := e.Execute(s, Query{Kind: SearchText, Text: "s", Page: 1, PageSize: 10, Environment: EnvServer})
	require.NoError(t, err)
	assert.Equal(t, []string{"spark"}, ids(server))
}

func TestEngine_OutOfRangePage(t *testing.T) {
	result, err := NewEngine(nil).Execute(exampleSnapshot(t), Query{Kind: ListAll, Page: 9, PageSize: 2})

	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, 2, result.PageCount)
	assert.True(t, result.OutOfRange())
}

func TestEngine_ZeroScoreMatchesRankLast(t *testing.T) {
	s := MustNewSnapshot([]ComponentRecord{
		{ID: "lithium", Name: "Lithium"},
		{ID: "smooth-boot", Name: "Smooth Boot"},
		{ID: "sodium", Name: "Sodium"},
	})

	result, err := NewEngine(nil).Execute(s, Query{Kind: SearchText, Text: "sm", Page: 1, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, []string{"smooth-boot", "sodium"}, ids(result))
	assert.Equal(t, 2, result.TotalMatches)
	assert.Positive(t, result.Items[0].Score)
	assert.Zero(t, result.Items[1].Score)
}
