package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	cases := []struct {
		name       string
		page       Page[testRecord]
		requested  int
		wantPages  int
		wantSize   int
		wantMinCur int
	}{
		{
			name:       "server omits totalPages",
			page:       Page[testRecord]{TotalItems: 95, PageSize: 10, CurrentPage: 1},
			wantPages:  10,
			wantSize:   10,
			wantMinCur: 1,
		},
		{
			name:       "exact division",
			page:       Page[testRecord]{TotalItems: 100, PageSize: 10, CurrentPage: 2},
			wantPages:  10,
			wantSize:   10,
			wantMinCur: 2,
		},
		{
			name:       "empty collection still has one page",
			page:       Page[testRecord]{TotalItems: 0, PageSize: 10},
			wantPages:  1,
			wantSize:   10,
			wantMinCur: 1,
		},
		{
			name:       "falls back to the requested size",
			page:       Page[testRecord]{TotalItems: 7},
			requested:  5,
			wantPages:  2,
			wantSize:   5,
			wantMinCur: 1,
		},
		{
			name:       "server totalPages wins when present",
			page:       Page[testRecord]{TotalItems: 95, PageSize: 10, TotalPages: 10, CurrentPage: 3},
			wantPages:  10,
			wantSize:   10,
			wantMinCur: 3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.page.Normalize(tc.requested)
			assert.Equal(t, tc.wantPages, tc.page.TotalPages)
			assert.Equal(t, tc.wantSize, tc.page.PageSize)
			assert.Equal(t, tc.wantMinCur, tc.page.CurrentPage)
		})
	}
}

func TestFiltersMerge(t *testing.T) {
	base := Filters{"status": "draft", "category": "news"}
	merged := base.Merge(Filters{"status": "published", "author": "kim"})

	assert.Equal(t, Filters{"status": "published", "category": "news", "author": "kim"}, merged)
	assert.Equal(t, Filters{"status": "draft", "category": "news"}, base, "merge must not mutate the receiver")
}

func TestFiltersClone(t *testing.T) {
	base := Filters{"status": "draft"}
	clone := base.Clone()
	clone["status"] = "published"
	assert.Equal(t, "draft", base["status"])
}
