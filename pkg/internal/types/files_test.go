package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/csvvault/pkg/internal/types"
	"github.com/yeisme/csvvault/pkg/rule"
)

func TestListFilesQuery_Limit(t *testing.T) {
	tests := []struct {
		name       string
		q          types.ListFilesQuery
		limit, off int
	}{
		{name: "no paging", q: types.ListFilesQuery{}},
		{name: "page only", q: types.ListFilesQuery{Page: 3}, limit: 10, off: 20},
		{name: "per_page only", q: types.ListFilesQuery{PerPage: 5}, limit: 5, off: 0},
		{name: "both", q: types.ListFilesQuery{Page: 2, PerPage: 25}, limit: 25, off: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, off := tt.q.Limit()
			assert.Equal(t, tt.limit, limit)
			assert.Equal(t, tt.off, off)
		})
	}
}

func TestListFilesQuery_Validate(t *testing.T) {
	require.NoError(t, rule.ValidateStruct(types.ListFilesQuery{}))
	require.NoError(t, rule.ValidateStruct(types.ListFilesQuery{Page: 1, PerPage: 100, SortBy: "name", SortOrder: "desc"}))

	errs := rule.Errors(rule.ValidateStruct(types.ListFilesQuery{Page: -1, SortOrder: "up"}))
	assert.Equal(t, "min=1", errs["page"])
	assert.Equal(t, "oneof=asc desc", errs["sort_order"])
}
