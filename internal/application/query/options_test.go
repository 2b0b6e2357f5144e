package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tourAllowed() Allowed {
	columns := map[string]string{
		"name":            "name",
		"duration":        "duration",
		"maxGroupSize":    "max_group_size",
		"difficulty":      "difficulty",
		"ratingsAverage":  "ratings_average",
		"ratingsQuantity": "ratings_quantity",
		"price":           "price",
		"createdAt":       "created_at",
	}
	return Allowed{Filter: columns, Sort: columns, Fields: columns}
}

func TestParseOptionsDefaults(t *testing.T) {
	opts := ParseOptions(url.Values{}, tourAllowed())

	assert.Empty(t, opts.Filters)
	assert.Equal(t, []SortKey{{Column: "created_at", Desc: true}}, opts.Sort)
	assert.Nil(t, opts.Fields)
	assert.Equal(t, DefaultPage, opts.Page)
	assert.Equal(t, DefaultLimit, opts.Limit)
	assert.Equal(t, 0, opts.Offset(), "first page skips nothing")
}

func TestParseOptionsPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		limit      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"explicit", "3", "20", 3, 20, 40},
		{"first page", "1", "10", 1, 10, 0},
		{"non-numeric degrades", "two", "many", 1, 100, 0},
		{"zero degrades", "0", "0", 1, 100, 0},
		{"negative degrades", "-2", "-5", 1, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{"page": {tt.page}, "limit": {tt.limit}}
			opts := ParseOptions(values, tourAllowed())
			assert.Equal(t, tt.wantPage, opts.Page)
			assert.Equal(t, tt.wantLimit, opts.Limit)
			assert.Equal(t, tt.wantOffset, opts.Offset())
		})
	}
}

func TestParseOptionsOperators(t *testing.T) {
	tests := []struct {
		param  string
		wantOp Op
	}{
		{"price[gte]", OpGte},
		{"price[gt]", OpGt},
		{"price[lte]", OpLte},
		{"price[lt]", OpLt},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			values := url.Values{tt.param: {"500"}}
			opts := ParseOptions(values, tourAllowed())
			require.Len(t, opts.Filters, 1)
			assert.Equal(t, Filter{Column: "price", Op: tt.wantOp, Value: 500.0}, opts.Filters[0])
		})
	}
}

func TestParseOptionsReservedKeysNeverFilter(t *testing.T) {
	values := url.Values{
		"page":       {"2"},
		"sort":       {"price"},
		"limit":      {"5"},
		"fields":     {"name"},
		"difficulty": {"easy"},
	}
	opts := ParseOptions(values, tourAllowed())

	require.Len(t, opts.Filters, 1)
	assert.Equal(t, "difficulty", opts.Filters[0].Column)
}

func TestParseOptionsDropsUnknownFieldsAndOperators(t *testing.T) {
	values := url.Values{
		"secretColumn":   {"x"},
		"price[between]": {"1"},
		"sort":           {"-secretColumn"},
		"fields":         {"name,secretColumn"},
	}
	opts := ParseOptions(values, tourAllowed())

	assert.Empty(t, opts.Filters)
	assert.Equal(t, []SortKey{{Column: "created_at", Desc: true}}, opts.Sort)
	assert.Equal(t, []string{"id", "name"}, opts.Fields)
}

func TestParseOptionsSortOrderAndDirection(t *testing.T) {
	values := url.Values{"sort": {"-price,ratingsAverage"}}
	opts := ParseOptions(values, tourAllowed())

	assert.Equal(t, []SortKey{
		{Column: "price", Desc: true},
		{Column: "ratings_average", Desc: false},
	}, opts.Sort)
}

func TestParseOptionsFieldsAlwaysIncludeID(t *testing.T) {
	values := url.Values{"fields": {"name,price,name"}}
	opts := ParseOptions(values, tourAllowed())

	assert.Equal(t, []string{"id", "name", "price"}, opts.Fields)
}

func TestParseOptionsStringValuesStayStrings(t *testing.T) {
	values := url.Values{"difficulty": {"easy"}, "duration": {"5"}}
	opts := ParseOptions(values, tourAllowed())

	byColumn := map[string]any{}
	for _, f := range opts.Filters {
		byColumn[f.Column] = f.Value
	}
	assert.Equal(t, "easy", byColumn["difficulty"])
	assert.Equal(t, 5.0, byColumn["duration"])
}

// The full request shape from the listing endpoint:
// ?difficulty=easy&price[lte]=500&sort=-price&page=2&limit=5
func TestParseOptionsListScenario(t *testing.T) {
	values, err := url.ParseQuery("difficulty=easy&price%5Blte%5D=500&sort=-price&page=2&limit=5")
	require.NoError(t, err)

	opts := ParseOptions(values, tourAllowed())

	assert.ElementsMatch(t, []Filter{
		{Column: "difficulty", Op: OpEq, Value: "easy"},
		{Column: "price", Op: OpLte, Value: 500.0},
	}, opts.Filters)
	assert.Equal(t, []SortKey{{Column: "price", Desc: true}}, opts.Sort)
	assert.Equal(t, 2, opts.Page)
	assert.Equal(t, 5, opts.Limit)
	assert.Equal(t, 5, opts.Offset())
}
