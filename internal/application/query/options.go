// Package query turns untrusted request query parameters into a validated,
// fully-specified read specification: filter predicates, ordering, field
// projection and pagination. Parsing is a pure function over the raw values,
// so there is no call-order discipline for callers to get wrong; the
// persistence layer translates the resulting Options onto an actual query.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 100
)

// Reserved parameter names are consumed by sorting, projection and
// pagination and never become filter predicates.
var reservedParams = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

// comparison operator words accepted in bracketed params, e.g. price[lte]=500.
var operators = map[string]Op{
	"gte": OpGte,
	"gt":  OpGt,
	"lte": OpLte,
	"lt":  OpLt,
}

type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpGt  Op = ">"
	OpLte Op = "<="
	OpLt  Op = "<"
)

// Filter is a single AND-combined predicate against an allow-listed column.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

type SortKey struct {
	Column string
	Desc   bool
}

// Options is the normalized read specification derived from one request.
type Options struct {
	Filters []Filter
	Sort    []SortKey
	Fields  []string
	Page    int
	Limit   int
}

// Offset is the number of records skipped before the requested page.
func (o Options) Offset() int {
	return (o.Page - 1) * o.Limit
}

// Allowed maps external parameter names to database columns for one record
// type. Parameters not present in the map are silently dropped, which both
// prevents parameter pollution and keeps column identifiers trusted.
type Allowed struct {
	Filter map[string]string
	Sort   map[string]string
	Fields map[string]string
}

// ParseOptions builds Options from raw query parameters.
//
// Filtering: every non-reserved parameter becomes an equality predicate;
// the bracketed forms field[gte], field[gt], field[lte] and field[lt] become
// the matching range predicates. Values that look numeric compare as
// numbers, everything else as strings.
//
// Sorting: comma-separated keys, "-" prefix for descending, earlier keys
// win ties; default is newest first.
//
// Projection: comma-separated field list; the record identifier is always
// included. Absent means the full default field set.
//
// Pagination: positive integers with page defaulting to 1 and limit to 100;
// malformed values degrade to the defaults.
func ParseOptions(values url.Values, allowed Allowed) Options {
	opts := Options{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}

	for param, vs := range values {
		if reservedParams[param] || len(vs) == 0 {
			continue
		}
		if f, ok := parseFilter(param, vs[0], allowed); ok {
			opts.Filters = append(opts.Filters, f)
		}
	}

	if sort := values.Get("sort"); sort != "" {
		for _, key := range strings.Split(sort, ",") {
			desc := strings.HasPrefix(key, "-")
			name := strings.TrimPrefix(key, "-")
			if column, ok := allowed.Sort[name]; ok {
				opts.Sort = append(opts.Sort, SortKey{Column: column, Desc: desc})
			}
		}
	}
	if len(opts.Sort) == 0 {
		opts.Sort = []SortKey{{Column: "created_at", Desc: true}}
	}

	if fields := values.Get("fields"); fields != "" {
		seen := map[string]bool{"id": true}
		opts.Fields = []string{"id"}
		for _, name := range strings.Split(fields, ",") {
			column, ok := allowed.Fields[name]
			if !ok || seen[column] {
				continue
			}
			seen[column] = true
			opts.Fields = append(opts.Fields, column)
		}
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}

	return opts
}

// parseFilter recognizes "field" and "field[op]" parameter shapes.
func parseFilter(param, value string, allowed Allowed) (Filter, bool) {
	name := param
	op := OpEq

	if open := strings.IndexByte(param, '['); open > 0 && strings.HasSuffix(param, "]") {
		word := param[open+1 : len(param)-1]
		rangeOp, ok := operators[word]
		if !ok {
			return Filter{}, false
		}
		name = param[:open]
		op = rangeOp
	}

	column, ok := allowed.Filter[name]
	if !ok {
		return Filter{}, false
	}
	return Filter{Column: column, Op: op, Value: coerceValue(value)}, true
}

// coerceValue keeps the inbound representation: numeric-looking strings
// compare numerically, everything else stays a string.
func coerceValue(value string) any {
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	return value
}
