package db

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	selectParam = "select"
	sortParam   = "sort"
	pageParam   = "page"
	limitParam  = "limit"

	DefaultPage     = 1
	DefaultPageSize = 25

	defaultSortField = "-createdAt"
)

// comparisonOperators enumerates the filter operator vocabulary.
// Filter keys carry the operator as a bracketed suffix, e.g.
// "tuition[lte]=10000"; anything outside this table is not an
// operator.
var comparisonOperators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"in":  "$in",
}

// AdvancedOptions is the parsed form of a list endpoint's query
// string: a field filter, a projection, a sort order, and a
// page/limit pair. Build one with ParseAdvanced and turn it into a
// read plan with Query.
type AdvancedOptions struct {
	Filter bson.M
	Fields []string
	Sort   []string
	Page   int
	Limit  int
}

// ParseAdvanced translates a flat query-string mapping into
// AdvancedOptions. The reserved control keys (select, sort, page,
// limit) are stripped from the filter; every other key constrains an
// entity field, either by equality or through a bracketed comparison
// operator suffix. Malformed page and limit values fall back to the
// defaults without error, which matches how callers have always used
// these endpoints.
func ParseAdvanced(params url.Values) AdvancedOptions {
	opts := AdvancedOptions{
		Filter: bson.M{},
		Page:   DefaultPage,
		Limit:  DefaultPageSize,
	}

	for key, values := range params {
		if len(values) == 0 {
			continue
		}

		switch key {
		case selectParam:
			opts.Fields = splitList(values[0])
		case sortParam:
			opts.Sort = splitList(values[0])
		case pageParam:
			if page, err := strconv.Atoi(values[0]); err == nil && page > 0 {
				opts.Page = page
			}
		case limitParam:
			if limit, err := strconv.Atoi(values[0]); err == nil && limit > 0 {
				opts.Limit = limit
			}
		default:
			opts.addFilterTerm(key, values[0])
		}
	}

	return opts
}

// addFilterTerm folds one key/value pair into the filter document.
// Comparison terms on the same field merge into a single operator
// document, so "rating[gte]=4&rating[lte]=8" produces one range
// constraint.
func (o AdvancedOptions) addFilterTerm(key, value string) {
	field, op, ok := splitOperator(key)
	if !ok {
		o.Filter[key] = coerceValue(value)
		return
	}

	var comparison any
	if op == "$in" {
		members := []any{}
		for _, v := range splitList(value) {
			members = append(members, coerceValue(v))
		}
		comparison = members
	} else {
		comparison = coerceValue(value)
	}

	if existing, isDoc := o.Filter[field].(bson.M); isDoc {
		existing[op] = comparison
		return
	}
	o.Filter[field] = bson.M{op: comparison}
}

// splitOperator recognizes a bracketed operator suffix on a filter
// key, returning the bare field name and the store-level operator.
// Keys without a recognized suffix are plain equality constraints.
func splitOperator(key string) (field string, op string, ok bool) {
	open := strings.Index(key, "[")
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, "", false
	}

	op, ok = comparisonOperators[key[open+1:len(key)-1]]
	if !ok {
		return key, "", false
	}

	return key[:open], op, true
}

// coerceValue maps a raw query-string value onto the bson type it
// most plausibly represents, so numeric comparisons match numeric
// fields.
func coerceValue(raw string) any {
	if i, err := strconv.Atoi(raw); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Skip returns the number of matching documents preceding the
// requested page.
func (o AdvancedOptions) Skip() int {
	return (o.Page - 1) * o.Limit
}

// Query produces the read plan for these options: filter, then
// projection, then sort (creation time descending when unspecified),
// then pagination.
func (o AdvancedOptions) Query() Q {
	q := Query(o.Filter)

	if len(o.Fields) > 0 {
		q = q.WithFields(o.Fields...)
	}

	sort := o.Sort
	if len(sort) == 0 {
		sort = []string{defaultSortField}
	}

	return q.Sort(sort).Skip(o.Skip()).Limit(o.Limit)
}

// PageInfo describes one adjacent page of a paginated result set.
type PageInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries the next/prev page descriptors for a list
// response. A descriptor is present only when that page exists.
type Pagination struct {
	Next *PageInfo `json:"next,omitempty"`
	Prev *PageInfo `json:"prev,omitempty"`
}

// Pagination computes the page descriptors given the total number of
// documents matching the filter, ignoring pagination.
func (o AdvancedOptions) Pagination(total int) Pagination {
	pages := Pagination{}

	if o.Page*o.Limit < total {
		pages.Next = &PageInfo{Page: o.Page + 1, Limit: o.Limit}
	}
	if o.Skip() > 0 {
		pages.Prev = &PageInfo{Page: o.Page - 1, Limit: o.Limit}
	}

	return pages
}
