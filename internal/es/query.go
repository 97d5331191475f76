// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package es

// FilterBuilder accumulates bool query clauses. Filters that may live in
// different places depending on the log format (OTel semconv, ECS, flat)
// use "should" with minimum_should_match so any format matches.
type FilterBuilder struct {
	must    []map[string]any
	mustNot []map[string]any
}

// NewFilterBuilder creates an empty FilterBuilder.
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{
		must:    []map[string]any{},
		mustNot: []map[string]any{},
	}
}

// AddMust adds a clause to the must array.
func (fb *FilterBuilder) AddMust(clause map[string]any) *FilterBuilder {
	fb.must = append(fb.must, clause)
	return fb
}

// AddMustNot adds a clause to the must_not array.
func (fb *FilterBuilder) AddMustNot(clause map[string]any) *FilterBuilder {
	fb.mustNot = append(fb.mustNot, clause)
	return fb
}

// AddServiceFilter filters on the service name in both OTel and flat formats.
// With negate the service is excluded instead.
func (fb *FilterBuilder) AddServiceFilter(service string, negate bool) *FilterBuilder {
	if service == "" {
		return fb
	}
	clause := map[string]any{
		"bool": map[string]any{
			"should": []map[string]any{
				{"term": map[string]any{"resource.attributes.service.name": service}},
				{"term": map[string]any{"resource.service.name": service}},
				{"term": map[string]any{"service.name": service}},
			},
			"minimum_should_match": 1,
		},
	}
	if negate {
		return fb.AddMustNot(clause)
	}
	return fb.AddMust(clause)
}

// AddLevelFilter filters on severity in both OTel and standard formats.
func (fb *FilterBuilder) AddLevelFilter(level string) *FilterBuilder {
	if level == "" {
		return fb
	}
	return fb.AddMust(map[string]any{
		"bool": map[string]any{
			"should": []map[string]any{
				{"term": map[string]any{"severity_text": level}},
				{"term": map[string]any{"level": level}},
			},
			"minimum_should_match": 1,
		},
	})
}

// AddTimeRangeFilter adds a @timestamp range. gte/lte accept ES time
// expressions like "now-1h" or RFC3339 timestamps.
func (fb *FilterBuilder) AddTimeRangeFilter(gte, lte string) *FilterBuilder {
	if gte == "" && lte == "" {
		return fb
	}
	timeRange := map[string]any{}
	if gte != "" {
		timeRange["gte"] = gte
	}
	if lte != "" {
		timeRange["lte"] = lte
	}
	return fb.AddMust(map[string]any{
		"range": map[string]any{
			"@timestamp": timeRange,
		},
	})
}

// AddQueryString adds a full-text query_string clause over the common
// message fields.
func (fb *FilterBuilder) AddQueryString(query string, fields []string) *FilterBuilder {
	if query == "" {
		return fb
	}
	if len(fields) == 0 {
		fields = []string{"body.text", "body", "message", "event_name"}
	}
	// Wildcards for partial matching on keyword fields
	return fb.AddMust(map[string]any{
		"query_string": map[string]any{
			"query":            "*" + query + "*",
			"fields":           fields,
			"default_operator": "AND",
			"analyze_wildcard": true,
		},
	})
}

// Build returns the completed bool query with exact total tracking, which
// paged fetching needs to report collection size.
func (fb *FilterBuilder) Build() map[string]any {
	boolQuery := map[string]any{
		"must": fb.must,
	}
	if len(fb.mustNot) > 0 {
		boolQuery["must_not"] = fb.mustNot
	}
	return map[string]any{
		"track_total_hits": true,
		"query": map[string]any{
			"bool": boolQuery,
		},
	}
}

// Must returns the must clauses for inspection in tests.
func (fb *FilterBuilder) Must() []map[string]any {
	return fb.must
}

// MustNot returns the must_not clauses for inspection in tests.
func (fb *FilterBuilder) MustNot() []map[string]any {
	return fb.mustNot
}
