// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/scrollcat/scrollcat/internal/source"
)

// Query describes the filters applied to a paged log source.
type Query struct {
	Text          string // full-text search, empty matches everything
	Service       string
	NegateService bool
	Level         string
	Lookback      string // ES time expression like "now-1h", empty for all time
	SortAsc       bool   // oldest first instead of newest first
}

// Source pages over an Elasticsearch index with a fixed query. It implements
// the Pager interface using from+size pagination, so every page fetch is an
// independent stateless search.
type Source struct {
	client *Client
	query  Query
}

// NewSource creates a paged source over the client's index.
func NewSource(client *Client, q Query) *Source {
	return &Source{client: client, query: q}
}

// Query returns the source's query.
func (s *Source) Query() Query {
	return s.query
}

// With derives a new source over the same client with a different query.
func (s *Source) With(q Query) *Source {
	return &Source{client: s.client, query: q}
}

// FetchPage runs a search for the requested page. Deep pages past the
// index.max_result_window (10000 docs by default) fail server-side; callers
// see that as a fetch error.
func (s *Source) FetchPage(ctx context.Context, page, size int) (source.Page, error) {
	if page < 1 || size < 1 {
		return source.Page{}, fmt.Errorf("invalid page request: page=%d size=%d", page, size)
	}

	queryJSON, err := json.Marshal(buildPageQuery(s.query))
	if err != nil {
		return source.Page{}, fmt.Errorf("failed to marshal query: %w", err)
	}

	sortOrder := "@timestamp:desc"
	if s.query.SortAsc {
		sortOrder = "@timestamp:asc"
	}

	c := s.client
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(queryJSON)),
		c.es.Search.WithSize(size),
		c.es.Search.WithFrom((page-1)*size),
		c.es.Search.WithSort(sortOrder),
	)
	if err != nil {
		return source.Page{}, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		respBody, _ := io.ReadAll(res.Body)
		return source.Page{}, formatQueryError(res.Status(), respBody, queryJSON)
	}

	out, err := parsePageResponse(res.Body)
	if err != nil {
		return source.Page{}, err
	}
	for i := range out.Entries {
		out.Entries[i].Origin = c.index
	}
	return out, nil
}

// Describe returns the index pattern.
func (s *Source) Describe() string {
	return s.client.index
}

func buildPageQuery(q Query) map[string]any {
	fb := NewFilterBuilder()
	fb.AddQueryString(q.Text, nil)
	fb.AddTimeRangeFilter(q.Lookback, "")
	fb.AddServiceFilter(q.Service, q.NegateService)
	fb.AddLevelFilter(q.Level)
	return fb.Build()
}

func parsePageResponse(body io.Reader) (source.Page, error) {
	var response struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID     string          `json:"_id"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return source.Page{}, fmt.Errorf("failed to decode response: %w", err)
	}

	out := source.Page{
		Total:   int(response.Hits.Total.Value),
		Entries: make([]source.Entry, 0, len(response.Hits.Hits)),
	}
	for _, hit := range response.Hits.Hits {
		var raw map[string]any
		if err := json.Unmarshal(hit.Source, &raw); err != nil {
			continue
		}
		e := extractEntry(raw)
		e.ID = hit.ID
		e.Raw = string(hit.Source)
		out.Entries = append(out.Entries, e)
	}
	return out, nil
}

// extractEntry maps a raw Elasticsearch document onto an Entry. Documents in
// any shape must produce something usable: every extraction tries the OTel
// semconv location first and degrades through the common alternatives. It
// never fails; a document with nothing recognizable yields an entry with the
// current time and empty message.
func extractEntry(raw map[string]any) source.Entry {
	e := source.Entry{
		Timestamp: time.Now(),
		Level:     source.LevelUnknown,
		Fields:    map[string]any{},
	}

	if ts := raw["@timestamp"]; ts != nil {
		if t := parseESTimestamp(ts); !t.IsZero() {
			e.Timestamp = t
		}
	}

	// Message: body.text (OTel) > body string > message > event_name
	if body, ok := raw["body"].(map[string]any); ok {
		if text, ok := body["text"].(string); ok && text != "" {
			e.Message = text
		}
	}
	if e.Message == "" {
		if body, ok := raw["body"].(string); ok {
			e.Message = body
		}
	}
	if e.Message == "" {
		if msg, ok := raw["message"].(string); ok {
			e.Message = msg
		}
	}
	if e.Message == "" {
		if name, ok := raw["event_name"].(string); ok {
			e.Message = name
		}
	}

	// Severity: severity_text (OTel) > log.level > level > severity_number
	if sev, ok := raw["severity_text"].(string); ok && sev != "" {
		e.Level = source.NormalizeLevel(sev)
	} else if level, ok := raw["log.level"].(string); ok && level != "" {
		e.Level = source.NormalizeLevel(level)
	} else if level, ok := raw["level"].(string); ok && level != "" {
		e.Level = source.NormalizeLevel(level)
	} else if num, ok := raw["severity_number"].(float64); ok {
		e.Level = levelFromSeverityNumber(num)
	}

	if svc := extractServiceName(raw); svc != "" {
		e.Fields["service"] = svc
	}
	if attrs, ok := raw["attributes"].(map[string]any); ok {
		for k, v := range attrs {
			e.Fields[k] = v
		}
	}
	return e
}

// parseESTimestamp handles the timestamp shapes ES documents carry: numeric
// epoch millis (with fractional micros), epoch-millis strings, and ISO
// strings.
func parseESTimestamp(ts any) time.Time {
	switch v := ts.(type) {
	case float64:
		return epochMillis(v)
	case string:
		// Epoch millis as a string, e.g. "1767303679749.488427"
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 1e12 {
			return epochMillis(f)
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func epochMillis(f float64) time.Time {
	millis := int64(f)
	micros := int64((f - float64(millis)) * 1000)
	return time.UnixMilli(millis).Add(time.Duration(micros) * time.Microsecond)
}

// OTel severity numbers: 1-4 TRACE, 5-8 DEBUG, 9-12 INFO, 13-16 WARN,
// 17-20 ERROR, 21-24 FATAL.
func levelFromSeverityNumber(num float64) source.Level {
	switch {
	case num <= 0:
		return source.LevelUnknown
	case num <= 4:
		return source.LevelTrace
	case num <= 8:
		return source.LevelDebug
	case num <= 12:
		return source.LevelInfo
	case num <= 16:
		return source.LevelWarn
	case num <= 20:
		return source.LevelError
	default:
		return source.LevelFatal
	}
}

// extractServiceName tries the service name locations in descending order of
// semantic correctness.
func extractServiceName(raw map[string]any) string {
	if resource, ok := raw["resource"].(map[string]any); ok {
		if attrs, ok := resource["attributes"].(map[string]any); ok {
			if name, ok := attrs["service.name"].(string); ok && name != "" {
				return name
			}
			if service, ok := attrs["service"].(map[string]any); ok {
				if name, ok := service["name"].(string); ok && name != "" {
					return name
				}
			}
		}
		if name, ok := resource["service.name"].(string); ok && name != "" {
			return name
		}
	}
	if attrs, ok := raw["attributes"].(map[string]any); ok {
		if name, ok := attrs["service.name"].(string); ok && name != "" {
			return name
		}
	}
	if name, ok := raw["service.name"].(string); ok && name != "" {
		return name
	}
	if service, ok := raw["service"].(map[string]any); ok {
		if name, ok := service["name"].(string); ok && name != "" {
			return name
		}
	}
	return ""
}

// formatQueryError builds an error carrying the response status, body, and
// the query pretty-printed for pasting into a console.
func formatQueryError(status string, body, queryJSON []byte) error {
	var pretty bytes.Buffer
	_ = json.Indent(&pretty, queryJSON, "", "  ")
	if pretty.Len() == 0 {
		pretty.Write(queryJSON)
	}
	return fmt.Errorf("search failed: %s\nError: %s\n\nQuery:\n%s", status, string(body), pretty.String())
}
