// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

// Package source provides paged access to log entry collections. A Pager
// serves fixed-size pages of entries on demand, which is the shape the list
// engine's incremental loader expects.
package source

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// Level is a normalized log severity.
type Level string

const (
	LevelTrace   Level = "TRACE"
	LevelDebug   Level = "DEBUG"
	LevelInfo    Level = "INFO"
	LevelWarn    Level = "WARN"
	LevelError   Level = "ERROR"
	LevelFatal   Level = "FATAL"
	LevelUnknown Level = "UNKNOWN"
)

// Entry is one log record, normalized across sources. ID is stable for the
// lifetime of the source and unique within it.
type Entry struct {
	ID        string
	Timestamp time.Time
	Level     Level
	Message   string
	Origin    string // file path or index name the entry came from
	Fields    map[string]any
	Raw       string
}

var timestampPatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d+Z`), time.RFC3339Nano},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z`), time.RFC3339},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d+`), "2006-01-02 15:04:05.000"},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`), "2006-01-02 15:04:05"},
	{regexp.MustCompile(`\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}`), "2006/01/02 15:04:05"},
}

var levelPatterns = []struct {
	re    *regexp.Regexp
	level Level
}{
	{regexp.MustCompile(`(?i)\b(TRACE)\b`), LevelTrace},
	{regexp.MustCompile(`(?i)\b(DEBUG)\b`), LevelDebug},
	{regexp.MustCompile(`(?i)\b(INFO)\b`), LevelInfo},
	{regexp.MustCompile(`(?i)\b(WARN(?:ING)?)\b`), LevelWarn},
	{regexp.MustCompile(`(?i)\b(ERROR|ERR)\b`), LevelError},
	{regexp.MustCompile(`(?i)\b(FATAL|CRITICAL)\b`), LevelFatal},
}

// ParseEntry parses one raw log line into an Entry. JSON-shaped lines are
// decoded structurally; anything else falls back to pattern scanning for a
// timestamp and level, with the whole line as the message.
func ParseEntry(line, origin string) Entry {
	e := Entry{
		Timestamp: time.Now(),
		Level:     LevelUnknown,
		Origin:    origin,
		Raw:       line,
	}

	if strings.HasPrefix(strings.TrimSpace(line), "{") {
		if parseJSONEntry(line, &e) {
			return e
		}
	}

	e.Message = line
	e.Level = scanLevel(line)
	if ts := scanTimestamp(line); !ts.IsZero() {
		e.Timestamp = ts
	}
	return e
}

// parseJSONEntry fills e from a JSON log line, pulling message, level, and
// timestamp out of their common field names. Leftover fields land in Fields.
func parseJSONEntry(line string, e *Entry) bool {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return false
	}

	for _, key := range []string{"message", "msg", "log", "text", "body"} {
		if v, ok := raw[key].(string); ok {
			e.Message = v
			delete(raw, key)
			break
		}
	}

	for _, key := range []string{"level", "severity", "lvl", "log.level", "loglevel"} {
		if v, ok := raw[key].(string); ok {
			e.Level = NormalizeLevel(v)
			delete(raw, key)
			break
		}
	}

	for _, key := range []string{"timestamp", "time", "ts", "@timestamp", "datetime"} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if parsed := parseTimestampString(t); !parsed.IsZero() {
				e.Timestamp = parsed
			}
		case float64:
			// Unix seconds or milliseconds
			if t > 1e12 {
				e.Timestamp = time.UnixMilli(int64(t))
			} else {
				e.Timestamp = time.Unix(int64(t), 0)
			}
		}
		delete(raw, key)
		break
	}

	e.Fields = raw
	return true
}

func scanTimestamp(line string) time.Time {
	for _, p := range timestampPatterns {
		if match := p.re.FindString(line); match != "" {
			if t, err := time.Parse(p.layout, match); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func parseTimestampString(s string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02 15:04:05.000",
		"2006-01-02 15:04:05",
		"2006/01/02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func scanLevel(line string) Level {
	for _, p := range levelPatterns {
		if p.re.MatchString(line) {
			return p.level
		}
	}
	return LevelUnknown
}

// NormalizeLevel maps a raw severity string onto the Level constants.
func NormalizeLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return LevelDebug
	case "INFO", "INFORMATION":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR", "ERR":
		return LevelError
	case "FATAL", "CRITICAL", "PANIC":
		return LevelFatal
	default:
		return LevelUnknown
	}
}

// ServiceName derives a service name from a log file path.
// "logs/server-err.log" becomes "server".
func ServiceName(path string) string {
	name := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		name = path[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[:idx]
	}
	for _, suffix := range []string{"-err", "-error", "-out", "-info", "-debug", "-log"} {
		if strings.HasSuffix(strings.ToLower(name), suffix) {
			name = name[:len(name)-len(suffix)]
			break
		}
	}
	if name == "" {
		return "unknown"
	}
	return name
}
