package logs

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"beadcolors/internal/logging"
)

var coreKeys = []string{"ts", "level", "msg", "source"}

// Entry is one decoded line of the JSON run log.
type Entry struct {
	Time    string
	Level   string
	Message string
	Fields  map[string]any
}

// ParseEntry decodes a JSON log line. Lines that are not JSON objects
// report false.
func ParseEntry(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}
	entry := Entry{
		Time:    stringField(raw, "ts"),
		Level:   stringField(raw, "level"),
		Message: stringField(raw, "msg"),
		Fields:  make(map[string]any, len(raw)),
	}
	for key, value := range raw {
		if !slices.Contains(coreKeys, key) {
			entry.Fields[key] = value
		}
	}
	return entry, true
}

// Field returns a field rendered as a string, or "" when absent.
func (e Entry) Field(key string) string {
	return stringField(e.Fields, key)
}

// Filter narrows log entries to a run or brand. Empty fields match anything;
// RunID also matches by prefix.
type Filter struct {
	RunID string
	Brand string
}

// Match reports whether e passes f.
func (f Filter) Match(e Entry) bool {
	if f.RunID != "" && !strings.HasPrefix(e.Field(logging.FieldRunID), f.RunID) {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(e.Field(logging.FieldBrand), f.Brand) {
		return false
	}
	return true
}

// Format renders e as a single console line with its fields in key order.
func (e Entry) Format() string {
	var b strings.Builder
	if e.Time != "" {
		b.WriteString(e.Time)
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s %s", strings.ToUpper(e.Level), e.Message)

	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, " %s=%s", key, e.Field(key))
	}
	return b.String()
}

func stringField(m map[string]any, key string) string {
	value, ok := m[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(data)
}
