package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	apperrors "eventnet/backend/pkg/errors"
)

// Record is the flat attribute form of an entity. Values are primitives,
// nested Records, or slices of either.
type Record map[string]interface{}

// Serializable is implemented by every entity that has a record form
type Serializable interface {
	Serialize() Record
}

// TimeLayout is the single textual form dates are stored and exchanged in
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeTime converts t to UTC at the precision TimeLayout keeps, so a
// value survives a format/parse cycle unchanged
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// FormatTime renders t in UTC using TimeLayout
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime accepts RFC3339 (with or without fraction) and plain dates
func ParseTime(s string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}

// ToInt64 converts the numeric shapes produced by JSON decoding and by the
// graph driver into an int64
func ToInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

func requireInt64(r Record, key string) (int64, error) {
	val, ok := r[key]
	if !ok || val == nil {
		return 0, apperrors.NewInvalidField(key, "required")
	}
	id, ok := ToInt64(val)
	if !ok {
		return 0, apperrors.NewInvalidField(key, fmt.Sprintf("not an integer: %v", val))
	}
	return id, nil
}

func getString(r Record, key string) string {
	val, ok := r[key]
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return fmt.Sprint(val)
}

// getTime returns nil when the key is absent or null
func getTime(r Record, key string) (*time.Time, error) {
	val, ok := r[key]
	if !ok || val == nil {
		return nil, nil
	}
	switch v := val.(type) {
	case time.Time:
		t := v.UTC()
		return &t, nil
	case string:
		if v == "" {
			return nil, nil
		}
		t, err := ParseTime(v)
		if err != nil {
			return nil, apperrors.NewInvalidField(key, err.Error())
		}
		return &t, nil
	}
	return nil, apperrors.NewInvalidField(key, fmt.Sprintf("not a time: %T", val))
}

// getRecords reads a list of nested records; absent means empty
func getRecords(r Record, key string) ([]Record, error) {
	val, ok := r[key]
	if !ok || val == nil {
		return nil, nil
	}
	switch list := val.(type) {
	case []Record:
		return list, nil
	case []interface{}:
		out := make([]Record, 0, len(list))
		for _, item := range list {
			rec, ok := asRecord(item)
			if !ok {
				return nil, apperrors.NewInvalidField(key, fmt.Sprintf("element is not an object: %T", item))
			}
			out = append(out, rec)
		}
		return out, nil
	}
	return nil, apperrors.NewInvalidField(key, fmt.Sprintf("not a list: %T", val))
}

func asRecord(v interface{}) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]interface{}:
		return Record(m), true
	case Serializable:
		return m.Serialize(), true
	}
	return nil, false
}

func serializeAll[T Serializable](items []T) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		out = append(out, item.Serialize())
	}
	return out
}

// decodeRecord decodes a JSON object keeping integers exact
func decodeRecord(data []byte) (Record, error) {
	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return Record(raw), nil
}
