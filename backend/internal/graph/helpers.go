package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"eventnet/backend/internal/model"
	apperrors "eventnet/backend/pkg/errors"
)

// ============================================================================
// Record Helpers
// ============================================================================

func getStringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getInt64FromRecord(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return i
	}
	if i, ok := val.(int); ok {
		return int64(i)
	}
	return 0
}

func getBoolFromRecord(record *neo4j.Record, key string) bool {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return false
	}
	b, _ := val.(bool)
	return b
}

func getNodeFromRecord(record *neo4j.Record, key string) (neo4j.Node, bool) {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return neo4j.Node{}, false
	}
	node, ok := val.(neo4j.Node)
	return node, ok
}

// nodeRecordFrom maps the node under key to plain attributes
func nodeRecordFrom(record *neo4j.Record, key string) model.Record {
	node, ok := getNodeFromRecord(record, key)
	if !ok {
		return nil
	}
	return propsToRecord(node.Props)
}

func collectNodes(ctx context.Context, result neo4j.ResultWithContext, key string, onErr func(error) error) ([]model.Record, error) {
	records := []model.Record{}
	for result.Next(ctx) {
		if rec := nodeRecordFrom(result.Record(), key); rec != nil {
			records = append(records, rec)
		}
	}
	if err := result.Err(); err != nil {
		return nil, onErr(err)
	}
	return records, nil
}

// ============================================================================
// Property Mapping
// ============================================================================

// nestedProperties are stored as JSON text and decoded on the way out
var nestedProperties = map[string]bool{
	"location":    true,
	"tagCategory": true,
}

// propsToRecord copies node properties into a record, decoding nested ones
func propsToRecord(props map[string]interface{}) model.Record {
	rec := make(model.Record, len(props))
	for k, v := range props {
		if nestedProperties[k] {
			v = model.DecodeProperty(v).Value()
		}
		rec[k] = v
	}
	return rec
}

// recordToProps prepares a record for storage as node properties
func recordToProps(rec model.Record) (map[string]interface{}, error) {
	props := make(map[string]interface{}, len(rec))
	for k, v := range rec {
		p, err := toProperty(k, v)
		if err != nil {
			return nil, err
		}
		props[k] = p
	}
	return props, nil
}

// toProperty converts a record value to something Neo4j can store as a
// property: primitives pass through, times become ISO text, nested values
// and objects become JSON text
func toProperty(key string, v interface{}) (interface{}, error) {
	if nestedProperties[key] {
		n, err := model.NestedFrom(v)
		if err != nil {
			return nil, apperrors.NewInvalidField(key, err.Error())
		}
		return n.EncodeProperty()
	}

	switch val := v.(type) {
	case nil, string, bool, int64, float64:
		return val, nil
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, apperrors.NewInvalidField(key, "not a number")
		}
		return f, nil
	case time.Time:
		return model.FormatTime(val), nil
	case *time.Time:
		if val == nil {
			return nil, nil
		}
		return model.FormatTime(*val), nil
	case model.Nested:
		return val.EncodeProperty()
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, apperrors.NewInvalidField(key, fmt.Sprintf("cannot store %T", v))
	}
	return string(data), nil
}

// ============================================================================
// Dynamic SET Clause
// ============================================================================

var propertyName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// buildSetClause renders "v.a = $p0, v.b = $p1" for exactly the supplied
// fields, in name order. Only the node's updatable properties are accepted
// and the key property cannot be reassigned.
func buildSetClause(variable string, fields model.Record, ns nodeSpec) (string, map[string]interface{}, error) {
	names := sortedKeys(fields)
	assignments := make([]string, 0, len(names))
	params := make(map[string]interface{}, len(names)+1)

	for i, name := range names {
		if !propertyName.MatchString(name) {
			return "", nil, apperrors.NewInvalidField(name, "not a valid property name")
		}
		if name == ns.key {
			return "", nil, apperrors.NewInvalidField(name, "key property cannot be updated")
		}
		kind, ok := ns.fields[name]
		if !ok {
			return "", nil, apperrors.NewInvalidField(name, fmt.Sprintf("not an updatable %s property", ns.label))
		}
		value, err := updateValue(name, kind, fields[name])
		if err != nil {
			return "", nil, err
		}
		param := fmt.Sprintf("p%d", i)
		assignments = append(assignments, fmt.Sprintf("%s.%s = $%s", variable, name, param))
		params[param] = value
	}

	return strings.Join(assignments, ", "), params, nil
}

// updateValue checks an updated value against its field kind and returns
// the stored form. Dates are normalised to the single ISO text form.
func updateValue(name string, kind fieldKind, v interface{}) (interface{}, error) {
	switch kind {
	case textField:
		switch val := v.(type) {
		case nil, string:
			return val, nil
		}
		return nil, apperrors.NewInvalidField(name, fmt.Sprintf("must be text, got %T", v))

	case dateField, optionalDateField:
		switch val := v.(type) {
		case nil:
			if kind == optionalDateField {
				return nil, nil
			}
			return nil, apperrors.NewInvalidField(name, "required")
		case string:
			t, err := model.ParseTime(val)
			if err != nil {
				return nil, apperrors.NewInvalidField(name, err.Error())
			}
			return model.FormatTime(t), nil
		case time.Time:
			return model.FormatTime(val), nil
		case *time.Time:
			if val == nil {
				return updateValue(name, kind, nil)
			}
			return model.FormatTime(*val), nil
		}
		return nil, apperrors.NewInvalidField(name, fmt.Sprintf("must be a date, got %T", v))
	}

	return toProperty(name, v)
}

func sortedKeys(fields model.Record) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
