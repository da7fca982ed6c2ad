package model

import (
	"encoding/json"
	"fmt"
	"reflect"

	apperrors "eventnet/backend/pkg/errors"
)

// Nested is a value that is either free-form text or a structured object,
// used for locations and tag categories. The zero value is empty.
type Nested struct {
	Text   string
	Fields map[string]interface{}
}

// Text builds a free-form nested value
func Text(s string) Nested {
	return Nested{Text: s}
}

// Fields builds a structured nested value
func Fields(fields map[string]interface{}) Nested {
	return Nested{Fields: fields}
}

// Place is a structured location with the usual city/country/venue keys.
// Empty parts are left out.
func Place(city, country, venue string) Nested {
	fields := map[string]interface{}{}
	for k, v := range map[string]string{"city": city, "country": country, "venue": venue} {
		if v != "" {
			fields[k] = v
		}
	}
	return Fields(fields)
}

// NestedOf wraps another entity's record form
func NestedOf(s Serializable) Nested {
	return Fields(s.Serialize())
}

// IsZero reports whether the value carries nothing
func (n Nested) IsZero() bool {
	return n.Fields == nil && n.Text == ""
}

// IsStructured reports whether the value is an object rather than text
func (n Nested) IsStructured() bool {
	return n.Fields != nil
}

// Value returns the record form: an object, a string, or nil
func (n Nested) Value() interface{} {
	if n.Fields != nil {
		out := make(map[string]interface{}, len(n.Fields))
		for k, v := range n.Fields {
			if s, ok := v.(Serializable); ok {
				v = map[string]interface{}(s.Serialize())
			}
			out[k] = v
		}
		return out
	}
	if n.Text == "" {
		return nil
	}
	return n.Text
}

// Equal compares two nested values by content
func (n Nested) Equal(other Nested) bool {
	if n.IsStructured() != other.IsStructured() {
		return false
	}
	if !n.IsStructured() {
		return n.Text == other.Text
	}
	a, errA := json.Marshal(n.Value())
	b, errB := json.Marshal(other.Value())
	return errA == nil && errB == nil && string(a) == string(b)
}

// String returns the text form, or the JSON encoding of structured fields
func (n Nested) String() string {
	if !n.IsStructured() {
		return n.Text
	}
	data, err := json.Marshal(n.Value())
	if err != nil {
		return fmt.Sprint(n.Fields)
	}
	return string(data)
}

// NestedFrom reads a record value back into a Nested
func NestedFrom(v interface{}) (Nested, error) {
	switch val := v.(type) {
	case nil:
		return Nested{}, nil
	case Nested:
		return val, nil
	case string:
		return Text(val), nil
	case Record:
		return Fields(map[string]interface{}(val)), nil
	case map[string]interface{}:
		return Fields(val), nil
	case Serializable:
		return NestedOf(val), nil
	}
	return Nested{}, apperrors.NewInvalidField("", fmt.Sprintf("unsupported nested value %s", reflect.TypeOf(v)))
}

// EncodeProperty renders the value as a single graph property: the JSON
// encoding of Value, so text is stored quoted and objects as JSON objects.
// Empty values encode to nil.
func (n Nested) EncodeProperty() (interface{}, error) {
	if n.IsZero() {
		return nil, nil
	}
	data, err := json.Marshal(n.Value())
	if err != nil {
		return nil, fmt.Errorf("failed to encode nested value: %w", err)
	}
	return string(data), nil
}

// DecodeProperty inverts EncodeProperty. A property that is not valid JSON
// text is an unencoded free-form value and comes back as text.
func DecodeProperty(v interface{}) Nested {
	s, ok := v.(string)
	if !ok {
		n, _ := NestedFrom(v)
		return n
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return Text(s)
	}
	switch val := decoded.(type) {
	case string:
		return Text(val)
	case map[string]interface{}:
		return Fields(val)
	}
	return Text(s)
}
