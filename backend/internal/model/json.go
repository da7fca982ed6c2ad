package model

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes the user in its record form
func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Serialize())
}

// UnmarshalJSON decodes a user from its record form
func (u *User) UnmarshalJSON(data []byte) error {
	rec, err := decodeRecord(data)
	if err != nil {
		return err
	}
	parsed, err := UserFromRecord(rec)
	if err != nil {
		return err
	}
	*u = *parsed
	return nil
}

// MarshalJSON encodes the event in its record form
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Serialize())
}

// UnmarshalJSON decodes an event from its record form
func (e *Event) UnmarshalJSON(data []byte) error {
	rec, err := decodeRecord(data)
	if err != nil {
		return err
	}
	parsed, err := EventFromRecord(rec)
	if err != nil {
		return err
	}
	*e = *parsed
	return nil
}

// MarshalJSON encodes the tag in its record form
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Serialize())
}

// UnmarshalJSON decodes a tag from its record form
func (t *Tag) UnmarshalJSON(data []byte) error {
	rec, err := decodeRecord(data)
	if err != nil {
		return err
	}
	parsed, err := TagFromRecord(rec)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

// MarshalJSON encodes the group in its record form
func (g Group) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Serialize())
}

// UnmarshalJSON decodes a group from its record form
func (g *Group) UnmarshalJSON(data []byte) error {
	rec, err := decodeRecord(data)
	if err != nil {
		return err
	}
	parsed, err := GroupFromRecord(rec)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}

// MarshalJSON encodes the nested value as either a string or an object
func (n Nested) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value())
}

// UnmarshalJSON accepts a string, an object, or null
func (n *Nested) UnmarshalJSON(data []byte) error {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := NestedFrom(raw)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
