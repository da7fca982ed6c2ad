package model

// Tag is an interest label
type Tag struct {
	ID       int64
	Name     string
	Category Nested
}

// NewTag creates a tag
func NewTag(id int64, name string, category Nested) *Tag {
	return &Tag{ID: id, Name: name, Category: category}
}

// Serialize returns the tagID, tagName and tagCategory attributes
func (t Tag) Serialize() Record {
	return Record{
		"tagID":       t.ID,
		"tagName":     t.Name,
		"tagCategory": t.Category.Value(),
	}
}

// TagFromRecord is the inverse of Tag.Serialize. tagID is required.
func TagFromRecord(r Record) (*Tag, error) {
	id, err := requireInt64(r, "tagID")
	if err != nil {
		return nil, err
	}
	category, err := NestedFrom(r["tagCategory"])
	if err != nil {
		return nil, err
	}
	return NewTag(id, getString(r, "tagName"), category), nil
}
