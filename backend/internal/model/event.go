package model

import "time"

// Event is something users can attend
type Event struct {
	ID          int64
	Name        string
	Location    Nested
	Date        time.Time
	Description string
}

// NewEvent builds an event. A zero date means now.
func NewEvent(id int64, name string, location Nested, date time.Time, description string) *Event {
	if date.IsZero() {
		date = time.Now()
	}
	return &Event{
		ID:          id,
		Name:        name,
		Location:    location,
		Date:        NormalizeTime(date),
		Description: description,
	}
}

// Serialize returns the event attributes
func (e Event) Serialize() Record {
	return Record{
		"id":          e.ID,
		"name":        e.Name,
		"location":    e.Location.Value(),
		"date":        FormatTime(e.Date),
		"description": e.Description,
	}
}

// EventFromRecord is the inverse of Event.Serialize. A missing date becomes
// the current time and a missing description becomes empty.
func EventFromRecord(r Record) (*Event, error) {
	id, err := requireInt64(r, "id")
	if err != nil {
		return nil, err
	}
	location, err := NestedFrom(r["location"])
	if err != nil {
		return nil, err
	}
	date, err := getTime(r, "date")
	if err != nil {
		return nil, err
	}
	var when time.Time
	if date != nil {
		when = *date
	}
	return NewEvent(id, getString(r, "name"), location, when, getString(r, "description")), nil
}
