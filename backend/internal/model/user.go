package model

// User is a member of the network
type User struct {
	Person
	UserID         int64
	Tags           []Tag   // unique by tag ID
	AttendedEvents []Event // unique by event ID
}

// NewUser builds a user; duplicate tags and events are dropped, first wins
func NewUser(userID int64, person Person, tags []Tag, attendedEvents []Event) *User {
	return &User{
		Person:         person,
		UserID:         userID,
		Tags:           dedupeTags(tags),
		AttendedEvents: dedupeEvents(attendedEvents),
	}
}

// AddTag adds an interest label, reporting false if it was already present
func (u *User) AddTag(tag Tag) bool {
	if u.HasTag(tag.ID) {
		return false
	}
	u.Tags = append(u.Tags, tag)
	return true
}

// HasTag reports whether the user carries the tag
func (u *User) HasTag(tagID int64) bool {
	for _, t := range u.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// AttendEvent records attendance, reporting false if already recorded
func (u *User) AttendEvent(event Event) bool {
	if u.HasAttended(event.ID) {
		return false
	}
	u.AttendedEvents = append(u.AttendedEvents, event)
	return true
}

// HasAttended reports whether the user attended the event
func (u *User) HasAttended(eventID int64) bool {
	for _, e := range u.AttendedEvents {
		if e.ID == eventID {
			return true
		}
	}
	return false
}

// Serialize returns the profile plus userID, tags and attended events
func (u User) Serialize() Record {
	r := u.Person.Serialize()
	r["userID"] = u.UserID
	r["tags"] = serializeAll(u.Tags)
	r["attendedEvents"] = serializeAll(u.AttendedEvents)
	return r
}

// NodeProperties returns the attributes persisted on a User node. Tags and
// attended events live elsewhere and are not included.
func (u User) NodeProperties() Record {
	r := u.Person.Serialize()
	r["userID"] = u.UserID
	return r
}

// UserFromRecord is the inverse of User.Serialize. userID is required.
func UserFromRecord(r Record) (*User, error) {
	userID, err := requireInt64(r, "userID")
	if err != nil {
		return nil, err
	}
	person, err := PersonFromRecord(r)
	if err != nil {
		return nil, err
	}

	tagRecords, err := getRecords(r, "tags")
	if err != nil {
		return nil, err
	}
	tags := make([]Tag, 0, len(tagRecords))
	for _, tr := range tagRecords {
		tag, err := TagFromRecord(tr)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}

	eventRecords, err := getRecords(r, "attendedEvents")
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(eventRecords))
	for _, er := range eventRecords {
		event, err := EventFromRecord(er)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}

	return NewUser(userID, person, tags, events), nil
}
