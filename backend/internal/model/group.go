package model

import (
	apperrors "eventnet/backend/pkg/errors"
)

// Group is a bounded set of users sharing some tags. MaxUsers <= 0 means
// no capacity limit.
type Group struct {
	ID         int64
	Users      []User
	CommonTags []Tag
	MaxUsers   int64
}

// NewGroup creates an empty group holding at most maxUsers members
func NewGroup(id int64, maxUsers int64) *Group {
	return &Group{ID: id, MaxUsers: maxUsers}
}

// IsFull is derived from membership, never stored
func (g *Group) IsFull() bool {
	return g.MaxUsers > 0 && int64(len(g.Users)) >= g.MaxUsers
}

// AddUser adds a member. Re-adding an existing member is a no-op.
func (g *Group) AddUser(u User) error {
	for _, existing := range g.Users {
		if existing.UserID == u.UserID {
			return nil
		}
	}
	if g.IsFull() {
		return apperrors.NewGroupFull(g.ID, g.MaxUsers)
	}
	g.Users = append(g.Users, u)
	return nil
}

// RemoveUser drops a member, reporting whether it was present
func (g *Group) RemoveUser(userID int64) bool {
	for i, u := range g.Users {
		if u.UserID == userID {
			g.Users = append(g.Users[:i], g.Users[i+1:]...)
			return true
		}
	}
	return false
}

// AddTag adds a common tag, reporting false if already present
func (g *Group) AddTag(tag Tag) bool {
	for _, t := range g.CommonTags {
		if t.ID == tag.ID {
			return false
		}
	}
	g.CommonTags = append(g.CommonTags, tag)
	return true
}

// Serialize returns the group with its members, tags and computed isFull
func (g Group) Serialize() Record {
	return Record{
		"groupID":    g.ID,
		"users":      serializeAll(g.Users),
		"commonTags": serializeAll(g.CommonTags),
		"maxUsers":   g.MaxUsers,
		"isFull":     g.IsFull(),
	}
}

// GroupFromRecord rebuilds a group. The stored isFull flag is ignored; more
// members than maxUsers is an error.
func GroupFromRecord(r Record) (*Group, error) {
	id, err := requireInt64(r, "groupID")
	if err != nil {
		return nil, err
	}
	var maxUsers int64
	if raw, ok := r["maxUsers"]; ok && raw != nil {
		if maxUsers, ok = ToInt64(raw); !ok {
			return nil, apperrors.NewInvalidField("maxUsers", "not an integer")
		}
	}
	g := NewGroup(id, maxUsers)

	userRecords, err := getRecords(r, "users")
	if err != nil {
		return nil, err
	}
	users := make([]User, 0, len(userRecords))
	for _, ur := range userRecords {
		u, err := UserFromRecord(ur)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	for _, u := range dedupeUsers(users) {
		if err := g.AddUser(u); err != nil {
			return nil, err
		}
	}

	tagRecords, err := getRecords(r, "commonTags")
	if err != nil {
		return nil, err
	}
	for _, tr := range tagRecords {
		t, err := TagFromRecord(tr)
		if err != nil {
			return nil, err
		}
		g.AddTag(*t)
	}
	return g, nil
}
