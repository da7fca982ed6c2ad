package graph

import (
	"eventnet/backend/internal/constants"
	"eventnet/backend/internal/model"
)

var (
	userNode = nodeSpec{
		label: constants.LabelUser,
		key:   constants.UserKey,
		fields: map[string]fieldKind{
			"name":        textField,
			"dateOfBirth": optionalDateField,
			"gender":      textField,
			"location":    nestedField,
			"phoneNumber": textField,
			"email":       textField,
		},
	}
	eventNode = nodeSpec{
		label: constants.LabelEvent,
		key:   constants.EventKey,
		fields: map[string]fieldKind{
			"name":        textField,
			"location":    nestedField,
			"date":        dateField,
			"description": textField,
		},
	}
)

// FriendOfFriend is a user reached through the friendship graph
type FriendOfFriend struct {
	UserID   int64        `json:"userID"`
	Distance int          `json:"distance"`
	User     model.Record `json:"user"`
}

// Relationship is one edge in a bulk load. From is always a user ID; To is a
// user ID for friendships and an event ID for attendance.
type Relationship struct {
	Type string `json:"type" binding:"required"`
	From int64  `json:"from"`
	To   int64  `json:"to"`
}

// BulkLoadResult counts what a bulk load wrote
type BulkLoadResult struct {
	Users         int `json:"users"`
	Events        int `json:"events"`
	Relationships int `json:"relationships"`
}

// GraphStats summarises the stored graph
type GraphStats struct {
	Users       int64 `json:"users"`
	Events      int64 `json:"events"`
	Friendships int64 `json:"friendships"`
	Attendances int64 `json:"attendances"`
}
