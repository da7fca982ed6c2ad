package constants

// Node labels
const (
	LabelUser  = "User"
	LabelEvent = "Event"
)

// Relationship types
const (
	// RelFriendsWith links User -> User. Stored directed, read as mutual.
	RelFriendsWith = "IS_FRIENDS_WITH"
	// RelAttended links User -> Event
	RelAttended = "ATTENDED"
)

// Key properties
const (
	UserKey  = "userID"
	EventKey = "id"
)

// FriendOfFriendDistance is the shortest-path hop count that qualifies a user
// as a friend of a friend
const FriendOfFriendDistance = 2

// Pub/sub defaults
const (
	DefaultUserCreatedChannel = "user_created"
	DefaultUserEventsStream   = "user_events"
	UserCreatedAction         = "created"
)
