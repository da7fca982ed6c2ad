package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"eventnet/backend/internal/constants"
	"eventnet/backend/internal/model"
	apperrors "eventnet/backend/pkg/errors"
)

// ============================================================================
// Friendship and Attendance Operations
// ============================================================================

// MERGE keeps at most one edge per ordered pair. Zero matched endpoints
// gives linked = false.
const (
	friendshipQuery = `
		MATCH (a:User {userID: $fromID})
		MATCH (b:User {userID: $toID})
		MERGE (a)-[:IS_FRIENDS_WITH]->(b)
		RETURN count(*) > 0 AS linked
	`

	attendanceQuery = `
		MATCH (u:User {userID: $fromID})
		MATCH (e:Event {id: $toID})
		MERGE (u)-[:ATTENDED]->(e)
		RETURN count(*) > 0 AS linked
	`
)

// CreateFriendship links fromID to toID with a single directed edge.
// Reports whether the edge exists afterwards; false means an endpoint is
// missing.
func (r *Repository) CreateFriendship(ctx context.Context, fromID, toID int64) (bool, error) {
	if fromID == toID {
		return false, apperrors.NewInvalidField("friendID", "a user cannot befriend themselves")
	}
	return r.mergeEdge(ctx, constants.RelFriendsWith, friendshipQuery, fromID, toID)
}

// AttendEvent records that the user attended the event, once
func (r *Repository) AttendEvent(ctx context.Context, userID, eventID int64) (bool, error) {
	return r.mergeEdge(ctx, constants.RelAttended, attendanceQuery, userID, eventID)
}

func (r *Repository) mergeEdge(ctx context.Context, relType, query string, fromID, toID int64) (bool, error) {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	fields := []zap.Field{zap.String("type", relType), zap.Int64("from", fromID), zap.Int64("to", toID)}

	result, err := session.Run(ctx, query, map[string]interface{}{
		"fromID": fromID,
		"toID":   toID,
	})
	if err != nil {
		return false, r.storeError("merge "+relType, err, fields...)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return false, r.storeError("merge "+relType, err, fields...)
	}

	linked := getBoolFromRecord(record, "linked")
	if linked {
		r.logger.Info("Relationship merged", fields...)
	} else {
		r.logger.Debug("Relationship endpoint missing", fields...)
	}
	return linked, nil
}

// GetFriendsOfFriends returns users whose shortest friendship path from
// userID is two hops. Edge direction is ignored; the user and their direct
// friends are never included. Ordered by distance, then userID.
func (r *Repository) GetFriendsOfFriends(ctx context.Context, userID int64) ([]FriendOfFriend, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (start:User {userID: $userID})
		MATCH (start)-[:IS_FRIENDS_WITH*1..2]-(candidate:User)
		WHERE candidate <> start
		WITH DISTINCT start, candidate
		MATCH p = shortestPath((start)-[:IS_FRIENDS_WITH*..2]-(candidate))
		WITH candidate, length(p) AS distance
		WHERE distance >= $minDistance
		RETURN candidate, distance
		ORDER BY distance ASC, candidate.userID ASC
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID":      userID,
		"minDistance": constants.FriendOfFriendDistance,
	})
	if err != nil {
		return nil, r.storeError("friends of friends", err, zap.Int64("user_id", userID))
	}

	fofs := []FriendOfFriend{}
	for result.Next(ctx) {
		record := result.Record()
		user := nodeRecordFrom(record, "candidate")
		if user == nil {
			continue
		}
		id, _ := model.ToInt64(user[constants.UserKey])
		fofs = append(fofs, FriendOfFriend{
			UserID:   id,
			Distance: int(getInt64FromRecord(record, "distance")),
			User:     user,
		})
	}
	if err := result.Err(); err != nil {
		return nil, r.storeError("friends of friends", err, zap.Int64("user_id", userID))
	}
	return fofs, nil
}

// GetFriends returns users linked to userID by a friendship edge in either
// direction
func (r *Repository) GetFriends(ctx context.Context, userID int64) ([]model.Record, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (u:User {userID: $userID})-[:IS_FRIENDS_WITH]-(f:User)
		WHERE f <> u
		RETURN DISTINCT f
		ORDER BY f.userID
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"userID": userID})
	if err != nil {
		return nil, r.storeError("get friends", err, zap.Int64("user_id", userID))
	}
	return collectNodes(ctx, result, "f", func(err error) error {
		return r.storeError("get friends", err, zap.Int64("user_id", userID))
	})
}

// GetAttendedEvents returns the events a user attended, ordered by id
func (r *Repository) GetAttendedEvents(ctx context.Context, userID int64) ([]model.Record, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (:User {userID: $userID})-[:ATTENDED]->(e:Event)
		RETURN DISTINCT e
		ORDER BY e.id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"userID": userID})
	if err != nil {
		return nil, r.storeError("get attended events", err, zap.Int64("user_id", userID))
	}
	return collectNodes(ctx, result, "e", func(err error) error {
		return r.storeError("get attended events", err, zap.Int64("user_id", userID))
	})
}
