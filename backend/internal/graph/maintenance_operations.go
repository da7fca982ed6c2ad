package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// ============================================================================
// Schema and Maintenance
// ============================================================================

var constraintStatements = []string{
	`CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.userID IS UNIQUE`,
	`CREATE CONSTRAINT event_id_unique IF NOT EXISTS FOR (e:Event) REQUIRE e.id IS UNIQUE`,
}

// EnsureConstraints installs the uniqueness constraints on user and event
// keys. Safe to run repeatedly.
func (r *Repository) EnsureConstraints(ctx context.Context) error {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	for _, stmt := range constraintStatements {
		result, err := session.Run(ctx, stmt, nil)
		if err != nil {
			return r.storeError("ensure constraints", err)
		}
		if _, err := result.Consume(ctx); err != nil {
			return r.storeError("ensure constraints", err)
		}
	}

	r.logger.Info("Uniqueness constraints ensured")
	return nil
}

// RemoveLegacyEvents deletes Event nodes from the old schema, which have no
// id, and returns how many were removed
func (r *Repository) RemoveLegacyEvents(ctx context.Context) (int, error) {
	return r.deleteMatching(ctx, "remove legacy events", `
		MATCH (e:Event)
		WHERE e.id IS NULL
		DETACH DELETE e
	`)
}

// Reset deletes every User and Event node and their relationships
func (r *Repository) Reset(ctx context.Context) (int, error) {
	return r.deleteMatching(ctx, "reset", `
		MATCH (n)
		WHERE n:User OR n:Event
		DETACH DELETE n
	`)
}

func (r *Repository) deleteMatching(ctx context.Context, operation, query string) (int, error) {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return 0, r.storeError(operation, err)
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return 0, r.storeError(operation, err)
	}

	deleted := summary.Counters().NodesDeleted()
	r.logger.Info("Nodes deleted",
		zap.String("operation", operation),
		zap.Int("count", deleted),
	)
	return deleted, nil
}

// Stats counts nodes and relationships
func (r *Repository) Stats(ctx context.Context) (*GraphStats, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		CALL { MATCH (u:User) RETURN count(u) AS users }
		CALL { MATCH (e:Event) RETURN count(e) AS events }
		CALL { MATCH ()-[f:IS_FRIENDS_WITH]->() RETURN count(f) AS friendships }
		CALL { MATCH ()-[a:ATTENDED]->() RETURN count(a) AS attendances }
		RETURN users, events, friendships, attendances
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, r.storeError("stats", err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return nil, r.storeError("stats", err)
	}

	return &GraphStats{
		Users:       getInt64FromRecord(record, "users"),
		Events:      getInt64FromRecord(record, "events"),
		Friendships: getInt64FromRecord(record, "friendships"),
		Attendances: getInt64FromRecord(record, "attendances"),
	}, nil
}
