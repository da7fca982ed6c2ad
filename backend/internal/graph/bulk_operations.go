package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"eventnet/backend/internal/constants"
	"eventnet/backend/internal/model"
	apperrors "eventnet/backend/pkg/errors"
)

// ============================================================================
// Bulk Load
// ============================================================================

type bulkStatement struct {
	query  string
	params map[string]interface{}
	// link statements must report linked = true
	link bool
	desc string
	// set on create statements
	node *nodeSpec
	id   int64
}

// BulkLoad creates all users, then all events, then all relationships in a
// single write transaction. Any failure rolls the whole load back.
func (r *Repository) BulkLoad(ctx context.Context, users []*model.User, events []*model.Event, relationships []Relationship) (*BulkLoadResult, error) {
	statements, err := planBulkLoad(users, events, relationships)
	if err != nil {
		return nil, err
	}

	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		return nil, r.storeError("bulk load", err)
	}
	// Rolls back unless Commit succeeded
	defer tx.Close(ctx)

	for _, stmt := range statements {
		result, err := tx.Run(ctx, stmt.query, stmt.params)
		if err != nil {
			return nil, r.bulkError(stmt, err)
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, r.bulkError(stmt, err)
		}
		if stmt.link && !getBoolFromRecord(record, "linked") {
			r.logger.Warn("Bulk load aborted: relationship endpoint missing", zap.String("statement", stmt.desc))
			return nil, apperrors.NewInvalidField(stmt.desc, "endpoint not found")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, r.storeError("bulk load commit", err)
	}

	res := &BulkLoadResult{
		Users:         len(users),
		Events:        len(events),
		Relationships: len(relationships),
	}
	r.logger.Info("Bulk load committed",
		zap.Int("users", res.Users),
		zap.Int("events", res.Events),
		zap.Int("relationships", res.Relationships),
	)
	return res, nil
}

func (r *Repository) bulkError(stmt bulkStatement, err error) error {
	if stmt.node != nil {
		return r.createError(*stmt.node, stmt.id, err)
	}
	return r.storeError("bulk load", err, zap.String("statement", stmt.desc))
}

// planBulkLoad validates every input before anything is sent to the store
func planBulkLoad(users []*model.User, events []*model.Event, relationships []Relationship) ([]bulkStatement, error) {
	statements := make([]bulkStatement, 0, len(users)+len(events)+len(relationships))

	for i, u := range users {
		if u == nil {
			return nil, apperrors.NewTypeConstraint("*model.User", nil)
		}
		props, err := recordToProps(u.NodeProperties())
		if err != nil {
			return nil, err
		}
		statements = append(statements, createStatement(userNode, u.UserID, props, fmt.Sprintf("users[%d]", i)))
	}

	for i, e := range events {
		if e == nil {
			return nil, apperrors.NewTypeConstraint("*model.Event", nil)
		}
		props, err := recordToProps(e.Serialize())
		if err != nil {
			return nil, err
		}
		statements = append(statements, createStatement(eventNode, e.ID, props, fmt.Sprintf("events[%d]", i)))
	}

	for i, rel := range relationships {
		var query string
		switch rel.Type {
		case constants.RelFriendsWith:
			if rel.From == rel.To {
				return nil, apperrors.NewInvalidField(fmt.Sprintf("relationships[%d]", i), "a user cannot befriend themselves")
			}
			query = friendshipQuery
		case constants.RelAttended:
			query = attendanceQuery
		default:
			return nil, apperrors.NewInvalidField(fmt.Sprintf("relationships[%d].type", i), fmt.Sprintf("unknown relationship type %q", rel.Type))
		}
		statements = append(statements, bulkStatement{
			query:  query,
			params: map[string]interface{}{"fromID": rel.From, "toID": rel.To},
			link:   true,
			desc:   fmt.Sprintf("relationships[%d] %d-[:%s]->%d", i, rel.From, rel.Type, rel.To),
		})
	}

	return statements, nil
}

func createStatement(ns nodeSpec, id int64, props map[string]interface{}, desc string) bulkStatement {
	return bulkStatement{
		query: fmt.Sprintf(`
			CREATE (n:%s {%s: $key})
			SET n += $props
			RETURN n
		`, ns.label, ns.key),
		params: map[string]interface{}{"key": id, "props": props},
		desc:   desc,
		node:   &ns,
		id:     id,
	}
}
