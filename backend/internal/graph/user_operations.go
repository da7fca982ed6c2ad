package graph

import (
	"context"

	"eventnet/backend/internal/model"
	apperrors "eventnet/backend/pkg/errors"
)

// ============================================================================
// User Operations
// ============================================================================

// AddUser creates a User node keyed by userID
func (r *Repository) AddUser(ctx context.Context, user *model.User) (model.Record, error) {
	if user == nil {
		return nil, apperrors.NewTypeConstraint("*model.User", nil)
	}
	props, err := recordToProps(user.NodeProperties())
	if err != nil {
		return nil, err
	}
	return r.createNode(ctx, userNode, user.UserID, props)
}

// GetUserByID returns the user's attributes, or nil if there is no such user
func (r *Repository) GetUserByID(ctx context.Context, userID int64) (model.Record, error) {
	return r.getNode(ctx, userNode, userID)
}

// GetAllUsers returns every user ordered by userID
func (r *Repository) GetAllUsers(ctx context.Context) ([]model.Record, error) {
	return r.listNodes(ctx, userNode)
}

// UpdateUser sets only the supplied fields. Returns nil if there is no such
// user.
func (r *Repository) UpdateUser(ctx context.Context, userID int64, fields model.Record) (model.Record, error) {
	return r.updateNode(ctx, userNode, userID, fields)
}

// RemoveUser deletes the user together with its friendships and attendance
func (r *Repository) RemoveUser(ctx context.Context, userID int64) (bool, error) {
	return r.removeNode(ctx, userNode, userID)
}
