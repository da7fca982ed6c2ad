package graph

import (
	"context"

	"eventnet/backend/internal/model"
	apperrors "eventnet/backend/pkg/errors"
)

// ============================================================================
// Event Operations
// ============================================================================

// AddEvent creates an Event node keyed by id
func (r *Repository) AddEvent(ctx context.Context, event *model.Event) (model.Record, error) {
	if event == nil {
		return nil, apperrors.NewTypeConstraint("*model.Event", nil)
	}
	props, err := recordToProps(event.Serialize())
	if err != nil {
		return nil, err
	}
	return r.createNode(ctx, eventNode, event.ID, props)
}

// GetEventByID returns the event's attributes, or nil if there is no such
// event
func (r *Repository) GetEventByID(ctx context.Context, eventID int64) (model.Record, error) {
	return r.getNode(ctx, eventNode, eventID)
}

// GetAllEvents returns every event ordered by id
func (r *Repository) GetAllEvents(ctx context.Context) ([]model.Record, error) {
	return r.listNodes(ctx, eventNode)
}

// UpdateEvent sets only the supplied fields. Returns nil if there is no such
// event.
func (r *Repository) UpdateEvent(ctx context.Context, eventID int64, fields model.Record) (model.Record, error) {
	return r.updateNode(ctx, eventNode, eventID, fields)
}

// RemoveEvent deletes the event together with its attendance edges
func (r *Repository) RemoveEvent(ctx context.Context, eventID int64) (bool, error) {
	return r.removeNode(ctx, eventNode, eventID)
}
