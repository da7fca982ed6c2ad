package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"eventnet/backend/internal/model"
	apperrors "eventnet/backend/pkg/errors"
	"eventnet/backend/pkg/logger"
)

// constraintViolation is the Neo4j status code for a uniqueness failure
const constraintViolation = "Neo.ClientError.Schema.ConstraintValidationFailed"

// Repository handles all Neo4j database operations. Every method opens its
// own session and closes it before returning.
type Repository struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

// Option configures a Repository
type Option func(*Repository)

// WithDatabase targets a named database instead of the server default
func WithDatabase(name string) Option {
	return func(r *Repository) {
		r.database = name
	}
}

// WithLogger replaces the global logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Repository) {
		r.logger = l
	}
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext, opts ...Option) *Repository {
	r := &Repository{
		driver: driver,
		logger: logger.Named("graph"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

func (r *Repository) newSession(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: r.database,
	})
}

// TestConnection runs a trivial statement and returns the server's reply
func (r *Repository) TestConnection(ctx context.Context) (string, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `RETURN "Connected to Neo4j!" AS message`, nil)
	if err != nil {
		return "", r.storeError("test connection", err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return "", r.storeError("test connection", err)
	}
	return getStringFromRecord(record, "message"), nil
}

// Add persists a user or an event. Any other kind fails with a
// TypeConstraintError before the store is contacted.
func (r *Repository) Add(ctx context.Context, entity model.Serializable) (model.Record, error) {
	switch e := entity.(type) {
	case *model.User:
		return r.AddUser(ctx, e)
	case model.User:
		return r.AddUser(ctx, &e)
	case *model.Event:
		return r.AddEvent(ctx, e)
	case model.Event:
		return r.AddEvent(ctx, &e)
	}
	return nil, apperrors.NewTypeConstraint("*model.User or *model.Event", entity)
}

// fieldKind says how an updated value is checked and stored
type fieldKind int

const (
	textField fieldKind = iota
	// dateField must hold a time; optionalDateField may also be null
	dateField
	optionalDateField
	nestedField
)

// nodeSpec names a node label, its key property and the properties an
// update may assign
type nodeSpec struct {
	label  string
	key    string
	fields map[string]fieldKind
}

// createNode issues CREATE keyed by id. Without a uniqueness constraint a
// duplicate id yields a second node.
func (r *Repository) createNode(ctx context.Context, ns nodeSpec, id int64, props map[string]interface{}) (model.Record, error) {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		CREATE (n:%s {%s: $key})
		SET n += $props
		RETURN n
	`, ns.label, ns.key)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"key":   id,
		"props": props,
	})
	if err != nil {
		return nil, r.createError(ns, id, err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return nil, r.createError(ns, id, err)
	}

	r.logger.Info("Node created",
		zap.String("label", ns.label),
		zap.Int64("id", id),
	)
	return nodeRecordFrom(record, "n"), nil
}

func (r *Repository) createError(ns nodeSpec, id int64, err error) error {
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) && neoErr.Code == constraintViolation {
		r.logger.Warn("Duplicate key rejected",
			zap.String("label", ns.label),
			zap.Int64("id", id),
		)
		return apperrors.NewDuplicateKey(ns.label, id, err)
	}
	return r.storeError("create "+ns.label, err, zap.Int64("id", id))
}

// getNode returns nil when nothing matches
func (r *Repository) getNode(ctx context.Context, ns nodeSpec, id int64) (model.Record, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (n:%s {%s: $key})
		RETURN n
		LIMIT 1
	`, ns.label, ns.key)

	result, err := session.Run(ctx, query, map[string]interface{}{"key": id})
	if err != nil {
		return nil, r.storeError("get "+ns.label, err, zap.Int64("id", id))
	}

	if result.Next(ctx) {
		return nodeRecordFrom(result.Record(), "n"), nil
	}
	if err := result.Err(); err != nil {
		return nil, r.storeError("get "+ns.label, err, zap.Int64("id", id))
	}
	return nil, nil
}

func (r *Repository) listNodes(ctx context.Context, ns nodeSpec) ([]model.Record, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (n:%s)
		RETURN n
		ORDER BY n.%s
	`, ns.label, ns.key)

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, r.storeError("list "+ns.label, err)
	}
	return collectNodes(ctx, result, "n", func(err error) error {
		return r.storeError("list "+ns.label, err)
	})
}

// updateNode assigns exactly the supplied fields and leaves the rest alone.
// Returns nil when nothing matches.
func (r *Repository) updateNode(ctx context.Context, ns nodeSpec, id int64, fields model.Record) (model.Record, error) {
	if len(fields) == 0 {
		return r.getNode(ctx, ns, id)
	}

	clause, params, err := buildSetClause("n", fields, ns)
	if err != nil {
		return nil, err
	}
	params["key"] = id

	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (n:%s {%s: $key})
		SET %s
		RETURN n
	`, ns.label, ns.key, clause)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, r.storeError("update "+ns.label, err, zap.Int64("id", id))
	}

	if result.Next(ctx) {
		r.logger.Info("Node updated",
			zap.String("label", ns.label),
			zap.Int64("id", id),
			zap.Strings("fields", sortedKeys(fields)),
		)
		return nodeRecordFrom(result.Record(), "n"), nil
	}
	if err := result.Err(); err != nil {
		return nil, r.storeError("update "+ns.label, err, zap.Int64("id", id))
	}
	return nil, nil
}

// removeNode detaches and deletes; reports whether anything was deleted
func (r *Repository) removeNode(ctx context.Context, ns nodeSpec, id int64) (bool, error) {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (n:%s {%s: $key})
		DETACH DELETE n
	`, ns.label, ns.key)

	result, err := session.Run(ctx, query, map[string]interface{}{"key": id})
	if err != nil {
		return false, r.storeError("remove "+ns.label, err, zap.Int64("id", id))
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return false, r.storeError("remove "+ns.label, err, zap.Int64("id", id))
	}

	deleted := summary.Counters().NodesDeleted()
	if deleted > 0 {
		r.logger.Info("Node removed",
			zap.String("label", ns.label),
			zap.Int64("id", id),
			zap.Int("relationships_deleted", summary.Counters().RelationshipsDeleted()),
		)
	}
	return deleted > 0, nil
}

// storeError logs a store failure where it happened and wraps it
func (r *Repository) storeError(operation string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("operation", operation), zap.Error(err))
	r.logger.Error("Graph operation failed", fields...)
	return apperrors.NewGraphQueryFailed(operation, err)
}
