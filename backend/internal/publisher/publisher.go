package publisher

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"eventnet/backend/internal/constants"
	"eventnet/backend/internal/model"
	apperrors "eventnet/backend/pkg/errors"
	"eventnet/backend/pkg/logger"
)

// Publisher announces user lifecycle events over Redis. Every announcement
// goes to a pub/sub channel for live listeners and to a stream for
// consumers that catch up later.
type Publisher struct {
	client  redis.UniversalClient
	channel string
	stream  string
	logger  *zap.Logger
}

// NewPublisher creates a publisher. Empty channel or stream names fall back
// to the defaults.
func NewPublisher(client redis.UniversalClient, channel, stream string) *Publisher {
	if channel == "" {
		channel = constants.DefaultUserCreatedChannel
	}
	if stream == "" {
		stream = constants.DefaultUserEventsStream
	}
	return &Publisher{
		client:  client,
		channel: channel,
		stream:  stream,
		logger:  logger.Named("publisher"),
	}
}

// Close closes the underlying client
func (p *Publisher) Close() error {
	return p.client.Close()
}

// PublishUserCreated sends the full user to the channel and appends a
// summary entry to the stream. Both writes run concurrently; the first
// failure is returned.
func (p *Publisher) PublishUserCreated(ctx context.Context, user *model.User) error {
	if user == nil {
		return apperrors.NewTypeConstraint("*model.User", nil)
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return apperrors.NewPublishFailed(p.channel, err)
	}
	values := streamValues(uuid.NewString(), user)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := p.client.Publish(gctx, p.channel, payload).Err(); err != nil {
			return apperrors.NewPublishFailed(p.channel, err)
		}
		return nil
	})
	g.Go(func() error {
		err := p.client.XAdd(gctx, &redis.XAddArgs{
			Stream: p.stream,
			ID:     "*",
			Values: values,
		}).Err()
		if err != nil {
			return apperrors.NewPublishFailed(p.stream, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		p.logger.Error("Failed to publish user created",
			zap.Int64("user_id", user.UserID),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info("Published user created",
		zap.Int64("user_id", user.UserID),
		zap.String("channel", p.channel),
		zap.String("stream", p.stream),
	)
	return nil
}

// streamValues builds the flat field map stored in a stream entry
func streamValues(eventID string, user *model.User) map[string]interface{} {
	return map[string]interface{}{
		"eventId": eventID,
		"userId":  strconv.FormatInt(user.UserID, 10),
		"action":  constants.UserCreatedAction,
		"name":    user.Name,
	}
}
