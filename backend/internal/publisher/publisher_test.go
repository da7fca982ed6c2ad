package publisher

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventnet/backend/internal/model"
	apperrors "eventnet/backend/pkg/errors"
)

func sampleUser() *model.User {
	return model.NewUser(1, model.NewPerson("John Doe", model.Date(1990, time.January, 1), "male",
		model.Place("New York", "USA", ""), "+1234567890", "john@example.com"), nil, nil)
}

func TestStreamValues(t *testing.T) {
	values := streamValues("evt-1", sampleUser())

	assert.Equal(t, map[string]interface{}{
		"eventId": "evt-1",
		"userId":  "1",
		"action":  "created",
		"name":    "John Doe",
	}, values)
}

func TestNewPublisher_Defaults(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	p := NewPublisher(client, "", "")
	assert.Equal(t, "user_created", p.channel)
	assert.Equal(t, "user_events", p.stream)

	p = NewPublisher(client, "custom", "audit")
	assert.Equal(t, "custom", p.channel)
	assert.Equal(t, "audit", p.stream)
}

func TestPublishUserCreated_NilUser(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	err := NewPublisher(client, "", "").PublishUserCreated(context.Background(), nil)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeModel))
}

func TestPublishUserCreated_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	err := NewPublisher(client, "", "").PublishUserCreated(context.Background(), sampleUser())
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypePublish))
}

// Integration test: needs a Redis server at REDIS_URL (default localhost)
func TestPublishUserCreated_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379"
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	channel := "test_user_created_" + time.Now().Format("150405.000")
	stream := "test_user_events_" + time.Now().Format("150405.000")
	defer client.Del(context.Background(), stream)

	sub := client.Subscribe(ctx, channel)
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	p := NewPublisher(client, channel, stream)
	require.NoError(t, p.PublishUserCreated(ctx, sampleUser()))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var got model.User
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, "John Doe", got.Name)

	entries, err := client.XRange(ctx, stream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1", entries[0].Values["userId"])
	assert.Equal(t, "created", entries[0].Values["action"])
	assert.NotEmpty(t, entries[0].Values["eventId"])
}
