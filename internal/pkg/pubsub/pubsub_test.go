package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadEvent_JSON(t *testing.T) {
	event := &ThreadEvent{
		Type:       EventNewMessage,
		ThreadID:   1,
		SenderID:   2,
		ReceiverID: 3,
		Content:    "Hello",
		CreatedAt:  "2026-06-01T12:00:00Z",
	}

	// Marshal to JSON
	data, err := json.Marshal(event)
	require.NoError(t, err)

	// Verify snake_case keys
	var raw map[string]interface{}
	err = json.Unmarshal(data, &raw)
	require.NoError(t, err)

	assert.Contains(t, raw, "thread_id")
	assert.Contains(t, raw, "sender_id")
	assert.Contains(t, raw, "receiver_id")

	// Unmarshal back
	var decoded ThreadEvent
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, event.ThreadID, decoded.ThreadID)
	assert.Equal(t, event.SenderID, decoded.SenderID)
	assert.Equal(t, event.ReceiverID, decoded.ReceiverID)
	assert.Equal(t, event.Content, decoded.Content)
}

func TestThreadEvent_OmitEmpty(t *testing.T) {
	event := &ThreadEvent{
		Type:       EventStatusChange,
		ThreadID:   1,
		SenderID:   2,
		ReceiverID: 3,
		Status:     "accepted",
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	// Content and CreatedAt should be omitted when empty
	var raw map[string]interface{}
	err = json.Unmarshal(data, &raw)
	require.NoError(t, err)

	_, hasContent := raw["content"]
	_, hasCreatedAt := raw["created_at"]
	assert.False(t, hasContent, "empty content should be omitted")
	assert.False(t, hasCreatedAt, "empty created_at should be omitted")
}

// Integration tests with real Redis (skip if not available)
func TestPublisherSubscriber_Integration(t *testing.T) {
	// Try to connect to Redis
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis not available, skipping integration test")
	}
	defer client.Close()

	publisher := NewPublisher(client)
	subscriber := NewSubscriber(client)

	testCtx, testCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer testCancel()

	received := make(chan *ThreadEvent, 1)

	// Start subscriber in goroutine
	go func() {
		subscriber.Subscribe(testCtx, func(event *ThreadEvent) {
			received <- event
		})
	}()

	// Give subscriber time to connect
	time.Sleep(100 * time.Millisecond)

	event := &ThreadEvent{
		Type:       EventNewMessage,
		ThreadID:   123,
		SenderID:   456,
		ReceiverID: 789,
		Content:    "Is the date still open?",
	}

	err := publisher.PublishThreadEvent(testCtx, event)
	require.NoError(t, err)

	// Wait for event
	select {
	case receivedEvent := <-received:
		assert.Equal(t, event.ThreadID, receivedEvent.ThreadID)
		assert.Equal(t, event.SenderID, receivedEvent.SenderID)
		assert.Equal(t, event.ReceiverID, receivedEvent.ReceiverID)
		assert.Equal(t, EventNewMessage, receivedEvent.Type)
		assert.Equal(t, event.Content, receivedEvent.Content)
	case <-testCtx.Done():
		t.Fatal("Timeout waiting for event")
	}
}

func TestNewPublisher(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	defer client.Close()

	publisher := NewPublisher(client)
	assert.NotNil(t, publisher)
}

func TestNewSubscriber(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	defer client.Close()

	subscriber := NewSubscriber(client)
	assert.NotNil(t, subscriber)
}
