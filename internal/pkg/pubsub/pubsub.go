package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelThreadEvents = "thread_events"
)

// 事件类型
const (
	EventNewMessage   = "new_message"
	EventStatusChange = "status_change"
)

// ThreadEvent 会话事件，server 端订阅后推给在线的对端
type ThreadEvent struct {
	Type       string `json:"type"`
	ThreadID   int64  `json:"thread_id"`
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Content    string `json:"content,omitempty"`
	Status     string `json:"status,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishThreadEvent 发布会话事件
func (p *Publisher) PublishThreadEvent(ctx context.Context, event *ThreadEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal thread event: %w", err)
	}

	return p.client.Publish(ctx, ChannelThreadEvents, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅会话事件
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*ThreadEvent)) error {
	pubsub := s.client.Subscribe(ctx, ChannelThreadEvents)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event ThreadEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}
