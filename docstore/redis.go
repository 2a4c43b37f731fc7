package docstore

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"toolcrib/document"
)

// Redis stores the document as a JSON blob under one key and fans out
// change notifications over a pub/sub channel. Every save publishes the
// writer's id; subscribers reload the whole document on any foreign
// notification.
type Redis struct {
	client  *redis.Client
	key     string
	channel string
	// writerID lets a client skip notifications for its own saves.
	writerID string
}

func NewRedis(client *redis.Client, key, channel string) *Redis {
	return &Redis{
		client:   client,
		key:      key,
		channel:  channel,
		writerID: uuid.New().String(),
	}
}

func (r *Redis) Load(ctx context.Context) (*document.Document, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", ErrSync, err)
	}
	doc, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrSync, err)
	}
	return doc, nil
}

func (r *Redis) Save(ctx context.Context, doc *document.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrSync, err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: save: %v", ErrSync, err)
	}
	// Notification delivery is best-effort; a missed publish only delays
	// peers until their next load.
	if err := r.client.Publish(ctx, r.channel, r.writerID).Err(); err != nil {
		log.Printf("docstore: publish change: %v", err)
	}
	return nil
}

func (r *Redis) Subscribe(ctx context.Context, fn ChangeFunc) (Unsubscribe, error) {
	sub := r.client.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("%w: subscribe: %v", ErrSync, err)
	}

	done := make(chan struct{})
	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if msg.Payload == r.writerID {
					continue
				}
				doc, err := r.Load(context.Background())
				fn(doc, err)
			}
		}
	}()

	return func() {
		close(done)
		sub.Close()
	}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
