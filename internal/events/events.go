// Package events publishes engagement activity to Redis channels so
// downstream consumers (the movie catalog's aggregate counters, feeds)
// can react without polling the ledger.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Engagement event kinds.
const (
	KindLike          = "like"
	KindUnlike        = "unlike"
	KindRate          = "rate"
	KindUnrate        = "unrate"
	KindReview        = "review"
	KindReviewDeleted = "review_deleted"
	KindHelpfulVote   = "helpful_vote"
)

// Engagement is one ledger mutation, as seen on the wire.
type Engagement struct {
	Kind     string `json:"kind"`
	UserID   uint   `json:"user_id,omitempty"`
	MovieID  uint   `json:"movie_id"`
	Score    int    `json:"score,omitempty"`
	ReviewID uint   `json:"review_id,omitempty"`
}

// Publisher provides helpers to publish engagement events into Redis
// channels. A Publisher with a nil client is a no-op.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher creates a new Publisher using the provided Redis client.
func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// Publish sends the event to the movie's channel and the firehose
// channel.
func (p *Publisher) Publish(ctx context.Context, ev Engagement) error {
	if p.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if ev.MovieID != 0 {
		if err := p.rdb.Publish(ctx, MovieChannel(ev.MovieID), string(payload)).Err(); err != nil {
			return err
		}
	}
	return p.rdb.Publish(ctx, "engagement:all", string(payload)).Err()
}

// StartSubscriber subscribes to `engagement:movie:*` and the firehose and
// calls onMessage for each incoming message. onMessage receives channel
// and payload.
func (p *Publisher) StartSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if p.rdb == nil {
		return nil
	}
	sub := p.rdb.PSubscribe(ctx, "engagement:movie:*", "engagement:all")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in engagement subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// MovieChannel derives the Redis channel name for a movie.
func MovieChannel(movieID uint) string {
	return "engagement:movie:" + strconv.FormatUint(uint64(movieID), 10)
}
