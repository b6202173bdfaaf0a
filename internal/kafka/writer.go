package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	kgo "github.com/segmentio/kafka-go"
)

// Writer publishes JSON encoded events to one topic.
type Writer interface {
	WriteJSON(ctx context.Context, key string, v any) error
	Close() error
}

type WriterConfig struct {
	Brokers []string
	Topic   string
	// Acks is one of "none", "one" or "all"; anything else means "one".
	Acks string
}

type writer struct {
	w *kgo.Writer
}

// NewWriter returns a Nop writer when no brokers are configured.
func NewWriter(cfg WriterConfig) Writer {
	if len(cfg.Brokers) == 0 {
		return Nop{}
	}
	var acks kgo.RequiredAcks
	switch strings.ToLower(cfg.Acks) {
	case "none":
		acks = kgo.RequireNone
	case "all":
		acks = kgo.RequireAll
	default:
		acks = kgo.RequireOne
	}
	return &writer{w: &kgo.Writer{
		Addr:                   kgo.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kgo.Hash{},
		RequiredAcks:           acks,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}}
}

func (wr *writer) WriteJSON(ctx context.Context, key string, v any) error {
	msg, err := Message(key, v)
	if err != nil {
		return err
	}
	return errors.Wrapf(wr.w.WriteMessages(ctx, msg), "kafka write %s", wr.w.Topic)
}

func (wr *writer) Close() error { return wr.w.Close() }

// Message encodes v as the value of a keyed message. Keying by author keeps
// one author's events on one partition.
func Message(key string, v any) (kgo.Message, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return kgo.Message{}, errors.Wrap(err, "encode event")
	}
	return kgo.Message{Key: []byte(key), Value: b, Time: time.Now()}, nil
}

// Nop drops every event.
type Nop struct{}

func (Nop) WriteJSON(context.Context, string, any) error { return nil }
func (Nop) Close() error                                 { return nil }
