package kafka

import (
	"context"
	"time"

	"github.com/pkg/errors"
	kgo "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Handler processes one message. An error is logged and the message is
// still committed.
type Handler func(ctx context.Context, m kgo.Message) error

// MessageReader is the part of *kafka.Reader the consumer drives.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kgo.Message, error)
	CommitMessages(ctx context.Context, msgs ...kgo.Message) error
	Close() error
}

type ReaderConfig struct {
	Brokers []string
	GroupID string
	Topic   string
}

type Consumer struct {
	reader MessageReader
	handle Handler
	// backoff after a failed fetch
	backoff time.Duration
}

func NewReader(cfg ReaderConfig) (*kgo.Reader, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	return kgo.NewReader(kgo.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	}), nil
}

func NewConsumer(r MessageReader, h Handler) *Consumer {
	return &Consumer{reader: r, handle: h, backoff: time.Second}
}

// Run fetches until ctx is done, then closes the reader.
func (c *Consumer) Run(ctx context.Context) error {
	defer func() { _ = c.reader.Close() }()

	log := logrus.WithField("component", "kafka-consumer")
	log.Info("consumer started")
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopping")
				return nil
			}
			log.WithError(err).Warn("fetch failed")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.backoff):
			}
			continue
		}

		if c.handle != nil {
			if err := c.handle(ctx, m); err != nil {
				log.WithError(err).WithFields(logrus.Fields{"topic": m.Topic, "offset": m.Offset}).Warn("handler failed")
			}
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			log.WithError(err).Warn("commit failed")
		}
	}
}
