package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	kgo "github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"

	"github.com/GeorgeMish/Yatube/internal/kafka"
	"github.com/GeorgeMish/Yatube/internal/post"
)

func newEventsCommand() *cobra.Command {
	events := &cobra.Command{Use: "events", Short: "Inspect published post events"}
	var group string
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Print post events as they are published",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig()
			if group == "" {
				group = cfg.EventsGroupID
			}
			r, err := kafka.NewReader(kafka.ReaderConfig{Brokers: cfg.KafkaBrokers, GroupID: group, Topic: cfg.PostsTopic})
			if err != nil {
				return err
			}
			return kafka.NewConsumer(r, printEvent(cmd.OutOrStdout())).Run(cmd.Context())
		},
	}
	tail.Flags().StringVar(&group, "group", "", "consumer group, defaults to EVENTS_GROUP_ID")
	events.AddCommand(tail)
	return events
}

func printEvent(out io.Writer) kafka.Handler {
	return func(_ context.Context, m kgo.Message) error {
		var ev post.Event
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "%s post=%d author=%s %q\n",
			ev.PubDate.UTC().Format("2006-01-02 15:04:05"), ev.ID, ev.Author, ev.Preview)
		return err
	}
}
