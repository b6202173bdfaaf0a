// Command blogctl runs administrative tasks against the blog database and
// page cache.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GeorgeMish/Yatube/configs"
	"github.com/GeorgeMish/Yatube/internal/shared/logx"
)

const envFileFlag = "env-file"

var envFile string

func loadConfig() *configs.Config {
	cfg := configs.LoadConfig(envFile)
	logx.Setup(cfg.LogLevel, "text")
	return cfg
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "blogctl",
		Short:         "Administrative tasks for the blog service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, envFileFlag, ".env", "optional file with environment variables")
	root.AddCommand(newMigrateCommand(), newSeedCommand(), newCacheCommand(), newTokenCommand(), newEventsCommand())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("blogctl failed")
		stop()
		os.Exit(1)
	}
}
