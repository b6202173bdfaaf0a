package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/GeorgeMish/Yatube/internal/app"
	"github.com/GeorgeMish/Yatube/internal/migrate"
	"github.com/GeorgeMish/Yatube/internal/seed"
	"github.com/GeorgeMish/Yatube/internal/shared/db"
	"github.com/GeorgeMish/Yatube/internal/shared/jwt"
	"github.com/GeorgeMish/Yatube/internal/user"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := db.Open(loadConfig())
			if err != nil {
				return err
			}
			if err := migrate.AutoMigrateAll(store); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrated")
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	var o seed.Options
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with fake users, groups, posts, comments and follows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := db.Open(loadConfig())
			if err != nil {
				return err
			}
			sum, err := seed.Run(cmd.Context(), store, o)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "users=%d groups=%d posts=%d comments=%d follows=%d\n",
				sum.Users, sum.Groups, sum.Posts, sum.Comments, sum.Follows)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.Users, "users", 10, "number of users")
	f.IntVar(&o.Groups, "groups", 3, "number of groups")
	f.IntVar(&o.PostsPerUser, "posts", 15, "posts per user")
	f.IntVar(&o.CommentsPerPost, "comments", 2, "comments per post")
	f.Int64Var(&o.Seed, "seed", 0, "random seed, 0 for a random one")
	return cmd
}

const backendFlag = "backend"

var cacheFlags = map[string]cobraflags.Flag{
	backendFlag: &cobraflags.StringFlag{
		Name:  backendFlag,
		Value: "",
		Usage: "Cache backend to clear (memory, redis). Defaults to CACHE_BACKEND",
	},
}

func newCacheCommand() *cobra.Command {
	cache := &cobra.Command{Use: "cache", Short: "Page cache maintenance"}
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig()
			if b := cacheFlags[backendFlag].GetString(); b != "" {
				cfg.CacheBackend = strings.ToLower(b)
			}
			store, closeFn, err := app.OpenCache(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()
			if cfg.CacheBackend != "redis" {
				fmt.Fprintln(cmd.OutOrStdout(), "memory cache lives in the server process; use POST /admin/cache/clear")
				return nil
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "page cache cleared")
			return nil
		},
	}
	cobraflags.RegisterMap(clearCmd, cacheFlags)
	cache.AddCommand(clearCmd)
	return cache
}

func newTokenCommand() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token USERNAME",
		Short: "Print a session token for a user, for local testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			store, err := db.Open(cfg)
			if err != nil {
				return err
			}
			u, err := user.NewRepository(store).GetByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tok, err := jwt.New(cfg.JWTSecret).Make(u.ID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
