package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/GeorgeMish/Yatube/configs"
	"github.com/GeorgeMish/Yatube/internal/shared/httpx"
)

type Store struct{ Base *gorm.DB }

// Wrap adapts an already opened connection, e.g. an in-memory database in tests.
func Wrap(g *gorm.DB) *Store { return &Store{Base: g} }

// GormConfig is shared by every dialector the service opens.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
}

// Open connects to Postgres, retrying with backoff while the database comes
// up. Replica DSNs, when configured, serve reads through dbresolver.
func Open(cfg *configs.Config) (*Store, error) {
	base, err := openWithRetry(cfg.DSN(), 8, time.Second)
	if err != nil {
		return nil, errors.Wrap(err, "db open")
	}

	sqlDB, err := base.DB()
	if err != nil {
		return nil, errors.Wrap(err, "db handle")
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if len(cfg.DBReplicaDSNs) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.DBReplicaDSNs))
		for _, dsn := range cfg.DBReplicaDSNs {
			replicas = append(replicas, postgres.Open(dsn))
		}
		if err := base.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, errors.Wrap(err, "dbresolver")
		}
		logrus.WithField("replicas", len(replicas)).Info("db read replicas registered")
	}

	if err := base.Use(tracing.NewPlugin()); err != nil {
		return nil, errors.Wrap(err, "db tracing")
	}
	return &Store{Base: base}, nil
}

func openWithRetry(dsn string, attempts int, sleep time.Duration) (*gorm.DB, error) {
	var last error
	for i := 1; i <= attempts; i++ {
		g, err := gorm.Open(postgres.Open(dsn), GormConfig())
		if err == nil {
			sqlDB, e := g.DB()
			if e == nil {
				if e = pingWithTimeout(sqlDB, 2*time.Second); e == nil {
					return g, nil
				}
			}
			last = e
		} else {
			last = err
		}
		logrus.WithError(last).WithField("attempt", i).Warn("db not ready")
		time.Sleep(sleep)
		if sleep < 8*time.Second {
			sleep *= 2
		}
	}
	return nil, last
}

func pingWithTimeout(sqlDB *sql.DB, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- sqlDB.Ping() }()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("db ping timeout after %s", timeout)
	}
}

// NotFound wraps err with a description, turning gorm.ErrRecordNotFound into
// httpx.ErrNotFound so handlers answer 404.
func NotFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrapf(httpx.ErrNotFound, format, args...)
	}
	return errors.Wrapf(err, format, args...)
}
