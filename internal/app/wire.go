package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/GeorgeMish/Yatube/configs"
	"github.com/GeorgeMish/Yatube/internal/kafka"
	"github.com/GeorgeMish/Yatube/internal/media"
	"github.com/GeorgeMish/Yatube/internal/pagecache"
	"github.com/GeorgeMish/Yatube/internal/ratelimit"
	"github.com/GeorgeMish/Yatube/internal/shared/redisx"
)

// CachePrefix namespaces page cache keys in a shared Redis.
const CachePrefix = "blog:page:"

// OpenCache returns the page cache named by CACHE_BACKEND and a func that
// releases it.
func OpenCache(ctx context.Context, cfg *configs.Config) (pagecache.Store, func() error, error) {
	switch cfg.CacheBackend {
	case "", "memory":
		return pagecache.NewMemoryStore(nil), func() error { return nil }, nil
	case "redis":
		rdb, err := redisx.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return pagecache.NewRedisStore(rdb, CachePrefix), rdb.Close, nil
	default:
		return nil, nil, errors.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

// OpenImages uses S3 when an endpoint is configured and memory otherwise.
func OpenImages(ctx context.Context, cfg *configs.Config) (media.Storage, error) {
	if cfg.S3Endpoint == "" {
		logrus.Warn("S3_ENDPOINT not set, images are kept in memory")
		return media.NewMemoryStorage(), nil
	}
	s, err := media.NewS3Storage(media.S3Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		Bucket:    cfg.S3Bucket,
	})
	if err != nil {
		return nil, err
	}
	if err := s.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func OpenEvents(cfg *configs.Config) kafka.Writer {
	return kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.PostsTopic,
		Acks:    cfg.KafkaAcks,
	})
}

// OpenLimiter returns nil, and a no-op closer, when WRITE_RATE_LIMIT is 0.
func OpenLimiter(ctx context.Context, cfg *configs.Config) (*ratelimit.Limiter, func() error, error) {
	if cfg.WriteLimit <= 0 {
		return nil, func() error { return nil }, nil
	}
	rdb, err := redisx.Open(ctx, cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "rate limiter")
	}
	logrus.WithFields(logrus.Fields{"limit": cfg.WriteLimit, "window": cfg.WriteLimitWindow}).Info("write rate limit enabled")
	return ratelimit.New(rdb, cfg.WriteLimit, cfg.WriteLimitWindow), rdb.Close, nil
}
