package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string

	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	DBReplicaDSNs []string
	AutoMigrate   bool

	RedisHost     string
	RedisPort     string
	CacheBackend  string
	CacheIndexTTL time.Duration

	PageSize   int
	LoginURL   string
	JWTSecret  string
	AdminToken string

	KafkaBrokers []string
	KafkaAcks    string
	PostsTopic   string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	LogLevel  string
	LogFormat string

	OtelEndpoint    string
	OtelServiceName string
	OtelSampleRatio float64
	Env             string

	// WriteLimit caps POSTs per viewer per WriteLimitWindow; 0 disables it.
	// Counts live in the Redis at REDIS_HOST whatever CACHE_BACKEND is.
	WriteLimit       int64
	WriteLimitWindow time.Duration
	EventsGroupID    string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_HOST", "blog-db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "blog")
	v.SetDefault("DB_PASSWORD", "blogpass")
	v.SetDefault("DB_NAME", "blog_db")
	v.SetDefault("DB_REPLICA_DSNS", "")
	v.SetDefault("AUTO_MIGRATE", false)
	v.SetDefault("REDIS_HOST", "redis-blog")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("CACHE_INDEX_TTL", 20*time.Second)
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("LOGIN_URL", "/auth/login/")
	v.SetDefault("JWT_SECRET", "replace-this-with-a-strong-secret")
	v.SetDefault("ADMIN_TOKEN", "")
	v.SetDefault("KAFKA_BOOTSTRAP_SERVERS", "")
	v.SetDefault("KAFKA_REQUIRED_ACKS", "one")
	v.SetDefault("POSTS_TOPIC", "posts.created")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_ACCESS_KEY", "minio")
	v.SetDefault("S3_SECRET_KEY", "minio123")
	v.SetDefault("S3_BUCKET", "media")
	v.SetDefault("S3_USE_SSL", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_SERVICE_NAME", "blog-service")
	v.SetDefault("OTEL_TRACES_SAMPLER_ARG", 1.0)
	v.SetDefault("ENV", "dev")
	v.SetDefault("WRITE_RATE_LIMIT", 0)
	v.SetDefault("WRITE_RATE_WINDOW", time.Minute)
	v.SetDefault("EVENTS_GROUP_ID", "blogctl-events")
}

// LoadConfig reads the process environment, after loading the optional env
// files (.env in the working directory when none are named). Variables
// already set in the environment win over the files.
func LoadConfig(envFiles ...string) *Config {
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppPort:       v.GetString("APP_PORT"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPass:        v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBReplicaDSNs: splitList(v.GetString("DB_REPLICA_DSNS")),
		AutoMigrate:   v.GetBool("AUTO_MIGRATE"),
		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		CacheBackend:  strings.ToLower(v.GetString("CACHE_BACKEND")),
		CacheIndexTTL: v.GetDuration("CACHE_INDEX_TTL"),
		PageSize:      v.GetInt("PAGE_SIZE"),
		LoginURL:      v.GetString("LOGIN_URL"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		AdminToken:    v.GetString("ADMIN_TOKEN"),
		KafkaBrokers:  splitList(v.GetString("KAFKA_BOOTSTRAP_SERVERS")),
		KafkaAcks:     v.GetString("KAFKA_REQUIRED_ACKS"),
		PostsTopic:    v.GetString("POSTS_TOPIC"),
		S3Endpoint:    v.GetString("S3_ENDPOINT"),
		S3AccessKey:   v.GetString("S3_ACCESS_KEY"),
		S3SecretKey:   v.GetString("S3_SECRET_KEY"),
		S3Bucket:      v.GetString("S3_BUCKET"),
		S3UseSSL:      v.GetBool("S3_USE_SSL"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),

		OtelEndpoint:    v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelServiceName: v.GetString("OTEL_SERVICE_NAME"),
		OtelSampleRatio: clampRatio(v.GetFloat64("OTEL_TRACES_SAMPLER_ARG")),
		Env:             v.GetString("ENV"),

		WriteLimit:       v.GetInt64("WRITE_RATE_LIMIT"),
		WriteLimitWindow: v.GetDuration("WRITE_RATE_WINDOW"),
		EventsGroupID:    v.GetString("EVENTS_GROUP_ID"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c *Config) String() string {
	return fmt.Sprintf("AppPort=%s, DB=%s:%s/%s, Cache=%s(%s), Kafka=%v, S3=%q",
		c.AppPort, c.DBHost, c.DBPort, c.DBName, c.CacheBackend, c.CacheIndexTTL, c.KafkaBrokers, c.S3Endpoint)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func clampRatio(f float64) float64 {
	if f < 0 || f > 1 {
		return 1
	}
	return f
}
