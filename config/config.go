package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Database is one postgres endpoint. Read and Write may point at different hosts.
type Database struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

type CORS struct {
	Enable           bool     `envconfig:"ENABLE"`
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
}

// RateLimiter allows MaxRequests per client within a fixed window.
type RateLimiter struct {
	Enable        bool `envconfig:"ENABLE"`
	MaxRequests   int  `envconfig:"MAX_REQUESTS"  default:"100"`
	WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
}

type Config struct {
	Server struct {
		Env                   string `envconfig:"ENV"       default:"development"`
		LogLevel              string `envconfig:"LOG_LEVEL" default:"info"`
		Port                  string `envconfig:"PORT"      default:"8080"`
		Host                  string `envconfig:"HOST"`
		RequestTimeoutSeconds int    `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"30"`
		Shutdown              struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name        string      `envconfig:"APP_NAME" default:"parking"`
		Timezone    string      `envconfig:"TIMEZONE" default:"UTC"`
		CORS        CORS        `envconfig:"CORS"`
		RateLimiter RateLimiter `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	// Bootstrap is the admin account ensured on start.
	Bootstrap struct {
		AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin1"`
		AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
	} `envconfig:"BOOTSTRAP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int      `envconfig:"MAX_RETRY"       default:"5"`
			RetryWaitTime  int      `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string   `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			AutoMigrate    bool     `envconfig:"AUTO_MIGRATE"`
			Prefix         string   `envconfig:"PREFIX"`
			Read           Database `envconfig:"READ"`
			Write          Database `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			Reservation string `envconfig:"RESERVATION" default:"parking.reservations"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Load reads .env when present and then the process environment. It runs once per process.
func Load() error {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Warn().Err(err).Msg("no .env file loaded, using process environment")
		}

		if err := envconfig.Process("", &conf); err != nil {
			loadErr = fmt.Errorf("process environment: %w", err)

			return
		}

		log.Info().Msg("configuration loaded")
	})

	return loadErr
}

func Get() *Config {
	if err := Load(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	return &conf
}
