package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"parking/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName         = "postgres"
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits reads and writes. Transactions always run on Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint mirrors the read and write sections of config.DB.Postgres.
type Endpoint struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Timezone string
	SSLMode  string
}

func ReadEndpoint(cfg *config.Config) Endpoint {
	endpoint := Endpoint(cfg.DB.Postgres.Read)
	endpoint.Name = cfg.DB.Postgres.Prefix + endpoint.Name

	return endpoint
}

func WriteEndpoint(cfg *config.Config) Endpoint {
	endpoint := Endpoint(cfg.DB.Postgres.Write)
	endpoint.Name = cfg.DB.Postgres.Prefix + endpoint.Name

	return endpoint
}

// DSN renders the endpoint as a postgres URL. Extra query values are appended as given.
func DSN(endpoint Endpoint, extra url.Values) string {
	query := url.Values{}
	if endpoint.SSLMode != "" {
		query.Set("sslmode", endpoint.SSLMode)
	}

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func New(cfg *config.Config) *Connection {
	retries := cfg.DB.Postgres.MaxRetry
	wait := time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second

	conn := &Connection{
		Read:  connect("read", ReadEndpoint(cfg), retries, wait),
		Write: connect("write", WriteEndpoint(cfg), retries, wait),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Int("maxRetry", retries).Msg("Could not connect to database")
	}

	return conn
}

func (c *Connection) Close() {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Str("name", name).Msg("Failed closing database connection")
		}
	}
}

func connect(name string, endpoint Endpoint, retries int, wait time.Duration) *sqlx.DB {
	logger := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.Name).
		Logger()

	for attempt := 1; attempt <= retries; attempt++ {
		db, err := sqlx.Connect(driverName, DSN(endpoint, nil))
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(wait)
	}

	return nil
}
