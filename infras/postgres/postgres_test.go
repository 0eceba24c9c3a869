package postgres_test

import (
	"net/url"
	"parking/config"
	"parking/infras/postgres"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		endpoint postgres.Endpoint
		extra    url.Values
		want     string
	}{
		{
			name: "ssl mode and timezone",
			endpoint: postgres.Endpoint{
				Host: "db", Port: "5432", Username: "parking", Password: "secret",
				Name: "parking", Timezone: "Asia/Jakarta", SSLMode: "disable",
			},
			want: "postgres://parking:secret@db:5432/parking?sslmode=disable&timezone=Asia%2FJakarta",
		},
		{
			name: "password is escaped",
			endpoint: postgres.Endpoint{
				Host: "db", Port: "5432", Username: "parking", Password: "p@ss/word", Name: "parking",
			},
			want: "postgres://parking:p%40ss%2Fword@db:5432/parking",
		},
		{
			name:     "extra values",
			endpoint: postgres.Endpoint{Host: "db", Port: "5432", Username: "u", Password: "p", Name: "n", SSLMode: "require"},
			extra:    url.Values{"x-migrations-table": {"schema_migrations"}},
			want:     "postgres://u:p@db:5432/n?sslmode=require&x-migrations-table=schema_migrations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postgres.DSN(tt.endpoint, tt.extra))
		})
	}
}

func TestEndpoints_ApplyPrefix(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.Read.Name = "parking"
	cfg.DB.Postgres.Read.Host = "replica"
	cfg.DB.Postgres.Write.Name = "parking"
	cfg.DB.Postgres.Write.Host = "primary"

	read := postgres.ReadEndpoint(cfg)
	write := postgres.WriteEndpoint(cfg)

	assert.Equal(t, "test_parking", read.Name)
	assert.Equal(t, "replica", read.Host)
	assert.Equal(t, "test_parking", write.Name)
	assert.Equal(t, "primary", write.Host)
}
