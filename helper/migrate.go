package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"parking/config"
	"parking/infras/postgres"
	"parking/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

const migrationsTableParam = "x-migrations-table"

func connectionString(config *config.Config) string {
	return postgres.DSN(postgres.WriteEndpoint(config), url.Values{
		migrationsTableParam: {config.DB.Postgres.MigrationTable},
	})
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, "postgres")
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, connectionString(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action string) error {
	var run func(mig *migrate.Migrate) error

	switch action {
	case ActionUp:
		run = func(mig *migrate.Migrate) error { return mig.Up() }
	case ActionDown:
		run = func(mig *migrate.Migrate) error { return mig.Steps(-1) }
	case ActionStepUp:
		run = func(mig *migrate.Migrate) error { return mig.Steps(1) }
	case ActionDrop:
		run = func(mig *migrate.Migrate) error { return mig.Down() }
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration completed successfully")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, ActionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, ActionDrop)
}
