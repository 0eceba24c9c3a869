package main

import (
	"context"
	"parking/config"
	"parking/di"
	"parking/helper"
	"parking/shared/logger"
	"time"

	"github.com/rs/zerolog/log"
)

const bootstrapTimeout = 30 * time.Second

// @title						Parking API
// @version					1.0
// @description				Parking lot reservation service.
// @BasePath					/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.UseEnvironmentOutput(cfg)
	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	app := di.InitializeService()

	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	err := app.Users.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword)
	cancel()

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap admin account")
	}

	app.HTTP.Serve()
}
