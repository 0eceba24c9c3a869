package main

import (
	"os"
	"parking/config"
	"parking/helper"
	"parking/shared/logger"
	"strings"

	"github.com/rs/zerolog/log"
)

var actions = []string{helper.ActionUp, helper.ActionDown, helper.ActionDrop, helper.ActionStepUp}

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.UseEnvironmentOutput(cfg)
	logger.SetLogLevel(cfg)

	if len(os.Args) != 2 {
		log.Fatal().Msgf("usage: migrate <%s>", strings.Join(actions, "|"))
	}

	action := os.Args[1]
	if err := helper.Runner(cfg, action); err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("migration failed")
	}
}
