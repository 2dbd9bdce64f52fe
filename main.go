package main

import (
	"os"
	"time"

	"StorylineStudio-server/config"
	"StorylineStudio-server/routers"
	"StorylineStudio-server/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	config.InitConfig()
	initLogger()

	backend := service.NewClient(config.AppConfig.Backend.Addr)
	studio := service.NewManager(backend)

	r := routers.InitRouter(studio)
	log.Info().Str("port", config.AppConfig.Server.Port).
		Str("backend", config.AppConfig.Backend.Addr).
		Msg("storyline studio server starting")
	if err := r.Run(config.AppConfig.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func initLogger() {
	level, err := zerolog.ParseLevel(config.AppConfig.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
