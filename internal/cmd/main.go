package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sfgleague/gridiron/internal/platform"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	configPath := getEnv("CONFIG_PATH", "config.yaml")
	config, err := loadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
	}

	// Headless adapters; the gateway process swaps in its own Messenger
	// and Directory when it embeds this service graph.
	msgr := platform.NewLogMessenger()
	dir := platform.NewStaticDirectory(nil)

	services, err := setupServices(config, msgr, dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up services")
	}
	defer services.Close()

	ctx := context.Background()

	// Make sure the board exists on boot so the channel is never empty.
	doc, err := services.Standings.Standings(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load standings")
	}
	if _, err := services.Presenter.PostOrUpdate(ctx, doc); err != nil {
		log.Warn().Err(err).Msg("could not post standings on startup")
	}

	log.Info().
		Str("league", config.League.Name).
		Int("season", doc.Season).
		Msg("league service ready")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
}
