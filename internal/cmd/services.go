package main

import (
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/sfgleague/gridiron/internal/events"
	"github.com/sfgleague/gridiron/internal/gamereport"
	"github.com/sfgleague/gridiron/internal/identity"
	"github.com/sfgleague/gridiron/internal/platform"
	"github.com/sfgleague/gridiron/internal/standings"
	"github.com/sfgleague/gridiron/internal/statsheet"
)

type Services struct {
	Standings  *standings.App
	Presenter  *standings.Presenter
	Reports    *gamereport.App
	Reconciler *gamereport.Reconciler
	StatSheets *statsheet.App
	Publisher  events.Publisher
	Workbook   *statsheet.Workbook
}

// setupServices wires the dependency chain. The gateway adapter that
// ultimately hosts the bot hands in its Messenger and Directory here;
// headless runs use the logging adapters.
func setupServices(config *Config, msgr platform.Messenger, dir platform.Directory) (*Services, error) {
	clock := clockwork.NewRealClock()

	// Events
	var publisher events.Publisher = events.NopPublisher{}
	if config.NATS.URL != "" {
		jsCfg := events.DefaultJetStreamConfig()
		jsCfg.URL = config.NATS.URL
		jsCfg.StreamName = config.NATS.StreamName
		jsCfg.SubjectPrefix = config.NATS.SubjectPrefix
		p, err := events.NewJetStreamPublisher(jsCfg)
		if err != nil {
			return nil, fmt.Errorf("setup event publisher: %w", err)
		}
		publisher = p
	}

	// Ops log
	ops := platform.NewOpsLog(msgr, platform.ChannelID(config.League.LogsChannelID))

	// Standings
	standingsRepo := standings.NewRepository(config.League.StandingsFile)
	standingsApp := standings.NewApp(standingsRepo, publisher)
	presenter := standings.NewPresenter(msgr, dir, standingsApp, config.League.StandingsChannel, config.League.LogoURL)

	// Identity
	apiKey := os.Getenv("BLOXLINK_API_KEY")
	if apiKey == "" {
		log.Warn().Msg("BLOXLINK_API_KEY not set, falling back to name matching for stat lines")
	}
	linkClient := identity.NewClient(config.Identity.BaseURL, apiKey, config.League.GuildID)
	linkCache := identity.NewCache(linkClient, clock, config.identityTTL())

	// Stat sheets
	workbook, err := statsheet.OpenWorkbook(config.League.StatWorkbook)
	if err != nil {
		return nil, fmt.Errorf("setup stat workbook: %w", err)
	}
	sheetsApp := statsheet.NewApp(workbook, linkCache, dir, ops)

	// Game reports
	reconciler := gamereport.NewReconciler(
		standingsApp,
		presenter,
		publisher,
		msgr,
		dir,
		ops,
		clock,
		gamereport.ReconcilerConfig{
			ScoresChannel:  platform.ChannelID(config.League.ScoresChannelID),
			SessionTimeout: config.sessionTimeout(),
		},
	)
	reportsApp := gamereport.NewApp(sheetsApp, reconciler, dir, ops)

	return &Services{
		Standings:  standingsApp,
		Presenter:  presenter,
		Reports:    reportsApp,
		Reconciler: reconciler,
		StatSheets: sheetsApp,
		Publisher:  publisher,
		Workbook:   workbook,
	}, nil
}

// Close releases connections held by the service graph.
func (s *Services) Close() {
	if err := s.Publisher.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close event publisher")
	}
	if err := s.Workbook.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close stat workbook")
	}
}
