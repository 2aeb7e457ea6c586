package standings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sfgleague/gridiron/internal/events"
	"github.com/sfgleague/gridiron/internal/models"
	"github.com/sfgleague/gridiron/internal/teams"
)

// StandingsRepository defines what the app layer needs from the repository.
type StandingsRepository interface {
	Load() (*models.StandingsDocument, error)
	Save(doc *models.StandingsDocument) error
}

// EventPublisher defines the event surface the app emits to.
type EventPublisher interface {
	PublishStandingsUpdated(ctx context.Context, p events.StandingsUpdatedPayload) error
	PublishSeasonReset(ctx context.Context, p events.SeasonResetPayload) error
}

// App handles standings business logic. All load-mutate-save sequences
// run under one mutex; network calls (event publishes, message posts)
// happen strictly outside it.
type App struct {
	repo StandingsRepository
	pub  EventPublisher

	mu sync.Mutex
}

// NewApp creates a new standings App. pub may be events.NopPublisher{}.
func NewApp(repo StandingsRepository, pub EventPublisher) *App {
	return &App{repo: repo, pub: pub}
}

// Standings returns the current ledger snapshot.
func (a *App) Standings(ctx context.Context) (*models.StandingsDocument, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}
	return doc, nil
}

// MergeResult folds one game outcome into the ledger and persists it.
// Team names are canonicalized first; unknown names still get entries so
// no result is silently dropped. Ties accumulate points but decide no
// win or loss.
func (a *App) MergeResult(ctx context.Context, res models.GameResult) (*models.StandingsDocument, error) {
	a.mu.Lock()
	doc, err := a.repo.Load()
	if err != nil {
		a.mu.Unlock()
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}

	mergeResult(doc, res)
	doc.LastGameID = res.GameID

	if err := a.repo.Save(doc); err != nil {
		a.mu.Unlock()
		return nil, fmt.Errorf("failed to save standings: %w", err)
	}
	a.mu.Unlock()

	log.Info().
		Str("game_id", res.GameID).
		Str("home", res.HomeTeam).
		Int("home_score", res.HomeScore).
		Str("away", res.AwayTeam).
		Int("away_score", res.AwayScore).
		Msg("merged game result into standings")

	if a.pub != nil {
		payload := events.StandingsUpdatedPayload{
			Season:    doc.Season,
			GameID:    res.GameID,
			TeamCount: len(doc.Teams),
			UpdatedAt: time.Now().UTC(),
		}
		if err := a.pub.PublishStandingsUpdated(ctx, payload); err != nil {
			log.Error().Err(err).Str("game_id", res.GameID).Msg("failed to publish standings update")
		}
	}

	return doc, nil
}

// ResetSeason replaces the ledger with a fresh one. A positive override
// sets the season number explicitly; otherwise the season increments.
// The standings message ID is carried over so the posted board edits in
// place instead of duplicating.
func (a *App) ResetSeason(ctx context.Context, override int) (*models.StandingsDocument, error) {
	a.mu.Lock()
	doc, err := a.repo.Load()
	if err != nil {
		a.mu.Unlock()
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}

	previous := doc.Season
	newSeason := previous + 1
	if override > 0 {
		newSeason = override
	}

	fresh := FreshDocument()
	fresh.Season = newSeason
	fresh.MessageID = doc.MessageID

	if err := a.repo.Save(fresh); err != nil {
		a.mu.Unlock()
		return nil, fmt.Errorf("failed to save standings: %w", err)
	}
	a.mu.Unlock()

	log.Info().Int("previous_season", previous).Int("new_season", newSeason).Msg("standings reset")

	if a.pub != nil {
		payload := events.SeasonResetPayload{
			PreviousSeason: previous,
			NewSeason:      newSeason,
			ResetAt:        time.Now().UTC(),
		}
		if err := a.pub.PublishSeasonReset(ctx, payload); err != nil {
			log.Error().Err(err).Msg("failed to publish season reset")
		}
	}

	return fresh, nil
}

// SetMessageID persists the posted standings message ID so later updates
// edit in place.
func (a *App) SetMessageID(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.repo.Load()
	if err != nil {
		return fmt.Errorf("failed to load standings: %w", err)
	}
	doc.MessageID = id
	if err := a.repo.Save(doc); err != nil {
		return fmt.Errorf("failed to save standings: %w", err)
	}
	return nil
}

// ensureTeam adds a zero record for a canonical team name if missing.
func ensureTeam(doc *models.StandingsDocument, team string) {
	if doc.Teams == nil {
		doc.Teams = make(map[string]*models.TeamRecord)
	}
	if _, ok := doc.Teams[team]; !ok {
		doc.Teams[team] = &models.TeamRecord{}
	}
}

func mergeResult(doc *models.StandingsDocument, res models.GameResult) {
	home := teams.CanonicalOr(res.HomeTeam)
	away := teams.CanonicalOr(res.AwayTeam)

	ensureTeam(doc, home)
	ensureTeam(doc, away)

	doc.Teams[home].PointsFor += res.HomeScore
	doc.Teams[home].PointsAgainst += res.AwayScore
	doc.Teams[away].PointsFor += res.AwayScore
	doc.Teams[away].PointsAgainst += res.HomeScore

	switch {
	case res.HomeScore > res.AwayScore:
		doc.Teams[home].Wins++
		doc.Teams[away].Losses++
	case res.AwayScore > res.HomeScore:
		doc.Teams[away].Wins++
		doc.Teams[home].Losses++
	default:
		// tie: points accumulate, no win or loss is awarded
		log.Warn().
			Str("home", home).
			Str("away", away).
			Int("score", res.HomeScore).
			Msg("tied game merged without win/loss")
	}
}
