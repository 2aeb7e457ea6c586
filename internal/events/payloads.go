// Package events publishes league lifecycle events to NATS JetStream so
// companion services (stream schedulers, media tooling) can react without
// being wired into the bot.
package events

import "time"

// Event type names carried on the subject suffix and Event-Type header.
const (
	TypeGameRecorded     = "GameRecorded"
	TypeStandingsUpdated = "StandingsUpdated"
	TypeSeasonReset      = "SeasonReset"
)

// GameRecordedPayload is emitted once per reconciled game report.
type GameRecordedPayload struct {
	GameID      string    `json:"game_id"`
	HomeTeam    string    `json:"home_team"`
	HomeScore   int       `json:"home_score"`
	AwayTeam    string    `json:"away_team"`
	AwayScore   int       `json:"away_score"`
	SubmitterID string    `json:"submitter_id"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// StandingsUpdatedPayload is emitted after a merge lands in the ledger.
type StandingsUpdatedPayload struct {
	Season    int       `json:"season"`
	GameID    string    `json:"game_id,omitempty"`
	TeamCount int       `json:"team_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SeasonResetPayload is emitted when the ledger rolls to a new season.
type SeasonResetPayload struct {
	PreviousSeason int       `json:"previous_season"`
	NewSeason      int       `json:"new_season"`
	ResetAt        time.Time `json:"reset_at"`
}
