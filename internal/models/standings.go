package models

// TeamRecord is one team's cumulative line in the standings ledger.
type TeamRecord struct {
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	PointsFor     int `json:"pf"`
	PointsAgainst int `json:"pa"`
}

// Games returns the number of decided games (ties are not counted).
func (r TeamRecord) Games() int {
	return r.Wins + r.Losses
}

// WinPct returns the win percentage, 0.0 when no games have been played.
func (r TeamRecord) WinPct() float64 {
	games := r.Games()
	if games == 0 {
		return 0.0
	}
	return float64(r.Wins) / float64(games)
}

// PointDiff returns points for minus points against.
func (r TeamRecord) PointDiff() int {
	return r.PointsFor - r.PointsAgainst
}

// StandingsDocument is the on-disk standings ledger. The JSON layout is a
// stable external contract, kept human-diffable so league staff can audit
// or hand-edit the file between seasons.
type StandingsDocument struct {
	Teams      map[string]*TeamRecord `json:"teams"`
	MessageID  string                 `json:"standings_message_id,omitempty"`
	Season     int                    `json:"season"`
	LastGameID string                 `json:"last_game_id,omitempty"`
}

// Record returns the record for a canonical team name, or a zero record if
// the team has no entry yet.
func (d *StandingsDocument) Record(team string) TeamRecord {
	if r, ok := d.Teams[team]; ok && r != nil {
		return *r
	}
	return TeamRecord{}
}

// GameResult is a single reconciled game outcome ready to be merged into
// the ledger. Team names may arrive decorated (emoji, fancy fonts); the
// standings layer canonicalizes them before merging.
type GameResult struct {
	GameID      string
	HomeTeam    string
	HomeScore   int
	AwayTeam    string
	AwayScore   int
	SubmitterID string
}
