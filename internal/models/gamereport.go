package models

// QBLine holds a single game's passing stats for one player.
type QBLine struct {
	Rating        float64
	Completions   int
	Yards         int
	Touchdowns    int
	Interceptions int
}

// Active reports whether any passing stat was recorded.
func (l QBLine) Active() bool {
	return l.Completions > 0 || l.Yards > 0 || l.Touchdowns > 0 || l.Interceptions > 0 || l.Rating > 0
}

// WRLine holds a single game's receiving stats for one player.
type WRLine struct {
	Receptions int
	Yards      int
	Touchdowns int
	Fumbles    int
}

// Active reports whether any receiving stat was recorded.
func (l WRLine) Active() bool {
	return l.Receptions > 0 || l.Yards > 0 || l.Touchdowns > 0 || l.Fumbles > 0
}

// DBLine holds a single game's coverage stats for one player.
type DBLine struct {
	Swats         int
	Interceptions int
	Rating        float64
}

// Active reports whether any coverage stat was recorded.
func (l DBLine) Active() bool {
	return l.Swats > 0 || l.Interceptions > 0 || l.Rating > 0
}

// DELine holds a single game's pass-rush stats for one player.
type DELine struct {
	Sacks        int
	Safeties     int
	ForcedFumble int
}

// Active reports whether any pass-rush stat was recorded.
func (l DELine) Active() bool {
	return l.Sacks > 0 || l.Safeties > 0 || l.ForcedFumble > 0
}

// PlayerStatLine is one player's full stat line extracted from a Football
// Fusion game export. Username falls back to display name and finally to
// the numeric Roblox ID rendered as a string, so it is never empty.
type PlayerStatLine struct {
	RobloxID int64
	Username string
	Display  string

	QB QBLine
	WR WRLine
	DB DBLine
	DE DELine
}

// Active reports whether the player recorded anything at all this game.
func (p PlayerStatLine) Active() bool {
	return p.QB.Active() || p.WR.Active() || p.DB.Active() || p.DE.Active()
}
