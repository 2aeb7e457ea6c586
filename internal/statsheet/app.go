package statsheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sfgleague/gridiron/internal/models"
	"github.com/sfgleague/gridiron/internal/platform"
	"github.com/sfgleague/gridiron/internal/teams"
)

// IdentityResolver maps a Roblox user ID to a guild member ID. An empty
// string means no link is known.
type IdentityResolver interface {
	MemberForRoblox(ctx context.Context, robloxID int64) (string, error)
}

// freeAgentTeam is recorded when a matched member holds no team role.
const freeAgentTeam = "Free Agent"

// App matches extracted stat lines to guild members and appends them to
// the workbook.
type App struct {
	book     *Workbook
	identity IdentityResolver
	dir      platform.Directory
	ops      *platform.OpsLog
}

// NewApp creates a new statsheet App. identity may be nil when no link
// service is configured; name matching then carries the whole load.
func NewApp(book *Workbook, identity IdentityResolver, dir platform.Directory, ops *platform.OpsLog) *App {
	return &App{book: book, identity: identity, dir: dir, ops: ops}
}

// ProcessReport appends every active stat line of a game to the raw tabs
// and rebuilds the dashboard. Players that cannot be matched to a guild
// member are collected and reported to ops rather than failing the run.
// Returns the number of players who got at least one row.
func (a *App) ProcessReport(ctx context.Context, gameID string, players []models.PlayerStatLine) (int, error) {
	updated := 0
	var missing []string
	var errs []string

	for _, p := range players {
		member, ok := a.matchMember(ctx, p)
		if !ok {
			missing = append(missing, p.Username)
			continue
		}

		team, found := teams.DetectFromRoles(member.Roles)
		if !found {
			team = freeAgentTeam
		}

		wrote, err := a.appendLines(gameID, member, team, p)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", p.Username, err))
			continue
		}
		if wrote {
			updated++
		}
	}

	if len(missing) > 0 {
		a.ops.Warnf(ctx, "Game report: no guild match for %d player(s): %s", len(missing), joinCapped(missing, 50))
	}
	if len(errs) > 0 {
		a.ops.Errorf(ctx, "Game report: sheet update errors: %s", joinCapped(errs, 15))
	}

	if err := a.book.UpdateTop15(); err != nil {
		a.ops.Warnf(ctx, "PlayerStats dashboard update failed: %v", err)
	}

	log.Info().
		Str("game_id", gameID).
		Int("players", len(players)).
		Int("updated", updated).
		Int("missing", len(missing)).
		Msg("stat sheet processed")

	return updated, nil
}

// matchMember resolves a stat line to a guild member: Roblox link first,
// then normalized username and display name.
func (a *App) matchMember(ctx context.Context, p models.PlayerStatLine) (platform.Member, bool) {
	if a.identity != nil {
		memberID, err := a.identity.MemberForRoblox(ctx, p.RobloxID)
		if err != nil {
			log.Warn().Err(err).Int64("roblox_id", p.RobloxID).Msg("identity lookup failed")
		} else if memberID != "" {
			if member, ok := a.dir.Member(memberID); ok {
				return member, true
			}
		}
	}

	if member, ok := a.dir.MemberByName(platform.NormalizeMemberName(p.Username)); ok {
		return member, true
	}
	if member, ok := a.dir.MemberByName(platform.NormalizeMemberName(p.Display)); ok {
		return member, true
	}
	return platform.Member{}, false
}

func (a *App) appendLines(gameID string, member platform.Member, team string, p models.PlayerStatLine) (bool, error) {
	name := member.DisplayName
	if name == "" {
		name = member.Username
	}

	wrote := false
	if p.QB.Active() {
		if err := a.book.AppendQB(gameID, member.ID, name, team, p.QB); err != nil {
			return wrote, err
		}
		wrote = true
	}
	if p.WR.Active() {
		if err := a.book.AppendWR(gameID, member.ID, name, team, p.WR); err != nil {
			return wrote, err
		}
		wrote = true
	}
	if p.DB.Active() {
		if err := a.book.AppendDB(gameID, member.ID, name, team, p.DB); err != nil {
			return wrote, err
		}
		wrote = true
	}
	if p.DE.Active() {
		if err := a.book.AppendDE(gameID, member.ID, name, team, p.DE); err != nil {
			return wrote, err
		}
		wrote = true
	}
	return wrote, nil
}

func joinCapped(items []string, limit int) string {
	if len(items) > limit {
		items = items[:limit]
	}
	return strings.Join(items, ", ")
}
