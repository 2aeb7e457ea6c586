package gamereport

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sfgleague/gridiron/internal/models"
	"github.com/sfgleague/gridiron/internal/platform"
	"github.com/sfgleague/gridiron/internal/teams"
)

// ErrPermissionDenied is returned when the submitter holds none of the
// roles allowed to file game reports.
var ErrPermissionDenied = errors.New("only Franchise Owners and Team Presidents may submit game reports")

// submitRoles are the role names allowed to run report submission.
var submitRoles = []string{"Franchise Owner", "Team President"}

// StatSheets is the slice of the stat sheet app the report flow uses.
// Sheet failures never block reconciliation.
type StatSheets interface {
	ProcessReport(ctx context.Context, gameID string, players []models.PlayerStatLine) (int, error)
}

// SubmitRequest is one /gamereport invocation.
type SubmitRequest struct {
	SubmitterID string
	FileName    string
	Payload     []byte
	OwnScore    int
	Images      []platform.Attachment
}

// Submission is the parsed report handed back to the adapter along with
// the first confirmation menu.
type Submission struct {
	Session        *Session
	Menu           Menu
	GameID         string
	OwnScore       int
	OppScore       int
	OwnTeam        string
	PlayersWritten int
	HintFirst      string
	HintSecond     string
}

// App handles game report intake: permission gating, parsing, stat sheet
// fan-out and session creation.
type App struct {
	sheets StatSheets
	rec    *Reconciler
	dir    platform.Directory
	ops    *platform.OpsLog
}

// NewApp creates a new gamereport App. sheets may be nil to skip the
// stat sheet pipeline.
func NewApp(sheets StatSheets, rec *Reconciler, dir platform.Directory, ops *platform.OpsLog) *App {
	return &App{sheets: sheets, rec: rec, dir: dir, ops: ops}
}

// SubmitReport validates and parses one uploaded export, writes stat
// lines, and opens the opponent confirmation session.
func (a *App) SubmitReport(ctx context.Context, req SubmitRequest) (*Submission, error) {
	member, ok := a.dir.Member(req.SubmitterID)
	if !ok {
		return nil, ErrPermissionDenied
	}
	if !hasAnyRole(member.Roles, submitRoles) {
		return nil, ErrPermissionDenied
	}

	text := string(req.Payload)

	report, err := JSONObject(text)
	if err != nil {
		return nil, fmt.Errorf("parse export %q: %w", req.FileName, err)
	}

	gameID := uuid.NewString()

	players := Players(report)
	written := 0
	if a.sheets != nil {
		written, err = a.sheets.ProcessReport(ctx, gameID, players)
		if err != nil {
			// stats are best effort; the score flow continues
			a.ops.Warnf(ctx, "Stat sheet update failed for game %s: %v", gameID, err)
		}
	}

	oppScore := a.resolveOpponentScore(ctx, text, req.OwnScore)

	ownTeam, _ := teams.DetectFromRoles(member.Roles)
	hintFirst, hintSecond := DetectTeamsHint(report)

	sess, menu := a.rec.StartSession(req.SubmitterID, gameID, ownTeam, req.OwnScore, oppScore, req.Images)

	log.Info().
		Str("game_id", gameID).
		Str("submitter_id", req.SubmitterID).
		Int("players", len(players)).
		Int("rows_written", written).
		Int("own_score", req.OwnScore).
		Int("opp_score", oppScore).
		Msg("game report submitted")

	return &Submission{
		Session:        sess,
		Menu:           menu,
		GameID:         gameID,
		OwnScore:       req.OwnScore,
		OppScore:       oppScore,
		OwnTeam:        ownTeam,
		PlayersWritten: written,
		HintFirst:      hintFirst,
		HintSecond:     hintSecond,
	}, nil
}

// resolveOpponentScore reads the export's score prefix and picks the
// side that is not the submitter's typed score. A prefix that matches
// neither side is trusted on its second value but flagged to ops.
func (a *App) resolveOpponentScore(ctx context.Context, text string, ownScore int) int {
	first, second, ok := ScorePrefix(text)
	if !ok {
		a.ops.Warnf(ctx, "Score auto-detect failed: no 'XX - YY' score prefix found before JSON.")
		return 0
	}

	switch ownScore {
	case first:
		return second
	case second:
		return first
	}

	a.ops.Warnf(ctx, "Score mismatch: typed own score %d, prefix score %d-%d.", ownScore, first, second)
	return second
}

func hasAnyRole(roles, wanted []string) bool {
	for _, have := range roles {
		for _, want := range wanted {
			if have == want {
				return true
			}
		}
	}
	return false
}
