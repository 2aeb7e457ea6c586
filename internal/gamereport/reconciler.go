package gamereport

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/sfgleague/gridiron/internal/events"
	"github.com/sfgleague/gridiron/internal/models"
	"github.com/sfgleague/gridiron/internal/platform"
	"github.com/sfgleague/gridiron/internal/teams"
)

// StandingsMerger defines what the reconciler needs from the standings app.
type StandingsMerger interface {
	MergeResult(ctx context.Context, res models.GameResult) (*models.StandingsDocument, error)
}

// StandingsPoster refreshes the posted leaderboard after a merge.
type StandingsPoster interface {
	PostOrUpdate(ctx context.Context, doc *models.StandingsDocument) (bool, error)
}

// ReportPublisher emits one event per reconciled game.
type ReportPublisher interface {
	PublishGameRecorded(ctx context.Context, p events.GameRecordedPayload) error
}

// Clock abstracts time for session expiry.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) clockwork.Timer
}

// ReconcilerConfig carries the wiring the confirmation flow needs.
type ReconcilerConfig struct {
	ScoresChannel  platform.ChannelID
	SessionTimeout time.Duration
}

// Outcome is the result of a fully confirmed game report.
type Outcome struct {
	GameID           string
	OwnTeam          string
	Opponent         string
	OwnScore         int
	OppScore         int
	StandingsUpdated bool
}

// StepResult is what one menu selection produced: either the next menu
// or, on the final step, the posted outcome.
type StepResult struct {
	Next    *Menu
	Outcome *Outcome
}

// Reconciler drives report sessions from first menu to posted matchup.
// Standings merging is delegated to the standings app (which owns the
// ledger lock); every network call happens outside session locks.
type Reconciler struct {
	standings StandingsMerger
	poster    StandingsPoster
	pub       ReportPublisher
	msgr      platform.Messenger
	dir       platform.Directory
	ops       *platform.OpsLog
	clock     Clock
	config    ReconcilerConfig

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewReconciler creates a Reconciler. pub may be nil to skip events.
func NewReconciler(
	standings StandingsMerger,
	poster StandingsPoster,
	pub ReportPublisher,
	msgr platform.Messenger,
	dir platform.Directory,
	ops *platform.OpsLog,
	clock Clock,
	config ReconcilerConfig,
) *Reconciler {
	if config.SessionTimeout <= 0 {
		config.SessionTimeout = 3 * time.Minute
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Reconciler{
		standings: standings,
		poster:    poster,
		pub:       pub,
		msgr:      msgr,
		dir:       dir,
		ops:       ops,
		clock:     clock,
		config:    config,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// StartSession opens a confirmation session for a parsed report and
// returns the first menu. ownTeam is the canonical detected team or "".
func (r *Reconciler) StartSession(submitterID, gameID, ownTeam string, ownScore, oppScore int, images []platform.Attachment) (*Session, Menu) {
	sess := &Session{
		ID:          uuid.New(),
		GameID:      gameID,
		SubmitterID: submitterID,
		OwnScore:    ownScore,
		OppScore:    oppScore,
		Images:      images,
		ownTeam:     ownTeam,
		state:       StateAwaitingOpponentGroup,
	}
	if ownTeam == "" {
		sess.state = StateAwaitingOwnGroup
	}
	sess.timer = r.clock.AfterFunc(r.config.SessionTimeout, sess.expire)

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	log.Info().
		Str("session_id", sess.ID.String()).
		Str("game_id", gameID).
		Str("submitter_id", submitterID).
		Str("own_team", ownTeam).
		Msg("report session started")

	return sess, r.menuFor(sess.state, "")
}

// Session returns a tracked session by ID.
func (r *Reconciler) Session(id uuid.UUID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// Advance applies one menu selection. Only the submitter may advance a
// session; closed sessions reject every selection.
func (r *Reconciler) Advance(ctx context.Context, sessionID uuid.UUID, actorID, value string) (*StepResult, error) {
	sess, ok := r.Session(sessionID)
	if !ok {
		return nil, ErrUnknownSession
	}

	sess.mu.Lock()
	if actorID != sess.SubmitterID {
		sess.mu.Unlock()
		return nil, ErrNotSubmitter
	}

	switch sess.state {
	case StateExpired, StateFailed:
		sess.mu.Unlock()
		return nil, ErrSessionClosed

	case StatePosted:
		sess.mu.Unlock()
		return nil, ErrAlreadyPosted

	case StateAwaitingOwnGroup:
		if _, ok := teams.GroupByName(value); !ok {
			sess.mu.Unlock()
			return nil, ErrUnknownChoice
		}
		sess.ownGroup = value
		sess.state = StateAwaitingOwnTeam
		menu := r.menuFor(StateAwaitingOwnTeam, value)
		sess.mu.Unlock()
		return &StepResult{Next: &menu}, nil

	case StateAwaitingOwnTeam:
		canonical, ok := teams.Canonical(value)
		if !ok {
			sess.mu.Unlock()
			return nil, ErrUnknownChoice
		}
		sess.ownTeam = canonical
		sess.state = StateAwaitingOpponentGroup
		menu := r.menuFor(StateAwaitingOpponentGroup, "")
		sess.mu.Unlock()
		return &StepResult{Next: &menu}, nil

	case StateAwaitingOpponentGroup:
		group, ok := teams.GroupByName(value)
		if !ok {
			sess.mu.Unlock()
			return nil, ErrUnknownChoice
		}
		sess.state = StateAwaitingOpponentTeam
		own := sess.ownTeam
		sess.mu.Unlock()
		return &StepResult{Next: opponentMenu(group, own)}, nil

	case StateAwaitingOpponentTeam:
		// claim the post slot before any network call
		sess.posted = true
		sess.state = StatePosted
		sess.mu.Unlock()

		outcome, err := r.finalize(ctx, sess, value)
		if err != nil {
			sess.mu.Lock()
			sess.posted = false
			sess.state = StateFailed
			sess.mu.Unlock()
			return nil, err
		}
		sess.stopTimer()
		return &StepResult{Outcome: outcome}, nil
	}

	sess.mu.Unlock()
	return nil, fmt.Errorf("unhandled session state %v", sess.state)
}

// menuFor builds the prompt for a state. group narrows own-team menus.
func (r *Reconciler) menuFor(state State, group string) Menu {
	switch state {
	case StateAwaitingOwnGroup:
		return groupMenu("Select YOUR team group first")
	case StateAwaitingOwnTeam:
		names, _ := teams.GroupByName(group)
		return teamMenu("Select YOUR team", names, "")
	case StateAwaitingOpponentGroup:
		return groupMenu("Select the opponent group")
	}
	return Menu{}
}

func groupMenu(prompt string) Menu {
	m := Menu{Prompt: prompt}
	for _, g := range teams.Groups() {
		preview := strings.Join(g.Teams[:4], ", ") + "..."
		m.Options = append(m.Options, MenuOption{Label: g.Name, Value: g.Name, Description: preview})
	}
	return m
}

func teamMenu(prompt string, names []string, exclude string) Menu {
	m := Menu{Prompt: prompt}
	for _, name := range names {
		if name == exclude {
			continue
		}
		m.Options = append(m.Options, MenuOption{Label: name, Value: name})
	}
	return m
}

// opponentMenu removes the submitter's own team so they cannot report a
// game against themselves.
func opponentMenu(names []string, ownTeam string) *Menu {
	m := teamMenu("Select the team you faced", names, ownTeam)
	return &m
}

// finalize merges the confirmed result into standings and posts the
// matchup embed. The merge is never undone on post failure; only the
// posted flag rolls back so the submitter can retry the post.
func (r *Reconciler) finalize(ctx context.Context, sess *Session, opponentRaw string) (*Outcome, error) {
	opponent := teams.CanonicalOr(opponentRaw)

	sess.mu.Lock()
	ownTeam := sess.ownTeam
	ownScore, oppScore := sess.OwnScore, sess.OppScore
	images := sess.Images
	sess.mu.Unlock()

	// last-resort role detection for submitters who skipped the own-team
	// step because their team role appeared after submission
	if ownTeam == "" {
		if member, ok := r.dir.Member(sess.SubmitterID); ok {
			ownTeam, _ = teams.DetectFromRoles(member.Roles)
		}
	}

	updated := false
	if ownTeam != "" {
		doc, err := r.standings.MergeResult(ctx, models.GameResult{
			GameID:      sess.GameID,
			HomeTeam:    ownTeam,
			HomeScore:   ownScore,
			AwayTeam:    opponent,
			AwayScore:   oppScore,
			SubmitterID: sess.SubmitterID,
		})
		if err != nil {
			return nil, fmt.Errorf("merge game result: %w", err)
		}
		updated = true

		if _, err := r.poster.PostOrUpdate(ctx, doc); err != nil {
			r.ops.Warnf(ctx, "Standings post/update failed: %v", err)
		}
	} else {
		r.ops.Warnf(ctx, "Standings not updated: could not detect submitter team for game %s.", sess.GameID)
	}

	if err := r.postMatchup(ctx, sess, ownTeam, opponent, ownScore, oppScore, images); err != nil {
		return nil, err
	}

	if r.pub != nil {
		payload := events.GameRecordedPayload{
			GameID:      sess.GameID,
			HomeTeam:    ownTeam,
			HomeScore:   ownScore,
			AwayTeam:    opponent,
			AwayScore:   oppScore,
			SubmitterID: sess.SubmitterID,
			RecordedAt:  r.clock.Now().UTC(),
		}
		if err := r.pub.PublishGameRecorded(ctx, payload); err != nil {
			log.Error().Err(err).Str("game_id", sess.GameID).Msg("failed to publish game recorded event")
		}
	}

	log.Info().
		Str("game_id", sess.GameID).
		Str("own_team", ownTeam).
		Str("opponent", opponent).
		Bool("standings_updated", updated).
		Msg("game report posted")

	return &Outcome{
		GameID:           sess.GameID,
		OwnTeam:          ownTeam,
		Opponent:         opponent,
		OwnScore:         ownScore,
		OppScore:         oppScore,
		StandingsUpdated: updated,
	}, nil
}

// postMatchup sends the final-score embed plus stat screenshots into the
// scores channel.
func (r *Reconciler) postMatchup(ctx context.Context, sess *Session, ownTeam, opponent string, ownScore, oppScore int, images []platform.Attachment) error {
	ch, ok := r.msgr.ChannelByID(r.config.ScoresChannel)
	if !ok {
		return fmt.Errorf("scores channel %q not found", r.config.ScoresChannel)
	}

	ownLabel := ownTeam
	if ownLabel == "" {
		ownLabel = "Your Team"
	}

	ownLine := r.teamLine(ownLabel, ownScore, ownScore > oppScore)
	oppLine := r.teamLine(opponent, oppScore, oppScore > ownScore)

	footer := "Submitted by " + sess.SubmitterID
	footerIcon := ""
	if member, ok := r.dir.Member(sess.SubmitterID); ok {
		footer = "Submitted by " + member.Username
		footerIcon = member.AvatarURL
	}

	msg := platform.Message{
		Embed: &platform.Embed{
			Title:       "Matchup Report",
			Description: ownLine + "\n" + oppLine + "\n\n**Final Score**",
			Color:       0x2ECC71,
			Footer:      footer,
			FooterIcon:  footerIcon,
			Timestamp:   r.clock.Now().UTC(),
		},
		Files: images,
	}

	if _, err := r.msgr.Send(ctx, ch, msg); err != nil {
		return fmt.Errorf("post matchup report: %w", err)
	}
	return nil
}

func (r *Reconciler) teamLine(team string, score int, won bool) string {
	emoji := ""
	if t, ok := teams.ByName(team); ok {
		if s := r.dir.EmojiString(t.EmojiName); s != "" {
			emoji = s + " "
		}
	}

	mention := "@" + team
	if m, ok := r.dir.RoleMention(team); ok {
		mention = m
	}

	trophy := ""
	if won {
		trophy = " 🏆"
	}
	return fmt.Sprintf("%s%s **%d**%s", emoji, mention, score, trophy)
}
