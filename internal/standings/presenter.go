package standings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sfgleague/gridiron/internal/models"
	"github.com/sfgleague/gridiron/internal/platform"
	"github.com/sfgleague/gridiron/internal/teams"
)

// teamEmoji resolves a team's custom emoji through the directory, e.g.
// "Detroit" -> the rendered "DetroitLions" emoji.
func teamEmoji(dir platform.Directory, team string) (string, bool) {
	t, ok := teams.ByName(team)
	if !ok {
		return "", false
	}
	s := dir.EmojiString(t.EmojiName)
	return s, s != ""
}

// ErrNoOutputChannel is returned when the standings channel cannot be
// resolved on the hosting platform.
var ErrNoOutputChannel = errors.New("standings channel not found")

// Row is one ranked line of the rendered leaderboard.
type Row struct {
	Rank   int
	Team   string
	Record models.TeamRecord
}

// Band is one division block of eight seeds.
type Band struct {
	Title string
	Rows  []Row
}

// Leaderboard is the fully ranked view of a standings document.
type Leaderboard struct {
	Season int
	Bands  []Band
}

// MessageIDStore persists the posted board's message ID between runs.
type MessageIDStore interface {
	SetMessageID(ctx context.Context, id string) error
}

// Presenter renders the ledger into a single leaderboard embed and keeps
// exactly one such message alive in the standings channel.
type Presenter struct {
	msgr    platform.Messenger
	dir     platform.Directory
	store   MessageIDStore
	channel string
	logoURL string
}

// NewPresenter builds a Presenter posting into the named channel.
func NewPresenter(msgr platform.Messenger, dir platform.Directory, store MessageIDStore, channel, logoURL string) *Presenter {
	return &Presenter{
		msgr:    msgr,
		dir:     dir,
		store:   store,
		channel: channel,
		logoURL: logoURL,
	}
}

// Render ranks every team by win percentage, then point differential,
// then raw wins, and slices the order into four eight-seed divisions.
// Teams beyond seed 32 (unknown names merged into the ledger) are not
// rendered but stay in the document.
func Render(doc *models.StandingsDocument) Leaderboard {
	rows := make([]Row, 0, len(doc.Teams))
	for team, rec := range doc.Teams {
		if rec == nil {
			rec = &models.TeamRecord{}
		}
		rows = append(rows, Row{Team: team, Record: *rec})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Record.WinPct() != b.Record.WinPct() {
			return a.Record.WinPct() > b.Record.WinPct()
		}
		if a.Record.PointDiff() != b.Record.PointDiff() {
			return a.Record.PointDiff() > b.Record.PointDiff()
		}
		if a.Record.Wins != b.Record.Wins {
			return a.Record.Wins > b.Record.Wins
		}
		return a.Team < b.Team
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}

	lb := Leaderboard{Season: doc.Season}
	for div := 0; div < 4; div++ {
		lo, hi := div*8, (div+1)*8
		if lo > len(rows) {
			lo = len(rows)
		}
		if hi > len(rows) {
			hi = len(rows)
		}
		lb.Bands = append(lb.Bands, Band{
			Title: fmt.Sprintf("Division %d — Seeds %d-%d", div+1, div*8+1, (div+1)*8),
			Rows:  rows[lo:hi],
		})
	}
	return lb
}

// buildMessage renders the leaderboard into the platform embed shape.
func (p *Presenter) buildMessage(doc *models.StandingsDocument) platform.Message {
	lb := Render(doc)

	emb := &platform.Embed{
		Title:       fmt.Sprintf("SFG Season %d Standings", lb.Season),
		Description: "Sorted by **Record**, then **Point Differential (PD)**.",
		Color:       0x3498DB,
		Thumbnail:   p.logoURL,
		Footer:      "PD = Points For - Points Against",
	}

	for _, band := range lb.Bands {
		var lines []string
		for _, row := range band.Rows {
			prefix := ""
			if p.dir != nil {
				if t, ok := teamEmoji(p.dir, row.Team); ok {
					prefix = t + " "
				}
			}
			lines = append(lines, fmt.Sprintf("**%d.) %s%s** — **%d-%d** | **PD:** %+d",
				row.Rank, prefix, row.Team, row.Record.Wins, row.Record.Losses, row.Record.PointDiff()))
		}
		value := "*No teams.*"
		if len(lines) > 0 {
			value = strings.Join(lines, "\n")
		}
		emb.Fields = append(emb.Fields, platform.EmbedField{Name: band.Title, Value: value})
	}

	return platform.Message{Embed: emb}
}

// PostOrUpdate edits the remembered standings message if one exists, and
// falls back to posting a new one, persisting its ID for next time. The
// returned bool reports whether the board is now visible.
func (p *Presenter) PostOrUpdate(ctx context.Context, doc *models.StandingsDocument) (bool, error) {
	ch, ok := p.msgr.FindChannel(p.channel)
	if !ok {
		return false, fmt.Errorf("%w: create a channel named %q or change league.standings_channel", ErrNoOutputChannel, p.channel)
	}

	msg := p.buildMessage(doc)

	if doc.MessageID != "" {
		err := p.msgr.Edit(ctx, ch, platform.MessageID(doc.MessageID), msg)
		if err == nil {
			return true, nil
		}
		// stale or deleted message, fall through to a fresh post
		log.Warn().Err(err).Str("message_id", doc.MessageID).Msg("standings edit failed, reposting")
	}

	id, err := p.msgr.Send(ctx, ch, msg)
	if err != nil {
		return false, fmt.Errorf("post standings: %w", err)
	}

	if p.store != nil {
		if err := p.store.SetMessageID(ctx, string(id)); err != nil {
			log.Error().Err(err).Msg("failed to persist standings message id")
		}
	}
	doc.MessageID = string(id)
	return true, nil
}
