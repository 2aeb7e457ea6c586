package statsheet

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfgleague/gridiron/internal/models"
	"github.com/sfgleague/gridiron/internal/platform"
)

type fakeIdentity struct {
	links map[int64]string
	err   error
	calls int
}

func (f *fakeIdentity) MemberForRoblox(ctx context.Context, robloxID int64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.links[robloxID], nil
}

func newTestApp(t *testing.T, identity IdentityResolver, members []platform.Member) (*App, *Workbook) {
	t.Helper()
	book, err := OpenWorkbook(filepath.Join(t.TempDir(), "stats.xlsx"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = book.Close() })

	dir := platform.NewStaticDirectory(members)
	ops := platform.NewOpsLog(platform.NewLogMessenger(), "")
	return NewApp(book, identity, dir, ops), book
}

func qbPlayer(robloxID int64, username string) models.PlayerStatLine {
	return models.PlayerStatLine{
		RobloxID: robloxID,
		Username: username,
		Display:  username,
		QB:       models.QBLine{Rating: 90, Completions: 10, Yards: 150, Touchdowns: 2},
	}
}

func TestProcessReportMatchesViaIdentityLink(t *testing.T) {
	identity := &fakeIdentity{links: map[int64]string{555: "m-1"}}
	app, book := newTestApp(t, identity, []platform.Member{
		{ID: "m-1", Username: "coachjim", DisplayName: "Jim", Roles: []string{"Dallas"}},
	})

	updated, err := app.ProcessReport(context.Background(), "g1", []models.PlayerStatLine{
		qbPlayer(555, "UnrelatedRobloxName"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, identity.calls)

	rows, err := book.file.GetRows(TabQB)
	require.NoError(t, err)
	row := rows[DataStartRow-1]
	assert.Equal(t, "m-1", row[1])
	assert.Equal(t, "Jim", row[2], "display name preferred on sheet")
	assert.Equal(t, "Dallas", row[3])
}

func TestProcessReportFallsBackToNameMatch(t *testing.T) {
	app, book := newTestApp(t, nil, []platform.Member{
		{ID: "m-2", Username: "DeepThreat", Roles: []string{"Giants"}},
	})

	updated, err := app.ProcessReport(context.Background(), "g1", []models.PlayerStatLine{
		{
			RobloxID: 777,
			Username: "deepthreat",
			Display:  "deepthreat",
			WR:       models.WRLine{Receptions: 7, Yards: 150},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	rows, err := book.file.GetRows(TabWR)
	require.NoError(t, err)
	assert.Equal(t, "m-2", rows[DataStartRow-1][1])
}

func TestProcessReportIdentityErrorFallsBackToName(t *testing.T) {
	identity := &fakeIdentity{err: errors.New("service down")}
	app, _ := newTestApp(t, identity, []platform.Member{
		{ID: "m-1", Username: "coachjim", Roles: []string{"Dallas"}},
	})

	updated, err := app.ProcessReport(context.Background(), "g1", []models.PlayerStatLine{
		qbPlayer(555, "coachjim"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
}

func TestProcessReportUnmatchedPlayersSkipped(t *testing.T) {
	app, book := newTestApp(t, nil, []platform.Member{
		{ID: "m-1", Username: "coachjim", Roles: []string{"Dallas"}},
	})

	updated, err := app.ProcessReport(context.Background(), "g1", []models.PlayerStatLine{
		qbPlayer(555, "coachjim"),
		qbPlayer(556, "nobodyknows"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	rows, err := book.file.GetRows(TabQB)
	require.NoError(t, err)
	assert.Len(t, rows, DataStartRow)
}

func TestProcessReportFreeAgentTeam(t *testing.T) {
	app, book := newTestApp(t, nil, []platform.Member{
		{ID: "m-3", Username: "journeyman", Roles: []string{"Member"}},
	})

	_, err := app.ProcessReport(context.Background(), "g1", []models.PlayerStatLine{
		qbPlayer(558, "journeyman"),
	})
	require.NoError(t, err)

	rows, err := book.file.GetRows(TabQB)
	require.NoError(t, err)
	assert.Equal(t, freeAgentTeam, rows[DataStartRow-1][3])
}

func TestProcessReportWritesEveryActiveGroup(t *testing.T) {
	app, book := newTestApp(t, nil, []platform.Member{
		{ID: "m-4", Username: "twoway", Roles: []string{"Seattle"}},
	})

	updated, err := app.ProcessReport(context.Background(), "g1", []models.PlayerStatLine{
		{
			RobloxID: 559,
			Username: "twoway",
			Display:  "twoway",
			DB:       models.DBLine{Swats: 3, Interceptions: 1, Rating: 88},
			DE:       models.DELine{Sacks: 2, ForcedFumble: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated, "one player even with rows on two tabs")

	dbRows, err := book.file.GetRows(TabDB)
	require.NoError(t, err)
	assert.Len(t, dbRows, DataStartRow)

	deRows, err := book.file.GetRows(TabDE)
	require.NoError(t, err)
	assert.Len(t, deRows, DataStartRow)

	qbRows, err := book.file.GetRows(TabQB)
	require.NoError(t, err)
	assert.Less(t, len(qbRows), DataStartRow, "inactive groups get no row")
}

func TestProcessReportSkipsInactivePlayers(t *testing.T) {
	app, _ := newTestApp(t, nil, []platform.Member{
		{ID: "m-5", Username: "benchwarmer", Roles: []string{"Dallas"}},
	})

	updated, err := app.ProcessReport(context.Background(), "g1", []models.PlayerStatLine{
		{RobloxID: 560, Username: "benchwarmer", Display: "benchwarmer"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}

func TestJoinCapped(t *testing.T) {
	assert.Equal(t, "a, b", joinCapped([]string{"a", "b"}, 5))
	assert.Equal(t, "a, b", joinCapped([]string{"a", "b", "c"}, 2))
	assert.Equal(t, "", joinCapped(nil, 5))
}
