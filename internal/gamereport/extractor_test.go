package gamereport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorePrefix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantA   int
		wantB   int
		wantOK  bool
	}{
		{
			name:   "plain prefix before json",
			input:  "28 - 14\n{\"foo\": 1}",
			wantA:  28,
			wantB:  14,
			wantOK: true,
		},
		{
			name:   "no spaces around dash",
			input:  "Final 7-3 {\"foo\": 1}",
			wantA:  7,
			wantB:  3,
			wantOK: true,
		},
		{
			name:   "bom stripped",
			input:  "\uFEFF21 - 10 {\"foo\": 1}",
			wantA:  21,
			wantB:  10,
			wantOK: true,
		},
		{
			name:   "no json body scans first 250 chars",
			input:  strings.Repeat("x", 200) + " 35 - 31",
			wantA:  35,
			wantB:  31,
			wantOK: true,
		},
		{
			name:   "score beyond scan window ignored",
			input:  strings.Repeat("x", 260) + " 35 - 31",
			wantOK: false,
		},
		{
			name:   "score inside json ignored",
			input:  "{\"note\": \"21 - 10\"}",
			wantOK: false,
		},
		{
			name:   "no score at all",
			input:  "game report attached {\"foo\": 1}",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ok := ScorePrefix(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantA, a)
				assert.Equal(t, tt.wantB, b)
			}
		})
	}
}

func TestJSONObject(t *testing.T) {
	t.Run("cuts object out of surrounding junk", func(t *testing.T) {
		obj, err := JSONObject("28 - 14\n{\"123\": {\"other\": {}}}\ntrailing junk")
		require.NoError(t, err)
		assert.Contains(t, obj, "123")
	})

	t.Run("tolerates bom", func(t *testing.T) {
		obj, err := JSONObject("\uFEFF{\"a\": 1}")
		require.NoError(t, err)
		assert.Contains(t, obj, "a")
	})

	t.Run("no braces", func(t *testing.T) {
		_, err := JSONObject("just text, no export")
		assert.ErrorIs(t, err, ErrMalformedReport)
	})

	t.Run("invalid json inside braces", func(t *testing.T) {
		_, err := JSONObject("{not json}")
		assert.ErrorIs(t, err, ErrMalformedReport)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := JSONObject("")
		assert.ErrorIs(t, err, ErrMalformedReport)
	})
}

const sampleExport = `41 - 14
{
  "100200300": {
    "other": {"name": "QBSlinger", "display": "Slinger"},
    "qb": {"rtng": 98.5, "comp": 18, "yds": 260, "td": 4, "int": 1}
  },
  "400500600": {
    "other": {"name": "", "display": "DeepThreat"},
    "wr": {"catch": 7, "yds": 150, "td": 2, "fumble": 1}
  },
  "700800900": {
    "other": {},
    "db": {"defl": 3, "int": 2, "rtng": 88.0},
    "def": {"sack": 1, "safe": 0, "ffum": 1}
  },
  "metadata": {"mode": "league"},
  "teams": "Dallas vs Giants"
}`

func TestPlayersExtraction(t *testing.T) {
	obj, err := JSONObject(sampleExport)
	require.NoError(t, err)

	players := Players(obj)
	require.Len(t, players, 3, "non-numeric keys must be skipped")

	byID := make(map[int64]int)
	for i, p := range players {
		byID[p.RobloxID] = i
	}

	qb := players[byID[100200300]]
	assert.Equal(t, "QBSlinger", qb.Username)
	assert.Equal(t, "Slinger", qb.Display)
	assert.Equal(t, 98.5, qb.QB.Rating)
	assert.Equal(t, 18, qb.QB.Completions)
	assert.Equal(t, 260, qb.QB.Yards)
	assert.Equal(t, 4, qb.QB.Touchdowns)
	assert.Equal(t, 1, qb.QB.Interceptions)
	assert.True(t, qb.QB.Active())
	assert.False(t, qb.WR.Active())

	wr := players[byID[400500600]]
	assert.Equal(t, "DeepThreat", wr.Username, "display fills in for empty name")
	assert.Equal(t, 1, wr.WR.Fumbles, "legacy fumble key accepted")
	assert.Equal(t, 7, wr.WR.Receptions)

	dual := players[byID[700800900]]
	assert.Equal(t, "700800900", dual.Username, "roblox id fills in when both names empty")
	assert.True(t, dual.DB.Active())
	assert.True(t, dual.DE.Active())
	assert.Equal(t, 2, dual.DB.Interceptions)
	assert.Equal(t, 1, dual.DE.Sacks)
}

func TestPlayersSkipsMalformedEntries(t *testing.T) {
	obj, err := JSONObject(`{"123": "not an object", "456": {"qb": {"comp": 5}}}`)
	require.NoError(t, err)

	players := Players(obj)
	require.Len(t, players, 1)
	assert.Equal(t, int64(456), players[0].RobloxID)
}

func TestDetectTeamsHint(t *testing.T) {
	obj, err := JSONObject(`{
		"meta": {"matchup": "Dallas vs Giants", "host": "Dallas stadium"},
		"note": "giants fans loud"
	}`)
	require.NoError(t, err)

	first, second := DetectTeamsHint(obj)
	assert.Equal(t, "Dallas", first)
	assert.Equal(t, "Giants", second)
}

func TestDetectTeamsHintNoTeams(t *testing.T) {
	obj, err := JSONObject(`{"meta": {"matchup": "scrimmage"}}`)
	require.NoError(t, err)

	first, second := DetectTeamsHint(obj)
	assert.Empty(t, first)
	assert.Empty(t, second)
}
