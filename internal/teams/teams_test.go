package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain name",
			input:    "Dallas",
			expected: "dallas",
		},
		{
			name:     "uppercase",
			input:    "DALLAS",
			expected: "dallas",
		},
		{
			name:     "emoji decoration",
			input:    "🔥Dallas🔥",
			expected: "dallas",
		},
		{
			name:     "double-struck font",
			input:    "𝔻𝕒𝕝𝕝𝕒𝕤",
			expected: "dallas",
		},
		{
			name:     "bold font",
			input:    "𝐃𝐚𝐥𝐥𝐚𝐬",
			expected: "dallas",
		},
		{
			name:     "fullwidth characters",
			input:    "Ｄａｌｌａｓ",
			expected: "dallas",
		},
		{
			name:     "variation selector stripped",
			input:    "Dallas️",
			expected: "dallas",
		},
		{
			name:     "zero width joiner stripped",
			input:    "Dal‍las",
			expected: "dallas",
		},
		{
			name:     "punctuation becomes space and collapses",
			input:    "  Las--Vegas  ",
			expected: "las vegas",
		},
		{
			name:     "digits survive",
			input:    "49ers",
			expected: "49ers",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "only symbols",
			input:    "⭐⭐⭐",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeKey(tt.input))
		})
	}
}

func TestRegistryHas32Teams(t *testing.T) {
	require.Len(t, Registry, 32)

	seen := make(map[string]bool)
	for _, team := range Registry {
		assert.False(t, seen[team.Name], "duplicate team %s", team.Name)
		seen[team.Name] = true
		assert.NotEmpty(t, team.EmojiName)
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		wantMatch bool
	}{
		{name: "exact", input: "Detroit", expected: "Detroit", wantMatch: true},
		{name: "lowercase", input: "detroit", expected: "Detroit", wantMatch: true},
		{name: "decorated", input: "🦁 Detroit 🦁", expected: "Detroit", wantMatch: true},
		{name: "fancy font", input: "𝔾𝕣𝕖𝕖𝕟𝔹𝕒𝕪", expected: "GreenBay", wantMatch: true},
		{name: "numeric team", input: "49ERS", expected: "49ers", wantMatch: true},
		{name: "unknown", input: "Mars Rovers", wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Canonical(tt.input)
			require.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestCanonicalOrFallsBackToTrimmedInput(t *testing.T) {
	assert.Equal(t, "Detroit", CanonicalOr("  detroit "))
	assert.Equal(t, "Mars Rovers", CanonicalOr("  Mars Rovers "))
}

func TestGroups(t *testing.T) {
	groups := Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "Group 1", groups[0].Name)
	assert.Equal(t, "Group 2", groups[1].Name)
	assert.Len(t, groups[0].Teams, 16)
	assert.Len(t, groups[1].Teams, 16)

	// the two halves must partition the registry
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, team := range g.Teams {
			assert.False(t, seen[team])
			seen[team] = true
		}
	}
	assert.Len(t, seen, 32)
}

func TestGroupByName(t *testing.T) {
	teams, ok := GroupByName("Group 2")
	require.True(t, ok)
	assert.Equal(t, "LasVegas", teams[0])

	_, ok = GroupByName("Group 3")
	assert.False(t, ok)
}

func TestDetectFromRoles(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		expected string
		wantOK   bool
	}{
		{
			name:     "plain role",
			roles:    []string{"Franchise Owner", "Buffalo"},
			expected: "Buffalo",
			wantOK:   true,
		},
		{
			name:     "decorated role",
			roles:    []string{"Member", "⚡ 𝘽𝙪𝙛𝙛𝙖𝙡𝙤 ⚡"},
			expected: "Buffalo",
			wantOK:   true,
		},
		{
			name:   "no team role",
			roles:  []string{"Member", "Referee Staff"},
			wantOK: false,
		},
		{
			name:     "registry order breaks ties",
			roles:    []string{"Seattle", "Arizona"},
			expected: "Arizona",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectFromRoles(tt.roles)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestAutocomplete(t *testing.T) {
	assert.Equal(t, []string{"Chicago", "Chiefs", "Chargers"}, Autocomplete("ch", 25))
	assert.Len(t, Autocomplete("", 25), 25)
	assert.Empty(t, Autocomplete("zzz", 25))
}

func TestColor(t *testing.T) {
	assert.Equal(t, 0x002244, Color("Dallas"))
	assert.Equal(t, 0x002244, Color("🔥 𝐃𝐚𝐥𝐥𝐚𝐬 🔥"))
	assert.Equal(t, DefaultColor, Color("Intramural Squad"))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "greenbaypackers", NormalizeName("Green Bay Packers"))
	assert.Equal(t, "stlouis", NormalizeName("St. Louis"))
	assert.Equal(t, "lasvegas", NormalizeName("Las-Vegas"))
}
