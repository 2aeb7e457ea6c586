// Package teams holds the fixed 32-team league registry and the fuzzy
// name matching used everywhere a team string arrives from the outside
// world (roles, channels, game exports, select menus).
package teams

import "strings"

// Team is one franchise in the league registry.
type Team struct {
	// Name is the canonical short name used as the standings ledger key.
	Name string
	// EmojiName is the full franchise name the team's custom emoji is
	// registered under, e.g. "Detroit" -> "DetroitLions".
	EmojiName string
	// Color is the embed accent color for team-branded messages.
	Color int
}

// DefaultColor is the embed color used when a team lookup misses.
const DefaultColor = 0x2F3136

// Registry lists all 32 franchises in league display order. The order is
// load-bearing: the two 16-team select-menu groups are slices of it.
var Registry = []Team{
	{Name: "Arizona", EmojiName: "ArizonaCardinals", Color: 0x97233F},
	{Name: "Atlanta", EmojiName: "AtlantaFalcons", Color: 0xA71930},
	{Name: "Baltimore", EmojiName: "BaltimoreRavens", Color: 0x241773},
	{Name: "Buffalo", EmojiName: "BuffaloBills", Color: 0x00338D},
	{Name: "Carolina", EmojiName: "CarolinaPanthers", Color: 0x0085CA},
	{Name: "Chicago", EmojiName: "ChicagoBears", Color: 0x0B162A},
	{Name: "Cincinnati", EmojiName: "CincinnatiBengals", Color: 0xFB4F14},
	{Name: "Cleveland", EmojiName: "ClevelandBrowns", Color: 0x311D00},
	{Name: "Dallas", EmojiName: "DallasCowboys", Color: 0x002244},
	{Name: "Denver", EmojiName: "DenverBroncos", Color: 0xFB4F14},
	{Name: "Detroit", EmojiName: "DetroitLions", Color: 0x0076B6},
	{Name: "GreenBay", EmojiName: "GreenBayPackers", Color: 0x203731},
	{Name: "Houston", EmojiName: "HoustonTexans", Color: 0x03202F},
	{Name: "Indianapolis", EmojiName: "IndianapolisColts", Color: 0x002C5F},
	{Name: "Jacksonville", EmojiName: "JacksonvilleJaguars", Color: 0x006778},
	{Name: "Chiefs", EmojiName: "KansasCityChiefs", Color: 0xE31837},
	{Name: "LasVegas", EmojiName: "LasVegasRaiders", Color: 0x000000},
	{Name: "Rams", EmojiName: "LosAngelesRams", Color: 0x003594},
	{Name: "Chargers", EmojiName: "LosAngelesChargers", Color: 0x0080C6},
	{Name: "Miami", EmojiName: "MiamiDolphins", Color: 0x008E97},
	{Name: "Minnesota", EmojiName: "MinnesotaVikings", Color: 0x4F2683},
	{Name: "Patriots", EmojiName: "NewEnglandPatriots", Color: 0x002244},
	{Name: "Saints", EmojiName: "NewOrleansSaints", Color: 0xD3BC8D},
	{Name: "Giants", EmojiName: "NewYorkGiants", Color: 0x0B2265},
	{Name: "Jets", EmojiName: "NewYorkJets", Color: 0x125740},
	{Name: "Philadelphia", EmojiName: "PhiladelphiaEagles", Color: 0x004C54},
	{Name: "Pittsburgh", EmojiName: "PittsburghSteelers", Color: 0xFFB612},
	{Name: "49ers", EmojiName: "SanFrancisco49ers", Color: 0xAA0000},
	{Name: "Seattle", EmojiName: "SeattleSeahawks", Color: 0x002244},
	{Name: "Tampa", EmojiName: "TampaBayBuccaneers", Color: 0xFF0000},
	{Name: "Tennessee", EmojiName: "TennesseeTitans", Color: 0x4B92DB},
	{Name: "Washington", EmojiName: "WashingtonCommanders", Color: 0x5A1414},
}

// canonicalByKey is built once from the registry; every lookup funnels
// through NormalizeKey so decorated inputs land on the same canonical name.
var canonicalByKey = func() map[string]string {
	m := make(map[string]string, len(Registry))
	for _, t := range Registry {
		m[NormalizeKey(t.Name)] = t.Name
	}
	return m
}()

// Names returns all canonical team names in registry order.
func Names() []string {
	out := make([]string, len(Registry))
	for i, t := range Registry {
		out[i] = t.Name
	}
	return out
}

// ByName looks up a registry entry by canonical or decorated name.
func ByName(name string) (Team, bool) {
	canonical, ok := Canonical(name)
	if !ok {
		return Team{}, false
	}
	for _, t := range Registry {
		if t.Name == canonical {
			return t, true
		}
	}
	return Team{}, false
}

// Color returns the embed color for a team, or DefaultColor when unknown.
func Color(name string) int {
	if t, ok := ByName(name); ok {
		return t.Color
	}
	return DefaultColor
}

// Canonical resolves any decorated team string to its canonical registry
// name. The second return is false when the string matches no franchise.
func Canonical(raw string) (string, bool) {
	name, ok := canonicalByKey[NormalizeKey(raw)]
	return name, ok
}

// CanonicalOr resolves a decorated team string, falling back to the
// trimmed input when it matches no franchise. Unknown names still get
// ledger entries rather than being dropped.
func CanonicalOr(raw string) string {
	if name, ok := Canonical(raw); ok {
		return name
	}
	return strings.TrimSpace(raw)
}

// Group is a named half of the registry used for two-step team picks.
type Group struct {
	Name  string
	Teams []string
}

// Groups splits the registry into two fixed 16-team halves so select
// menus never exceed the platform's 25-option ceiling.
func Groups() []Group {
	names := Names()
	return []Group{
		{Name: "Group 1", Teams: names[:16]},
		{Name: "Group 2", Teams: names[16:]},
	}
}

// GroupByName returns the teams in a named group.
func GroupByName(name string) ([]string, bool) {
	for _, g := range Groups() {
		if g.Name == name {
			return g.Teams, true
		}
	}
	return nil, false
}

// DetectFromRoles scans a member's role names for a franchise, tolerant
// of emoji and fancy-font decorations. Registry order breaks ties.
func DetectFromRoles(roles []string) (string, bool) {
	keys := make(map[string]bool, len(roles))
	for _, r := range roles {
		keys[NormalizeKey(r)] = true
	}
	for _, t := range Registry {
		if keys[NormalizeKey(t.Name)] {
			return t.Name, true
		}
	}
	return "", false
}

// Autocomplete returns up to limit canonical names containing the typed
// fragment, case-insensitively, in registry order.
func Autocomplete(current string, limit int) []string {
	current = strings.ToLower(strings.TrimSpace(current))
	var out []string
	for _, t := range Registry {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(t.Name), current) {
			out = append(out, t.Name)
		}
	}
	return out
}
