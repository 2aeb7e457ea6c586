// Package gamereport turns raw Football Fusion exports into reconciled
// game results: score extraction, player stat parsing, and the two-step
// opponent confirmation flow.
package gamereport

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sfgleague/gridiron/internal/models"
	"github.com/sfgleague/gridiron/internal/teams"
)

// ErrMalformedReport wraps every parse failure on an uploaded export so
// callers can present one user-facing message for the whole family.
var ErrMalformedReport = errors.New("malformed game report")

var scoreRe = regexp.MustCompile(`(\d{1,3})\s*-\s*(\d{1,3})`)

// scanWindow bounds the prefix scan when the export has no JSON body.
const scanWindow = 250

// ScorePrefix scans the text before the JSON body for the first
// "XX - YY" score pair. When no opening brace exists the first 250
// characters are scanned instead. Returns ok=false when no pair matches.
func ScorePrefix(raw string) (a, b int, ok bool) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "\uFEFF")

	head := raw
	if i := strings.IndexByte(raw, '{'); i != -1 {
		head = raw[:i]
	} else if len(raw) > scanWindow {
		head = raw[:scanWindow]
	}

	m := scoreRe.FindStringSubmatch(head)
	if m == nil {
		return 0, 0, false
	}
	a, _ = strconv.Atoi(m[1])
	b, _ = strconv.Atoi(m[2])
	return a, b, true
}

// JSONObject cuts the span from the first '{' to the last '}' out of the
// export and parses it. Score prefixes, trailing junk and a UTF-8 BOM
// are tolerated; anything else is ErrMalformedReport.
func JSONObject(raw string) (map[string]json.RawMessage, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "\uFEFF")

	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedReport)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}
	return obj, nil
}

// rawPlayer mirrors one player entry of the Football Fusion export.
// Numeric fields decode as float64 because the exporter emits whole
// floats for some counters.
type rawPlayer struct {
	Other struct {
		Name    string `json:"name"`
		Display string `json:"display"`
	} `json:"other"`
	QB struct {
		Rtng float64 `json:"rtng"`
		Comp float64 `json:"comp"`
		Yds  float64 `json:"yds"`
		TD   float64 `json:"td"`
		Int  float64 `json:"int"`
	} `json:"qb"`
	WR struct {
		Catch  float64 `json:"catch"`
		Yds    float64 `json:"yds"`
		TD     float64 `json:"td"`
		Fum    float64 `json:"fum"`
		Fumble float64 `json:"fumble"`
	} `json:"wr"`
	DB struct {
		Defl float64 `json:"defl"`
		Int  float64 `json:"int"`
		Rtng float64 `json:"rtng"`
	} `json:"db"`
	DE struct {
		Sack float64 `json:"sack"`
		Safe float64 `json:"safe"`
		FFum float64 `json:"ffum"`
	} `json:"def"`
}

// Players extracts per-player stat lines. Only top-level keys that are
// all digits are player entries; everything else (metadata blobs, team
// strings) is skipped. Malformed individual entries are skipped rather
// than failing the whole report.
func Players(report map[string]json.RawMessage) []models.PlayerStatLine {
	ids := make([]string, 0, len(report))
	for key := range report {
		if isDigits(key) {
			ids = append(ids, key)
		}
	}
	sort.Strings(ids)

	players := make([]models.PlayerStatLine, 0, len(ids))
	for _, key := range ids {
		var rp rawPlayer
		if err := json.Unmarshal(report[key], &rp); err != nil {
			continue
		}
		robloxID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}

		name := strings.TrimSpace(rp.Other.Name)
		display := strings.TrimSpace(rp.Other.Display)
		username := name
		if username == "" {
			username = display
		}
		if username == "" {
			username = key
		}
		if display == "" {
			display = username
		}

		fum := int(rp.WR.Fum)
		if fum == 0 {
			fum = int(rp.WR.Fumble)
		}

		players = append(players, models.PlayerStatLine{
			RobloxID: robloxID,
			Username: username,
			Display:  display,
			QB: models.QBLine{
				Rating:        rp.QB.Rtng,
				Completions:   int(rp.QB.Comp),
				Yards:         int(rp.QB.Yds),
				Touchdowns:    int(rp.QB.TD),
				Interceptions: int(rp.QB.Int),
			},
			WR: models.WRLine{
				Receptions: int(rp.WR.Catch),
				Yards:      int(rp.WR.Yds),
				Touchdowns: int(rp.WR.TD),
				Fumbles:    fum,
			},
			DB: models.DBLine{
				Swats:         int(rp.DB.Defl),
				Interceptions: int(rp.DB.Int),
				Rating:        rp.DB.Rtng,
			},
			DE: models.DELine{
				Sacks:        int(rp.DE.Sack),
				Safeties:     int(rp.DE.Safe),
				ForcedFumble: int(rp.DE.FFum),
			},
		})
	}
	return players
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DetectTeamsHint does a best-effort substring scan of every string in
// the export for franchise names. Diagnostic only: the result is shown
// to the submitter, never merged into standings.
func DetectTeamsHint(report map[string]json.RawMessage) (first, second string) {
	counts := make(map[string]int, len(teams.Registry))
	for _, raw := range report {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		for _, s := range flattenStrings(v) {
			low := strings.ToLower(s)
			for _, t := range teams.Registry {
				if strings.Contains(low, strings.ToLower(t.Name)) {
					counts[t.Name]++
				}
			}
		}
	}

	type hit struct {
		team  string
		count int
	}
	var hits []hit
	for _, t := range teams.Registry {
		if counts[t.Name] > 0 {
			hits = append(hits, hit{t.Name, counts[t.Name]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].count > hits[j].count })

	if len(hits) > 0 {
		first = hits[0].team
	}
	if len(hits) > 1 {
		second = hits[1].team
	}
	return first, second
}

func flattenStrings(v any) []string {
	switch x := v.(type) {
	case string:
		return []string{x}
	case map[string]any:
		var out []string
		for _, child := range x {
			out = append(out, flattenStrings(child)...)
		}
		return out
	case []any:
		var out []string
		for _, child := range x {
			out = append(out, flattenStrings(child)...)
		}
		return out
	}
	return nil
}
