// Package statsheet maintains the league stat workbook: one raw tab per
// position group plus a PlayerStats dashboard of Top 15 blocks.
package statsheet

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/sfgleague/gridiron/internal/models"
)

// Workbook tab names. PlayerStats is the rendered dashboard; the rest
// hold one appended row per player per game.
const (
	TabPlayerStats = "PlayerStats"
	TabQB          = "QB"
	TabWR          = "WR"
	TabDB          = "DB"
	TabDE          = "DE"
)

// DataStartRow is the first data row on every tab; rows above it are
// header and art rows owned by the template.
const DataStartRow = 8

// Raw tab layout: game id, member id, player, team, then stats.
const statColOffset = 4

// Workbook wraps the xlsx file on disk. All access is serialized; sheet
// writes are slow but rare (one burst per game report).
type Workbook struct {
	path string

	mu   sync.Mutex
	file *excelize.File
}

// OpenWorkbook opens the workbook at path, creating it with all five
// tabs when missing.
func OpenWorkbook(path string) (*Workbook, error) {
	w := &Workbook{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		w.file = excelize.NewFile()
	} else {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open stat workbook: %w", err)
		}
		w.file = f
	}

	if err := w.ensureTabs(); err != nil {
		return nil, err
	}
	if err := w.save(); err != nil {
		return nil, err
	}
	return w, nil
}

// Close releases the underlying file handle.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

func (w *Workbook) ensureTabs() error {
	existing := make(map[string]bool)
	for _, name := range w.file.GetSheetList() {
		existing[name] = true
	}
	for _, tab := range []string{TabPlayerStats, TabQB, TabWR, TabDB, TabDE} {
		if existing[tab] {
			continue
		}
		if _, err := w.file.NewSheet(tab); err != nil {
			return fmt.Errorf("create tab %s: %w", tab, err)
		}
	}
	// drop the default sheet excelize seeds into new files
	if existing["Sheet1"] || !existing[TabPlayerStats] {
		for _, name := range w.file.GetSheetList() {
			if name == "Sheet1" {
				if err := w.file.DeleteSheet(name); err != nil {
					return fmt.Errorf("delete default sheet: %w", err)
				}
			}
		}
	}
	return nil
}

func (w *Workbook) save() error {
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("save stat workbook: %w", err)
	}
	return nil
}

// appendRow writes cells into the next free row of a tab, never above
// DataStartRow.
func (w *Workbook) appendRow(tab string, cells []interface{}) error {
	rows, err := w.file.GetRows(tab)
	if err != nil {
		return fmt.Errorf("read tab %s: %w", tab, err)
	}
	next := len(rows) + 1
	if next < DataStartRow {
		next = DataStartRow
	}
	cell, err := excelize.CoordinatesToCellName(1, next)
	if err != nil {
		return fmt.Errorf("compute cell: %w", err)
	}
	if err := w.file.SetSheetRow(tab, cell, &cells); err != nil {
		return fmt.Errorf("append row to %s: %w", tab, err)
	}
	return nil
}

// AppendQB records one passing stat line.
func (w *Workbook) AppendQB(gameID, memberID, player, team string, line models.QBLine) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.appendRow(TabQB, []interface{}{
		gameID, memberID, player, team,
		line.Rating, line.Completions, line.Yards, line.Touchdowns, line.Interceptions,
	}); err != nil {
		return err
	}
	return w.save()
}

// AppendWR records one receiving stat line.
func (w *Workbook) AppendWR(gameID, memberID, player, team string, line models.WRLine) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.appendRow(TabWR, []interface{}{
		gameID, memberID, player, team,
		line.Receptions, line.Yards, line.Touchdowns, line.Fumbles,
	}); err != nil {
		return err
	}
	return w.save()
}

// AppendDB records one coverage stat line.
func (w *Workbook) AppendDB(gameID, memberID, player, team string, line models.DBLine) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.appendRow(TabDB, []interface{}{
		gameID, memberID, player, team,
		line.Swats, line.Interceptions, line.Rating,
	}); err != nil {
		return err
	}
	return w.save()
}

// AppendDE records one pass-rush stat line.
func (w *Workbook) AppendDE(gameID, memberID, player, team string, line models.DELine) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.appendRow(TabDE, []interface{}{
		gameID, memberID, player, team,
		line.Sacks, line.Safeties, line.ForcedFumble,
	}); err != nil {
		return err
	}
	return w.save()
}

type aggRow struct {
	key    string
	player string
	team   string
	sums   []float64
	count  int
}

// readAgg folds a raw tab into per-player aggregates. Rows without a
// player name are template noise and skipped; the member ID column is
// the aggregation key with the player name as fallback.
func (w *Workbook) readAgg(tab string, statCols int) ([]*aggRow, error) {
	rows, err := w.file.GetRows(tab)
	if err != nil {
		return nil, fmt.Errorf("read tab %s: %w", tab, err)
	}

	byKey := make(map[string]*aggRow)
	var order []string
	for i, row := range rows {
		if i < DataStartRow-1 {
			continue
		}
		player := strings.TrimSpace(safeCell(row, 2))
		if player == "" {
			continue
		}
		key := strings.TrimSpace(safeCell(row, 1))
		if key == "" {
			key = player
		}

		agg, ok := byKey[key]
		if !ok {
			agg = &aggRow{key: key, sums: make([]float64, statCols)}
			byKey[key] = agg
			order = append(order, key)
		}
		agg.player = player
		agg.team = strings.TrimSpace(safeCell(row, 3))
		agg.count++
		for c := 0; c < statCols; c++ {
			agg.sums[c] += parseFloat(safeCell(row, statColOffset+c))
		}
	}

	out := make([]*aggRow, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out, nil
}

// UpdateTop15 rebuilds the PlayerStats dashboard from the raw tabs.
// Block positions and sort rules match the published template:
//
//	QB A8:G22  avg rating desc, then passing yards
//	WR I8:N22  receiving yards desc, then receptions
//	DB A26:E40 avg rating desc, then interceptions
//	DE I26:M40 sacks desc, then forced fumbles
func (w *Workbook) UpdateTop15() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	qb, err := w.readAgg(TabQB, 5)
	if err != nil {
		return err
	}
	qbRows := make([][]interface{}, 0, len(qb))
	for _, a := range qb {
		avg := round2(a.sums[0] / float64(a.count))
		qbRows = append(qbRows, []interface{}{
			a.player, a.team, avg, int(a.sums[1]), int(a.sums[2]), int(a.sums[3]), int(a.sums[4]),
		})
	}
	sortRows(qbRows, 2, 4)

	wr, err := w.readAgg(TabWR, 4)
	if err != nil {
		return err
	}
	wrRows := make([][]interface{}, 0, len(wr))
	for _, a := range wr {
		wrRows = append(wrRows, []interface{}{
			a.player, a.team, int(a.sums[0]), int(a.sums[1]), int(a.sums[2]), int(a.sums[3]),
		})
	}
	sortRows(wrRows, 3, 2)

	db, err := w.readAgg(TabDB, 3)
	if err != nil {
		return err
	}
	dbRows := make([][]interface{}, 0, len(db))
	for _, a := range db {
		avg := round2(a.sums[2] / float64(a.count))
		dbRows = append(dbRows, []interface{}{
			a.player, a.team, int(a.sums[0]), int(a.sums[1]), avg,
		})
	}
	sortRows(dbRows, 4, 3)

	de, err := w.readAgg(TabDE, 3)
	if err != nil {
		return err
	}
	deRows := make([][]interface{}, 0, len(de))
	for _, a := range de {
		deRows = append(deRows, []interface{}{
			a.player, a.team, int(a.sums[0]), int(a.sums[1]), int(a.sums[2]),
		})
	}
	sortRows(deRows, 2, 4)

	if err := w.writeBlock(1, 8, pad(qbRows, 15, 7)); err != nil {
		return err
	}
	if err := w.writeBlock(9, 8, pad(wrRows, 15, 6)); err != nil {
		return err
	}
	if err := w.writeBlock(1, 26, pad(dbRows, 15, 5)); err != nil {
		return err
	}
	if err := w.writeBlock(9, 26, pad(deRows, 15, 5)); err != nil {
		return err
	}
	if err := w.save(); err != nil {
		return err
	}

	log.Info().
		Int("qb", len(qbRows)).
		Int("wr", len(wrRows)).
		Int("db", len(dbRows)).
		Int("de", len(deRows)).
		Msg("rebuilt PlayerStats dashboard")
	return nil
}

// writeBlock writes a fixed 15-row block onto the dashboard starting at
// (col, row), one-based.
func (w *Workbook) writeBlock(col, row int, block [][]interface{}) error {
	for i, cells := range block {
		cell, err := excelize.CoordinatesToCellName(col, row+i)
		if err != nil {
			return fmt.Errorf("compute cell: %w", err)
		}
		if err := w.file.SetSheetRow(TabPlayerStats, cell, &cells); err != nil {
			return fmt.Errorf("write dashboard row: %w", err)
		}
	}
	return nil
}

// sortRows orders descending by the primary column then the secondary.
func sortRows(rows [][]interface{}, primary, secondary int) {
	sort.SliceStable(rows, func(i, j int) bool {
		pi, pj := cellFloat(rows[i][primary]), cellFloat(rows[j][primary])
		if pi != pj {
			return pi > pj
		}
		return cellFloat(rows[i][secondary]) > cellFloat(rows[j][secondary])
	})
}

// pad truncates to n rows and fills the remainder with blanks so stale
// dashboard entries are always overwritten.
func pad(rows [][]interface{}, n, cols int) [][]interface{} {
	if len(rows) > n {
		rows = rows[:n]
	}
	for len(rows) < n {
		blank := make([]interface{}, cols)
		for i := range blank {
			blank[i] = ""
		}
		rows = append(rows, blank)
	}
	return rows
}

func safeCell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func cellFloat(v interface{}) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case float64:
		return x
	case string:
		return parseFloat(x)
	}
	return 0
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
