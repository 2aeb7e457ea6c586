// Package standings owns the season ledger: a single JSON document on
// disk holding every team's record, merged under one process-wide lock.
package standings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/sfgleague/gridiron/internal/models"
	"github.com/sfgleague/gridiron/internal/teams"
)

// Repository persists the standings document as indented JSON. The file
// is the source of truth; no cache sits in front of it, so hand edits
// between reads are picked up.
type Repository struct {
	path string
}

// NewRepository builds a Repository writing to path.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// FreshDocument returns a season-1 ledger with a zero record for every
// registered franchise.
func FreshDocument() *models.StandingsDocument {
	doc := &models.StandingsDocument{
		Teams:  make(map[string]*models.TeamRecord, len(teams.Registry)),
		Season: 1,
	}
	for _, name := range teams.Names() {
		doc.Teams[name] = &models.TeamRecord{}
	}
	return doc
}

// Load reads the ledger from disk. A missing file is not an error: a
// fresh document is synthesized, persisted, and returned.
func (r *Repository) Load() (*models.StandingsDocument, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := FreshDocument()
		if err := r.Save(doc); err != nil {
			return nil, fmt.Errorf("initialize standings file: %w", err)
		}
		log.Info().Str("path", r.path).Msg("created fresh standings file")
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read standings file: %w", err)
	}

	var doc models.StandingsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse standings file: %w", err)
	}
	if doc.Teams == nil {
		doc.Teams = make(map[string]*models.TeamRecord)
	}
	if doc.Season == 0 {
		doc.Season = 1
	}
	return &doc, nil
}

// Save writes the ledger back as indented JSON.
func (r *Repository) Save(doc *models.StandingsDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal standings: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write standings file: %w", err)
	}
	return nil
}
