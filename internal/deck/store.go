package deck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	// LegacyMasterFile is the single-language French word list.
	LegacyMasterFile = "500_french_english_pairs.csv"

	// LegacyProgressFile is the in-progress copy of LegacyMasterFile.
	LegacyProgressFile = "words_to_learn.csv"
)

// Store reads and writes deck tables under one data directory.
type Store struct {
	dir string
	log *zap.Logger
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dir: dir, log: log}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// MasterPath returns the read-only master table for sel.
func (s *Store) MasterPath(sel Selector) string {
	if sel.Legacy {
		return filepath.Join(s.dir, LegacyMasterFile)
	}
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s_phrases.csv", sel.Language.Slug(), sel.Category))
}

// ProgressPath returns the in-progress table for sel.
func (s *Store) ProgressPath(sel Selector) string {
	if sel.Legacy {
		return filepath.Join(s.dir, LegacyProgressFile)
	}
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s_%s_phrases_to_learn.csv", sel.Language.Slug(), sel.Category, sel.Direction))
}

// Load returns the deck for sel. An existing in-progress file wins; otherwise
// the master table is copied byte for byte into a new in-progress file.
//
// If that copy cannot be written the deck is still returned, together with a
// *PersistError.
func (s *Store) Load(sel Selector) (*Deck, error) {
	if sel.Legacy {
		return s.LoadLegacy()
	}

	progress := s.ProgressPath(sel)
	d, _, err := readTable(progress, sel.LanguageColumn(), EnglishColumn)
	if err == nil {
		s.log.Debug("loaded in-progress deck", zap.String("path", progress), zap.Int("rows", d.Len()))
		return d, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	master := s.MasterPath(sel)
	d, raw, err := readTable(master, sel.LanguageColumn(), EnglishColumn)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(progress, raw, 0o644); err != nil {
		return d, &PersistError{Path: progress, Err: err}
	}
	s.log.Info("created in-progress deck from master",
		zap.String("master", master),
		zap.String("path", progress),
		zap.Int("rows", d.Len()),
	)
	return d, nil
}

// LoadLegacy loads the French word list, drops duplicate rows and writes the
// result back to the legacy in-progress file before returning it.
func (s *Store) LoadLegacy() (*Deck, error) {
	sel := Selector{Legacy: true}
	progress := s.ProgressPath(sel)

	d, _, err := readTable(progress, sel.LanguageColumn(), EnglishColumn)
	if errors.Is(err, fs.ErrNotExist) {
		d, _, err = readTable(s.MasterPath(sel), sel.LanguageColumn(), EnglishColumn)
	}
	if err != nil {
		return nil, err
	}

	deduped := Deduplicate(d)
	s.log.Info("loaded legacy word list",
		zap.Int("rows", d.Len()),
		zap.Int("duplicates", d.Len()-deduped.Len()),
	)
	if err := writeTable(progress, deduped); err != nil {
		return deduped, err
	}
	return deduped, nil
}

// Remove drops every row equal to e and overwrites the in-progress file.
// The returned deck reflects the removal even when the write fails; in that
// case the error is a *PersistError and the entry may reappear on next load.
func (s *Store) Remove(sel Selector, d *Deck, e Entry) (*Deck, error) {
	next := d.Without(e)
	if err := writeTable(s.ProgressPath(sel), next); err != nil {
		return next, err
	}
	return next, nil
}

// Master reads the master table for sel without touching the in-progress file.
func (s *Store) Master(sel Selector) (*Deck, error) {
	d, _, err := readTable(s.MasterPath(sel), sel.LanguageColumn(), EnglishColumn)
	return d, err
}

// Remaining returns the row count of the in-progress file for sel and whether
// that file exists yet.
func (s *Store) Remaining(sel Selector) (int, bool, error) {
	d, _, err := readTable(s.ProgressPath(sel), sel.LanguageColumn(), EnglishColumn)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, true, err
	}
	return d.Len(), true, nil
}

// Reset deletes the in-progress file for sel so the next load starts from the
// master table again. A missing file is not an error.
func (s *Store) Reset(sel Selector) error {
	path := s.ProgressPath(sel)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reset %s: %w", path, err)
	}
	s.log.Info("reset in-progress deck", zap.String("path", path))
	return nil
}
