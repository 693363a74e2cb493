// Zaparoo Catalog
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Catalog.
//
// Zaparoo Catalog is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Catalog is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Catalog.  If not, see <http://www.gnu.org/licenses/>.

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// store reads and writes the catalog document at a single path.
type store struct {
	fs       afero.Fs
	validate *validator.Validate
	path     string
}

func newStore(fs afero.Fs, path string) *store {
	return &store{
		fs:       fs,
		path:     path,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// load returns the catalog on disk. A missing file is an empty catalog. So
// is a file that does not parse as a catalog document, which is logged.
// Entries that fail to decode or validate, and repeated IDs, are logged and
// dropped one by one.
func (s *store) load() (*Document, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Document{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", s.path, err)
	}

	var raw struct {
		Games []json.RawMessage `json:"games"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("catalog is corrupt, starting empty")
		return &Document{}, nil
	}
	extra, err := splitExtra(data, documentKeys)
	if err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("catalog is corrupt, starting empty")
		return &Document{}, nil
	}

	doc := &Document{Extra: extra, Games: make([]Game, 0, len(raw.Games))}
	seen := make(map[string]struct{}, len(raw.Games))
	for i, elem := range raw.Games {
		var g Game
		if err := json.Unmarshal(elem, &g); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("dropping undecodable catalog entry")
			continue
		}
		if err := s.validate.Struct(&g); err != nil {
			log.Warn().Err(err).Int("index", i).Str("id", g.ID).Msg("dropping invalid catalog entry")
			continue
		}
		if _, dup := seen[g.ID]; dup {
			log.Warn().Str("id", g.ID).Str("path", g.Path).Msg("dropping duplicate catalog entry")
			continue
		}
		seen[g.ID] = struct{}{}
		doc.Games = append(doc.Games, g)
	}

	return doc, nil
}

// save writes the whole document to a temp file beside the catalog and
// renames it into place.
func (s *store) save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create catalog dir %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog: %w", err)
	}
	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if renamed {
			return
		}
		if rmErr := s.fs.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.Warn().Err(rmErr).Str("path", tmpName).Msg("failed to remove temp catalog")
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp catalog: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp catalog: %w", err)
	}

	if err := s.fs.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace catalog %s: %w", s.path, err)
	}
	renamed = true

	log.Debug().Str("path", s.path).Int("games", len(doc.Games)).Msg("saved catalog")
	return nil
}
