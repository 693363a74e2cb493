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

// Package catalog keeps the persisted game catalog in step with the ROM
// folders under a content root.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/media"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/systemdefs"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/config"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/helpers/syncutil"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type Options struct {
	// Clock stamps addedAt on new entries. Defaults to the real clock.
	Clock clockwork.Clock
	// Notifications receives progress events when set.
	Notifications chan<- Notification
	// MaxConcurrency bounds directory reads during a scan.
	MaxConcurrency int
}

// Service runs catalog operations. Calls are serialized, and each one reads
// the catalog from disk and writes it back whole.
type Service struct {
	fs             afero.Fs
	clock          clockwork.Clock
	overrides      systemdefs.ExtensionOverrides
	store          *store
	ns             chan<- Notification
	resolver       media.Resolver
	contentRoot    string
	maxConcurrency int
	mu             syncutil.Mutex
}

// NewService builds a service over contentRoot, made absolute so stored paths
// and IDs do not depend on the working directory. catalogFile is joined to the
// content root unless it is absolute. overrides may be nil.
func NewService(
	fs afero.Fs,
	contentRoot string,
	catalogFile string,
	overrides systemdefs.ExtensionOverrides,
	opts Options,
) *Service {
	if abs, err := filepath.Abs(contentRoot); err != nil {
		log.Warn().Err(err).Str("path", contentRoot).Msg("failed to make content root absolute")
	} else {
		contentRoot = abs
	}
	if catalogFile == "" {
		catalogFile = config.CatalogFile
	}
	if !filepath.IsAbs(catalogFile) {
		catalogFile = filepath.Join(contentRoot, catalogFile)
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Service{
		fs:             fs,
		clock:          clock,
		overrides:      overrides,
		store:          newStore(fs, catalogFile),
		ns:             opts.Notifications,
		resolver:       media.Resolver{Fs: fs, ContentRoot: contentRoot},
		contentRoot:    contentRoot,
		maxConcurrency: opts.MaxConcurrency,
	}
}

func (s *Service) ContentRoot() string {
	return s.contentRoot
}

func (s *Service) CatalogPath() string {
	return s.store.path
}

// RomsDir is <content root>/Roms.
func (s *Service) RomsDir() string {
	return filepath.Join(s.contentRoot, config.RomsDir)
}

// SystemDir is the folder holding a system's ROMs.
func (s *Service) SystemDir(system string) string {
	return filepath.Join(s.RomsDir(), system)
}

// DiscoverSystems lists the system folders under the Roms directory, sorted.
// A missing Roms directory has no systems.
func (s *Service) DiscoverSystems() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.RomsDir())
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to list systems in %s: %w", s.RomsDir(), err)
	}

	systems := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			systems = append(systems, e.Name())
		}
	}
	sort.Strings(systems)
	return systems, nil
}

// Load returns the catalog as it is on disk.
func (s *Service) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.load()
}

// Save replaces the catalog on disk with doc.
func (s *Service) Save(doc *Document) error {
	if doc == nil {
		return errors.New("cannot save nil catalog")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.save(doc)
}

// GetGames returns the entries of one system in catalog order. A corrupt
// catalog reads as empty.
func (s *Service) GetGames(system string) ([]Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.load()
	if err != nil {
		return nil, err
	}

	games := make([]Game, 0)
	for i := range doc.Games {
		if doc.Games[i].System == system {
			games = append(games, doc.Games[i])
		}
	}
	return games, nil
}

// Systems returns the distinct systems present in the catalog, in order of
// first appearance.
func (s *Service) Systems() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	systems := make([]string, 0)
	for i := range doc.Games {
		sys := doc.Games[i].System
		if _, ok := seen[sys]; ok {
			continue
		}
		seen[sys] = struct{}{}
		systems = append(systems, sys)
	}
	return systems, nil
}

// DeleteGame removes the entry with id and reports whether it existed. The
// ROM and its media on disk are left alone.
func (s *Service) DeleteGame(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.load()
	if err != nil {
		return false, err
	}

	kept := doc.Games[:0]
	found := false
	for i := range doc.Games {
		if doc.Games[i].ID == id {
			found = true
			continue
		}
		kept = append(kept, doc.Games[i])
	}
	doc.Games = kept

	if err := s.store.save(doc); err != nil {
		return found, err
	}
	log.Info().Str("id", id).Bool("found", found).Msg("deleted catalog entry")
	return found, nil
}

// ResetSystem removes every entry of a system and returns how many went.
func (s *Service) ResetSystem(system string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.load()
	if err != nil {
		return 0, err
	}

	kept := doc.Games[:0]
	removed := 0
	for i := range doc.Games {
		if doc.Games[i].System == system {
			removed++
			continue
		}
		kept = append(kept, doc.Games[i])
	}
	doc.Games = kept

	if err := s.store.save(doc); err != nil {
		return 0, err
	}
	log.Info().Str("system", system).Int("removed", removed).Msg("reset system")
	return removed, nil
}
