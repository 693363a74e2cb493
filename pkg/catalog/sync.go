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
	"fmt"

	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/systemdefs"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/walker"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/helpers"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type SyncResult struct {
	RunID       string `json:"runId"`
	Added       int    `json:"added"`
	Updated     int    `json:"updated"`
	Total       int    `json:"total"`
	RootMissing bool   `json:"rootMissing"`
}

// SyncSystem scans <content root>/Roms/<system> and merges what it finds
// into the catalog. New files become entries named after their stem. For
// known files only media is refreshed, and only with values that were found,
// so names and metadata set by the user or an import survive. A missing
// system folder leaves the catalog file untouched.
func (s *Service) SyncSystem(system string) (SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := SyncResult{RunID: uuid.New().String()}
	root := s.SystemDir(system)
	exts := systemdefs.AllowedExtensions(system, s.overrides)

	log.Info().
		Str("runId", res.RunID).
		Str("system", system).
		Str("path", root).
		Strs("extensions", exts).
		Msg("starting system sync")

	found, err := walker.Walk(s.fs, root, exts, walker.Options{
		MaxConcurrency: s.maxConcurrency,
	})
	if err != nil {
		return res, fmt.Errorf("failed to scan %s: %w", system, err)
	}
	if found.RootMissing {
		log.Warn().Str("system", system).Str("path", root).Msg("system folder not found")
		res.RootMissing = true
		syncCompleted(s.ns, SyncCompleted{System: system, SyncResult: res})
		return res, nil
	}

	doc, err := s.store.load()
	if err != nil {
		return res, err
	}

	res.Total = len(found.Files)
	syncStarted(s.ns, SyncStarted{RunID: res.RunID, System: system, Total: res.Total})

	index := make(map[string]int, len(doc.Games))
	for i := range doc.Games {
		index[doc.Games[i].ID] = i
	}

	clockNow := s.clock.Now()
	if !helpers.IsClockReliable(clockNow) {
		log.Warn().
			Time("now", clockNow).
			Msg("system clock looks unset, addedAt values may be wrong")
	}
	now := clockNow.UnixMilli()
	for i, path := range found.Files {
		id := Identify(path)
		resolved := s.resolver.Resolve(path)

		if pos, ok := index[id]; ok {
			if doc.Games[pos].MergeMedia(resolved) {
				res.Updated++
			}
		} else {
			info := helpers.GetPathInfo(path)
			g := Game{
				ID:       id,
				System:   system,
				Path:     path,
				Filename: info.Filename,
				Name:     info.Name,
				AddedAt:  now,
			}
			g.MergeMedia(resolved)
			index[id] = len(doc.Games)
			doc.Games = append(doc.Games, g)
			res.Added++
		}

		syncProgress(s.ns, SyncProgress{
			RunID:  res.RunID,
			System: system,
			Index:  i + 1,
			Total:  res.Total,
			Path:   path,
		})
	}

	if err := s.store.save(doc); err != nil {
		return res, err
	}

	log.Info().
		Str("runId", res.RunID).
		Str("system", system).
		Int("added", res.Added).
		Int("updated", res.Updated).
		Int("total", res.Total).
		Int("skippedDirs", len(found.Skipped)).
		Msg("finished system sync")

	syncCompleted(s.ns, SyncCompleted{System: system, SyncResult: res})
	return res, nil
}
