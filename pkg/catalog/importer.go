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
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/gamelist"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/media"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/config"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/helpers"
	"github.com/rs/zerolog/log"
)

var ErrGamelistNotFound = fmt.Errorf("no gamelist for system: %w", gamelist.ErrNotFound)

type ImportResult struct {
	Updated   int `json:"updated"`
	Unmatched int `json:"unmatched"`
	Ambiguous int `json:"ambiguous"`
}

// ImportGamelist merges <system dir>/gamelist.xml into the system's entries.
// A record applies to the entry whose path it resolves to, or failing that to
// the only entry of the system with the same filename. Only non-empty
// values are written, so an import never clears a field.
func (s *Service) ImportGamelist(system string) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res ImportResult
	sysDir := s.SystemDir(system)
	xmlPath := filepath.Join(sysDir, config.GamelistXMLFile)

	gl, err := gamelist.Read(s.fs, xmlPath)
	if errors.Is(err, gamelist.ErrNotFound) {
		log.Info().Str("system", system).Str("path", xmlPath).Msg("no gamelist.xml to import")
		return res, fmt.Errorf("%w: %s", ErrGamelistNotFound, xmlPath)
	} else if err != nil {
		return res, fmt.Errorf("failed to import gamelist for %s: %w", system, err)
	}

	doc, err := s.store.load()
	if err != nil {
		return res, err
	}

	byPath := make(map[string]int)
	byFilename := make(map[string][]int)
	for i := range doc.Games {
		g := &doc.Games[i]
		if g.System != system {
			continue
		}
		byPath[g.Path] = i
		byFilename[g.Filename] = append(byFilename[g.Filename], i)
	}

	for _, record := range gl.Games {
		recPath := record.Path.String()
		if recPath == "" {
			res.Unmatched++
			continue
		}

		pos, ok := byPath[resolveRecordPath(sysDir, recPath)]
		if !ok {
			candidates := byFilename[filepath.Base(filepath.FromSlash(recPath))]
			switch len(candidates) {
			case 0:
				res.Unmatched++
				continue
			case 1:
				pos = candidates[0]
			default:
				log.Warn().
					Str("system", system).
					Str("path", recPath).
					Int("candidates", len(candidates)).
					Msg("gamelist record matches several entries, skipping")
				res.Ambiguous++
				continue
			}
		}

		s.applyRecord(&doc.Games[pos], &record, sysDir)
		res.Updated++
	}

	if err := s.store.save(doc); err != nil {
		return res, err
	}

	log.Info().
		Str("system", system).
		Int("updated", res.Updated).
		Int("unmatched", res.Unmatched).
		Int("ambiguous", res.Ambiguous).
		Msg("imported gamelist")

	importCompleted(s.ns, ImportCompleted{System: system, ImportResult: res})
	return res, nil
}

func (s *Service) applyRecord(g *Game, record *gamelist.Game, sysDir string) {
	setText(&g.Name, record.Name)
	setText(&g.Description, record.Desc)
	setText(&g.Developer, record.Developer)
	setText(&g.Publisher, record.Publisher)
	setText(&g.ReleaseDate, record.ReleaseDate)
	setText(&g.Genre, record.Genre)
	setText(&g.Players, record.Players)
	setText(&g.Rating, record.Rating)

	s.setMedia(&g.Image, record.Image, sysDir)
	s.setMedia(&g.Thumbnail, record.Thumbnail, sysDir)
	s.setMedia(&g.Marquee, record.Marquee, sysDir)
	s.setMedia(&g.Video, record.Video, sysDir)
	s.setMedia(&g.Wheel, record.Wheel, sysDir)
	s.setMedia(&g.Fanart, record.Fanart, sysDir)
	s.setMedia(&g.Fanart, record.Fanarts, sysDir)

	// A wheel on disk named after the ROM beats the declared one.
	stem := helpers.FileStem(g.Filename)
	if wheel := s.resolver.ProbeKind(sysDir, stem, media.KindWheel); wheel != "" {
		g.Wheel = wheel
	}
}

func setText(field *string, text gamelist.Text) {
	if v := text.String(); v != "" {
		*field = v
	}
}

func (s *Service) setMedia(field *string, text gamelist.Text, sysDir string) {
	v := text.String()
	if v == "" {
		return
	}
	full := resolveRecordPath(sysDir, v)
	rel, err := helpers.CatalogRelPath(s.contentRoot, full)
	if err != nil {
		log.Warn().Err(err).Str("path", v).Msg("skipping gamelist media path")
		return
	}
	*field = rel
}

// resolveRecordPath turns a gamelist path into an absolute one. Relative
// paths, with or without a leading "./", are relative to the system folder.
func resolveRecordPath(sysDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(sysDir, filepath.FromSlash(helpers.StripDotPrefix(p)))
}
