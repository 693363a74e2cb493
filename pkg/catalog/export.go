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
	"io"

	"github.com/gocarina/gocsv"
)

type exportRow struct {
	ID          string `csv:"id"`
	System      string `csv:"system"`
	Filename    string `csv:"filename"`
	Name        string `csv:"name"`
	Genre       string `csv:"genre"`
	Developer   string `csv:"developer"`
	Publisher   string `csv:"publisher"`
	ReleaseDate string `csv:"releaseDate"`
	Players     string `csv:"players"`
	Rating      string `csv:"rating"`
	Path        string `csv:"path"`
}

// ExportCSV writes one row per entry of system, in catalog order, with a
// header line.
func (s *Service) ExportCSV(w io.Writer, system string) error {
	games, err := s.GetGames(system)
	if err != nil {
		return err
	}

	rows := make([]*exportRow, 0, len(games))
	for i := range games {
		g := &games[i]
		rows = append(rows, &exportRow{
			ID:          g.ID,
			System:      g.System,
			Filename:    g.Filename,
			Name:        g.Name,
			Genre:       g.Genre,
			Developer:   g.Developer,
			Publisher:   g.Publisher,
			ReleaseDate: g.ReleaseDate,
			Players:     g.Players,
			Rating:      g.Rating,
			Path:        g.Path,
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write csv for %s: %w", system, err)
	}
	return nil
}
