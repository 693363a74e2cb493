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
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/ZaparooProject/zaparoo-catalog/pkg/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	syncNES(t, env, "Zelda.nes", "mario.nes")
	require.NoError(t, env.fsh.WriteGamelist(fixtures.ContentRoot, "nes", fixtures.NESGamelist))
	_, err := env.svc.ImportGamelist("nes")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, env.svc.ExportCSV(&buf, "nes"))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"id", "system", "filename", "name", "genre", "developer",
		"publisher", "releaseDate", "players", "rating", "path",
	}, records[0])

	byFile := map[string][]string{}
	for _, r := range records[1:] {
		byFile[r[2]] = r
	}
	zelda := byFile["Zelda.nes"]
	require.NotNil(t, zelda)
	assert.Equal(t, "The Legend of Zelda", zelda[3])
	assert.Equal(t, "Nintendo R&D4", zelda[5])
	assert.Equal(t, "/content/Roms/nes/Zelda.nes", zelda[10])

	assert.Equal(t, "mario", byFile["mario.nes"][3])
}
