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

package helpers

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPathInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		expected PathInfo
	}{
		{
			name: "rom with extension",
			path: "/content/Roms/snes/mario.sfc",
			expected: PathInfo{
				Path:      "/content/Roms/snes/mario.sfc",
				Dir:       "/content/Roms/snes",
				Filename:  "mario.sfc",
				Extension: ".sfc",
				Name:      "mario",
			},
		},
		{
			name: "dotted name keeps all but last extension",
			path: "/content/Roms/psx/Final Fantasy VII (Disc 1).bin.cue",
			expected: PathInfo{
				Path:      "/content/Roms/psx/Final Fantasy VII (Disc 1).bin.cue",
				Dir:       "/content/Roms/psx",
				Filename:  "Final Fantasy VII (Disc 1).bin.cue",
				Extension: ".cue",
				Name:      "Final Fantasy VII (Disc 1).bin",
			},
		},
		{
			name: "no extension",
			path: "/content/Roms/dos/GAME",
			expected: PathInfo{
				Path:     "/content/Roms/dos/GAME",
				Dir:      "/content/Roms/dos",
				Filename: "GAME",
				Name:     "GAME",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, GetPathInfo(tt.path))
		})
	}
}

func TestFileStem(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Zelda (USA)", FileStem("/roms/nes/Zelda (USA).nes"))
}

func TestCatalogRelPath(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/content")
	path := filepath.Join(root, "Roms", "nes", "media", "covers", "mario.png")

	rel, err := CatalogRelPath(root, path)
	require.NoError(t, err)
	assert.Equal(t, "Roms/nes/media/covers/mario.png", rel)
}

func TestCatalogRelPathOutsideRoot(t *testing.T) {
	t.Parallel()

	rel, err := CatalogRelPath(filepath.FromSlash("/content"), filepath.FromSlash("/other/file.png"))
	require.NoError(t, err)
	assert.Equal(t, "../other/file.png", rel)
}

func TestCatalogRelPathMixedAbsolute(t *testing.T) {
	t.Parallel()

	_, err := CatalogRelPath("relative/root", filepath.FromSlash("/abs/file.png"))
	require.Error(t, err)
}

func TestStripDotPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "./mario.nes", want: "mario.nes"},
		{in: `.\mario.nes`, want: "mario.nes"},
		{in: "mario.nes", want: "mario.nes"},
		{in: "../mario.nes", want: "../mario.nes"},
		{in: "././mario.nes", want: "./mario.nes"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StripDotPrefix(tt.in), tt.in)
	}
}

func TestFileAndDirExists(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/roms/nes", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/roms/nes/mario.nes", []byte{}, 0o644))

	assert.True(t, FileExists(fs, "/roms/nes/mario.nes"))
	assert.False(t, FileExists(fs, "/roms/nes"))
	assert.False(t, FileExists(fs, "/roms/nes/luigi.nes"))

	assert.True(t, DirExists(fs, "/roms/nes"))
	assert.False(t, DirExists(fs, "/roms/nes/mario.nes"))
	assert.False(t, DirExists(fs, "/roms/snes"))
}
