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

package media

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contentRoot = "/content"

func touch(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, fs.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, afero.WriteFile(fs, p, []byte{}, 0o644))
	}
}

func TestResolve_AllKinds(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	sys := "/content/Roms/snes"
	touch(t, fs,
		sys+"/Mario.sfc",
		sys+"/media/screenshots/Mario.png",
		sys+"/media/covers/Mario.jpg",
		sys+"/media/videos/Mario.mkv",
		sys+"/media/marquees/Mario.jpeg",
		sys+"/media/wheels/Mario.png",
		sys+"/media/fanart/Mario.png",
	)

	r := Resolver{Fs: fs, ContentRoot: contentRoot}
	got := r.Resolve(sys + "/Mario.sfc")

	assert.Equal(t, Set{
		KindImage:     "Roms/snes/media/screenshots/Mario.png",
		KindThumbnail: "Roms/snes/media/covers/Mario.jpg",
		KindVideo:     "Roms/snes/media/videos/Mario.mkv",
		KindMarquee:   "Roms/snes/media/marquees/Mario.jpeg",
		KindWheel:     "Roms/snes/media/wheels/Mario.png",
		KindFanart:    "Roms/snes/media/fanart/Mario.png",
	}, got)
}

func TestResolve_ExtensionPriority(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	sys := "/content/Roms/nes"
	touch(t, fs,
		sys+"/media/screenshots/Zelda.jpeg",
		sys+"/media/screenshots/Zelda.jpg",
		sys+"/media/screenshots/Zelda.png",
		sys+"/media/videos/Zelda.avi",
		sys+"/media/videos/Zelda.mp4",
	)

	got := Resolver{Fs: fs, ContentRoot: contentRoot}.Resolve(sys + "/Zelda.nes")
	assert.Equal(t, "Roms/nes/media/screenshots/Zelda.png", got[KindImage])
	assert.Equal(t, "Roms/nes/media/videos/Zelda.mp4", got[KindVideo])
}

func TestResolve_VideoIgnoresImageExtensions(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	sys := "/content/Roms/nes"
	touch(t, fs,
		sys+"/media/videos/Zelda.png",
		sys+"/media/screenshots/Zelda.mp4",
	)

	got := Resolver{Fs: fs, ContentRoot: contentRoot}.Resolve(sys + "/Zelda.nes")
	assert.Empty(t, got)
}

func TestResolve_FanartsAliasWins(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	sys := "/content/Roms/md"
	touch(t, fs,
		sys+"/media/fanart/Sonic.png",
		sys+"/media/fanarts/Sonic.jpg",
	)

	got := Resolver{Fs: fs, ContentRoot: contentRoot}.Resolve(sys + "/Sonic.md")
	assert.Equal(t, Set{KindFanart: "Roms/md/media/fanarts/Sonic.jpg"}, got)
}

func TestResolve_SubfolderUsesOwnMediaDir(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	sys := "/content/Roms/nes"
	touch(t, fs,
		sys+"/media/screenshots/Metroid.png",
		sys+"/USA/media/covers/Metroid.png",
	)

	got := Resolver{Fs: fs, ContentRoot: contentRoot}.Resolve(sys + "/USA/Metroid.nes")
	assert.Equal(t, Set{KindThumbnail: "Roms/nes/USA/media/covers/Metroid.png"}, got)
}

func TestResolve_DirectoryNotAMatch(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	sys := "/content/Roms/nes"
	require.NoError(t, fs.MkdirAll(sys+"/media/screenshots/Zelda.png", 0o755))

	got := Resolver{Fs: fs, ContentRoot: contentRoot}.Resolve(sys + "/Zelda.nes")
	assert.Empty(t, got)
}

func TestProbeKind(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	sys := "/content/Roms/nes"
	touch(t, fs, sys+"/media/wheels/Zelda.jpg")

	r := Resolver{Fs: fs, ContentRoot: contentRoot}
	assert.Equal(t, "Roms/nes/media/wheels/Zelda.jpg", r.ProbeKind(sys, "Zelda", KindWheel))
	assert.Empty(t, r.ProbeKind(sys, "Mario", KindWheel))
	assert.Empty(t, r.ProbeKind(sys, "Zelda", Kind("unknown")))
}

func TestKindsAndDirs(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		assert.NotEmpty(t, Dir(k), "kind %s has no folder", k)
		assert.NotEmpty(t, Extensions(k))
	}
	assert.Equal(t, "fanart", Dir(KindFanart))
}

func TestIsMediaDir(t *testing.T) {
	t.Parallel()

	assert.True(t, IsMediaDir("/roms/nes/media"))
	assert.True(t, IsMediaDir("/roms/nes/media/screenshots"))
	assert.True(t, IsMediaDir("/roms/nes/media/fanarts"))
	assert.False(t, IsMediaDir("/roms/nes/media/images"))
	assert.False(t, IsMediaDir("/roms/nes/covers"))
	assert.False(t, IsMediaDir("/roms/nes/USA"))
}
