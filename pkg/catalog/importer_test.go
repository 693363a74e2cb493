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
	"testing"

	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/gamelist"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syncNES(t *testing.T, env *testEnv, names ...string) {
	t.Helper()
	env.roms(t, "nes", names...)
	_, err := env.svc.SyncSystem("nes")
	require.NoError(t, err)
	env.drain()
}

func gameByFilename(t *testing.T, env *testEnv, system, filename string) Game {
	t.Helper()
	games, err := env.svc.GetGames(system)
	require.NoError(t, err)
	for _, g := range games {
		if g.Filename == filename {
			return g
		}
	}
	t.Fatalf("no %s entry with filename %s", system, filename)
	return Game{}
}

func TestImportGamelist_Overwrite(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	syncNES(t, env, "mario.nes")
	require.NoError(t, env.fsh.WriteGamelist(fixtures.ContentRoot, "nes", `<gameList>
		<game>
			<path>./mario.nes</path>
			<name>Super Mario Bros.</name>
			<genre>Platform</genre>
		</game>
	</gameList>`))

	res, err := env.svc.ImportGamelist("nes")
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Updated: 1}, res)

	g := gameByFilename(t, env, "nes", "mario.nes")
	assert.Equal(t, "Super Mario Bros.", g.Name)
	assert.Equal(t, "Platform", g.Genre)
}

func TestImportGamelist_AllFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	syncNES(t, env, "Zelda.nes")
	require.NoError(t, env.fsh.WriteGamelist(fixtures.ContentRoot, "nes", fixtures.NESGamelist))

	res, err := env.svc.ImportGamelist("nes")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Unmatched)
	assert.Zero(t, res.Ambiguous)

	g := gameByFilename(t, env, "nes", "Zelda.nes")
	assert.Equal(t, "The Legend of Zelda", g.Name)
	assert.Equal(t, "Explore Hyrule.", g.Description)
	assert.Equal(t, "Nintendo R&D4", g.Developer)
	assert.Equal(t, "Nintendo", g.Publisher)
	assert.Equal(t, "19860221T000000", g.ReleaseDate)
	assert.Equal(t, "Action-Adventure", g.Genre)
	assert.Equal(t, "1", g.Players)
	assert.Equal(t, "0.9", g.Rating)
	assert.Equal(t, "Roms/nes/media/screenshots/Zelda.png", g.Image)
	assert.Equal(t, "Roms/nes/media/covers/Zelda.png", g.Thumbnail)
	assert.Equal(t, "Roms/nes/media/marquees/Zelda.png", g.Marquee)
	assert.Equal(t, "Roms/nes/media/videos/Zelda.mp4", g.Video)
	assert.Equal(t, "Roms/nes/media/wheels/Zelda-declared.png", g.Wheel)
	assert.Equal(t, "Roms/nes/media/fanart/Zelda.png", g.Fanart)
}

func TestImportGamelist_EmptyValuesDoNotOverwrite(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	syncNES(t, env, "mario.nes")

	doc, err := env.svc.Load()
	require.NoError(t, err)
	doc.Games[0].Genre = "Platform"
	doc.Games[0].Image = "Roms/nes/custom.png"
	require.NoError(t, env.svc.Save(doc))

	require.NoError(t, env.fsh.WriteGamelist(fixtures.ContentRoot, "nes", `<gameList>
		<game>
			<path>./mario.nes</path>
			<name>   </name>
			<genre></genre>
			<image/>
			<players>2</players>
		</game>
	</gameList>`))

	_, err = env.svc.ImportGamelist("nes")
	require.NoError(t, err)

	g := gameByFilename(t, env, "nes", "mario.nes")
	assert.Equal(t, "mario", g.Name)
	assert.Equal(t, "Platform", g.Genre)
	assert.Equal(t, "Roms/nes/custom.png", g.Image)
	assert.Equal(t, "2", g.Players)
}

func TestImportGamelist_FanartsWinsAndWheelProbe(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	syncNES(t, env, "mario.nes")
	env.roms(t, "nes", "media/wheels/mario.jpg")

	require.NoError(t, env.fsh.WriteGamelist(fixtures.ContentRoot, "nes", `<gameList>
		<game>
			<path>./mario.nes</path>
			<fanart>./media/fanart/mario.png</fanart>
			<fanarts>./media/fanarts/mario.png</fanarts>
			<wheel>./media/logos/mario.png</wheel>
		</game>
	</gameList>`))

	_, err := env.svc.ImportGamelist("nes")
	require.NoError(t, err)

	g := gameByFilename(t, env, "nes", "mario.nes")
	assert.Equal(t, "Roms/nes/media/fanarts/mario.png", g.Fanart)
	assert.Equal(t, "Roms/nes/media/wheels/mario.jpg", g.Wheel)
}

func TestImportGamelist_Ambiguous(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	syncNES(t, env, "USA/tetris.nes", "Japan/tetris.nes")

	before, err := env.fsh.ReadFile(env.svc.CatalogPath())
	require.NoError(t, err)

	require.NoError(t, env.fsh.WriteGamelist(fixtures.ContentRoot, "nes", `<gameList>
		<game>
			<path>./Europe/tetris.nes</path>
			<name>Tetris</name>
		</game>
	</gameList>`))

	res, err := env.svc.ImportGamelist("nes")
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Ambiguous: 1}, res)

	after, err := env.fsh.ReadFile(env.svc.CatalogPath())
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestImportGamelist_PathMatchBeatsAmbiguity(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	syncNES(t, env, "USA/tetris.nes", "Japan/tetris.nes")

	require.NoError(t, env.fsh.WriteGamelist(fixtures.ContentRoot, "nes", `<gameList>
		<game>
			<path>./Japan/tetris.nes</path>
			<name>Tetris (Japan)</name>
		</game>
	</gameList>`))

	res, err := env.svc.ImportGamelist("nes")
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Updated: 1}, res)

	games, err := env.svc.GetGames("nes")
	require.NoError(t, err)
	names := map[string]string{}
	for _, g := range games {
		names[g.Path] = g.Name
	}
	assert.Equal(t, "Tetris (Japan)", names["/content/Roms/nes/Japan/tetris.nes"])
	assert.Equal(t, "tetris", names["/content/Roms/nes/USA/tetris.nes"])
}

func TestImportGamelist_FilenameFallback(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	syncNES(t, env, "USA/metroid.nes")

	require.NoError(t, env.fsh.WriteGamelist(fixtures.ContentRoot, "nes", `<gameList>
		<game>
			<path>./metroid.nes</path>
			<name>Metroid</name>
		</game>
	</gameList>`))

	res, err := env.svc.ImportGamelist("nes")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, "Metroid", gameByFilename(t, env, "nes", "metroid.nes").Name)
}

func TestImportGamelist_OnlyTouchesOwnSystem(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	syncNES(t, env, "tetris.nes")
	env.roms(t, "famicom", "tetris.nes")
	_, err := env.svc.SyncSystem("famicom")
	require.NoError(t, err)

	require.NoError(t, env.fsh.WriteGamelist(fixtures.ContentRoot, "nes", `<gameList>
		<game><path>./tetris.nes</path><name>Tetris NES</name></game>
	</gameList>`))

	_, err = env.svc.ImportGamelist("nes")
	require.NoError(t, err)

	assert.Equal(t, "Tetris NES", gameByFilename(t, env, "nes", "tetris.nes").Name)
	assert.Equal(t, "tetris", gameByFilename(t, env, "famicom", "tetris.nes").Name)
}

func TestImportGamelist_Missing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	syncNES(t, env, "mario.nes")

	_, err := env.svc.ImportGamelist("nes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGamelistNotFound))
	assert.True(t, errors.Is(err, gamelist.ErrNotFound))
}

func TestImportGamelist_MalformedLeavesCatalogIdentical(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	syncNES(t, env, "mario.nes")

	before, err := env.fsh.ReadFile(env.svc.CatalogPath())
	require.NoError(t, err)

	require.NoError(t, env.fsh.WriteGamelist(fixtures.ContentRoot, "nes", `<gameList><game><path>./mario.nes`))

	_, err = env.svc.ImportGamelist("nes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gamelist.ErrInvalid))

	after, err := env.fsh.ReadFile(env.svc.CatalogPath())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestImportGamelist_Notification(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	syncNES(t, env, "mario.nes")
	require.NoError(t, env.fsh.WriteGamelist(fixtures.ContentRoot, "nes",
		`<gameList><game><path>./mario.nes</path><name>Mario</name></game></gameList>`))

	_, err := env.svc.ImportGamelist("nes")
	require.NoError(t, err)

	events := env.drain()
	require.Len(t, events, 1)
	assert.Equal(t, NotificationImportCompleted, events[0].Method)

	var payload ImportCompleted
	require.NoError(t, json.Unmarshal(events[0].Params, &payload))
	assert.Equal(t, "nes", payload.System)
	assert.Equal(t, 1, payload.Updated)
}

func TestResolveRecordPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "dot slash", in: "./a.nes", want: "/content/Roms/nes/a.nes"},
		{name: "bare", in: "a.nes", want: "/content/Roms/nes/a.nes"},
		{name: "subfolder", in: "./USA/a.nes", want: "/content/Roms/nes/USA/a.nes"},
		{name: "absolute", in: "/mnt/roms/a.nes", want: "/mnt/roms/a.nes"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, resolveRecordPath("/content/Roms/nes", tt.in))
		})
	}
}
