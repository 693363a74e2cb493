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
	"testing"

	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGameJSON_UnknownFieldsPreserved(t *testing.T) {
	t.Parallel()

	in := `{"id":"x","system":"nes","path":"/p/x.nes","filename":"x.nes","name":"x",` +
		`"addedAt":1,"favorite":true,"tags":["a","b"],"lastPlayed":{"at":5}}`

	var g Game
	require.NoError(t, json.Unmarshal([]byte(in), &g))
	assert.Equal(t, "x", g.ID)
	assert.Len(t, g.Extra, 3)

	out, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestGameJSON_NoExtraKeepsShape(t *testing.T) {
	t.Parallel()

	g := Game{ID: "x", System: "nes", Path: "/p", Filename: "p", Name: "p", AddedAt: 2, Wheel: "w.png"}
	out, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"x","system":"nes","path":"/p","filename":"p","name":"p","addedAt":2,"wheel":"w.png"}`,
		string(out))

	var back Game
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Nil(t, back.Extra)
	assert.Equal(t, g, back)
}

func TestGameJSON_ExtraCannotShadowKnownKeys(t *testing.T) {
	t.Parallel()

	g := Game{
		ID: "x", System: "nes", Path: "/p", Filename: "p", Name: "real",
		Extra: map[string]json.RawMessage{"name": json.RawMessage(`"shadow"`)},
	}
	out, err := json.Marshal(g)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.Equal(t, "real", raw["name"])
}

func TestDocumentJSON_UnknownFieldsPreserved(t *testing.T) {
	t.Parallel()

	in := `{"games":[],"version":3,"settings":{"sort":"name"}}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(in), &doc))
	assert.Len(t, doc.Extra, 2)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestMergeMedia(t *testing.T) {
	t.Parallel()

	g := Game{Image: "old.png", Wheel: "wheel.png"}

	changed := g.MergeMedia(media.Set{
		media.KindImage:     "new.png",
		media.KindThumbnail: "cover.png",
		media.KindWheel:     "",
	})
	assert.True(t, changed)
	assert.Equal(t, "new.png", g.Image)
	assert.Equal(t, "cover.png", g.Thumbnail)
	assert.Equal(t, "wheel.png", g.Wheel)

	assert.False(t, g.MergeMedia(media.Set{media.KindImage: "new.png"}))
	assert.False(t, g.MergeMedia(media.Set{}))

	assert.Equal(t, media.Set{
		media.KindImage:     "new.png",
		media.KindThumbnail: "cover.png",
		media.KindWheel:     "wheel.png",
	}, g.Media())
}

func TestPropertyMergeMediaNeverErases(t *testing.T) {
	t.Parallel()

	kinds := media.Kinds()
	rapid.Check(t, func(t *rapid.T) {
		var g Game
		before := make(media.Set)
		for _, k := range kinds {
			v := rapid.SampledFrom([]string{"", "a.png", "b.png"}).Draw(t, "before-"+string(k))
			if v != "" {
				before[k] = v
			}
		}
		g.MergeMedia(before)

		update := make(media.Set)
		for _, k := range kinds {
			update[k] = rapid.SampledFrom([]string{"", "a.png", "c.png"}).Draw(t, "update-"+string(k))
		}
		g.MergeMedia(update)

		after := g.Media()
		for _, k := range kinds {
			switch {
			case update[k] != "":
				if after[k] != update[k] {
					t.Fatalf("%s: want %q, got %q", k, update[k], after[k])
				}
			case before[k] != "":
				if after[k] != before[k] {
					t.Fatalf("%s erased: had %q, got %q", k, before[k], after[k])
				}
			}
		}
	})
}
