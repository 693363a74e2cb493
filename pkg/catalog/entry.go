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
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/media"
)

// Game is one catalog entry. Media paths are relative to the content root
// with forward slashes. Keys this version does not know about are kept in
// Extra and written back unchanged.
type Game struct {
	Extra       map[string]json.RawMessage `json:"-"`
	ID          string                     `json:"id" validate:"required"`
	System      string                     `json:"system" validate:"required"`
	Path        string                     `json:"path" validate:"required"`
	Filename    string                     `json:"filename" validate:"required"`
	Name        string                     `json:"name"`
	Image       string                     `json:"image,omitempty"`
	Thumbnail   string                     `json:"thumbnail,omitempty"`
	Video       string                     `json:"video,omitempty"`
	Marquee     string                     `json:"marquee,omitempty"`
	Wheel       string                     `json:"wheel,omitempty"`
	Fanart      string                     `json:"fanart,omitempty"`
	Description string                     `json:"description,omitempty"`
	Developer   string                     `json:"developer,omitempty"`
	Publisher   string                     `json:"publisher,omitempty"`
	ReleaseDate string                     `json:"releaseDate,omitempty"`
	Genre       string                     `json:"genre,omitempty"`
	Players     string                     `json:"players,omitempty"`
	Rating      string                     `json:"rating,omitempty"`
	AddedAt     int64                      `json:"addedAt"`
}

var gameKeys = map[string]struct{}{
	"id": {}, "system": {}, "path": {}, "filename": {}, "name": {}, "addedAt": {},
	"image": {}, "thumbnail": {}, "video": {}, "marquee": {}, "wheel": {}, "fanart": {},
	"description": {}, "developer": {}, "publisher": {}, "releaseDate": {},
	"genre": {}, "players": {}, "rating": {},
}

type gameFields Game

func (g Game) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(gameFields(g))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game %s: %w", g.ID, err)
	}
	return appendExtra(data, g.Extra, gameKeys)
}

func (g *Game) UnmarshalJSON(data []byte) error {
	var fields gameFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to unmarshal game: %w", err)
	}
	extra, err := splitExtra(data, gameKeys)
	if err != nil {
		return err
	}
	*g = Game(fields)
	g.Extra = extra
	return nil
}

// Media returns the entry's media fields as a set, omitting empty ones.
func (g *Game) Media() media.Set {
	set := make(media.Set)
	for _, kind := range media.Kinds() {
		if v := *g.mediaField(kind); v != "" {
			set[kind] = v
		}
	}
	return set
}

// MergeMedia copies each non-empty value of set onto the entry and reports
// whether any field changed. Existing values are never cleared.
func (g *Game) MergeMedia(set media.Set) bool {
	changed := false
	for kind, v := range set {
		if v == "" {
			continue
		}
		field := g.mediaField(kind)
		if field == nil || *field == v {
			continue
		}
		*field = v
		changed = true
	}
	return changed
}

func (g *Game) mediaField(kind media.Kind) *string {
	switch kind {
	case media.KindImage:
		return &g.Image
	case media.KindThumbnail:
		return &g.Thumbnail
	case media.KindVideo:
		return &g.Video
	case media.KindMarquee:
		return &g.Marquee
	case media.KindWheel:
		return &g.Wheel
	case media.KindFanart:
		return &g.Fanart
	default:
		return nil
	}
}

// Document is the whole catalog file.
type Document struct {
	Extra map[string]json.RawMessage `json:"-"`
	Games []Game                     `json:"games"`
}

var documentKeys = map[string]struct{}{"games": {}}

type documentFields Document

func (d Document) MarshalJSON() ([]byte, error) {
	fields := documentFields(d)
	if fields.Games == nil {
		fields.Games = []Game{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return appendExtra(data, d.Extra, documentKeys)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var fields documentFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	extra, err := splitExtra(data, documentKeys)
	if err != nil {
		return err
	}
	*d = Document(fields)
	d.Extra = extra
	return nil
}

// appendExtra splices unknown keys, sorted, onto the end of a marshalled
// object. Keys that collide with known ones are dropped.
func appendExtra(obj []byte, extra map[string]json.RawMessage, known map[string]struct{}) ([]byte, error) {
	if len(extra) == 0 {
		return obj, nil
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		if _, ok := known[k]; !ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return obj, nil
	}
	sort.Strings(keys)

	trimmed := bytes.TrimRight(obj, " \n")
	if len(trimmed) == 0 || trimmed[len(trimmed)-1] != '}' {
		return nil, fmt.Errorf("cannot append fields to non-object JSON %q", obj)
	}

	var buf bytes.Buffer
	buf.Write(trimmed[:len(trimmed)-1])
	needComma := !bytes.Equal(bytes.TrimSpace(trimmed), []byte("{}"))
	for _, k := range keys {
		if needComma {
			buf.WriteByte(',')
		}
		needComma = true

		name, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal key %q: %w", k, err)
		}
		buf.Write(name)
		buf.WriteByte(':')

		value := extra[k]
		if len(value) == 0 {
			value = json.RawMessage("null")
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func splitExtra(data []byte, known map[string]struct{}) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to read object fields: %w", err)
	}
	var extra map[string]json.RawMessage
	for k, v := range all {
		if _, ok := known[k]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[k] = v
	}
	return extra, nil
}
