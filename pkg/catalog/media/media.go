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

// Package media finds artwork and video that sit next to a ROM in the
// conventional media/<kind> folders.
package media

import (
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-catalog/pkg/helpers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Root is the folder beside a ROM that holds its media kind folders.
const Root = "media"

type Kind string

const (
	KindImage     Kind = "image"
	KindThumbnail Kind = "thumbnail"
	KindVideo     Kind = "video"
	KindMarquee   Kind = "marquee"
	KindWheel     Kind = "wheel"
	KindFanart    Kind = "fanart"
)

// Set maps each found kind to its catalog-relative path.
type Set map[Kind]string

var (
	imageExts = []string{".png", ".jpg", ".jpeg"}
	videoExts = []string{".mp4", ".avi", ".mkv"}
)

type folder struct {
	kind Kind
	dir  string
}

// folders are probed in order. media/fanarts is an alias of media/fanart and
// wins when both hold a match.
var folders = []folder{
	{kind: KindImage, dir: "screenshots"},
	{kind: KindThumbnail, dir: "covers"},
	{kind: KindVideo, dir: "videos"},
	{kind: KindMarquee, dir: "marquees"},
	{kind: KindWheel, dir: "wheels"},
	{kind: KindFanart, dir: "fanart"},
	{kind: KindFanart, dir: "fanarts"},
}

// Kinds lists every kind once, in probe order.
func Kinds() []Kind {
	return []Kind{KindImage, KindThumbnail, KindVideo, KindMarquee, KindWheel, KindFanart}
}

// Dir returns the media folder name of a kind, without the alias.
func Dir(kind Kind) string {
	for _, f := range folders {
		if f.kind == kind {
			return f.dir
		}
	}
	return ""
}

// Extensions returns the candidate extensions for a kind, in probe order.
func Extensions(kind Kind) []string {
	if kind == KindVideo {
		return videoExts
	}
	return imageExts
}

// IsMediaDir reports whether path is a media root or one of the kind folders
// probed inside it.
func IsMediaDir(path string) bool {
	name := filepath.Base(path)
	if name == Root {
		return true
	}
	if filepath.Base(filepath.Dir(path)) != Root {
		return false
	}
	for _, f := range folders {
		if f.dir == name {
			return true
		}
	}
	return false
}

type Resolver struct {
	Fs          afero.Fs
	ContentRoot string
}

// Resolve probes the media folders beside romPath for files named after the
// ROM's stem. Kinds with no match are absent from the result.
func (r Resolver) Resolve(romPath string) Set {
	dir := filepath.Dir(romPath)
	stem := helpers.FileStem(romPath)

	found := make(Set)
	for _, f := range folders {
		if rel := r.probe(filepath.Join(dir, Root, f.dir), stem, f.kind); rel != "" {
			found[f.kind] = rel
		}
	}
	return found
}

// ProbeKind checks <dir>/media/<kind folder>/<stem><ext> for the kind's
// candidate extensions and returns the first hit, catalog-relative, or an
// empty string.
func (r Resolver) ProbeKind(dir, stem string, kind Kind) string {
	sub := Dir(kind)
	if sub == "" {
		return ""
	}
	return r.probe(filepath.Join(dir, Root, sub), stem, kind)
}

func (r Resolver) probe(mediaDir, stem string, kind Kind) string {
	for _, ext := range Extensions(kind) {
		candidate := filepath.Join(mediaDir, stem+ext)
		if !helpers.FileExists(r.Fs, candidate) {
			continue
		}
		rel, err := helpers.CatalogRelPath(r.ContentRoot, candidate)
		if err != nil {
			log.Warn().Err(err).Str("path", candidate).Msg("media outside content root")
			return ""
		}
		return rel
	}
	return ""
}
