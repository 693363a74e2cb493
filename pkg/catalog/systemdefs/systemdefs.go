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

// Package systemdefs holds the built-in system table and decides which file
// extensions count as games for a system.
package systemdefs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
)

// System is a platform whose ROMs live in Roms/<ID>/.
type System struct {
	ID         string
	Extensions []string
}

// ExtensionOverrides is the user's per-system extension configuration.
type ExtensionOverrides interface {
	LookupSystemExtensions(system string) ([]string, bool)
}

// DefaultExtensions is used for any system missing from the built-in table.
var DefaultExtensions = []string{
	".zip", ".7z", ".iso", ".bin", ".cue", ".nes", ".sfc", ".smc",
	".md", ".gba", ".gbc", ".gb", ".n64", ".z64",
}

// AllowedExtensions returns the ordered extension allow-list for a system:
// a non-empty user override verbatim, then the built-in entry for the
// lowercased id, then DefaultExtensions. The result is never empty and is
// always a fresh slice.
func AllowedExtensions(system string, overrides ExtensionOverrides) []string {
	if overrides != nil {
		if exts, ok := overrides.LookupSystemExtensions(system); ok && len(exts) > 0 {
			return clone(exts)
		}
	}

	if sys, ok := Systems[strings.ToLower(system)]; ok {
		return clone(sys.Extensions)
	}

	return clone(DefaultExtensions)
}

// GetSystem looks up an exact system definition by ID.
func GetSystem(id string) (*System, error) {
	if system, ok := Systems[strings.ToLower(id)]; ok {
		return &system, nil
	}
	return nil, fmt.Errorf("unknown system: %s", id)
}

// Aliases maps alternative platform names used by scrapers to system IDs.
var Aliases = map[string]string{
	"genesis":  "megadrive",
	"ps1":      "psx",
	"ds":       "nds",
	"gamecube": "gc",
}

// LookupSystem is GetSystem with alias resolution.
func LookupSystem(id string) (*System, error) {
	if target, ok := Aliases[strings.ToLower(id)]; ok {
		return GetSystem(target)
	}
	return GetSystem(id)
}

// MinSuggestSimilarity is the Jaro-Winkler score a system name needs to be
// offered as a correction.
const MinSuggestSimilarity = 0.85

// Suggest returns the built-in system whose ID or alias is closest to id.
func Suggest(id string) (string, bool) {
	query := strings.ToLower(id)

	best := ""
	var bestScore float32
	consider := func(name, target string) {
		score := edlib.JaroWinklerSimilarity(query, name)
		if score > bestScore || (score == bestScore && target < best) {
			best, bestScore = target, score
		}
	}
	for key := range Systems {
		consider(key, key)
	}
	for alias, target := range Aliases {
		consider(alias, target)
	}

	if best == "" || bestScore < MinSuggestSimilarity {
		return "", false
	}
	log.Debug().
		Str("query", id).
		Str("system", best).
		Float32("similarity", bestScore).
		Msg("suggested system")
	return best, true
}

// AllSystems returns every built-in system sorted by ID.
func AllSystems() []System {
	systems := make([]System, 0, len(Systems))
	for _, v := range Systems {
		systems = append(systems, v)
	}
	sort.Slice(systems, func(i, j int) bool {
		return systems[i].ID < systems[j].ID
	})
	return systems
}

func clone(exts []string) []string {
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}

// Systems is the built-in extension table keyed by lowercase system ID.
var Systems = map[string]System{
	// Nintendo
	"nes":    {ID: "nes", Extensions: []string{".nes", ".unf", ".zip", ".7z"}},
	"snes":   {ID: "snes", Extensions: []string{".sfc", ".smc", ".zip", ".7z"}},
	"n64":    {ID: "n64", Extensions: []string{".n64", ".z64", ".zip", ".7z"}},
	"gb":     {ID: "gb", Extensions: []string{".gb", ".zip", ".7z"}},
	"gbc":    {ID: "gbc", Extensions: []string{".gbc", ".zip", ".7z"}},
	"gba":    {ID: "gba", Extensions: []string{".gba", ".zip", ".7z"}},
	"nds":    {ID: "nds", Extensions: []string{".nds", ".zip", ".7z"}},
	"gc":     {ID: "gc", Extensions: []string{".iso", ".rvz", ".gcm"}},
	"wii":    {ID: "wii", Extensions: []string{".iso", ".wbfs", ".rvz"}},
	"switch": {ID: "switch", Extensions: []string{".nsp", ".xci"}},
	"3ds":    {ID: "3ds", Extensions: []string{".3ds", ".cia"}},

	// Sega
	"megadrive":    {ID: "megadrive", Extensions: []string{".md", ".gen", ".bin", ".zip", ".7z"}},
	"mastersystem": {ID: "mastersystem", Extensions: []string{".sms", ".zip", ".7z"}},
	"dreamcast":    {ID: "dreamcast", Extensions: []string{".cdi", ".gdi", ".chd"}},
	"saturn":       {ID: "saturn", Extensions: []string{".cue", ".iso", ".ccd", ".mds", ".chd"}},

	// Sony
	"psx": {ID: "psx", Extensions: []string{".cue", ".m3u", ".ccd", ".iso", ".chd", ".pbp"}},
	"ps2": {ID: "ps2", Extensions: []string{".iso", ".bin", ".chd", ".gz"}},
	"psp": {ID: "psp", Extensions: []string{".iso", ".cso", ".pbp"}},

	// Microsoft
	"xbox": {ID: "xbox", Extensions: []string{".iso", ".xbe"}},

	// Arcade
	"arcade": {ID: "arcade", Extensions: []string{".zip", ".7z", ".chd"}},
	"neogeo": {ID: "neogeo", Extensions: []string{".zip", ".7z"}},

	// Atari
	"atari2600":   {ID: "atari2600", Extensions: []string{".a26", ".bin", ".zip"}},
	"atari7800":   {ID: "atari7800", Extensions: []string{".a78", ".bin", ".zip"}},
	"atarilynx":   {ID: "atarilynx", Extensions: []string{".lnx", ".zip"}},
	"atarijaguar": {ID: "atarijaguar", Extensions: []string{".j64", ".jag", ".zip"}},

	// Computers and others
	"pcengine":     {ID: "pcengine", Extensions: []string{".pce", ".cue", ".zip", ".7z"}},
	"dos":          {ID: "dos", Extensions: []string{".exe", ".com", ".bat", ".zip"}},
	"amiga":        {ID: "amiga", Extensions: []string{".adf", ".ipf", ".lha", ".zip"}},
	"c64":          {ID: "c64", Extensions: []string{".d64", ".t64", ".tap", ".prg", ".zip"}},
	"msx":          {ID: "msx", Extensions: []string{".mx1", ".mx2", ".rom", ".zip"}},
	"3do":          {ID: "3do", Extensions: []string{".iso", ".cue", ".bin"}},
	"wonderswan":   {ID: "wonderswan", Extensions: []string{".ws", ".wsc", ".zip"}},
	"colecovision": {ID: "colecovision", Extensions: []string{".col", ".rom", ".zip"}},
}
