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

// Package romclean strips region, revision and dump tags from ROM file names.
package romclean

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ZaparooProject/zaparoo-catalog/pkg/helpers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"
)

var ErrDirNotFound = errors.New("directory not found")

// tagPatterns are applied in order to the name without its extension.
var tagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\s*\([^)]*\)`),                       // (USA), (En,Fr,De)
	regexp.MustCompile(`\s*\[[^\]]*\]`),                      // [!], [b1]
	regexp.MustCompile(`(?i)\s*\bv\d+(?:\.\d+)*\b`),          // v1.1
	regexp.MustCompile(`(?i)\s*\brev(?:\s+[a-z0-9]+|\d+)\b`), // Rev A, Rev 1
	regexp.MustCompile(`(?i)\s*\bbeta(?:\s*\d+)?\b`),
	regexp.MustCompile(`(?i)\s*\bproto(?:\s*\d+)?\b`),
	regexp.MustCompile(`(?i)\s*\bdemo\b`),
	regexp.MustCompile(`(?i)\s*\bsample\b`),
}

var spaces = regexp.MustCompile(`\s+`)

// CleanFilename removes dump tags from a file name and keeps its extension.
// If nothing would be left of the name the input is returned unchanged.
func CleanFilename(filename string) string {
	info := helpers.GetPathInfo(filename)

	name := info.Name
	for _, re := range tagPatterns {
		name = re.ReplaceAllString(name, "")
	}
	name = spaces.ReplaceAllString(strings.TrimSpace(name), " ")
	if name == "" {
		return filename
	}

	return norm.NFC.String(name + info.Extension)
}

// Rename is one planned or applied rename within a directory.
type Rename struct {
	Dir  string
	From string
	To   string
}

type Result struct {
	// Renamed holds renames applied, or in a dry run, the ones that would be.
	Renamed []Rename
	// Conflicts were skipped because the target name already exists.
	Conflicts []Rename
	// Failed renames were attempted and returned an error.
	Failed []Rename
	Execute bool
}

// Process cleans every file name below dir. With execute false nothing is
// renamed and Result describes what would happen.
func Process(fs afero.Fs, dir string, execute bool) (Result, error) {
	res := Result{Execute: execute}

	if !helpers.DirExists(fs, dir) {
		return res, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
	}

	var planned []Rename
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		from := info.Name()
		if to := CleanFilename(from); to != from {
			planned = append(planned, Rename{Dir: filepath.Dir(path), From: from, To: to})
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	taken := make(map[string]struct{})
	for _, r := range planned {
		target := filepath.Join(r.Dir, r.To)
		_, claimed := taken[target]
		if claimed || helpers.FileExists(fs, target) || helpers.DirExists(fs, target) {
			log.Warn().Str("from", r.From).Str("to", r.To).Str("dir", r.Dir).Msg("rename conflict, skipping")
			res.Conflicts = append(res.Conflicts, r)
			continue
		}
		taken[target] = struct{}{}

		if execute {
			if err := fs.Rename(filepath.Join(r.Dir, r.From), target); err != nil {
				log.Error().Err(err).Str("from", r.From).Str("to", r.To).Msg("rename failed")
				res.Failed = append(res.Failed, r)
				continue
			}
			log.Info().Str("from", r.From).Str("to", r.To).Str("dir", r.Dir).Msg("renamed rom")
		} else {
			log.Info().Str("from", r.From).Str("to", r.To).Str("dir", r.Dir).Msg("would rename rom")
		}
		res.Renamed = append(res.Renamed, r)
	}

	log.Info().
		Str("dir", dir).
		Bool("execute", execute).
		Int("renamed", len(res.Renamed)).
		Int("conflicts", len(res.Conflicts)).
		Int("failed", len(res.Failed)).
		Msg("finished cleaning rom names")

	return res, nil
}
