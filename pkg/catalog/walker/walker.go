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

// Package walker finds ROM files below a system folder.
package walker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZaparooProject/zaparoo-catalog/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxConcurrency = 8
	// MaxDepth stops runaway recursion through symlinked directory loops.
	MaxDepth = 32

	gamelistFile = "gamelist.xml"
)

// ExcludedDirs hold generated artwork and video, never games. Matched
// case-insensitively against the directory name.
var ExcludedDirs = []string{
	"media",
	"downloaded_images",
	"downloaded_videos",
	"images",
	"videos",
	"marquees",
	"wheels",
}

var ErrNotDirectory = errors.New("scan root is not a directory")

type Options struct {
	// MaxConcurrency bounds how many subdirectories of one directory are
	// read at the same time.
	MaxConcurrency int
}

type Result struct {
	// Files are absolute paths of matched files, sorted.
	Files []string
	// Skipped lists directories that could not be read.
	Skipped []string
	// RootMissing is set when the root does not exist. Nothing was scanned.
	RootMissing bool
}

// IsExcludedDir reports whether a directory name is one of ExcludedDirs.
func IsExcludedDir(name string) bool {
	for _, dir := range ExcludedDirs {
		if strings.EqualFold(dir, name) {
			return true
		}
	}
	return false
}

// MatchFile reports whether a file name passes the extension allow-list.
// Dotfiles and gamelist.xml never match.
func MatchFile(name string, exts []string) bool {
	if strings.HasPrefix(name, ".") || strings.EqualFold(name, gamelistFile) {
		return false
	}
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if ext != "" && strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// Walk recursively collects files under root matching exts. A missing root
// is not an error. Unreadable subdirectories are logged and skipped.
func Walk(fs afero.Fs, root string, exts []string, opts Options) (Result, error) {
	info, err := fs.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", root).Msg("scan root does not exist")
		return Result{RootMissing: true}, nil
	} else if err != nil {
		return Result{}, fmt.Errorf("failed to stat scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	limit := opts.MaxConcurrency
	if limit <= 0 {
		limit = DefaultMaxConcurrency
	}

	w := &walk{
		fs:    fs,
		exts:  exts,
		limit: limit,
	}

	if err := w.root(root); err != nil {
		return Result{}, err
	}

	sort.Strings(w.files)
	sort.Strings(w.skipped)

	return Result{
		Files:   w.files,
		Skipped: w.skipped,
	}, nil
}

type walk struct {
	fs      afero.Fs
	files   []string
	skipped []string
	exts    []string
	limit   int
	mu      syncutil.Mutex
}

func (w *walk) root(path string) error {
	entries, err := afero.ReadDir(w.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read scan root %s: %w", path, err)
	}
	w.entries(path, entries, 0)
	return nil
}

func (w *walk) dir(path string, depth int) {
	if depth > MaxDepth {
		log.Warn().Str("path", path).Msg("max scan depth reached, possible symlink loop")
		w.skip(path)
		return
	}

	entries, err := afero.ReadDir(w.fs, path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("skipping unreadable directory")
		w.skip(path)
		return
	}
	w.entries(path, entries, depth)
}

// entries handles one directory level. Subdirectories fan out on an
// errgroup bounded by w.limit and are joined before returning.
func (w *walk) entries(path string, entries []os.FileInfo, depth int) {
	var g errgroup.Group
	g.SetLimit(w.limit)

	var matched []string
	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(path, name)

		isDir := entry.IsDir()
		if entry.Mode()&os.ModeSymlink != 0 {
			target, err := w.fs.Stat(full)
			if err != nil {
				log.Debug().Err(err).Str("path", full).Msg("skipping broken symlink")
				continue
			}
			isDir = target.IsDir()
		}

		if isDir {
			if IsExcludedDir(name) {
				continue
			}
			g.Go(func() error {
				w.dir(full, depth+1)
				return nil
			})
			continue
		}

		if MatchFile(name, w.exts) {
			matched = append(matched, full)
		}
	}

	w.add(matched)
	_ = g.Wait()
}

func (w *walk) add(paths []string) {
	if len(paths) == 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files = append(w.files, paths...)
}

func (w *walk) skip(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.skipped = append(w.skipped, path)
}
