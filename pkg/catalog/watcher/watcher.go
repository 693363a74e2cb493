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

// Package watcher re-syncs systems when their ROM folders change.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/media"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/walker"
	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const DefaultDebounce = 2 * time.Second

// Syncer is the part of catalog.Service the watcher drives.
type Syncer interface {
	SyncSystem(system string) (catalog.SyncResult, error)
}

// EventSource delivers filesystem events for watched directories.
type EventSource interface {
	Add(name string) error
	Events() <-chan fsnotify.Event
	Errors() <-chan error
	Close() error
}

type Options struct {
	Clock clockwork.Clock
	// Fs lists subdirectories to watch. Defaults to the OS filesystem.
	Fs afero.Fs
	// NewSource opens the event source. Defaults to fsnotify.
	NewSource func() (EventSource, error)
	// Debounce is the quiet period after the last event before a sync.
	Debounce time.Duration
}

type Watcher struct {
	syncer    Syncer
	clock     clockwork.Clock
	fs        afero.Fs
	newSource func() (EventSource, error)
	systems   map[string]struct{}
	romsDir   string
	debounce  time.Duration
}

func New(syncer Syncer, romsDir string, systems []string, opts Options) *Watcher {
	w := &Watcher{
		syncer:    syncer,
		clock:     opts.Clock,
		fs:        opts.Fs,
		newSource: opts.NewSource,
		romsDir:   filepath.Clean(romsDir),
		debounce:  opts.Debounce,
		systems:   make(map[string]struct{}, len(systems)),
	}
	if w.clock == nil {
		w.clock = clockwork.NewRealClock()
	}
	if w.fs == nil {
		w.fs = afero.NewOsFs()
	}
	if w.newSource == nil {
		w.newSource = NewFsnotifySource
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	for _, s := range systems {
		w.systems[s] = struct{}{}
	}
	return w
}

type fired struct {
	system string
	gen    uint64
}

type pending struct {
	timer clockwork.Timer
	gen   uint64
}

// Run watches until ctx is cancelled. Syncs run one at a time on the calling
// goroutine. A sync already running when ctx is cancelled completes.
func (w *Watcher) Run(ctx context.Context) error {
	src, err := w.newSource()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing watcher")
		}
	}()

	for system := range w.systems {
		w.addTree(src, filepath.Join(w.romsDir, system))
	}

	done := make(chan struct{})
	defer close(done)

	fire := make(chan fired)
	timers := make(map[string]*pending)
	var gen uint64

	defer func() {
		for _, p := range timers {
			p.timer.Stop()
		}
	}()

	events := src.Events()
	errs := src.Errors()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("watcher stopped")
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			system := w.handleEvent(src, ev)
			if system == "" {
				continue
			}

			if p, ok := timers[system]; ok {
				p.timer.Stop()
			}
			gen++
			f := fired{system: system, gen: gen}
			timers[system] = &pending{
				gen: gen,
				timer: w.clock.AfterFunc(w.debounce, func() {
					select {
					case fire <- f:
					case <-done:
					}
				}),
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Warn().Err(err).Msg("watcher error")
		case f := <-fire:
			p, ok := timers[f.system]
			if !ok || p.gen != f.gen {
				continue
			}
			delete(timers, f.system)
			w.sync(f.system)
		}
	}
}

// handleEvent returns the system an event belongs to, or "" when it should
// not trigger a sync. New directories are added to the watch.
func (w *Watcher) handleEvent(src EventSource, ev fsnotify.Event) string {
	if ev.Op == fsnotify.Chmod {
		return ""
	}

	system := w.systemFor(ev.Name)
	if system == "" {
		return ""
	}

	if ev.Has(fsnotify.Create) && watchable(ev.Name) {
		if info, err := w.fs.Stat(ev.Name); err == nil && info.IsDir() {
			w.addTree(src, ev.Name)
		}
	}

	log.Debug().Str("system", system).Str("path", ev.Name).Stringer("op", ev.Op).Msg("rom folder changed")
	return system
}

func (w *Watcher) systemFor(path string) string {
	rel, err := filepath.Rel(w.romsDir, filepath.Clean(path))
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	system := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
	if _, ok := w.systems[system]; !ok {
		return ""
	}
	return system
}

// watchable reports whether a directory is scanned for ROMs or probed for
// media. Media folders are watched so new artwork heals existing entries.
func watchable(path string) bool {
	return !walker.IsExcludedDir(filepath.Base(path)) || media.IsMediaDir(path)
}

// addTree watches root and every subdirectory that is scanned or holds media.
func (w *Watcher) addTree(src EventSource, root string) {
	err := afero.Walk(w.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Debug().Err(err).Str("path", path).Msg("skipping unreadable directory")
			return filepath.SkipDir
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && !watchable(path) {
			return filepath.SkipDir
		}
		if err := src.Add(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to watch directory")
		}
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", root).Msg("system folder missing, not watching")
	} else if err != nil {
		log.Warn().Err(err).Str("path", root).Msg("failed to watch system folder")
	}
}

func (w *Watcher) sync(system string) {
	res, err := w.syncer.SyncSystem(system)
	if err != nil {
		log.Error().Err(err).Str("system", system).Msg("watch sync failed")
		return
	}
	log.Info().
		Str("system", system).
		Int("added", res.Added).
		Int("updated", res.Updated).
		Int("total", res.Total).
		Msg("watch sync finished")
}

type fsnotifySource struct {
	w *fsnotify.Watcher
}

func NewFsnotifySource() (EventSource, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &fsnotifySource{w: fw}, nil
}

func (s *fsnotifySource) Add(name string) error {
	if err := s.w.Add(name); err != nil {
		return fmt.Errorf("failed to watch %s: %w", name, err)
	}
	return nil
}

func (s *fsnotifySource) Events() <-chan fsnotify.Event {
	return s.w.Events
}

func (s *fsnotifySource) Errors() <-chan error {
	return s.w.Errors
}

func (s *fsnotifySource) Close() error {
	if err := s.w.Close(); err != nil {
		return fmt.Errorf("failed to close fsnotify watcher: %w", err)
	}
	return nil
}
