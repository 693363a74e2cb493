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

// Package cli holds the command-line front end shared by the catalog
// binaries.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/romclean"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/systemdefs"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog/watcher"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/config"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/helpers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrNoCommand is returned by Post when no command flag was given.
var ErrNoCommand = errors.New("no command given")

// AllSystems as a system argument means every folder under Roms.
const AllSystems = "all"

type Flags struct {
	set         *flag.FlagSet
	Sync        *string
	Import      *string
	List        *string
	Reset       *string
	Delete      *string
	Export      *string
	Clean       *string
	ContentRoot *string
	Systems     *string
	Execute     *bool
	Watch       *bool
	Version     *bool
	Debug       *bool
}

// SetupFlags defines the catalog flags on fs.
func SetupFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		set: fs,
		Sync: fs.String(
			"sync",
			"",
			"scan a system folder into the catalog, or \"all\"",
		),
		Import: fs.String(
			"import",
			"",
			"merge a system's gamelist.xml into the catalog, or \"all\"",
		),
		List: fs.String(
			"list",
			"",
			"print a system's catalog entries as JSON",
		),
		Reset: fs.String(
			"reset",
			"",
			"remove all catalog entries of a system",
		),
		Delete: fs.String(
			"delete",
			"",
			"remove one catalog entry by ID",
		),
		Export: fs.String(
			"export",
			"",
			"print a system's catalog entries as CSV",
		),
		Clean: fs.String(
			"clean",
			"",
			"strip region and dump tags from ROM file names in a folder",
		),
		ContentRoot: fs.String(
			"content",
			"",
			"content root, overrides config",
		),
		Systems: fs.String(
			"systems",
			"",
			"comma separated systems to watch, defaults to every folder under Roms",
		),
		Execute: fs.Bool(
			"execute",
			false,
			"with -clean, rename files instead of printing a plan",
		),
		Watch: fs.Bool(
			"watch",
			false,
			"re-sync systems when their folders change",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
		Debug: fs.Bool(
			"debug",
			false,
			"enable debug logging",
		),
	}
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.set.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// Pre parses args and handles flags that need no setup. It reports whether
// the program should exit.
func (f *Flags) Pre(args []string, out io.Writer) (bool, error) {
	if err := f.set.Parse(args); err != nil {
		return true, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *f.Version {
		_, _ = fmt.Fprintf(out, "Zaparoo Catalog v%s\n", config.AppVersion)
		return true, nil
	}
	return false, nil
}

// Setup initializes logging and the user config.
//
//nolint:gocritic // config struct copied for immutability
func Setup(configDir, logDir string, defaults config.Values, writers []io.Writer) (*config.Instance, error) {
	if err := helpers.InitLogging(logDir, writers); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg, err := config.NewConfig(configDir, defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return cfg, nil
}

// NewService builds the catalog service described by cfg and the flags.
func (f *Flags) NewService(fs afero.Fs, cfg *config.Instance, ns chan<- catalog.Notification) *catalog.Service {
	root := cfg.ContentRoot()
	if *f.ContentRoot != "" {
		root = *f.ContentRoot
	}
	if *f.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return catalog.NewService(fs, root, cfg.CatalogFile(), cfg, catalog.Options{
		Notifications:  ns,
		MaxConcurrency: cfg.ScanMaxConcurrency(),
	})
}

// Post runs the command selected by the flags.
func (f *Flags) Post(
	ctx context.Context,
	fs afero.Fs,
	cfg *config.Instance,
	svc *catalog.Service,
	out io.Writer,
) error {
	switch {
	case f.isFlagPassed("sync"):
		return f.runSync(svc, out)
	case f.isFlagPassed("import"):
		return f.runImport(svc, out)
	case f.isFlagPassed("list"):
		return runList(svc, *f.List, out)
	case f.isFlagPassed("reset"):
		if *f.Reset == "" {
			return errors.New("reset flag requires a system")
		}
		removed, err := svc.ResetSystem(*f.Reset)
		if err != nil {
			return fmt.Errorf("failed to reset %s: %w", *f.Reset, err)
		}
		_, _ = fmt.Fprintf(out, "%s: removed %d entries\n", *f.Reset, removed)
		return nil
	case f.isFlagPassed("delete"):
		if *f.Delete == "" {
			return errors.New("delete flag requires an ID")
		}
		found, err := svc.DeleteGame(*f.Delete)
		if err != nil {
			return fmt.Errorf("failed to delete %s: %w", *f.Delete, err)
		}
		if !found {
			_, _ = fmt.Fprintf(out, "%s: not in catalog\n", *f.Delete)
			return nil
		}
		_, _ = fmt.Fprintf(out, "%s: deleted\n", *f.Delete)
		return nil
	case f.isFlagPassed("export"):
		if *f.Export == "" {
			return errors.New("export flag requires a system")
		}
		if err := svc.ExportCSV(out, *f.Export); err != nil {
			return fmt.Errorf("failed to export %s: %w", *f.Export, err)
		}
		return nil
	case f.isFlagPassed("clean"):
		return f.runClean(fs, out)
	case *f.Watch:
		return f.runWatch(ctx, cfg, svc)
	default:
		return ErrNoCommand
	}
}

func (f *Flags) systems(svc *catalog.Service, arg string) ([]string, error) {
	if arg != "" && arg != AllSystems {
		return splitList(arg), nil
	}
	if *f.Systems != "" {
		return splitList(*f.Systems), nil
	}
	systems, err := svc.DiscoverSystems()
	if err != nil {
		return nil, fmt.Errorf("failed to discover systems: %w", err)
	}
	return systems, nil
}

func (f *Flags) runSync(svc *catalog.Service, out io.Writer) error {
	systems, err := f.systems(svc, *f.Sync)
	if err != nil {
		return err
	}

	var errs []error
	for _, system := range systems {
		res, err := svc.SyncSystem(system)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", system, err))
			continue
		}
		if res.RootMissing {
			if hint, ok := suggestSystem(system); ok {
				_, _ = fmt.Fprintf(out, "%s: folder not found, did you mean %s?\n", system, hint)
				continue
			}
			_, _ = fmt.Fprintf(out, "%s: folder not found\n", system)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s: %d added, %d updated, %d total\n",
			system, res.Added, res.Updated, res.Total)
	}
	return errors.Join(errs...)
}

func suggestSystem(system string) (string, bool) {
	if sys, err := systemdefs.LookupSystem(system); err == nil {
		return sys.ID, sys.ID != system
	}
	return systemdefs.Suggest(system)
}

func (f *Flags) runImport(svc *catalog.Service, out io.Writer) error {
	systems, err := f.systems(svc, *f.Import)
	if err != nil {
		return err
	}

	var errs []error
	for _, system := range systems {
		res, err := svc.ImportGamelist(system)
		if errors.Is(err, catalog.ErrGamelistNotFound) {
			_, _ = fmt.Fprintf(out, "%s: no gamelist.xml\n", system)
			continue
		} else if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", system, err))
			continue
		}
		_, _ = fmt.Fprintf(out, "%s: %d updated, %d unmatched, %d ambiguous\n",
			system, res.Updated, res.Unmatched, res.Ambiguous)
	}
	return errors.Join(errs...)
}

func runList(svc *catalog.Service, system string, out io.Writer) error {
	if system == "" {
		return errors.New("list flag requires a system")
	}
	games, err := svc.GetGames(system)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", system, err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(games); err != nil {
		return fmt.Errorf("failed to encode games: %w", err)
	}
	return nil
}

func (f *Flags) runClean(fs afero.Fs, out io.Writer) error {
	if *f.Clean == "" {
		return errors.New("clean flag requires a folder")
	}

	res, err := romclean.Process(fs, *f.Clean, *f.Execute)
	if err != nil {
		return fmt.Errorf("failed to clean %s: %w", *f.Clean, err)
	}

	verb := "would rename"
	if res.Execute {
		verb = "renamed"
	}
	for _, r := range res.Renamed {
		_, _ = fmt.Fprintf(out, "%s: %s -> %s\n", verb, r.From, r.To)
	}
	for _, r := range res.Conflicts {
		_, _ = fmt.Fprintf(out, "conflict: %s -> %s (exists)\n", r.From, r.To)
	}
	for _, r := range res.Failed {
		_, _ = fmt.Fprintf(out, "failed: %s -> %s\n", r.From, r.To)
	}
	_, _ = fmt.Fprintf(out, "%d %s, %d conflicts, %d failed\n",
		len(res.Renamed), verb, len(res.Conflicts), len(res.Failed))
	return nil
}

func (f *Flags) runWatch(ctx context.Context, cfg *config.Instance, svc *catalog.Service) error {
	systems, err := f.systems(svc, "")
	if err != nil {
		return err
	}
	if len(systems) == 0 {
		return fmt.Errorf("no systems to watch in %s", svc.RomsDir())
	}

	log.Info().Strs("systems", systems).Msg("watching rom folders")
	w := watcher.New(svc, svc.RomsDir(), systems, watcher.Options{
		Debounce: cfg.WatchDebounce(),
	})
	return w.Run(ctx) //nolint:wrapcheck // watcher errors are already wrapped
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ConsoleWriter is the human readable log output used on a terminal.
func ConsoleWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stderr}
}
