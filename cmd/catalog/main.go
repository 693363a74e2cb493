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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/cli"
	"github.com/ZaparooProject/zaparoo-catalog/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(flag.CommandLine)

	exit, err := flags.Pre(os.Args[1:], os.Stdout)
	if exit || err != nil {
		return err
	}

	cfg, err := cli.Setup(
		config.DefaultConfigDir(),
		config.DefaultDataDir(),
		config.BaseDefaults,
		[]io.Writer{cli.ConsoleWriter()},
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ns := make(chan catalog.Notification, 64)
	go func() {
		for n := range ns {
			if n.Method == catalog.NotificationSyncProgress {
				continue
			}
			log.Debug().Str("method", n.Method).RawJSON("params", n.Params).Msg("notification")
		}
	}()
	defer close(ns)

	fs := afero.NewOsFs()
	svc := flags.NewService(fs, cfg, ns)

	err = flags.Post(ctx, fs, cfg, svc, os.Stdout)
	if errors.Is(err, cli.ErrNoCommand) {
		flag.Usage()
		return nil
	}
	return err
}
