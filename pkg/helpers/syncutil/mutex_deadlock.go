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

//go:build deadlock

// Package syncutil wraps the mutex types used by the catalog service and
// configuration so that deadlock detection can be switched on with the
// deadlock build tag.
package syncutil

import (
	"time"

	deadlock "github.com/sasha-s/go-deadlock"
)

// DeadlockEnabled reports whether the binary was built with -tags=deadlock.
const DeadlockEnabled = true

func init() {
	// a full rescan of a large collection holds the service lock for a while
	deadlock.Opts.DeadlockTimeout = 2 * time.Minute
}

// Mutex serializes catalog operations.
type Mutex struct {
	deadlock.Mutex
}

// RWMutex guards configuration values.
type RWMutex struct {
	deadlock.RWMutex
}
