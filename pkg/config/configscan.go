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

package config

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultMaxConcurrency = 8
	DefaultWatchDebounce  = 2 * time.Second
)

type Scan struct {
	MaxConcurrency int `toml:"max_concurrency,omitempty"`
}

type Watch struct {
	Debounce string `toml:"debounce,omitempty"`
}

// ScanMaxConcurrency bounds how many sibling directories the walker reads
// at once.
func (c *Instance) ScanMaxConcurrency() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Scan.MaxConcurrency <= 0 {
		return DefaultMaxConcurrency
	}
	return c.vals.Scan.MaxConcurrency
}

func (c *Instance) WatchDebounce() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Watch.Debounce == "" {
		return DefaultWatchDebounce
	}
	d, err := time.ParseDuration(c.vals.Watch.Debounce)
	if err != nil || d <= 0 {
		log.Warn().Msgf("invalid watch debounce: %s", c.vals.Watch.Debounce)
		return DefaultWatchDebounce
	}
	return d
}
