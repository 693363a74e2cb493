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

import "strings"

type Systems struct {
	Custom []SystemsCustom `toml:"custom,omitempty"`
}

// SystemsCustom overrides the built-in extension allow-list of a system.
type SystemsCustom struct {
	System     string   `toml:"system"`
	Extensions []string `toml:"extensions,omitempty,multiline"`
}

func (c *Instance) SystemsCustom() []SystemsCustom {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Systems.Custom
}

// LookupSystemExtensions returns the user's extension list for a system.
// An empty list counts as no override.
func (c *Instance) LookupSystemExtensions(system string) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, custom := range c.vals.Systems.Custom {
		if !strings.EqualFold(custom.System, system) {
			continue
		}
		if len(custom.Extensions) == 0 {
			return nil, false
		}
		exts := make([]string, len(custom.Extensions))
		copy(exts, custom.Extensions)
		return exts, true
	}
	return nil, false
}

func (c *Instance) SetSystemExtensions(system string, exts []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exts = normalizeExtensions(exts)
	for i, custom := range c.vals.Systems.Custom {
		if strings.EqualFold(custom.System, system) {
			c.vals.Systems.Custom[i].Extensions = exts
			return
		}
	}
	c.vals.Systems.Custom = append(c.vals.Systems.Custom, SystemsCustom{
		System:     system,
		Extensions: exts,
	})
}

// normalizeExtensions lowercases and adds the leading dot users tend to
// leave off ("nes" -> ".nes"). Blank entries are dropped.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
