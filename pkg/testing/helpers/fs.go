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

package helpers

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// FSHelper builds content roots on an afero filesystem for tests.
type FSHelper struct {
	Fs afero.Fs
}

func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOSFS uses the real filesystem, for tests that need a watcher.
func NewOSFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewOsFs(),
	}
}

// CreateDirectoryStructure creates a tree described by nested maps. A string
// or []byte value is a file, a map is a directory and nil is an empty
// directory.
func (h *FSHelper) CreateDirectoryStructure(root string, structure map[string]any) error {
	for name, content := range structure {
		fullPath := filepath.Join(root, name)

		switch v := content.(type) {
		case string:
			if err := h.WriteFile(fullPath, []byte(v)); err != nil {
				return err
			}
		case []byte:
			if err := h.WriteFile(fullPath, v); err != nil {
				return err
			}
		case map[string]any:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
			}
			if err := h.CreateDirectoryStructure(fullPath, v); err != nil {
				return err
			}
		case nil:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create empty directory %s: %w", fullPath, err)
			}
		default:
			return fmt.Errorf("unsupported entry type %T for %s", content, fullPath)
		}
	}
	return nil
}

// CreateRoms writes empty ROM files under <contentRoot>/Roms/<system>. Names
// may contain slashes for subfolders.
func (h *FSHelper) CreateRoms(contentRoot, system string, names ...string) ([]string, error) {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(contentRoot, "Roms", system, filepath.FromSlash(name))
		if err := h.WriteFile(p, []byte{}); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// WriteGamelist writes gamelist.xml for a system.
func (h *FSHelper) WriteGamelist(contentRoot, system, xml string) error {
	return h.WriteFile(filepath.Join(contentRoot, "Roms", system, "gamelist.xml"), []byte(xml))
}

func (h *FSHelper) FileExists(path string) bool {
	exists, err := afero.Exists(h.Fs, path)
	if err != nil {
		return false
	}
	return exists
}

func (h *FSHelper) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(h.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes content, creating parent directories.
func (h *FSHelper) WriteFile(path string, content []byte) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for file %s: %w", path, err)
	}
	if err := afero.WriteFile(h.Fs, path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// ListFiles returns the sorted names in a directory.
func (h *FSHelper) ListFiles(path string) ([]string, error) {
	files, err := afero.ReadDir(h.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	names := make([]string, len(files))
	for i, file := range files {
		names[i] = file.Name()
	}
	sort.Strings(names)
	return names, nil
}

// TempFiles returns names in dir that look like leftover atomic-write temp
// files.
func (h *FSHelper) TempFiles(dir string) ([]string, error) {
	names, err := h.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	var temps []string
	for _, name := range names {
		if strings.Contains(name, ".tmp-") {
			temps = append(temps, name)
		}
	}
	return temps, nil
}
