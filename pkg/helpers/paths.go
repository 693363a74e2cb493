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
	"strings"

	"github.com/spf13/afero"
)

// PathInfo splits a ROM path into the pieces the catalog stores.
type PathInfo struct {
	Path      string
	Dir       string
	Filename  string
	Extension string
	Name      string
}

func GetPathInfo(path string) PathInfo {
	filename := filepath.Base(path)
	ext := filepath.Ext(filename)
	return PathInfo{
		Path:      path,
		Dir:       filepath.Dir(path),
		Filename:  filename,
		Extension: ext,
		Name:      strings.TrimSuffix(filename, ext),
	}
}

// FileStem is the base name without its final extension: "Zelda (USA).nes"
// becomes "Zelda (USA)".
func FileStem(path string) string {
	return GetPathInfo(path).Name
}

// CatalogRelPath expresses an absolute path relative to the content root,
// always with forward slashes so the catalog file is portable between hosts.
func CatalogRelPath(contentRoot, path string) (string, error) {
	rel, err := filepath.Rel(contentRoot, path)
	if err != nil {
		return "", fmt.Errorf("failed to make %s relative to %s: %w", path, contentRoot, err)
	}
	return filepath.ToSlash(rel), nil
}

// StripDotPrefix removes a single leading "./" or ".\" as written by
// scrapers into gamelist.xml.
func StripDotPrefix(path string) string {
	if strings.HasPrefix(path, "./") || strings.HasPrefix(path, `.\`) {
		return path[2:]
	}
	return path
}

// FileExists reports whether a regular file (or anything that is not a
// directory) exists at path. Errors count as absent.
func FileExists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists reports whether a directory exists at path.
func DirExists(fs afero.Fs, path string) bool {
	ok, err := afero.DirExists(fs, path)
	return err == nil && ok
}
