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

package catalog

import (
	"crypto/md5" //nolint:gosec // identity, not security
	"encoding/hex"
)

// Identify returns the stable catalog ID of a ROM: the lowercase hex MD5 of
// its absolute path bytes. The path is not normalized, so the same file seen
// through a different path gets a different ID.
func Identify(absPath string) string {
	sum := md5.Sum([]byte(absPath)) //nolint:gosec // identity, not security
	return hex.EncodeToString(sum[:])
}
