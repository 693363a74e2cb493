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

package fixtures

// ContentRoot is the content root used by catalog tests.
const ContentRoot = "/content"

// NESGamelist is a scraper gamelist for the nes system with one record per
// supported field.
const NESGamelist = `<?xml version="1.0" encoding="UTF-8"?>
<gameList>
	<game id="1" source="ScreenScraper.fr">
		<path>./Zelda.nes</path>
		<name>The Legend of Zelda</name>
		<desc>Explore Hyrule.</desc>
		<developer>Nintendo R&amp;D4</developer>
		<publisher>Nintendo</publisher>
		<releasedate>19860221T000000</releasedate>
		<genre>Action-Adventure</genre>
		<players>1</players>
		<rating>0.9</rating>
		<image>./media/screenshots/Zelda.png</image>
		<thumbnail>./media/covers/Zelda.png</thumbnail>
		<marquee>./media/marquees/Zelda.png</marquee>
		<video>./media/videos/Zelda.mp4</video>
		<wheel>./media/wheels/Zelda-declared.png</wheel>
		<fanart>./media/fanart/Zelda.png</fanart>
	</game>
	<game>
		<path>./Unknown.nes</path>
		<name>Not In Catalog</name>
	</game>
</gameList>
`

// LegacyCatalog is a catalog written by an older launcher version, with keys
// this version does not model.
const LegacyCatalog = `{
  "games": [
    {
      "id": "d560c10acb36726933e5f26e3352d83a",
      "system": "nes",
      "path": "/content/Roms/nes/Old.nes",
      "filename": "Old.nes",
      "name": "My Renamed Game",
      "addedAt": 1700000000000,
      "favorite": true,
      "playCount": 3
    }
  ],
  "version": 2
}
`
