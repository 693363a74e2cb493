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

// Package gamelist reads EmulationStation style gamelist.xml files written by
// scrapers.
package gamelist

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrNotFound = errors.New("gamelist.xml not found")
	ErrInvalid  = errors.New("invalid gamelist.xml")
)

// Text is element character data. Attributes on the element are ignored.
type Text struct {
	Value string `xml:",chardata"`
}

// String returns the text with surrounding whitespace removed.
func (t Text) String() string {
	return strings.TrimSpace(t.Value)
}

// Game is one <game> record. Every field is optional.
type Game struct {
	Path        Text `xml:"path"`
	Name        Text `xml:"name"`
	Desc        Text `xml:"desc"`
	Developer   Text `xml:"developer"`
	Publisher   Text `xml:"publisher"`
	ReleaseDate Text `xml:"releasedate"`
	Genre       Text `xml:"genre"`
	Players     Text `xml:"players"`
	Rating      Text `xml:"rating"`
	Image       Text `xml:"image"`
	Thumbnail   Text `xml:"thumbnail"`
	Marquee     Text `xml:"marquee"`
	Video       Text `xml:"video"`
	Wheel       Text `xml:"wheel"`
	Fanart      Text `xml:"fanart"`
	Fanarts     Text `xml:"fanarts"`
}

type GameList struct {
	XMLName xml.Name `xml:"gameList"`
	Games   []Game   `xml:"game"`
}

// Read loads and parses the gamelist at path. A missing file returns
// ErrNotFound. Parse failures, a root other than <gameList> and a list with
// no <game> elements return ErrInvalid.
func Read(fs afero.Fs, path string) (GameList, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return GameList{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	} else if err != nil {
		return GameList{}, fmt.Errorf("failed to read gamelist.xml at %s: %w", path, err)
	}

	gl, err := Parse(data)
	if err != nil {
		return GameList{}, fmt.Errorf("%s: %w", path, err)
	}
	return gl, nil
}

// Parse decodes gamelist XML from memory.
func Parse(data []byte) (GameList, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	var gl GameList
	if err := dec.Decode(&gl); err != nil {
		return GameList{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if len(gl.Games) == 0 {
		return GameList{}, fmt.Errorf("%w: no game elements", ErrInvalid)
	}
	return gl, nil
}

// charsetReader handles the legacy single-byte encodings some older
// scrapers declare.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "iso-8859-15":
		return charmap.ISO8859_15.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
}
