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

package mocks

import (
	"github.com/ZaparooProject/zaparoo-catalog/pkg/catalog"
	"github.com/stretchr/testify/mock"
)

// MockSyncer is a testify mock for watcher.Syncer.
//
// Example:
//
//	syncer := &MockSyncer{}
//	syncer.On("SyncSystem", "nes").Return(catalog.SyncResult{Added: 1}, nil)
type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) SyncSystem(system string) (catalog.SyncResult, error) {
	args := m.Called(system)
	res, _ := args.Get(0).(catalog.SyncResult)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return res, args.Error(1)
}

