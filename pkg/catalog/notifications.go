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
	"encoding/json"

	"github.com/rs/zerolog/log"
)

const (
	NotificationSyncStarted     = "catalog.sync.started"
	NotificationSyncProgress    = "catalog.sync.progress"
	NotificationSyncCompleted   = "catalog.sync.completed"
	NotificationImportCompleted = "catalog.import.completed"
)

type Notification struct {
	Method string
	Params json.RawMessage
}

type SyncStarted struct {
	RunID  string `json:"runId"`
	System string `json:"system"`
	Total  int    `json:"total"`
}

type SyncProgress struct {
	RunID  string `json:"runId"`
	System string `json:"system"`
	Path   string `json:"path"`
	Index  int    `json:"index"`
	Total  int    `json:"total"`
}

type SyncCompleted struct {
	System string `json:"system"`
	SyncResult
}

type ImportCompleted struct {
	System string `json:"system"`
	ImportResult
}

// sendNotification never blocks. With no channel or a full one the event is
// dropped.
func sendNotification(ns chan<- Notification, method string, payload any) {
	if ns == nil {
		return
	}

	var params json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Error().Err(err).Str("method", method).Msg("failed to marshal notification")
			return
		}
		params = data
	}

	select {
	case ns <- Notification{Method: method, Params: params}:
	default:
		log.Debug().Str("method", method).Msg("notification channel full, dropping")
	}
}

func syncStarted(ns chan<- Notification, payload SyncStarted) {
	sendNotification(ns, NotificationSyncStarted, payload)
}

func syncProgress(ns chan<- Notification, payload SyncProgress) {
	sendNotification(ns, NotificationSyncProgress, payload)
}

func syncCompleted(ns chan<- Notification, payload SyncCompleted) {
	sendNotification(ns, NotificationSyncCompleted, payload)
}

func importCompleted(ns chan<- Notification, payload ImportCompleted) {
	sendNotification(ns, NotificationImportCompleted, payload)
}
