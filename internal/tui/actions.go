// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"golang.design/x/clipboard"
)

// copyToClipboard writes text to the system clipboard and records the outcome
// as a transient status notice.
func (m *Model) copyToClipboard(text, successMsg string) {
	if err := clipboard.Init(); err != nil {
		m.setStatus("Clipboard error: " + err.Error())
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	m.setStatus(successMsg)
}
