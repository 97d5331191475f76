// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// UIState holds view and chrome state shared across handlers.
type UIState struct {
	Mode      viewMode
	ViewStack []viewMode

	Width  int
	Height int

	Err     error
	Loading bool

	// StatusMessage is a transient notice shown in the header; it fades
	// after statusMessageTTL.
	StatusMessage string
	StatusTime    time.Time

	RelativeTime bool
	LastRefresh  time.Time
}

// UIComponents holds the bubbles sub-models.
type UIComponents struct {
	SearchInput textinput.Model
	Detail      viewport.Model
	ErrorView   viewport.Model
	Spinner     spinner.Model
}
