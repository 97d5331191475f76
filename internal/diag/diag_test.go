// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package diag

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/log"
)

func TestNopShipperIsSafe(t *testing.T) {
	t.Parallel()

	s := Nop()
	if s.Enabled() {
		t.Error("Nop().Enabled() = true")
	}
	if s.Endpoint() != "" {
		t.Errorf("Nop().Endpoint() = %q", s.Endpoint())
	}

	// None of these may panic on a no-op shipper.
	s.Infof("hello %s", "world")
	s.Warnf("warn")
	s.Errorf("err: %v", context.Canceled)
	if err := s.Close(context.Background()); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestNewWithoutEndpointIsNop(t *testing.T) {
	t.Parallel()

	s, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if s.Enabled() {
		t.Error("empty-endpoint shipper is enabled")
	}
}

func TestSeverityText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		severity log.Severity
		expected string
	}{
		{log.SeverityInfo, "INFO"},
		{log.SeverityWarn, "WARN"},
		{log.SeverityError, "ERROR"},
	}

	for _, tc := range tests {
		if got := severityText(tc.severity); got != tc.expected {
			t.Errorf("severityText(%v) = %q, want %q", tc.severity, got, tc.expected)
		}
	}
}
