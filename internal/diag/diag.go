// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

// Package diag ships diagnostic events to an OTLP endpoint. The TUI runs
// full-screen, so engine warnings cannot go to stderr; they go here instead
// and show up next to the logs being browsed.
package diag

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Shipper emits diagnostic records. The zero-config shipper is a no-op, so
// callers never need to guard emission sites.
type Shipper struct {
	provider *sdklog.LoggerProvider
	logger   log.Logger
	endpoint string
}

// Config holds shipper configuration.
type Config struct {
	Endpoint    string // OTLP HTTP endpoint, empty disables shipping
	ServiceName string
	Insecure    bool // HTTP instead of HTTPS
}

// New creates a shipper. An empty endpoint yields a no-op shipper and no
// error, so diagnostics stay optional.
func New(cfg Config) (*Shipper, error) {
	if cfg.Endpoint == "" {
		return Nop(), nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "scrollcat"
	}

	opts := []otlploghttp.Option{
		otlploghttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlploghttp.WithInsecure())
	}

	exporter, err := otlploghttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res := resource.NewWithAttributes(semconv.SchemaURL,
		[]attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}...)

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)

	return &Shipper{
		provider: provider,
		logger:   provider.Logger("scrollcat"),
		endpoint: cfg.Endpoint,
	}, nil
}

// Nop returns a shipper that drops everything.
func Nop() *Shipper {
	return &Shipper{}
}

// Enabled reports whether records actually go anywhere.
func (s *Shipper) Enabled() bool {
	return s.logger != nil
}

// Endpoint returns the configured OTLP endpoint, empty for a no-op shipper.
func (s *Shipper) Endpoint() string {
	return s.endpoint
}

// Infof emits an info-level record.
func (s *Shipper) Infof(format string, args ...any) {
	s.emit(log.SeverityInfo, fmt.Sprintf(format, args...))
}

// Warnf emits a warn-level record.
func (s *Shipper) Warnf(format string, args ...any) {
	s.emit(log.SeverityWarn, fmt.Sprintf(format, args...))
}

// Errorf emits an error-level record.
func (s *Shipper) Errorf(format string, args ...any) {
	s.emit(log.SeverityError, fmt.Sprintf(format, args...))
}

func (s *Shipper) emit(severity log.Severity, msg string) {
	if s.logger == nil {
		return
	}
	var record log.Record
	record.SetSeverity(severity)
	record.SetSeverityText(severityText(severity))
	record.SetBody(log.StringValue(msg))
	s.logger.Emit(context.Background(), record)
}

// Close flushes buffered records and shuts the provider down. Safe on a
// no-op shipper.
func (s *Shipper) Close(ctx context.Context) error {
	if s.provider == nil {
		return nil
	}
	return s.provider.Shutdown(ctx)
}

func severityText(severity log.Severity) string {
	switch severity {
	case log.SeverityInfo:
		return "INFO"
	case log.SeverityWarn:
		return "WARN"
	case log.SeverityError:
		return "ERROR"
	default:
		return severity.String()
	}
}
