// Package telemetry provides OpenTelemetry integration for the application.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the default tracer name for the application
	TracerName = "github.com/verustcode/reportng"
)

// Tracer returns the global tracer for the application
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan starts a new span with the given name and returns the context and span.
// The caller is responsible for calling span.End() when the operation is complete.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// SpanFromContext returns the current span from the context.
// If no span is found, a no-op span is returned.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// SetSpanError records an error on the span and sets its status to error
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanOK sets the span status to OK
func SetSpanOK(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// AddSpanEvent adds an event to the span with optional attributes
func AddSpanEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// SetSpanAttributes sets attributes on the span
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

// Common attribute keys for consistent naming
var (
	// Report attributes
	AttrSessionID  = attribute.Key("report.session_id")
	AttrReportName = attribute.Key("report.name")
	AttrBlockCount = attribute.Key("report.block_count")
	AttrOutputPath = attribute.Key("report.output_path")

	// Block attributes
	AttrBlockKind = attribute.Key("block.kind")

	// Asset attributes
	AttrAssetName = attribute.Key("asset.name")
	AttrAssetURL  = attribute.Key("asset.url")
	AttrAssetDir  = attribute.Key("asset.dir")

	// Result attributes
	AttrBytes = attribute.Key("bytes")
)

// WithSessionAttributes returns span start options with report session attributes
func WithSessionAttributes(sessionID, reportName string) trace.SpanStartOption {
	return trace.WithAttributes(
		AttrSessionID.String(sessionID),
		AttrReportName.String(reportName),
	)
}

// WithAssetAttributes returns span start options with asset attributes
func WithAssetAttributes(name, url string) trace.SpanStartOption {
	return trace.WithAttributes(
		AttrAssetName.String(name),
		AttrAssetURL.String(url),
	)
}
