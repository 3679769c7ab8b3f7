// Package telemetry provides OpenTelemetry integration for the application.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/verustcode/reportng/pkg/logger"
)

const (
	// MeterName is the default meter name for the application
	MeterName = "github.com/verustcode/reportng"
)

// Asset download results
const (
	AssetResultDownloaded = "downloaded"
	AssetResultCached     = "cached"
	AssetResultFailed     = "failed"
)

// Metrics holds all application metrics
type Metrics struct {
	// Block metrics
	BlocksTotal      metric.Int64Counter
	BlockErrorsTotal metric.Int64Counter

	// Render metrics
	RenderDuration metric.Float64Histogram
	RenderBytes    metric.Int64Histogram

	// Asset metrics
	AssetDownloadsTotal   metric.Int64Counter
	AssetDownloadDuration metric.Float64Histogram
}

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// GetMetrics returns the global metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		var err error
		globalMetrics, err = initMetrics()
		if err != nil {
			logger.Error("Failed to initialize metrics", zap.Error(err))
			// Return empty metrics to avoid nil pointer
			globalMetrics = &Metrics{}
		}
	})
	return globalMetrics
}

// initMetrics initializes all application metrics
func initMetrics() (*Metrics, error) {
	meter := otel.Meter(MeterName)
	m := &Metrics{}

	var err error

	m.BlocksTotal, err = meter.Int64Counter(
		"reportng_blocks_total",
		metric.WithDescription("Total number of blocks appended to reports"),
		metric.WithUnit("{block}"),
	)
	if err != nil {
		return nil, err
	}

	m.BlockErrorsTotal, err = meter.Int64Counter(
		"reportng_block_errors_total",
		metric.WithDescription("Total number of rejected blocks"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	m.RenderDuration, err = meter.Float64Histogram(
		"reportng_render_duration_seconds",
		metric.WithDescription("Duration of document rendering in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5),
	)
	if err != nil {
		return nil, err
	}

	m.RenderBytes, err = meter.Int64Histogram(
		"reportng_render_bytes",
		metric.WithDescription("Size of rendered documents"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(1<<10, 1<<14, 1<<17, 1<<20, 1<<23),
	)
	if err != nil {
		return nil, err
	}

	m.AssetDownloadsTotal, err = meter.Int64Counter(
		"reportng_asset_downloads_total",
		metric.WithDescription("Total number of asset resolutions by result"),
		metric.WithUnit("{asset}"),
	)
	if err != nil {
		return nil, err
	}

	m.AssetDownloadDuration, err = meter.Float64Histogram(
		"reportng_asset_download_duration_seconds",
		metric.WithDescription("Duration of asset downloads in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("Metrics initialized successfully")
	return m, nil
}

// RecordBlock records an appended block, or a rejected one when code is not empty
func (m *Metrics) RecordBlock(ctx context.Context, kind, code string) {
	if code == "" {
		if m.BlocksTotal != nil {
			m.BlocksTotal.Add(ctx, 1,
				metric.WithAttributes(attribute.String("kind", kind)),
			)
		}
		return
	}
	if m.BlockErrorsTotal != nil {
		m.BlockErrorsTotal.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("kind", kind),
				attribute.String("code", code),
			),
		)
	}
}

// RecordRender records a document render
func (m *Metrics) RecordRender(ctx context.Context, durationSeconds float64, size int64) {
	if m.RenderDuration != nil {
		m.RenderDuration.Record(ctx, durationSeconds)
	}
	if m.RenderBytes != nil {
		m.RenderBytes.Record(ctx, size)
	}
}

// RecordAssetDownload records one asset resolution
func (m *Metrics) RecordAssetDownload(ctx context.Context, result string, durationSeconds float64) {
	if m.AssetDownloadsTotal != nil {
		m.AssetDownloadsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("result", result)),
		)
	}
	if result == AssetResultDownloaded && m.AssetDownloadDuration != nil {
		m.AssetDownloadDuration.Record(ctx, durationSeconds)
	}
}
