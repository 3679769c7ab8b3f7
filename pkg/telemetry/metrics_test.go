// Package telemetry provides OpenTelemetry integration for the application.
// This file contains unit tests for the metrics.
package telemetry

import (
	"context"
	"testing"
)

// TestGetMetrics tests the GetMetrics function
func TestGetMetrics(t *testing.T) {
	metrics := GetMetrics()
	if metrics == nil {
		t.Fatal("GetMetrics() returned nil")
	}

	// Second call should return same instance
	metrics2 := GetMetrics()
	if metrics != metrics2 {
		t.Error("GetMetrics() returned different instances on subsequent calls")
	}
}

// TestMetricsRecordBlock tests RecordBlock
func TestMetricsRecordBlock(t *testing.T) {
	metrics := GetMetrics()
	ctx := context.Background()

	// Should not panic
	metrics.RecordBlock(ctx, "section", "")
	metrics.RecordBlock(ctx, "table", "E2002")
}

// TestMetricsRecordRender tests RecordRender
func TestMetricsRecordRender(t *testing.T) {
	metrics := GetMetrics()

	// Should not panic
	metrics.RecordRender(context.Background(), 0.002, 48213)
}

// TestMetricsRecordAssetDownload tests RecordAssetDownload
func TestMetricsRecordAssetDownload(t *testing.T) {
	metrics := GetMetrics()
	ctx := context.Background()

	// Should not panic
	metrics.RecordAssetDownload(ctx, AssetResultDownloaded, 0.4)
	metrics.RecordAssetDownload(ctx, AssetResultCached, 0)
	metrics.RecordAssetDownload(ctx, AssetResultFailed, 0)
}

// TestMetricsNilSafe tests that metrics methods are nil-safe
func TestMetricsNilSafe(t *testing.T) {
	// Create empty metrics struct (simulating initialization failure)
	emptyMetrics := &Metrics{}
	ctx := context.Background()

	t.Run("RecordBlock", func(t *testing.T) {
		emptyMetrics.RecordBlock(ctx, "code", "")
		emptyMetrics.RecordBlock(ctx, "code", "E2004")
	})

	t.Run("RecordRender", func(t *testing.T) {
		emptyMetrics.RecordRender(ctx, 1.0, 10)
	})

	t.Run("RecordAssetDownload", func(t *testing.T) {
		emptyMetrics.RecordAssetDownload(ctx, AssetResultDownloaded, 1.0)
	})
}
