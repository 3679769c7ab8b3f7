package assets

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/verustcode/reportng/pkg/errors"
	"github.com/verustcode/reportng/pkg/logger"
	"github.com/verustcode/reportng/pkg/telemetry"
)

// Fetcher retrieves the body of a URL
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Resolver copies remote assets into a local directory
type Resolver struct {
	fetcher Fetcher
	metrics *telemetry.Metrics
}

// NewResolver creates a Resolver that downloads through f
func NewResolver(f Fetcher) *Resolver {
	return &Resolver{
		fetcher: f,
		metrics: telemetry.GetMetrics(),
	}
}

// Download fetches every entry of t that is not already present in dir and
// returns a copy of t rewritten to rel + file name. The bootswatch entry has
// theme substituted before its file name is derived.
//
// Network failures are not recovered: the first failed fetch aborts the
// download and is returned as a network error.
func (r *Resolver) Download(ctx context.Context, t Table, dir, rel, theme string) (Table, error) {
	ctx, span := telemetry.StartSpan(ctx, "assets.download")
	defer span.End()
	telemetry.SetSpanAttributes(span, telemetry.AttrAssetDir.String(dir))

	if err := ensureDir(dir); err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}

	out := make(Table, len(t))
	for _, name := range t.Names() {
		u := t[name]
		if name == BootswatchTheme {
			u = ThemeURL(u, theme)
		}
		file := FileName(u)
		dest := filepath.Join(dir, file)

		if _, err := os.Stat(dest); err == nil {
			logger.Debug("Asset already present",
				zap.String("asset", name),
				zap.String("path", dest),
			)
			r.metrics.RecordAssetDownload(ctx, telemetry.AssetResultCached, 0)
			out[name] = rel + file
			continue
		}

		if err := r.fetch(ctx, name, u, dest); err != nil {
			telemetry.SetSpanError(span, err)
			return nil, err
		}
		out[name] = rel + file
	}

	telemetry.SetSpanOK(span)
	return out, nil
}

func (r *Resolver) fetch(ctx context.Context, name, u, dest string) error {
	start := time.Now()

	body, err := r.fetcher.Get(ctx, u)
	if err != nil {
		r.metrics.RecordAssetDownload(ctx, telemetry.AssetResultFailed, 0)
		return errors.ErrNetwork(u, err)
	}

	if err := os.WriteFile(dest, body, 0o644); err != nil {
		r.metrics.RecordAssetDownload(ctx, telemetry.AssetResultFailed, 0)
		return errors.ErrIO("failed to write asset "+dest, err)
	}

	r.metrics.RecordAssetDownload(ctx, telemetry.AssetResultDownloaded, time.Since(start).Seconds())
	logger.Info("Downloaded asset",
		zap.String("asset", name),
		zap.String("url", u),
		zap.String("path", dest),
		zap.Int("bytes", len(body)),
	)
	return nil
}

// ensureDir creates dir when missing and rejects paths that are not directories
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return errors.ErrDirectory(dir, os.ErrExist)
	case err == nil:
		return nil
	case !os.IsNotExist(err):
		return errors.ErrDirectory(dir, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.ErrDirectory(dir, err)
	}
	logger.Debug("Created asset directory", zap.String("dir", dir))
	return nil
}
