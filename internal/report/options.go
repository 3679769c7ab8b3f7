package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/verustcode/reportng/consts"
	"github.com/verustcode/reportng/internal/assets"
	"github.com/verustcode/reportng/pkg/idgen"
	"github.com/verustcode/reportng/pkg/telemetry"
)

// Options are the session settings fixed at construction
type Options struct {
	// ReportName is shown in the navbar and the document title.
	// Names longer than 40 characters are truncated.
	ReportName string `yaml:"name"`
	// Brand is the author or company shown at the left of the navbar
	Brand string `yaml:"brand"`

	UseAsciinema    bool `yaml:"use_asciinema"`
	HighlightCode   bool `yaml:"highlight_code"`
	ShowProgressBar bool `yaml:"show_progress_bar"`
	ShowSearch      bool `yaml:"show_search"`
	ThemePreview    bool `yaml:"theme_preview"`

	// Theme is a bootswatch theme name
	Theme string `yaml:"theme"`
	// UseBootstrap selects the plain Bootstrap 4 stylesheet over bootswatch
	UseBootstrap bool `yaml:"use_bootstrap"`
	// NavbarColor is a palette color name, default primary
	NavbarColor string `yaml:"navbar_color"`
	// SearchHighlightColor is any CSS color for search hits
	SearchHighlightColor string `yaml:"search_highlight_color"`

	// UserJavaScript and UserCSS are injected into the head verbatim
	UserJavaScript string `yaml:"user_javascript"`
	UserCSS        string `yaml:"user_css"`

	// Language is the BCP 47 document language
	Language string `yaml:"language"`
}

// DefaultOptions returns the options used when a definition leaves them unset
func DefaultOptions() Options {
	return Options{
		HighlightCode:        true,
		ShowProgressBar:      true,
		ShowSearch:           true,
		Theme:                consts.DefaultTheme,
		NavbarColor:          "primary",
		SearchHighlightColor: consts.DefaultSearchHighlightColor,
		Language:             consts.DefaultLanguage,
	}
}

// URLResolver resolves a link to the URL reached after redirects
type URLResolver interface {
	FinalURL(ctx context.Context, url string) (string, error)
}

// Option configures the dependencies of a Session
type Option func(*Session)

// WithAssets sets the asset table the head links to. The table is copied.
func WithAssets(t assets.Table) Option {
	return func(s *Session) {
		s.assets = t.Clone()
	}
}

// WithAnchorSource sets the source of anchor suffixes and generated ids
func WithAnchorSource(src idgen.AnchorSource) Option {
	return func(s *Session) {
		s.anchors = src
	}
}

// WithResolver sets the resolver used for asciinema links
func WithResolver(r URLResolver) Option {
	return func(s *Session) {
		s.resolver = r
	}
}

// WithLogger sets the session logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}
