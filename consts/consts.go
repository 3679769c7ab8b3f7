// Package consts defines cross-module constants used throughout the application.
package consts

// ServiceName is the application service name
const ServiceName = "reportng"

// Project information constants
const (
	// ProjectName is the display name of the project
	ProjectName = "reportng"

	// ProjectURL is the GitHub repository URL
	ProjectURL = "https://github.com/verustcode/reportng"

	// GeneratorComment is written at the top of every generated document head
	GeneratorComment = "Created using reportng"
)

// Build information - set via ldflags during build or programmatically
var (
	// Version is the application version
	Version = "dev"

	// BuildTime is the build timestamp
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// Report limits
const (
	// MaxReportNameLength is the longest report name shown in the navbar.
	// Longer names are cut to MaxReportNameLength-3 characters plus "...".
	MaxReportNameLength = 40

	// MaxBadgeLength is the badge text length above which a warning is logged
	MaxBadgeLength = 14

	// AnchorSuffixLength is the number of random characters appended to anchors
	AnchorSuffixLength = 5
)

// Report defaults
const (
	// DefaultTheme is the bootswatch theme used when none is configured
	DefaultTheme = "lux"

	// DefaultSearchHighlightColor is the background of search hits
	DefaultSearchHighlightColor = "#f1c40f"

	// DefaultLanguage is the document language tag
	DefaultLanguage = "en"

	// DefaultUserAgent is sent when downloading assets and resolving asciinema links
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/51.0.2704.103 Safari/537.36"
)
