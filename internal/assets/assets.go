// Package assets holds the table of third-party scripts and stylesheets a
// report links to, and rewrites it to point at local copies.
package assets

import (
	"net/url"
	"path"
	"sort"
	"strings"
)

// Asset names
const (
	JQuery          = "jquery"
	PopperJS        = "popperJs"
	BootstrapJS     = "bootstrapJs"
	MarkJS          = "markJs"
	ProgressbarJS   = "progressbarJs"
	BootswatchTheme = "bootswatchTheme"
	FontAwesome     = "fontAwesome"
	AsciinemaCSS    = "asciinemaCss"
	AsciinemaJS     = "asciinemaJs"
	HighlightjsCSS  = "highlightjsCss"
	HighlightjsJS   = "highlightjsJs"
)

// BootstrapCSS is the plain Bootstrap 4 stylesheet used instead of a
// bootswatch theme. It is not part of the table and never downloaded.
const BootstrapCSS = "https://stackpath.bootstrapcdn.com/bootstrap/4.1.1/css/bootstrap.min.css"

const (
	bootswatchPrefix = "https://bootswatch.com/4/"
	bootswatchFile   = "bootstrap.min.css"
	defaultTheme     = "lux"
)

// Table maps asset names to the URL or local path a report links to
type Table map[string]string

// Default returns a fresh table of remote CDN URLs
func Default() Table {
	return Table{
		JQuery:          "https://code.jquery.com/jquery-3.3.1.min.js",
		PopperJS:        "https://cdnjs.cloudflare.com/ajax/libs/popper.js/1.14.3/umd/popper.min.js",
		BootstrapJS:     "https://stackpath.bootstrapcdn.com/bootstrap/4.1.1/js/bootstrap.min.js",
		MarkJS:          "https://cdnjs.cloudflare.com/ajax/libs/mark.js/8.11.1/jquery.mark.min.js",
		ProgressbarJS:   "https://cdnjs.cloudflare.com/ajax/libs/progressbar.js/1.0.1/progressbar.min.js",
		BootswatchTheme: bootswatchPrefix + defaultTheme + "/" + bootswatchFile,
		FontAwesome:     "https://use.fontawesome.com/releases/v5.0.6/css/all.css",
		AsciinemaCSS:    "https://cdnjs.cloudflare.com/ajax/libs/asciinema-player/2.4.1/asciinema-player.min.css",
		AsciinemaJS:     "https://cdnjs.cloudflare.com/ajax/libs/asciinema-player/2.4.1/asciinema-player.min.js",
		HighlightjsCSS:  "https://cdnjs.cloudflare.com/ajax/libs/highlight.js/9.12.0/styles/default.min.css",
		HighlightjsJS:   "https://cdnjs.cloudflare.com/ajax/libs/highlight.js/9.12.0/highlight.min.js",
	}
}

// Clone returns a copy of t
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Names returns the asset names in sorted order
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for k := range t {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Get returns the entry for name, falling back to the default table
func (t Table) Get(name string) string {
	if v, ok := t[name]; ok {
		return v
	}
	return Default()[name]
}

// IsBootswatch reports whether u is a remote bootswatch theme URL
func IsBootswatch(u string) bool {
	return strings.HasPrefix(u, bootswatchPrefix)
}

// ThemeURL substitutes theme into a remote bootswatch URL. Other values,
// including local paths, are returned unchanged.
func ThemeURL(u, theme string) string {
	if theme == "" || !IsBootswatch(u) {
		return u
	}
	return bootswatchPrefix + theme + "/" + bootswatchFile
}

// FileName returns the last path segment of an asset URL or path
func FileName(u string) string {
	if parsed, err := url.Parse(u); err == nil && parsed.Path != "" {
		return path.Base(parsed.Path)
	}
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}

// ResolveLocal returns a copy of t with every entry rewritten to
// rel + file name. No I/O is done; the files are expected to exist already.
func ResolveLocal(t Table, rel string) Table {
	out := make(Table, len(t))
	for name, u := range t {
		out[name] = rel + FileName(u)
	}
	return out
}
