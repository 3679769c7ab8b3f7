// Package palette maps the semantic color names accepted by report blocks
// onto the canonical Bootstrap contextual names used in CSS classes.
package palette

import (
	"github.com/verustcode/reportng/pkg/errors"
)

// Color is a user supplied color name
type Color string

// Canonical colors
const (
	Primary   Color = "primary"
	Secondary Color = "secondary"
	Success   Color = "success"
	Danger    Color = "danger"
	Warning   Color = "warning"
	Info      Color = "info"
	Light     Color = "light"
	Dark      Color = "dark"
	Default   Color = "default"
)

// Convenience aliases
const (
	Red    Color = "red"
	Green  Color = "green"
	Blue   Color = "blue"
	Yellow Color = "yellow"
)

// accepted lists every valid name in display order
var accepted = []Color{
	Primary, Secondary, Success, Danger, Warning, Info, Light, Dark, Default,
	Red, Green, Blue, Yellow,
}

// aliases override the pass-through mapping. "light" maps to "secondary"
// because the light contextual class is unreadable on most themes.
var aliases = map[Color]Color{
	Red:    Danger,
	Green:  Success,
	Yellow: Warning,
	Blue:   Info,
	Light:  Secondary,
}

// Accepted returns the accepted color names
func Accepted() []string {
	out := make([]string, len(accepted))
	for i, c := range accepted {
		out[i] = string(c)
	}
	return out
}

// IsValid reports whether s is one of the accepted color names
func IsValid(s string) bool {
	for _, c := range accepted {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Canonical returns the CSS contextual name for c. Names outside the
// accepted set are returned unchanged; callers validate first.
func Canonical(c Color) string {
	if to, ok := aliases[c]; ok {
		return string(to)
	}
	return string(c)
}

// Parse validates s and returns its canonical name. An empty s yields
// fallback, which is not validated.
func Parse(s string, fallback Color) (string, error) {
	if s == "" {
		return Canonical(fallback), nil
	}
	if !IsValid(s) {
		return "", errors.ErrInvalidColor(s, Accepted())
	}
	return Canonical(Color(s)), nil
}
