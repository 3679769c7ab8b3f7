// Package scripts provides the inline client-side scripts injected into the
// report head. The scripts are inert text to the generator.
package scripts

import (
	_ "embed"
)

// Tooltip enables bootstrap tooltips
//
//go:embed tooltip.js
var Tooltip string

// Search wires the navbar search box to mark.js with next/prev navigation
//
//go:embed search.js
var Search string

// PopulateNavbar fills the sections dropdown from every h1 that has an id
//
//go:embed navbar.js
var PopulateNavbar string

// SmoothScroll animates in-page links and offsets them below the sticky navbar
//
//go:embed smoothscroll.js
var SmoothScroll string

// DropdownFilter filters the sections dropdown as the user types
//
//go:embed dropdown_filter.js
var DropdownFilter string

// ProgressBar draws the scroll progress bar
//
//go:embed progressbar.js
var ProgressBar string

// HighlightInit starts highlight.js
//
//go:embed highlight.js
var HighlightInit string

// ThemePreview swaps the bootswatch stylesheet when a theme is selected
//
//go:embed theme_preview.js
var ThemePreview string

// ThemePreviewSelect is the navbar theme selector markup
//
//go:embed theme_preview.html
var ThemePreviewSelect string
