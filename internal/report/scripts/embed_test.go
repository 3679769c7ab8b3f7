package scripts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptsEmbedded(t *testing.T) {
	for name, s := range map[string]string{
		"tooltip":         Tooltip,
		"search":          Search,
		"navbar":          PopulateNavbar,
		"smoothscroll":    SmoothScroll,
		"dropdown filter": DropdownFilter,
		"progress bar":    ProgressBar,
		"highlight":       HighlightInit,
		"theme preview":   ThemePreview,
		"theme select":    ThemePreviewSelect,
	} {
		assert.NotEmpty(t, s, name)
	}
}

// Navigation depends on headings being tagged as h1 with an id
func TestPopulateNavbar_ScansAnchoredHeadings(t *testing.T) {
	assert.Contains(t, PopulateNavbar, `querySelectorAll("h1[id]")`)
	assert.Contains(t, PopulateNavbar, `"ddmenu"`)
}

func TestThemePreview_TargetsBootswatchLink(t *testing.T) {
	assert.Contains(t, ThemePreview, `#bootswatch`)
	assert.Contains(t, ThemePreviewSelect, `id="themeselect"`)
}
