package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/net/html"

	"github.com/verustcode/reportng/consts"
	"github.com/verustcode/reportng/internal/assets"
	"github.com/verustcode/reportng/pkg/errors"
	"github.com/verustcode/reportng/pkg/idgen"
	"github.com/verustcode/reportng/pkg/logger"
)

func TestNew_Defaults(t *testing.T) {
	s, _ := newSession(t, Options{ReportName: "r", Brand: "b"})

	o := s.Options()
	assert.Equal(t, consts.DefaultTheme, o.Theme)
	assert.Equal(t, "primary", o.NavbarColor)
	assert.Equal(t, consts.DefaultSearchHighlightColor, o.SearchHighlightColor)
	assert.Equal(t, "en", o.Language)
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, 0, s.Len())

	out := s.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n<html lang=\"en\">"))
	assert.Contains(t, out, "https://bootswatch.com/4/lux/bootstrap.min.css")
	assert.Contains(t, out, "<!-- "+consts.GeneratorComment+" -->")
}

func TestNew_NavbarColor(t *testing.T) {
	s, _ := newSession(t, Options{NavbarColor: "red"})
	doc := parse(t, s)
	nav := only(t, doc, tag("nav"))
	assert.True(t, hasClass(nav, "bg-danger"))

	_, err := New(Options{NavbarColor: "purple"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidColor))
}

func TestNew_Language(t *testing.T) {
	s, _ := newSession(t, Options{Language: "pt-br"})
	assert.Contains(t, s.String(), `<html lang="pt-BR">`)

	_, err := New(Options{Language: "not a tag!"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestNew_TruncatesLongName(t *testing.T) {
	long := strings.Repeat("x", 52)
	s, logs := newSession(t, Options{ReportName: long})

	name := s.Options().ReportName
	assert.Len(t, name, consts.MaxReportNameLength)
	assert.Equal(t, strings.Repeat("x", 37)+"...", name)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, int64(52), warnings[0].ContextMap()["length"])
}

func TestNew_NameAtLimitIsKept(t *testing.T) {
	name := strings.Repeat("é", consts.MaxReportNameLength)
	s, logs := newSession(t, Options{ReportName: name})
	assert.Equal(t, name, s.Options().ReportName)
	assert.Empty(t, logs.FilterLevelExact(zapcore.WarnLevel).All())
}

func TestNew_LogsCarrySessionID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(nil) })

	s, err := New(Options{ReportName: strings.Repeat("x", 52)}, WithAnchorSource(idgen.NewCounterAnchors()))
	require.NoError(t, err)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, s.ID(), warnings[0].ContextMap()[logger.FieldSessionID])
}

func TestHead_FeatureToggles(t *testing.T) {
	table := assets.Default()

	off, _ := newSession(t, Options{})
	out := off.String()
	for _, name := range []string{assets.MarkJS, assets.AsciinemaCSS, assets.AsciinemaJS, assets.HighlightjsCSS, assets.HighlightjsJS, assets.ProgressbarJS} {
		assert.NotContains(t, out, table[name], name)
	}
	for _, name := range []string{assets.JQuery, assets.PopperJS, assets.BootstrapJS, assets.FontAwesome} {
		assert.Contains(t, out, table[name], name)
	}
	assert.NotContains(t, out, `type="search"`)
	assert.NotContains(t, out, progressBarID)

	on, _ := newSession(t, allOn())
	out = on.String()
	for _, name := range table.Names() {
		assert.Contains(t, out, table[name], name)
	}
	assert.Contains(t, out, `type="search"`)
	assert.Contains(t, out, `id="`+progressBarID+`"`)
	assert.Contains(t, out, "hljs.initHighlightingOnLoad();")
}

func TestHead_UserScriptAndCSSAreVerbatim(t *testing.T) {
	s, _ := newSession(t, Options{
		UserJavaScript: `if (a < b && c > d) { console.log("x"); }`,
		UserCSS:        `body > .jumbotron { color: "red"; }`,
	})
	out := s.String()
	assert.Contains(t, out, `<script>if (a < b && c > d) { console.log("x"); }</script>`)
	assert.Contains(t, out, `<style>body > .jumbotron { color: "red"; }</style>`)
}

func TestHead_SearchHighlightColor(t *testing.T) {
	s, _ := newSession(t, Options{ShowSearch: true, SearchHighlightColor: "#00ff00"})
	out := s.String()
	assert.Contains(t, out, "mark {background: #00ff00;}")
	assert.Contains(t, out, "color: #00ff00;")
}

func TestHead_Stylesheet(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		table assets.Table
		want  string
	}{
		{"default theme", Options{}, assets.Default(), "https://bootswatch.com/4/lux/bootstrap.min.css"},
		{"other theme", Options{Theme: "darkly"}, assets.Default(), "https://bootswatch.com/4/darkly/bootstrap.min.css"},
		{"plain bootstrap", Options{Theme: "darkly", UseBootstrap: true}, assets.Default(), assets.BootstrapCSS},
		{"local file keeps its theme", Options{Theme: "darkly"}, assets.ResolveLocal(assets.Default(), "./assets/"), "./assets/bootstrap.min.css"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSession(t, tt.opts, WithAssets(tt.table))
			link := only(t, parse(t, s), func(n *html.Node) bool { return n.Data == "link" && attr(n, "id") == "bootswatch" })
			assert.Equal(t, tt.want, attr(link, "href"))
		})
	}
}

func TestWithAssets_CopiesTable(t *testing.T) {
	table := assets.ResolveLocal(assets.Default(), "/static/")
	s, _ := newSession(t, Options{}, WithAssets(table))
	table[assets.JQuery] = "mutated.js"

	out := s.String()
	assert.Contains(t, out, `src="/static/jquery-3.3.1.min.js"`)
	assert.NotContains(t, out, "mutated.js")
}

func TestNavbar(t *testing.T) {
	s, _ := newSession(t, Options{ReportName: "Pentest <2024>", Brand: "acme & co", ThemePreview: true})
	doc := parse(t, s)

	nav := only(t, doc, tag("nav"))
	assert.Equal(t, "acme & co", textOf(only(t, nav, withClass("navbar-brand"))))
	assert.Equal(t, "Pentest <2024>", textOf(only(t, nav, withClass("navbar-text"))))
	only(t, nav, func(n *html.Node) bool { return attr(n, "id") == "ddmenu" })
	only(t, nav, func(n *html.Node) bool { return attr(n, "id") == "themeselect" })

	title := only(t, doc, tag("title"))
	assert.Equal(t, "Pentest <2024>", textOf(title))
}

func TestRender_IsIdempotent(t *testing.T) {
	s, _ := newSession(t, allOn())
	require.NoError(t, s.Section(SectionBlock{Title: "a", Content: "b"}))

	first := s.String()
	assert.Equal(t, first, s.String())

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, s.Save(path))
	require.NoError(t, s.Save(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, string(data))

	// later blocks show up in the next save
	require.NoError(t, s.Captions(CaptionsBlock{Content: "appended later"}))
	require.NoError(t, s.Save(path))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "appended later")
}

func TestSave_UnwritablePath(t *testing.T) {
	s, _ := newSession(t, Options{})
	err := s.Save(filepath.Join(t.TempDir(), "missing", "report.html"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeIO))
}

func TestBlocksAndAnchors(t *testing.T) {
	s, _ := newSession(t, allOn())
	require.NoError(t, s.Section(SectionBlock{Title: "Intro", Content: "x"}))
	require.NoError(t, s.Captions(CaptionsBlock{Content: "c"}))
	require.NoError(t, s.Code(CodeBlock{Title: "Exploit", Content: "id"}))

	blocks := s.Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, BlockInfo{Kind: KindSection, Anchor: "Intro00001"}, blocks[0])
	assert.Equal(t, BlockInfo{Kind: KindCaptions}, blocks[1])
	assert.Equal(t, BlockInfo{Kind: KindCode, Anchor: "Exploit00002"}, blocks[2])
	assert.Equal(t, []string{"Intro00001", "Exploit00002"}, s.Anchors())
}

// Every anchor must be on an h1 so the navbar script can discover it
func TestAnchorsAreDiscoverableHeadings(t *testing.T) {
	s, _ := newSession(t, allOn())
	require.NoError(t, s.Section(SectionBlock{Title: "One", Content: "x"}))
	require.NoError(t, s.Table(TableBlock{Title: "Two", Header: []string{"a"}}))
	require.NoError(t, s.ListGroup(ListGroupBlock{Title: "Three", Items: []string{}}))
	require.NoError(t, s.Code(CodeBlock{Title: "Four", Content: "x"}))
	require.NoError(t, s.Asciinema(t.Context(), AsciinemaBlock{Link: "https://asciinema.org/a/1", Title: "Five"}))

	doc := parse(t, s)
	headings := findAll(doc, func(n *html.Node) bool { return n.Data == "h1" && attr(n, "id") != "" })
	var ids, titles []string
	for _, h := range headings {
		ids = append(ids, attr(h, "id"))
		titles = append(titles, textOf(h))
	}
	assert.Equal(t, s.Anchors(), ids)
	assert.Equal(t, []string{"One", "Two", "Three", "Four", "Five"}, titles)
}

func TestSameTitlesGetDistinctAnchors(t *testing.T) {
	core := []Option{WithAnchorSource(idgen.NewRandomAnchors())}
	s, _ := newSession(t, Options{}, core...)

	for i := 0; i < 200; i++ {
		require.NoError(t, s.Section(SectionBlock{Title: "Findings", Content: "x"}))
	}
	seen := map[string]bool{}
	for _, a := range s.Anchors() {
		require.False(t, seen[a], "duplicate anchor %s", a)
		seen[a] = true
	}
	assert.Len(t, seen, 200)
}

func TestSeededAnchorsGiveReproducibleOutput(t *testing.T) {
	build := func() string {
		s, _ := newSession(t, allOn(), WithAnchorSource(idgen.NewSeededAnchors(7)))
		require.NoError(t, s.Section(SectionBlock{Title: "A", Content: "x"}))
		require.NoError(t, s.ImageCarousel(ImageCarouselBlock{Images: []Image{{Path: "a.png"}}}))
		require.NoError(t, s.Collapsible(CollapsibleBlock{Title: "B"}))
		return s.String()
	}
	assert.Equal(t, build(), build())
}

func TestFailedCallLeavesSessionUnchanged(t *testing.T) {
	s, _ := newSession(t, Options{})
	require.NoError(t, s.Section(SectionBlock{Title: "ok", Content: "x"}))
	before := s.String()

	err := s.Section(SectionBlock{Title: "bad", Content: "x", Color: "purple"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidColor))

	err = s.Table(TableBlock{Title: "bad", Rows: [][]string{{"1"}}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeShape))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, before, s.String())

	// still usable
	require.NoError(t, s.Section(SectionBlock{Title: "after", Content: "y"}))
	assert.Equal(t, 2, s.Len())
}

func TestEndToEnd(t *testing.T) {
	s, _ := newSession(t, allOn())
	require.NoError(t, s.Section(SectionBlock{Title: "title", Content: "body"}))
	require.NoError(t, s.Table(TableBlock{Header: []string{"a", "b"}, Rows: [][]string{{"1"}}}))
	require.NoError(t, s.Footer(FooterBlock{Message: "hi", GitHub: "g"}))

	path := filepath.Join(t.TempDir(), "out.html")
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	out := string(data)
	for _, want := range []string{"title", "1", "", "hi"} {
		assert.Contains(t, out, want)
	}

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	icons := findAll(doc, tagClass("a", "icons-sm"))
	require.Len(t, icons, 1)
	assert.True(t, hasClass(icons[0], "gh-ic"))
	assert.Equal(t, "g", attr(icons[0], "href"))

	rows := findAll(only(t, doc, tag("tbody")), tag("tr"))
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1", ""}, cellTexts(rows[0]))
}
