package report

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/net/html"

	"github.com/verustcode/reportng/pkg/idgen"
)

// fakeResolver returns a fixed URL or error and records requested links
type fakeResolver struct {
	mu    sync.Mutex
	final string
	err   error
	calls []string
}

func (f *fakeResolver) FinalURL(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	return f.final, f.err
}

func offline() *fakeResolver {
	return &fakeResolver{err: stderrors.New("dial tcp: no route to host")}
}

// allOn enables every feature toggle
func allOn() Options {
	return Options{
		ReportName:      "Weekly scan",
		Brand:           "acme",
		UseAsciinema:    true,
		HighlightCode:   true,
		ShowProgressBar: true,
		ShowSearch:      true,
	}
}

// newSession creates a session with counter anchors, an offline resolver
// and an observed logger
func newSession(t *testing.T, opts Options, extra ...Option) (*Session, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	base := []Option{
		WithLogger(zap.New(core)),
		WithAnchorSource(idgen.NewCounterAnchors()),
		WithResolver(offline()),
	}
	s, err := New(opts, append(base, extra...)...)
	require.NoError(t, err)
	return s, logs
}

func parse(t *testing.T, s *Session) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s.String()))
	require.NoError(t, err)
	return doc
}

// findAll returns the descendants of root matching in document order
func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func tag(name string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == name }
}

func withClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func tagClass(name, class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == name && hasClass(n, class) }
}

// only returns the single element matching in doc
func only(t *testing.T, doc *html.Node, match func(*html.Node) bool) *html.Node {
	t.Helper()
	found := findAll(doc, match)
	require.Len(t, found, 1)
	return found[0]
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func cellTexts(row *html.Node) []string {
	var out []string
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			out = append(out, textOf(c))
		}
	}
	return out
}
