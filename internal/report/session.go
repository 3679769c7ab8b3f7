// Package report assembles single-page HTML reports from content blocks.
//
// A Session holds the head scaffold and an ordered list of rendered blocks.
// Every block method validates its input before anything is recorded, so a
// failed call leaves the session unchanged and usable. Render and Save
// serialize the current state and can be called any number of times.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/verustcode/reportng/consts"
	"github.com/verustcode/reportng/internal/assets"
	"github.com/verustcode/reportng/internal/fetch"
	"github.com/verustcode/reportng/internal/markup"
	"github.com/verustcode/reportng/internal/palette"
	"github.com/verustcode/reportng/pkg/errors"
	"github.com/verustcode/reportng/pkg/idgen"
	"github.com/verustcode/reportng/pkg/logger"
	"github.com/verustcode/reportng/pkg/telemetry"
)

// Kind identifies a block type
type Kind string

// Block kinds
const (
	KindSection       Kind = "section"
	KindCollapsible   Kind = "collapsible_section"
	KindImageCarousel Kind = "image_carousel"
	KindAsciinema     Kind = "asciinema"
	KindCode          Kind = "code"
	KindCaptions      Kind = "captions"
	KindTable         Kind = "table"
	KindCards         Kind = "cards"
	KindFooter        Kind = "footer"
	KindListGroup     Kind = "list_group"
	KindCustomHTML    Kind = "custom_html"
)

// BlockInfo describes a recorded block
type BlockInfo struct {
	Kind Kind
	// Anchor is the heading id, empty for blocks not shown in navigation
	Anchor string
}

// block is one recorded fragment
type block struct {
	info BlockInfo
	node *markup.Node
}

// Session accumulates blocks for one report
type Session struct {
	id   string
	opts Options
	lang string

	assets   assets.Table
	anchors  idgen.AnchorSource
	resolver URLResolver
	metrics  *telemetry.Metrics
	log      *zap.Logger

	head *markup.Node
	nav  []*markup.Node

	mu     sync.Mutex
	blocks []block
}

// New creates a session and builds its head scaffold
func New(opts Options, options ...Option) (*Session, error) {
	s := &Session{
		id: idgen.NewSessionID(),
	}
	for _, o := range options {
		o(s)
	}
	s.log = logger.WithSession(s.log, s.id)
	if s.assets == nil {
		s.assets = assets.Default()
	}
	if s.anchors == nil {
		s.anchors = idgen.NewRandomAnchors()
	}
	if s.resolver == nil {
		s.resolver = fetch.New(fetch.Options{})
	}
	if s.metrics == nil {
		s.metrics = telemetry.GetMetrics()
	}

	if opts.Theme == "" {
		opts.Theme = consts.DefaultTheme
	}
	if opts.SearchHighlightColor == "" {
		opts.SearchHighlightColor = consts.DefaultSearchHighlightColor
	}
	navbar, err := palette.Parse(opts.NavbarColor, palette.Primary)
	if err != nil {
		return nil, err
	}
	opts.NavbarColor = navbar

	if opts.Language == "" {
		opts.Language = consts.DefaultLanguage
	}
	tag, err := language.Parse(opts.Language)
	if err != nil {
		return nil, errors.ErrValidation(fmt.Sprintf("invalid language %q", opts.Language))
	}
	s.lang = tag.String()

	if n := utf8.RuneCountInString(opts.ReportName); n > consts.MaxReportNameLength {
		s.log.Warn("Report name is too long and can break the navbar, truncating",
			zap.Int("length", n),
			zap.Int("max", consts.MaxReportNameLength),
		)
		runes := []rune(opts.ReportName)
		opts.ReportName = string(runes[:consts.MaxReportNameLength-3]) + "..."
	}

	s.opts = opts
	s.head = s.buildHead()
	s.nav = s.buildNavbar()

	s.log.Debug("Report session created",
		zap.String("name", opts.ReportName),
		zap.String("theme", opts.Theme),
		zap.Bool("asciinema", opts.UseAsciinema),
		zap.Bool("highlight_code", opts.HighlightCode),
	)
	return s, nil
}

// ID returns the session identifier used in logs and spans
func (s *Session) ID() string {
	return s.id
}

// Options returns the effective options after defaults and truncation
func (s *Session) Options() Options {
	return s.opts
}

// Len returns the number of recorded blocks
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blocks)
}

// Blocks returns the recorded blocks in document order
func (s *Session) Blocks() []BlockInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]BlockInfo, len(s.blocks))
	for i, b := range s.blocks {
		out[i] = b.info
	}
	return out
}

// Anchors returns the ids of every navigable heading in document order
func (s *Session) Anchors() []string {
	var out []string
	for _, b := range s.Blocks() {
		if b.Anchor != "" {
			out = append(out, b.Anchor)
		}
	}
	return out
}

// add builds a block and records it. build runs validation first and must
// not touch session state; nothing is recorded when it fails.
func (s *Session) add(kind Kind, build func(ordinal int) (*markup.Node, string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, anchor, err := build(len(s.blocks))
	if err != nil {
		code := string(errors.ErrCodeInternal)
		if appErr, ok := errors.AsAppError(err); ok {
			code = string(appErr.Code)
		}
		s.metrics.RecordBlock(context.Background(), string(kind), code)
		s.log.Debug("Block rejected",
			zap.String(logger.FieldBlockKind, string(kind)),
			zap.Error(err),
		)
		return err
	}

	s.blocks = append(s.blocks, block{
		info: BlockInfo{Kind: kind, Anchor: anchor},
		node: node,
	})
	s.metrics.RecordBlock(context.Background(), string(kind), "")
	s.log.Debug("Block appended",
		zap.String(logger.FieldBlockKind, string(kind)),
		zap.String("anchor", anchor),
		zap.Int("position", len(s.blocks)-1),
	)
	return nil
}

// Render writes the complete document to w
func (s *Session) Render(w io.Writer) error {
	start := time.Now()

	s.mu.Lock()
	blocks := make([]block, len(s.blocks))
	copy(blocks, s.blocks)
	s.mu.Unlock()

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n")
	buf.WriteString(`<html lang="` + s.lang + `">`)
	if err := markup.Render(&buf, s.head); err != nil {
		return errors.ErrInternal("failed to render head", err)
	}
	buf.WriteString("<body>")
	for _, n := range s.nav {
		if err := markup.Render(&buf, n); err != nil {
			return errors.ErrInternal("failed to render navbar", err)
		}
	}
	for i, b := range blocks {
		buf.WriteString("\n")
		if err := markup.Render(&buf, b.node); err != nil {
			return errors.ErrInternal(fmt.Sprintf("failed to render block %d (%s)", i, b.info.Kind), err)
		}
	}
	buf.WriteString("\n</body></html>\n")

	s.metrics.RecordRender(context.Background(), time.Since(start).Seconds(), int64(buf.Len()))

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.ErrIO("failed to write report", err)
	}
	return nil
}

// String returns the rendered document, or "" if rendering fails
func (s *Session) String() string {
	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		s.log.Error("Failed to render report", zap.Error(err))
		return ""
	}
	return buf.String()
}

// Save renders the document and writes it to path, replacing any existing
// file. It can be called repeatedly; each call writes the current state.
func (s *Session) Save(path string) error {
	_, span := telemetry.StartSpan(context.Background(), "report.save",
		telemetry.WithSessionAttributes(s.id, s.opts.ReportName))
	defer span.End()

	abs, err := filepath.Abs(path)
	if err != nil {
		err = errors.ErrIO("invalid output path "+path, err)
		telemetry.SetSpanError(span, err)
		return err
	}

	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		telemetry.SetSpanError(span, err)
		return err
	}

	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		err = errors.ErrIO("failed to save report to "+abs, err)
		telemetry.SetSpanError(span, err)
		return err
	}

	blocks := s.Len()
	telemetry.SetSpanAttributes(span,
		telemetry.AttrOutputPath.String(abs),
		telemetry.AttrBlockCount.Int(blocks),
		telemetry.AttrBytes.Int(buf.Len()),
	)
	telemetry.SetSpanOK(span)

	s.log.Info("Report saved",
		zap.String("path", abs),
		zap.Int("blocks", blocks),
		zap.Int("bytes", buf.Len()),
	)
	return nil
}
