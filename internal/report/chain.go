package report

import "context"

// Chain is a fluent wrapper around a Session. The first failing call is
// remembered and every later call becomes a no-op.
//
//	err := s.Chain(ctx).
//		Section(report.SectionBlock{Title: "Summary", Content: body}).
//		Table(report.TableBlock{Header: cols, Rows: rows}).
//		Footer(report.FooterBlock{Message: "done"}).
//		Save("report.html")
type Chain struct {
	s   *Session
	ctx context.Context
	err error
}

// Chain returns a fluent wrapper. ctx is used for blocks that make
// network requests.
func (s *Session) Chain(ctx context.Context) *Chain {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Chain{s: s, ctx: ctx}
}

func (c *Chain) do(fn func() error) *Chain {
	if c.err == nil {
		c.err = fn()
	}
	return c
}

// Err returns the first error encountered
func (c *Chain) Err() error { return c.err }

// Session returns the wrapped session
func (c *Chain) Session() *Session { return c.s }

func (c *Chain) Section(b SectionBlock) *Chain {
	return c.do(func() error { return c.s.Section(b) })
}

func (c *Chain) Collapsible(b CollapsibleBlock) *Chain {
	return c.do(func() error { return c.s.Collapsible(b) })
}

func (c *Chain) ImageCarousel(b ImageCarouselBlock) *Chain {
	return c.do(func() error { return c.s.ImageCarousel(b) })
}

func (c *Chain) Asciinema(b AsciinemaBlock) *Chain {
	return c.do(func() error { return c.s.Asciinema(c.ctx, b) })
}

func (c *Chain) Code(b CodeBlock) *Chain {
	return c.do(func() error { return c.s.Code(b) })
}

func (c *Chain) Captions(b CaptionsBlock) *Chain {
	return c.do(func() error { return c.s.Captions(b) })
}

func (c *Chain) Table(b TableBlock) *Chain {
	return c.do(func() error { return c.s.Table(b) })
}

func (c *Chain) Cards(b CardsBlock) *Chain {
	return c.do(func() error { return c.s.Cards(b) })
}

func (c *Chain) Footer(b FooterBlock) *Chain {
	return c.do(func() error { return c.s.Footer(b) })
}

func (c *Chain) ListGroup(b ListGroupBlock) *Chain {
	return c.do(func() error { return c.s.ListGroup(b) })
}

func (c *Chain) CustomHTML(html string) *Chain {
	return c.do(func() error { return c.s.CustomHTML(html) })
}

// Save writes the report unless an earlier call failed, and returns the
// first error
func (c *Chain) Save(path string) error {
	c.do(func() error { return c.s.Save(path) })
	return c.err
}
