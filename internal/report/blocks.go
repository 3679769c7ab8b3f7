package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/verustcode/reportng/internal/markup"
	"github.com/verustcode/reportng/internal/palette"
	"github.com/verustcode/reportng/pkg/errors"
	"github.com/verustcode/reportng/pkg/idgen"
)

// Container styles. A sticky block has no top spacing so it reads as a
// continuation of the block before it.
const (
	stickyStyle     = "margin-top: 0; padding-top: 0;"
	sectionStyle    = "margin-top: 2rem; padding-top: 2.5rem; padding-bottom: 1rem;"
	defaultOverflow = "max-height: 70%; overflow: auto;"
	codeOverflow    = "max-height: 70%; overflow: auto; margin-bottom: 20px;"
	tableOverflow   = "overflow-x: auto; max-height: 70%; overflow: auto;"
	socialIconClass = "fa-2x white-text mr-md-4"
)

func containerStyle(sticky bool) string {
	if sticky {
		return stickyStyle
	}
	return sectionStyle
}

// jumbotron creates the container shared by most blocks
func jumbotron(class string, sticky bool) *markup.Node {
	return markup.El("div",
		markup.Class(markup.Join("jumbotron container context", class)),
		markup.Style(containerStyle(sticky)),
	)
}

// anchoredHeading is the h1 scanned by the navbar dropdown
func (s *Session) anchoredHeading(title string, attrs ...markup.Attr) (*markup.Node, string) {
	anchor := idgen.MakeAnchor(s.anchors, title)
	h := markup.El("h1", append(attrs, markup.ID(anchor))...).AppendText(title)
	return h, anchor
}

// SectionBlock is the main text container
type SectionBlock struct {
	Title   string
	Content string
	// RawHTML is appended after the content without escaping
	RawHTML string
	// KeepFormatting renders Content in a pre element instead of a paragraph
	KeepFormatting bool
	// Markdown renders Content as Markdown; it takes precedence over KeepFormatting
	Markdown bool
	// Color of the title, default primary
	Color string
	// TitleBackground colors the title background instead of its text
	TitleBackground bool
	// TextColor of the content, default primary
	TextColor string
	// Overflow is the CSS applied to the content container, default "max-height: 70%; overflow: auto;"
	Overflow string
	// UseH2Title renders the title as h2, which is not listed in navigation
	UseH2Title  bool
	Sticky      bool
	Attachments []Attachment
}

// Section appends a section
func (s *Session) Section(b SectionBlock) error {
	return s.add(KindSection, func(ordinal int) (*markup.Node, string, error) {
		color, err := palette.Parse(b.Color, palette.Primary)
		if err != nil {
			return nil, "", err
		}
		textColor, err := palette.Parse(b.TextColor, palette.Primary)
		if err != nil {
			return nil, "", err
		}
		var md string
		if b.Markdown {
			if md, err = renderMarkdown(b.Content); err != nil {
				return nil, "", errors.ErrInternal("failed to render markdown", err)
			}
		}
		att, err := s.renderAttachments(owner{KindSection, b.Title, ordinal}, b.Attachments)
		if err != nil {
			return nil, "", err
		}

		div := jumbotron("reportng-report-section-class", b.Sticky)

		var heading *markup.Node
		var anchor string
		if b.UseH2Title {
			heading = markup.El("h2").AppendText(b.Title)
		} else {
			prefix := "text"
			if b.TitleBackground {
				prefix = "bg"
			}
			heading, anchor = s.anchoredHeading(b.Title, markup.Class(prefix+"-"+color))
		}
		div.Append(heading)

		overflow := b.Overflow
		if overflow == "" {
			overflow = defaultOverflow
		}
		body := markup.El("div", markup.Class("container"), markup.Style(overflow))
		textClass := markup.Class("text-" + textColor)
		switch {
		case b.Markdown:
			body.Append(markup.El("div", markup.Class(markup.Join("reportng-markdown-class", "text-"+textColor))).Append(markup.Raw(md)))
		case b.KeepFormatting:
			body.Append(markup.El("pre", textClass).AppendText(b.Content))
		default:
			body.Append(markup.El("p", textClass).AppendText(b.Content))
		}
		if b.RawHTML != "" {
			body.Append(markup.Raw(b.RawHTML))
		}
		div.Append(body)

		att.place(div, heading)
		return div, anchor, nil
	})
}

// CollapsibleBlock is an accordion whose body is toggled client-side
type CollapsibleBlock struct {
	Title          string
	Content        string
	RawHTML        string
	KeepFormatting bool
	// Color of the header background, default "default"
	Color  string
	Sticky bool
}

// Collapsible appends a collapsible section
func (s *Session) Collapsible(b CollapsibleBlock) error {
	return s.add(KindCollapsible, func(int) (*markup.Node, string, error) {
		color, err := palette.Parse(b.Color, palette.Default)
		if err != nil {
			return nil, "", err
		}

		id := "reportng-collapse-" + s.anchors.Suffix(8)
		accordion := "accordion-" + id
		heading := "heading-" + id
		collapse := "collapse-" + id

		var content *markup.Node
		if b.KeepFormatting {
			content = markup.El("pre").AppendText(b.Content)
		} else {
			content = markup.El("p").AppendText(b.Content)
		}
		cardBody := markup.El("div", markup.Class("card-body")).Append(content)
		if b.RawHTML != "" {
			cardBody.Append(markup.Raw(b.RawHTML))
		}

		div := markup.El("div",
			markup.Class("container reportng-collapse-class"),
			markup.Style(containerStyle(b.Sticky)),
		).Append(
			markup.El("div", markup.Class("accordion"), markup.ID(accordion)).Append(
				markup.El("div", markup.Class("card")).Append(
					markup.El("div", markup.Class("card-header bg-"+color), markup.ID(heading)).Append(
						markup.El("h5", markup.Class("mb-0")).Append(
							markup.El("button",
								markup.Class("btn btn-link"),
								markup.A("type", "button"),
								markup.A("data-toggle", "collapse"),
								markup.A("data-target", "#"+collapse),
								markup.A("aria-expanded", "false"),
								markup.A("aria-controls", collapse),
							).AppendText(b.Title),
						),
					),
					markup.El("div",
						markup.Class("collapse"),
						markup.ID(collapse),
						markup.A("aria-labelledby", heading),
						markup.A("data-parent", "#"+accordion),
					).Append(cardBody),
				),
			),
		)
		return div, "", nil
	})
}

// Image is one carousel slide
type Image struct {
	Path    string `yaml:"path"`
	Caption string `yaml:"caption"`
}

// ImageCarouselBlock is a slideshow of images. It always sits directly
// under the previous block.
type ImageCarouselBlock struct {
	Images []Image
}

// ImageCarousel appends an image carousel. The first image is active and
// images without a caption get no caption overlay.
func (s *Session) ImageCarousel(b ImageCarouselBlock) error {
	return s.add(KindImageCarousel, func(int) (*markup.Node, string, error) {
		if len(b.Images) == 0 {
			return nil, "", errors.ErrShape("image carousel needs at least one image")
		}
		for i, img := range b.Images {
			if img.Path == "" {
				return nil, "", errors.ErrShape(fmt.Sprintf("image %d has no path", i))
			}
		}

		id := "carousel" + s.anchors.Suffix(8)
		target := "#" + id

		indicators := markup.El("ol", markup.Class("carousel-indicators"))
		inner := markup.El("div", markup.Class("carousel-inner"))
		for i, img := range b.Images {
			li := markup.El("li", markup.A("data-target", target), markup.A("data-slide-to", strconv.Itoa(i)))
			item := markup.El("div", markup.Class("carousel-item"))
			if i == 0 {
				li.SetAttr("class", "active")
				item.SetAttr("class", "carousel-item active")
			}
			indicators.Append(li)

			link := markup.El("a", markup.Href(img.Path), markup.A("target", "_blank")).Append(
				markup.El("img",
					markup.A("src", img.Path),
					markup.Class("img-fluid img-thumbnail rounded mx-auto d-block"),
				),
			)
			if img.Caption != "" {
				link.Append(markup.El("div", markup.Class("carousel-caption reportng-image-caption-class")).Append(
					markup.El("p").AppendText(img.Caption),
				))
			}
			inner.Append(item.Append(link))
		}

		control := func(dir, label string) *markup.Node {
			return markup.El("a",
				markup.Class("carousel-control-"+dir),
				markup.Href(target),
				markup.A("role", "button"),
				markup.A("data-slide", dir),
			).Append(
				markup.El("span", markup.Class("carousel-control-"+dir+"-icon"), markup.A("aria-hidden", "true")),
				markup.El("span", markup.Class("sr-only")).AppendText(label),
			)
		}

		div := markup.El("div",
			markup.Class("jumbotron jumbomargin container reportng-image-carousel-class"),
			markup.Style(stickyStyle),
		).Append(
			markup.El("div",
				markup.Class("carousel slide"),
				markup.ID(id),
				markup.A("data-interval", "false"),
				markup.A("data-ride", "carousel"),
			).Append(indicators, inner, control("prev", "Previous"), control("next", "Next")),
		)
		return div, "", nil
	})
}

// AsciinemaBlock embeds an asciinema recording
type AsciinemaBlock struct {
	Link string
	// Title adds a navigable heading when set
	Title       string
	Sticky      bool
	Attachments []Attachment
}

// Asciinema appends an asciinema player. The playback URL is resolved by
// requesting Link + ".json"; when that fails the raw link is embedded and a
// warning is logged.
func (s *Session) Asciinema(ctx context.Context, b AsciinemaBlock) error {
	if !s.opts.UseAsciinema {
		err := errors.ErrNotInitialized("asciinema", "UseAsciinema")
		s.metrics.RecordBlock(ctx, string(KindAsciinema), string(errors.ErrCodeNotInitialized))
		return err
	}
	if b.Link == "" {
		err := errors.ErrMissingField("link")
		s.metrics.RecordBlock(ctx, string(KindAsciinema), string(errors.ErrCodeMissingField))
		return err
	}

	// resolved before taking the session lock; the request may be slow
	src, err := s.resolver.FinalURL(ctx, b.Link+".json")
	if err != nil {
		s.log.Warn("Could not resolve asciinema URL, embedding the link as is",
			zap.String("link", b.Link),
			zap.Error(err),
		)
		src = b.Link
	}

	return s.add(KindAsciinema, func(ordinal int) (*markup.Node, string, error) {
		att, err := s.renderAttachments(owner{KindAsciinema, b.Title, ordinal}, b.Attachments)
		if err != nil {
			return nil, "", err
		}

		div := markup.El("div",
			markup.Class("jumbotron jumbomargin container reportng-asciinema-class"),
			markup.Style(containerStyle(b.Sticky)),
		)
		var heading *markup.Node
		var anchor string
		if b.Title != "" {
			heading, anchor = s.anchoredHeading(b.Title)
			div.Append(heading)
		}
		div.Append(markup.El("div", markup.Class("container"), markup.Style("text-align: center;")).Append(
			markup.El("asciinema-player", markup.A("src", src)),
			markup.El("a",
				markup.Class("btn btn-secondary btn-sm"),
				markup.A("role", "button"),
				markup.Href(b.Link),
				markup.A("target", "_blank"),
			).AppendText("Asciinema link"),
		))
		att.place(div, heading)
		return div, anchor, nil
	})
}

// CodeBlock is syntax highlighted source code
type CodeBlock struct {
	// Title adds a navigable heading when set
	Title   string
	Content string
	// Language is a highlight.js language hint such as "go" or "bash"
	Language    string
	Sticky      bool
	Attachments []Attachment
}

// Code appends a code block. The content is escaped, never interpreted.
func (s *Session) Code(b CodeBlock) error {
	return s.add(KindCode, func(ordinal int) (*markup.Node, string, error) {
		if !s.opts.HighlightCode {
			return nil, "", errors.ErrNotInitialized("code", "HighlightCode")
		}
		att, err := s.renderAttachments(owner{KindCode, b.Title, ordinal}, b.Attachments)
		if err != nil {
			return nil, "", err
		}

		div := jumbotron("reportng-code-section-class", b.Sticky)
		var heading *markup.Node
		var anchor string
		if b.Title != "" {
			heading, anchor = s.anchoredHeading(b.Title)
			div.Append(heading)
		}

		code := markup.El("code")
		if lang := strings.TrimSpace(b.Language); lang != "" {
			code.SetAttr("class", "language-"+lang)
		}
		div.Append(markup.El("div", markup.Class("container"), markup.Style(codeOverflow)).Append(
			markup.El("pre").Append(code.AppendText(b.Content)),
		))
		att.place(div, heading)
		return div, anchor, nil
	})
}

// CaptionsBlock is a line of centered text
type CaptionsBlock struct {
	Content string
	// TextColor default primary
	TextColor string
	RawHTML   string
	Sticky    bool
}

// Captions appends centered text
func (s *Session) Captions(b CaptionsBlock) error {
	return s.add(KindCaptions, func(int) (*markup.Node, string, error) {
		color, err := palette.Parse(b.TextColor, palette.Primary)
		if err != nil {
			return nil, "", err
		}
		div := markup.El("div",
			markup.Class("container text-center context reportng-captions-class"),
			markup.Style(containerStyle(b.Sticky)),
		).Append(markup.El("p", markup.Class("text-"+color)).AppendText(b.Content))
		if b.RawHTML != "" {
			div.Append(markup.Raw(b.RawHTML))
		}
		return div, "", nil
	})
}

// TableBlock is a table with a header row
type TableBlock struct {
	// Header must not be nil; its length fixes the number of cells per row
	Header []string
	Rows   [][]string
	// Title adds a navigable heading when set
	Title string
	// HeaderColor default dark
	HeaderColor string
	// ShowIndex adds a 1-based row number column
	ShowIndex   bool
	Sticky      bool
	Attachments []Attachment
}

// NormalizeRow pads row with empty cells or truncates it to exactly n cells
func NormalizeRow(row []string, n int) []string {
	out := make([]string, n)
	copy(out, row)
	return out
}

// Table appends a table. Rows shorter than the header are padded with
// empty cells and longer rows are truncated.
func (s *Session) Table(b TableBlock) error {
	return s.add(KindTable, func(ordinal int) (*markup.Node, string, error) {
		if b.Header == nil {
			return nil, "", errors.ErrShape("table header must be a list of columns")
		}
		headerColor, err := palette.Parse(b.HeaderColor, palette.Dark)
		if err != nil {
			return nil, "", err
		}
		att, err := s.renderAttachments(owner{KindTable, b.Title, ordinal}, b.Attachments)
		if err != nil {
			return nil, "", err
		}

		div := jumbotron("reportng-table-class", b.Sticky)
		var heading *markup.Node
		var anchor string
		if b.Title != "" {
			heading, anchor = s.anchoredHeading(b.Title)
			div.Append(heading)
		}

		table := markup.El("table",
			markup.Class("table table-striped display nowrap table-hover"),
			markup.Style("width: 90%"),
		)
		if len(b.Header) > 0 {
			tr := markup.El("tr")
			if b.ShowIndex {
				tr.Append(markup.El("th", markup.A("scope", "col")).AppendText("Index"))
			}
			for _, h := range b.Header {
				tr.Append(markup.El("th", markup.A("scope", "col")).AppendText(h))
			}
			table.Append(markup.El("thead", markup.Class("table-"+headerColor)).Append(tr))
		}

		tbody := markup.El("tbody")
		for i, row := range b.Rows {
			tr := markup.El("tr")
			if b.ShowIndex {
				tr.Append(markup.El("td").AppendText(strconv.Itoa(i + 1)))
			}
			for _, cell := range NormalizeRow(row, len(b.Header)) {
				tr.Append(markup.El("td").AppendText(cell))
			}
			tbody.Append(tr)
		}
		table.Append(tbody)

		div.Append(markup.El("div", markup.Class("container"), markup.Style(tableOverflow)).Append(table))
		att.place(div, heading)
		return div, anchor, nil
	})
}

// Card is one card of a CardsBlock
type Card struct {
	// Color default primary
	Color   string `yaml:"color"`
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
}

// CardsBlock is a responsive row of cards
type CardsBlock struct {
	// Cards must not be nil
	Cards []Card
	// BorderOnly colors the card border and text instead of the background
	BorderOnly bool
	// Title is shown above the cards but not listed in navigation
	Title       string
	Sticky      bool
	Attachments []Attachment
}

// Cards appends a group of cards
func (s *Session) Cards(b CardsBlock) error {
	return s.add(KindCards, func(ordinal int) (*markup.Node, string, error) {
		if b.Cards == nil {
			return nil, "", errors.ErrShape("cards must be a list of cards")
		}
		colors := make([]string, len(b.Cards))
		for i, c := range b.Cards {
			if c.Title == "" {
				return nil, "", errors.ErrShape(fmt.Sprintf("card %d has no title", i))
			}
			color, err := palette.Parse(c.Color, palette.Primary)
			if err != nil {
				return nil, "", err
			}
			colors[i] = color
		}
		att, err := s.renderAttachments(owner{KindCards, b.Title, ordinal}, b.Attachments)
		if err != nil {
			return nil, "", err
		}

		div := jumbotron("reportng-cards-class", b.Sticky)
		var heading *markup.Node
		if b.Title != "" {
			heading = markup.El("h1").AppendText(b.Title)
			div.Append(heading)
		}

		row := markup.El("div", markup.Class("row justify-content-center"))
		for i, c := range b.Cards {
			cardClass := "card text-white bg-" + colors[i] + " mb-3"
			bodyClass := "card-body"
			if b.BorderOnly {
				cardClass = "card border-" + colors[i] + " mb-3"
				bodyClass = "card-body text-" + colors[i]
			}
			row.Append(markup.El("div",
				markup.Class(cardClass),
				markup.Style("max-width: 18rem; margin-right: 1rem;"),
			).Append(
				markup.El("div", markup.Class("card-header")).AppendText(c.Title),
				markup.El("div", markup.Class(bodyClass)).Append(
					markup.El("p", markup.Class("card-text")).AppendText(c.Message),
				),
			))
		}
		div.Append(row)
		att.place(div, heading)
		return div, "", nil
	})
}

// FooterBlock is the page footer. At most one social link is rendered: the
// first set of Twitter, GitHub, LinkedIn and Email in that order.
type FooterBlock struct {
	Message  string
	Twitter  string
	GitHub   string
	LinkedIn string
	// Email gets a mailto: prefix when it has none
	Email   string
	RawHTML string
}

// socialLink returns the single icon link rendered in the footer
func (b FooterBlock) socialLink() *markup.Node {
	link := func(class, href, icon string, external bool) *markup.Node {
		a := markup.El("a", markup.Class(class), markup.Href(href))
		if external {
			a.SetAttr("target", "_blank")
		}
		return a.Append(markup.El("i", markup.Class(icon+" "+socialIconClass)))
	}
	switch {
	case b.Twitter != "":
		return link("icons-sm tw-ic", b.Twitter, "fab fa-twitter", true)
	case b.GitHub != "":
		return link("icons-sm gh-ic", b.GitHub, "fab fa-github", true)
	case b.LinkedIn != "":
		return link("icons-sm li-ic", b.LinkedIn, "fab fa-linkedin", true)
	case b.Email != "":
		href := b.Email
		if !strings.HasPrefix(href, "mailto:") {
			href = "mailto:" + href
		}
		return link("icons-sm", href, "fas fa-at", false)
	}
	return nil
}

// Footer appends the footer
func (s *Session) Footer(b FooterBlock) error {
	return s.add(KindFooter, func(int) (*markup.Node, string, error) {
		container := markup.El("div", markup.Class("container")).Append(
			markup.El("div", markup.Class("row")).Append(
				markup.El("div", markup.Class("mb-4")).Append(
					b.socialLink(),
					markup.El("span", markup.Style("font-size: 125%;")).AppendText(b.Message),
				),
			),
		)
		if b.RawHTML != "" {
			container.Append(markup.Raw(b.RawHTML))
		}
		return markup.El("footer", markup.Class("page-footer reportng-footer-class")).Append(container), "", nil
	})
}

// ListGroupBlock is a titled list of items
type ListGroupBlock struct {
	// Title is required
	Title string
	// Items must not be nil
	Items       []string
	RawHTML     string
	Sticky      bool
	Attachments []Attachment
}

// ListGroup appends a list group
func (s *Session) ListGroup(b ListGroupBlock) error {
	return s.add(KindListGroup, func(ordinal int) (*markup.Node, string, error) {
		if b.Title == "" {
			return nil, "", errors.ErrShape("list group needs a title")
		}
		if b.Items == nil {
			return nil, "", errors.ErrShape("list group items must be a list")
		}
		att, err := s.renderAttachments(owner{KindListGroup, b.Title, ordinal}, b.Attachments)
		if err != nil {
			return nil, "", err
		}

		div := jumbotron("reportng-list-group-class", b.Sticky)
		heading, anchor := s.anchoredHeading(b.Title)
		div.Append(heading)

		ul := markup.El("ul", markup.Class("list-group"))
		for _, item := range b.Items {
			ul.Append(markup.El("li",
				markup.Class("list-group-item d-flex justify-content-between align-items-center text-primary"),
			).AppendText(item))
		}
		div.Append(ul)
		if b.RawHTML != "" {
			div.Append(markup.Raw(b.RawHTML))
		}
		att.place(div, heading)
		return div, anchor, nil
	})
}

// CustomHTML appends caller supplied markup without escaping
func (s *Session) CustomHTML(html string) error {
	return s.add(KindCustomHTML, func(int) (*markup.Node, string, error) {
		return markup.El("div",
			markup.Class("jumbotron container context reportng-custom-html-class"),
			markup.Style("padding: 0;"),
		).Append(markup.Raw(html)), "", nil
	})
}
