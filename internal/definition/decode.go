package definition

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/verustcode/reportng/internal/report"
	"github.com/verustcode/reportng/pkg/errors"
)

// Block bodies as written in YAML. Pointer flags have a default that
// differs from the zero value.

type sectionDef struct {
	Title           string    `yaml:"title"`
	Content         string    `yaml:"content"`
	RawHTML         string    `yaml:"raw_html"`
	KeepFormatting  *bool     `yaml:"keep_formatting"`
	Markdown        bool      `yaml:"markdown"`
	Color           string    `yaml:"color"`
	TitleBackground bool      `yaml:"title_background"`
	TextColor       string    `yaml:"text_color"`
	Overflow        string    `yaml:"overflow"`
	H2Title         bool      `yaml:"h2_title"`
	Sticky          bool      `yaml:"sticky"`
	Attachments     yaml.Node `yaml:"attachments"`
}

type collapsibleDef struct {
	Title          string `yaml:"title"`
	Content        string `yaml:"content"`
	RawHTML        string `yaml:"raw_html"`
	KeepFormatting *bool  `yaml:"keep_formatting"`
	Color          string `yaml:"color"`
	Sticky         bool   `yaml:"sticky"`
}

type carouselDef struct {
	Images yaml.Node `yaml:"images"`
}

type asciinemaDef struct {
	Link        string    `yaml:"link"`
	Title       string    `yaml:"title"`
	Sticky      bool      `yaml:"sticky"`
	Attachments yaml.Node `yaml:"attachments"`
}

type codeDef struct {
	Title       string    `yaml:"title"`
	Content     string    `yaml:"content"`
	Language    string    `yaml:"language"`
	Sticky      *bool     `yaml:"sticky"`
	Attachments yaml.Node `yaml:"attachments"`
}

type captionsDef struct {
	Content   string `yaml:"content"`
	TextColor string `yaml:"text_color"`
	RawHTML   string `yaml:"raw_html"`
	Sticky    *bool  `yaml:"sticky"`
}

type tableDef struct {
	Title       string    `yaml:"title"`
	Header      yaml.Node `yaml:"header"`
	Rows        yaml.Node `yaml:"rows"`
	HeaderColor string    `yaml:"header_color"`
	ShowIndex   bool      `yaml:"show_index"`
	Sticky      bool      `yaml:"sticky"`
	Attachments yaml.Node `yaml:"attachments"`
}

type cardsDef struct {
	Title       string    `yaml:"title"`
	Cards       yaml.Node `yaml:"cards"`
	BorderOnly  bool      `yaml:"border_only"`
	Sticky      bool      `yaml:"sticky"`
	Attachments yaml.Node `yaml:"attachments"`
}

type footerDef struct {
	Message  string `yaml:"message"`
	Twitter  string `yaml:"twitter"`
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
	Email    string `yaml:"email"`
	RawHTML  string `yaml:"raw_html"`
}

type listGroupDef struct {
	Title       string    `yaml:"title"`
	Items       yaml.Node `yaml:"items"`
	RawHTML     string    `yaml:"raw_html"`
	Sticky      bool      `yaml:"sticky"`
	Attachments yaml.Node `yaml:"attachments"`
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// decodeBody decodes a block mapping, reporting unknown keys and type
// mismatches as shape errors
func decodeBody(kind report.Kind, n *yaml.Node, out any) error {
	if n.Kind != yaml.MappingNode {
		return errors.ErrShape(fmt.Sprintf("%s must be a mapping", kind))
	}
	if err := strictDecode(n, out); err != nil {
		return errors.Wrap(errors.ErrCodeShape, fmt.Sprintf("invalid %s", kind), err)
	}
	return nil
}

// decodeBlock turns a block body into the value passed to the session
func decodeBlock(kind report.Kind, n *yaml.Node) (any, error) {
	switch kind {
	case report.KindSection:
		var d sectionDef
		if err := decodeBody(kind, n, &d); err != nil {
			return nil, err
		}
		att, err := decodeAttachments(&d.Attachments)
		if err != nil {
			return nil, err
		}
		return report.SectionBlock{
			Title:           d.Title,
			Content:         d.Content,
			RawHTML:         d.RawHTML,
			KeepFormatting:  boolOr(d.KeepFormatting, true),
			Markdown:        d.Markdown,
			Color:           d.Color,
			TitleBackground: d.TitleBackground,
			TextColor:       d.TextColor,
			Overflow:        d.Overflow,
			UseH2Title:      d.H2Title,
			Sticky:          d.Sticky,
			Attachments:     att,
		}, nil

	case report.KindCollapsible:
		var d collapsibleDef
		if err := decodeBody(kind, n, &d); err != nil {
			return nil, err
		}
		return report.CollapsibleBlock{
			Title:          d.Title,
			Content:        d.Content,
			RawHTML:        d.RawHTML,
			KeepFormatting: boolOr(d.KeepFormatting, true),
			Color:          d.Color,
			Sticky:         d.Sticky,
		}, nil

	case report.KindImageCarousel:
		var d carouselDef
		if err := decodeBody(kind, n, &d); err != nil {
			return nil, err
		}
		images, err := decodeImages(&d.Images)
		if err != nil {
			return nil, err
		}
		return report.ImageCarouselBlock{Images: images}, nil

	case report.KindAsciinema:
		var d asciinemaDef
		if err := decodeBody(kind, n, &d); err != nil {
			return nil, err
		}
		att, err := decodeAttachments(&d.Attachments)
		if err != nil {
			return nil, err
		}
		return report.AsciinemaBlock{Link: d.Link, Title: d.Title, Sticky: d.Sticky, Attachments: att}, nil

	case report.KindCode:
		var d codeDef
		if err := decodeBody(kind, n, &d); err != nil {
			return nil, err
		}
		att, err := decodeAttachments(&d.Attachments)
		if err != nil {
			return nil, err
		}
		return report.CodeBlock{
			Title:       d.Title,
			Content:     d.Content,
			Language:    d.Language,
			Sticky:      boolOr(d.Sticky, true),
			Attachments: att,
		}, nil

	case report.KindCaptions:
		var d captionsDef
		if err := decodeBody(kind, n, &d); err != nil {
			return nil, err
		}
		return report.CaptionsBlock{
			Content:   d.Content,
			TextColor: d.TextColor,
			RawHTML:   d.RawHTML,
			Sticky:    boolOr(d.Sticky, true),
		}, nil

	case report.KindTable:
		var d tableDef
		if err := decodeBody(kind, n, &d); err != nil {
			return nil, err
		}
		header, err := stringList(&d.Header, "header")
		if err != nil {
			return nil, err
		}
		if header == nil {
			return nil, errors.ErrShape("header must be a list of column names")
		}
		rows, err := decodeRows(&d.Rows)
		if err != nil {
			return nil, err
		}
		att, err := decodeAttachments(&d.Attachments)
		if err != nil {
			return nil, err
		}
		return report.TableBlock{
			Title:       d.Title,
			Header:      header,
			Rows:        rows,
			HeaderColor: d.HeaderColor,
			ShowIndex:   d.ShowIndex,
			Sticky:      d.Sticky,
			Attachments: att,
		}, nil

	case report.KindCards:
		var d cardsDef
		if err := decodeBody(kind, n, &d); err != nil {
			return nil, err
		}
		cards, err := decodeCards(&d.Cards)
		if err != nil {
			return nil, err
		}
		att, err := decodeAttachments(&d.Attachments)
		if err != nil {
			return nil, err
		}
		return report.CardsBlock{
			Title:       d.Title,
			Cards:       cards,
			BorderOnly:  d.BorderOnly,
			Sticky:      d.Sticky,
			Attachments: att,
		}, nil

	case report.KindFooter:
		var d footerDef
		if err := decodeBody(kind, n, &d); err != nil {
			return nil, err
		}
		return report.FooterBlock{
			Message:  d.Message,
			Twitter:  d.Twitter,
			GitHub:   d.GitHub,
			LinkedIn: d.LinkedIn,
			Email:    d.Email,
			RawHTML:  d.RawHTML,
		}, nil

	case report.KindListGroup:
		var d listGroupDef
		if err := decodeBody(kind, n, &d); err != nil {
			return nil, err
		}
		items, err := stringList(&d.Items, "items")
		if err != nil {
			return nil, err
		}
		if items == nil {
			return nil, errors.ErrShape("items must be a list")
		}
		att, err := decodeAttachments(&d.Attachments)
		if err != nil {
			return nil, err
		}
		return report.ListGroupBlock{
			Title:       d.Title,
			Items:       items,
			RawHTML:     d.RawHTML,
			Sticky:      d.Sticky,
			Attachments: att,
		}, nil

	case report.KindCustomHTML:
		if n.Kind != yaml.ScalarNode {
			return nil, errors.ErrShape("custom_html must be a string of markup")
		}
		return n.Value, nil
	}
	return nil, errors.ErrShape(fmt.Sprintf("unknown block kind %q", kind))
}

// stringList decodes a sequence of scalars. An absent node yields nil.
func stringList(n *yaml.Node, field string) ([]string, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errors.ErrShape(fmt.Sprintf("%s must be a list", field))
	}
	out := make([]string, 0, len(n.Content))
	for i, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, errors.ErrShape(fmt.Sprintf("%s[%d] must be a plain value", field, i))
		}
		out = append(out, item.Value)
	}
	return out, nil
}

func decodeRows(n *yaml.Node) ([][]string, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errors.ErrShape("rows must be a list of rows")
	}
	rows := make([][]string, 0, len(n.Content))
	for i, r := range n.Content {
		if r.Kind != yaml.SequenceNode {
			return nil, errors.ErrShape(fmt.Sprintf("rows[%d] must be a list of cells", i))
		}
		row, err := stringList(r, fmt.Sprintf("rows[%d]", i))
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeImages accepts a path or a {path, caption} mapping per image
func decodeImages(n *yaml.Node) ([]report.Image, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errors.ErrShape("images must be a list")
	}
	images := make([]report.Image, 0, len(n.Content))
	for i, item := range n.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			images = append(images, report.Image{Path: item.Value})
		case yaml.MappingNode:
			var img report.Image
			if err := strictDecode(item, &img); err != nil {
				return nil, errors.Wrap(errors.ErrCodeShape, fmt.Sprintf("invalid images[%d]", i), err)
			}
			images = append(images, img)
		default:
			return nil, errors.ErrShape(fmt.Sprintf("images[%d] must be a path or a mapping", i))
		}
	}
	return images, nil
}

func decodeCards(n *yaml.Node) ([]report.Card, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errors.ErrShape("cards must be a list")
	}
	cards := make([]report.Card, 0, len(n.Content))
	for i, item := range n.Content {
		if item.Kind != yaml.MappingNode {
			return nil, errors.ErrShape(fmt.Sprintf("cards[%d] must be a mapping", i))
		}
		var c report.Card
		if err := strictDecode(item, &c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeShape, fmt.Sprintf("invalid cards[%d]", i), err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// singleKey unpacks a mapping with exactly one entry
func singleKey(n *yaml.Node, what string) (string, *yaml.Node, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, errors.ErrShape(fmt.Sprintf("line %d: %s must be a mapping with a single key", n.Line, what))
	}
	return n.Content[0].Value, n.Content[1], nil
}
