package report

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/verustcode/reportng/consts"
	"github.com/verustcode/reportng/internal/markup"
	"github.com/verustcode/reportng/internal/palette"
	"github.com/verustcode/reportng/pkg/errors"
	"github.com/verustcode/reportng/pkg/idgen"
)

// Attachment is an add-on widget rendered with a block.
// It is one of Reference, Alert, Badges or Modal.
type Attachment interface {
	attachment()
}

// Reference is a button linking to an external source
type Reference struct {
	Color string `yaml:"color"`
	Link  string `yaml:"link"`
}

// Alert is a dismissable message box
type Alert struct {
	Color   string `yaml:"color"`
	Message string `yaml:"message"`
}

// Badge is a small colored label
type Badge struct {
	Color string `yaml:"color"`
	Text  string `yaml:"text"`
}

// Badges is an ordered list of badges rendered in one row
type Badges []Badge

// Modal is a button opening a dialog box
type Modal struct {
	Button  string `yaml:"button"`
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
}

func (Reference) attachment() {}
func (Alert) attachment()     {}
func (Badges) attachment()    {}
func (Modal) attachment()     {}

// requireColor validates a color that has no default
func requireColor(c string) (string, error) {
	if !palette.IsValid(c) {
		return "", errors.ErrInvalidColor(c, palette.Accepted())
	}
	return palette.Canonical(palette.Color(c)), nil
}

// owner identifies the block attachments are rendered for
type owner struct {
	kind    Kind
	title   string
	ordinal int
}

// modalID derives the dialog id from the owning block and the modal's
// position among the block's modals. It is deterministic so the trigger
// button and the dialog can refer to each other.
func (o owner) modalID(n int) string {
	base := idgen.AnchorBase(o.title)
	if base == "" {
		base = string(o.kind)
	}
	id := fmt.Sprintf("reportng-modal-%s-%d", base, o.ordinal)
	if n > 0 {
		id += fmt.Sprintf("-%d", n+1)
	}
	return id
}

// longBadge is a badge whose text exceeds consts.MaxBadgeLength
type longBadge struct {
	text   string
	length int
}

// renderedAttachments separates widgets placed in the heading from the rest
type renderedAttachments struct {
	heading    []*markup.Node
	body       []*markup.Node
	log        *zap.Logger
	longBadges []longBadge
}

// place appends rendered attachments to a block. Heading widgets fall back
// to the container when the block has no heading. Long badge warnings are
// logged here, once the block itself is complete.
func (r renderedAttachments) place(container, heading *markup.Node) {
	if heading != nil {
		heading.Append(r.heading...)
	} else {
		container.Append(r.heading...)
	}
	container.Append(r.body...)

	for _, b := range r.longBadges {
		r.log.Warn("Badge text is long and may not display well",
			zap.String("text", b.text),
			zap.Int("length", b.length),
			zap.Int("max", consts.MaxBadgeLength),
		)
	}
}

// renderAttachments validates and renders every attachment, dispatching on
// the variant. No node is returned unless all attachments are valid.
func (s *Session) renderAttachments(o owner, list []Attachment) (renderedAttachments, error) {
	out := renderedAttachments{log: s.log}
	modals := 0
	for i, a := range list {
		switch v := a.(type) {
		case Reference:
			n, err := referenceButton(v)
			if err != nil {
				return renderedAttachments{}, err
			}
			out.heading = append(out.heading, n)
		case Alert:
			n, err := alertBox(v)
			if err != nil {
				return renderedAttachments{}, err
			}
			out.body = append(out.body, n)
		case Badges:
			n, long, err := badgeList(v)
			if err != nil {
				return renderedAttachments{}, err
			}
			out.body = append(out.body, n)
			out.longBadges = append(out.longBadges, long...)
		case Modal:
			nodes, err := modal(o.modalID(modals), v)
			if err != nil {
				return renderedAttachments{}, err
			}
			modals++
			out.body = append(out.body, nodes...)
		case nil:
			return renderedAttachments{}, errors.ErrShape(fmt.Sprintf("attachment %d is nil", i))
		default:
			return renderedAttachments{}, errors.ErrShape(fmt.Sprintf("attachment %d has unsupported type %T", i, a))
		}
	}
	return out, nil
}

func referenceButton(r Reference) (*markup.Node, error) {
	if r.Color == "" || r.Link == "" {
		return nil, errors.ErrShape("reference needs both a color and a link")
	}
	color, err := requireColor(r.Color)
	if err != nil {
		return nil, err
	}
	return markup.El("a",
		markup.Class("btn btn-"+color+" btn-sm float-right reportng-reference-class"),
		markup.Href(r.Link),
		markup.A("role", "button"),
		markup.A("target", "_blank"),
		markup.A("data-toggle", "tooltip"),
		markup.A("title", "Reference"),
	).Append(markup.El("i", markup.Class("fas fa-external-link-alt"))), nil
}

func alertBox(a Alert) (*markup.Node, error) {
	if a.Color == "" || a.Message == "" {
		return nil, errors.ErrShape("alert needs both a color and a message")
	}
	color, err := requireColor(a.Color)
	if err != nil {
		return nil, err
	}
	return markup.El("div",
		markup.Class("alert alert-"+color+" alert-dismissible fade show reportng-alert-class"),
		markup.A("role", "alert"),
	).AppendText(a.Message).Append(
		markup.El("button",
			markup.A("type", "button"),
			markup.Class("close"),
			markup.A("data-dismiss", "alert"),
			markup.A("aria-label", "Close"),
		).Append(markup.El("span", markup.A("aria-hidden", "true")).AppendText("×")),
	), nil
}

// badgeList renders badges in order. Oversized text is reported back for
// a warning, not rejected.
func badgeList(badges Badges) (*markup.Node, []longBadge, error) {
	div := markup.El("div", markup.Class("reportng-badges-class"))
	var long []longBadge
	for _, b := range badges {
		color, err := requireColor(b.Color)
		if err != nil {
			return nil, nil, err
		}
		if n := utf8.RuneCountInString(b.Text); n > consts.MaxBadgeLength {
			long = append(long, longBadge{text: b.Text, length: n})
		}
		div.Append(markup.El("span",
			markup.Class("badge badge-pill badge-"+color),
			markup.Style("margin-right: 0.25rem;"),
		).AppendText(b.Text))
	}
	return div, long, nil
}

func modal(id string, m Modal) ([]*markup.Node, error) {
	var missing []string
	if m.Button == "" {
		missing = append(missing, "button")
	}
	if m.Title == "" {
		missing = append(missing, "title")
	}
	if m.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return nil, errors.ErrMissingField(missing...)
	}

	titleID := id + "-title"
	trigger := markup.El("button",
		markup.A("type", "button"),
		markup.Class("btn btn-primary btn-sm reportng-modal-button-class"),
		markup.A("data-toggle", "modal"),
		markup.A("data-target", "#"+id),
	).AppendText(m.Button)

	dialog := markup.El("div",
		markup.Class("modal fade"),
		markup.ID(id),
		markup.A("tabindex", "-1"),
		markup.A("role", "dialog"),
		markup.A("aria-labelledby", titleID),
		markup.A("aria-hidden", "true"),
	).Append(
		markup.El("div", markup.Class("modal-dialog modal-lg"), markup.A("role", "document")).Append(
			markup.El("div", markup.Class("modal-content")).Append(
				markup.El("div", markup.Class("modal-header")).Append(
					markup.El("h5", markup.Class("modal-title"), markup.ID(titleID)).AppendText(m.Title),
					markup.El("button",
						markup.A("type", "button"),
						markup.Class("close"),
						markup.A("data-dismiss", "modal"),
						markup.A("aria-label", "Close"),
					).Append(markup.El("span", markup.A("aria-hidden", "true")).AppendText("×")),
				),
				markup.El("div", markup.Class("modal-body")).Append(
					markup.El("pre").AppendText(m.Message),
				),
				markup.El("div", markup.Class("modal-footer")).Append(
					markup.El("button",
						markup.A("type", "button"),
						markup.Class("btn btn-secondary"),
						markup.A("data-dismiss", "modal"),
					).AppendText("Close"),
				),
			),
		),
	)
	return []*markup.Node{trigger, dialog}, nil
}
