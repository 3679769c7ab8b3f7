package definition

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/verustcode/reportng/internal/report"
	"github.com/verustcode/reportng/pkg/errors"
)

// Attachment kinds in a block's attachments list
const (
	attachReference = "reference"
	attachAlert     = "alert"
	attachBadges    = "badges"
	attachModal     = "modal"
)

// decodeAttachments reads a list of single-key mappings:
//
//	attachments:
//	  - reference: [blue, https://nvd.nist.gov/vuln/detail/CVE-2024-1]
//	  - alert: {color: red, message: Exploitable}
//	  - badges: [{color: red, text: high}, [green, fixed]]
//	  - modal: {button: Request, title: Raw request, message: GET /}
func decodeAttachments(n *yaml.Node) ([]report.Attachment, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errors.ErrShape("attachments must be a list")
	}
	out := make([]report.Attachment, 0, len(n.Content))
	for i, item := range n.Content {
		kind, body, err := singleKey(item, "attachment")
		if err != nil {
			return nil, err
		}
		a, err := decodeAttachment(kind, body)
		if err != nil {
			return nil, fmt.Errorf("attachment %d (%s): %w", i+1, kind, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func decodeAttachment(kind string, n *yaml.Node) (report.Attachment, error) {
	switch kind {
	case attachReference:
		color, link, err := pair(n, "color", "link")
		if err != nil {
			return nil, err
		}
		return report.Reference{Color: color, Link: link}, nil

	case attachAlert:
		color, msg, err := pair(n, "color", "message")
		if err != nil {
			return nil, err
		}
		return report.Alert{Color: color, Message: msg}, nil

	case attachBadges:
		if n.Kind != yaml.SequenceNode {
			return nil, errors.ErrShape("badges must be a list")
		}
		badges := make(report.Badges, 0, len(n.Content))
		for _, item := range n.Content {
			color, text, err := pair(item, "color", "text")
			if err != nil {
				return nil, err
			}
			badges = append(badges, report.Badge{Color: color, Text: text})
		}
		return badges, nil

	case attachModal:
		if n.Kind != yaml.MappingNode {
			return nil, errors.ErrShape("modal must be a mapping")
		}
		var missing []string
		for _, key := range []string{"button", "title", "message"} {
			if lookup(n, key) == nil {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			return nil, errors.ErrMissingField(missing...)
		}
		var m report.Modal
		if err := strictDecode(n, &m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeShape, "invalid modal", err)
		}
		return m, nil
	}
	return nil, errors.ErrShape(fmt.Sprintf("unknown attachment %q", kind))
}

// pair reads a two element list, or a mapping with keys first and second
func pair(n *yaml.Node, first, second string) (string, string, error) {
	shapeErr := errors.ErrShape(fmt.Sprintf("expected a [%s, %s] pair", first, second))
	switch n.Kind {
	case yaml.SequenceNode:
		if len(n.Content) != 2 || n.Content[0].Kind != yaml.ScalarNode || n.Content[1].Kind != yaml.ScalarNode {
			return "", "", shapeErr
		}
		return n.Content[0].Value, n.Content[1].Value, nil
	case yaml.MappingNode:
		if len(n.Content) != 4 {
			return "", "", shapeErr
		}
		a, b := lookup(n, first), lookup(n, second)
		if a == nil || b == nil || a.Kind != yaml.ScalarNode || b.Kind != yaml.ScalarNode {
			return "", "", shapeErr
		}
		return a.Value, b.Value, nil
	}
	return "", "", shapeErr
}

// lookup returns the value node for key in a mapping
func lookup(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
