package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	apperrors "github.com/verustcode/reportng/pkg/errors"
)

// unknownAttachment satisfies Attachment from inside the package only
type unknownAttachment struct{}

func (unknownAttachment) attachment() {}

func TestReference_PlacedInHeading(t *testing.T) {
	s, _ := newSession(t, Options{})
	require.NoError(t, s.Section(SectionBlock{
		Title:       "CVE-2024-1",
		Content:     "details",
		Attachments: []Attachment{Reference{Color: "blue", Link: "https://nvd.example/1"}},
	}))

	h1 := only(t, parse(t, s), tag("h1"))
	ref := only(t, h1, withClass("reportng-reference-class"))
	assert.Equal(t, "https://nvd.example/1", attr(ref, "href"))
	assert.True(t, hasClass(ref, "btn-info"))
	assert.Equal(t, "_blank", attr(ref, "target"))
}

func TestReference_NoHeadingFallsBackToContainer(t *testing.T) {
	s, _ := newSession(t, allOn())
	require.NoError(t, s.Code(CodeBlock{
		Content:     "x",
		Attachments: []Attachment{Reference{Color: "primary", Link: "https://x.test"}},
	}))

	div := only(t, parse(t, s), withClass("reportng-code-section-class"))
	assert.Empty(t, findAll(div, tag("h1")))
	only(t, div, withClass("reportng-reference-class"))
}

func TestAttachment_Validation(t *testing.T) {
	tests := []struct {
		name string
		att  Attachment
		code apperrors.ErrorCode
	}{
		{"reference without link", Reference{Color: "red"}, apperrors.ErrCodeShape},
		{"reference without color", Reference{Link: "https://x.test"}, apperrors.ErrCodeShape},
		{"reference bad color", Reference{Color: "orange", Link: "https://x.test"}, apperrors.ErrCodeInvalidColor},
		{"alert without message", Alert{Color: "red"}, apperrors.ErrCodeShape},
		{"alert bad color", Alert{Color: "crimson", Message: "m"}, apperrors.ErrCodeInvalidColor},
		{"badge bad color", Badges{{Color: "red", Text: "ok"}, {Color: "teal", Text: "bad"}}, apperrors.ErrCodeInvalidColor},
		{"badge without color", Badges{{Text: "x"}}, apperrors.ErrCodeInvalidColor},
		{"modal missing fields", Modal{Button: "Open"}, apperrors.ErrCodeMissingField},
		{"nil attachment", nil, apperrors.ErrCodeShape},
		{"unknown attachment", unknownAttachment{}, apperrors.ErrCodeShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSession(t, Options{})
			err := s.Section(SectionBlock{Title: "t", Attachments: []Attachment{tt.att}})
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, tt.code), "got %v", err)
			assert.Equal(t, 0, s.Len(), "nothing appended on failure")
		})
	}
}

func TestAlert(t *testing.T) {
	s, _ := newSession(t, Options{})
	require.NoError(t, s.ListGroup(ListGroupBlock{
		Title:       "Notes",
		Items:       []string{},
		Attachments: []Attachment{Alert{Color: "yellow", Message: "verify <manually>"}},
	}))

	div := only(t, parse(t, s), withClass("reportng-list-group-class"))
	alert := only(t, div, withClass("reportng-alert-class"))
	assert.True(t, hasClass(alert, "alert-warning"))
	assert.Equal(t, "alert", attr(alert, "role"))
	assert.Contains(t, textOf(alert), "verify <manually>")
	only(t, alert, tagClass("button", "close"))
}

func TestBadges(t *testing.T) {
	s, logs := newSession(t, Options{})
	require.NoError(t, s.Table(TableBlock{
		Header: []string{"a"},
		Attachments: []Attachment{Badges{
			{Color: "green", Text: "fixed"},
			{Color: "red", Text: "this text is far too long"},
		}},
	}))

	badges := findAll(only(t, parse(t, s), withClass("reportng-badges-class")), tag("span"))
	require.Len(t, badges, 2)
	assert.Equal(t, "fixed", textOf(badges[0]))
	assert.True(t, hasClass(badges[0], "badge-success"))
	assert.True(t, hasClass(badges[1], "badge-danger"))

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, int64(25), warnings[0].ContextMap()["length"])
}

func TestBadges_ShortTextDoesNotWarn(t *testing.T) {
	s, logs := newSession(t, Options{})
	require.NoError(t, s.Section(SectionBlock{
		Title:       "t",
		Attachments: []Attachment{Badges{{Color: "info", Text: "fourteen chars"}}},
	}))
	assert.Empty(t, logs.FilterLevelExact(zapcore.WarnLevel).All())
}

func TestBadges_NoWarningWhenBlockRejected(t *testing.T) {
	s, logs := newSession(t, Options{})
	err := s.Section(SectionBlock{
		Title: "t",
		Attachments: []Attachment{
			Badges{{Color: "red", Text: "this text is far too long"}},
			Alert{Color: "red"},
		},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeShape))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, logs.FilterLevelExact(zapcore.WarnLevel).All())
}

func TestModal(t *testing.T) {
	s, _ := newSession(t, Options{})
	modal := Modal{Button: "Show request", Title: "Raw request", Message: "GET / HTTP/1.1\nHost: x"}
	require.NoError(t, s.Section(SectionBlock{Title: "Intro", Content: "first"}))
	require.NoError(t, s.Section(SectionBlock{Title: "Open Ports", Attachments: []Attachment{modal}}))
	require.NoError(t, s.Section(SectionBlock{Title: "Open Ports", Attachments: []Attachment{modal}}))

	doc := parse(t, s)
	triggers := findAll(doc, withClass("reportng-modal-button-class"))
	dialogs := findAll(doc, tagClass("div", "modal"))
	require.Len(t, triggers, 2)
	require.Len(t, dialogs, 2)

	assert.Equal(t, "reportng-modal-OpenPorts-1", attr(dialogs[0], "id"))
	assert.Equal(t, "reportng-modal-OpenPorts-2", attr(dialogs[1], "id"))
	for i := range triggers {
		assert.Equal(t, "#"+attr(dialogs[i], "id"), attr(triggers[i], "data-target"))
		assert.Equal(t, "Show request", textOf(triggers[i]))

		title := only(t, dialogs[i], withClass("modal-title"))
		assert.Equal(t, attr(dialogs[i], "aria-labelledby"), attr(title, "id"))
		assert.Equal(t, "Raw request", textOf(title))
		assert.Equal(t, "GET / HTTP/1.1\nHost: x", textOf(only(t, dialogs[i], tag("pre"))))
	}
}

func TestModal_SeveralOnOneBlock(t *testing.T) {
	s, _ := newSession(t, Options{})
	require.NoError(t, s.Section(SectionBlock{
		Title: "Findings",
		Attachments: []Attachment{
			Modal{Button: "Request", Title: "Raw request", Message: "GET /"},
			Modal{Button: "Response", Title: "Raw response", Message: "HTTP/1.1 200 OK"},
		},
	}))

	doc := parse(t, s)
	triggers := findAll(doc, withClass("reportng-modal-button-class"))
	dialogs := findAll(doc, tagClass("div", "modal"))
	require.Len(t, triggers, 2)
	require.Len(t, dialogs, 2)

	assert.Equal(t, "reportng-modal-Findings-0", attr(dialogs[0], "id"))
	assert.Equal(t, "reportng-modal-Findings-0-2", attr(dialogs[1], "id"))
	for i := range triggers {
		assert.Equal(t, "#"+attr(dialogs[i], "id"), attr(triggers[i], "data-target"))
		title := only(t, dialogs[i], withClass("modal-title"))
		assert.Equal(t, attr(dialogs[i], "aria-labelledby"), attr(title, "id"))
	}
	assert.Equal(t, "Raw response", textOf(only(t, dialogs[1], withClass("modal-title"))))
}

func TestModal_UntitledOwnerUsesKind(t *testing.T) {
	s, _ := newSession(t, Options{})
	require.NoError(t, s.Table(TableBlock{
		Header:      []string{"a"},
		Attachments: []Attachment{Modal{Button: "b", Title: "t", Message: "m"}},
	}))
	dialog := only(t, parse(t, s), tagClass("div", "modal"))
	assert.Equal(t, "reportng-modal-table-0", attr(dialog, "id"))
}

func TestModal_MissingFieldDetails(t *testing.T) {
	s, _ := newSession(t, Options{})
	err := s.Section(SectionBlock{Title: "t", Attachments: []Attachment{Modal{Title: "only title"}}})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	details, ok := appErr.Details.(apperrors.MissingFieldDetails)
	require.True(t, ok)
	assert.Equal(t, []string{"button", "message"}, details.Fields)
}

func TestAttachments_RenderOrder(t *testing.T) {
	s, _ := newSession(t, Options{})
	require.NoError(t, s.Section(SectionBlock{
		Title: "Finding",
		Attachments: []Attachment{
			Badges{{Color: "red", Text: "high"}},
			Alert{Color: "red", Message: "exploitable"},
		},
	}))

	div := only(t, parse(t, s), withClass("reportng-report-section-class"))
	var order []string
	for c := div.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case hasClass(c, "reportng-badges-class"):
			order = append(order, "badges")
		case hasClass(c, "reportng-alert-class"):
			order = append(order, "alert")
		}
	}
	assert.Equal(t, []string{"badges", "alert"}, order)
}
