package definition

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/verustcode/reportng/internal/report"
	"github.com/verustcode/reportng/pkg/errors"
	"github.com/verustcode/reportng/pkg/logger"
	"github.com/verustcode/reportng/pkg/telemetry"
)

// Build creates a session from doc and appends its blocks in order.
// The first failing block stops the build.
func Build(ctx context.Context, doc *Document, opts ...report.Option) (*report.Session, error) {
	ctx, span := telemetry.StartSpan(ctx, "definition.build")
	defer span.End()

	s, err := report.New(doc.Report, opts...)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, err
	}
	telemetry.SetSpanAttributes(span,
		telemetry.AttrSessionID.String(s.ID()),
		telemetry.AttrReportName.String(doc.Report.ReportName),
		telemetry.AttrBlockCount.Int(len(doc.Blocks)),
	)

	for i, b := range doc.Blocks {
		if err := apply(ctx, s, b); err != nil {
			err = fmt.Errorf("block %d (%s, line %d): %w", i+1, b.Kind, b.Line, err)
			telemetry.SetSpanError(span, err)
			return nil, err
		}
	}

	telemetry.SetSpanOK(span)
	logger.Debug("Built report from definition",
		zap.String(logger.FieldSessionID, s.ID()),
		zap.Int("blocks", s.Len()),
	)
	return s, nil
}

func apply(ctx context.Context, s *report.Session, b Block) error {
	switch v := b.Value.(type) {
	case report.SectionBlock:
		return s.Section(v)
	case report.CollapsibleBlock:
		return s.Collapsible(v)
	case report.ImageCarouselBlock:
		return s.ImageCarousel(v)
	case report.AsciinemaBlock:
		return s.Asciinema(ctx, v)
	case report.CodeBlock:
		return s.Code(v)
	case report.CaptionsBlock:
		return s.Captions(v)
	case report.TableBlock:
		return s.Table(v)
	case report.CardsBlock:
		return s.Cards(v)
	case report.FooterBlock:
		return s.Footer(v)
	case report.ListGroupBlock:
		return s.ListGroup(v)
	case string:
		return s.CustomHTML(v)
	}
	return errors.ErrInternal(fmt.Sprintf("unsupported block value %T", b.Value), nil)
}
