// Package textextract turns binary resume documents into normalized
// lowercase plain text.
package textextract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/utils"
)

// ErrDocumentUnreadable is returned when a document cannot be opened or
// parsed at all. Callers skip the document and continue with the batch.
var ErrDocumentUnreadable = errors.New("document unreadable")

// Extractor converts document bytes into lowercase text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

func unreadable(cause error) error {
	return fmt.Errorf("%w: %w", ErrDocumentUnreadable, cause)
}

// PDF extracts the text layer of PDF documents page by page.
// wordGapRatio is the horizontal gap, relative to the font size, that
// separates two words on the same line.
const wordGapRatio = 0.2

type PDF struct {
	logger *zap.Logger
}

func NewPDF(logger *zap.Logger) *PDF {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDF{logger: logger}
}

// Extract concatenates the text of every page in page order. Pages without
// a text layer contribute nothing.
func (p *PDF) Extract(ctx context.Context, data []byte) (text string, err error) {
	// the pdf reader panics on some malformed object graphs
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = unreadable(fmt.Errorf("pdf parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", unreadable(err)
	}

	var builder strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", unreadable(err)
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := p.pageText(page)
		if err != nil {
			p.logger.Debug("page text extraction failed",
				zap.Int("page", i),
				zap.Error(err),
			)
			continue
		}
		if pageText == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(pageText)
	}

	return strings.ToLower(builder.String()), nil
}

// pageText lays the page glyphs out by position. Pages the layout pass
// cannot handle fall back to the plain content stream text.
func (p *PDF) pageText(page pdf.Page) (string, error) {
	text, ok := layoutText(page)
	if ok && text != "" {
		return text, nil
	}
	return page.GetPlainText(nil)
}

// layoutText rebuilds lines from glyph positions. A change of baseline
// starts a new line and a horizontal gap wider than a fraction of the font
// size becomes a space, so text placed with Td, TD or Tm keeps its breaks.
func layoutText(page pdf.Page) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			text, ok = "", false
		}
	}()

	glyphs := page.Content().Text
	if len(glyphs) == 0 {
		return "", true
	}

	var builder strings.Builder
	prev := glyphs[0]
	builder.WriteString(prev.S)

	for _, glyph := range glyphs[1:] {
		size := math.Max(math.Max(prev.FontSize, glyph.FontSize), 1)

		switch {
		case math.Abs(glyph.Y-prev.Y) > size/2:
			builder.WriteByte('\n')
		case needsSpace(prev, glyph, size):
			builder.WriteByte(' ')
		}

		builder.WriteString(glyph.S)
		prev = glyph
	}

	return strings.TrimSpace(builder.String()), true
}

func needsSpace(prev, next pdf.Text, size float64) bool {
	if strings.TrimSpace(prev.S) == "" || strings.TrimSpace(next.S) == "" {
		return false
	}
	gap := next.X - (prev.X + prev.W)
	return gap > size*wordGapRatio || gap < -size
}

type timeoutExtractor struct {
	next    Extractor
	timeout time.Duration
}

// WithTimeout bounds every Extract call of next by timeout. An expired call
// is reported as ErrDocumentUnreadable. A non-positive timeout returns next
// unchanged.
func WithTimeout(next Extractor, timeout time.Duration) Extractor {
	if timeout <= 0 {
		return next
	}
	return &timeoutExtractor{next: next, timeout: timeout}
}

func (e *timeoutExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	text, err := utils.AwaitTimeout(ctx, e.timeout, func() (string, error) {
		return e.next.Extract(ctx, data)
	})
	if err != nil {
		if errors.Is(err, ErrDocumentUnreadable) {
			return "", err
		}
		return "", unreadable(err)
	}

	return text, nil
}
