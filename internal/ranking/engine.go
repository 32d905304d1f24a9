// Package ranking scores resume documents and orders them by composite
// score.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/document"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/names"
	"github.com/spigell/resume-ranker/internal/similarity"
	"github.com/spigell/resume-ranker/internal/skills"
	"github.com/spigell/resume-ranker/internal/textextract"
	"github.com/spigell/resume-ranker/internal/utils"
)

// similarityWeight scales the [0,1] similarity into skill-count units.
const similarityWeight = 10

const defaultPreviewLength = 120

var ErrExtractorRequired = errors.New("text extractor is required")

// Scorer computes similarity in [0,1] between a reference and a candidate.
type Scorer func(reference, candidate string) float64

// Options configures an Engine. Only Extractor is required.
type Options struct {
	Extractor textextract.Extractor
	Matcher   *skills.Matcher
	Technical *skills.Vocabulary
	Soft      *skills.Vocabulary
	// Similarity defaults to TF-IDF cosine similarity.
	Similarity Scorer
	// ExtractTimeout bounds each document's extraction. Zero disables it.
	ExtractTimeout time.Duration
	// PreviewLength limits extracted text previews in debug logs.
	PreviewLength int
	Logger        *zap.Logger
}

type Engine struct {
	extractor  textextract.Extractor
	matcher    *skills.Matcher
	technical  *skills.Vocabulary
	soft       *skills.Vocabulary
	similarity Scorer
	previewLen int
	logger     *zap.Logger
}

func New(opts Options) (*Engine, error) {
	if opts.Extractor == nil {
		return nil, ErrExtractorRequired
	}

	e := &Engine{
		extractor:  textextract.WithTimeout(opts.Extractor, opts.ExtractTimeout),
		matcher:    opts.Matcher,
		technical:  opts.Technical,
		soft:       opts.Soft,
		similarity: opts.Similarity,
		previewLen: opts.PreviewLength,
		logger:     opts.Logger,
	}

	if e.matcher == nil {
		e.matcher = skills.NewMatcher(nil, "")
	}
	if e.technical == nil {
		e.technical = skills.DefaultTechnical()
	}
	if e.soft == nil {
		e.soft = skills.DefaultSoft()
	}
	if e.similarity == nil {
		e.similarity = similarity.Similarity
	}
	if e.previewLen <= 0 {
		e.previewLen = defaultPreviewLength
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}

	return e, nil
}

// Rank processes docs one at a time in input order and returns every
// readable document sorted by composite score, highest first. Unreadable
// documents are logged and left out. A nil reference selects simple mode.
func (e *Engine) Rank(ctx context.Context, docs *document.Documents, reference *string) (*Batch, error) {
	batch := &Batch{
		ID:   uuid.New().String(),
		Mode: modeFor(reference),
	}
	log := logger.WithBatch(e.logger, batch.ID, string(batch.Mode))

	if docs == nil {
		docs = document.New()
	}

	started := time.Now()
	batch.Records = make([]*Record, 0, docs.Len())
	for _, doc := range docs.Items {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("ranking interrupted: %w", err)
		}

		record, err := e.Evaluate(ctx, doc, reference)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("ranking interrupted: %w", ctxErr)
			}
			log.Warn("skipping unreadable document",
				zap.String(logger.FieldFilename, doc.Name),
				zap.Error(err),
			)
			continue
		}

		log.Debug("document scored",
			zap.String(logger.FieldFilename, doc.Name),
			zap.String("name", record.DisplayName),
			zap.Int("technical_skills", len(record.TechnicalSkills)),
			zap.Int("soft_skills", len(record.SoftSkills)),
			zap.Float64("score", record.CompositeScore),
		)

		batch.Records = append(batch.Records, record)
	}

	sortRecords(batch.Records)

	log.Info("batch ranked",
		zap.Int("submitted", docs.Len()),
		zap.Int("ranked", batch.Len()),
		zap.Int("skipped", docs.Len()-batch.Len()),
		zap.Float64s("scores", batch.Scores()),
		zap.Duration("elapsed", time.Since(started)),
	)

	return batch, nil
}

// Evaluate extracts and scores a single document. The returned error wraps
// textextract.ErrDocumentUnreadable when the document cannot be read.
func (e *Engine) Evaluate(ctx context.Context, doc *document.Document, reference *string) (*Record, error) {
	text, err := e.extractor.Extract(ctx, doc.Data)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("text extracted",
		zap.String(logger.FieldFilename, doc.Name),
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.String("text_preview", utils.TruncateForLog(text, e.previewLen)),
	)

	record := &Record{
		DisplayName:     names.Extract(text),
		SourceFilename:  doc.Name,
		TechnicalSkills: e.matcher.Match(text, e.technical),
		SoftSkills:      e.matcher.Match(text, e.soft),
	}

	if reference == nil {
		record.CompositeScore = float64(len(record.TechnicalSkills) + len(record.SoftSkills))
		return record, nil
	}

	score := e.similarity(*reference, text)
	record.Similarity = &score
	record.CompositeScore = round2(float64(len(record.MatchedSkills())) + similarityWeight*score)

	return record, nil
}

func modeFor(reference *string) Mode {
	if reference == nil {
		return ModeSimple
	}
	return ModeReference
}

// sortRecords orders by score descending; equal scores keep input order.
func sortRecords(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CompositeScore > records[j].CompositeScore
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
