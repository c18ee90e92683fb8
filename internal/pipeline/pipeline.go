// Package pipeline drives one sync cycle: discover the current period's
// daily pages, skip days already stored, extract and translate the rest,
// and persist every new record.
package pipeline

import (
	"context"
	"fmt"

	"github.com/gkpulse/bixquiz/internal/clock"
	"github.com/gkpulse/bixquiz/internal/logger"
	"github.com/gkpulse/bixquiz/internal/metrics"
	"github.com/gkpulse/bixquiz/internal/quiz"
	"github.com/gkpulse/bixquiz/internal/scraper"
)

// Extractor produces candidate day URLs and the question blocks on them.
type Extractor interface {
	ListCandidateDays(ctx context.Context, p quiz.Period) ([]string, error)
	ExtractQuestions(ctx context.Context, pageURL string) ([]quiz.Question, []quiz.ParseError, error)
}

// Translator converts text to the target language; it degrades instead of
// failing, so there is no error return.
type Translator interface {
	Translate(ctx context.Context, text string) string
}

// Store is the period-bucketed record store. A failure here is fatal for
// the current cycle only.
type Store interface {
	Exists(ctx context.Context, p quiz.Period, day string) (bool, error)
	Insert(ctx context.Context, p quiz.Period, q quiz.Question) error
	Close(ctx context.Context) error
}

// StoreFactory opens a fresh store connection for one cycle.
type StoreFactory func(ctx context.Context) (Store, error)

// Result is what one cycle produced.
type Result struct {
	Questions   []quiz.Question
	SkippedDays []string
	ParseErrors []quiz.ParseError
}

type Pipeline struct {
	extractor  Extractor
	translator Translator
	newStore   StoreFactory
	clock      clock.Clock
}

func New(extractor Extractor, translator Translator, newStore StoreFactory, clk clock.Clock) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		translator: translator,
		newStore:   newStore,
		clock:      clk,
	}
}

// Run executes one full sync cycle for the current period and returns the
// newly persisted records. A day that already exists in the store is never
// fetched again; that check is the idempotency guarantee across cycles and
// restarts. On a store failure the cycle aborts with an empty result.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var res Result

	now := p.clock.Now()
	period := quiz.Period{Year: now.Year(), Month: int(now.Month())}

	urls, err := p.extractor.ListCandidateDays(ctx, period)
	if err != nil {
		return Result{}, fmt.Errorf("list candidate days: %w", err)
	}
	logger.Debug("candidate days discovered", "period", period.Label(), "count", len(urls))
	if len(urls) == 0 {
		return res, nil
	}

	store, err := p.newStore(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := store.Close(ctx); cerr != nil {
			logger.Warn("store close failed", "error", cerr)
		}
	}()

	for _, pageURL := range urls {
		dayPeriod, day, err := scraper.ParseDayURL(pageURL)
		if err != nil {
			logger.Warn("skipping candidate with unparseable path", "url", pageURL, "error", err)
			continue
		}

		exists, err := store.Exists(ctx, dayPeriod, day)
		if err != nil {
			return Result{}, err
		}
		if exists {
			res.SkippedDays = append(res.SkippedDays, day)
			metrics.Global.AddDaysSkipped(1)
			logger.Debug("day already synced", "period", dayPeriod.Label(), "day", day)
			continue
		}

		questions, parseErrs, err := p.extractor.ExtractQuestions(ctx, pageURL)
		if err != nil {
			// One bad detail page must not sink the rest of the period.
			logger.Error("detail page failed", "url", pageURL, "error", err)
			continue
		}
		if len(parseErrs) > 0 {
			res.ParseErrors = append(res.ParseErrors, parseErrs...)
			metrics.Global.AddBlocksFailed(len(parseErrs))
			for _, pe := range parseErrs {
				logger.Warn("question block skipped", "error", pe.Error())
			}
		}

		for _, q := range questions {
			translated := p.translateQuestion(ctx, q)
			translated.Day = day
			translated.CorrectOptionIndex = quiz.MarkerIndex(q.CorrectMarker)

			if err := store.Insert(ctx, dayPeriod, translated); err != nil {
				return Result{}, err
			}
			res.Questions = append(res.Questions, translated)
		}
		metrics.Global.AddQuestionsScraped(len(questions))
		logger.Info("day synced", "period", dayPeriod.Label(), "day", day, "questions", len(questions))
	}

	return res, nil
}

// translateQuestion translates the text fields one call at a time. The
// translator sits behind an external rate limit, so options go through
// sequentially rather than in parallel.
func (p *Pipeline) translateQuestion(ctx context.Context, q quiz.Question) quiz.Question {
	out := q
	out.Question = p.translator.Translate(ctx, q.Question)
	out.Options = make([]string, len(q.Options))
	for i, opt := range q.Options {
		out.Options[i] = p.translator.Translate(ctx, opt)
	}
	out.Explanation = p.translator.Translate(ctx, q.Explanation)
	return out
}
