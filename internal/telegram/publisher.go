package telegram

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/gkpulse/bixquiz/internal/logger"
	"github.com/gkpulse/bixquiz/internal/metrics"
	"github.com/gkpulse/bixquiz/internal/quiz"
)

// PollSender is the one capability the publisher needs from the bot.
type PollSender interface {
	SendPoll(ctx context.Context, poll Poll) error
}

// Publisher sends a cycle's new questions sequentially, spacing consecutive
// sends to stay inside the platform's rate limits. An internal limiter caps
// throughput at one send per second regardless of the configured spacing.
type Publisher struct {
	bot     PollSender
	spacing time.Duration
	limiter *rate.Limiter
}

func NewPublisher(bot PollSender, spacing time.Duration) *Publisher {
	return &Publisher{
		bot:     bot,
		spacing: spacing,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
}

// PublishAll delivers each question as a quiz poll. A record whose correct
// answer cannot be resolved is skipped, a failed send is logged, and in
// both cases the batch continues with the next record.
func (p *Publisher) PublishAll(ctx context.Context, questions []quiz.Question) {
	var lastSend time.Time

	for _, q := range questions {
		poll, ok := BuildPoll(q)
		if !ok {
			metrics.Global.IncrementPollsSkipped()
			logger.Error("correct option not resolvable, poll skipped",
				"day", q.Day, "marker", q.CorrectMarker, "index", q.CorrectOptionIndex, "options", len(q.Options))
			continue
		}

		if !lastSend.IsZero() {
			if !sleepCtx(ctx, p.spacing-time.Since(lastSend)) {
				return
			}
		}
		if err := p.limiter.Wait(ctx); err != nil {
			return
		}

		lastSend = time.Now()
		if err := p.bot.SendPoll(ctx, poll); err != nil {
			metrics.Global.IncrementSendFailures()
			logger.Error("failed to send poll", "day", q.Day, "error", err)
			continue
		}
		metrics.Global.IncrementPollsSent()
		logger.Info("poll sent", "day", q.Day, "question", poll.Question)
	}
}

// BuildPoll truncates the record's fields to Telegram's limits and resolves
// the correct option index. It reports false when the record must not be
// sent because no valid correct answer can be determined.
func BuildPoll(q quiz.Question) (Poll, bool) {
	idx := q.CorrectOptionIndex
	if idx < 0 || idx >= len(q.Options) {
		idx = quiz.MarkerIndex(q.CorrectMarker)
	}
	if idx < 0 || idx >= len(q.Options) {
		return Poll{}, false
	}

	options := make([]string, len(q.Options))
	for i, opt := range q.Options {
		options[i] = Truncate(opt, MaxOptionLen)
	}

	return Poll{
		Question:        Truncate(q.Question, MaxQuestionLen),
		Options:         options,
		CorrectOptionID: idx,
		Explanation:     Truncate(q.Explanation, MaxExplanationLen),
	}, true
}

// sleepCtx waits d unless the context ends first. Returns false on cancel.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
