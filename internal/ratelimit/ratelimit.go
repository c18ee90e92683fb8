// Package ratelimit caps how many paid translation requests each provider
// may serve per day. The free endpoint is not budgeted; the fallback
// providers are, so a runaway scrape cannot burn through API quota.
package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"github.com/gkpulse/bixquiz/internal/logger"
)

type Limiter struct {
	mu          sync.Mutex
	geminiCount int
	openaiCount int
	totalCount  int
	maxGemini   int
	maxOpenAI   int
	maxTotal    int
	resetTime   time.Time
}

func New(maxGemini, maxOpenAI, maxTotal int) *Limiter {
	return &Limiter{
		maxGemini: maxGemini,
		maxOpenAI: maxOpenAI,
		maxTotal:  maxTotal,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// CanUseGemini checks whether a Gemini request is within budget.
func (rl *Limiter) CanUseGemini() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxGemini > 0 && rl.geminiCount >= rl.maxGemini {
		logger.Warn("Gemini rate limit reached", "used", rl.geminiCount, "max", rl.maxGemini)
		return false
	}
	return rl.totalOK()
}

// CanUseOpenAI checks whether an OpenAI request is within budget.
func (rl *Limiter) CanUseOpenAI() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxOpenAI > 0 && rl.openaiCount >= rl.maxOpenAI {
		logger.Warn("OpenAI rate limit reached", "used", rl.openaiCount, "max", rl.maxOpenAI)
		return false
	}
	return rl.totalOK()
}

// UseGemini consumes one Gemini request from the budget.
func (rl *Limiter) UseGemini() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxGemini > 0 && rl.geminiCount >= rl.maxGemini {
		return fmt.Errorf("gemini rate limit exceeded")
	}
	if !rl.totalOK() {
		return fmt.Errorf("total translation rate limit exceeded")
	}

	rl.geminiCount++
	rl.totalCount++
	return nil
}

// UseOpenAI consumes one OpenAI request from the budget.
func (rl *Limiter) UseOpenAI() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxOpenAI > 0 && rl.openaiCount >= rl.maxOpenAI {
		return fmt.Errorf("openai rate limit exceeded")
	}
	if !rl.totalOK() {
		return fmt.Errorf("total translation rate limit exceeded")
	}

	rl.openaiCount++
	rl.totalCount++
	return nil
}

func (rl *Limiter) GetStats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"gemini_used":  rl.geminiCount,
		"gemini_limit": rl.maxGemini,
		"openai_used":  rl.openaiCount,
		"openai_limit": rl.maxOpenAI,
		"total_used":   rl.totalCount,
		"total_limit":  rl.maxTotal,
		"reset_time":   rl.resetTime,
	}
}

func (rl *Limiter) totalOK() bool {
	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		logger.Warn("total translation rate limit reached", "used", rl.totalCount, "max", rl.maxTotal)
		return false
	}
	return true
}

// checkReset starts a fresh budget window once the old one has expired.
// Caller must hold the lock.
func (rl *Limiter) checkReset() {
	if time.Now().After(rl.resetTime) {
		logger.Info("resetting translation rate limiter counters")
		rl.geminiCount = 0
		rl.openaiCount = 0
		rl.totalCount = 0
		rl.resetTime = time.Now().Add(24 * time.Hour)
	}
}
