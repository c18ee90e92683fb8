package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gkpulse/bixquiz/internal/clock"
	"github.com/gkpulse/bixquiz/internal/quiz"
)

type fakeExtractor struct {
	urls     []string
	listErr  error
	pages    map[string][]quiz.Question
	pageErrs map[string][]quiz.ParseError
	fetchErr map[string]error
	fetched  []string
}

func (f *fakeExtractor) ListCandidateDays(_ context.Context, _ quiz.Period) ([]string, error) {
	return f.urls, f.listErr
}

func (f *fakeExtractor) ExtractQuestions(_ context.Context, pageURL string) ([]quiz.Question, []quiz.ParseError, error) {
	f.fetched = append(f.fetched, pageURL)
	if err := f.fetchErr[pageURL]; err != nil {
		return nil, nil, err
	}
	return f.pages[pageURL], f.pageErrs[pageURL], nil
}

type fakeTranslator struct{}

func (fakeTranslator) Translate(_ context.Context, text string) string {
	if text == "" {
		return ""
	}
	return "gu:" + text
}

type fakeStore struct {
	existing  map[string]bool // "period/day"
	inserted  []quiz.Question
	existsErr error
	insertErr error
	closed    int
}

func key(p quiz.Period, day string) string { return p.Label() + "/" + day }

func (s *fakeStore) Exists(_ context.Context, p quiz.Period, day string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.existing[key(p, day)], nil
}

func (s *fakeStore) Insert(_ context.Context, p quiz.Period, q quiz.Question) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, q)
	s.existing[key(p, q.Day)] = true
	return nil
}

func (s *fakeStore) Close(_ context.Context) error {
	s.closed++
	return nil
}

func fixedJune() clock.Clock {
	return clock.Fixed{T: time.Date(2024, time.June, 2, 10, 0, 0, 0, time.UTC)}
}

func dayURL(day string) string {
	return fmt.Sprintf("https://site.test/current-affairs/2024-06-%s/", day)
}

func question(text string, marker string) quiz.Question {
	return quiz.Question{
		Question:      text,
		Options:       []string{"one", "two", "three"},
		CorrectMarker: marker,
		Explanation:   "because",
	}
}

func TestRunSkipsExistingDay(t *testing.T) {
	ext := &fakeExtractor{
		urls: []string{dayURL("01"), dayURL("02")},
		pages: map[string][]quiz.Question{
			dayURL("02"): {question("q1", "B"), question("q2", "A")},
		},
	}
	store := &fakeStore{existing: map[string]bool{"2024.06/01": true}}
	p := New(ext, fakeTranslator{}, func(context.Context) (Store, error) { return store, nil }, fixedJune())

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(res.Questions) != 2 {
		t.Fatalf("got %d new questions, want 2", len(res.Questions))
	}
	if len(res.SkippedDays) != 1 || res.SkippedDays[0] != "01" {
		t.Errorf("SkippedDays = %v, want [01]", res.SkippedDays)
	}
	// The existing day's detail page must never be fetched.
	for _, u := range ext.fetched {
		if u == dayURL("01") {
			t.Error("detail page for existing day 01 was fetched")
		}
	}
	if store.closed != 1 {
		t.Errorf("store closed %d times, want 1", store.closed)
	}

	q := res.Questions[0]
	if q.Day != "02" {
		t.Errorf("Day = %q, want 02", q.Day)
	}
	if q.Question != "gu:q1" || q.Options[1] != "gu:two" || q.Explanation != "gu:because" {
		t.Errorf("translation not applied: %+v", q)
	}
	if q.CorrectOptionIndex != 1 {
		t.Errorf("CorrectOptionIndex = %d, want 1 (marker B)", q.CorrectOptionIndex)
	}
	// Stored marker stays the raw extracted letter.
	if q.CorrectMarker != "B" {
		t.Errorf("CorrectMarker = %q, want B", q.CorrectMarker)
	}
}

func TestRunIsIdempotentAcrossCycles(t *testing.T) {
	ext := &fakeExtractor{
		urls: []string{dayURL("03")},
		pages: map[string][]quiz.Question{
			dayURL("03"): {question("q1", "A")},
		},
	}
	store := &fakeStore{existing: map[string]bool{}}
	p := New(ext, fakeTranslator{}, func(context.Context) (Store, error) { return store, nil }, fixedJune())

	first, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("first Run error: %v", err)
	}
	if len(first.Questions) != 1 {
		t.Fatalf("first run produced %d questions, want 1", len(first.Questions))
	}

	second, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run error: %v", err)
	}
	if len(second.Questions) != 0 {
		t.Errorf("second run produced %d questions, want 0", len(second.Questions))
	}
	if len(store.inserted) != 1 {
		t.Errorf("store has %d inserts after two runs, want 1", len(store.inserted))
	}
	if len(second.SkippedDays) != 1 {
		t.Errorf("second run skipped %v, want [03]", second.SkippedDays)
	}
}

func TestRunAggregatesParseErrors(t *testing.T) {
	blockErr := quiz.ParseError{URL: dayURL("04"), Block: 2, Err: errors.New("malformed options section")}
	ext := &fakeExtractor{
		urls: []string{dayURL("04")},
		pages: map[string][]quiz.Question{
			dayURL("04"): {question("q1", "A"), question("q2", "C")},
		},
		pageErrs: map[string][]quiz.ParseError{
			dayURL("04"): {blockErr},
		},
	}
	store := &fakeStore{existing: map[string]bool{}}
	p := New(ext, fakeTranslator{}, func(context.Context) (Store, error) { return store, nil }, fixedJune())

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(res.Questions) != 2 {
		t.Errorf("got %d questions, want 2", len(res.Questions))
	}
	if len(res.ParseErrors) != 1 || res.ParseErrors[0].Block != 2 {
		t.Errorf("ParseErrors = %v, want the block 2 failure", res.ParseErrors)
	}
}

func TestRunIsolatesDetailPageFailure(t *testing.T) {
	ext := &fakeExtractor{
		urls: []string{dayURL("05"), dayURL("06")},
		pages: map[string][]quiz.Question{
			dayURL("06"): {question("q1", "A")},
		},
		fetchErr: map[string]error{
			dayURL("05"): errors.New("HTTP error: 503"),
		},
	}
	store := &fakeStore{existing: map[string]bool{}}
	p := New(ext, fakeTranslator{}, func(context.Context) (Store, error) { return store, nil }, fixedJune())

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(res.Questions) != 1 || res.Questions[0].Day != "06" {
		t.Errorf("result = %+v, want only day 06", res.Questions)
	}
}

func TestRunListingFailureReturnsEmpty(t *testing.T) {
	ext := &fakeExtractor{listErr: errors.New("HTTP error: 500")}
	p := New(ext, fakeTranslator{}, func(context.Context) (Store, error) {
		t.Error("store must not be opened when listing fails")
		return nil, nil
	}, fixedJune())

	res, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("expected listing error")
	}
	if len(res.Questions) != 0 {
		t.Errorf("got %d questions, want 0", len(res.Questions))
	}
}

func TestRunStoreFailureAbortsCycle(t *testing.T) {
	ext := &fakeExtractor{urls: []string{dayURL("07")}}
	store := &fakeStore{existing: map[string]bool{}, existsErr: errors.New("connection reset")}
	p := New(ext, fakeTranslator{}, func(context.Context) (Store, error) { return store, nil }, fixedJune())

	res, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("expected store error")
	}
	if len(res.Questions) != 0 {
		t.Errorf("store failure should surface an empty result, got %d", len(res.Questions))
	}
	if store.closed != 1 {
		t.Errorf("store closed %d times, want 1 (best-effort cleanup)", store.closed)
	}
}

func TestRunSkipsUnparseableCandidate(t *testing.T) {
	ext := &fakeExtractor{
		urls: []string{"https://site.test/current-affairs/not-a-date/", dayURL("08")},
		pages: map[string][]quiz.Question{
			dayURL("08"): {question("q1", "A")},
		},
	}
	store := &fakeStore{existing: map[string]bool{}}
	p := New(ext, fakeTranslator{}, func(context.Context) (Store, error) { return store, nil }, fixedJune())

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(res.Questions) != 1 {
		t.Errorf("got %d questions, want 1", len(res.Questions))
	}
	for _, u := range ext.fetched {
		if strings.Contains(u, "not-a-date") {
			t.Error("unparseable candidate was fetched")
		}
	}
}
