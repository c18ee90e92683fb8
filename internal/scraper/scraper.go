// Package scraper fetches and parses the current-affairs listing and daily
// detail pages into question records.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gkpulse/bixquiz/internal/quiz"
)

type Scraper struct {
	src    Source
	client *http.Client
}

func New(src Source, timeout time.Duration) *Scraper {
	return &Scraper{
		src:    src,
		client: &http.Client{Timeout: timeout},
	}
}

// dayPathRe matches the /current-affairs/YYYY-MM-DD path segment of a
// detail page URL.
var dayPathRe = regexp.MustCompile(`/current-affairs/(\d{4})-(\d{2})-(\d{2})`)

// ListCandidateDays fetches the listing page and returns absolute URLs of
// daily detail pages that belong to the given period.
func (s *Scraper) ListCandidateDays(ctx context.Context, p quiz.Period) ([]string, error) {
	doc, err := s.fetch(ctx, s.src.BaseURL+s.src.ListingPath)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("/current-affairs/%04d-%02d-", p.Year, p.Month)

	var urls []string
	doc.Find(s.src.LinkSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || !strings.Contains(href, prefix) {
			return
		}
		if strings.HasPrefix(href, "http") {
			urls = append(urls, href)
			return
		}
		urls = append(urls, s.src.BaseURL+href)
	})

	return urls, nil
}

// ParseDayURL derives the period and day token from a detail page URL.
func ParseDayURL(pageURL string) (quiz.Period, string, error) {
	m := dayPathRe.FindStringSubmatch(pageURL)
	if m == nil {
		return quiz.Period{}, "", fmt.Errorf("no date in URL path: %s", pageURL)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return quiz.Period{}, "", fmt.Errorf("month out of range in URL: %s", pageURL)
	}
	return quiz.Period{Year: year, Month: month}, m[3], nil
}

// ExtractQuestions fetches one detail page and parses each question block.
// A block that cannot be parsed is reported as a ParseError and skipped;
// a page with zero blocks yields an empty slice and no error.
func (s *Scraper) ExtractQuestions(ctx context.Context, pageURL string) ([]quiz.Question, []quiz.ParseError, error) {
	doc, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, nil, err
	}

	var questions []quiz.Question
	var parseErrs []quiz.ParseError

	doc.Find("div.bix-div-container").Each(func(i int, sel *goquery.Selection) {
		q, err := extractBlock(sel)
		if err != nil {
			parseErrs = append(parseErrs, quiz.ParseError{URL: pageURL, Block: i, Err: err})
			return
		}
		questions = append(questions, q)
	})

	return questions, parseErrs, nil
}

func extractBlock(sel *goquery.Selection) (quiz.Question, error) {
	var q quiz.Question

	q.Question = strings.TrimSpace(sel.Find("div.bix-td-qtxt").Text())
	if q.Question == "" {
		return q, fmt.Errorf("missing question text")
	}

	sel.Find("div.bix-tbl-options div.bix-opt-row").Each(func(_ int, row *goquery.Selection) {
		q.Options = append(q.Options, strings.TrimSpace(row.Find("div.bix-td-option-val").Text()))
	})
	if len(q.Options) < 2 {
		return q, fmt.Errorf("malformed options section: %d options", len(q.Options))
	}

	// The correct answer letter is hidden inside braces in an input value.
	// A missing or malformed marker does not drop the record; the publisher
	// validates it before sending.
	if val, ok := sel.Find("input.jq-hdnakq").Attr("value"); ok {
		q.CorrectMarker = valueInBraces(val)
	}

	q.Explanation = strings.TrimSpace(sel.Find("div.bix-div-answer div.bix-ans-description").Text())

	return q, nil
}

func valueInBraces(val string) string {
	i := strings.Index(val, "{")
	j := strings.LastIndex(val, "}")
	if i < 0 || j <= i {
		return ""
	}
	return val[i+1 : j]
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}
	return doc, nil
}
