// Package quiz holds the domain types shared by the scraper, pipeline,
// storage and telegram packages.
package quiz

import (
	"fmt"
)

// Period is the (year, month) bucket stored questions are grouped by.
type Period struct {
	Year  int
	Month int
}

// Label returns the storage bucket name for the period, e.g. "2024.06".
func (p Period) Label() string {
	return fmt.Sprintf("%d.%02d", p.Year, p.Month)
}

// Question is one scraped quiz question. After the pipeline runs, the text
// fields hold the translated content and CorrectOptionIndex is derived from
// the marker. The bson field names match the documents the original scraper
// wrote, so old and new records live in the same collections.
type Question struct {
	Question           string   `bson:"question" json:"question"`
	Options            []string `bson:"options" json:"options"`
	CorrectMarker      string   `bson:"value_in_braces" json:"value_in_braces"`
	Explanation        string   `bson:"explanation" json:"explanation"`
	Day                string   `bson:"day" json:"day"`
	CorrectOptionIndex int      `bson:"correct_option_index" json:"correct_option_index"`
}

// MarkerIndex maps a correct-answer letter to a zero-based option index
// (A=0, B=1, ...). Returns -1 for anything that is not a single letter.
func MarkerIndex(marker string) int {
	if len(marker) != 1 {
		return -1
	}
	c := marker[0]
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	}
	return -1
}

// ValidCorrectIndex reports whether the precomputed index points at an
// actual option of this question.
func (q Question) ValidCorrectIndex() bool {
	return q.CorrectOptionIndex >= 0 && q.CorrectOptionIndex < len(q.Options)
}

// ParseError records a single question block that could not be extracted.
// The page as a whole is still processed; these are aggregated by the
// pipeline instead of being logged deep inside the scraper loops.
type ParseError struct {
	URL   string
	Block int
	Err   error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("block %d at %s: %v", e.Block, e.URL, e.Err)
}

func (e ParseError) Unwrap() error { return e.Err }
