// Package clock abstracts "what month is it" so the pipeline can be tested
// against a fixed instant instead of the wall clock.
package clock

import "time"

// Clock supplies the current time in the source site's reference zone.
type Clock interface {
	Now() time.Time
}

// IST is the real clock pinned to Asia/Kolkata. The source site publishes
// its daily pages on India time, so the current period must be computed
// there regardless of where the process runs.
type IST struct {
	loc *time.Location
}

func NewIST() *IST {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// IST has no DST; a fixed offset is equivalent.
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	return &IST{loc: loc}
}

func (c *IST) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fixed is a clock frozen at one instant, for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
