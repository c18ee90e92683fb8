package clock

import (
	"testing"
	"time"
)

func TestISTOffset(t *testing.T) {
	c := NewIST()
	_, offset := c.Now().Zone()
	if want := 5*3600 + 1800; offset != want {
		t.Errorf("zone offset = %d, want %d (UTC+05:30)", offset, want)
	}
}

func TestFixed(t *testing.T) {
	at := time.Date(2024, time.June, 2, 23, 59, 0, 0, time.UTC)
	c := Fixed{T: at}
	if !c.Now().Equal(at) {
		t.Errorf("Now() = %v, want %v", c.Now(), at)
	}
}
