package booking

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)

func at(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

func TestHasConflict(t *testing.T) {
	existing := []Interval{NewInterval(at(10), at(12)), NewInterval(at(20), at(22))}

	tests := []struct {
		name      string
		candidate Interval
		want      bool
	}{
		{"before", NewInterval(at(6), at(9)), false},
		{"touching end", NewInterval(at(12), at(14)), false},
		{"touching start", NewInterval(at(8), at(10)), false},
		{"overlap start", NewInterval(at(9), at(11)), true},
		{"inside", NewInterval(at(10).Add(30*time.Minute), at(11)), true},
		{"covering", NewInterval(at(9), at(23)), true},
		{"identical", NewInterval(at(20), at(22)), true},
		{"between", NewInterval(at(12), at(20)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasConflict(tt.candidate, existing))
		})
	}

	assert.False(t, HasConflict(NewInterval(at(1), at(2)), nil))
}

func TestOverlaps_Symmetric(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		s1 := r.Intn(48)
		s2 := r.Intn(48)
		a := NewInterval(at(s1), at(s1+1+r.Intn(12)))
		b := NewInterval(at(s2), at(s2+1+r.Intn(12)))
		assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "a=%v b=%v", a, b)
		assert.Equal(t, HasConflict(a, []Interval{b}), HasConflict(b, []Interval{a}))
	}
}

func TestFindConflicts(t *testing.T) {
	existing := []Interval{
		NewInterval(at(0), at(2)),
		NewInterval(at(3), at(5)),
		NewInterval(at(5), at(7)),
		NewInterval(at(9), at(10)),
	}
	got := FindConflicts(NewInterval(at(1), at(6)), existing)
	assert.Equal(t, existing[:3], got)
	assert.Empty(t, FindConflicts(NewInterval(at(7), at(9)), existing))
}

func TestDayWindow(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	w := DayWindow(time.Date(2030, 5, 10, 15, 4, 0, 0, loc))

	assert.Equal(t, time.Date(2030, 5, 10, 0, 0, 0, 0, loc), w.Start)
	assert.Equal(t, time.Date(2030, 5, 10, 23, 59, 59, 999000000, loc), w.End)

	// a stay ending exactly at midnight touches the window start only
	prev := NewInterval(time.Date(2030, 5, 9, 20, 0, 0, 0, loc), w.Start)
	assert.False(t, w.Overlaps(prev))
}

func TestDurationHours(t *testing.T) {
	assert.Equal(t, 1, DurationHours(at(0), at(0).Add(time.Minute)))
	assert.Equal(t, 2, DurationHours(at(0), at(2)))
	assert.Equal(t, 3, DurationHours(at(0), at(2).Add(time.Second)))
}
