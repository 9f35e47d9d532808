package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorder_Total(t *testing.T) {
	r := NewRecorder()
	for i := 1; i <= 100; i++ {
		r.Record("status", time.Duration(i)*time.Millisecond, i%10 != 0, 30)
	}

	s := r.Total()
	assert.Equal(t, int64(100), s.Count)
	assert.Equal(t, int64(90), s.Success)
	assert.Equal(t, int64(10), s.Failed)
	assert.Equal(t, int64(3000), s.Bytes)
	assert.InDelta(t, float64(time.Millisecond), float64(s.Min), float64(10*time.Microsecond))
	assert.InDelta(t, float64(100*time.Millisecond), float64(s.Max), float64(time.Millisecond))
	assert.InDelta(t, float64(50*time.Millisecond), float64(s.P50), float64(time.Millisecond))
	assert.InDelta(t, float64(99*time.Millisecond), float64(s.P99), float64(time.Millisecond))
}

func TestRecorder_ByName(t *testing.T) {
	r := NewRecorder()
	r.Record("echo", 5*time.Millisecond, true, 10)
	r.Record("status", 7*time.Millisecond, true, 20)
	r.Record("status", 9*time.Millisecond, false, 0)
	r.Record("", time.Millisecond, true, 0)

	assert.Equal(t, []string{"echo", "status"}, r.Names())

	by := r.ByName()
	assert.Equal(t, int64(1), by["echo"].Count)
	assert.Equal(t, int64(2), by["status"].Count)
	assert.Equal(t, int64(1), by["status"].Failed)
	assert.Equal(t, int64(4), r.Total().Count)
}

func TestRecorder_ClampsTinyDurations(t *testing.T) {
	r := NewRecorder()
	r.Record("", 0, true, 0)
	assert.Equal(t, time.Microsecond, r.Total().Min)
}
