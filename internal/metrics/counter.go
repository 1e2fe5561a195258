package metrics

import (
	"context"
	"math"
	"time"

	"github.com/tartampluch/go-eventboard/internal/config"
)

// easeOutCubic maps linear progress [0,1] onto the deceleration curve
// p' = 1 - (1-p)^3 used by the counter animation.
func easeOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

// Frames samples the counter curve for a target value.
// The sequence is monotonically non-decreasing, starts at or above 0 and
// always terminates at exactly target. frames values below 1 yield a single
// terminal frame.
func Frames(target, frames int) []int {
	if frames < 1 {
		frames = 1
	}
	out := make([]int, frames)
	for i := 1; i <= frames; i++ {
		p := easeOutCubic(float64(i) / float64(frames))
		out[i-1] = int(math.Floor(p * float64(target)))
	}
	// Floating point flooring may undershoot the final sample; the contract is
	// an exact landing on target.
	out[frames-1] = target
	return out
}

// Counter drives one animated number on the dashboard. Each counter runs its
// own update loop; concurrent counters do not share state.
type Counter struct {
	Target   int
	Duration time.Duration
	Prefix   string
	Suffix   string
}

// Animate emits one rendered frame per tick until the target is reached or
// the context is cancelled. It is a presentation effect only: the final emit,
// when reached, is always Prefix + Count(Target) + Suffix.
func (c Counter) Animate(ctx context.Context, emit func(string)) {
	d := c.Duration
	if d <= 0 {
		d = config.CounterDefaultDuration
	}

	frames := Frames(c.Target, config.CounterFrameCount)
	ticker := time.NewTicker(d / time.Duration(len(frames)))
	defer ticker.Stop()

	for _, v := range frames {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			emit(c.Prefix + Count(v) + c.Suffix)
		}
	}
}
