// Package locate captures the GPS position of a harvest.
package locate

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/herb-harvest/internal/model"
)

// Locator returns the device position.
type Locator interface {
	Locate(ctx context.Context) (model.GPS, error)
}

// Simulated returns a point near a reference location after a fixed delay.
type Simulated struct {
	Delay     time.Duration
	Reference model.GPS
	Jitter    float64

	// Rand draws from [0,1). Defaults to math/rand/v2.
	Rand func() float64
}

// NewSimulated returns a Simulated with the given settings.
func NewSimulated(delay time.Duration, ref model.GPS, jitter float64) *Simulated {
	return &Simulated{Delay: delay, Reference: ref, Jitter: jitter}
}

// Locate waits for the delay and returns the reference point offset by up
// to ±Jitter degrees on each axis, rounded to four decimals.
func (s *Simulated) Locate(ctx context.Context) (model.GPS, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return model.GPS{}, eris.Wrap(ctx.Err(), "locate: simulated")
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return model.GPS{}, eris.Wrap(err, "locate: simulated")
	}

	rnd := s.Rand
	if rnd == nil {
		rnd = rand.Float64
	}
	return model.GPS{
		Lat: round4(s.Reference.Lat + (rnd()*2-1)*s.Jitter),
		Lon: round4(s.Reference.Lon + (rnd()*2-1)*s.Jitter),
	}, nil
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
