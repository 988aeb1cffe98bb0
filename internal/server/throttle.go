package server

import (
	"golang.org/x/time/rate"
)

// FrameThrottle drops frames that arrive faster than the configured rate.
// Frames are never queued; a rejected frame is skipped entirely.
type FrameThrottle struct {
	limiter *rate.Limiter
}

// NewFrameThrottle returns a throttle admitting maxFPS frames per second with
// the given burst. It returns nil, which admits everything, when maxFPS <= 0.
func NewFrameThrottle(maxFPS float64, burst int) *FrameThrottle {
	if maxFPS <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &FrameThrottle{limiter: rate.NewLimiter(rate.Limit(maxFPS), burst)}
}

// Allow reports whether a frame may be processed now.
func (t *FrameThrottle) Allow() bool {
	if t == nil {
		return true
	}
	return t.limiter.Allow()
}
