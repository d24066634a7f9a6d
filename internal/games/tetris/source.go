package tetris

import "time"

// RandomSource supplies uniformly distributed 32-bit values.
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Uint32() uint32
}

// Clock is a monotonic millisecond counter. It wraps like a hardware tick
// counter; callers only ever compare differences.
type Clock interface {
	Millis() uint32
}

// SystemClock counts milliseconds since it was created.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Millis returns elapsed milliseconds, truncated to 32 bits.
func (c *SystemClock) Millis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}
