package registry

import (
	"sync/atomic"
	"time"
)

// Clock supplies the logical time stamped on components and events.
type Clock interface {
	Now() uint64
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() uint64

func (f ClockFunc) Now() uint64 { return f() }

// FixedClock always reports the same time.
type FixedClock uint64

func (c FixedClock) Now() uint64 { return uint64(c) }

// UnixClock reports wall-clock seconds.
type UnixClock struct{}

func (UnixClock) Now() uint64 { return uint64(time.Now().Unix()) }

// BlockClock behaves like a block height: every read returns the next value,
// starting at 1.
type BlockClock struct {
	height atomic.Uint64
}

func (c *BlockClock) Now() uint64 { return c.height.Add(1) }
