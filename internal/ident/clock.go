package ident

import "time"

// Clock supplies the time salt in milliseconds since the Unix epoch.
type Clock interface {
	NowMillis() int64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// NowMillis returns the current wall-clock time in epoch milliseconds.
func (SystemClock) NowMillis() int64 { return time.Now().UnixMilli() }

// FixedClock always returns the same instant.
type FixedClock int64

// NowMillis returns c.
func (c FixedClock) NowMillis() int64 { return int64(c) }
