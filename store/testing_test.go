package store

import "time"

const (
	testTimeout = 200 * time.Millisecond
	testTick    = 5 * time.Millisecond
)
