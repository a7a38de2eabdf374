package tilt

import (
	"sync"
	"time"
)

// Sample is one device-orientation reading. Gamma is the left/right tilt in
// degrees, roughly [-90, 90]; Beta is front/back and only informational.
type Sample struct {
	Gamma float64
	Beta  float64
	At    time.Time
}

// Cell is a single-producer/single-consumer latest-value mailbox. The sensor
// callback overwrites at its own arrival rate; the frame step reads the most
// recent value once per frame. Only the newest sample matters, so there is
// no queue.
type Cell struct {
	mu  sync.Mutex
	s   Sample
	set bool
}

// Store overwrites the held sample.
func (c *Cell) Store(s Sample) {
	c.mu.Lock()
	c.s = s
	c.set = true
	c.mu.Unlock()
}

// Latest returns the newest sample, and false if none has arrived yet.
func (c *Cell) Latest() (Sample, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s, c.set
}

// Reset clears the cell back to empty.
func (c *Cell) Reset() {
	c.mu.Lock()
	c.s = Sample{}
	c.set = false
	c.mu.Unlock()
}
