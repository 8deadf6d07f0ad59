// Package clock provides a mockable time source. Production code uses the
// package-level functions, which wrap time.Now(); tests inject a MockClock.
package clock

import (
	"sync"
	"time"
)

// Clock is the interface for time operations.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// RealClock provides the actual system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t.
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// MockClock is a test clock with controllable time.
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMockClock creates a mock clock set to the given time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mock time.
func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Since returns the duration since t.
func (c *MockClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Set sets the mock time.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Advance moves the mock time forward.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

var (
	defaultMu    sync.RWMutex
	defaultClock Clock = &RealClock{}
)

// SetDefault replaces the package-level clock, returning the previous one so
// tests can restore it.
func SetDefault(c Clock) Clock {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultClock
	defaultClock = c
	return prev
}

// Now returns the current time from the default clock.
func Now() time.Time {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultClock.Now()
}

// Since returns the time elapsed since t according to the default clock.
func Since(t time.Time) time.Duration {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultClock.Since(t)
}
