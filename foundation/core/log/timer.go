// File: timer.go
// Title: Performance Timer
// Description: Measures how long an operation took and logs the duration
//              through the owning logger when stopped.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation with performance timing

package log

import (
	"sync"
	"time"
)

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	level     Level
	once      sync.Once
	elapsed   time.Duration
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		level:     LevelDebug,
	}
}

// WithLevel sets the level the timing is logged at
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// Stop stops the timer and logs the elapsed time once
func (t *Timer) Stop(fields ...Fields) time.Duration {
	t.once.Do(func() {
		t.elapsed = time.Since(t.startTime)
		merged := Fields{"operation": t.operation}
		for _, f := range fields {
			merged = merged.Merge(f)
		}
		t.logger.logEntry(t.level, t.operation+" completed", nil, t.elapsed, merged)
	})
	return t.elapsed
}
