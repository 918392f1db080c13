package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerBasic(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(&buf, "Testing...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Testing...") {
		t.Errorf("spinner output %q should contain the message", buf.String())
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after Stop, want false")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var buf syncBuffer
	s := newSpinnerWithContext(ctx, &buf, "Testing with context...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf syncBuffer
	s := newSpinnerWithContext(ctx, &buf, "Testing with timeout...")
	s.Start()

	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(&buf, "Testing idempotent stop...")
	s.Start()

	// Stop multiple times should not panic
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopClearsLine(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(&buf, "msg")
	s.Start()
	s.Stop()

	if !strings.HasSuffix(buf.String(), "\r") {
		t.Errorf("spinner output %q should end with a carriage return", buf.String())
	}
}
