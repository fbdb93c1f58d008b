package speedtest

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
)

type recordingSleep struct {
	calls int
	total time.Duration
}

func (r *recordingSleep) sleep(_ context.Context, d time.Duration) error {
	r.calls++
	r.total += d
	return nil
}

func newTestTester(cfg Config, s *recordingSleep) *Tester {
	cfg.Rand = rand.New(rand.NewSource(1))
	cfg.Sleep = s.sleep
	cfg.Logger = helog.Discard()
	return New(cfg)
}

func TestNew_Defaults(t *testing.T) {
	tester := New(Config{Logger: helog.Discard()})

	if len(tester.cfg.Tracks) != len(DefaultTracks) {
		t.Errorf("Tracks = %d, want %d", len(tester.cfg.Tracks), len(DefaultTracks))
	}
	if tester.cfg.MinSizeMB != 5 {
		t.Errorf("MinSizeMB = %d, want 5", tester.cfg.MinSizeMB)
	}
	if tester.cfg.MaxSizeMB != 5 {
		t.Errorf("MaxSizeMB = %d, want MinSizeMB when unset", tester.cfg.MaxSizeMB)
	}
}

func TestTester_RunSpeedTest(t *testing.T) {
	s := &recordingSleep{}
	tester := newTestTester(Config{
		Tracks:    []string{"Rap God", "Stan"},
		Suffixes:  []string{".flac"},
		MinSizeMB: 2,
		MaxSizeMB: 2,
		MinDelay:  time.Millisecond,
		MaxDelay:  time.Millisecond,
		Width:     10,
	}, s)

	var out bytes.Buffer
	if err := tester.RunSpeedTest(context.Background(), &out); err != nil {
		t.Fatalf("RunSpeedTest() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header and two track lines, got %q", out.String())
	}
	if lines[0] != "Cyber DJ is downloading musics via 5G..." {
		t.Errorf("header = %q", lines[0])
	}
	for _, file := range []string{"Rap God.flac", "Stan.flac"} {
		if !strings.Contains(out.String(), file) {
			t.Errorf("output missing %s", file)
		}
	}
	for _, line := range lines[1:] {
		if !strings.Contains(line, "100%") || !strings.Contains(line, "2/2m") {
			t.Errorf("track line not finished: %q", line)
		}
		if strings.Contains(line, "\r") {
			t.Errorf("non-terminal output redrawn in place: %q", line)
		}
	}

	if s.calls != 4 || s.total != 4*time.Millisecond {
		t.Errorf("Expected 4 sleeps of 1ms, got %d totalling %v", s.calls, s.total)
	}
}

func TestTester_RandomRanges(t *testing.T) {
	s := &recordingSleep{}
	tester := newTestTester(Config{
		Tracks:    DefaultTracks,
		MinSizeMB: 5,
		MaxSizeMB: 25,
		MinDelay:  time.Millisecond,
		MaxDelay:  25 * time.Millisecond,
	}, s)

	var out bytes.Buffer
	if err := tester.RunSpeedTest(context.Background(), &out); err != nil {
		t.Fatalf("RunSpeedTest() error = %v", err)
	}

	if s.calls < 5*len(DefaultTracks) || s.calls > 25*len(DefaultTracks) {
		t.Errorf("sleep count %d outside the size range", s.calls)
	}
	if s.total < time.Duration(s.calls)*time.Millisecond || s.total > time.Duration(s.calls)*25*time.Millisecond {
		t.Errorf("total delay %v outside the delay range", s.total)
	}
}

func TestTester_Interrupted(t *testing.T) {
	tester := New(Config{
		Tracks: []string{"Stan"},
		Sleep: func(ctx context.Context, d time.Duration) error {
			return context.Canceled
		},
		Logger: helog.Discard(),
	})

	err := tester.RunSpeedTest(context.Background(), &bytes.Buffer{})
	if !heerror.HasCode(err, heerror.CodeTimeout) {
		t.Errorf("Expected TIMEOUT, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("cause should be preserved")
	}
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleep() = %v, want context.Canceled", err)
	}
}
