// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     speedtest
// Description: The 5G speed test: Cyber DJ downloads a shuffled playlist
// Author:      lwd-temp
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package speedtest

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
)

// DefaultTracks is Cyber DJ's playlist
var DefaultTracks = []string{
	"Kill You", "Lighters", "ZOOD", "Love the Way You Lie",
	"The Monster", "Numb Encore", "Kinds Never Die", "I Need a Doctor",
	"Lose Yourself", "Mockingbird", "Beautiful", "Not Afraid",
	"Rap God", "Phenomenal", "Stan", "Space Bound", "Guts Over Fear",
}

// DefaultSuffixes are the file types Cyber DJ downloads
var DefaultSuffixes = []string{".mp3", ".ogg", ".flac"}

var trackStyle = lipgloss.NewStyle().Bold(true)

// Config holds speed test configuration
type Config struct {
	Tracks    []string
	Suffixes  []string
	MinSizeMB int
	MaxSizeMB int
	MinDelay  time.Duration // per MB
	MaxDelay  time.Duration
	Width     int // progress bar width

	// Rand and Sleep replace the random source and the clock in tests
	Rand  *rand.Rand
	Sleep func(ctx context.Context, d time.Duration) error

	Logger *helog.Logger
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Tracks:    DefaultTracks,
		Suffixes:  DefaultSuffixes,
		MinSizeMB: 5,
		MaxSizeMB: 25,
		MinDelay:  time.Millisecond,
		MaxDelay:  25 * time.Millisecond,
		Width:     40,
	}
}

// Tester runs the speed test
type Tester struct {
	cfg    Config
	logger *helog.Logger
}

// New creates a new speed tester; zero fields take their defaults
func New(cfg Config) *Tester {
	defaults := DefaultConfig()
	if len(cfg.Tracks) == 0 {
		cfg.Tracks = defaults.Tracks
	}
	if len(cfg.Suffixes) == 0 {
		cfg.Suffixes = defaults.Suffixes
	}
	if cfg.MinSizeMB <= 0 {
		cfg.MinSizeMB = defaults.MinSizeMB
	}
	if cfg.MaxSizeMB < cfg.MinSizeMB {
		cfg.MaxSizeMB = cfg.MinSizeMB
	}
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	if cfg.Width <= 0 {
		cfg.Width = defaults.Width
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleep
	}
	if cfg.Logger == nil {
		cfg.Logger = helog.GetDefault()
	}

	return &Tester{cfg: cfg, logger: cfg.Logger.WithField("component", "speedtest")}
}

// RunSpeedTest downloads every track of the shuffled playlist, drawing a
// progress bar per track. On a terminal the bar is redrawn in place;
// elsewhere only the finished line is written.
func (t *Tester) RunSpeedTest(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "Cyber DJ is downloading musics via 5G...")

	tracks := append([]string(nil), t.cfg.Tracks...)
	t.cfg.Rand.Shuffle(len(tracks), func(i, j int) { tracks[i], tracks[j] = tracks[j], tracks[i] })

	inline := isTerminal(w)
	var total time.Duration
	var totalMB int

	for _, track := range tracks {
		size := t.between(t.cfg.MinSizeMB, t.cfg.MaxSizeMB)
		file := track + t.cfg.Suffixes[t.cfg.Rand.Intn(len(t.cfg.Suffixes))]
		bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(t.cfg.Width))

		var elapsed time.Duration
		for mb := 1; mb <= size; mb++ {
			delay := t.cfg.MinDelay + time.Duration(t.cfg.Rand.Int63n(int64(t.cfg.MaxDelay-t.cfg.MinDelay)+1))
			if err := t.cfg.Sleep(ctx, delay); err != nil {
				return heerror.Wrap(err, "speed test interrupted").
					WithCode(heerror.CodeTimeout).
					WithOperation("speedtest.Run")
			}
			elapsed += delay

			if inline && mb < size {
				fmt.Fprintf(w, "\r%s", t.line(bar, file, mb, size, elapsed))
			}
		}
		if inline {
			fmt.Fprint(w, "\r")
		}
		fmt.Fprintln(w, t.line(bar, file, size, size, elapsed))

		total += elapsed
		totalMB += size
	}

	t.logger.Debug("Speed test completed", helog.Fields{
		"tracks":   len(tracks),
		"mb":       totalMB,
		"duration": total.String(),
	})
	return nil
}

func (t *Tester) line(bar progress.Model, file string, done, size int, elapsed time.Duration) string {
	return fmt.Sprintf("%s %s %d/%dm %s",
		trackStyle.Render(file),
		bar.ViewAs(float64(done)/float64(size)),
		done, size,
		rate(done, elapsed))
}

func (t *Tester) between(min, max int) int {
	return min + t.cfg.Rand.Intn(max-min+1)
}

func rate(mb int, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "[5G]"
	}
	return fmt.Sprintf("[%.1fm/s]", float64(mb)/elapsed.Seconds())
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
