// Package media extracts metadata from uploaded audio files.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/audiozoom/backend/internal/infrastructure/config"
	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// ErrProbeUnavailable is returned when probing is disabled or ffprobe is missing
var ErrProbeUnavailable = errors.New("media: ffprobe unavailable")

// probeFunc runs ffprobe against a file and returns its JSON report
type probeFunc func(path string, timeout time.Duration) (string, error)

// FFProbe reads audio duration with ffprobe
type FFProbe struct {
	enabled bool
	timeout time.Duration
	logger  *zap.Logger
	probe   probeFunc
}

// NewFFProbe creates a prober. Probing is disabled when configured off or
// when no ffprobe binary is on PATH.
func NewFFProbe(cfg config.MediaConfig, logger *zap.Logger) *FFProbe {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &FFProbe{
		enabled: cfg.ProbeEnabled,
		timeout: cfg.ProbeTimeout,
		logger:  logger,
		probe: func(path string, timeout time.Duration) (string, error) {
			return ffmpeg.ProbeWithTimeout(path, timeout, ffmpeg.KwArgs{})
		},
	}
	if p.enabled {
		if _, err := exec.LookPath("ffprobe"); err != nil {
			logger.Warn("ffprobe not found on PATH, audio durations will be zero")
			p.enabled = false
		}
	}
	return p
}

// Enabled reports whether durations can be probed
func (p *FFProbe) Enabled() bool {
	return p.enabled
}

// ProbeDuration returns the duration of the audio in r in whole seconds.
// r is spooled to a temporary file and rewound before returning.
func (p *FFProbe) ProbeDuration(ctx context.Context, r io.ReadSeeker, filename string) (int, error) {
	if !p.enabled {
		return 0, ErrProbeUnavailable
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp("", "probe-*"+filepath.Ext(filename))
	if err != nil {
		return 0, fmt.Errorf("media: create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("media: rewind input: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		return 0, fmt.Errorf("media: spool input: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("media: rewind input: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("media: flush temp file: %w", err)
	}

	report, err := p.probe(tmp.Name(), p.timeout)
	if err != nil {
		return 0, fmt.Errorf("media: ffprobe %s: %w", filename, err)
	}
	seconds, err := ParseDuration(report)
	if err != nil {
		return 0, err
	}
	p.logger.Debug("Probed audio duration", zap.String("file", filename), zap.Int("seconds", seconds))
	return seconds, nil
}

// ParseDuration extracts the duration from an ffprobe JSON report. The
// container duration wins; otherwise the longest audio stream is used.
func ParseDuration(report string) (int, error) {
	if !gjson.Valid(report) {
		return 0, fmt.Errorf("media: ffprobe output is not JSON")
	}
	seconds := gjson.Get(report, "format.duration").Float()
	if seconds <= 0 {
		for _, d := range gjson.Get(report, `streams.#(codec_type=="audio")#.duration`).Array() {
			seconds = math.Max(seconds, d.Float())
		}
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("media: ffprobe report has no duration")
	}
	return int(math.Round(seconds)), nil
}
