package media

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/audiozoom/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleReport = `{
  "streams": [
    {"index": 0, "codec_name": "mp3", "codec_type": "audio", "duration": "61.440000"},
    {"index": 1, "codec_name": "mjpeg", "codec_type": "video", "duration": "0.000000"}
  ],
  "format": {"filename": "shoutout.mp3", "format_name": "mp3", "duration": "61.440000", "size": "983040"}
}`

func TestParseDuration(t *testing.T) {
	seconds, err := ParseDuration(sampleReport)
	require.NoError(t, err)
	assert.Equal(t, 61, seconds)

	seconds, err = ParseDuration(`{"streams":[{"codec_type":"audio","duration":"12.6"},{"codec_type":"audio","duration":"3"}],"format":{}}`)
	require.NoError(t, err)
	assert.Equal(t, 13, seconds, "falls back to the longest audio stream")

	_, err = ParseDuration(`{"format":{}}`)
	assert.ErrorContains(t, err, "no duration")

	_, err = ParseDuration("ffprobe: command not found")
	assert.ErrorContains(t, err, "not JSON")
}

func TestFFProbe_Disabled(t *testing.T) {
	p := NewFFProbe(config.MediaConfig{}, nil)
	assert.False(t, p.Enabled())

	_, err := p.ProbeDuration(context.Background(), strings.NewReader("data"), "a.mp3")
	assert.ErrorIs(t, err, ErrProbeUnavailable)
}

func TestFFProbe_ProbeDuration(t *testing.T) {
	var probedPath string
	var probedContent []byte
	p := &FFProbe{
		enabled: true,
		timeout: time.Second,
		logger:  zap.NewNop(),
		probe: func(path string, timeout time.Duration) (string, error) {
			probedPath = path
			probedContent, _ = os.ReadFile(path)
			assert.Equal(t, time.Second, timeout)
			return sampleReport, nil
		},
	}

	input := strings.NewReader("ID3 fake audio bytes")
	_, _ = input.Seek(4, io.SeekStart)

	seconds, err := p.ProbeDuration(context.Background(), input, "Shout Out.MP3")
	require.NoError(t, err)
	assert.Equal(t, 61, seconds)
	assert.True(t, strings.HasSuffix(probedPath, ".MP3"))
	assert.Equal(t, "ID3 fake audio bytes", string(probedContent))

	_, statErr := os.Stat(probedPath)
	assert.True(t, os.IsNotExist(statErr), "temp file removed")

	rest, _ := io.ReadAll(input)
	assert.Equal(t, "ID3 fake audio bytes", string(rest), "reader rewound")
}

func TestFFProbe_ProbeError(t *testing.T) {
	p := &FFProbe{
		enabled: true,
		logger:  zap.NewNop(),
		probe: func(string, time.Duration) (string, error) {
			return "", errors.New("exit status 1")
		},
	}
	_, err := p.ProbeDuration(context.Background(), strings.NewReader("x"), "x.wav")
	assert.ErrorContains(t, err, "exit status 1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.ProbeDuration(ctx, strings.NewReader("x"), "x.wav")
	assert.ErrorIs(t, err, context.Canceled)
}
