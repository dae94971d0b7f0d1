package integration

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"ai-visionboard-be/pkg/media"

	"github.com/stretchr/testify/assert"
)

func requireFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("Skipping integration test: ffmpeg not in PATH")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("Skipping integration test: ffprobe not in PATH")
	}
}

// makeTestVideo synthesizes a short silent test-pattern clip.
func makeTestVideo(t *testing.T, withAudio bool) string {
	t.Helper()
	out := filepath.Join(t.TempDir(), "clip.mp4")

	args := []string{"-y", "-f", "lavfi", "-i", "testsrc=duration=1:size=320x240:rate=10"}
	if withAudio {
		args = append(args, "-f", "lavfi", "-i", "sine=frequency=440:duration=1")
	}
	args = append(args, "-pix_fmt", "yuv420p", out)

	if err := exec.Command("ffmpeg", args...).Run(); err != nil {
		t.Skipf("ffmpeg could not synthesize a test clip: %v", err)
	}
	return out
}

func TestSelectSharpestFrameOnRealVideo(t *testing.T) {
	requireFFmpeg(t)

	videoPath := makeTestVideo(t, false)
	selector := media.NewFrameSelector()

	framePath, err := selector.SelectSharpestFrame(context.Background(), videoPath, filepath.Dir(videoPath))
	assert.NoError(t, err)
	assert.FileExists(t, framePath)
}

func TestExtractAudioFromRealVideo(t *testing.T) {
	requireFFmpeg(t)

	videoPath := makeTestVideo(t, true)
	extractor := media.NewAudioExtractor()

	audioPath, err := extractor.ExtractAudio(context.Background(), videoPath)
	assert.NoError(t, err)
	assert.FileExists(t, audioPath)
}

func TestExtractAudioWithoutAudioTrack(t *testing.T) {
	requireFFmpeg(t)

	videoPath := makeTestVideo(t, false)
	extractor := media.NewAudioExtractor()

	_, err := extractor.ExtractAudio(context.Background(), videoPath)
	assert.ErrorIs(t, err, media.ErrNoAudioTrack)
}

func TestSelectSharpestFrameUnreadableContainer(t *testing.T) {
	requireFFmpeg(t)

	selector := media.NewFrameSelector()

	_, err := selector.SelectSharpestFrame(context.Background(), "does-not-exist.mp4", t.TempDir())
	assert.Error(t, err)
}
