package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ai-visionboard-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

// --- fakes ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeFrameSelector struct {
	delay time.Duration
	err   error
	calls int32
}

func (f *fakeFrameSelector) SelectSharpestFrame(ctx context.Context, videoPath, workDir string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	framePath := filepath.Join(workDir, "frame-1.jpg")
	if err := os.WriteFile(framePath, []byte("jpeg"), 0o644); err != nil {
		return "", err
	}
	return framePath, nil
}

type fakeAudioExtractor struct {
	err   error
	calls int32
}

func (f *fakeAudioExtractor) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return "", f.err
	}
	audioPath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".mp3"
	if err := os.WriteFile(audioPath, []byte("mp3"), 0o644); err != nil {
		return "", err
	}
	return audioPath, nil
}

type fakeTranscriber struct {
	delay      time.Duration
	transcript string
	err        error
	calls      int32
	gotAudio   string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	f.gotAudio = audioPath
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.transcript, nil
}

type fakeVision struct {
	answer   string
	err      error
	calls    int32
	gotImage string
	gotText  string
}

func (f *fakeVision) Answer(ctx context.Context, imagePath, prompt string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	f.gotImage = imagePath
	f.gotText = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

type fakeSynthesizer struct {
	audio string
	err   error
	calls int32
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.audio)), nil
}

type pipelineFakes struct {
	frames      *fakeFrameSelector
	extractor   *fakeAudioExtractor
	transcriber *fakeTranscriber
	vision      *fakeVision
	synthesizer *fakeSynthesizer
}

func newPipeline(f pipelineFakes) IQueryService {
	return NewQueryService(f.frames, f.extractor, f.transcriber, f.vision, f.synthesizer, nopLogger{})
}

func defaultFakes() pipelineFakes {
	return pipelineFakes{
		frames:      &fakeFrameSelector{},
		extractor:   &fakeAudioExtractor{},
		transcriber: &fakeTranscriber{transcript: "Where am I?"},
		vision:      &fakeVision{answer: "You are in a kitchen."},
		synthesizer: &fakeSynthesizer{audio: "mp3-bytes"},
	}
}

func writeTempVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "video-test.mp4")
	assert.NoError(t, os.WriteFile(path, []byte("container"), 0o644))
	return path
}

// --- tests ---

func TestProcessQuerySeparateAudioHappyPath(t *testing.T) {
	fakes := defaultFakes()
	svc := newPipeline(fakes)

	videoPath := writeTempVideo(t)
	audioPath := filepath.Join(filepath.Dir(videoPath), "audio-test.wav")
	assert.NoError(t, os.WriteFile(audioPath, []byte("wav"), 0o644))

	result, err := svc.ProcessQuery(context.Background(), &ProcessQueryRequest{
		BoardToken: "b1",
		DeviceType: DeviceSeparateAudio,
		VideoPath:  videoPath,
		AudioPath:  audioPath,
	})
	assert.NoError(t, err)

	assert.Equal(t, "Where am I?", result.Query.Transcript)
	assert.Equal(t, "You are in a kitchen.", result.Query.ResponseText)
	assert.NotEmpty(t, result.Query.FramePath)

	streamed, err := io.ReadAll(result.Audio)
	assert.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(streamed))

	// Device supplied the audio, so the extractor must not run.
	assert.EqualValues(t, 0, fakes.extractor.calls)
	assert.Equal(t, audioPath, fakes.transcriber.gotAudio)
}

func TestProcessQueryEmbeddedAudioExtractsFirst(t *testing.T) {
	fakes := defaultFakes()
	svc := newPipeline(fakes)

	videoPath := writeTempVideo(t)

	result, err := svc.ProcessQuery(context.Background(), &ProcessQueryRequest{
		BoardToken: "b1",
		DeviceType: DeviceEmbeddedAudio,
		VideoPath:  videoPath,
	})
	assert.NoError(t, err)
	defer result.Audio.Close()

	assert.EqualValues(t, 1, fakes.extractor.calls)
	assert.NotEmpty(t, result.Query.AudioPath)
	assert.Equal(t, result.Query.AudioPath, fakes.transcriber.gotAudio)
}

func TestProcessQueryOrderIndependence(t *testing.T) {
	// Run once with the frame branch slow, once with the transcript branch
	// slow; the resulting query state must be identical.
	run := func(frameDelay, transcriptDelay time.Duration) *Query {
		fakes := defaultFakes()
		fakes.frames.delay = frameDelay
		fakes.transcriber.delay = transcriptDelay
		svc := newPipeline(fakes)

		result, err := svc.ProcessQuery(context.Background(), &ProcessQueryRequest{
			BoardToken: "b1",
			DeviceType: DeviceEmbeddedAudio,
			VideoPath:  writeTempVideo(t),
		})
		assert.NoError(t, err)
		defer result.Audio.Close()

		// Vision must have seen both inputs regardless of finish order.
		assert.NotEmpty(t, fakes.vision.gotImage)
		assert.Equal(t, "Where am I?", fakes.vision.gotText)
		return result.Query
	}

	frameSlow := run(30*time.Millisecond, 0)
	transcriptSlow := run(0, 30*time.Millisecond)

	assert.Equal(t, frameSlow.Transcript, transcriptSlow.Transcript)
	assert.Equal(t, frameSlow.ResponseText, transcriptSlow.ResponseText)
	assert.Equal(t, filepath.Base(frameSlow.FramePath), filepath.Base(transcriptSlow.FramePath))
}

func TestProcessQueryValidationRunsNothing(t *testing.T) {
	cases := []struct {
		name string
		req  *ProcessQueryRequest
	}{
		{"missing token", &ProcessQueryRequest{DeviceType: DeviceEmbeddedAudio, VideoPath: "v.mp4"}},
		{"missing video", &ProcessQueryRequest{BoardToken: "b1", DeviceType: DeviceEmbeddedAudio}},
		{"bad device type", &ProcessQueryRequest{BoardToken: "b1", DeviceType: "toaster", VideoPath: "v.mp4"}},
		{"separate audio without audio", &ProcessQueryRequest{BoardToken: "b1", DeviceType: DeviceSeparateAudio, VideoPath: "v.mp4"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fakes := defaultFakes()
			svc := newPipeline(fakes)

			_, err := svc.ProcessQuery(context.Background(), tc.req)
			assert.True(t, apperror.IsValidation(err), "expected validation error, got %v", err)

			assert.EqualValues(t, 0, fakes.frames.calls)
			assert.EqualValues(t, 0, fakes.extractor.calls)
			assert.EqualValues(t, 0, fakes.transcriber.calls)
			assert.EqualValues(t, 0, fakes.vision.calls)
			assert.EqualValues(t, 0, fakes.synthesizer.calls)
		})
	}
}

func TestProcessQueryTranscriptionFailureCleansUp(t *testing.T) {
	fakes := defaultFakes()
	fakes.transcriber.err = errors.New("upstream 500")
	svc := newPipeline(fakes)

	videoPath := writeTempVideo(t)

	_, err := svc.ProcessQuery(context.Background(), &ProcessQueryRequest{
		BoardToken: "b1",
		DeviceType: DeviceEmbeddedAudio,
		VideoPath:  videoPath,
	})
	assert.Error(t, err)
	assert.Equal(t, apperror.KindStage, apperror.KindOf(err))

	// No persistence happens on failure and the temp files are gone.
	assert.NoFileExists(t, videoPath)
	entries, readErr := os.ReadDir(filepath.Dir(videoPath))
	assert.NoError(t, readErr)
	assert.Empty(t, entries)

	assert.EqualValues(t, 0, fakes.vision.calls)
	assert.EqualValues(t, 0, fakes.synthesizer.calls)
}

func TestProcessQueryFrameFailureCancelsSibling(t *testing.T) {
	fakes := defaultFakes()
	fakes.frames.err = errors.New("no frames")
	fakes.transcriber.delay = 5 * time.Second
	svc := newPipeline(fakes)

	videoPath := writeTempVideo(t)

	start := time.Now()
	_, err := svc.ProcessQuery(context.Background(), &ProcessQueryRequest{
		BoardToken: "b1",
		DeviceType: DeviceEmbeddedAudio,
		VideoPath:  videoPath,
	})
	assert.Error(t, err)

	// Fail-fast: the slow transcription branch is cancelled, not awaited.
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.NoFileExists(t, videoPath)
}

func TestProcessQueryVisionFailureCleansUp(t *testing.T) {
	fakes := defaultFakes()
	fakes.vision.err = errors.New("upstream 429")
	svc := newPipeline(fakes)

	videoPath := writeTempVideo(t)

	_, err := svc.ProcessQuery(context.Background(), &ProcessQueryRequest{
		BoardToken: "b1",
		DeviceType: DeviceEmbeddedAudio,
		VideoPath:  videoPath,
	})
	assert.Error(t, err)
	assert.Equal(t, apperror.KindStage, apperror.KindOf(err))

	entries, readErr := os.ReadDir(filepath.Dir(videoPath))
	assert.NoError(t, readErr)
	assert.Empty(t, entries)

	assert.EqualValues(t, 0, fakes.synthesizer.calls)
}

func TestParseDeviceType(t *testing.T) {
	rpi, ok := ParseDeviceType("rpi")
	assert.True(t, ok)
	assert.Equal(t, DeviceSeparateAudio, rpi)

	android, ok := ParseDeviceType("android")
	assert.True(t, ok)
	assert.Equal(t, DeviceEmbeddedAudio, android)

	_, ok = ParseDeviceType("ios")
	assert.False(t, ok)
}
