package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ai-visionboard-be/internal/pkg/apperror"
	"ai-visionboard-be/internal/pkg/logger"
	"ai-visionboard-be/pkg/media"
	"ai-visionboard-be/pkg/stt"
	"ai-visionboard-be/pkg/tts"
	"ai-visionboard-be/pkg/vision"
)

// DeviceType tells the pipeline where the audio lives.
type DeviceType string

const (
	// DeviceSeparateAudio devices upload a dedicated audio file next to the
	// video (rpi-class capture rigs).
	DeviceSeparateAudio DeviceType = "separate-audio"

	// DeviceEmbeddedAudio devices upload a single container whose audio
	// track must be demuxed (android-class phones).
	DeviceEmbeddedAudio DeviceType = "embedded-audio"
)

// ParseDeviceType maps the wire header values onto the internal enum.
func ParseDeviceType(header string) (DeviceType, bool) {
	switch header {
	case "rpi":
		return DeviceSeparateAudio, true
	case "android":
		return DeviceEmbeddedAudio, true
	}
	return "", false
}

// Query is the in-flight state of one request. Stages mutate it in place;
// after persistence it is discarded.
type Query struct {
	BoardToken   string
	DeviceType   DeviceType
	VideoPath    string
	AudioPath    string
	FramePath    string
	Transcript   string
	ResponseText string
	StartedAt    time.Time
}

// TempArtifacts lists the files the request created on disk, in the order
// they should be removed.
func (q *Query) TempArtifacts() []string {
	paths := make([]string, 0, 3)
	for _, p := range []string{q.VideoPath, q.AudioPath, q.FramePath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

type ProcessQueryRequest struct {
	BoardToken string
	DeviceType DeviceType
	VideoPath  string
	AudioPath  string // required for separate-audio devices, empty otherwise
}

// QueryResult hands the live answer stream plus the finished query state to
// the transport layer.
type QueryResult struct {
	Audio io.ReadCloser
	Query *Query
}

type IQueryService interface {
	ProcessQuery(ctx context.Context, req *ProcessQueryRequest) (*QueryResult, error)
}

type queryService struct {
	frameSelector  media.FrameSelector
	audioExtractor media.AudioExtractor
	transcriber    stt.Provider
	visionProvider vision.Provider
	synthesizer    tts.Provider
	logger         logger.ILogger
}

func NewQueryService(
	frameSelector media.FrameSelector,
	audioExtractor media.AudioExtractor,
	transcriber stt.Provider,
	visionProvider vision.Provider,
	synthesizer tts.Provider,
	sysLogger logger.ILogger,
) IQueryService {
	return &queryService{
		frameSelector:  frameSelector,
		audioExtractor: audioExtractor,
		transcriber:    transcriber,
		visionProvider: visionProvider,
		synthesizer:    synthesizer,
		logger:         sysLogger,
	}
}

// ProcessQuery runs the full pipeline up to the point where the synthesized
// answer starts streaming. Frame selection and audio-plus-transcription run
// concurrently; the vision call waits for both. On any stage failure every
// temp file created so far is removed before the error is returned.
func (s *queryService) ProcessQuery(ctx context.Context, req *ProcessQueryRequest) (*QueryResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	query := &Query{
		BoardToken: req.BoardToken,
		DeviceType: req.DeviceType,
		VideoPath:  req.VideoPath,
		AudioPath:  req.AudioPath,
		StartedAt:  time.Now(),
	}

	s.logger.Info("query", "pipeline started", map[string]interface{}{
		"board_token": query.BoardToken,
		"device_type": string(query.DeviceType),
	})

	if err := s.resolveFrameAndTranscript(ctx, query); err != nil {
		s.cleanup(query)
		return nil, err
	}

	answer, err := s.visionProvider.Answer(ctx, query.FramePath, query.Transcript)
	if err != nil {
		s.cleanup(query)
		return nil, apperror.Stage("vision answer failed", err)
	}
	query.ResponseText = answer

	audio, err := s.synthesizer.Synthesize(ctx, answer)
	if err != nil {
		s.cleanup(query)
		return nil, apperror.Stage("speech synthesis failed", err)
	}

	s.logger.Info("query", "pipeline ready to stream", map[string]interface{}{
		"board_token": query.BoardToken,
		"elapsed_ms":  time.Since(query.StartedAt).Milliseconds(),
	})

	return &QueryResult{Audio: audio, Query: query}, nil
}

func (s *queryService) validate(req *ProcessQueryRequest) error {
	if req.BoardToken == "" {
		return apperror.Validation("board token is required")
	}
	if req.DeviceType != DeviceSeparateAudio && req.DeviceType != DeviceEmbeddedAudio {
		return apperror.Validation("unknown device type")
	}
	if req.VideoPath == "" {
		return apperror.Validation("video upload is required")
	}
	if req.DeviceType == DeviceSeparateAudio && req.AudioPath == "" {
		return apperror.Validation("audio upload is required for this device type")
	}
	return nil
}

// resolveFrameAndTranscript fans out into two goroutines: one picks the
// sharpest frame, the other resolves the audio source and transcribes it.
// The first failure cancels the sibling via the shared context. The final
// Query state does not depend on which branch finishes first.
func (s *queryService) resolveFrameAndTranscript(parent context.Context, query *Query) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var wg sync.WaitGroup
	var frameErr, transcriptErr error

	wg.Add(2)

	go func() {
		defer wg.Done()
		framePath, err := s.frameSelector.SelectSharpestFrame(ctx, query.VideoPath, filepath.Dir(query.VideoPath))
		if err != nil {
			frameErr = apperror.Stage("frame selection failed", err)
			cancel()
			return
		}
		query.FramePath = framePath
	}()

	go func() {
		defer wg.Done()
		if query.DeviceType == DeviceEmbeddedAudio {
			audioPath, err := s.audioExtractor.ExtractAudio(ctx, query.VideoPath)
			if err != nil {
				transcriptErr = apperror.Stage("audio extraction failed", err)
				cancel()
				return
			}
			query.AudioPath = audioPath
		}

		transcript, err := s.transcriber.Transcribe(ctx, query.AudioPath)
		if err != nil {
			transcriptErr = apperror.Stage("transcription failed", err)
			cancel()
			return
		}
		query.Transcript = transcript
	}()

	wg.Wait()

	if frameErr != nil {
		return frameErr
	}
	if transcriptErr != nil {
		return transcriptErr
	}
	if err := parent.Err(); err != nil {
		return apperror.Stage("request deadline exceeded", err)
	}
	return nil
}

func (s *queryService) cleanup(query *Query) {
	for _, path := range query.TempArtifacts() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("query", "temp file cleanup failed", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
	}
}
