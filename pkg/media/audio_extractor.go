package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNoAudioTrack = errors.New("media: video container has no audio stream")

// AudioExtractor demuxes the audio track of a combined container into a
// standalone file the transcriber can consume.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath string) (string, error)
}

type ffmpegAudioExtractor struct{}

func NewAudioExtractor() AudioExtractor {
	return &ffmpegAudioExtractor{}
}

type ffprobeStreams struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
	} `json:"streams"`
}

// ExtractAudio probes the container first so a silent video fails with
// ErrNoAudioTrack instead of an opaque ffmpeg error, then transcodes the
// audio track to a sibling .mp3.
func (e *ffmpegAudioExtractor) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	output, err := runFFprobe(ctx,
		[]string{"-v", "quiet", "-print_format", "json", "-show_streams", videoPath})
	if err != nil {
		return "", err
	}

	var probe ffprobeStreams
	if err := json.Unmarshal(output, &probe); err != nil {
		return "", fmt.Errorf("parse ffprobe output: %w", err)
	}

	hasAudio := false
	for _, stream := range probe.Streams {
		if stream.CodecType == "audio" {
			hasAudio = true
			break
		}
	}
	if !hasAudio {
		return "", ErrNoAudioTrack
	}

	audioPath := replaceExt(videoPath, ".mp3")
	args := []string{"-y", "-i", videoPath, "-vn", "-acodec", "libmp3lame", "-q:a", "2", audioPath}
	if err := runFFmpeg(ctx, args); err != nil {
		return "", err
	}

	return audioPath, nil
}

func replaceExt(path, newExt string) string {
	if idx := strings.LastIndex(path, "."); idx > strings.LastIndex(path, "/") {
		return path[:idx] + newExt
	}
	return path + newExt
}
