package media

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

var (
	ErrVideoOpen     = errors.New("media: cannot open video container")
	ErrNoFramesFound = errors.New("media: no decodable frames in video")
)

// jpegSOI / jpegEOI delimit each frame in an MJPEG stream.
var (
	jpegSOI = []byte{0xFF, 0xD8}
	jpegEOI = []byte{0xFF, 0xD9}
)

// FrameSelector picks the sharpest still out of a video container.
type FrameSelector interface {
	SelectSharpestFrame(ctx context.Context, videoPath, workDir string) (string, error)
}

type ffmpegFrameSelector struct{}

func NewFrameSelector() FrameSelector {
	return &ffmpegFrameSelector{}
}

// SelectSharpestFrame streams every frame of the video through ffmpeg as
// MJPEG, scores each with the Laplacian variance, and keeps only the current
// winner on disk. At most one candidate file exists at any time; the returned
// path is the final winner.
func (s *ffmpegFrameSelector) SelectSharpestFrame(ctx context.Context, videoPath, workDir string) (string, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-i", videoPath,
		"-f", "image2pipe",
		"-c:v", "mjpeg",
		"-q:v", "2",
		"-",
	)
	cmd.Env = os.Environ()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrVideoOpen, err)
	}

	bestPath, _, frames, scanErr := scanSharpestFrame(stdout, workDir)

	waitErr := cmd.Wait()
	if scanErr != nil {
		removeIfExists(bestPath)
		return "", scanErr
	}
	if frames == 0 {
		if waitErr != nil {
			return "", fmt.Errorf("%w: %v", ErrVideoOpen, waitErr)
		}
		return "", ErrNoFramesFound
	}

	return bestPath, nil
}

// scanSharpestFrame consumes an MJPEG byte stream, splitting it into JPEGs by
// SOI/EOI markers. Ties keep the first frame seen (strict greater-than).
func scanSharpestFrame(r io.Reader, workDir string) (bestPath string, bestScore float64, frames int, err error) {
	reader := bufio.NewReaderSize(r, 1<<20)
	var buf bytes.Buffer
	bestScore = -1

	for {
		chunk := make([]byte, 64*1024)
		n, readErr := reader.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])

			for {
				frame, rest, found := nextJPEG(buf.Bytes())
				if !found {
					break
				}
				remaining := make([]byte, len(rest))
				copy(remaining, rest)
				buf.Reset()
				buf.Write(remaining)

				score, scoreErr := scoreJPEG(frame)
				if scoreErr != nil {
					// Truncated or corrupt frame, skip it.
					continue
				}
				frames++

				if score > bestScore {
					newPath := filepath.Join(workDir, fmt.Sprintf("frame-%d.jpg", frames))
					if writeErr := os.WriteFile(newPath, frame, 0o644); writeErr != nil {
						return bestPath, bestScore, frames, fmt.Errorf("write frame candidate: %w", writeErr)
					}
					removeIfExists(bestPath)
					bestPath = newPath
					bestScore = score
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return bestPath, bestScore, frames, fmt.Errorf("read mjpeg stream: %w", readErr)
		}
	}

	return bestPath, bestScore, frames, nil
}

// nextJPEG returns the first complete SOI..EOI slice in data and the bytes
// after it.
func nextJPEG(data []byte) (frame, rest []byte, found bool) {
	start := bytes.Index(data, jpegSOI)
	if start < 0 {
		return nil, data, false
	}
	end := bytes.Index(data[start+len(jpegSOI):], jpegEOI)
	if end < 0 {
		return nil, data, false
	}
	end = start + len(jpegSOI) + end + len(jpegEOI)
	return data[start:end], data[end:], true
}

func scoreJPEG(frame []byte) (float64, error) {
	img, err := jpeg.Decode(bytes.NewReader(frame))
	if err != nil {
		return 0, err
	}
	return LaplacianVariance(Grayscale(img))
}

func removeIfExists(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
