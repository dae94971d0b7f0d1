package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// runFFmpeg executes ffmpeg with the given args, failing with the combined
// output so codec errors are readable in logs.
func runFFmpeg(ctx context.Context, args []string) error {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	cmd.Env = os.Environ()

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\noutput: %s", err, string(output))
	}

	return nil
}

// runFFprobe executes ffprobe and returns its stdout.
func runFFprobe(ctx context.Context, args []string) ([]byte, error) {
	ffprobePath, err := exec.LookPath("ffprobe")
	if err != nil {
		return nil, fmt.Errorf("ffprobe not found in PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, ffprobePath, args...)
	cmd.Env = os.Environ()

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return output, nil
}
