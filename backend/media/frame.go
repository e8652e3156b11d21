package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// FirstFrame decodes the first frame of a video clip into a JPEG still via
// ffmpeg. The start of the clip is a deterministic choice: the same video
// always yields the same still for recognition.
func FirstFrame(ctx context.Context, data []byte) ([]byte, error) {
	if !commandExists("ffmpeg") {
		return nil, fmt.Errorf("ffmpeg is not installed")
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-frames:v", "1",
		"-f", "image2", "-c:v", "mjpeg",
		"pipe:1")
	cmd.Stdin = bytes.NewReader(data)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %v: %s", err, stderr.String())
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no frame")
	}
	return out.Bytes(), nil
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
