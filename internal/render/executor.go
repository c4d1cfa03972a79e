package render

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Execute runs the plan's ffmpeg command. When verbose, stderr is tee'd to
// os.Stderr in real time; otherwise it is captured silently so the pipeline
// can log a tail on failure.
func Execute(ctx context.Context, plan Plan, verbose bool) ExecResult {
	cmd := exec.CommandContext(ctx, plan.Args[0], plan.Args[1:]...)

	var stderrBuf bytes.Buffer
	if verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
