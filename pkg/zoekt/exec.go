package zoekt

import (
	"bytes"
	"context"
	"os/exec"
)

// Executor runs an external command to completion and returns what it wrote
// to stderr. A non-nil error means the command could not be started or
// exited with a non-zero status.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (stderr []byte, err error)
}

// ExecExecutor runs commands with os/exec.
type ExecExecutor struct{}

// Run implements Executor.
func (ExecExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return errBuf.Bytes(), err
}

// Ensure ExecExecutor implements Executor.
var _ Executor = ExecExecutor{}
