// Package gitx runs the external git client for data-plane operations.
package gitx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExitError carries the captured output of a failed git invocation.
type ExitError struct {
	Args   []string
	Stdout string
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("git %s: %v: %s", strings.Join(e.Args, " "), e.Err, strings.TrimSpace(e.Stderr))
}

func (e *ExitError) Unwrap() error { return e.Err }

// Runner invokes git synchronously in a working directory.
type Runner struct {
	// Env holds extra environment entries (KEY=VALUE) appended to the
	// process environment for every invocation.
	Env []string
}

// Run executes git with args in dir. On success it returns trimmed
// stdout; on non-zero exit it returns an *ExitError with both streams.
func (r *Runner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &ExitError{
			Args:   args,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Clone clones url into target under parent.
func (r *Runner) Clone(ctx context.Context, parent, url, target string) error {
	_, err := r.Run(ctx, parent, "clone", url, target)
	return err
}

// ConfigIdentity sets the commit identity for a checkout and disables
// commit signing, so commits succeed on hosts without a signing key.
func (r *Runner) ConfigIdentity(ctx context.Context, dir, name, email string) error {
	for _, kv := range [][2]string{
		{"user.name", name},
		{"user.email", email},
		{"commit.gpgsign", "false"},
	} {
		if _, err := r.Run(ctx, dir, "config", kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// CheckoutNew creates and switches to a new branch.
func (r *Runner) CheckoutNew(ctx context.Context, dir, branch string) error {
	_, err := r.Run(ctx, dir, "checkout", "-b", branch)
	return err
}

// CommitFile stages path and commits it with message.
func (r *Runner) CommitFile(ctx context.Context, dir, path, message string) error {
	if _, err := r.Run(ctx, dir, "add", path); err != nil {
		return err
	}
	_, err := r.Run(ctx, dir, "commit", "-m", message)
	return err
}

// Push pushes branch to origin, setting the upstream.
func (r *Runner) Push(ctx context.Context, dir, branch string) error {
	_, err := r.Run(ctx, dir, "push", "-u", "origin", branch)
	return err
}

// LastAuthor returns the head commit's author as "name <email>".
func (r *Runner) LastAuthor(ctx context.Context, dir string) (string, error) {
	return r.Run(ctx, dir, "log", "-1", "--format=%an <%ae>")
}
