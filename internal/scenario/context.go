// Package scenario holds the probe's run state, the verification steps,
// and the runner that sequences them.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Actor is one simulated identity. Its fields are written once, by the
// registration step that owns the slot, and read-only afterwards.
type Actor struct {
	Name          string
	APIKey        string
	GiteaUsername string
	GiteaEmail    string
	GiteaToken    string
}

// PullRequest records a PR created during the run.
type PullRequest struct {
	Number int64
	Branch string
}

// Context is the single mutable record of cross-step state. Every
// identifier stored here was returned by a prior successful call in the
// same run. The runner owns it; steps write only the fields they are
// documented to own.
type Context struct {
	// Suffix makes every generated name collision-resistant.
	Suffix string
	// ScratchDir is the per-run root for git checkouts.
	ScratchDir string

	Owner       Actor
	Contributor Actor
	Random      Actor

	OrgName     string
	ProjectID   string
	ProjectName string
	GiteaOrg    string
	GiteaRepo   string

	IssueNumber int64
	PR          PullRequest // contributor's PR
	PR2         PullRequest // random agent's open-source PR

	cleanupOnce sync.Once
}

// NewContext creates a run context with a fresh suffix and scratch
// directory. root empty means the system temp directory.
func NewContext(root string) (*Context, error) {
	if root == "" {
		root = os.TempDir()
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	scratch := filepath.Join(root, "synprobe-e2e-"+suffix)
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return nil, fmt.Errorf("creating scratch dir: %w", err)
	}
	return &Context{Suffix: suffix, ScratchDir: scratch}, nil
}

// Cleanup removes the scratch directory. Safe to call more than once;
// only the first call does work.
func (c *Context) Cleanup() {
	c.cleanupOnce.Do(func() {
		if c.ScratchDir != "" {
			os.RemoveAll(c.ScratchDir)
		}
	})
}
