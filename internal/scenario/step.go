package scenario

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"synprobe/internal/config"
	"synprobe/internal/forge"
	"synprobe/internal/gitx"
	"synprobe/internal/progress"
)

// Env bundles everything a step may touch: the run context, the two
// transport clients, the git runner, configuration, and the narrator.
type Env struct {
	Ctx   *Context
	Forge *forge.Client
	Gitea *forge.GiteaClient
	Git   *gitx.Runner
	Cfg   *config.Config
	Log   *progress.Printer
}

// A stepFunc reads the fields it needs from the Env, performs one
// verification, and reports pass/fail. Steps that create identifiers
// store them on the Context for later steps.
type stepFunc func(ctx context.Context, env *Env) bool

// Result is one ledger entry. Ledger order is report order.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// Ledger is the append-only run record.
type Ledger []Result

// Passed counts passing entries.
func (l Ledger) Passed() int {
	n := 0
	for _, r := range l {
		if r.Passed {
			n++
		}
	}
	return n
}

// Failed counts failing entries.
func (l Ledger) Failed() int { return len(l) - l.Passed() }

// AllPassed reports whether every entry passed.
func (l Ledger) AllPassed() bool { return l.Failed() == 0 }

var errBranchNotVisible = errors.New("branch not visible yet")

// settle waits for the git host to serve a just-pushed branch before
// dependent steps query it through the control plane. Best effort: a
// branch that never shows up only costs the poll budget.
func (e *Env) settle(ctx context.Context, token, branch string) {
	s := e.Cfg.Settle
	if !s.Poll {
		select {
		case <-time.After(s.FallbackDelay):
		case <-ctx.Done():
		}
		return
	}

	// BackOff implementations are stateful; always build a fresh one.
	bo := backoff.WithMaxRetries(backoff.NewConstantBackOff(s.Interval), s.MaxTries)
	_ = backoff.Retry(func() error {
		if e.Gitea.BranchExists(ctx, token, e.Ctx.GiteaOrg, e.Ctx.GiteaRepo, branch) {
			return nil
		}
		return errBranchNotVisible
	}, backoff.WithContext(bo, ctx))
}
