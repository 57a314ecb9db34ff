package scenario

import (
	"context"
	"runtime/debug"
)

// Runner sequences the step groups in their fixed dependency order and
// applies the critical/non-critical failure policy. Steps run strictly
// one after another; later steps consume identifiers produced by
// earlier ones, so nothing may race.
type Runner struct {
	env    *Env
	ledger Ledger
}

func NewRunner(env *Env) *Runner {
	return &Runner{env: env}
}

// record runs one step and appends its outcome to the ledger.
func (r *Runner) record(ctx context.Context, name string, fn stepFunc) bool {
	ok := fn(ctx, r.env)
	r.ledger = append(r.ledger, Result{Name: name, Passed: ok})
	return ok
}

// Run executes the whole scenario and returns the ledger. A critical
// step that fails terminates the run immediately with the ledger so
// far. The scratch directory is removed on every exit path, and a
// panicking step is caught here so the run still ends in a summary
// rather than a crash.
func (r *Runner) Run(ctx context.Context) (ledger Ledger) {
	defer r.env.Ctx.Cleanup()
	defer func() {
		if p := recover(); p != nil {
			r.env.Log.Errorf("unexpected fault: %v\n%s", p, debug.Stack())
			ledger = r.ledger
		}
	}()

	// Health first, then registration. Only the first registration is
	// critical: every later step threads at least the owner identity.
	r.record(ctx, "Health Check", stepHealth)

	if !r.record(ctx, "Agent Registration", stepRegisterOwner) {
		r.env.Log.Printf("\nCritical: registration failed, cannot continue")
		return r.ledger
	}
	r.record(ctx, "Second Agent Registration", stepRegisterContributor)
	r.record(ctx, "Third Agent Registration", stepRegisterRandom)

	r.record(ctx, "Org Creation", stepCreateOrg)
	r.record(ctx, "List Orgs", stepListOrgs)

	if !r.record(ctx, "Project Creation", stepCreateProject) {
		r.env.Log.Printf("\nCritical: project creation failed")
		return r.ledger
	}
	r.record(ctx, "List Projects", stepListProjects)
	r.record(ctx, "Get Project", stepGetProject)
	r.record(ctx, "My Projects", stepMyProjects)

	// Git bootstrap: owner seeds main, the contributor is granted
	// write access, then pushes the branch the first PR comes from.
	if !r.record(ctx, "Owner Git Setup", stepOwnerGitSetup) {
		r.env.Log.Printf("\nCritical: owner git setup failed")
		return r.ledger
	}
	if !r.record(ctx, "Add Contributor", stepAddCollaborator) {
		r.env.Log.Printf("\nCritical: failed to add contributor")
		return r.ledger
	}
	if !r.record(ctx, "Contributor Creates Branch", stepContributorBranch) {
		r.env.Log.Printf("\nCritical: contributor git operations failed")
		return r.ledger
	}

	r.record(ctx, "Create Issue", stepCreateIssue)
	r.record(ctx, "List Issues", stepListIssues)
	r.record(ctx, "Get Issue", stepGetIssue)
	r.record(ctx, "Issue Comments", stepIssueComments)
	r.record(ctx, "Issue Labels", stepIssueLabels)
	r.record(ctx, "Issue Assignees", stepIssueAssignees)
	r.record(ctx, "Close/Reopen Issue", stepCloseReopenIssue)

	if !r.record(ctx, "Contributor Joins Project", stepContributorJoins) {
		r.env.Log.Printf("\nCritical: contributor failed to join project")
		return r.ledger
	}

	// PR lifecycle is gated on creation; once created, every sub-step
	// runs regardless of the previous sub-step's outcome.
	if r.record(ctx, "Create PR", stepCreatePR) {
		r.record(ctx, "List PRs", stepListPRs)
		r.record(ctx, "Get PR", stepGetPR)
		r.record(ctx, "PR Review", stepPRReview)
		r.record(ctx, "PR Comments", stepPRComments)
		r.record(ctx, "PR Reactions", stepPRReactions)
		r.record(ctx, "PR Merge", stepPRMerge)
	}

	r.record(ctx, "List Maintainers", stepListMaintainers)
	r.record(ctx, "Add Maintainer", stepAddMaintainer)

	// Open-source contribution chain with nested gating: each link
	// only makes sense if the previous one produced its identifier.
	if r.record(ctx, "Random Agent Joins", stepRandomJoins) {
		if r.record(ctx, "Random Agent Creates Branch", stepRandomBranch) {
			if r.record(ctx, "Random Agent Creates PR", stepRandomCreatesPR) {
				r.record(ctx, "Contributor Reviews Random PR", stepContributorReviewsRandomPR)
				r.record(ctx, "Contributor Merges Random PR", stepContributorMergesRandomPR)
			}
		}
	}

	r.record(ctx, "Remove Maintainer", stepRemoveMaintainer)

	r.record(ctx, "Succession Status", stepSuccessionStatus)

	r.record(ctx, "Feed", stepFeed)
	r.record(ctx, "Action Commands", stepActionCommands)

	r.record(ctx, "Engagement", stepEngagement)

	r.record(ctx, "Viral Feeds", stepViralFeeds)

	return r.ledger
}
