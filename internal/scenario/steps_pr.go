package scenario

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"synprobe/internal/forge"
)

// joinProject is the fallback join protocol: try the direct endpoint,
// and if that path is absent server-side, resolve the project's 1-based
// position in the actor's feed and issue a "join <index>" action.
func joinProject(ctx context.Context, env *Env, actor Actor) bool {
	resp := env.Forge.JoinProject(ctx, actor.APIKey, env.Ctx.ProjectID)
	if resp.OK() {
		env.Log.OKf("joined project via direct endpoint")
		return true
	}
	env.Log.Infof("direct join returned: %d, trying action command...", resp.Status)

	feed := env.Forge.Feed(ctx, actor.APIKey, "application/json")
	if !feed.OK() {
		env.Log.Errorf("failed to get feed: %d", feed.Status)
		return false
	}

	index := 0
	for i, p := range gjson.Get(feed.Body, "projects").Array() {
		if p.Get("id").String() == env.Ctx.ProjectID {
			index = i + 1
			break
		}
	}
	if index == 0 {
		// Index resolution failure, distinct from a command failure.
		env.Log.Errorf("project %s not found in feed", env.Ctx.ProjectID)
		return false
	}

	env.Log.Stepf("found project at index %d, joining...", index)
	resp = env.Forge.Action(ctx, actor.APIKey, fmt.Sprintf("join %d", index))
	if resp.OK() {
		env.Log.OKf("joined project via action command")
		return true
	}

	env.Log.Errorf("join failed: %d", resp.Status)
	env.Log.Printf("   response: %s", resp.Body)
	return false
}

func stepContributorJoins(ctx context.Context, env *Env) bool {
	env.Log.Header("Contributor Joins Project")
	env.Log.Stepf("contributor joining project %s...", env.Ctx.ProjectName)
	return joinProject(ctx, env, env.Ctx.Contributor)
}

func stepCreatePR(ctx context.Context, env *Env) bool {
	env.Log.Header("Create PR (POST /projects/:id/prs) - by contributor")

	c := env.Ctx
	env.Log.Stepf("contributor creating PR from branch: %s", c.PR.Branch)

	resp := env.Forge.CreatePR(ctx, c.Contributor.APIKey, c.ProjectID, forge.CreatePRRequest{
		Title: fmt.Sprintf("fix: Add hello.py - Fixes #%s", c.Suffix),
		Body:  fmt.Sprintf("This PR adds hello.py to fix issue #%s.\n\nCreated by contributor in E2E test.", c.Suffix),
		Head:  c.PR.Branch,
		Base:  "main",
	})
	if !resp.OK() {
		env.Log.Errorf("create PR failed: %d", resp.Status)
		env.Log.Printf("   response: %s", resp.Body)
		return false
	}

	number := gjson.Get(resp.Body, "number")
	if !number.Exists() {
		env.Log.Errorf("PR response has no number")
		return false
	}
	c.PR.Number = number.Int()

	env.Log.OKf("PR #%d created by contributor", c.PR.Number)
	env.Log.OKf("url: %s", gjson.Get(resp.Body, "url").String())
	return true
}

func stepListPRs(ctx context.Context, env *Env) bool {
	env.Log.Header("List PRs (GET /projects/:id/prs)")

	resp := env.Forge.ListPRs(ctx, env.Ctx.ProjectID)
	if !resp.OK() {
		env.Log.Errorf("list PRs failed: %d", resp.Status)
		return false
	}

	env.Log.OKf("found %d PRs", len(gjson.Parse(resp.Body).Array()))
	return true
}

func stepGetPR(ctx context.Context, env *Env) bool {
	env.Log.Header("Get PR (GET /projects/:id/prs/:number)")

	resp := env.Forge.GetPR(ctx, env.Ctx.ProjectID, env.Ctx.PR.Number)
	if !resp.OK() {
		env.Log.Errorf("get PR failed: %d", resp.Status)
		return false
	}

	state := gjson.Get(resp.Body, "state")
	if !state.Exists() {
		env.Log.Errorf("PR response has no state")
		return false
	}

	env.Log.OKf("PR #%d: %s",
		gjson.Get(resp.Body, "number").Int(),
		gjson.Get(resp.Body, "title").String())
	env.Log.OKf("state: %s", state.String())
	env.Log.OKf("merged: %v", gjson.Get(resp.Body, "merged").Bool())
	return true
}

func stepPRReview(ctx context.Context, env *Env) bool {
	env.Log.Header("PR Review (POST /projects/:id/prs/:number/reviews) - owner reviews")

	c := env.Ctx
	env.Log.Stepf("owner reviewing PR #%d...", c.PR.Number)

	resp := env.Forge.ReviewPR(ctx, c.Owner.APIKey, c.ProjectID, c.PR.Number,
		"approve", "LGTM! Approved by project owner.")
	if !resp.OK() {
		env.Log.Errorf("review failed: %d", resp.Status)
		env.Log.Printf("   response: %s", resp.Body)
		return false
	}

	env.Log.OKf("PR approved by owner")
	return true
}

func stepPRComments(ctx context.Context, env *Env) bool {
	env.Log.Header("PR Comments")

	c := env.Ctx

	env.Log.Stepf("adding PR comment...")
	resp := env.Forge.CreatePRComment(ctx, c.Owner.APIKey, c.ProjectID, c.PR.Number,
		"Test comment on PR from E2E test.")
	if !resp.OK() {
		env.Log.Errorf("add comment failed: %d", resp.Status)
		return false
	}
	env.Log.OKf("comment added: id %d", gjson.Get(resp.Body, "id").Int())

	env.Log.Stepf("listing PR comments...")
	resp = env.Forge.ListPRComments(ctx, c.ProjectID, c.PR.Number)
	if !resp.OK() {
		env.Log.Errorf("list comments failed: %d", resp.Status)
		return false
	}
	env.Log.OKf("found %d comments", len(gjson.Parse(resp.Body).Array()))

	return true
}

func stepPRReactions(ctx context.Context, env *Env) bool {
	env.Log.Header("PR Reactions")

	c := env.Ctx

	env.Log.Stepf("adding reaction...")
	resp := env.Forge.AddPRReaction(ctx, c.Owner.APIKey, c.ProjectID, c.PR.Number, "+1")
	if !resp.OK() {
		env.Log.Errorf("add reaction failed: %d", resp.Status)
		env.Log.Printf("   response: %s", resp.Body)
		return false
	}
	env.Log.OKf("reaction added: %s", gjson.Get(resp.Body, "content").String())

	env.Log.Stepf("listing reactions...")
	resp = env.Forge.ListPRReactions(ctx, c.ProjectID, c.PR.Number)
	if !resp.OK() {
		env.Log.Errorf("list reactions failed: %d", resp.Status)
		return false
	}
	env.Log.OKf("found %d reactions", len(gjson.Parse(resp.Body).Array()))

	return true
}

func stepPRMerge(ctx context.Context, env *Env) bool {
	env.Log.Header("Merge PR (POST /projects/:id/prs/:number/merge) - owner merges")

	c := env.Ctx
	env.Log.Stepf("owner merging PR #%d (created by contributor)...", c.PR.Number)

	resp := env.Forge.MergePR(ctx, c.Owner.APIKey, c.ProjectID, c.PR.Number, forge.MergePRRequest{
		MergeStyle:   "merge",
		DeleteBranch: true,
	})
	if !resp.OK() {
		env.Log.Errorf("merge failed: %d", resp.Status)
		env.Log.Printf("   response: %s", resp.Body)
		return false
	}

	env.Log.OKf("PR merged by owner: %s", gjson.Get(resp.Body, "message").String())
	return true
}
