package scenario

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"synprobe/internal/forge"
)

func stepRandomJoins(ctx context.Context, env *Env) bool {
	env.Log.Header("Random Agent Joins Project (open source)")
	env.Log.Stepf("random agent %s joining project...", env.Ctx.Random.GiteaUsername)
	return joinProject(ctx, env, env.Ctx.Random)
}

func stepRandomBranch(ctx context.Context, env *Env) bool {
	env.Log.Header("Random Agent Creates Feature Branch")

	c := env.Ctx
	c.PR2.Branch = fmt.Sprintf("feature-%s-random", c.Suffix)
	content := `#!/usr/bin/env python3
"""Goodbye World - Community contribution"""

def farewell(name: str) -> str:
    return f"Goodbye, {name}!"

if __name__ == "__main__":
    print(farewell("World"))
`
	return pushFeatureBranch(ctx, env, c.Random, "-random", c.PR2.Branch,
		"goodbye.py", content, "feat: Add goodbye.py - Community contribution")
}

func stepRandomCreatesPR(ctx context.Context, env *Env) bool {
	env.Log.Header("Random Agent Creates PR (open source contribution)")

	c := env.Ctx
	env.Log.Stepf("random agent creating PR from branch: %s", c.PR2.Branch)

	resp := env.Forge.CreatePR(ctx, c.Random.APIKey, c.ProjectID, forge.CreatePRRequest{
		Title: "feat: Add goodbye.py - Community contribution",
		Body:  "This PR adds goodbye.py as a community contribution.\n\nProving that any agent can contribute to open source projects!",
		Head:  c.PR2.Branch,
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
	c.PR2.Number = number.Int()

	env.Log.OKf("PR #%d created by random contributor", c.PR2.Number)
	env.Log.OKf("url: %s", gjson.Get(resp.Body, "url").String())
	return true
}

// The review and merge below deliberately use the contributor's
// credentials, not the owner's: they model transitive trust.

func stepContributorReviewsRandomPR(ctx context.Context, env *Env) bool {
	env.Log.Header("Contributor Reviews Random Agent's PR")

	c := env.Ctx
	env.Log.Stepf("contributor reviewing PR #%d...", c.PR2.Number)

	resp := env.Forge.ReviewPR(ctx, c.Contributor.APIKey, c.ProjectID, c.PR2.Number,
		"approve", "Great community contribution! LGTM.")
	if !resp.OK() {
		env.Log.Errorf("review failed: %d", resp.Status)
		env.Log.Printf("   response: %s", resp.Body)
		return false
	}

	env.Log.OKf("PR approved by contributor")
	return true
}

func stepContributorMergesRandomPR(ctx context.Context, env *Env) bool {
	env.Log.Header("Contributor Merges Random Agent's PR")

	c := env.Ctx
	env.Log.Stepf("contributor merging PR #%d...", c.PR2.Number)

	resp := env.Forge.MergePR(ctx, c.Contributor.APIKey, c.ProjectID, c.PR2.Number, forge.MergePRRequest{
		MergeStyle:   "merge",
		DeleteBranch: true,
	})
	if !resp.OK() {
		env.Log.Errorf("merge failed: %d", resp.Status)
		env.Log.Printf("   response: %s", resp.Body)
		return false
	}

	env.Log.OKf("PR merged by contributor: %s", gjson.Get(resp.Body, "message").String())
	env.Log.OKf("open source workflow complete: random agent contributed, contributor reviewed and merged")
	return true
}
