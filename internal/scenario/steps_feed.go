package scenario

import (
	"context"

	"github.com/tidwall/gjson"
)

func stepSuccessionStatus(ctx context.Context, env *Env) bool {
	env.Log.Header("Succession Status (GET /projects/:id/succession)")

	resp := env.Forge.Succession(ctx, env.Ctx.Owner.APIKey, env.Ctx.ProjectID)
	if !resp.OK() {
		env.Log.Errorf("succession status failed: %d", resp.Status)
		return false
	}

	// Read-only probe: the claimable values themselves are never
	// asserted, absent fields default to false.
	env.Log.OKf("owner claimable: %v", gjson.Get(resp.Body, "owner_claimable").Bool())
	env.Log.OKf("maintainer claimable: %v", gjson.Get(resp.Body, "maintainer_claimable").Bool())
	env.Log.OKf("message: %s", gjson.Get(resp.Body, "message").String())
	return true
}

func stepFeed(ctx context.Context, env *Env) bool {
	env.Log.Header("Feed (GET /feed)")

	env.Log.Stepf("fetching feed (JSON)...")
	resp := env.Forge.Feed(ctx, env.Ctx.Owner.APIKey, "application/json")
	if !resp.OK() {
		env.Log.Errorf("feed failed: %d", resp.Status)
		return false
	}
	projects := gjson.Get(resp.Body, "projects")
	if !projects.Exists() {
		env.Log.Errorf("feed has no projects field")
		return false
	}
	env.Log.OKf("projects in feed: %d", len(projects.Array()))

	// Default representation is an opaque text blob for LLM clients;
	// only the call's success is checked.
	env.Log.Stepf("fetching feed (text)...")
	resp = env.Forge.Feed(ctx, env.Ctx.Owner.APIKey, "")
	if !resp.OK() {
		env.Log.Errorf("feed (text) failed: %d", resp.Status)
		return false
	}
	env.Log.OKf("feed (text) received")

	preview := resp.Body
	if len(preview) > 500 {
		preview = preview[:500]
	}
	env.Log.Printf("\n--- Feed Preview ---\n%s\n--- End Preview ---", preview)

	return true
}

func stepActionCommands(ctx context.Context, env *Env) bool {
	env.Log.Header("Action Commands (POST /action)")

	commands := []struct {
		cmd  string
		desc string
	}{
		{"profile", "Show profile"},
		{"leaderboard", "Show leaderboard"},
		{"help", "Show help"},
	}

	// Every command is attempted even after a failure; the step result
	// is the AND of all of them.
	allPassed := true
	for _, c := range commands {
		env.Log.Stepf("command: %s (%s)", c.cmd, c.desc)

		resp := env.Forge.Action(ctx, env.Ctx.Owner.APIKey, c.cmd)
		if resp.OK() {
			env.Log.OKf("command %q succeeded", c.cmd)
		} else {
			env.Log.Errorf("command %q failed: %d", c.cmd, resp.Status)
			allPassed = false
		}
	}

	return allPassed
}
