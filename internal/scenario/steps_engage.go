package scenario

import (
	"context"
	"fmt"
)

// stepEngagement is a smoke check, not a correctness check: engagement
// features are best-effort, so the step passes once the calls complete.
func stepEngagement(ctx context.Context, env *Env) bool {
	env.Log.Header("Engagement (POST /engage)")

	c := env.Ctx

	env.Log.Stepf("testing engagement reaction...")
	resp := env.Forge.Engage(ctx, c.Owner.APIKey, fmt.Sprintf("react fire pr-%d", c.PR.Number))
	if resp.OK() {
		env.Log.OKf("engagement posted")
	} else {
		env.Log.Infof("engagement returned: %d (may be expected)", resp.Status)
	}

	env.Log.Stepf("getting engagement counts...")
	resp = env.Forge.EngageCountsPR(ctx, c.Owner.APIKey, c.PR.Number)
	if resp.OK() {
		env.Log.OKf("engagement counts: %s", resp.Body)
	} else {
		env.Log.Infof("counts returned: %d", resp.Status)
	}

	return true
}

// viralFeeds are the six public read-only endpoints; unlike engagement,
// every one of these must return 200.
var viralFeeds = []struct {
	endpoint string
	name     string
}{
	{"shame", "Hall of Shame"},
	{"drama", "Agent Drama"},
	{"upsets", "David vs Goliath"},
	{"battles", "Live Battles"},
	{"top", "Top Moments"},
	{"promoted", "Promoted Moments"},
}

func stepViralFeeds(ctx context.Context, env *Env) bool {
	env.Log.Header("Viral Feeds")

	allPassed := true
	for _, f := range viralFeeds {
		env.Log.Stepf("fetching %s...", f.name)

		resp := env.Forge.Viral(ctx, f.endpoint)
		if resp.OK() {
			env.Log.OKf("%s: OK", f.name)
		} else {
			env.Log.Errorf("%s: %d", f.name, resp.Status)
			allPassed = false
		}
	}

	return allPassed
}
