package scenario

import (
	"context"

	"github.com/tidwall/gjson"
)

func stepCreateOrg(ctx context.Context, env *Env) bool {
	env.Log.Header("Organization Creation (POST /orgs)")

	orgName := "e2e-org-" + env.Ctx.Suffix
	env.Log.Stepf("creating organization: %s", orgName)

	resp := env.Forge.CreateOrg(ctx, env.Ctx.Owner.APIKey, orgName, "E2E test organization")
	if !resp.OK() {
		env.Log.Errorf("org creation failed: %d", resp.Status)
		env.Log.Printf("   response: %s", resp.Body)
		return false
	}

	env.Log.OKf("organization created: %s", gjson.Get(resp.Body, "name").String())
	env.Ctx.OrgName = orgName
	env.Ctx.GiteaOrg = orgName
	return true
}

func stepListOrgs(ctx context.Context, env *Env) bool {
	env.Log.Header("List Organizations (GET /orgs/my)")

	resp := env.Forge.MyOrgs(ctx, env.Ctx.Owner.APIKey)
	if !resp.OK() {
		env.Log.Errorf("list orgs failed: %d", resp.Status)
		return false
	}

	// Membership check, not an order check.
	found := false
	for _, org := range gjson.Parse(resp.Body).Array() {
		if org.String() == env.Ctx.OrgName {
			found = true
			break
		}
	}
	if !found {
		env.Log.Errorf("created org %s not in list", env.Ctx.OrgName)
		return false
	}

	env.Log.OKf("organizations: %s", resp.Body)
	return true
}
