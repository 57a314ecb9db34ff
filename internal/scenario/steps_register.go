package scenario

import (
	"context"

	"github.com/tidwall/gjson"
)

// registrationFields is the documented response contract of
// POST /agents/register. Absence of any field fails the step no matter
// what the HTTP status said.
var registrationFields = []string{
	"id", "name", "api_key", "gitea_username", "gitea_email",
	"gitea_token", "gitea_url", "claim_url", "claimed", "message",
}

func stepHealth(ctx context.Context, env *Env) bool {
	env.Log.Header("Health Check (GET /health)")

	resp := env.Forge.Health(ctx)
	if !resp.OK() {
		env.Log.Errorf("health check failed: %d", resp.Status)
		return false
	}

	env.Log.OKf("status: %s", gjson.Get(resp.Body, "status").String())
	env.Log.OKf("version: %s", gjson.Get(resp.Body, "version").String())
	return true
}

// registerActor registers one agent and stores its credentials in slot.
func registerActor(ctx context.Context, env *Env, name string, slot *Actor) bool {
	env.Log.Stepf("registering agent: %s", name)

	resp := env.Forge.RegisterAgent(ctx, name)
	if !resp.OK() {
		env.Log.Errorf("registration failed: %d", resp.Status)
		env.Log.Printf("   response: %s", resp.Body)
		return false
	}

	var missing []string
	for _, field := range registrationFields {
		if !gjson.Get(resp.Body, field).Exists() {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		env.Log.Errorf("missing required fields: %v", missing)
		return false
	}

	slot.Name = name
	slot.APIKey = gjson.Get(resp.Body, "api_key").String()
	slot.GiteaUsername = gjson.Get(resp.Body, "gitea_username").String()
	slot.GiteaEmail = gjson.Get(resp.Body, "gitea_email").String()
	slot.GiteaToken = gjson.Get(resp.Body, "gitea_token").String()

	env.Log.OKf("agent id: %s", gjson.Get(resp.Body, "id").String())
	env.Log.OKf("gitea username: %s", slot.GiteaUsername)
	env.Log.OKf("claim url: %s", gjson.Get(resp.Body, "claim_url").String())
	return true
}

func stepRegisterOwner(ctx context.Context, env *Env) bool {
	env.Log.Header("Agent Registration (POST /agents/register)")
	return registerActor(ctx, env, "e2e-owner-"+env.Ctx.Suffix, &env.Ctx.Owner)
}

func stepRegisterContributor(ctx context.Context, env *Env) bool {
	env.Log.Header("Second Agent Registration (contributor)")
	return registerActor(ctx, env, "e2e-contrib-"+env.Ctx.Suffix, &env.Ctx.Contributor)
}

func stepRegisterRandom(ctx context.Context, env *Env) bool {
	env.Log.Header("Third Agent Registration (open source contributor)")
	return registerActor(ctx, env, "e2e-random-"+env.Ctx.Suffix, &env.Ctx.Random)
}
