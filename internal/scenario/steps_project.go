package scenario

import (
	"context"

	"github.com/tidwall/gjson"

	"synprobe/internal/forge"
)

func stepCreateProject(ctx context.Context, env *Env) bool {
	env.Log.Header("Project Creation (POST /projects)")

	env.Ctx.ProjectName = "e2e-project-" + env.Ctx.Suffix
	env.Ctx.GiteaRepo = "repo-" + env.Ctx.Suffix

	env.Log.Stepf("creating project: %s", env.Ctx.ProjectName)
	env.Log.Stepf("repository: %s/%s", env.Ctx.GiteaOrg, env.Ctx.GiteaRepo)

	resp := env.Forge.CreateProject(ctx, env.Ctx.Owner.APIKey, forge.CreateProjectRequest{
		Name:        env.Ctx.ProjectName,
		Description: "E2E test project for agent work loop",
		Language:    "python",
		Owner:       env.Ctx.GiteaOrg,
		Repo:        env.Ctx.GiteaRepo,
	})
	if !resp.OK() {
		env.Log.Errorf("project creation failed: %d", resp.Status)
		env.Log.Printf("   response: %s", resp.Body)
		return false
	}

	id := gjson.Get(resp.Body, "id")
	if !id.Exists() {
		env.Log.Errorf("project response has no id")
		return false
	}
	env.Ctx.ProjectID = id.String()

	env.Log.OKf("project id: %s", env.Ctx.ProjectID)
	env.Log.OKf("gitea path: %s/%s",
		gjson.Get(resp.Body, "gitea_org").String(),
		gjson.Get(resp.Body, "gitea_repo").String())
	return true
}

// projectInList scans a JSON project array for the run's project id.
// Membership is by identifier equality only.
func projectInList(body, projectID string) bool {
	for _, p := range gjson.Parse(body).Array() {
		if p.Get("id").String() == projectID {
			return true
		}
	}
	return false
}

func stepListProjects(ctx context.Context, env *Env) bool {
	env.Log.Header("List Projects (GET /projects)")

	resp := env.Forge.ListProjects(ctx)
	if !resp.OK() {
		env.Log.Errorf("list projects failed: %d", resp.Status)
		return false
	}

	env.Log.OKf("found %d projects", len(gjson.Parse(resp.Body).Array()))
	if !projectInList(resp.Body, env.Ctx.ProjectID) {
		env.Log.Errorf("created project not found in list")
		return false
	}
	env.Log.OKf("created project found in list")
	return true
}

func stepGetProject(ctx context.Context, env *Env) bool {
	env.Log.Header("Get Project (GET /projects/:id)")

	resp := env.Forge.GetProject(ctx, env.Ctx.ProjectID)
	if !resp.OK() {
		env.Log.Errorf("get project failed: %d", resp.Status)
		return false
	}

	env.Log.OKf("project name: %s", gjson.Get(resp.Body, "name").String())
	env.Log.OKf("status: %s", gjson.Get(resp.Body, "status").String())
	return true
}

func stepMyProjects(ctx context.Context, env *Env) bool {
	env.Log.Header("My Projects (GET /projects/my)")

	resp := env.Forge.MyProjects(ctx, env.Ctx.Owner.APIKey)
	if !resp.OK() {
		env.Log.Errorf("my projects failed: %d", resp.Status)
		return false
	}

	env.Log.OKf("found %d of my projects", len(gjson.Parse(resp.Body).Array()))
	if !projectInList(resp.Body, env.Ctx.ProjectID) {
		env.Log.Errorf("created project not in my projects")
		return false
	}
	return true
}
