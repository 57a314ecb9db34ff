package forge

import (
	"context"
	"fmt"
	"net/http"

	"synprobe/internal/httpx"
)

// GiteaClient calls the git host's native REST API directly, bypassing
// the control plane. Collaborator bootstrap is a repo-setup prerequisite
// the platform does not expose.
type GiteaClient struct {
	Base string
	HTTP *httpx.Client
}

func NewGiteaClient(base string, h *httpx.Client) *GiteaClient {
	return &GiteaClient{Base: base, HTTP: h}
}

// AddCollaborator grants user write permission on owner/repo via
// PUT /api/v1/repos/{owner}/{repo}/collaborators/{user}. Gitea answers
// 204 No Content on success; any 2xx is treated the same.
func (g *GiteaClient) AddCollaborator(ctx context.Context, token, owner, repo, user string) httpx.Response {
	return g.HTTP.Do(ctx, httpx.Request{
		Method:   http.MethodPut,
		URL:      fmt.Sprintf("%s/api/v1/repos/%s/%s/collaborators/%s", g.Base, owner, repo, user),
		JSONBody: map[string]string{"permission": "write"},
		Headers:  httpx.Token(token),
	})
}

// BranchExists reports whether the host already serves branch on
// owner/repo. Used to settle eventual consistency after a push.
func (g *GiteaClient) BranchExists(ctx context.Context, token, owner, repo, branch string) bool {
	resp := g.HTTP.Get(ctx,
		fmt.Sprintf("%s/api/v1/repos/%s/%s/branches/%s", g.Base, owner, repo, branch),
		httpx.Token(token))
	return resp.OK()
}

// Success reports whether a Gitea response is in the 2xx range.
func Success(r httpx.Response) bool {
	return r.Status >= 200 && r.Status < 300
}
