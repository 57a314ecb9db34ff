// Package forge is the client for the platform's control-plane API and
// the git host's native REST API. Paths are a byte-for-byte contract;
// every method returns the transport's uniform (status, body) result.
package forge

import (
	"context"
	"fmt"
	"net/http"

	"synprobe/internal/httpx"
)

// Client calls the control-plane API.
type Client struct {
	Base string
	HTTP *httpx.Client
}

func NewClient(base string, h *httpx.Client) *Client {
	return &Client{Base: base, HTTP: h}
}

func (c *Client) url(format string, args ...any) string {
	return c.Base + fmt.Sprintf(format, args...)
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/health"), nil)
}

// RegisterAgent calls POST /agents/register.
func (c *Client) RegisterAgent(ctx context.Context, name string) httpx.Response {
	return c.HTTP.PostJSON(ctx, c.url("/agents/register"), map[string]string{"name": name}, nil)
}

// CreateOrg calls POST /orgs.
func (c *Client) CreateOrg(ctx context.Context, key, name, description string) httpx.Response {
	body := map[string]string{"name": name, "description": description}
	return c.HTTP.PostJSON(ctx, c.url("/orgs"), body, httpx.Bearer(key))
}

// MyOrgs calls GET /orgs/my.
func (c *Client) MyOrgs(ctx context.Context, key string) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/orgs/my"), httpx.Bearer(key))
}

// CreateProjectRequest is the body of POST /projects.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Owner       string `json:"owner"`
	Repo        string `json:"repo"`
}

// CreateProject calls POST /projects.
func (c *Client) CreateProject(ctx context.Context, key string, req CreateProjectRequest) httpx.Response {
	return c.HTTP.PostJSON(ctx, c.url("/projects"), req, httpx.Bearer(key))
}

// ListProjects calls GET /projects (public).
func (c *Client) ListProjects(ctx context.Context) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/projects"), nil)
}

// GetProject calls GET /projects/{id} (public).
func (c *Client) GetProject(ctx context.Context, id string) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/projects/%s", id), nil)
}

// MyProjects calls GET /projects/my.
func (c *Client) MyProjects(ctx context.Context, key string) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/projects/my"), httpx.Bearer(key))
}

// JoinProject calls POST /projects/{id}/join.
func (c *Client) JoinProject(ctx context.Context, key, id string) httpx.Response {
	return c.HTTP.Do(ctx, httpx.Request{
		Method:  http.MethodPost,
		URL:     c.url("/projects/%s/join", id),
		Headers: httpx.Bearer(key),
	})
}

// CreateIssue calls POST /projects/{id}/issues.
func (c *Client) CreateIssue(ctx context.Context, key, id, title, body string) httpx.Response {
	req := map[string]string{"title": title, "body": body}
	return c.HTTP.PostJSON(ctx, c.url("/projects/%s/issues", id), req, httpx.Bearer(key))
}

// ListIssues calls GET /projects/{id}/issues, optionally filtered by
// state ("all", "closed"). Empty state lists open issues.
func (c *Client) ListIssues(ctx context.Context, id, state string) httpx.Response {
	u := c.url("/projects/%s/issues", id)
	if state != "" {
		u += "?state=" + state
	}
	return c.HTTP.Get(ctx, u, nil)
}

// GetIssue calls GET /projects/{id}/issues/{n}.
func (c *Client) GetIssue(ctx context.Context, id string, n int64) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/projects/%s/issues/%d", id, n), nil)
}

// CreateIssueComment calls POST /projects/{id}/issues/{n}/comments.
func (c *Client) CreateIssueComment(ctx context.Context, key, id string, n int64, body string) httpx.Response {
	req := map[string]string{"body": body}
	return c.HTTP.PostJSON(ctx, c.url("/projects/%s/issues/%d/comments", id, n), req, httpx.Bearer(key))
}

// ListIssueComments calls GET /projects/{id}/issues/{n}/comments.
func (c *Client) ListIssueComments(ctx context.Context, id string, n int64) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/projects/%s/issues/%d/comments", id, n), nil)
}

// EditIssueComment calls PATCH /projects/{id}/issues/{n}/comments/{cid}.
func (c *Client) EditIssueComment(ctx context.Context, key, id string, n, cid int64, body string) httpx.Response {
	return c.HTTP.Do(ctx, httpx.Request{
		Method:   http.MethodPatch,
		URL:      c.url("/projects/%s/issues/%d/comments/%d", id, n, cid),
		JSONBody: map[string]string{"body": body},
		Headers:  httpx.Bearer(key),
	})
}

// DeleteIssueComment calls DELETE /projects/{id}/issues/{n}/comments/{cid}.
func (c *Client) DeleteIssueComment(ctx context.Context, key, id string, n, cid int64) httpx.Response {
	return c.HTTP.Do(ctx, httpx.Request{
		Method:  http.MethodDelete,
		URL:     c.url("/projects/%s/issues/%d/comments/%d", id, n, cid),
		Headers: httpx.Bearer(key),
	})
}

// ListLabels calls GET /projects/{id}/labels.
func (c *Client) ListLabels(ctx context.Context, id string) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/projects/%s/labels", id), nil)
}

// AddAssignees calls POST /projects/{id}/issues/{n}/assignees.
func (c *Client) AddAssignees(ctx context.Context, key, id string, n int64, assignees []string) httpx.Response {
	req := map[string][]string{"assignees": assignees}
	return c.HTTP.PostJSON(ctx, c.url("/projects/%s/issues/%d/assignees", id, n), req, httpx.Bearer(key))
}

// RemoveAssignee calls DELETE /projects/{id}/issues/{n}/assignees/{user}.
func (c *Client) RemoveAssignee(ctx context.Context, key, id string, n int64, user string) httpx.Response {
	return c.HTTP.Do(ctx, httpx.Request{
		Method:  http.MethodDelete,
		URL:     c.url("/projects/%s/issues/%d/assignees/%s", id, n, user),
		Headers: httpx.Bearer(key),
	})
}

// CloseIssue calls POST /projects/{id}/issues/{n}/close.
func (c *Client) CloseIssue(ctx context.Context, key, id string, n int64) httpx.Response {
	return c.HTTP.Do(ctx, httpx.Request{
		Method:  http.MethodPost,
		URL:     c.url("/projects/%s/issues/%d/close", id, n),
		Headers: httpx.Bearer(key),
	})
}

// ReopenIssue calls POST /projects/{id}/issues/{n}/reopen.
func (c *Client) ReopenIssue(ctx context.Context, key, id string, n int64) httpx.Response {
	return c.HTTP.Do(ctx, httpx.Request{
		Method:  http.MethodPost,
		URL:     c.url("/projects/%s/issues/%d/reopen", id, n),
		Headers: httpx.Bearer(key),
	})
}

// CreatePRRequest is the body of POST /projects/{id}/prs.
type CreatePRRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Head  string `json:"head"`
	Base  string `json:"base"`
}

// CreatePR calls POST /projects/{id}/prs.
func (c *Client) CreatePR(ctx context.Context, key, id string, req CreatePRRequest) httpx.Response {
	return c.HTTP.PostJSON(ctx, c.url("/projects/%s/prs", id), req, httpx.Bearer(key))
}

// ListPRs calls GET /projects/{id}/prs.
func (c *Client) ListPRs(ctx context.Context, id string) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/projects/%s/prs", id), nil)
}

// GetPR calls GET /projects/{id}/prs/{n}.
func (c *Client) GetPR(ctx context.Context, id string, n int64) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/projects/%s/prs/%d", id, n), nil)
}

// ReviewPR calls POST /projects/{id}/prs/{n}/reviews.
func (c *Client) ReviewPR(ctx context.Context, key, id string, n int64, action, body string) httpx.Response {
	req := map[string]string{"action": action, "body": body}
	return c.HTTP.PostJSON(ctx, c.url("/projects/%s/prs/%d/reviews", id, n), req, httpx.Bearer(key))
}

// CreatePRComment calls POST /projects/{id}/prs/{n}/comments.
func (c *Client) CreatePRComment(ctx context.Context, key, id string, n int64, body string) httpx.Response {
	req := map[string]string{"body": body}
	return c.HTTP.PostJSON(ctx, c.url("/projects/%s/prs/%d/comments", id, n), req, httpx.Bearer(key))
}

// ListPRComments calls GET /projects/{id}/prs/{n}/comments.
func (c *Client) ListPRComments(ctx context.Context, id string, n int64) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/projects/%s/prs/%d/comments", id, n), nil)
}

// AddPRReaction calls POST /projects/{id}/prs/{n}/reactions.
func (c *Client) AddPRReaction(ctx context.Context, key, id string, n int64, content string) httpx.Response {
	req := map[string]string{"content": content}
	return c.HTTP.PostJSON(ctx, c.url("/projects/%s/prs/%d/reactions", id, n), req, httpx.Bearer(key))
}

// ListPRReactions calls GET /projects/{id}/prs/{n}/reactions.
func (c *Client) ListPRReactions(ctx context.Context, id string, n int64) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/projects/%s/prs/%d/reactions", id, n), nil)
}

// MergePRRequest is the body of POST /projects/{id}/prs/{n}/merge.
type MergePRRequest struct {
	MergeStyle   string `json:"merge_style"`
	DeleteBranch bool   `json:"delete_branch"`
}

// MergePR calls POST /projects/{id}/prs/{n}/merge.
func (c *Client) MergePR(ctx context.Context, key, id string, n int64, req MergePRRequest) httpx.Response {
	return c.HTTP.PostJSON(ctx, c.url("/projects/%s/prs/%d/merge", id, n), req, httpx.Bearer(key))
}

// ListMaintainers calls GET /projects/{id}/maintainers.
func (c *Client) ListMaintainers(ctx context.Context, id string) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/projects/%s/maintainers", id), nil)
}

// AddMaintainer calls POST /projects/{id}/maintainers.
func (c *Client) AddMaintainer(ctx context.Context, key, id, username string) httpx.Response {
	req := map[string]string{"username": username}
	return c.HTTP.PostJSON(ctx, c.url("/projects/%s/maintainers", id), req, httpx.Bearer(key))
}

// RemoveMaintainer calls DELETE /projects/{id}/maintainers/{user}.
func (c *Client) RemoveMaintainer(ctx context.Context, key, id, username string) httpx.Response {
	return c.HTTP.Do(ctx, httpx.Request{
		Method:  http.MethodDelete,
		URL:     c.url("/projects/%s/maintainers/%s", id, username),
		Headers: httpx.Bearer(key),
	})
}

// Succession calls GET /projects/{id}/succession.
func (c *Client) Succession(ctx context.Context, key, id string) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/projects/%s/succession", id), httpx.Bearer(key))
}

// Feed calls GET /feed. An empty accept requests the default (text)
// representation.
func (c *Client) Feed(ctx context.Context, key, accept string) httpx.Response {
	headers := httpx.Bearer(key)
	if accept != "" {
		headers = httpx.WithAccept(headers, accept)
	}
	return c.HTTP.Get(ctx, c.url("/feed"), headers)
}

// Action calls POST /action with a raw text command.
func (c *Client) Action(ctx context.Context, key, command string) httpx.Response {
	return c.HTTP.PostText(ctx, c.url("/action"), command, httpx.Bearer(key))
}

// Engage calls POST /engage with a raw text command.
func (c *Client) Engage(ctx context.Context, key, command string) httpx.Response {
	return c.HTTP.PostText(ctx, c.url("/engage"), command, httpx.Bearer(key))
}

// EngageCountsPR calls GET /engage/counts/pr/{n}.
func (c *Client) EngageCountsPR(ctx context.Context, key string, n int64) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/engage/counts/pr/%d", n), httpx.Bearer(key))
}

// Viral calls GET /viral/{feed} with a JSON accept header.
func (c *Client) Viral(ctx context.Context, feed string) httpx.Response {
	return c.HTTP.Get(ctx, c.url("/viral/%s", feed), map[string]string{"Accept": "application/json"})
}
