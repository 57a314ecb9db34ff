package forge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"synprobe/internal/httpx"
)

// The endpoint paths are a byte-for-byte contract; this pins every one.
func TestClient_EndpointContract(t *testing.T) {
	var gotMethod, gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(server.URL, httpx.NewClient(5*time.Second))
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func()
		method string
		path   string
		query  string
	}{
		{"health", func() { c.Health(ctx) }, "GET", "/health", ""},
		{"register", func() { c.RegisterAgent(ctx, "a") }, "POST", "/agents/register", ""},
		{"create org", func() { c.CreateOrg(ctx, "k", "o", "d") }, "POST", "/orgs", ""},
		{"my orgs", func() { c.MyOrgs(ctx, "k") }, "GET", "/orgs/my", ""},
		{"create project", func() { c.CreateProject(ctx, "k", CreateProjectRequest{}) }, "POST", "/projects", ""},
		{"list projects", func() { c.ListProjects(ctx) }, "GET", "/projects", ""},
		{"get project", func() { c.GetProject(ctx, "7") }, "GET", "/projects/7", ""},
		{"my projects", func() { c.MyProjects(ctx, "k") }, "GET", "/projects/my", ""},
		{"join", func() { c.JoinProject(ctx, "k", "7") }, "POST", "/projects/7/join", ""},
		{"create issue", func() { c.CreateIssue(ctx, "k", "7", "t", "b") }, "POST", "/projects/7/issues", ""},
		{"list issues", func() { c.ListIssues(ctx, "7", "") }, "GET", "/projects/7/issues", ""},
		{"list issues all", func() { c.ListIssues(ctx, "7", "all") }, "GET", "/projects/7/issues", "state=all"},
		{"get issue", func() { c.GetIssue(ctx, "7", 3) }, "GET", "/projects/7/issues/3", ""},
		{"create comment", func() { c.CreateIssueComment(ctx, "k", "7", 3, "b") }, "POST", "/projects/7/issues/3/comments", ""},
		{"list comments", func() { c.ListIssueComments(ctx, "7", 3) }, "GET", "/projects/7/issues/3/comments", ""},
		{"edit comment", func() { c.EditIssueComment(ctx, "k", "7", 3, 9, "b") }, "PATCH", "/projects/7/issues/3/comments/9", ""},
		{"delete comment", func() { c.DeleteIssueComment(ctx, "k", "7", 3, 9) }, "DELETE", "/projects/7/issues/3/comments/9", ""},
		{"labels", func() { c.ListLabels(ctx, "7") }, "GET", "/projects/7/labels", ""},
		{"add assignees", func() { c.AddAssignees(ctx, "k", "7", 3, []string{"u"}) }, "POST", "/projects/7/issues/3/assignees", ""},
		{"remove assignee", func() { c.RemoveAssignee(ctx, "k", "7", 3, "u") }, "DELETE", "/projects/7/issues/3/assignees/u", ""},
		{"close issue", func() { c.CloseIssue(ctx, "k", "7", 3) }, "POST", "/projects/7/issues/3/close", ""},
		{"reopen issue", func() { c.ReopenIssue(ctx, "k", "7", 3) }, "POST", "/projects/7/issues/3/reopen", ""},
		{"create pr", func() { c.CreatePR(ctx, "k", "7", CreatePRRequest{}) }, "POST", "/projects/7/prs", ""},
		{"list prs", func() { c.ListPRs(ctx, "7") }, "GET", "/projects/7/prs", ""},
		{"get pr", func() { c.GetPR(ctx, "7", 2) }, "GET", "/projects/7/prs/2", ""},
		{"review pr", func() { c.ReviewPR(ctx, "k", "7", 2, "approve", "b") }, "POST", "/projects/7/prs/2/reviews", ""},
		{"pr comment", func() { c.CreatePRComment(ctx, "k", "7", 2, "b") }, "POST", "/projects/7/prs/2/comments", ""},
		{"pr comments", func() { c.ListPRComments(ctx, "7", 2) }, "GET", "/projects/7/prs/2/comments", ""},
		{"pr reaction", func() { c.AddPRReaction(ctx, "k", "7", 2, "+1") }, "POST", "/projects/7/prs/2/reactions", ""},
		{"pr reactions", func() { c.ListPRReactions(ctx, "7", 2) }, "GET", "/projects/7/prs/2/reactions", ""},
		{"merge pr", func() { c.MergePR(ctx, "k", "7", 2, MergePRRequest{}) }, "POST", "/projects/7/prs/2/merge", ""},
		{"maintainers", func() { c.ListMaintainers(ctx, "7") }, "GET", "/projects/7/maintainers", ""},
		{"add maintainer", func() { c.AddMaintainer(ctx, "k", "7", "u") }, "POST", "/projects/7/maintainers", ""},
		{"remove maintainer", func() { c.RemoveMaintainer(ctx, "k", "7", "u") }, "DELETE", "/projects/7/maintainers/u", ""},
		{"succession", func() { c.Succession(ctx, "k", "7") }, "GET", "/projects/7/succession", ""},
		{"feed", func() { c.Feed(ctx, "k", "") }, "GET", "/feed", ""},
		{"action", func() { c.Action(ctx, "k", "profile") }, "POST", "/action", ""},
		{"engage", func() { c.Engage(ctx, "k", "react fire pr-2") }, "POST", "/engage", ""},
		{"engage counts", func() { c.EngageCountsPR(ctx, "k", 2) }, "GET", "/engage/counts/pr/2", ""},
		{"viral", func() { c.Viral(ctx, "drama") }, "GET", "/viral/drama", ""},
	}

	for _, tt := range tests {
		tt.call()
		if gotMethod != tt.method {
			t.Errorf("%s: expected method %s, got %s", tt.name, tt.method, gotMethod)
		}
		if gotPath != tt.path {
			t.Errorf("%s: expected path %s, got %s", tt.name, tt.path, gotPath)
		}
		if gotQuery != tt.query {
			t.Errorf("%s: expected query %q, got %q", tt.name, tt.query, gotQuery)
		}
	}
}

func TestClient_BearerAuth(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(server.URL, httpx.NewClient(5*time.Second))
	c.MyOrgs(context.Background(), "key-1")

	if gotAuth != "Bearer key-1" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
}
