package scenario

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"synprobe/forgetest"
	"synprobe/internal/config"
	"synprobe/internal/forge"
	"synprobe/internal/gitx"
	"synprobe/internal/httpx"
	"synprobe/internal/progress"
)

// newTestEnv builds an Env pointed at the fake platform. The scratch dir
// lives under the test's temp dir and is removed either way.
func newTestEnv(t *testing.T, fake *forgetest.Server) *Env {
	t.Helper()
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)
	return newRawEnv(t, srv.URL)
}

// newHandlerEnv builds an Env against an arbitrary handler, for steps
// whose failure modes the fake's happy path cannot produce.
func newHandlerEnv(t *testing.T, handler http.Handler) *Env {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newRawEnv(t, srv.URL)
}

func newRawEnv(t *testing.T, base string) *Env {
	t.Helper()
	runCtx, err := NewContext(t.TempDir())
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	t.Cleanup(runCtx.Cleanup)

	h := httpx.NewClient(5 * time.Second)
	cfg := config.Default()
	cfg.APIURL = base
	cfg.GiteaURL = base
	cfg.Settle = config.SettleConfig{Poll: true, Interval: time.Millisecond, MaxTries: 3}

	return &Env{
		Ctx:   runCtx,
		Forge: forge.NewClient(base, h),
		Gitea: forge.NewGiteaClient(base, h),
		Git:   &gitx.Runner{},
		Cfg:   &cfg,
		Log:   progress.New(io.Discard, true),
	}
}

func registerActors(t *testing.T, env *Env) {
	t.Helper()
	ctx := context.Background()
	if !stepRegisterOwner(ctx, env) || !stepRegisterContributor(ctx, env) || !stepRegisterRandom(ctx, env) {
		t.Fatal("actor registration failed")
	}
}

func createProject(t *testing.T, env *Env) {
	t.Helper()
	ctx := context.Background()
	if !stepCreateOrg(ctx, env) {
		t.Fatal("org creation failed")
	}
	if !stepCreateProject(ctx, env) {
		t.Fatal("project creation failed")
	}
}

func TestStepHealth(t *testing.T) {
	env := newTestEnv(t, forgetest.NewServer())
	if !stepHealth(context.Background(), env) {
		t.Error("expected health check to pass")
	}
}

func TestRegisterActor_StoresCredentials(t *testing.T) {
	env := newTestEnv(t, forgetest.NewServer())
	if !stepRegisterOwner(context.Background(), env) {
		t.Fatal("expected registration to pass")
	}

	owner := env.Ctx.Owner
	if owner.Name != "e2e-owner-"+env.Ctx.Suffix {
		t.Errorf("unexpected owner name %q", owner.Name)
	}
	if owner.APIKey == "" || owner.GiteaToken == "" {
		t.Error("expected credentials to be stored")
	}
	if owner.GiteaEmail != owner.GiteaUsername+"@agents.test" {
		t.Errorf("unexpected email %q", owner.GiteaEmail)
	}
}

func TestRegisterActor_MissingFieldFails(t *testing.T) {
	fake := forgetest.NewServer()
	fake.OmitRegisterFields = []string{"gitea_token"}
	env := newTestEnv(t, fake)

	if stepRegisterOwner(context.Background(), env) {
		t.Error("expected registration to fail when a contract field is missing")
	}
}

func TestProjectSteps(t *testing.T) {
	env := newTestEnv(t, forgetest.NewServer())
	ctx := context.Background()
	registerActors(t, env)
	createProject(t, env)

	if env.Ctx.ProjectID != "1" {
		t.Errorf("unexpected project id %q", env.Ctx.ProjectID)
	}
	if !stepListProjects(ctx, env) {
		t.Error("expected list projects to find the created project")
	}
	if !stepGetProject(ctx, env) {
		t.Error("expected get project to pass")
	}
	if !stepMyProjects(ctx, env) {
		t.Error("expected my projects to include the created project")
	}
	if !stepListOrgs(ctx, env) {
		t.Error("expected list orgs to include the created org")
	}
}

func TestIssueLifecycle(t *testing.T) {
	env := newTestEnv(t, forgetest.NewServer())
	ctx := context.Background()
	registerActors(t, env)
	createProject(t, env)

	if !stepCreateIssue(ctx, env) {
		t.Fatal("expected issue creation to pass")
	}
	if env.Ctx.IssueNumber != 1 {
		t.Errorf("unexpected issue number %d", env.Ctx.IssueNumber)
	}
	for name, fn := range map[string]stepFunc{
		"list":         stepListIssues,
		"get":          stepGetIssue,
		"comments":     stepIssueComments,
		"assignees":    stepIssueAssignees,
		"close/reopen": stepCloseReopenIssue,
	} {
		if !fn(ctx, env) {
			t.Errorf("expected issue %s step to pass", name)
		}
	}
}

func TestIssueComments_FailedCreateStopsLifecycle(t *testing.T) {
	// A comment id only exists after a successful create; the later
	// edit and delete calls must never be attempted without one.
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"create rejected", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "comments disabled", http.StatusInternalServerError)
		}},
		{"create response has no id", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"body":"This is a test comment from the E2E test."}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var methods []string
			env := newHandlerEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				methods = append(methods, r.Method)
				tt.handler(w, r)
			}))
			env.Ctx.ProjectID = "1"
			env.Ctx.IssueNumber = 1

			if stepIssueComments(context.Background(), env) {
				t.Error("expected step to fail when no comment id was obtained")
			}
			if len(methods) != 1 || methods[0] != http.MethodPost {
				t.Errorf("expected only the create POST, saw %v", methods)
			}
		})
	}
}

func TestIssueLabels_UnavailableStillPasses(t *testing.T) {
	fake := forgetest.NewServer()
	fake.LabelsStatus = http.StatusInternalServerError
	env := newTestEnv(t, fake)
	registerActors(t, env)
	createProject(t, env)

	if !stepIssueLabels(context.Background(), env) {
		t.Error("labels are informational; a failing endpoint must not fail the step")
	}
}

func TestCloseReopen_WrongStateFails(t *testing.T) {
	// A server that answers 200 but never actually closes the issue.
	env := newHandlerEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"state":"open"}`))
	}))
	env.Ctx.ProjectID = "1"
	env.Ctx.IssueNumber = 1

	if stepCloseReopenIssue(context.Background(), env) {
		t.Error("expected exact-state check to fail on state mismatch")
	}
}

func TestJoin_DirectEndpoint(t *testing.T) {
	fake := forgetest.NewServer()
	env := newTestEnv(t, fake)
	registerActors(t, env)
	createProject(t, env)

	if !stepContributorJoins(context.Background(), env) {
		t.Fatal("expected direct join to pass")
	}
	if !fake.IsMember(env.Ctx.ProjectID, env.Ctx.Contributor.APIKey) {
		t.Error("expected contributor to be a member")
	}
}

func TestJoin_FallbackActionCommand(t *testing.T) {
	fake := forgetest.NewServer()
	fake.JoinStatus = http.StatusNotFound
	env := newTestEnv(t, fake)
	registerActors(t, env)
	createProject(t, env)

	if !stepContributorJoins(context.Background(), env) {
		t.Fatal("expected feed-index fallback to pass")
	}
	if !fake.IsMember(env.Ctx.ProjectID, env.Ctx.Contributor.APIKey) {
		t.Error("expected fallback join to record membership")
	}
}

func TestJoin_ProjectMissingFromFeedFails(t *testing.T) {
	fake := forgetest.NewServer()
	fake.JoinStatus = http.StatusNotFound
	fake.HideFromFeed = true
	env := newTestEnv(t, fake)
	registerActors(t, env)
	createProject(t, env)

	if stepContributorJoins(context.Background(), env) {
		t.Error("expected join to fail when the project cannot be indexed in the feed")
	}
}

func TestPRLifecycle(t *testing.T) {
	env := newTestEnv(t, forgetest.NewServer())
	ctx := context.Background()
	registerActors(t, env)
	createProject(t, env)
	env.Ctx.PR.Branch = "fix-" + env.Ctx.Suffix

	if !stepCreatePR(ctx, env) {
		t.Fatal("expected PR creation to pass")
	}
	if env.Ctx.PR.Number != 1 {
		t.Errorf("unexpected PR number %d", env.Ctx.PR.Number)
	}
	for name, fn := range map[string]stepFunc{
		"list":      stepListPRs,
		"get":       stepGetPR,
		"review":    stepPRReview,
		"comments":  stepPRComments,
		"reactions": stepPRReactions,
		"merge":     stepPRMerge,
	} {
		if !fn(ctx, env) {
			t.Errorf("expected PR %s step to pass", name)
		}
	}
}

func TestAddMaintainer_AcceptableOutcomes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{"added", 0, "", true},
		{"not found", http.StatusNotFound, "agent not found", true},
		{"not a member", http.StatusBadRequest, "agent is not a member of this project", true},
		{"other 400", http.StatusBadRequest, "malformed request", false},
		{"forbidden", http.StatusForbidden, "forbidden", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := forgetest.NewServer()
			fake.AddMaintainerStatus = tt.status
			fake.AddMaintainerBody = tt.body
			env := newTestEnv(t, fake)
			registerActors(t, env)
			createProject(t, env)

			if got := stepAddMaintainer(context.Background(), env); got != tt.want {
				t.Errorf("status %d body %q: got %v, want %v", tt.status, tt.body, got, tt.want)
			}
		})
	}
}

func TestRemoveMaintainer_AcceptableOutcomes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"removed", 0, true},
		{"not found", http.StatusNotFound, true},
		{"no team", http.StatusInternalServerError, true},
		{"forbidden", http.StatusForbidden, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := forgetest.NewServer()
			fake.RemoveMaintainerStatus = tt.status
			env := newTestEnv(t, fake)
			registerActors(t, env)
			createProject(t, env)

			if got := stepRemoveMaintainer(context.Background(), env); got != tt.want {
				t.Errorf("status %d: got %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestActionCommands_AllAttemptedAfterFailure(t *testing.T) {
	var calls int
	env := newHandlerEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	if stepActionCommands(context.Background(), env) {
		t.Error("expected step to fail when one command fails")
	}
	if calls != 3 {
		t.Errorf("expected all 3 commands attempted, got %d", calls)
	}
}

func TestEngagement_AlwaysPasses(t *testing.T) {
	env := newHandlerEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engagement disabled", http.StatusInternalServerError)
	}))

	if !stepEngagement(context.Background(), env) {
		t.Error("engagement is best-effort; server failures must not fail the step")
	}
}

func TestViralFeeds(t *testing.T) {
	env := newTestEnv(t, forgetest.NewServer())
	if !stepViralFeeds(context.Background(), env) {
		t.Error("expected all viral feeds to pass")
	}
}

func TestViralFeeds_OneFailureFailsStep(t *testing.T) {
	fake := forgetest.NewServer()
	fake.ViralStatus = map[string]int{"drama": http.StatusInternalServerError}
	env := newTestEnv(t, fake)

	if stepViralFeeds(context.Background(), env) {
		t.Error("expected one failing feed to fail the step")
	}
}

func TestFeed(t *testing.T) {
	env := newTestEnv(t, forgetest.NewServer())
	registerActors(t, env)
	createProject(t, env)

	if !stepFeed(context.Background(), env) {
		t.Error("expected feed step to pass")
	}
}

func TestFeed_MissingProjectsFieldFails(t *testing.T) {
	env := newHandlerEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[]}`))
	}))

	if stepFeed(context.Background(), env) {
		t.Error("expected feed step to fail without a projects field")
	}
}

func TestSuccessionStatus(t *testing.T) {
	env := newTestEnv(t, forgetest.NewServer())
	registerActors(t, env)
	createProject(t, env)

	if !stepSuccessionStatus(context.Background(), env) {
		t.Error("expected succession status to pass")
	}
}

func TestSettle_ReturnsWhenBranchVisible(t *testing.T) {
	fake := forgetest.NewServer()
	env := newTestEnv(t, fake)
	env.Ctx.GiteaOrg = "o"
	env.Ctx.GiteaRepo = "r"
	fake.AddBranch("o", "r", "fix-1")

	done := make(chan struct{})
	go func() {
		env.settle(context.Background(), "tok", "fix-1")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("settle did not return for a visible branch")
	}
}

func TestSettle_GivesUpAfterMaxTries(t *testing.T) {
	env := newTestEnv(t, forgetest.NewServer())
	env.Ctx.GiteaOrg = "o"
	env.Ctx.GiteaRepo = "r"

	done := make(chan struct{})
	go func() {
		env.settle(context.Background(), "tok", "never-pushed")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("settle did not give up on an invisible branch")
	}
}
