// Package forgetest provides an in-memory fake of the forge platform's
// control-plane API and the git host's REST surface, for exercising the
// probe without a real deployment.
package forgetest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// Agent is one registered identity.
type Agent struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	APIKey        string `json:"api_key"`
	GiteaUsername string `json:"gitea_username"`
	GiteaEmail    string `json:"gitea_email"`
	GiteaToken    string `json:"gitea_token"`
}

type comment struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

type issue struct {
	Number    int64              `json:"number"`
	Title     string             `json:"title"`
	Body      string             `json:"body"`
	State     string             `json:"state"`
	comments  map[int64]*comment `json:"-"`
	assignees []string
}

type pr struct {
	Number    int64  `json:"number"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Head      string `json:"head"`
	Base      string `json:"base"`
	State     string `json:"state"`
	Merged    bool   `json:"merged"`
	URL       string `json:"url"`
	comments  map[int64]*comment
	reactions []string
	reviews   []string
}

type project struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	GiteaOrg  string `json:"gitea_org"`
	GiteaRepo string `json:"gitea_repo"`
	Status    string `json:"status"`

	members     map[string]bool // api keys
	maintainers []string
	issues      map[int64]*issue
	prs         map[int64]*pr
	issueSeq    int64
	prSeq       int64
	commentSeq  int64
}

// Server is a fake forge platform plus git-host REST API. The zero
// value is not usable; create one with NewServer.
type Server struct {
	mux *http.ServeMux
	mu  sync.Mutex

	agentSeq int64
	agents   map[string]*Agent // by api key
	orgs     map[string]string // org name -> owner api key
	projects []*project        // creation order (feed order)

	branches      map[string]bool // "owner/repo/branch"
	collaborators map[string]bool // "owner/repo/user"

	// Behavior switches for failure-path tests. Zero values mean the
	// happy path.
	CreateProjectStatus    int            // non-zero overrides POST /projects
	JoinStatus             int            // non-zero overrides POST /projects/{id}/join
	AddMaintainerStatus    int            // non-zero overrides POST /projects/{id}/maintainers
	AddMaintainerBody      string         // body sent with AddMaintainerStatus
	RemoveMaintainerStatus int            // non-zero overrides DELETE /projects/{id}/maintainers/{user}
	LabelsStatus           int            // non-zero overrides GET /projects/{id}/labels
	ViralStatus            map[string]int // per-feed status overrides
	OmitRegisterFields     []string       // registration response fields to drop
	HideFromFeed           bool           // serve an empty feed project list
}

// NewServer creates a fake with all endpoints registered.
func NewServer() *Server {
	s := &Server{
		mux:           http.NewServeMux(),
		agents:        make(map[string]*Agent),
		orgs:          make(map[string]string),
		branches:      make(map[string]bool),
		collaborators: make(map[string]bool),
	}
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/agents/register", s.handleRegister)
	s.mux.HandleFunc("/orgs", s.handleOrgs)
	s.mux.HandleFunc("/orgs/my", s.handleMyOrgs)
	s.mux.HandleFunc("/projects", s.handleProjects)
	s.mux.HandleFunc("/projects/", s.handleProjectSubtree)
	s.mux.HandleFunc("/feed", s.handleFeed)
	s.mux.HandleFunc("/action", s.handleAction)
	s.mux.HandleFunc("/engage", s.handleEngage)
	s.mux.HandleFunc("/engage/counts/pr/", s.handleEngageCounts)
	s.mux.HandleFunc("/viral/", s.handleViral)
	s.mux.HandleFunc("/api/v1/repos/", s.handleGiteaRepos)
	return s
}

// Handler returns the http.Handler for the server.
func (s *Server) Handler() http.Handler { return s.mux }

// AddBranch marks a branch as served by the fake git host.
func (s *Server) AddBranch(owner, repo, branch string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches[owner+"/"+repo+"/"+branch] = true
}

// HasCollaborator reports whether user was added to owner/repo.
func (s *Server) HasCollaborator(owner, repo, user string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collaborators[owner+"/"+repo+"/"+user]
}

// AgentFor returns the registered agent with the given name.
func (s *Server) AgentFor(name string) *Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.agents {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// IsMember reports whether the key's agent joined the project.
func (s *Server) IsMember(projectID string, apiKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProject(projectID)
	return p != nil && p.members[apiKey]
}

func (s *Server) findProject(id string) *project {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil
	}
	for _, p := range s.projects {
		if p.ID == n {
			return p
		}
	}
	return nil
}

func (s *Server) authed(r *http.Request) *Agent {
	auth := r.Header.Get("Authorization")
	key, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return nil
	}
	return s.agents[key]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": "test"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	body, _ := io.ReadAll(r.Body)
	if err := json.Unmarshal(body, &req); err != nil || req.Name == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.agentSeq++
	a := &Agent{
		ID:            fmt.Sprintf("agent-%d", s.agentSeq),
		Name:          req.Name,
		APIKey:        fmt.Sprintf("sp-key-%d", s.agentSeq),
		GiteaUsername: req.Name,
		GiteaEmail:    req.Name + "@agents.test",
		GiteaToken:    fmt.Sprintf("gt-%d", s.agentSeq),
	}
	s.agents[a.APIKey] = a
	s.mu.Unlock()

	resp := map[string]any{
		"id":             a.ID,
		"name":           a.Name,
		"api_key":        a.APIKey,
		"gitea_username": a.GiteaUsername,
		"gitea_email":    a.GiteaEmail,
		"gitea_token":    a.GiteaToken,
		"gitea_url":      "http://gitea.test",
		"claim_url":      "http://forge.test/claim/" + a.ID,
		"claimed":        false,
		"message":        "agent registered",
	}
	for _, field := range s.OmitRegisterFields {
		delete(resp, field)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOrgs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a := s.authed(r)
	if a == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	body, _ := io.ReadAll(r.Body)
	if err := json.Unmarshal(body, &req); err != nil || req.Name == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.orgs[req.Name] = a.APIKey
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"name": req.Name, "description": req.Description})
}

func (s *Server) handleMyOrgs(w http.ResponseWriter, r *http.Request) {
	a := s.authed(r)
	if a == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	s.mu.Lock()
	names := []string{}
	for name, owner := range s.orgs {
		if owner == a.APIKey {
			names = append(names, name)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		list := append([]*project{}, s.projects...)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		a := s.authed(r)
		if a == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if s.CreateProjectStatus != 0 && s.CreateProjectStatus != http.StatusOK {
			http.Error(w, "project creation unavailable", s.CreateProjectStatus)
			return
		}
		var req struct {
			Name  string `json:"name"`
			Owner string `json:"owner"`
			Repo  string `json:"repo"`
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil || req.Name == "" {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		p := &project{
			ID:        int64(len(s.projects) + 1),
			Name:      req.Name,
			GiteaOrg:  req.Owner,
			GiteaRepo: req.Repo,
			Status:    "active",
			members:   map[string]bool{a.APIKey: true},
			issues:    make(map[int64]*issue),
			prs:       make(map[int64]*pr),
		}
		s.projects = append(s.projects, p)
		// The repo's default branch exists as soon as the project does.
		s.branches[req.Owner+"/"+req.Repo+"/main"] = true
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, p)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleProjectSubtree routes everything under /projects/: "my", and
// per-project issues, prs, maintainers, labels, join, succession.
func (s *Server) handleProjectSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/projects/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	if parts[0] == "my" {
		s.handleMyProjects(w, r)
		return
	}

	s.mu.Lock()
	p := s.findProject(parts[0])
	s.mu.Unlock()
	if p == nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	if len(parts) == 1 {
		writeJSON(w, http.StatusOK, p)
		return
	}

	switch parts[1] {
	case "join":
		s.handleJoin(w, r, p)
	case "issues":
		s.handleIssues(w, r, p, parts[2:])
	case "prs":
		s.handlePRs(w, r, p, parts[2:])
	case "labels":
		if s.LabelsStatus != 0 && s.LabelsStatus != http.StatusOK {
			http.Error(w, "labels unavailable", s.LabelsStatus)
			return
		}
		writeJSON(w, http.StatusOK, []string{"bug", "enhancement"})
	case "maintainers":
		s.handleMaintainers(w, r, p, parts[2:])
	case "succession":
		writeJSON(w, http.StatusOK, map[string]any{
			"owner_claimable":      false,
			"maintainer_claimable": false,
			"message":              "owner active",
		})
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (s *Server) handleMyProjects(w http.ResponseWriter, r *http.Request) {
	a := s.authed(r)
	if a == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	s.mu.Lock()
	list := []*project{}
	for _, p := range s.projects {
		if p.members[a.APIKey] {
			list = append(list, p)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request, p *project) {
	a := s.authed(r)
	if a == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if s.JoinStatus != 0 && s.JoinStatus != http.StatusOK {
		http.Error(w, "join unavailable", s.JoinStatus)
		return
	}

	s.mu.Lock()
	p.members[a.APIKey] = true
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "joined"})
}

func (s *Server) handleIssues(w http.ResponseWriter, r *http.Request, p *project, parts []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// /projects/{id}/issues
	if len(parts) == 0 || parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			state := r.URL.Query().Get("state")
			list := []*issue{}
			for _, is := range p.issues {
				if state == "all" || state == is.State || (state == "" && is.State == "open") {
					list = append(list, is)
				}
			}
			writeJSON(w, http.StatusOK, list)
		case http.MethodPost:
			var req struct {
				Title string `json:"title"`
				Body  string `json:"body"`
			}
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &req); err != nil {
				http.Error(w, "invalid body", http.StatusBadRequest)
				return
			}
			p.issueSeq++
			is := &issue{
				Number:   p.issueSeq,
				Title:    req.Title,
				Body:     req.Body,
				State:    "open",
				comments: make(map[int64]*comment),
			}
			p.issues[is.Number] = is
			writeJSON(w, http.StatusOK, is)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	n, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		http.Error(w, "bad issue number", http.StatusBadRequest)
		return
	}
	is, ok := p.issues[n]
	if !ok {
		http.Error(w, "issue not found", http.StatusNotFound)
		return
	}

	// /projects/{id}/issues/{n}
	if len(parts) == 1 {
		writeJSON(w, http.StatusOK, is)
		return
	}

	switch parts[1] {
	case "comments":
		s.handleComments(w, r, &p.commentSeq, is.comments, parts[2:])
	case "assignees":
		switch r.Method {
		case http.MethodPost:
			var req struct {
				Assignees []string `json:"assignees"`
			}
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &req); err != nil {
				http.Error(w, "invalid body", http.StatusBadRequest)
				return
			}
			is.assignees = append(is.assignees, req.Assignees...)
			writeJSON(w, http.StatusOK, is)
		case http.MethodDelete:
			if len(parts) < 3 {
				http.Error(w, "missing assignee", http.StatusBadRequest)
				return
			}
			kept := is.assignees[:0]
			for _, u := range is.assignees {
				if u != parts[2] {
					kept = append(kept, u)
				}
			}
			is.assignees = kept
			writeJSON(w, http.StatusOK, is)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	case "close":
		is.State = "closed"
		writeJSON(w, http.StatusOK, is)
	case "reopen":
		is.State = "open"
		writeJSON(w, http.StatusOK, is)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// handleComments serves comment CRUD for both issues and PRs.
// Callers hold s.mu.
func (s *Server) handleComments(w http.ResponseWriter, r *http.Request, seq *int64, comments map[int64]*comment, parts []string) {
	if len(parts) == 0 || parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			list := []*comment{}
			for _, c := range comments {
				list = append(list, c)
			}
			writeJSON(w, http.StatusOK, list)
		case http.MethodPost:
			var req struct {
				Body string `json:"body"`
			}
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &req); err != nil {
				http.Error(w, "invalid body", http.StatusBadRequest)
				return
			}
			*seq++
			c := &comment{ID: *seq, Body: req.Body}
			comments[c.ID] = c
			writeJSON(w, http.StatusOK, c)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	cid, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		http.Error(w, "bad comment id", http.StatusBadRequest)
		return
	}
	c, ok := comments[cid]
	if !ok {
		http.Error(w, "comment not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var req struct {
			Body string `json:"body"`
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		c.Body = req.Body
		writeJSON(w, http.StatusOK, c)
	case http.MethodDelete:
		delete(comments, cid)
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handlePRs(w http.ResponseWriter, r *http.Request, p *project, parts []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(parts) == 0 || parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			list := []*pr{}
			for _, x := range p.prs {
				list = append(list, x)
			}
			writeJSON(w, http.StatusOK, list)
		case http.MethodPost:
			var req struct {
				Title string `json:"title"`
				Body  string `json:"body"`
				Head  string `json:"head"`
				Base  string `json:"base"`
			}
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &req); err != nil || req.Head == "" {
				http.Error(w, "invalid body", http.StatusBadRequest)
				return
			}
			p.prSeq++
			x := &pr{
				Number:   p.prSeq,
				Title:    req.Title,
				Body:     req.Body,
				Head:     req.Head,
				Base:     req.Base,
				State:    "open",
				URL:      fmt.Sprintf("http://forge.test/projects/%d/prs/%d", p.ID, p.prSeq),
				comments: make(map[int64]*comment),
			}
			p.prs[x.Number] = x
			writeJSON(w, http.StatusOK, x)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	n, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		http.Error(w, "bad pr number", http.StatusBadRequest)
		return
	}
	x, ok := p.prs[n]
	if !ok {
		http.Error(w, "pr not found", http.StatusNotFound)
		return
	}

	if len(parts) == 1 {
		writeJSON(w, http.StatusOK, x)
		return
	}

	switch parts[1] {
	case "reviews":
		var req struct {
			Action string `json:"action"`
			Body   string `json:"body"`
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil || req.Action == "" {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		x.reviews = append(x.reviews, req.Action)
		writeJSON(w, http.StatusOK, map[string]string{"message": "review submitted"})
	case "comments":
		s.handleComments(w, r, &p.commentSeq, x.comments, parts[2:])
	case "reactions":
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, x.reactions)
		case http.MethodPost:
			var req struct {
				Content string `json:"content"`
			}
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &req); err != nil {
				http.Error(w, "invalid body", http.StatusBadRequest)
				return
			}
			x.reactions = append(x.reactions, req.Content)
			writeJSON(w, http.StatusOK, map[string]string{"content": req.Content})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	case "merge":
		x.Merged = true
		x.State = "closed"
		writeJSON(w, http.StatusOK, map[string]string{"message": "merged"})
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (s *Server) handleMaintainers(w http.ResponseWriter, r *http.Request, p *project, parts []string) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		list := append([]string{}, p.maintainers...)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		if s.AddMaintainerStatus != 0 && s.AddMaintainerStatus != http.StatusOK {
			http.Error(w, s.AddMaintainerBody, s.AddMaintainerStatus)
			return
		}
		var req struct {
			Username string `json:"username"`
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil || req.Username == "" {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		p.maintainers = append(p.maintainers, req.Username)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "maintainer added"})
	case http.MethodDelete:
		if s.RemoveMaintainerStatus != 0 && s.RemoveMaintainerStatus != http.StatusOK {
			http.Error(w, "remove failed", s.RemoveMaintainerStatus)
			return
		}
		if len(parts) == 0 || parts[0] == "" {
			http.Error(w, "missing username", http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		kept := p.maintainers[:0]
		for _, u := range p.maintainers {
			if u != parts[0] {
				kept = append(kept, u)
			}
		}
		p.maintainers = kept
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "maintainer removed"})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if s.authed(r) == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	s.mu.Lock()
	list := []*project{}
	if !s.HideFromFeed {
		list = append(list, s.projects...)
	}
	s.mu.Unlock()

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, map[string]any{"projects": list})
		return
	}

	w.Header().Set("Content-Type", "text/markdown")
	fmt.Fprintln(w, "## Projects")
	for i, p := range list {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Name)
	}
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	a := s.authed(r)
	if a == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	body, _ := io.ReadAll(r.Body)
	cmd := strings.TrimSpace(string(body))

	switch {
	case cmd == "profile" || cmd == "leaderboard" || cmd == "help":
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	case strings.HasPrefix(cmd, "join "):
		idx, err := strconv.Atoi(strings.TrimPrefix(cmd, "join "))
		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil || idx < 1 || idx > len(s.projects) {
			http.Error(w, "no such project index", http.StatusBadRequest)
			return
		}
		s.projects[idx-1].members[a.APIKey] = true
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "joined")
	default:
		http.Error(w, "unknown command", http.StatusBadRequest)
	}
}

func (s *Server) handleEngage(w http.ResponseWriter, r *http.Request) {
	if s.authed(r) == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

func (s *Server) handleEngageCounts(w http.ResponseWriter, r *http.Request) {
	if s.authed(r) == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"fire": 1})
}

func (s *Server) handleViral(w http.ResponseWriter, r *http.Request) {
	feed := strings.TrimPrefix(r.URL.Path, "/viral/")
	if status, ok := s.ViralStatus[feed]; ok && status != http.StatusOK {
		http.Error(w, "feed unavailable", status)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": []any{}})
}

// handleGiteaRepos fakes the git host's REST API: collaborator PUT and
// branch lookup GET.
func (s *Server) handleGiteaRepos(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/repos/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) < 4 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	owner, repo := parts[0], parts[1]

	switch parts[2] {
	case "collaborators":
		if r.Method != http.MethodPut {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.mu.Lock()
		s.collaborators[owner+"/"+repo+"/"+parts[3]] = true
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	case "branches":
		s.mu.Lock()
		exists := s.branches[owner+"/"+repo+"/"+parts[3]]
		s.mu.Unlock()
		if !exists {
			http.Error(w, "branch not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"name": parts[3]})
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}
