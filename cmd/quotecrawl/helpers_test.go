package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
)

// cliResult holds what one command invocation printed.
type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command with args and stdin, capturing output.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// testEnv is an isolated database and config file for one test.
type testEnv struct {
	dir    string
	dbDir  string
	config string
}

func newTestEnv(t *testing.T, configYAML string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		dir:    dir,
		dbDir:  filepath.Join(dir, "db"),
		config: filepath.Join(dir, "config.yaml"),
	}
	if configYAML == "" {
		configYAML = "pending_cap: 900\n"
	}
	if err := os.WriteFile(env.config, []byte(configYAML), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return env
}

// args prefixes the global flags that point at the test database.
func (e *testEnv) args(args ...string) []string {
	return append([]string{"--db-dir", e.dbDir, "-c", e.config}, args...)
}

// siteServer serves /tag/{name}/page/{N}/ listings with two quotes per page
// and a next link on every page but the last.
type siteServer struct {
	*httptest.Server
	pages    int
	requests atomic.Int64
}

func newSiteServer(t *testing.T, pages int) *siteServer {
	t.Helper()

	s := &siteServer{pages: pages}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *siteServer) handle(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "tag" || parts[len(parts)-2] != "page" {
		http.NotFound(w, r)
		return
	}
	page, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || page < 1 || page > s.pages {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<html><body>`)
	for i := 1; i <= 2; i++ {
		fmt.Fprintf(w, `<div class="quote">
			<span class="text">“Quote %d on page %d”</span>
			<span>by <small class="author">Author %d</small></span>
			<div class="tags">Tags: <a class="tag" href="/tag/life/">life</a><a class="tag" href="/tag/love/">love</a></div>
		</div>`, i, page, i)
	}
	if page < s.pages {
		next := "/" + strings.Join(parts[:len(parts)-2], "/") + "/page/" + strconv.Itoa(page+1) + "/"
		fmt.Fprintf(w, `<ul class="pager"><li class="next"><a href="%s">Next</a></li></ul>`, next)
	}
	fmt.Fprint(w, `</body></html>`)
}

// category returns the listing URL of a category on the server.
func (s *siteServer) category(name string) string {
	return s.URL + "/tag/" + name + "/"
}
