// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/notice"
	"github.com/tomtom215/marquee/internal/recommend"
)

const testMovies = `[
	{"id": 19995, "title": "Avatar"},
	{"id": 285, "title": "Pirates of the Caribbean: At World's End"},
	{"id": 206647, "title": "Spectre"},
	{"id": 49026, "title": "The Dark Knight Rises"},
	{"id": 559, "title": "Spider-Man 3"}
]`

const testSimilarity = `{"0": [0, 3, 1, 2, 4]}`

type cliTestEnv struct {
	dir        string
	moviesPath string
	simPath    string
	configPath string
}

// setupCLITestEnv writes a JSON artifact pair and a config pointing at a
// fake TMDB that has no poster for id 285.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/movie/")
		if id == "285" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id": %s, "poster_path": "/%s.jpg"}`, id, id)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	env := &cliTestEnv{
		dir:        dir,
		moviesPath: filepath.Join(dir, "movies.json"),
		simPath:    filepath.Join(dir, "similarity.json"),
		configPath: filepath.Join(dir, "config.yaml"),
	}
	writeTestFile(t, env.moviesPath, testMovies)
	writeTestFile(t, env.simPath, testSimilarity)
	writeTestFile(t, env.configPath, fmt.Sprintf(`
tmdb:
  api_key: test-key
  base_url: %s
  requests_per_second: 0
artifacts:
  format: json
  movies_path: %s
  similarity_path: %s
carousel:
  ids: [19995, 285, 559]
breaker:
  enabled: false
`, srv.URL, env.moviesPath, env.simPath))

	for _, key := range []string{"TMDB_API_KEY", "TMDB_BASE_URL", "ARTIFACTS_FORMAT", "ARTIFACTS_PATH", "CONFIG_PATH"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return env
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRecommendCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"recommend", "avatar"}, env.configPath)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	for _, want := range []string{
		"The Dark Knight Rises",
		"Spectre",
		"Spider-Man 3",
		"https://image.tmdb.org/t/p/w500/49026.jpg",
		"[WARN] Network error for movie ID: 285",
		"[INFO] Found 3 recommendations for 'avatar'.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Pirates") {
		t.Errorf("movie without poster must not be listed:\n%s", out)
	}
	if strings.Index(out, "The Dark Knight Rises") > strings.Index(out, "Spectre") {
		t.Errorf("rows out of rank order:\n%s", out)
	}
}

func TestRecommendCommand_MultiWordAndJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "recommend", "Nonexistent", "Movie"}, env.configPath)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	var result recommend.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if result.Query != "Nonexistent Movie" || result.Count != 0 {
		t.Errorf("result = %+v", result)
	}
	if len(result.Notices) != 1 || result.Notices[0].Code != notice.CodeNotFound {
		t.Errorf("notices = %+v, want NOT_FOUND", result.Notices)
	}
}

func TestRecommendCommand_NotFoundTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"recommend", "Nonexistent"}, env.configPath)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if !strings.Contains(out, "[ERROR] "+recommend.MessageNotFound) {
		t.Errorf("output = %q", out)
	}
}

func TestRecommendCommand_MissingConfig(t *testing.T) {
	setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"recommend", "avatar"}, filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}

func TestTitlesCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"titles"}, env.configPath)
	if err != nil {
		t.Fatalf("titles: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 || lines[0] != "Avatar" {
		t.Errorf("titles = %q", lines)
	}

	out, _, err = runCLI(t, []string{"titles", "--prefix", "sp"}, env.configPath)
	if err != nil {
		t.Fatalf("titles --prefix: %v", err)
	}
	if !strings.Contains(out, "Spectre") || !strings.Contains(out, "Spider-Man 3") || strings.Contains(out, "Avatar") {
		t.Errorf("prefix output = %s", out)
	}

	out, _, err = runCLI(t, []string{"titles", "--prefix", "zzz"}, env.configPath)
	if err != nil {
		t.Fatalf("titles --prefix zzz: %v", err)
	}
	if !strings.Contains(out, `No titles start with "zzz"`) {
		t.Errorf("output = %q", out)
	}
}

func TestCarouselCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"carousel"}, env.configPath)
	if err != nil {
		t.Fatalf("carousel: %v", err)
	}
	if !strings.Contains(out, "2 of 3 posters resolved") {
		t.Errorf("output = %s", out)
	}
	if strings.Index(out, "19995") > strings.Index(out, "559.jpg") {
		t.Errorf("carousel out of order:\n%s", out)
	}
}

func TestArtifactsImportAndInspect(t *testing.T) {
	env := setupCLITestEnv(t)
	dbPath := filepath.Join(env.dir, "out", "marquee.db")

	out, _, err := runCLI(t, []string{
		"artifacts", "import",
		"--movies", env.moviesPath,
		"--similarity", env.simPath,
		"--out", dbPath,
	}, "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Wrote "+dbPath) {
		t.Errorf("import output = %s", out)
	}

	out, _, err = runCLI(t, []string{"--json", "artifacts", "inspect", "--path", dbPath}, "")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var stats struct {
		Movies         int `json:"movies"`
		SimilarityRows int `json:"similarity_rows"`
		Candidates     int `json:"candidates"`
	}
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if stats.Movies != 5 || stats.SimilarityRows != 1 || stats.Candidates != 5 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestArtifactsImport_RequiresFlags(t *testing.T) {
	setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"artifacts", "import", "--movies", "m.json"}, ""); err == nil {
		t.Fatal("expected missing flag error")
	}
}

func TestRenderNotice(t *testing.T) {
	n := notice.Notice{Level: notice.LevelWarning, Message: "Timeout for movie ID: 7"}
	if got := renderNotice(n, false); got != "[WARN] Timeout for movie ID: 7" {
		t.Errorf("plain = %q", got)
	}
	if got := renderNotice(n, true); got != ansiYellow+"[WARN] Timeout for movie ID: 7"+ansiReset {
		t.Errorf("colored = %q", got)
	}
	if shouldColorize(&bytes.Buffer{}) {
		t.Error("buffers are never terminals")
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"#", "Title"}, [][]string{{"1", "Spectre"}, {"2"}}, []columnAlignment{alignRight})
	if !strings.Contains(out, "Spectre") || !strings.Contains(out, "╭") {
		t.Errorf("table = %s", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Error("no headers should render nothing")
	}
}
