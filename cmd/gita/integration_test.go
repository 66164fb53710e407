package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/hurbes/gita-tui/internal/tuitest"
)

func TestReaderShowsFirstVerse(t *testing.T) {
	t.Parallel()

	cmdDir := moduleDir(t)
	feed, err := os.ReadFile(filepath.Join(cmdDir, "testdata", "chapters.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(feed)
	}))
	defer srv.Close()

	rec := runReaderBinary(t, cmdDir, srv.URL, []tuitest.Step{
		{Delay: 2 * time.Second},
		{Input: []byte("b")},
		{Delay: time.Second},
		{Input: tuitest.KeyCtrlC},
	})

	if !rec.ContainsFrame("Arjuna Visada Yoga") {
		t.Fatal("expected the first chapter title to render")
	}
	if !rec.ContainsFrame("Verse 1 of 2") {
		t.Fatal("expected the verse position to render")
	}
	if !rec.ContainsFrame("Bookmarked 1:1") {
		t.Fatal("expected the bookmark toast to render")
	}
}

func TestReaderShowsEmptyStateWhenFeedUnreachable(t *testing.T) {
	t.Parallel()

	cmdDir := moduleDir(t)
	rec := runReaderBinary(t, cmdDir, "http://127.0.0.1:1/chapters.json", []tuitest.Step{
		{Delay: 2 * time.Second},
		{Input: tuitest.KeyCtrlC},
	})

	if !rec.ContainsFrame("No content available") {
		t.Fatal("expected the empty state to render on fetch failure")
	}
}

func runReaderBinary(t *testing.T, cmdDir, source string, steps []tuitest.Step) *tuitest.Recording {
	t.Helper()

	binary := buildBinary(t, cmdDir)
	configHome := t.TempDir()
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "--no-alt-screen", "--no-restore", "--source", source},
		Dir:     cmdDir,
		Env: []string{
			"HOME=" + configHome,
			"XDG_CONFIG_HOME=" + filepath.Join(configHome, ".config"),
		},
		Width:   100,
		Height:  32,
		Steps:   steps,
		Timeout: 15 * time.Second,
	})
	if err != nil {
		t.Fatalf("run reader: %v", err)
	}
	return rec
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	name := "gita-integration"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build reader: %v\n%s", err, output)
	}
	return binPath
}
