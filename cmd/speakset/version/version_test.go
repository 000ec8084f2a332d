package version

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/flarebyte/speakset-native/internal/buildinfo"
)

func captureStdout(t *testing.T, fn func()) []byte {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	oldStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	fn()
	_ = w.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return got
}

func resetFlags(t *testing.T) {
	t.Helper()
	oldVersion, oldCommit, oldDate := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	oldShort, oldJSON := flagShort, flagJSON
	t.Cleanup(func() {
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = oldVersion, oldCommit, oldDate
		flagShort, flagJSON = oldShort, oldJSON
	})
	buildinfo.Version = ""
	buildinfo.Commit = ""
	buildinfo.Date = ""
	flagShort = false
	flagJSON = false
}

func TestVersionDefaultOutputStable(t *testing.T) {
	resetFlags(t)

	got := captureStdout(t, func() {
		if err := VersionCmd.RunE(VersionCmd, nil); err != nil {
			t.Fatalf("run: %v", err)
		}
	})
	// A VCS stamp may append a commit; the line shape is what matters.
	out := string(got)
	if !strings.HasPrefix(out, "speakset dev") || strings.Count(out, "\n") != 1 || !strings.HasSuffix(out, "\n") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestVersionJSON(t *testing.T) {
	resetFlags(t)
	flagJSON = true
	buildinfo.Version = "1.2.3"

	got := captureStdout(t, func() {
		if err := VersionCmd.RunE(VersionCmd, nil); err != nil {
			t.Fatalf("run: %v", err)
		}
	})
	var out map[string]any
	if err := json.Unmarshal(got, &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, got)
	}
	if out["version"] != "1.2.3" || out["hash"] != "xxhash" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestVersionRejectsArgs(t *testing.T) {
	if err := VersionCmd.Args(VersionCmd, []string{"x"}); err == nil {
		t.Fatalf("expected error for extra argument")
	}
	if err := VersionCmd.Args(VersionCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
