package cli

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gradekit/hwcheck/internal/config"
)

const passingHTML = `<html><head><title>Hi</title><link rel="stylesheet" href="style.css"></head><body><p>ok</p></body></html>`

func passingSubmission() map[string]string {
	return map[string]string{
		"index.html": passingHTML,
		"style.css":  "body { margin: 0; }",
	}
}

func failingSubmission() map[string]string {
	return map[string]string{
		"index.html": passingHTML,
	}
}

func writeZip(t *testing.T, path string, members map[string]string) {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for name, body := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip member %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip member %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write zip file: %v", err)
	}
}

// isolateConfig points HWCHECK_CONFIG at a path inside the test's temp dir
// so tests never read or touch the developer's real config.
func isolateConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(config.EnvConfigPath, path)
	return path
}

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
