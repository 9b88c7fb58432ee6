package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRunWritesPatch(t *testing.T) {
	dir := t.TempDir()
	oldpath := filepath.Join(dir, "old")
	newpath := filepath.Join(dir, "new")
	patchpath := filepath.Join(dir, "patch")

	if err := os.WriteFile(oldpath, []byte("the quick brown fox"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(newpath, []byte("the quick brown hound"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	code := run(&out, &errOut, []string{oldpath, newpath, patchpath})
	if code != 0 {
		t.Fatalf("run: exit %d, stderr: %s", code, errOut.String())
	}

	patch, err := os.ReadFile(patchpath)
	if err != nil {
		t.Fatalf("reading patch: %v", err)
	}
	if len(patch) < 32 || string(patch[:8]) != "BSDIFF40" {
		t.Fatalf("patch file missing BSDIFF40 header")
	}
}

func TestRunWrongArgCount(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run(&out, &errOut, []string{"onlyone"})
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestRunMissingOldFile(t *testing.T) {
	dir := t.TempDir()
	var out, errOut bytes.Buffer
	code := run(&out, &errOut, []string{
		filepath.Join(dir, "missing"),
		filepath.Join(dir, "new"),
		filepath.Join(dir, "patch"),
	})
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}
