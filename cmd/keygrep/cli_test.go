package keygrep

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdir stands in for t.Chdir, which needs Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestHookInstallUninstall(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	if err := runCommand(t, "hook", "install"); err != nil {
		t.Fatalf("install: %v", err)
	}
	path := filepath.Join(".git", "hooks", "pre-commit")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("hook not written: %v", err)
	}
	if !strings.Contains(string(b), "keygrep scan --staged") {
		t.Fatalf("unexpected hook body:\n%s", b)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&0100 == 0 {
		t.Error("hook is not executable")
	}

	// Reinstalling over our own hook is fine.
	if err := runCommand(t, "hook", "install"); err != nil {
		t.Fatalf("reinstall: %v", err)
	}

	if err := runCommand(t, "hook", "uninstall"); err != nil {
		t.Fatalf("uninstall: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("hook still present after uninstall")
	}
}

func TestHookRefusesForeignHook(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git", "hooks"), 0755); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	path := filepath.Join(".git", "hooks", "pre-commit")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexec lint-staged\n"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "hook", "install"); err == nil {
		t.Fatal("install overwrote a hook keygrep does not own")
	}
	if err := runCommand(t, "hook", "uninstall"); err == nil {
		t.Fatal("uninstall removed a hook keygrep does not own")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal("foreign hook was removed")
	}
}

func TestHookOutsideRepo(t *testing.T) {
	chdir(t, t.TempDir())
	if err := runCommand(t, "hook", "install"); err == nil {
		t.Fatal("expected an error outside a git repository")
	}
}

func TestCIInitGitHub(t *testing.T) {
	chdir(t, t.TempDir())
	if err := runCommand(t, "ci", "init", "--provider", "github"); err != nil {
		t.Fatalf("ci init: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(".github", "workflows", "keygrep.yml"))
	if err != nil {
		t.Fatalf("workflow not written: %v", err)
	}
	for _, want := range []string{"keygrep scan --sarif", "upload-sarif"} {
		if !strings.Contains(string(b), want) {
			t.Errorf("workflow missing %q", want)
		}
	}
}

func TestCompletionUnsupportedShell(t *testing.T) {
	if err := runCommand(t, "completion", "elvish"); err == nil {
		t.Fatal("expected an error for an unsupported shell")
	}
}

func TestCIInitUnknownProvider(t *testing.T) {
	chdir(t, t.TempDir())
	if err := runCommand(t, "ci", "init", "--provider", "circleci"); err == nil {
		t.Fatal("expected an error for an unsupported provider")
	}
}
