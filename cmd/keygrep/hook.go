package keygrep

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const hookScript = `#!/bin/sh
# installed by keygrep; blocks commits that stage secrets
exec keygrep scan --staged --fail-on-found
`

func init() {
	hook := &cobra.Command{Use: "hook", Short: "Manage the git pre-commit hook"}
	rootCmd.AddCommand(hook)

	install := &cobra.Command{
		Use:   "install",
		Short: "Install a pre-commit hook that scans staged files",
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := hookPath()
			if err != nil {
				return err
			}
			if b, err := os.ReadFile(path); err == nil && !strings.Contains(string(b), "keygrep") {
				return fmt.Errorf("%s exists and was not installed by keygrep; remove it first", path)
			}
			if err := os.WriteFile(path, []byte(hookScript), 0755); err != nil {
				return err
			}
			fmt.Println("Installed", path)
			return nil
		},
	}
	hook.AddCommand(install)

	uninstall := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the keygrep pre-commit hook",
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := hookPath()
			if err != nil {
				return err
			}
			b, err := os.ReadFile(path)
			if err != nil {
				fmt.Println("No hook installed")
				return nil
			}
			if !strings.Contains(string(b), "keygrep") {
				return fmt.Errorf("%s was not installed by keygrep; leaving it alone", path)
			}
			if err := os.Remove(path); err != nil {
				return err
			}
			fmt.Println("Removed", path)
			return nil
		},
	}
	hook.AddCommand(uninstall)
}

func hookPath() (string, error) {
	dir := ".git"
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("not a git repository (no .git directory)")
	}
	hooks := filepath.Join(dir, "hooks")
	if err := os.MkdirAll(hooks, 0755); err != nil {
		return "", err
	}
	return filepath.Join(hooks, "pre-commit"), nil
}
