// Package core provides a small, stable facade over keygrep's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so third-party tools can depend on a stable import path without
// reaching into internal implementation packages.
//
// Example:
//
//	cfg := core.DefaultConfig()
//	cfg.Paths = []string{"."}
//	res := core.Scan(cfg)
//	_ = core.MarshalFindings(os.Stdout, res.Findings)
package core
