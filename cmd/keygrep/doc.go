// Package keygrep provides the command-line interface for the keygrep tool.
// It configures subcommands (scan, rules, hook, ci, update), parses flags,
// and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/keygrep/keygrep/cmd/keygrep"
//	func main() { keygrep.Execute() }
package keygrep
