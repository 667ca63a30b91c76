// Package engine is the core of keygrep: it collects eligible files,
// fans one scanning task out per file under a bounded worker pool, applies
// the rule catalog line by line, and folds the per-file results into a
// single ScanResult. The engine performs no output of its own; presentation
// layers consume the result.
package engine
