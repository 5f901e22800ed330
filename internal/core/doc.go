// Package core implements the package operations of miniature: loading a
// versioned subtree out of a registered repository, tagging and publishing
// package versions, and batch loading from a manifest.
//
// # Design Principles
//
//   - Functions return errors or structured outcomes instead of printing
//   - Git is reached only through the [VCS] interface
//   - Repository lookups go through the [Registry] interface
//
// # Working copies
//
// Checkout mutates the HEAD of the shared working copy. The engine does not
// lock: two operations against the same local repository must be serialized
// by the caller. Operations on different repositories are independent.
//
// # Outcomes
//
// Failures that happen before any git command runs (missing metadata,
// unregistered repository, validation) are returned as errors. Failures in
// the middle of an operation are reported through the outcome's Success,
// Message and Err fields so partial progress stays visible.
package core
