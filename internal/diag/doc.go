// Package diag defines the diagnostic model shared by all check rules.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture style
//     findings produced by the trivia scanner and the rules built on it.
//   - Offer light-weight utilities (Reporter, Bag) that let rules emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Model fix suggestions as structured edits that the driver or CLI can
//     apply to source files.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt,
// whereas application of fixes lives in internal/fix and the driver layer.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     matching the familiar pycodestyle naming (E275, W391, ...).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// TextEdit spans are byte offsets into the original file content; OldText acts
// as an optional guard that the fix engine validates before applying edits.
//
// # Emitting diagnostics
//
// Rules should use a diag.Reporter to decouple emission from storage. When no
// additional metadata is needed, rules may call Reporter.Report(...) directly.
// diag.BagReporter aggregates diagnostics into a Bag, which supports sorting,
// deduplication and merging.
//
// Keep the data model deterministic: diagnostics are serialised for the result
// cache and compared across runs.
package diag
