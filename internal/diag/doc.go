// Package diag defines the diagnostic values collected by every processing stage.
//
// # Purpose
//
//   - Provide a deterministic, serialisable record for each finding produced
//     while processing unit and quantity declarations.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not format for humans, perform IO, or know about the CLI.
// Rendering lives in internal/diagfmt, orchestration in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//   - Message: human oriented text; keep it short and actionable.
//   - Primary: the source.Span the finding points at.
//   - Notes: optional secondary spans for context ("target declared here").
//
// Processing stages treat diagnostics as opaque payloads. They build them
// through factories, collect them, and concatenate lists in order. A list of
// diagnostics is never deduplicated and never reordered; sorting is only done
// by renderers (see FormatShortDiagnostics).
//
// # Emitting diagnostics
//
// Stages that are not built on internal/outcome (the declaration loader, for
// example) emit through a Reporter, typically a BagReporter bound to the
// run-wide Bag. ReportBuilder helps attach notes before Emit.
package diag
