// Package outcome implements the diagnostics-accumulating values every
// processing stage returns.
//
// Three shapes exist:
//
//   - Validity: a yes/no verdict plus diagnostics.
//   - Optional[T]: maybe a value plus diagnostics. Fallible stages return it.
//   - Result[T]: always a value plus diagnostics. Infallible stages return it.
//
// Diagnostics are concatenated left to right and never reordered or
// deduplicated. A valid Validity or a present Optional may still carry
// diagnostics (warnings). Combinators short-circuit: once a value is invalid
// or empty, the continuation passed to Validate, Merge or Then is not called.
//
// Go methods cannot introduce type parameters, so combinators that change the
// value type are package functions (Merge, Transform, Then, Map, AsEmpty);
// those that keep it are methods.
package outcome
