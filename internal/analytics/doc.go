// Package analytics turns record snapshots into nested statistic reports.
//
// Everything here is a pure function over in-memory slices: no I/O, no
// state, no mutation of inputs, and no errors. Malformed timestamps,
// missing optional fields, and dangling goal references are treated as
// absent; the functions always return a complete, well-typed report.
//
// Tasks and habits share one grouping routine. The per-entity differences
// (what "completed" means, how "incomplete" is derived, what the time
// stats measure) are captured by a policy object and by per-entity time
// stat functions. Field names in the JSON output are fixed for frontend
// compatibility even where habit semantics diverge from the label.
package analytics
