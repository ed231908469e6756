// Package model defines the record types persisted by the store and
// consumed by the analytics engine: tasks, habits, goals, and habit
// check-ins.
//
// All timestamps are kept as ISO 8601 strings exactly as they appear in
// the data files. Parsing is lenient and happens at the point of use so
// that a single malformed date never poisons a whole record.
package model
