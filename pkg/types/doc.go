// Package types defines the Giantt data model: items, relations, durations,
// time constraints, log entries, and the error types shared by the parser,
// graph, and storage layers.
package types
