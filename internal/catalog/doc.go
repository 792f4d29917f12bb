// ABOUTME: Package documentation for the catalog package
// ABOUTME: Describes the snapshot, matcher, ranking and pagination pipeline

// Package catalog is the in-memory query engine behind the mods commands.
//
// A Snapshot holds the installed mod records; it is immutable and built once
// per scan. An Engine answers a Query against a snapshot:
//
//   - ListAll enumerates records in snapshot order
//   - SearchText scores every record with the fuzzy Matcher, drops records
//     without a match and ranks the rest by score, then id
//   - GetByID looks a single record up by its exact id
//   - ListChildren enumerates the children of one record
//
// and the ranked sequence is cut into the requested page.
//
// Everything here is pure: no I/O, no logging, no shared mutable state. A
// Holder swaps whole snapshots atomically so concurrent queries never see a
// partially updated catalog.
package catalog
