// Package store provides durable storage for processing runs.
//
// Each run records the source document, the parser configuration, and
// both allocation tables (pre- and post-veto) so that earlier runs can
// be queried and compared without re-parsing the source. SQLite with
// WAL mode keeps reads available while a run is being written.
package store
