// Package workspace implements the persisted project-space layout §6.2
// lists as an external collaborator: a directory tree of profiles, raw
// experiments, per-run trees and summaries, plus a small sqlite-backed
// index of past runs.
//
// The layout under a workspace root is:
//
//	profiles/<name>/profile.yaml
//	ms/<experiment-id>.ms
//	scores/<experiment-id>.csv
//	<experiment-id>/trees/<rank>_<formula>.json
//	<experiment-id>/trees/<rank>_<formula>.dot
//	<experiment-id>/summary.csv
//	runs.db
//
// Writer owns the filesystem side; RunIndex owns runs.db. Both are grounded
// on ChrisMcGann/DBKey's pkg/writer/sqlite.Writer: a thin struct around
// *sql.DB with prepared statements, schema created on open, typed methods
// for each record kind.
package workspace
