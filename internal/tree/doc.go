// Package tree materializes folder skeletons from fixed path templates.
//
// The Builder works on a billy.Filesystem so that the same code drives the
// real disk (osfs) in the CLI and an in-memory filesystem (memfs) in tests.
//
// Guarantees:
//   - CreateDirectories behaves like `mkdir -p` and is idempotent.
//   - CreateFiles only creates empty placeholder files where nothing exists
//     yet; existing files, directories and links are never touched.
//   - Filesystem errors are returned as-is. There is no retry and no
//     rollback, so a failing template may leave earlier entries on disk.
package tree
