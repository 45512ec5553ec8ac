// Package scan finds leftover occurrences of the devcode identifier in a
// project tree.
//
// Walk enumerates regular files depth-first in directory-name order,
// pruning excluded directory names at any depth. Finder reads those files
// in parallel and reports every line containing the identifier, ordered by
// traversal position and then line number regardless of read scheduling.
//
// Scanning is read-only and best-effort: unreadable directories, unreadable
// files and files that are not valid UTF-8 are skipped and counted, never
// reported as errors. A skipped file may still contain the identifier.
package scan
