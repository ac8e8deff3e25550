// Package archive extracts zip-format archives into directory trees and
// serializes directory trees back into zip-format archives.
//
// Extraction overwrites files already present at the same relative path and
// refuses entries that would land outside the destination directory.
// Creation walks the source tree, sorts entries and stamps every entry with a
// fixed modification time so that identical trees produce identical archives.
package archive
