// Package fileutil provides the filesystem primitives localdbenv needs:
// existence checks, text reads, atomic writes via temp-file-then-rename, and
// recursive directory removal that distinguishes a locked resource from any
// other failure so callers can retry only the former.
//
// OS bundles these behind the method set the lifecycle manager consumes.
package fileutil
