// Package buffer provides a thread-safe, line-oriented text buffer. It is
// the storage behind the editor engine and the document the outline
// package reads.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Line/column addressing (Point, PointRange)
//   - Line ending detection and normalization
//   - Revision tracking and a saved/modified flag
//   - Read-only snapshots for concurrent access
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("- [ ] milk\n- [ ] bread")
//
//	// Check the first item
//	buf.Replace(buffer.NewPointRange(buffer.Point{Line: 0, Column: 3}, buffer.Point{Line: 0, Column: 4}), "X")
//
//	// Split a line
//	buf.Insert(buffer.Point{Line: 1, Column: 2}, "\n")
//
// Lines are stored without terminators. Text passed to Insert or Replace
// may contain "\n", "\r\n" or "\r"; each one starts a new line, and Text()
// joins lines using the buffer's LineEnding.
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Use Snapshot() when several reads
// must observe the same revision.
package buffer
