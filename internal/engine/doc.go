// Package engine provides the document engine for orgmode.
//
// The engine package serves as the main facade for one open document,
// combining buffer storage, the cursor, undo/redo and the file the
// document came from into a unified, thread-safe API. It is the host the
// outline navigator edits through.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: line store with revisions and line-ending handling
//   - cursor: immutable cursor with rune-aware motion
//   - history: bounded undo/redo stack
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing writes.
//
// # Basic Usage
//
//	e, err := engine.Open("todo.org", engine.WithLanguageID("orgmode"))
//	if err != nil {
//		return err
//	}
//
//	e.SetCursor(engine.Point{Line: 0, Column: 3})
//	nav := outline.NewNavigator()
//	if _, err := nav.Navigate(e); err != nil {
//		return err
//	}
//
//	e.Undo()  // back to the original text
//	e.Save()
//
// # Line Endings
//
// Lines are stored without terminators. A file opened from disk keeps the
// line ending it was written with unless WithLineEnding overrides it, and
// any "\n" inserted through the engine is written back in that style.
package engine
