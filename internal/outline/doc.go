// Package outline implements the structure of indentation-based outline
// documents: checkbox and summary tokens, parent/child resolution, summary
// aggregation, and the navigate action that ties them together.
//
// Nothing in this package keeps state between calls. Every operation reads
// the live document through the Document interface and derives the tree on
// demand, so a stale view of the buffer is never possible.
//
// # Structure
//
// The indentation of a line is the number of leading whitespace characters.
// Blank lines have indentation 0 and act as boundaries:
//
//	- [ ] groceries [1/2]      <- parent of the two items below
//	  - [x] milk
//	  - [ ] bread
//	      note about bread      <- grandchild, not counted by the summary
//
// Parent returns the nearest preceding line with a smaller indentation.
// Children returns only direct children: lines in the contiguous deeper run
// whose indentation equals the smallest indentation seen so far in it.
//
// # Tokens
//
// A checkbox is the first "[x]", "[X]" or "[ ]" on a line; its Range covers
// only the marker character. A summary is the first "[n/m]" on a line; its
// Range covers the text between the brackets. Either digit run may be
// empty, which reads as 0.
//
// # Navigate
//
// Navigator.Navigate looks at the host's cursor and performs exactly one
// edit: toggle the checkbox under the cursor, recompute the summary under
// the cursor, or insert a line break at the cursor.
package outline
