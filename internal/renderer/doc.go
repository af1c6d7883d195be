// Package renderer draws an outline document on a terminal backend.
//
// The screen is a viewport of document lines followed by a one-row status
// line. In outline documents the first checkbox and summary token of each
// line are highlighted; other documents are drawn as plain text.
package renderer
