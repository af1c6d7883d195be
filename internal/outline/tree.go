package outline

// Parent returns the nearest line above line whose indentation is strictly
// less than line's own. The first line of a document has no parent.
func Parent(doc Document, line Line) (Line, bool) {
	indent := line.Indent()
	for i := line.Index - 1; i >= 0; i-- {
		candidate := LineAt(doc, i)
		if candidate.Indent() < indent {
			return candidate, true
		}
	}
	return Line{}, false
}

// Children returns the direct children of line in document order.
//
// The scan stops at the first following line indented no deeper than line.
// Within that run a line is a direct child when its indentation equals the
// smallest indentation seen so far, which leaves out grandchildren.
func Children(doc Document, line Line) []Line {
	indent := line.Indent()
	minIndent := -1

	var children []Line
	for i := line.Index + 1; i < doc.LineCount(); i++ {
		candidate := LineAt(doc, i)
		ci := candidate.Indent()
		if ci <= indent {
			break
		}
		if minIndent < 0 || ci < minIndent {
			minIndent = ci
		}
		if ci == minIndent {
			children = append(children, candidate)
		}
	}
	return children
}

// Ancestors returns the chain of parents of line, nearest first.
func Ancestors(doc Document, line Line) []Line {
	var chain []Line
	for {
		parent, ok := Parent(doc, line)
		if !ok {
			return chain
		}
		chain = append(chain, parent)
		line = parent
	}
}
