package event

import "strings"

// Topic is a hierarchical event name using dot notation.
type Topic string

// Wildcards accepted in subscription patterns.
const (
	// WildcardSingle matches exactly one segment.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more segments. Only valid as the
	// last segment.
	WildcardMulti = "**"

	// Separator separates topic segments.
	Separator = "."
)

// Topics published by the application.
const (
	TopicOutlineToggle  Topic = "outline.toggle"
	TopicOutlineSummary Topic = "outline.summary"
	TopicOutlineNewline Topic = "outline.newline"
	TopicOutlineExpand  Topic = "outline.expand"

	TopicDocumentSaved    Topic = "document.saved"
	TopicDocumentReloaded Topic = "document.reloaded"
)

func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split on the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// IsWildcard reports whether t contains a wildcard segment.
func (t Topic) IsWildcard() bool {
	for _, seg := range t.Segments() {
		if seg == WildcardSingle || seg == WildcardMulti {
			return true
		}
	}
	return false
}

// IsValid reports whether t is a well formed topic: not empty, no empty
// segments and no wildcards.
func (t Topic) IsValid() bool {
	if t == "" || t.IsWildcard() {
		return false
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return false
		}
	}
	return true
}

// IsValidPattern reports whether t can be used to subscribe. "**" may
// only appear as the last segment.
func (t Topic) IsValidPattern() bool {
	segs := t.Segments()
	if len(segs) == 0 {
		return false
	}
	for i, seg := range segs {
		if seg == "" {
			return false
		}
		if seg == WildcardMulti && i != len(segs)-1 {
			return false
		}
	}
	return true
}

// Matches reports whether topic matches the pattern t.
func (t Topic) Matches(topic Topic) bool {
	return matchSegments(t.Segments(), topic.Segments())
}

func matchSegments(pattern, topic []string) bool {
	for i, seg := range pattern {
		switch seg {
		case WildcardMulti:
			return true
		case WildcardSingle:
			if i >= len(topic) {
				return false
			}
		default:
			if i >= len(topic) || topic[i] != seg {
				return false
			}
		}
	}
	return len(pattern) == len(topic)
}
