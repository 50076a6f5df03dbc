package models

import "strings"

// ParseGenreTags splits a track's raw genre field on delimiter into the
// genre_tags set (§3). Tokens are trimmed; empty tokens are dropped.
func ParseGenreTags(rawGenre, delimiter string) map[string]struct{} {
	out := make(map[string]struct{})
	if rawGenre == "" {
		return out
	}
	if delimiter == "" {
		delimiter = "/"
	}
	for _, tok := range strings.Split(rawGenre, delimiter) {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out[tok] = struct{}{}
		}
	}
	return out
}

// ParseOtherTags extracts the other_tags set from a comment field of the
// form "... open tag1 / tag2 / ... close ...". Markers default to "/*" and
// "*/" (§3, §6). The substring between the markers is split on "/",
// trimmed, and empty tokens are dropped; a comment without a marker pair
// yields no other_tags.
func ParseOtherTags(comment, open, close string) map[string]struct{} {
	out := make(map[string]struct{})
	if open == "" {
		open = "/*"
	}
	if close == "" {
		close = "*/"
	}

	start := strings.Index(comment, open)
	if start < 0 {
		return out
	}
	rest := comment[start+len(open):]
	end := strings.Index(rest, close)
	if end < 0 {
		return out
	}
	inner := rest[:end]

	for _, tok := range strings.Split(inner, "/") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out[tok] = struct{}{}
		}
	}
	return out
}
