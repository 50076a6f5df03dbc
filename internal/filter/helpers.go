package filter

import "strings"

// hasAncestor reports whether any element of path equals name exactly,
// per §4.6's "if an ancestor is named X" wording.
func hasAncestor(path []string, name string) bool {
	for _, p := range path {
		if p == name {
			return true
		}
	}
	return false
}

// containsFold reports whether any of leaf name or ancestor path names
// contains substr, case-insensitively — the "leaf or ancestor contains
// substring" test shared by ComplexTrackFilter and TransitionTrackFilter.
func containsFold(path []string, name, substr string) bool {
	substr = strings.ToLower(substr)
	if strings.Contains(strings.ToLower(name), substr) {
		return true
	}
	for _, p := range path {
		if strings.Contains(strings.ToLower(p), substr) {
			return true
		}
	}
	return false
}

// bracketAnnotation extracts the tokens from a "[ a / b ]"-shaped
// annotation (§4.6's TransitionTrackFilter), trimmed, empty tokens
// dropped. ok is false when no bracket pair is found.
func bracketAnnotation(s string) (tokens []string, ok bool) {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return nil, false
	}
	rest := s[start+1:]
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return nil, false
	}
	inner := rest[:end]
	for _, tok := range strings.Split(inner, "/") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens, len(tokens) > 0
}
