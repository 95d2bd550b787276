package core

import "strings"

// Substitution replaces a single disallowed character.
// An empty Replacement strips the character.
type Substitution struct {
	Char        rune
	Replacement string
}

// DenyList is an ordered substitution table.
type DenyList []Substitution

// DefaultDenyList returns the characters that could carry markup or script
// into a published page.
func DefaultDenyList() DenyList {
	return DenyList{
		{'<', "&lt;"},
		{'>', "&gt;"},
		{'{', ""},
		{'}', ""},
		{'(', ""},
		{')', ""},
		{';', ""},
	}
}

// Chars returns the disallowed characters in table order.
func (d DenyList) Chars() []string {
	out := make([]string, 0, len(d))
	for _, s := range d {
		out = append(out, string(s.Char))
	}
	return out
}

// Translate applies the table once to s. Replacements are not scanned again.
func (d DenyList) Translate(s string) string {
	if !d.Contains(s) {
		return s
	}
	return d.replacer().Replace(s)
}

// Contains reports whether s holds at least one disallowed character.
func (d DenyList) Contains(s string) bool {
	return strings.IndexFunc(s, d.denies) >= 0
}

func (d DenyList) denies(r rune) bool {
	for _, s := range d {
		if s.Char == r {
			return true
		}
	}
	return false
}

// replacer builds a single-pass replacer; when a character appears twice the
// first entry wins.
func (d DenyList) replacer() *strings.Replacer {
	seen := make(map[rune]bool, len(d))
	pairs := make([]string, 0, len(d)*2)
	for _, s := range d {
		if seen[s.Char] {
			continue
		}
		seen[s.Char] = true
		pairs = append(pairs, string(s.Char), s.Replacement)
	}
	return strings.NewReplacer(pairs...)
}
