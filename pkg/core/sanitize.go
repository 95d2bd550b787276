package core

import (
	"path"
	"sort"
)

// WarningSet collects metadata file paths whose record was altered by the
// Sanitizer.
type WarningSet map[string]struct{}

// Add marks p as sanitized.
func (w WarningSet) Add(p string) {
	w[p] = struct{}{}
}

// Has reports whether p was sanitized.
func (w WarningSet) Has(p string) bool {
	_, ok := w[p]
	return ok
}

// Len returns the number of sanitized files.
func (w WarningSet) Len() int {
	return len(w)
}

// Sorted returns the paths in alphabetical order.
func (w WarningSet) Sorted() []string {
	out := make([]string, 0, len(w))
	for p := range w {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Sanitizer strips disallowed characters out of untrusted records.
type Sanitizer struct {
	deny     DenyList
	filename string
}

// NewSanitizer creates a Sanitizer. filename is used to build the paths
// reported in the WarningSet.
func NewSanitizer(deny DenyList, filename string) *Sanitizer {
	return &Sanitizer{deny: deny, filename: filename}
}

// Sanitize returns a copy of catalog where every key and every top-level
// string value has been translated through the deny list, together with the
// files that changed.
//
// Keys are renamed in document order from a snapshot, and a renamed key
// overwrites any key already holding its clean name. Nested maps and
// sequences are left as they are.
func (s *Sanitizer) Sanitize(catalog Catalog) (Catalog, WarningSet) {
	out := catalog.Clone()
	warnings := make(WarningSet)

	for _, dir := range out.Dirs() {
		rec, _ := out.Get(dir)
		file := path.Join(dir, s.filename)

		for _, key := range out.Fields(dir) {
			clean := s.deny.Translate(key)
			if clean == key {
				continue
			}
			value := rec[key]
			delete(rec, key)
			rec[clean] = value
			warnings.Add(file)
		}

		for key, value := range rec {
			str, ok := value.(string)
			if !ok {
				continue
			}
			if clean := s.deny.Translate(str); clean != str {
				rec[key] = clean
				warnings.Add(file)
			}
		}
	}

	return out, warnings
}
