package core

import (
	"path"
	"sort"
)

// Vocabulary is the set of metadata keys used across a catalog.
type Vocabulary map[string]struct{}

// BuildVocabulary returns the union of the key sets of every record.
func BuildVocabulary(catalog Catalog) Vocabulary {
	v := make(Vocabulary)
	for _, dir := range catalog.Dirs() {
		rec, _ := catalog.Get(dir)
		for k := range rec {
			v[k] = struct{}{}
		}
	}
	return v
}

// Has reports whether key is part of the vocabulary.
func (v Vocabulary) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// Len returns the number of distinct keys.
func (v Vocabulary) Len() int {
	return len(v)
}

// Sorted returns the keys in alphabetical order.
func (v Vocabulary) Sorted() []string {
	out := make([]string, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Difference returns the vocabulary keys absent from rec, sorted.
func (v Vocabulary) Difference(rec Record) []string {
	var out []string
	for k := range v {
		if _, ok := rec[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Audit flags records whose key count differs from the vocabulary size.
//
// This compares counts, not sets: a record holding as many keys as the
// vocabulary is never flagged. Since the vocabulary is the union of all
// records, such a record can only have the same keys, unless the caller
// passes a vocabulary built from another catalog.
func Audit(catalog Catalog, vocab Vocabulary, filename string) []Drift {
	var drift []Drift
	for _, dir := range catalog.Dirs() {
		rec, _ := catalog.Get(dir)
		if len(rec) == vocab.Len() {
			continue
		}
		drift = append(drift, Drift{
			Dir:     dir,
			Path:    path.Join(dir, filename),
			Missing: vocab.Difference(rec),
		})
	}
	return drift
}
