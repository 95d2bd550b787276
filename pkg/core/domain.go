// Package core holds the domain of the cataloger: records parsed from metadata
// files, the catalog that groups them, and the sanitizing and auditing rules
// applied before a report is rendered.
package core

import (
	"sort"
	"time"
)

// Record represents the flexible key-value pairs of one metadata file.
// Values are whatever the decoder produced: string, int, float64, bool,
// time.Time, map[string]any, []any or nil.
type Record map[string]any

// Keys returns the record keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Catalog maps a directory (relative to the scanned root) to its Record.
// It remembers insertion order, which is the order the report uses, and the
// order each record's keys were written in.
type Catalog struct {
	order   []string
	records map[string]Record
	fields  map[string][]string
}

// NewCatalog creates an empty catalog.
func NewCatalog() Catalog {
	return Catalog{records: make(map[string]Record), fields: make(map[string][]string)}
}

// Put stores the record for dir, replacing any previous one. keys is the
// document order of the record's keys, if known.
func (c *Catalog) Put(dir string, r Record, keys ...string) {
	if c.records == nil {
		c.records = make(map[string]Record)
	}
	if c.fields == nil {
		c.fields = make(map[string][]string)
	}
	if _, ok := c.records[dir]; !ok {
		c.order = append(c.order, dir)
	}
	if r == nil {
		r = Record{}
	}
	c.records[dir] = r
	c.fields[dir] = append([]string(nil), keys...)
}

// Fields returns the keys of dir's record in document order. Keys without a
// known position follow in sorted order.
func (c Catalog) Fields(dir string) []string {
	rec := c.records[dir]
	out := make([]string, 0, len(rec))
	seen := make(map[string]bool, len(rec))
	for _, k := range c.fields[dir] {
		if _, ok := rec[k]; ok && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, k := range rec.Keys() {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}

// Get returns the record for dir.
func (c Catalog) Get(dir string) (Record, bool) {
	r, ok := c.records[dir]
	return r, ok
}

// Dirs returns the directories in insertion order.
func (c Catalog) Dirs() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of records.
func (c Catalog) Len() int {
	return len(c.order)
}

// Clone copies the catalog and every record in it (one level deep).
func (c Catalog) Clone() Catalog {
	out := Catalog{
		order:   append([]string(nil), c.order...),
		records: make(map[string]Record, len(c.records)),
		fields:  make(map[string][]string, len(c.fields)),
	}
	for dir, r := range c.records {
		out.records[dir] = r.Clone()
	}
	for dir, keys := range c.fields {
		out.fields[dir] = append([]string(nil), keys...)
	}
	return out
}

// Listing is the result of scanning a root directory.
// Found and Missing are sorted and never share an entry.
type Listing struct {
	Root    string
	Found   []string
	Missing []string
}

// ParseFailure records a metadata file that could not be decoded.
// Err is meant for logs; it must never be rendered into a report.
type ParseFailure struct {
	Dir  string
	Path string
	Err  error
}

// Drift describes a record whose key set differs from the vocabulary.
type Drift struct {
	Dir     string
	Path    string
	Missing []string
}

// Report is everything a Renderer needs to produce the document.
type Report struct {
	Title       string
	Generator   string
	Version     string
	GeneratedAt time.Time
	Filename    string

	Listing  Listing
	Failures []ParseFailure
	Catalog  Catalog
	Columns  []string

	Vocabulary Vocabulary
	Drift      []Drift
	Warnings   WarningSet
	DenyList   DenyList
}

// Empty reports whether no metadata file was found under the root.
func (r Report) Empty() bool {
	return len(r.Listing.Found) == 0
}
