// Package markdown renders catalog reports as Markdown documents, ready to be
// published as-is or handed to a static site generator.
package markdown

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"reflect"
	"strings"

	"github.com/aretw0/ddc/pkg/core"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// TimeLayout formats the generation time, e.g. "Thu, 15 Oct 2026 at 09:30 AM".
const TimeLayout = "Mon, 02 Jan 2006 at 03:04 PM"

// DirectoryColumn is the fixed first column of the table.
const DirectoryColumn = "Directory"

// DefaultColumns are the metadata fields shown in the table.
var DefaultColumns = []string{"Title", "Description", "Data Manager"}

// Renderer writes a core.Report as Markdown.
type Renderer struct{}

// NewRenderer creates a Markdown renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the whole report to w.
func (m *Renderer) Render(w io.Writer, r core.Report) error {
	bw := bufio.NewWriter(w)
	p := &printer{w: bw, r: r}

	p.header()
	p.missing()
	if p.summary() {
		p.failures()
		p.table()
		p.vocabulary()
		p.checks()
		p.footer()
	}

	if p.err != nil {
		return p.err
	}
	return bw.Flush()
}

// printer keeps the first write error so sections stay readable.
type printer struct {
	w   *bufio.Writer
	r   core.Report
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) blank() {
	p.line("")
}

func (p *printer) filename() string {
	if p.r.Filename == "" {
		return "README.yaml"
	}
	return p.r.Filename
}

func (p *printer) timestamp() string {
	return p.r.GeneratedAt.Format(TimeLayout)
}

// pageMeta is the YAML front matter of the report.
type pageMeta struct {
	PageTitle string `yaml:"pagetitle"`
	Creator   string `yaml:"creator"`
	Date      string `yaml:"date"`
}

func (p *printer) header() {
	meta, err := yaml.Marshal(pageMeta{
		PageTitle: p.r.Title,
		Creator:   fmt.Sprintf("%s version %s", p.r.Generator, p.r.Version),
		Date:      p.timestamp(),
	})
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("marshal front matter: %w", err)
	}
	p.line("---")
	p.line("%s---", meta)
	p.line("# Directory %s", code(p.r.Listing.Root))
}

func (p *printer) missing() {
	if len(p.r.Listing.Missing) == 0 {
		return
	}
	p.blank()
	p.line("## Warnings")
	p.blank()
	p.line("The following subdirectories are missing a %s file:", p.filename())
	p.blank()
	for _, dir := range p.r.Listing.Missing {
		p.line(" - %s", html.EscapeString(dir))
	}
}

// summary reports whether the rest of the document follows.
func (p *printer) summary() bool {
	p.blank()
	p.line("## Summary")
	p.blank()
	p.line("Found %d `%s` files in the directories under %s.", len(p.r.Listing.Found), p.filename(), code(p.r.Listing.Root))
	if p.r.Empty() {
		p.line("Exiting.")
		return false
	}
	return true
}

// failures only names the file. Parser errors can echo file content and must
// not end up in a published page.
func (p *printer) failures() {
	for _, f := range p.r.Failures {
		p.blank()
		p.line(`<span style="color:red;" >`)
		p.line("Error in reading YAML file: %s <br>", html.EscapeString(f.Path))
		p.line("</span>")
	}
}

func (p *printer) table() {
	columns := append([]string{DirectoryColumn}, p.r.Columns...)

	p.blank()
	p.line("A summary of the metadata in these files follows.")
	p.blank()
	p.row(columns)

	rule := make([]string, len(columns))
	for i, col := range columns {
		rule[i] = strings.Repeat("-", max(3, runewidth.StringWidth(col)))
	}
	p.row(rule)

	for _, dir := range p.r.Catalog.Dirs() {
		rec, _ := p.r.Catalog.Get(dir)
		cells := make([]string, len(columns))
		cells[0] = cell(html.EscapeString(dir))
		for i, col := range p.r.Columns {
			cells[i+1] = cell(rec[col])
		}
		p.row(cells)
	}
}

func (p *printer) row(cells []string) {
	p.line("| %s |", strings.Join(cells, " | "))
}

func (p *printer) vocabulary() {
	keys := p.r.Vocabulary.Sorted()
	p.blank()
	p.line("## Metadata Information")
	p.blank()
	p.line("The following are all the %d metadata attributes found in the %s files at this level.", len(keys), p.filename())
	p.line("These should all be unique. If not edit and correct the %s files.", p.filename())
	p.blank()
	for _, k := range keys {
		p.line(" - %s", k)
	}
}

func (p *printer) checks() {
	titled := false
	title := func() {
		if !titled {
			p.blank()
			p.line("## Metadata Warnings")
			titled = true
		}
	}

	if len(p.r.Drift) > 0 {
		title()
		p.blank()
		p.line("The following %s files had different metadata to the list above ...", p.filename())
		p.blank()
		for _, d := range p.r.Drift {
			quoted := make([]string, len(d.Missing))
			for i, k := range d.Missing {
				quoted[i] = fmt.Sprintf("%q", k)
			}
			// Trailing spaces force a line break.
			p.line(" - %s    ", html.EscapeString(d.Path))
			p.line("    Possibly missing: ` %s `", strings.Join(quoted, ", "))
		}
	} else {
		p.blank()
		p.line("Checking each %s file against the metadata list above ... passed OK.    ", p.filename())
	}

	if p.r.Warnings.Len() > 0 {
		title()
		p.blank()
		p.line("The following %s files contained at least one of the disallowed characters:", p.filename())
		chars := p.r.DenyList.Chars()
		for i, c := range chars {
			chars[i] = "`" + c + "`"
		}
		p.line("%s", strings.Join(chars, " "))
		p.blank()
		for _, file := range p.r.Warnings.Sorted() {
			p.line(" - %s", html.EscapeString(file))
		}
	} else {
		p.blank()
		p.line("Checking each %s file for disallowed characters ... passed OK.", p.filename())
	}
}

func (p *printer) footer() {
	p.blank()
	p.line("Created by DDC version %s.     ", p.r.Version)
	p.line("This page was updated on %s", p.timestamp())
}

// code wraps s in a code span whose fence is longer than any backtick run
// inside s, so a path cannot close the span early.
func code(s string) string {
	run, longest := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	if longest == 0 {
		return "`" + s + "`"
	}
	fence := strings.Repeat("`", longest+1)
	return fence + " " + s + " " + fence
}

// cell renders a table value. Absent and falsy values are blank.
func cell(v any) string {
	if falsy(v) {
		return ""
	}
	s := fmt.Sprint(v)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.TrimSpace(s)
}

func falsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	}
	return false
}

var _ core.Renderer = (*Renderer)(nil)
