package markdown

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/adrg/frontmatter"
	"github.com/aretw0/ddc/pkg/core"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// HTMLRenderer renders the Markdown report and converts it to a standalone
// HTML page.
type HTMLRenderer struct {
	markdown *Renderer
	engine   goldmark.Markdown
}

// NewHTMLRenderer creates an HTML renderer with GitHub flavoured tables.
//
// Raw HTML is passed through so the parse-failure warnings keep their
// styling. Record content has been through the deny list and the Renderer
// escapes directory names and paths.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		markdown: NewRenderer(),
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(htmlrenderer.WithUnsafe()),
		),
	}
}

// Render writes the report as an HTML document.
func (h *HTMLRenderer) Render(w io.Writer, r core.Report) error {
	var src bytes.Buffer
	if err := h.markdown.Render(&src, r); err != nil {
		return err
	}

	var meta pageMeta
	body, err := frontmatter.Parse(&src, &meta)
	if err != nil {
		return fmt.Errorf("parse report front matter: %w", err)
	}

	var out bytes.Buffer
	if err := h.engine.Convert(body, &out); err != nil {
		return fmt.Errorf("markdown convert: %w", err)
	}

	_, err = fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="generator" content="%s">
<meta name="date" content="%s">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`, html.EscapeString(meta.Creator), html.EscapeString(meta.Date), html.EscapeString(meta.PageTitle), out.String())
	return err
}

var _ core.Renderer = (*HTMLRenderer)(nil)
