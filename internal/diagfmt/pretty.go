package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"quantgen/internal/diag"
	"quantgen/internal/source"
)

type palette struct {
	severity map[diag.Severity]*color.Color
	gutter   *color.Color
	note     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		severity: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		gutter: color.New(color.FgBlue),
		note:   color.New(color.FgGreen),
	}
	for _, c := range append([]*color.Color{p.gutter, p.note}, p.severity[diag.SevError], p.severity[diag.SevWarning], p.severity[diag.SevInfo]) {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty writes the diagnostics of bag in the order they were reported:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with the span underlined ^~~~ and, when enabled,
// the notes in the same format.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		sev := p.severity[d.Severity]
		if sev == nil {
			sev = p.severity[diag.SevInfo]
		}
		fmt.Fprintf(w, "%s: %s: %s\n", location(fs, d.Primary, opts.PathMode),
			sev.Sprintf("%s %s", d.Severity, d.Code.ID()), d.Message)
		writeSnippet(w, fs, d.Primary, opts, p, sev)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(fs, n.Span, opts.PathMode), n.Msg)
			}
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown\n", dropped)
	}
}

func location(fs *source.FileSet, span source.Span, mode PathMode) string {
	if !known(fs, span) {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs, span.File, mode), start.Line, start.Col)
}

func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts, p palette, mark *color.Color) {
	if !known(fs, span) {
		return
	}
	f := fs.Get(span.File)
	if len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)

	first := start.Line
	if ctx := uint32(max(opts.Context, 0)); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	last := start.Line + uint32(max(opts.Context, 0))
	if n := uint32(len(f.LineIdx)) + 1; last > n {
		last = n
	}
	gutterWidth := len(fmt.Sprint(last))

	for line := first; line <= last; line++ {
		text := expandTabs(f.GetLine(line))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, line), text)
		if line != start.Line {
			continue
		}

		raw := f.GetLine(line)
		from := min(int(start.Col)-1, len(raw))
		to := len(raw)
		if end.Line == start.Line {
			to = min(int(end.Col)-1, len(raw))
		}
		pad := runewidth.StringWidth(expandTabs(raw[:from]))
		width := max(runewidth.StringWidth(expandTabs(raw[from:max(from, to)])), 1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""),
			strings.Repeat(" ", pad), mark.Sprint("^"+strings.Repeat("~", width-1)))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
