package verify

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

const divider = "============================================================"

// RenderOptions controls console rendering.
type RenderOptions struct {
	Color bool
}

type palette struct {
	pass, fail, info *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		pass: color.New(color.FgGreen, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
		info: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.pass, p.fail, p.info} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) verdict(ok bool, pass, fail string) string {
	if ok {
		return p.pass.Sprint(pass)
	}
	return p.fail.Sprint(fail)
}

// RenderLayer writes one layer's notes, checks and verdict.
func RenderLayer(w io.Writer, r LayerReport, opts RenderOptions) {
	p := newPalette(opts.Color)
	fmt.Fprintf(w, "\n%s\nLayer %d: %s\n%s\n", divider, r.Layer, r.Title, divider)
	for _, n := range r.Notes {
		fmt.Fprintf(w, "    %s %s\n", p.info.Sprint("[INFO]"), n)
	}
	for _, c := range r.Checks {
		line := c.Name
		if c.Detail != "" {
			line += ": " + c.Detail
		}
		fmt.Fprintf(w, "    %s %s\n", p.verdict(c.Passed, "[PASS]", "[FAIL]"), line)
	}
	if r.Err != nil {
		fmt.Fprintf(w, "    %s %v\n", p.fail.Sprint("[ERROR]"), r.Err)
	}
	passed, total := r.Score()
	fmt.Fprintf(w, "\nPassed: %d/%d\n", passed, total)
	fmt.Fprintf(w, "\n%s Layer %d\n", p.verdict(r.Passed, "[PASSED]", "[FAILED]"), r.Layer)
}

// RenderSummary writes a table of layer outcomes and the overall verdict.
func RenderSummary(w io.Writer, rep Report, opts RenderOptions) {
	p := newPalette(opts.Color)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Layer", "Verification", "Checks", "Result"})
	for _, l := range rep.Layers {
		passed, total := l.Score()
		t.AppendRow(table.Row{l.Layer, l.Title, fmt.Sprintf("%d/%d", passed, total), p.verdict(l.Passed, "PASSED", "FAILED")})
	}
	fmt.Fprintf(w, "\n%s\nSummary:\n", divider)
	t.Render()
	if rep.Passed() {
		fmt.Fprintf(w, "\n%s\n", p.pass.Sprint("All verifications PASSED!"))
		return
	}
	fmt.Fprintf(w, "\n%s\n", p.fail.Sprint("Some verifications FAILED!"))
}

// Render writes every layer followed by a summary when more than one layer
// ran.
func Render(w io.Writer, rep Report, opts RenderOptions) {
	for _, l := range rep.Layers {
		RenderLayer(w, l, opts)
	}
	if len(rep.Layers) > 1 {
		RenderSummary(w, rep, opts)
	}
}

// String renders the report without colour.
func (r Report) String() string {
	var sb strings.Builder
	Render(&sb, r, RenderOptions{})
	return sb.String()
}
