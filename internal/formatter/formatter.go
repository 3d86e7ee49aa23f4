package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mcncl/jdiff/internal/config"
	"github.com/mcncl/jdiff/internal/diff"
	"github.com/mcncl/jdiff/internal/models"
	"github.com/mcncl/jdiff/internal/report"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// maxValueWidth caps the number of runes printed for a single value.
const maxValueWidth = 80

const separator = "--------------------------"

// Markers are printed in front of labels when color is disabled.
type Markers struct {
	Removed   string
	Added     string
	Changed   string
	Unchanged string
}

// Options controls rendering.
type Options struct {
	Color      bool
	ShowValues bool
	Summary    bool
	Indent     string
	Markers    Markers
}

// OptionsFromConfig builds Options from cfg for output written to w.
func OptionsFromConfig(cfg *config.Config, w io.Writer) Options {
	return Options{
		Color:      ResolveColor(cfg.Output.Color, w),
		ShowValues: cfg.Output.ShowValues,
		Summary:    cfg.Output.Summary,
		Indent:     cfg.IndentUnit(),
		Markers: Markers{
			Removed:   cfg.Markers.Removed,
			Added:     cfg.Markers.Added,
			Changed:   cfg.Markers.Changed,
			Unchanged: cfg.Markers.Unchanged,
		},
	}
}

// ResolveColor decides whether output to w is colorized for the given mode.
// In auto mode color is used only for terminals and when NO_COLOR is unset.
func ResolveColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Formatter renders a report as human-readable text
type Formatter struct {
	opts    Options
	palette map[report.Status]*color.Color
	dmp     *diffmatchpatch.DiffMatchPatch
}

// NewFormatter creates a new Formatter instance
func NewFormatter(opts Options) *Formatter {
	palette := map[report.Status]*color.Color{
		report.StatusRemoved:   color.New(color.FgRed),
		report.StatusAdded:     color.New(color.FgGreen),
		report.StatusChanged:   color.New(color.FgBlue),
		report.StatusUnchanged: color.New(color.FgWhite),
	}
	// Override the package-level NoColor detection in both directions
	for _, c := range palette {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &Formatter{
		opts:    opts,
		palette: palette,
		dmp:     diffmatchpatch.New(),
	}
}

// Render writes the length comparison, a nested tree for every changed
// top-level member, and the numbered, position-ordered listing.
func (f *Formatter) Render(w io.Writer, rep *report.Report) error {
	p := &printer{w: w}

	p.printf("The First File is %s in Length (%d vs %d)\n",
		rep.Length.Ordering(), rep.Length.Left, rep.Length.Right)

	for _, e := range rep.Details {
		f.renderDetail(p, e)
	}

	for i, e := range rep.Entries {
		p.printf("%d | %s\n", i+1, f.label(e.Status, e.Label()))
	}

	if f.opts.Summary {
		s := rep.Summary()
		p.printf("Summary: %d added, %d removed, %d changed, %d unchanged\n",
			s.Added, s.Removed, s.Changed, s.Unchanged)
	}
	return p.err
}

// RenderIdentical writes the message used when both files have the same bytes.
func (f *Formatter) RenderIdentical(w io.Writer) error {
	_, err := fmt.Fprintln(w, "Files are the same!")
	return err
}

func (f *Formatter) renderDetail(p *printer, e report.Entry) {
	p.printf("Difference found in key: %s\n", f.palette[report.StatusChanged].Sprint(e.Label()))
	p.printf("--- Diff for key '%s' ---\n", e.Label())
	if f.opts.ShowValues && len(e.Records) == 0 {
		p.printf("%s\n", f.change(e.Left, e.Right))
	}
	for _, r := range e.Records {
		f.renderRecord(p, r)
	}
	p.printf("%s\n", separator)
}

func (f *Formatter) renderRecord(p *printer, r diff.Record) {
	status := StatusOf(r.Kind)
	line := strings.Repeat(f.opts.Indent, r.Depth) + "|__" + f.label(status, r.Segment().String())

	if f.opts.ShowValues {
		switch {
		case r.Kind == diff.AddedOnLeft:
			line += ": " + encode(r.Left)
		case r.Kind == diff.AddedOnRight:
			line += ": " + encode(r.Right)
		case r.Kind == diff.Changed && r.IsLeaf():
			line += ": " + f.change(r.Left, r.Right)
		}
	}
	p.printf("%s\n", line)
}

func (f *Formatter) label(status report.Status, text string) string {
	if f.opts.Color {
		return f.palette[status].Sprint(text)
	}
	return f.marker(status) + text
}

func (f *Formatter) marker(status report.Status) string {
	switch status {
	case report.StatusRemoved:
		return f.opts.Markers.Removed
	case report.StatusAdded:
		return f.opts.Markers.Added
	case report.StatusChanged:
		return f.opts.Markers.Changed
	default:
		return f.opts.Markers.Unchanged
	}
}

// change describes a leaf change. Two strings get a character-level diff;
// anything else prints both encoded values.
func (f *Formatter) change(a, b models.JSONValue) string {
	sa, aIsString := a.(string)
	sb, bIsString := b.(string)
	if !aIsString || !bIsString {
		return encode(a) + " -> " + encode(b)
	}

	diffs := f.dmp.DiffMain(sa, sb, false)
	diffs = f.dmp.DiffCleanupSemantic(diffs)
	if f.opts.Color {
		return `"` + f.dmp.DiffPrettyText(diffs) + `"`
	}

	var out strings.Builder
	out.WriteByte('"')
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			out.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			out.WriteString("{+" + d.Text + "+}")
		default:
			out.WriteString(d.Text)
		}
	}
	out.WriteByte('"')
	return out.String()
}

// StatusOf maps a nested record kind to the status used for styling.
func StatusOf(kind diff.Kind) report.Status {
	switch kind {
	case diff.AddedOnLeft:
		return report.StatusRemoved
	case diff.AddedOnRight:
		return report.StatusAdded
	case diff.Changed:
		return report.StatusChanged
	default:
		return report.StatusUnchanged
	}
}

// encode renders v as compact JSON, truncated to maxValueWidth runes.
func encode(v models.JSONValue) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	s := strings.TrimSuffix(buf.String(), "\n")
	if utf8.RuneCountInString(s) <= maxValueWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxValueWidth-3]) + "..."
}

// printer remembers the first write error so rendering code can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
