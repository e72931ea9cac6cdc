// Package display renders results for the terminal: the original text, the
// translation, the audio file and any warnings.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/skratchdot/open-golang/open"

	"codeberg.org/snonux/vaani/internal/history"
	"codeberg.org/snonux/vaani/internal/lexicon"
	"codeberg.org/snonux/vaani/internal/processor"
)

// Printer writes user-facing output
type Printer struct {
	out    io.Writer
	errOut io.Writer

	heading *color.Color
	label   *color.Color
	success *color.Color
	warning *color.Color
	failure *color.Color

	opener func(string) error
	now    func() time.Time
}

// New creates a printer writing results to out and problems to errOut
func New(out, errOut io.Writer) *Printer {
	return &Printer{
		out:     out,
		errOut:  errOut,
		heading: color.New(color.Bold),
		label:   color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
		opener:  open.Start,
		now:     time.Now,
	}
}

// Result shows one translation
func (p *Printer) Result(r *processor.Result) {
	p.heading.Fprintf(p.out, "%s", r.Direction.Label())
	fmt.Fprintf(p.out, " (%s)\n", r.Engine)
	p.field("Original", r.Original)
	p.field("Translated", r.Translated)
	if r.HasAudio() {
		p.field("Audio", p.fileWithSize(r.AudioFile))
	}
	if r.PhoneticFile != "" {
		p.field("Phonetic", r.PhoneticFile)
	}
	for _, w := range r.Warnings {
		p.Warn("%s", w)
	}
}

func (p *Printer) field(name, value string) {
	p.label.Fprintf(p.out, "  %-11s", name+":")
	fmt.Fprintf(p.out, " %s\n", value)
}

func (p *Printer) fileWithSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return path
	}
	return fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(info.Size())))
}

// Prompt asks for input after an empty submission
func (p *Printer) Prompt(err error) {
	p.warning.Fprintf(p.errOut, "%s\n", capitalize(err.Error()))
}

// Warn prints a yellow warning to the error stream
func (p *Printer) Warn(format string, args ...any) {
	p.warning.Fprintf(p.errOut, "Warning: "+format+"\n", args...)
}

// Error prints a red error to the error stream
func (p *Printer) Error(err error) {
	p.failure.Fprintf(p.errOut, "Error: %v\n", err)
}

// Success prints a green confirmation
func (p *Printer) Success(format string, args ...any) {
	p.success.Fprintf(p.out, format+"\n", args...)
}

// Play opens the audio file with the system's default player
func (p *Printer) Play(path string) error {
	if err := p.opener(path); err != nil {
		return fmt.Errorf("failed to play %s: %w", path, err)
	}
	return nil
}

// BatchSummary shows every batch line followed by the totals
func (p *Printer) BatchSummary(s *processor.BatchSummary) {
	for _, it := range s.Items {
		if it.Err != nil {
			p.failure.Fprintf(p.out, "  ✗ line %d: %s", it.Item.Line, it.Item.Text)
			fmt.Fprintf(p.out, " (%v)\n", it.Err)
			continue
		}
		mark := p.success.Sprint("✓")
		if len(it.Result.Warnings) > 0 {
			mark = p.warning.Sprint("!")
		}
		fmt.Fprintf(p.out, "  %s %s → %s\n", mark, it.Result.Original, it.Result.Translated)
	}

	p.heading.Fprintln(p.out, "\n=== Batch Summary ===")
	fmt.Fprintf(p.out, "Total lines: %d\n", len(s.Items))
	fmt.Fprintf(p.out, "Translated:  %d\n", s.Processed())
	fmt.Fprintf(p.out, "With audio:  %d\n", s.WithAudio())
	if failed := s.Failed(); failed > 0 {
		p.failure.Fprintf(p.out, "Failed:      %d\n", failed)
	}
	fmt.Fprintf(p.out, "Elapsed:     %s\n", s.ElapsedString())
}

// History lists records newest first as a table
func (p *Printer) History(records []history.Record) {
	if len(records) == 0 {
		fmt.Fprintln(p.out, "No translations recorded yet.")
		return
	}
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tDIRECTION\tSOURCE\tTARGET\tENGINE\tAUDIO")
	for _, rec := range records {
		audio := "-"
		if rec.AudioFile != "" {
			audio = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID, humanize.RelTime(rec.CreatedAt, p.now(), "ago", "from now"),
			rec.Direction, rec.Source, rec.Target, rec.Engine, audio)
	}
	tw.Flush()
}

// Dictionary lists the entries of d
func (p *Printer) Dictionary(d *lexicon.Dictionary) {
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HINDI\tSANSKRIT")
	for _, e := range d.Entries() {
		fmt.Fprintf(tw, "%s\t%s\n", e.Hindi, e.Sanskrit)
	}
	tw.Flush()
	fmt.Fprintf(p.out, "%s entries\n", humanize.Comma(int64(d.Len())))
}

// Lookup shows the dictionary answer for one word, or suggestions
func (p *Printer) Lookup(word string, dir lexicon.Direction, translation string, found bool, suggestions []string) {
	if found {
		fmt.Fprintf(p.out, "%s → %s (%s)\n", word, p.success.Sprint(translation), dir.Label())
		return
	}
	p.warning.Fprintf(p.out, "%s is not in the %s dictionary\n", word, dir.Label())
	if len(suggestions) > 0 {
		fmt.Fprintf(p.out, "Did you mean: %s\n", strings.Join(suggestions, ", "))
	}
}

// CacheStats shows the size of the speech cache
func (p *Printer) CacheStats(dir string, files int, size int64) {
	fmt.Fprintf(p.out, "Speech cache: %s\n", dir)
	fmt.Fprintf(p.out, "  %s files, %s\n", humanize.Comma(int64(files)), humanize.Bytes(uint64(size)))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
