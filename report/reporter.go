package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/pkgaudit/pkgaudit/plan"
)

// StrReporter writes one plain-text line per result, preceded by a single
// blank line the first time a result is seen and followed by a trailing
// blank line on Finish — mirroring the original StrReporter's "only add
// the separators if we actually reported something" behavior.
type StrReporter struct {
	out         io.Writer
	firstReport bool
}

// NewStrReporter wraps out. out is never closed by the reporter.
func NewStrReporter(out io.Writer) *StrReporter {
	return &StrReporter{out: out, firstReport: true}
}

func (r *StrReporter) Start() error { return nil }

func (r *StrReporter) AddReport(result plan.Result) error {
	if r.firstReport {
		fmt.Fprintln(r.out)
		r.firstReport = false
	}
	_, err := fmt.Fprintln(r.out, result.ToStr())
	return err
}

func (r *StrReporter) Finish() error {
	if !r.firstReport {
		_, err := fmt.Fprintln(r.out)
		return err
	}
	return nil
}

// FancyReporter groups consecutive results by "category/package" (via
// plan.Grouped, when a Result implements it) under a bold header, and
// colorizes the result's Go type name the way kanso's CLI colorizes
// diagnostic severities.
type FancyReporter struct {
	out    io.Writer
	key    string
	hasKey bool

	bold   func(a ...any) string
	yellow func(a ...any) string
}

// NewFancyReporter wraps out.
func NewFancyReporter(out io.Writer) *FancyReporter {
	return &FancyReporter{
		out:    out,
		bold:   color.New(color.Bold).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
	}
}

func (r *FancyReporter) Start() error { return nil }

func (r *FancyReporter) AddReport(result plan.Result) error {
	key := "unknown"
	if grouped, ok := result.(plan.Grouped); ok {
		key = grouped.Category() + "/" + grouped.Package()
	}
	if !r.hasKey || key != r.key {
		if r.hasKey {
			fmt.Fprintln(r.out)
		}
		fmt.Fprintln(r.out, r.bold(padRight(key, 24)))
		r.key = key
		r.hasKey = true
	}
	kind := fmt.Sprintf("%T", result)
	_, err := fmt.Fprintf(r.out, "  %s: %s\n", r.yellow(kind), result.ToStr())
	return err
}

func (r *FancyReporter) Finish() error { return nil }

// padRight pads s with spaces to at least width display columns,
// counting width the way go-runewidth does so CJK package names don't
// throw off column alignment the way len(s) would.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// XmlReporter wraps every result in a "<checks run=...>...</checks>"
// envelope. RunID, if set, is stamped on the opening tag for log
// correlation with plan.Options.RunID.
type XmlReporter struct {
	out   io.Writer
	runID string
}

// NewXmlReporter wraps out, tagging the envelope with runID (may be empty).
func NewXmlReporter(out io.Writer, runID string) *XmlReporter {
	return &XmlReporter{out: out, runID: runID}
}

func (r *XmlReporter) Start() error {
	if r.runID != "" {
		_, err := fmt.Fprintf(r.out, "<checks run=%q>\n", r.runID)
		return err
	}
	_, err := fmt.Fprintln(r.out, "<checks>")
	return err
}

func (r *XmlReporter) AddReport(result plan.Result) error {
	_, err := fmt.Fprintln(r.out, result.ToXML())
	return err
}

func (r *XmlReporter) Finish() error {
	_, err := fmt.Fprintln(r.out, "</checks>")
	return err
}

// MultiplexReporter fans every call out to two or more child reporters,
// in order, stopping at the first error.
type MultiplexReporter struct {
	reporters []plan.Reporter
}

// NewMultiplexReporter returns ErrTooFewReporters if fewer than two
// reporters are supplied.
func NewMultiplexReporter(reporters ...plan.Reporter) (*MultiplexReporter, error) {
	if len(reporters) < 2 {
		return nil, ErrTooFewReporters
	}
	return &MultiplexReporter{reporters: reporters}, nil
}

func (m *MultiplexReporter) Start() error {
	for _, r := range m.reporters {
		if err := r.Start(); err != nil {
			return fmt.Errorf("report: starting child reporter: %w", err)
		}
	}
	return nil
}

func (m *MultiplexReporter) AddReport(result plan.Result) error {
	for _, r := range m.reporters {
		if err := r.AddReport(result); err != nil {
			return fmt.Errorf("report: adding report to child reporter: %w", err)
		}
	}
	return nil
}

func (m *MultiplexReporter) Finish() error {
	for _, r := range m.reporters {
		if err := r.Finish(); err != nil {
			return fmt.Errorf("report: finishing child reporter: %w", err)
		}
	}
	return nil
}
