// Package diagnostics collects non-fatal findings of a release-notes run.
//
// Findings are reported to an injected Reporter instead of a process-wide stream,
// so callers decide whether they are logged, collected or written to a report file.
package diagnostics

import (
	"context"
	"sync"

	"github.com/thomas-vilte/relnotes/internal/logger"
)

// Kind classifies a diagnostic.
type Kind string

const (
	KindMissingMarkdownBlock   Kind = "missing_markdown_block"
	KindUnusedSection          Kind = "unused_section"
	KindDuplicateTrackingIssue Kind = "duplicate_tracking_issue"
)

// Diagnostic is one recoverable finding.
type Diagnostic struct {
	Kind    Kind   `yaml:"kind"`
	Message string `yaml:"message"`
	Number  int    `yaml:"number,omitempty"`
	Title   string `yaml:"title,omitempty"`
	URL     string `yaml:"url,omitempty"`
	Section string `yaml:"section,omitempty"`
	// Target describes the record a tracking issue was meant for.
	Target string `yaml:"target,omitempty"`
	Body   string `yaml:"body,omitempty"`
}

// Reporter receives diagnostics.
type Reporter interface {
	Report(d Diagnostic)
}

// Collector keeps every reported diagnostic in order.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Diagnostics returns a copy of what was reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns how many diagnostics of the given kind were reported.
func (c *Collector) Count(kind Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.items {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// LogReporter writes diagnostics as warnings through the context logger.
type LogReporter struct {
	ctx context.Context
}

func NewLogReporter(ctx context.Context) *LogReporter {
	return &LogReporter{ctx: ctx}
}

func (r *LogReporter) Report(d Diagnostic) {
	args := []any{"kind", string(d.Kind)}
	if d.Number != 0 {
		args = append(args, "number", d.Number)
	}
	if d.Title != "" {
		args = append(args, "title", d.Title)
	}
	if d.URL != "" {
		args = append(args, "url", d.URL)
	}
	if d.Section != "" {
		args = append(args, "section", d.Section)
	}
	if d.Target != "" {
		args = append(args, "target", d.Target)
	}
	if d.Body != "" {
		args = append(args, "body", d.Body)
	}
	logger.Warn(r.ctx, d.Message, args...)
}

type multi []Reporter

func (m multi) Report(d Diagnostic) {
	for _, r := range m {
		r.Report(d)
	}
}

// Multi fans a diagnostic out to every reporter.
func Multi(reporters ...Reporter) Reporter {
	return multi(reporters)
}

// Discard drops every diagnostic.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}
