package relnotes

import (
	"fmt"
	"strings"

	"github.com/thomas-vilte/relnotes/internal/models"
)

// Canonical section names of the release notes document.
const (
	SectionLanguage        = "Language"
	SectionCompiler        = "Compiler"
	SectionLibrary         = "Library"
	SectionCompatibility   = "Compatibility Notes"
	SectionInternalChanges = "Internal Changes"
	SectionOther           = "Other"
)

// SectionNames lists the known sections in document order.
var SectionNames = []string{
	SectionLanguage,
	SectionCompiler,
	SectionLibrary,
	SectionCompatibility,
	SectionInternalChanges,
	SectionOther,
}

// Rule routes a record without a tracking issue to a section.
type Rule struct {
	Labels  []string
	Section string
}

// DefaultRules is evaluated in order; the first rule whose labels match wins and
// records matching none land in Other.
var DefaultRules = []Rule{
	{Labels: []string{"C-future-compatibility"}, Section: SectionCompatibility},
	{Labels: []string{"T-libs", "T-libs-api"}, Section: SectionLibrary},
	{Labels: []string{"T-lang"}, Section: SectionLanguage},
	{Labels: []string{"T-compiler"}, Section: SectionCompiler},
}

// Route returns the section a record falls into under rules. A rule naming an
// unknown section routes to Other.
func Route(record models.IssueRecord, rules []Rule) string {
	for _, rule := range rules {
		if !HasTags(record, rule.Labels...) {
			continue
		}
		if name, ok := canonicalSection(rule.Section); ok {
			return name
		}
		return SectionOther
	}
	return SectionOther
}

// canonicalSection maps a tracking-issue header to a known section name.
func canonicalSection(name string) (string, bool) {
	for _, s := range SectionNames {
		if strings.EqualFold(s, strings.TrimSpace(name)) {
			return s, true
		}
	}
	return "", false
}

// Sections accumulates the content of one assembly pass.
type Sections struct {
	buckets map[string]*strings.Builder
}

func NewSections() *Sections {
	s := &Sections{buckets: make(map[string]*strings.Builder, len(SectionNames))}
	for _, name := range SectionNames {
		s.buckets[name] = &strings.Builder{}
	}
	return s
}

func (s *Sections) appendLine(section, line string) {
	b := s.buckets[section]
	b.WriteString(line)
	b.WriteString("\n")
}

// Get returns the accumulated content of a section, empty for unknown names.
func (s *Sections) Get(section string) string {
	if b, ok := s.buckets[section]; ok {
		return b.String()
	}
	return ""
}

// Map returns every section's content keyed by canonical name.
func (s *Sections) Map() map[string]string {
	out := make(map[string]string, len(s.buckets))
	for name, b := range s.buckets {
		out[name] = b.String()
	}
	return out
}

// LineItem formats a record as a markdown link list item.
func LineItem(record models.IssueRecord) string {
	return fmt.Sprintf("- [%s](%s/)", record.Title, record.URL)
}

// Assembler distributes records over sections.
type Assembler struct {
	rules    []Rule
	tracking map[int]*models.TrackingIssue
}

func NewAssembler(tracking map[int]*models.TrackingIssue, rules []Rule) *Assembler {
	if rules == nil {
		rules = DefaultRules
	}
	return &Assembler{rules: rules, tracking: tracking}
}

// Assemble runs one pass over records in order and returns fresh sections.
// Records with an open tracking issue take its content; records with a closed one,
// and tracking issues themselves, contribute nothing.
func (a *Assembler) Assemble(records []models.IssueRecord) *Sections {
	out := NewSections()
	for _, record := range records {
		if IsTrackingTitle(record.Title) {
			continue
		}

		if tracking, ok := a.tracking[record.Number]; ok {
			if tracking.IsClosed() {
				continue
			}
			for _, section := range tracking.OrderedSections() {
				name, known := canonicalSection(section.Name)
				if !known {
					continue
				}
				section.Used = true
				for _, line := range section.Lines {
					out.appendLine(name, line)
				}
			}
			continue
		}

		out.appendLine(Route(record, a.rules), LineItem(record))
	}
	return out
}

// Assemble is a shortcut for NewAssembler(tracking, DefaultRules).Assemble(records).
func Assemble(records []models.IssueRecord, tracking map[int]*models.TrackingIssue) *Sections {
	return NewAssembler(tracking, DefaultRules).Assemble(records)
}
