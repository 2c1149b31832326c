package models

import "strings"

type (
	// TrackingIssue carries pre-written release notes for another record.
	TrackingIssue struct {
		ForNumber int
		Raw       *IssueRecord
		Sections  map[string]*TrackingSection
		// Order holds section keys in declaration order.
		Order []string
	}

	// TrackingSection is one "# Name" block of a tracking issue.
	TrackingSection struct {
		Name  string
		Used  bool
		Lines []string
	}
)

// NewTrackingIssue builds an empty tracking issue for the given target.
func NewTrackingIssue(forNumber int, raw *IssueRecord) *TrackingIssue {
	return &TrackingIssue{
		ForNumber: forNumber,
		Raw:       raw,
		Sections:  make(map[string]*TrackingSection),
	}
}

func sectionKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Section returns the section with the given name, compared case-insensitively.
func (t *TrackingIssue) Section(name string) (*TrackingSection, bool) {
	s, ok := t.Sections[sectionKey(name)]
	return s, ok
}

// EnsureSection returns the named section, declaring it if needed.
func (t *TrackingIssue) EnsureSection(name string) *TrackingSection {
	key := sectionKey(name)
	if s, ok := t.Sections[key]; ok {
		return s
	}
	s := &TrackingSection{Name: strings.TrimSpace(name)}
	t.Sections[key] = s
	t.Order = append(t.Order, key)
	return s
}

// OrderedSections returns the sections in declaration order.
func (t *TrackingIssue) OrderedSections() []*TrackingSection {
	out := make([]*TrackingSection, 0, len(t.Order))
	for _, key := range t.Order {
		out = append(out, t.Sections[key])
	}
	return out
}

// IsClosed reports whether the underlying record is CLOSED.
func (t *TrackingIssue) IsClosed() bool {
	return t.Raw != nil && t.Raw.IsClosed()
}

// LineCount is the total number of content lines across all sections.
func (t *TrackingIssue) LineCount() int {
	n := 0
	for _, s := range t.Sections {
		n += len(s.Lines)
	}
	return n
}
