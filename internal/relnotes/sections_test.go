package relnotes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/relnotes/internal/models"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   string
	}{
		{"compatibility beats library", []string{"T-libs", "C-future-compatibility"}, SectionCompatibility},
		{"library beats language", []string{"T-lang", "T-libs-api"}, SectionLibrary},
		{"libs", []string{"T-libs"}, SectionLibrary},
		{"language beats compiler", []string{"T-compiler", "T-lang"}, SectionLanguage},
		{"compiler", []string{"T-compiler"}, SectionCompiler},
		{"unmatched", []string{"A-docs", "relnotes"}, SectionOther},
		{"no labels", nil, SectionOther},
		{"labels are case sensitive", []string{"t-lang"}, SectionOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Route(record(1, "x", tt.labels...), DefaultRules))
		})
	}
}

func TestRoute_CustomRules(t *testing.T) {
	rules := []Rule{
		{Labels: []string{"T-rustdoc"}, Section: "Rustdoc"},
		{Labels: []string{"T-infra"}, Section: "internal changes"},
	}

	assert.Equal(t, SectionOther, Route(record(1, "x", "T-rustdoc"), rules))
	assert.Equal(t, SectionInternalChanges, Route(record(2, "y", "T-infra"), rules))

	sections := NewAssembler(nil, rules).Assemble([]models.IssueRecord{
		record(1, "Document intra-doc links", "T-rustdoc"),
		record(2, "Bump CI images", "T-infra"),
	})
	assert.Equal(t, "- [Document intra-doc links](https://github.com/rust-lang/rust/issues/1/)\n", sections.Get(SectionOther))
	assert.Equal(t, "- [Bump CI images](https://github.com/rust-lang/rust/issues/2/)\n", sections.Get(SectionInternalChanges))
}

func TestLineItem(t *testing.T) {
	r := record(7, "Add `let` chains")
	assert.Equal(t, "- [Add `let` chains](https://github.com/rust-lang/rust/issues/7/)", LineItem(r))
}

func TestAssembler_Assemble(t *testing.T) {
	t.Run("should route a record without tracking issue by label", func(t *testing.T) {
		r := record(7, "Stabilize let chains", "T-lang")

		sections := Assemble([]models.IssueRecord{r}, nil)

		assert.Equal(t, "- [Stabilize let chains](https://github.com/rust-lang/rust/issues/7/)\n", sections.Get(SectionLanguage))
		for _, name := range SectionNames {
			if name != SectionLanguage {
				assert.Empty(t, sections.Get(name), name)
			}
		}
	})

	t.Run("should take the content of an open tracking issue", func(t *testing.T) {
		records := []models.IssueRecord{
			record(42, "Stabilize foo", "T-compiler"),
			trackingRecord(100, 42, models.StateOpen, markdownBlock("# Library", "- [bar](url/)")),
		}
		tracking, err := ParseTrackingIssues(records, nil)
		require.NoError(t, err)

		sections := Assemble(records, tracking)

		assert.Equal(t, "- [bar](url/)\n", sections.Get(SectionLibrary))
		assert.Empty(t, sections.Get(SectionCompiler))
		assert.Empty(t, sections.Get(SectionOther))

		section, ok := tracking[42].Section(SectionLibrary)
		require.True(t, ok)
		assert.True(t, section.Used)
	})

	t.Run("should skip a record whose tracking issue is closed", func(t *testing.T) {
		records := []models.IssueRecord{
			record(42, "Stabilize foo", "T-compiler"),
			trackingRecord(100, 42, models.StateClosed, markdownBlock("# Library", "- [bar](url/)")),
		}
		tracking, err := ParseTrackingIssues(records, nil)
		require.NoError(t, err)

		sections := Assemble(records, tracking)

		for _, name := range SectionNames {
			assert.Empty(t, sections.Get(name), name)
		}
		section, _ := tracking[42].Section(SectionLibrary)
		assert.False(t, section.Used)
	})

	t.Run("should match section names case insensitively", func(t *testing.T) {
		records := []models.IssueRecord{
			record(42, "Stabilize foo"),
			trackingRecord(100, 42, models.StateOpen, markdownBlock(
				"# compatibility notes", "- breaks x",
				"# LIBRARY", "- adds y",
			)),
		}
		tracking, err := ParseTrackingIssues(records, nil)
		require.NoError(t, err)

		sections := Assemble(records, tracking)

		assert.Equal(t, "- breaks x\n", sections.Get(SectionCompatibility))
		assert.Equal(t, "- adds y\n", sections.Get(SectionLibrary))
	})

	t.Run("should leave unknown sections unused", func(t *testing.T) {
		records := []models.IssueRecord{
			record(42, "Stabilize foo"),
			trackingRecord(100, 42, models.StateOpen, markdownBlock("# Rustdoc", "- docs", "# Library", "- lib")),
		}
		tracking, err := ParseTrackingIssues(records, nil)
		require.NoError(t, err)

		sections := Assemble(records, tracking)

		assert.Equal(t, "- lib\n", sections.Get(SectionLibrary))
		assert.Empty(t, sections.Get(SectionOther))
		rustdoc, _ := tracking[42].Section("Rustdoc")
		assert.False(t, rustdoc.Used)
	})

	t.Run("should keep input order and reverse with reversed input", func(t *testing.T) {
		records := []models.IssueRecord{
			record(1, "first", "T-lang"),
			record(2, "second", "T-lang"),
			record(3, "third", "T-lang"),
		}
		reversed := []models.IssueRecord{records[2], records[1], records[0]}

		forward := strings.Split(strings.TrimSuffix(Assemble(records, nil).Get(SectionLanguage), "\n"), "\n")
		backward := strings.Split(strings.TrimSuffix(Assemble(reversed, nil).Get(SectionLanguage), "\n"), "\n")

		require.Len(t, forward, 3)
		require.Len(t, backward, 3)
		for i := range forward {
			assert.Equal(t, forward[i], backward[len(backward)-1-i])
		}
		assert.Equal(t, LineItem(records[0]), forward[0])
	})

	t.Run("should produce empty sections for empty input", func(t *testing.T) {
		sections := Assemble(nil, map[int]*models.TrackingIssue{})

		for name, content := range sections.Map() {
			assert.Empty(t, content, name)
		}
		assert.Len(t, sections.Map(), len(SectionNames))
	})

	t.Run("should use custom rules", func(t *testing.T) {
		rules := []Rule{{Labels: []string{"A-docs"}, Section: SectionInternalChanges}}
		sections := NewAssembler(nil, rules).Assemble([]models.IssueRecord{
			record(1, "docs", "A-docs"),
			record(2, "lang", "T-lang"),
		})

		assert.Equal(t, LineItem(record(1, "docs"))+"\n", sections.Get(SectionInternalChanges))
		assert.Equal(t, LineItem(record(2, "lang"))+"\n", sections.Get(SectionOther))
	})
}

func TestAssemble_ExclusiveOwnership(t *testing.T) {
	records := []models.IssueRecord{
		record(1, "lang change", "T-lang", "relnotes"),
		record(2, "compiler change", "T-compiler"),
		record(3, "overridden", "T-libs", "relnotes"),
		record(4, "closed override"),
		record(5, "plain", "relnotes-perf"),
		record(6, "more libs", "T-libs-api"),
		trackingRecord(100, 3, models.StateOpen, markdownBlock("# Library", "- rewritten #3")),
		trackingRecord(101, 4, models.StateClosed, markdownBlock("# Compiler", "- rewritten #4")),
	}
	tracking, err := ParseTrackingIssues(records, nil)
	require.NoError(t, err)

	worthy, rest := Partition(records, []string{"relnotes", "relnotes-perf"})
	assembler := NewAssembler(tracking, DefaultRules)
	passes := []*Sections{assembler.Assemble(worthy), assembler.Assemble(rest)}

	var all strings.Builder
	for _, pass := range passes {
		for _, name := range SectionNames {
			all.WriteString(pass.Get(name))
		}
	}
	output := all.String()

	for _, n := range []int{1, 2, 5, 6} {
		r, ok := FindByNumber(records, n)
		require.True(t, ok)
		assert.Equal(t, 1, strings.Count(output, LineItem(*r)+"\n"), "record #%d", n)
	}
	assert.Equal(t, 1, strings.Count(output, "- rewritten #3\n"))
	assert.NotContains(t, output, "rewritten #4")
	assert.NotContains(t, output, "closed override")
	assert.NotContains(t, output, "Tracking issue for release notes")
}
