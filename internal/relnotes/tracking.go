package relnotes

import (
	"strconv"
	"strings"

	"github.com/thomas-vilte/relnotes/internal/diagnostics"
	domainErrors "github.com/thomas-vilte/relnotes/internal/errors"
	"github.com/thomas-vilte/relnotes/internal/models"
	"github.com/thomas-vilte/relnotes/internal/regex"
)

// IsTrackingTitle reports whether title names a tracking issue.
func IsTrackingTitle(title string) bool {
	return strings.HasPrefix(title, regex.TrackingIssuePrefix)
}

// trackingTarget extracts N from "Tracking issue for release notes of #N: ...".
func trackingTarget(record models.IssueRecord) (int, error) {
	rest := strings.TrimPrefix(record.Title, regex.TrackingIssuePrefix)
	if idx := strings.IndexByte(rest, ':'); idx >= 0 {
		rest = rest[:idx]
	}

	n, err := strconv.ParseUint(rest, 10, strconv.IntSize-1)
	if err != nil {
		return 0, domainErrors.ErrMalformedTrackingTitle.
			WithError(err).
			WithContext("number", record.Number).
			WithContext("title", record.Title).
			WithContext("url", record.URL)
	}
	return int(n), nil
}

// ExtractMarkdownBlock returns the content of the first ```markdown fenced block.
func ExtractMarkdownBlock(body string) (string, bool) {
	m, err := regex.MarkdownFence.FindStringMatch(body)
	if err != nil || m == nil {
		return "", false
	}
	g := m.GroupByName("body")
	if g == nil {
		return "", false
	}
	return g.String(), true
}

// parseSections fills t with the "# Name" sections declared in block.
func parseSections(t *models.TrackingIssue, block string) {
	var current *models.TrackingSection
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := regex.SectionHeader.FindStringSubmatch(line); m != nil {
			current = t.EnsureSection(m[1])
			continue
		}
		if current == nil {
			continue
		}
		current.Lines = append(current.Lines, line)
	}
}

// ParseTrackingIssues builds the lookup of tracking issues keyed by the number
// they describe. A malformed target number aborts the whole run; a body without a
// markdown block is reported and skipped.
func ParseTrackingIssues(records []models.IssueRecord, reporter diagnostics.Reporter) (map[int]*models.TrackingIssue, error) {
	if reporter == nil {
		reporter = diagnostics.Discard
	}

	out := make(map[int]*models.TrackingIssue)
	for i := range records {
		record := &records[i]
		if !IsTrackingTitle(record.Title) {
			continue
		}

		target, err := trackingTarget(*record)
		if err != nil {
			return nil, err
		}

		block, ok := ExtractMarkdownBlock(record.Body)
		if !ok {
			reporter.Report(diagnostics.Diagnostic{
				Kind:    diagnostics.KindMissingMarkdownBlock,
				Message: "tracking issue has no ```markdown block",
				Number:  record.Number,
				Title:   record.Title,
				URL:     record.URL,
				Body:    record.Body,
			})
			continue
		}

		tracking := models.NewTrackingIssue(target, record)
		parseSections(tracking, block)

		if prev, exists := out[target]; exists {
			reporter.Report(diagnostics.Diagnostic{
				Kind:    diagnostics.KindDuplicateTrackingIssue,
				Message: "several tracking issues describe the same record, keeping the last one",
				Number:  prev.Raw.Number,
				Title:   prev.Raw.Title,
				URL:     prev.Raw.URL,
				Target:  "#" + strconv.Itoa(target),
			})
		}
		out[target] = tracking
	}
	return out, nil
}
