package relnotes

import (
	"fmt"
	"sort"

	"github.com/thomas-vilte/relnotes/internal/diagnostics"
	domainErrors "github.com/thomas-vilte/relnotes/internal/errors"
	"github.com/thomas-vilte/relnotes/internal/models"
)

// Audit walks every tracking issue after assembly. A used section on a closed
// tracking issue is a logic defect and returns an error; an unused section on an
// open one is reported and the walk goes on.
func Audit(tracking map[int]*models.TrackingIssue, records []models.IssueRecord, reporter diagnostics.Reporter) error {
	if reporter == nil {
		reporter = diagnostics.Discard
	}

	targets := make([]int, 0, len(tracking))
	for n := range tracking {
		targets = append(targets, n)
	}
	sort.Ints(targets)

	for _, n := range targets {
		issue := tracking[n]
		for _, section := range issue.OrderedSections() {
			if issue.IsClosed() {
				if section.Used {
					return domainErrors.ErrClosedTrackingIssueUsed.
						WithContext("section", section.Name).
						WithContext("number", issue.Raw.Number).
						WithContext("title", issue.Raw.Title).
						WithContext("url", issue.Raw.URL)
				}
				continue
			}
			if section.Used {
				continue
			}

			target := "not found"
			if record, ok := FindByNumber(records, issue.ForNumber); ok {
				target = record.Ref()
			}
			reporter.Report(diagnostics.Diagnostic{
				Kind:    diagnostics.KindUnusedSection,
				Message: fmt.Sprintf("did not use section %q", section.Name),
				Number:  issue.Raw.Number,
				Title:   issue.Raw.Title,
				URL:     issue.Raw.URL,
				Section: section.Name,
				Target:  target,
			})
		}
	}
	return nil
}
