package relnotes

import "github.com/thomas-vilte/relnotes/internal/models"

// HasTags reports whether the record carries any of the given labels.
// Names are compared exactly, case included.
func HasTags(record models.IssueRecord, labels ...string) bool {
	for _, have := range record.Labels {
		for _, want := range labels {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Partition splits records into those carrying any of the labels and the rest,
// keeping the input order in both.
func Partition(records []models.IssueRecord, labels []string) (matched, rest []models.IssueRecord) {
	for _, r := range records {
		if HasTags(r, labels...) {
			matched = append(matched, r)
		} else {
			rest = append(rest, r)
		}
	}
	return matched, rest
}

// FilterOut drops every record carrying one of the skip labels.
func FilterOut(records []models.IssueRecord, skip []string) []models.IssueRecord {
	out := make([]models.IssueRecord, 0, len(records))
	for _, r := range records {
		if !HasTags(r, skip...) {
			out = append(out, r)
		}
	}
	return out
}
