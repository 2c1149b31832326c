package relnotes

import (
	"sort"

	"github.com/thomas-vilte/relnotes/internal/models"
)

// MergeRecords joins issues and pull requests into one list sorted by number.
// When both lists hold the same number the issue is kept.
func MergeRecords(issues, pulls []models.IssueRecord) []models.IssueRecord {
	all := make([]models.IssueRecord, 0, len(issues)+len(pulls))
	all = append(all, issues...)
	all = append(all, pulls...)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Number < all[j].Number
	})

	out := all[:0]
	for i, r := range all {
		if i > 0 && r.Number == out[len(out)-1].Number {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FindByNumber returns the record with the given number, if present.
func FindByNumber(records []models.IssueRecord, number int) (*models.IssueRecord, bool) {
	for i := range records {
		if records[i].Number == number {
			return &records[i], true
		}
	}
	return nil, false
}
