package relnotes

import (
	"fmt"
	"strings"

	"github.com/thomas-vilte/relnotes/internal/models"
)

// LinkItems renders reference-style link definitions, one per record:
// "[<prefix><number>]: <url>/".
func LinkItems(prefix string, records []models.IssueRecord) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("[%s%d]: %s/", prefix, r.Number, r.URL))
	}
	return strings.Join(lines, "\n")
}

// ReferenceItems renders list items pointing at link definitions:
// "- [<title>][<prefix><number>]".
func ReferenceItems(prefix string, records []models.IssueRecord) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("- [%s][%s%d]", r.Title, prefix, r.Number))
	}
	return strings.Join(lines, "\n")
}
