package relnotes

import (
	"fmt"

	"github.com/thomas-vilte/relnotes/internal/models"
)

func record(number int, title string, labels ...string) models.IssueRecord {
	return models.IssueRecord{
		Number: number,
		Title:  title,
		URL:    fmt.Sprintf("https://github.com/rust-lang/rust/issues/%d", number),
		State:  models.StateOpen,
		Labels: labels,
	}
}

func trackingRecord(number, target int, state models.IssueState, body string) models.IssueRecord {
	r := record(number, fmt.Sprintf("Tracking issue for release notes of #%d: feature %d", target, target))
	r.State = state
	r.Body = body
	return r
}

func markdownBlock(lines ...string) string {
	body := "Write the notes below.\n\n```markdown\n"
	for _, l := range lines {
		body += l + "\n"
	}
	return body + "```\n\nThanks!"
}
