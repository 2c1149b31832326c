package models

import (
	"fmt"
	"strings"

	domainErrors "github.com/thomas-vilte/relnotes/internal/errors"
)

// IssueState is the tracker state of an issue or pull request.
type IssueState string

const (
	StateOpen   IssueState = "OPEN"
	StateClosed IssueState = "CLOSED"
)

// ParseIssueState normalizes the state reported by the tracker ("open", "closed", ...).
func ParseIssueState(s string) (IssueState, bool) {
	switch IssueState(strings.ToUpper(strings.TrimSpace(s))) {
	case StateOpen:
		return StateOpen, true
	case StateClosed:
		return StateClosed, true
	}
	return "", false
}

type (
	// IssueRecord is one issue or pull request of a milestone.
	IssueRecord struct {
		Number int
		Title  string
		URL    string
		Body   string
		State  IssueState
		Labels []string
	}

	// Milestone is a tracker milestone resolved from a query.
	Milestone struct {
		Number int
		Title  string
		URL    string
	}
)

// Validate checks the record against the fetcher contract.
func (r IssueRecord) Validate() error {
	switch {
	case r.Number < 0:
		return domainErrors.ErrInvalidIssueRecord.
			WithContext("number", r.Number).
			WithContext("reason", "number must not be negative")
	case strings.TrimSpace(r.Title) == "":
		return domainErrors.ErrInvalidIssueRecord.
			WithContext("number", r.Number).
			WithContext("reason", "empty title")
	case r.State != StateOpen && r.State != StateClosed:
		return domainErrors.ErrInvalidIssueRecord.
			WithContext("number", r.Number).
			WithContext("reason", fmt.Sprintf("unknown state %q", r.State))
	}
	return nil
}

// IsClosed reports whether the record is CLOSED.
func (r IssueRecord) IsClosed() bool {
	return r.State == StateClosed
}

// Ref identifies the record in log and error output.
func (r IssueRecord) Ref() string {
	return fmt.Sprintf("#%d %q <%s>", r.Number, r.Title, r.URL)
}
