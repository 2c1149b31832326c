package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeVCS           ErrorType = "VCS"
	TypeInput         ErrorType = "INPUT"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		msg += " [" + strings.Join(parts, " ") + "]"
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches errors derived from the same sentinel, whatever context they carry.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Input errors
var (
	ErrMalformedTrackingTitle = NewAppError(TypeInput, "tracking issue title does not name a valid target number", nil).
					WithSuggestion("Fix the title to read: Tracking issue for release notes of #<number>: <title>")

	ErrInvalidIssueRecord = NewAppError(TypeInput, "issue record does not match the expected shape", nil)

	ErrInvalidVersion = NewAppError(TypeInput, "version is not a valid release number (X.Y.Z)", nil).
				WithSuggestion("Pass the release version, for example: relnotes generate 1.80.0")

	ErrInvalidDate = NewAppError(TypeInput, "release date is not a valid YYYY-MM-DD date", nil)
)

// Configuration errors
var (
	ErrTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
			WithSuggestion("Export GITHUB_TOKEN or set token in ~/.relnotes/config.toml")

	ErrConfigInvalid = NewAppError(TypeConfiguration, "configuration is not valid", nil).
				WithSuggestion("Check ~/.relnotes/config.toml")
)

// VCS errors
var (
	ErrMilestoneNotFound = NewAppError(TypeVCS, "no milestone matches the query", nil).
				WithSuggestion("Check the milestone title on the tracker")

	ErrAmbiguousMilestone = NewAppError(TypeVCS, "more than one milestone matches the query", nil).
				WithSuggestion("Use a query that matches exactly one milestone")

	ErrRepositoryNotFound = NewAppError(TypeVCS, "repository not found", nil).
				WithSuggestion("Check repository owner/name and access permissions")

	ErrFetchIssues = NewAppError(TypeVCS, "failed to fetch milestone issues", nil)
)

// GitHub/VCS specific errors
var (
	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("Token needs read access to issues and pull requests")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes or use a personal access token for higher limits")
)

// Internal errors
var (
	ErrClosedTrackingIssueUsed = NewAppError(TypeInternal, "closed tracking issue contributed release notes", nil)

	ErrRender = NewAppError(TypeInternal, "failed to render release notes", nil)

	ErrWriteReport = NewAppError(TypeInternal, "failed to write diagnostics report", nil)

	ErrAuditFindings = NewAppError(TypeInput, "tracking issues have unresolved findings", nil).
				WithSuggestion("Fix the reported tracking issues or run without --strict")
)
