package regex

import (
	"regexp"

	"github.com/dlclark/regexp2"
)

const (
	// TrackingIssuePrefix starts the title of every tracking issue.
	TrackingIssuePrefix = "Tracking issue for release notes of #"
)

var (
	// Release patterns
	SemVer = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)$`)

	// MarkdownFence matches the first ```markdown block. Both fences are whole
	// backtick runs and the closing one has the same length as the opening one,
	// which needs a backreference.
	MarkdownFence = regexp2.MustCompile("(?s)(?<!`)(?<fence>`{3,})markdown\\r?\\n(?<body>.*?)(?<!`)\\k<fence>(?!`)", regexp2.None)

	// Header of a section inside a tracking issue block.
	SectionHeader = regexp.MustCompile(`^# (.*)$`)
)
