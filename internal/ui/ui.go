package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	domainErrors "github.com/thomas-vilte/relnotes/internal/errors"
	"github.com/thomas-vilte/relnotes/internal/i18n"
)

var (
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Dim     = color.New(color.FgHiBlack)
)

// WithSpinner runs fn while a spinner is shown on w, normally os.Stderr. A file
// writer only gets the spinner when it is a terminal.
func WithSpinner(w io.Writer, message string, fn func() error) error {
	opts := []spinner.Option{
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" " + message),
	}
	if f, ok := w.(*os.File); ok {
		opts = append(opts, spinner.WithWriterFile(f))
	} else {
		opts = append(opts, spinner.WithWriter(w))
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, opts...)
	s.Start()
	defer s.Stop()
	return fn()
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = Success.Fprintf(w, "✓ %s\n", msg)
}

func PrintError(w io.Writer, msg string) {
	_, _ = Error.Fprintf(w, "✗ %s\n", msg)
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = Warning.Fprintf(w, "! %s\n", msg)
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = Info.Fprintf(w, "%s\n", msg)
}

func PrintKeyValue(w io.Writer, key, value string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Dim.Sprintf("%s:", key), value)
}

// HandleAppError prints err with its context and suggestion when it is an AppError.
func HandleAppError(w io.Writer, err error, t *i18n.Translations) {
	if err == nil {
		return
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(w, err.Error())
		return
	}

	_, _ = Error.Fprintf(w, "✗ %s: %s\n", appErr.Type, appErr.Message)
	if appErr.Err != nil {
		_, _ = Dim.Fprintf(w, "   details: %v\n", appErr.Err)
	}

	if len(appErr.Context) > 0 {
		keys := make([]string, 0, len(appErr.Context))
		for k := range appErr.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = Dim.Fprintf(w, "   %s: %v\n", k, appErr.Context[k])
		}
	}

	if appErr.Suggestion != "" {
		suggestion := strings.ReplaceAll(appErr.Suggestion, "\n", "\n   ")
		msg := "Suggestion: " + suggestion
		if t != nil {
			msg = t.GetMessage("error.suggestion", 0, map[string]interface{}{
				"Suggestion": suggestion,
			})
		}
		_, _ = Info.Fprintf(w, "   %s\n", msg)
	}
}
