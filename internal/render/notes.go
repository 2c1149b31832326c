// Package render turns the assembled sections into the release notes document.
package render

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	domainErrors "github.com/thomas-vilte/relnotes/internal/errors"
)

//go:embed templates/*.md.tmpl
var templateFS embed.FS

var notesTemplate = template.Must(
	template.New("relnotes.md.tmpl").
		Funcs(template.FuncMap{"underline": underline}).
		ParseFS(templateFS, "templates/relnotes.md.tmpl"),
)

// Date is a calendar date without time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf drops the time of day of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, domainErrors.ErrInvalidDate.WithError(err).WithContext("date", s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ReleaseNotes holds one string per output section. It is consumed once, read-only.
type ReleaseNotes struct {
	Version string
	Date    Date

	LanguageRelnotes  string
	LanguageUnsorted  string
	CompilerRelnotes  string
	CompilerUnsorted  string
	LibrariesRelnotes string
	LibrariesUnsorted string
	CompatRelnotes    string
	CompatUnsorted    string
	InternalRelnotes  string
	InternalUnsorted  string
	OtherRelnotes     string
	Unsorted          string

	CargoRelnotes string
	CargoUnsorted string

	Links      string
	CargoLinks string
}

// Title is the document heading.
func (n ReleaseNotes) Title() string {
	return fmt.Sprintf("Version %s (%s)", n.Version, n.Date)
}

// Render writes the markdown document.
func Render(w io.Writer, notes ReleaseNotes) error {
	if err := notesTemplate.Execute(w, notes); err != nil {
		return domainErrors.ErrRender.WithError(err).WithContext("version", notes.Version)
	}
	return nil
}

// RenderString renders the document into a string.
func RenderString(notes ReleaseNotes) (string, error) {
	var b strings.Builder
	if err := Render(&b, notes); err != nil {
		return "", err
	}
	return b.String(), nil
}

func underline(s, ch string) string {
	return strings.Repeat(ch, len(s))
}
