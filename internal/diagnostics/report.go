package diagnostics

import (
	"io"
	"os"
	"time"

	domainErrors "github.com/thomas-vilte/relnotes/internal/errors"
	"gopkg.in/yaml.v3"
)

// Report is the YAML document written by --report.
type Report struct {
	Version     string       `yaml:"version"`
	GeneratedAt time.Time    `yaml:"generated_at"`
	Total       int          `yaml:"total"`
	Diagnostics []Diagnostic `yaml:"diagnostics"`
}

func NewReport(version string, now time.Time, items []Diagnostic) Report {
	if items == nil {
		items = []Diagnostic{}
	}
	return Report{
		Version:     version,
		GeneratedAt: now.UTC(),
		Total:       len(items),
		Diagnostics: items,
	}
}

// Encode writes the report as YAML.
func (r Report) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return domainErrors.ErrWriteReport.WithError(err)
	}
	return enc.Close()
}

// WriteFile writes the report to path.
func (r Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return domainErrors.ErrWriteReport.WithError(err).WithContext("path", path)
	}
	defer f.Close()

	return r.Encode(f)
}
