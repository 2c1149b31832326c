package services

import (
	"context"
	"time"

	"github.com/thomas-vilte/relnotes/internal/config"
	"github.com/thomas-vilte/relnotes/internal/diagnostics"
	domainErrors "github.com/thomas-vilte/relnotes/internal/errors"
	"github.com/thomas-vilte/relnotes/internal/logger"
	"github.com/thomas-vilte/relnotes/internal/models"
	"github.com/thomas-vilte/relnotes/internal/regex"
	"github.com/thomas-vilte/relnotes/internal/relnotes"
	"github.com/thomas-vilte/relnotes/internal/render"
	"github.com/thomas-vilte/relnotes/internal/vcs"
	"golang.org/x/mod/semver"
)

const cargoPrefix = "cargo/"

type ReleaseNotesService struct {
	fetcher  vcs.IssueFetcher
	config   *config.Config
	reporter diagnostics.Reporter
	rules    []relnotes.Rule
	now      func() time.Time
}

type ReleaseNotesOption func(*ReleaseNotesService)

// WithReporter adds a reporter that receives every diagnostic as it happens.
func WithReporter(r diagnostics.Reporter) ReleaseNotesOption {
	return func(s *ReleaseNotesService) {
		s.reporter = r
	}
}

func WithClock(now func() time.Time) ReleaseNotesOption {
	return func(s *ReleaseNotesService) {
		s.now = now
	}
}

func WithRules(rules []relnotes.Rule) ReleaseNotesOption {
	return func(s *ReleaseNotesService) {
		s.rules = rules
	}
}

func NewReleaseNotesService(fetcher vcs.IssueFetcher, cfg *config.Config, opts ...ReleaseNotesOption) *ReleaseNotesService {
	s := &ReleaseNotesService{
		fetcher:  fetcher,
		config:   cfg,
		reporter: diagnostics.Discard,
		rules:    relnotes.DefaultRules,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateOptions tweaks a single run.
type GenerateOptions struct {
	// Date overrides the scheduled release date.
	Date *render.Date
	// SkipCargo leaves the cargo milestone out even when enabled in the config.
	SkipCargo bool
}

// Result is the outcome of a run.
type Result struct {
	Notes          render.ReleaseNotes
	Diagnostics    []diagnostics.Diagnostic
	Records        int
	TrackingIssues int
}

// ValidateVersion accepts plain X.Y.Z release numbers.
func ValidateVersion(version string) error {
	if !regex.SemVer.MatchString(version) || !semver.IsValid("v"+trimV(version)) {
		return domainErrors.ErrInvalidVersion.WithContext("version", version)
	}
	return nil
}

func trimV(version string) string {
	if len(version) > 0 && version[0] == 'v' {
		return version[1:]
	}
	return version
}

// Generate fetches the milestone named after version and assembles the release notes.
func (s *ReleaseNotesService) Generate(ctx context.Context, version string, opts GenerateOptions) (*Result, error) {
	log := logger.FromContext(ctx)

	if err := ValidateVersion(version); err != nil {
		return nil, err
	}
	version = trimV(version)

	collector := diagnostics.NewCollector()
	reporter := diagnostics.Multi(collector, s.reporter)

	records, err := s.fetcher.FetchMilestoneIssues(ctx, version, s.config.Repo)
	if err != nil {
		return nil, err
	}

	tracking, err := relnotes.ParseTrackingIssues(records, reporter)
	if err != nil {
		return nil, err
	}
	log.Debug("tracking issues parsed", "tracking_issues", len(tracking))

	inRelease := relnotes.FilterOut(records, s.config.SkipLabels)
	worthy, rest := relnotes.Partition(inRelease, s.config.RelnotesLabels)

	log.Info("records classified",
		"total", len(records),
		"in_release", len(inRelease),
		"relnotes", len(worthy),
		"unsorted", len(rest))

	assembler := relnotes.NewAssembler(tracking, s.rules)
	relnotesSections := assembler.Assemble(worthy)
	unsortedSections := assembler.Assemble(rest)

	notes := render.ReleaseNotes{
		Version: version,
		Date:    s.releaseDate(opts.Date),

		LanguageRelnotes:  relnotesSections.Get(relnotes.SectionLanguage),
		CompilerRelnotes:  relnotesSections.Get(relnotes.SectionCompiler),
		LibrariesRelnotes: relnotesSections.Get(relnotes.SectionLibrary),
		CompatRelnotes:    relnotesSections.Get(relnotes.SectionCompatibility),
		InternalRelnotes:  relnotesSections.Get(relnotes.SectionInternalChanges),
		OtherRelnotes:     relnotesSections.Get(relnotes.SectionOther),

		LanguageUnsorted:  unsortedSections.Get(relnotes.SectionLanguage),
		CompilerUnsorted:  unsortedSections.Get(relnotes.SectionCompiler),
		LibrariesUnsorted: unsortedSections.Get(relnotes.SectionLibrary),
		CompatUnsorted:    unsortedSections.Get(relnotes.SectionCompatibility),
		InternalUnsorted:  unsortedSections.Get(relnotes.SectionInternalChanges),
		Unsorted:          unsortedSections.Get(relnotes.SectionOther),

		Links: relnotes.LinkItems("", inRelease),
	}

	if s.config.IncludeCargo && !opts.SkipCargo {
		if err := s.addCargo(ctx, version, &notes); err != nil {
			return nil, err
		}
	}

	if err := relnotes.Audit(tracking, records, reporter); err != nil {
		return nil, err
	}

	found := collector.Diagnostics()
	if len(found) > 0 {
		log.Info("diagnostics reported", "count", len(found))
	}

	return &Result{
		Notes:          notes,
		Diagnostics:    found,
		Records:        len(records),
		TrackingIssues: len(tracking),
	}, nil
}

func (s *ReleaseNotesService) addCargo(ctx context.Context, version string, notes *render.ReleaseNotes) error {
	records, err := s.fetcher.FetchMilestoneIssues(ctx, version, s.config.CargoRepo)
	if err != nil {
		return err
	}

	worthy, rest := relnotes.Partition(records, s.config.RelnotesLabels)
	notes.CargoRelnotes = relnotes.ReferenceItems(cargoPrefix, worthy)
	notes.CargoUnsorted = relnotes.ReferenceItems(cargoPrefix, rest)
	notes.CargoLinks = relnotes.LinkItems(cargoPrefix, records)

	logger.Debug(ctx, "cargo records added", "total", len(records), "relnotes", len(worthy))
	return nil
}

func (s *ReleaseNotesService) releaseDate(override *render.Date) render.Date {
	if override != nil {
		return *override
	}
	return render.DateOf(relnotes.NextReleaseDate(s.now()))
}

// TrackingIssues fetches the milestone and returns its parsed tracking issues
// together with the fetched records.
func (s *ReleaseNotesService) TrackingIssues(ctx context.Context, version string) (map[int]*models.TrackingIssue, []models.IssueRecord, error) {
	if err := ValidateVersion(version); err != nil {
		return nil, nil, err
	}
	records, err := s.fetcher.FetchMilestoneIssues(ctx, trimV(version), s.config.Repo)
	if err != nil {
		return nil, nil, err
	}
	tracking, err := relnotes.ParseTrackingIssues(records, s.reporter)
	if err != nil {
		return nil, nil, err
	}
	return tracking, records, nil
}
