package tracking

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/thomas-vilte/relnotes/internal/cli/common"
	"github.com/thomas-vilte/relnotes/internal/config"
	"github.com/thomas-vilte/relnotes/internal/diagnostics"
	domainErrors "github.com/thomas-vilte/relnotes/internal/errors"
	"github.com/thomas-vilte/relnotes/internal/i18n"
	"github.com/thomas-vilte/relnotes/internal/models"
	"github.com/thomas-vilte/relnotes/internal/ports"
	"github.com/thomas-vilte/relnotes/internal/relnotes"
	"github.com/thomas-vilte/relnotes/internal/ui"
	"github.com/urfave/cli/v3"
)

type TrackingCommandFactory struct {
	provider ports.GeneratorProvider
	out      io.Writer
	errOut   io.Writer
}

func NewTrackingCommandFactory(provider ports.GeneratorProvider, out, errOut io.Writer) *TrackingCommandFactory {
	return &TrackingCommandFactory{
		provider: provider,
		out:      out,
		errOut:   errOut,
	}
}

func (f *TrackingCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "tracking",
		Aliases:       []string{"t"},
		Usage:         t.GetMessage("tracking.usage", 0, nil),
		ArgsUsage:     "<version>",
		Flags:         common.Flags(t),
		ShellComplete: common.FlagComplete(f.out),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, err := common.Setup(ctx, cmd, cfg, t, f.errOut)
			if err != nil {
				return err
			}

			version := cmd.Args().First()
			if version == "" {
				return domainErrors.ErrInvalidVersion.
					WithSuggestion(t.GetMessage("generate.version_required", 0, nil))
			}

			generator, err := f.provider(ctx, cfg, diagnostics.NewLogReporter(ctx))
			if err != nil {
				return err
			}

			tracking, records, err := generator.TrackingIssues(ctx, version)
			if err != nil {
				return err
			}

			f.print(t, tracking, records)
			return nil
		},
	}
}

func (f *TrackingCommandFactory) print(t *i18n.Translations, tracking map[int]*models.TrackingIssue, records []models.IssueRecord) {
	if len(tracking) == 0 {
		ui.PrintInfo(f.out, t.GetMessage("tracking.none", 0, nil))
		return
	}

	targets := make([]int, 0, len(tracking))
	for n := range tracking {
		targets = append(targets, n)
	}
	sort.Ints(targets)

	for _, n := range targets {
		issue := tracking[n]
		state := t.GetMessage("tracking.open", 0, nil)
		if issue.IsClosed() {
			state = t.GetMessage("tracking.closed", 0, nil)
		}
		_, _ = fmt.Fprintf(f.out, "#%d %s [%s]\n", issue.Raw.Number, issue.Raw.URL, state)

		target := t.GetMessage("tracking.target_missing", 0, nil)
		if record, ok := relnotes.FindByNumber(records, issue.ForNumber); ok {
			target = record.Ref()
		}
		ui.PrintKeyValue(f.out, "   target", target)

		for _, section := range issue.OrderedSections() {
			ui.PrintKeyValue(f.out, "   "+section.Name, t.GetMessage("tracking.lines", 0, map[string]interface{}{
				"Count": len(section.Lines),
			}))
		}
	}
}
