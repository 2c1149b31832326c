package generate

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/thomas-vilte/relnotes/internal/cli/common"
	"github.com/thomas-vilte/relnotes/internal/config"
	"github.com/thomas-vilte/relnotes/internal/diagnostics"
	domainErrors "github.com/thomas-vilte/relnotes/internal/errors"
	"github.com/thomas-vilte/relnotes/internal/i18n"
	"github.com/thomas-vilte/relnotes/internal/ports"
	"github.com/thomas-vilte/relnotes/internal/render"
	"github.com/thomas-vilte/relnotes/internal/services"
	"github.com/thomas-vilte/relnotes/internal/ui"
	"github.com/urfave/cli/v3"
)

const (
	flagOutput  = "output"
	flagReport  = "report"
	flagDate    = "date"
	flagNoCargo = "no-cargo"
	flagOwner   = "owner"
	flagRepo    = "repo"
)

type GenerateCommandFactory struct {
	provider ports.GeneratorProvider
	out      io.Writer
	errOut   io.Writer
	now      func() time.Time
	create   func(path string) (io.WriteCloser, error)
}

// NewGenerateCommandFactory builds the generate command. The document goes to out
// unless --output is set; progress and diagnostics go to errOut.
func NewGenerateCommandFactory(provider ports.GeneratorProvider, out, errOut io.Writer) *GenerateCommandFactory {
	return &GenerateCommandFactory{
		provider: provider,
		out:      out,
		errOut:   errOut,
		now:      time.Now,
		create: func(path string) (io.WriteCloser, error) {
			return os.Create(path)
		},
	}
}

func (f *GenerateCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	flags := append(common.Flags(t),
		&cli.StringFlag{
			Name:    flagOutput,
			Aliases: []string{"o"},
			Usage:   t.GetMessage("generate.output_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:  flagReport,
			Usage: t.GetMessage("generate.report_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:  flagDate,
			Usage: t.GetMessage("generate.date_flag", 0, nil),
		},
		&cli.BoolFlag{
			Name:  flagNoCargo,
			Usage: t.GetMessage("generate.no_cargo_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:  flagOwner,
			Usage: t.GetMessage("generate.owner_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:  flagRepo,
			Usage: t.GetMessage("generate.repo_flag", 0, nil),
		},
	)

	return &cli.Command{
		Name:          "generate",
		Aliases:       []string{"g"},
		Usage:         t.GetMessage("generate.usage", 0, nil),
		ArgsUsage:     "<version>",
		Flags:         flags,
		ShellComplete: common.FlagComplete(f.out),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return f.run(ctx, cmd, t, cfg)
		},
	}
}

func (f *GenerateCommandFactory) run(ctx context.Context, cmd *cli.Command, t *i18n.Translations, cfg *config.Config) error {
	ctx, err := common.Setup(ctx, cmd, cfg, t, f.errOut)
	if err != nil {
		return err
	}

	version := cmd.Args().First()
	if version == "" {
		return domainErrors.ErrInvalidVersion.
			WithSuggestion(t.GetMessage("generate.version_required", 0, nil))
	}

	runCfg := *cfg
	if owner := cmd.String(flagOwner); owner != "" {
		runCfg.Owner = owner
	}
	if repo := cmd.String(flagRepo); repo != "" {
		runCfg.Repo = repo
	}

	opts := services.GenerateOptions{SkipCargo: cmd.Bool(flagNoCargo)}
	if raw := cmd.String(flagDate); raw != "" {
		date, err := render.ParseDate(raw)
		if err != nil {
			return err
		}
		opts.Date = &date
	}

	generator, err := f.provider(ctx, &runCfg, diagnostics.NewLogReporter(ctx))
	if err != nil {
		return err
	}

	var result *services.Result
	err = ui.WithSpinner(f.errOut, t.GetMessage("generate.fetching", 0, map[string]interface{}{
		"Version": version,
	}), func() error {
		var genErr error
		result, genErr = generator.Generate(ctx, version, opts)
		return genErr
	})
	if err != nil {
		return err
	}

	if err := f.writeNotes(cmd.String(flagOutput), result.Notes, t); err != nil {
		return err
	}

	if path := cmd.String(flagReport); path != "" {
		report := diagnostics.NewReport(result.Notes.Version, f.now(), result.Diagnostics)
		if err := report.WriteFile(path); err != nil {
			return err
		}
	}

	if n := len(result.Diagnostics); n > 0 {
		ui.PrintWarning(f.errOut, t.GetMessage("generate.diagnostics", 0, map[string]interface{}{
			"Count": n,
		}))
	}
	return nil
}

func (f *GenerateCommandFactory) writeNotes(path string, notes render.ReleaseNotes, t *i18n.Translations) error {
	if path == "" {
		return render.Render(f.out, notes)
	}

	file, err := f.create(path)
	if err != nil {
		return domainErrors.ErrRender.WithError(err).WithContext("path", path)
	}

	if err := render.Render(file, notes); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return domainErrors.ErrRender.WithError(err).WithContext("path", path)
	}
	ui.PrintSuccess(f.errOut, t.GetMessage("generate.written", 0, map[string]interface{}{
		"File": path,
	}))
	return nil
}
