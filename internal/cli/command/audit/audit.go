package audit

import (
	"context"
	"io"

	"github.com/thomas-vilte/relnotes/internal/cli/common"
	"github.com/thomas-vilte/relnotes/internal/config"
	"github.com/thomas-vilte/relnotes/internal/diagnostics"
	domainErrors "github.com/thomas-vilte/relnotes/internal/errors"
	"github.com/thomas-vilte/relnotes/internal/i18n"
	"github.com/thomas-vilte/relnotes/internal/ports"
	"github.com/thomas-vilte/relnotes/internal/services"
	"github.com/thomas-vilte/relnotes/internal/ui"
	"github.com/urfave/cli/v3"
)

const flagStrict = "strict"

type AuditCommandFactory struct {
	provider ports.GeneratorProvider
	out      io.Writer
	errOut   io.Writer
}

func NewAuditCommandFactory(provider ports.GeneratorProvider, out, errOut io.Writer) *AuditCommandFactory {
	return &AuditCommandFactory{
		provider: provider,
		out:      out,
		errOut:   errOut,
	}
}

func (f *AuditCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "audit",
		Aliases:   []string{"a"},
		Usage:     t.GetMessage("audit.usage", 0, nil),
		ArgsUsage: "<version>",
		Flags: append(common.Flags(t),
			&cli.BoolFlag{
				Name:  flagStrict,
				Usage: t.GetMessage("audit.strict_flag", 0, nil),
			},
		),
		ShellComplete: common.FlagComplete(f.out),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return f.run(ctx, cmd, t, cfg)
		},
	}
}

// run executes the whole pipeline without rendering and lists what it found.
func (f *AuditCommandFactory) run(ctx context.Context, cmd *cli.Command, t *i18n.Translations, cfg *config.Config) error {
	ctx, err := common.Setup(ctx, cmd, cfg, t, f.errOut)
	if err != nil {
		return err
	}

	version := cmd.Args().First()
	if version == "" {
		return domainErrors.ErrInvalidVersion.
			WithSuggestion(t.GetMessage("generate.version_required", 0, nil))
	}

	generator, err := f.provider(ctx, cfg, diagnostics.Discard)
	if err != nil {
		return err
	}

	var result *services.Result
	err = ui.WithSpinner(f.errOut, t.GetMessage("generate.fetching", 0, map[string]interface{}{
		"Version": version,
	}), func() error {
		var genErr error
		result, genErr = generator.Generate(ctx, version, services.GenerateOptions{SkipCargo: true})
		return genErr
	})
	if err != nil {
		return err
	}

	if len(result.Diagnostics) == 0 {
		ui.PrintSuccess(f.out, t.GetMessage("audit.clean", 0, nil))
		return nil
	}

	ui.PrintWarning(f.out, t.GetMessage("audit.findings", 0, map[string]interface{}{
		"Count": len(result.Diagnostics),
	}))
	for _, d := range result.Diagnostics {
		ui.PrintInfo(f.out, t.GetMessage("audit.finding", 0, map[string]interface{}{
			"Kind":    string(d.Kind),
			"Message": d.Message,
			"Title":   d.Title,
			"URL":     d.URL,
		}))
		if d.Target != "" {
			ui.PrintKeyValue(f.out, "   target", d.Target)
		}
	}

	if cmd.Bool(flagStrict) {
		return domainErrors.ErrAuditFindings.WithContext("count", len(result.Diagnostics))
	}
	return nil
}
