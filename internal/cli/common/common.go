// Package common holds the flags and setup shared by every command.
package common

import (
	"context"
	"fmt"
	"io"

	"github.com/thomas-vilte/relnotes/internal/config"
	"github.com/thomas-vilte/relnotes/internal/i18n"
	"github.com/thomas-vilte/relnotes/internal/logger"
	"github.com/urfave/cli/v3"
)

const (
	FlagDebug   = "debug"
	FlagVerbose = "verbose"
	FlagConfig  = "config"
	FlagLang    = "lang"
)

// Flags returns the flags every command accepts.
func Flags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  FlagDebug,
			Usage: t.GetMessage("flag_debug", 0, nil),
		},
		&cli.BoolFlag{
			Name:  FlagVerbose,
			Usage: t.GetMessage("flag_verbose", 0, nil),
		},
		&cli.StringFlag{
			Name:    FlagConfig,
			Aliases: []string{"c"},
			Usage:   t.GetMessage("flag_config", 0, nil),
		},
		&cli.StringFlag{
			Name:  FlagLang,
			Usage: t.GetMessage("flag_lang", 0, nil),
		},
	}
}

// Setup applies the shared flags. The returned context carries a logger writing
// to errOut. When --config is given the file replaces cfg in place.
func Setup(ctx context.Context, cmd *cli.Command, cfg *config.Config, t *i18n.Translations, errOut io.Writer) (context.Context, error) {
	ctx = logger.WithLogger(ctx, logger.New(errOut, cmd.Bool(FlagDebug), cmd.Bool(FlagVerbose)))

	if path := cmd.String(FlagConfig); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		*cfg = *loaded
		logger.Debug(ctx, "configuration loaded", "path", path)
	}

	if lang := cmd.String(FlagLang); lang != "" {
		if err := t.SetLanguage(config.GetLocaleConfig(lang)); err != nil {
			logger.Warn(ctx, "could not switch language", "language", lang, "error", err)
		}
	}
	return ctx, nil
}

// FlagComplete prints the flags of the current command for shell completion.
func FlagComplete(w io.Writer) cli.ShellCompleteFunc {
	return func(_ context.Context, cmd *cli.Command) {
		for _, f := range cmd.Flags {
			for _, name := range f.Names() {
				if len(name) == 1 {
					_, _ = fmt.Fprintln(w, "-"+name)
				} else {
					_, _ = fmt.Fprintln(w, "--"+name)
				}
			}
		}
	}
}
