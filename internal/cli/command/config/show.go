package config

import (
	"context"
	"strconv"
	"strings"

	"github.com/thomas-vilte/relnotes/internal/config"
	"github.com/thomas-vilte/relnotes/internal/i18n"
	"github.com/thomas-vilte/relnotes/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ui.PrintInfo(c.out, t.GetMessage("config.current", 0, nil))

			ui.PrintKeyValue(c.out, "path", cfg.PathFile)
			ui.PrintKeyValue(c.out, "owner", cfg.Owner)
			ui.PrintKeyValue(c.out, "repo", cfg.Repo)
			ui.PrintKeyValue(c.out, "cargo_repo", cfg.CargoRepo)
			ui.PrintKeyValue(c.out, "include_cargo", strconv.FormatBool(cfg.IncludeCargo))
			ui.PrintKeyValue(c.out, "language", cfg.Language)
			ui.PrintKeyValue(c.out, "relnotes_labels", strings.Join(cfg.RelnotesLabels, ", "))
			ui.PrintKeyValue(c.out, "skip_labels", strings.Join(cfg.SkipLabels, ", "))

			token := t.GetMessage("config.token_unset", 0, nil)
			if cfg.Token != "" {
				token = t.GetMessage("config.token_set", 0, nil)
			}
			ui.PrintKeyValue(c.out, "token", token)
			return nil
		},
	}
}

