package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/thomas-vilte/relnotes/internal/cli/common"
	"github.com/thomas-vilte/relnotes/internal/config"
	"github.com/thomas-vilte/relnotes/internal/i18n"
	"github.com/thomas-vilte/relnotes/internal/ui"
	"github.com/urfave/cli/v3"
)

const (
	flagDefaults = "defaults"
	flagPath     = "path"
)

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("config.init_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagDefaults,
				Usage: t.GetMessage("config.defaults_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:  flagPath,
				Usage: t.GetMessage("config.path_flag", 0, nil),
			},
		},
		ShellComplete: common.FlagComplete(c.out),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return c.runInit(cmd, cfg, t)
		},
	}
}

func (c *ConfigCommandFactory) runInit(cmd *cli.Command, cfg *config.Config, t *i18n.Translations) error {
	next := *cfg
	if cmd.Bool(flagDefaults) {
		next = *config.DefaultConfig()
		next.PathFile = cfg.PathFile
	} else {
		reader := bufio.NewReader(c.in)
		prompts := []struct {
			key    string
			target *string
		}{
			{"config.prompt_owner", &next.Owner},
			{"config.prompt_repo", &next.Repo},
			{"config.prompt_cargo_repo", &next.CargoRepo},
			{"config.prompt_language", &next.Language},
		}
		for _, p := range prompts {
			value, err := c.ask(reader, t.GetMessage(p.key, 0, nil), *p.target)
			if err != nil {
				return err
			}
			*p.target = value
		}
		next.Language = config.GetLocaleConfig(next.Language)
	}

	if path := cmd.String(flagPath); path != "" {
		next.PathFile = path
	}
	if next.PathFile == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		next.PathFile = path
	}

	if err := config.SaveConfig(&next); err != nil {
		return err
	}
	next.Token = cfg.Token
	*cfg = next

	ui.PrintSuccess(c.out, t.GetMessage("config.saved", 0, map[string]interface{}{
		"Path": next.PathFile,
	}))
	return nil
}

// ask prints prompt with the current value and returns the answer, or current
// when the answer is empty.
func (c *ConfigCommandFactory) ask(reader *bufio.Reader, prompt, current string) (string, error) {
	_, _ = fmt.Fprintf(c.out, "%s [%s]: ", prompt, current)
	answer, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return current, nil
	}
	return answer, nil
}
