package config

import (
	"io"

	"github.com/thomas-vilte/relnotes/internal/config"
	"github.com/thomas-vilte/relnotes/internal/i18n"
	"github.com/urfave/cli/v3"
)

type ConfigCommandFactory struct {
	in  io.Reader
	out io.Writer
}

// NewConfigCommandFactory builds the config command. Prompts read from in.
func NewConfigCommandFactory(in io.Reader, out io.Writer) *ConfigCommandFactory {
	return &ConfigCommandFactory{in: in, out: out}
}

func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: t.GetMessage("config.usage", 0, nil),
		Commands: []*cli.Command{
			c.newInitCommand(t, cfg),
			c.newShowCommand(t, cfg),
		},
	}
}
